package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"ldx/common"
	"ldx/convert"
	"ldx/docerr"
	"ldx/misc"
	"ldx/state"
)

// outcome is filled by cli handlers, urfave/cli default error handling is
// bypassed and exit code is decided in main.
type outcome struct {
	logged bool
	usage  bool
}

// exitErr runs before environment is released, so error could still be logged.
func (o *outcome) exitErr(ctx context.Context, _ *cli.Command, err error) {
	if errors.Is(err, convert.ErrUsage) {
		o.usage = true
	}
	if _, ok := docerr.KindOf(err); ok {
		fmt.Fprintln(os.Stderr, docerr.Diagnostic(err))
	}
	if env := state.EnvFromContext(ctx); env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		o.logged = true
	}
}

func (o *outcome) usageErr(_ context.Context, _ *cli.Command, err error, _ bool) error {
	o.usage = true
	return err
}

func (o *outcome) notFound(ctx context.Context, _ *cli.Command, name string) {
	o.usage = true
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func (o *outcome) code(err error) int {
	switch {
	case err == nil:
		return 0
	case o.usage:
		return -1
	default:
		return 1
	}
}

const convertHelp = `%s
SOURCE:
    path to document(s) to process, following formats are supported:
        path to a file: "[path_to_file]file.wri"
        path to a directory: "[path_to_directory]directory" - recursively process all files under directory (symbolic links are not followed)
        path to archive with path inside archive to a particular document: "[path_to_archive]archive.zip[path_in_archive]/file.wri"
        path to archive with path inside archive: "[path_to_archive]archive.zip[path_in_archive]" - recursively process all documents under archive path

	Documents are recognized by content, not by extension. Processing of
	archives inside archives is not supported.

DESTINATION:
    always a path, output file name(s) and extension will be derived from other parameters
    if absent - current working directory
`

const dumpconfigHelp = `%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`

func newApp(o *outcome) *cli.Command {
	return &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "text extraction engine for legacy office documents",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          prepareEnv,
		After:           releaseEnv,
		OnUsageError:    o.usageErr,
		ExitErrHandler:  o.exitErr,
		CommandNotFound: o.notFound,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "convert",
				Usage:        "Extracts document(s) to specified format",
				OnUsageError: o.usageErr,
				Action:       convert.Run,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Value: common.OutputFmtText.String(),
						Usage: "output `TYPE` (supported types: " + strings.Join(common.OutputFmtNames(), ", ") + ")"},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "`PASSWORD` for protected documents, overrides configuration"},
					&cli.StringFlag{Name: "encoding", Aliases: []string{"e"},
						Usage: "code page `ENCODING` of 8-bit document text, overrides configuration (see IANA.org for character set names)"},
					&cli.BoolFlag{Name: "nodirs", Aliases: []string{"nd"}, Usage: "when producing output do not keep input directory structure"},
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exists, overwrite files"},
					&cli.StringFlag{Name: "force-zip-cp",
						Usage: "force `ENCODING` for ALL non UTF-8 file names in processed archives (see IANA.org for character set names)"},
				},
				ArgsUsage:          "SOURCE [DESTINATION]",
				CustomHelpTemplate: fmt.Sprintf(convertHelp, cli.CommandHelpTemplate),
			},
			{
				Name:         "probe",
				Usage:        "Reports whether document(s) could be extracted",
				OnUsageError: o.usageErr,
				Action:       convert.Probe,
				ArgsUsage:    "SOURCE...",
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError:       o.usageErr,
				Action:             dumpConfiguration,
				ArgsUsage:          "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(dumpconfigHelp, cli.CommandHelpTemplate),
			},
		},
	}
}

func main() {
	// processing stops between files on interrupt
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	var o outcome
	err := newApp(&o).Run(ctx, os.Args)
	stop()

	if err != nil && !o.logged {
		// log is either not ready yet (argument parsing) or already closed
		fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
	}
	os.Exit(o.code(err))
}
