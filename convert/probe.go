package convert

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"ldx/common"
	"ldx/container"
	"ldx/extract"
	"ldx/state"
)

// Probe reports for every file named on command line whether it could be
// extracted. Files are only probed, nothing is parsed.
func Probe(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("probe")

	if cmd.Args().Len() == 0 {
		return fmt.Errorf("no input files have been specified: %w", ErrUsage)
	}

	var failed int
	for _, name := range cmd.Args().Slice() {
		if err := probeFile(cmd.Root().Writer, name); err != nil {
			log.Error("Unable to probe file", zap.String("file", name), zap.Error(err))
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("unable to probe %d file(s)", failed)
	}
	return nil
}

func probeFile(w io.Writer, name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	res := extract.Probe(container.FromBytes(name, data))
	if res.Confidence == common.ConfidenceNone {
		_, err = fmt.Fprintf(w, "%s: not supported\n", name)
		return err
	}
	_, err = fmt.Fprintf(w, "%s: %s %s document, creator %q", name, res.Confidence, res.Kind, res.Creator)
	if err == nil && res.NeedsEncodingHint {
		_, err = fmt.Fprint(w, ", code page not recorded")
	}
	if err == nil {
		_, err = fmt.Fprintln(w)
	}
	return err
}
