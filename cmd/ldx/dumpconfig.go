package main

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"ldx/config"
	"ldx/state"
)

// dumpConfiguration writes either embedded or effective configuration.
func dumpConfiguration(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	kind, data := "actual", []byte(nil)
	if cmd.Bool("default") {
		kind = "default"
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	var out io.Writer = cmd.Root().Writer
	fname := cmd.Args().Get(0)
	if len(fname) > 0 {
		f, e := os.Create(fname)
		if e != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, e)
		}
		defer func() {
			if e := f.Close(); e != nil && err == nil {
				err = fmt.Errorf("unable to close destination file '%s': %w", fname, e)
			}
		}()
		out = f
	} else {
		fname = "STDOUT"
	}

	env.Log.Info("Outputting configuration", zap.String("state", kind), zap.String("file", fname))
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
