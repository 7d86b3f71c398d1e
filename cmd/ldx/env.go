package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"ldx/config"
	"ldx/misc"
	"ldx/state"
)

// prepareEnv runs after command line is parsed and before any subcommand.
func prepareEnv(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)
	configFile := cmd.String("config")

	cfg, err := config.LoadConfiguration(configFile)
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	env.Cfg = cfg

	if cmd.Bool("debug") {
		if env.Rpt, err = cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		// passwords are masked by Dump
		if len(configFile) > 0 {
			if data, err := config.Dump(cfg); err == nil {
				env.Rpt.StoreData("config/"+filepath.Base(configFile), data)
			}
		}
	}

	if env.Log, err = cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started",
		zap.Strings("args", os.Args),
		zap.String("ver", misc.GetVersion()),
		zap.String("runtime", runtime.Version()),
		zap.String("hash", misc.GetGitHash()))
	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

// releaseEnv flushes logs and closes debug report. Errors after this point
// go to stderr only.
func releaseEnv(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()

	if env.Rpt != nil {
		if e := env.Rpt.Close(); e != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", e))
		}
	}
	if env.Cfg != nil {
		err = multierr.Append(err, removeEmptyPanicLog(env.Cfg.Logging.FileLogger.Destination))
	}
	return err
}

// removeEmptyPanicLog deletes crash output file created next to the log
// when nothing was written there.
func removeEmptyPanicLog(logFile string) error {
	if len(logFile) == 0 {
		return nil
	}
	debug.SetCrashOutput(nil, debug.CrashOptions{})
	name := filepath.Join(filepath.Dir(logFile), misc.GetAppName()+"-panic.log")
	fi, err := os.Stat(name)
	if err != nil || fi.Size() != 0 {
		return nil
	}
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("unable to remove empty panic log file '%s': %w", name, err)
	}
	return nil
}
