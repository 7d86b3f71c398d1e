// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"ldx/common"
	"ldx/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by convert subcommand
	Format    common.OutputFmt
	NoDirs    bool
	Overwrite bool
	Password  string
	// Encoding is the name of the code page requested on command line, it
	// takes precedence over configuration.
	Encoding string
	CodePage encoding.Encoding

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		Log:   zap.NewNop(),
	}
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// DocumentPassword returns password to use for protected documents, command
// line wins over configuration.
func (e *LocalEnv) DocumentPassword() string {
	if len(e.Password) > 0 || e.Cfg == nil {
		return e.Password
	}
	return string(e.Cfg.Document.Password)
}

// DocumentEncoding returns code page name to use for 8-bit text, command line
// wins over configuration.
func (e *LocalEnv) DocumentEncoding() string {
	if len(e.Encoding) > 0 || e.Cfg == nil {
		return e.Encoding
	}
	return e.Cfg.Document.Encoding
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
