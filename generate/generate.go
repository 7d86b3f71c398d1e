// Package generate turns sink events into output documents.
package generate

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"ldx/common"
	"ldx/config"
	"ldx/document"
	"ldx/generate/dump"
	"ldx/generate/html"
	"ldx/generate/text"
)

// Generator collects document in memory, nothing is written until WriteTo is
// called so that failed extraction leaves no partial output.
type Generator interface {
	document.Sink
	io.WriterTo
}

// New returns generator for requested output format, cfg may be nil.
func New(format common.OutputFmt, cfg *config.DocumentConfig, log *zap.Logger) (Generator, error) {
	var hcfg *config.HTMLConfig
	if cfg != nil {
		hcfg = &cfg.HTML
	}
	switch format {
	case common.OutputFmtText:
		return text.New(), nil
	case common.OutputFmtHtml:
		return html.New(hcfg, log), nil
	case common.OutputFmtDump:
		return dump.New(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %s", format)
	}
}
