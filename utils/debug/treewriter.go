// Package debug has helpers for human readable dumps.
package debug

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented text, two spaces per level. Line and
// TextBlock take explicit depth, Open/Close/Add/AddText track it.
type TreeWriter struct {
	sb    strings.Builder
	depth int
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

func (tw *TreeWriter) String() string {
	return tw.sb.String()
}

func (tw *TreeWriter) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, tw.sb.String())
	return int64(n), err
}

func (tw *TreeWriter) indent(depth int) {
	for range depth {
		tw.sb.WriteString("  ")
	}
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(&tw.sb, format, args...)
	tw.sb.WriteByte('\n')
}

// TextBlock writes "label: value" with value quoted.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.sb.WriteString(label)
	tw.sb.WriteString(": ")
	tw.sb.WriteString(encodeText(value))
	tw.sb.WriteByte('\n')
}

// Depth is the current level used by Open and Add.
func (tw *TreeWriter) Depth() int {
	return tw.depth
}

// Open writes a line and nests following output under it.
func (tw *TreeWriter) Open(format string, args ...any) {
	tw.Line(tw.depth, format, args...)
	tw.depth++
}

// Close ends the innermost Open. Unbalanced calls stay at level 0.
func (tw *TreeWriter) Close() {
	if tw.depth > 0 {
		tw.depth--
	}
}

func (tw *TreeWriter) Add(format string, args ...any) {
	tw.Line(tw.depth, format, args...)
}

func (tw *TreeWriter) AddText(label, value string) {
	tw.TextBlock(tw.depth, label, value)
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
