package css

import (
	"io"
	"strings"
)

// Declaration is a single "property: value" pair, value kept as written.
type Declaration struct {
	Property string
	Value    string
}

// Rule is a ruleset with its (possibly grouped) selectors.
type Rule struct {
	Selectors    []string
	Declarations []Declaration
}

// MediaBlock is an @media block with nested rules.
type MediaBlock struct {
	Query string
	Rules []Rule
}

// FontFace is an @font-face block. Only local() sources survive parsing.
type FontFace struct {
	Declarations []Declaration
}

// StylesheetItem is a single top-level item. Exactly one field is non-nil.
type StylesheetItem struct {
	Rule       *Rule
	MediaBlock *MediaBlock
	FontFace   *FontFace
}

// Stylesheet is a parsed stylesheet in source order.
type Stylesheet struct {
	Items    []StylesheetItem
	Warnings []string
}

// Rules returns top-level rules, @media blocks are not flattened.
func (s *Stylesheet) Rules() []Rule {
	var rules []Rule
	for _, item := range s.Items {
		if item.Rule != nil {
			rules = append(rules, *item.Rule)
		}
	}
	return rules
}

func (s *Stylesheet) warn(msg string) {
	s.Warnings = append(s.Warnings, msg)
}

// WriteTo writes compact CSS, one top-level item per line.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	for i, item := range s.Items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		switch {
		case item.Rule != nil:
			writeRule(&sb, item.Rule)
		case item.MediaBlock != nil:
			sb.WriteString("@media ")
			sb.WriteString(item.MediaBlock.Query)
			sb.WriteString(" {")
			for j := range item.MediaBlock.Rules {
				sb.WriteByte(' ')
				writeRule(&sb, &item.MediaBlock.Rules[j])
			}
			sb.WriteString(" }")
		case item.FontFace != nil:
			sb.WriteString("@font-face ")
			writeDeclarations(&sb, item.FontFace.Declarations)
		}
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func writeRule(sb *strings.Builder, r *Rule) {
	sb.WriteString(strings.Join(r.Selectors, ", "))
	sb.WriteByte(' ')
	writeDeclarations(sb, r.Declarations)
}

func writeDeclarations(sb *strings.Builder, decls []Declaration) {
	sb.WriteByte('{')
	for _, d := range decls {
		sb.WriteByte(' ')
		sb.WriteString(d.Property)
		sb.WriteString(": ")
		sb.WriteString(d.Value)
		sb.WriteByte(';')
	}
	sb.WriteString(" }")
}
