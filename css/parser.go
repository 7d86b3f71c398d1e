// Package css cleans up user supplied stylesheets before they are embedded
// into generated HTML. Output must stay self-contained, so anything that
// references external resources is dropped with a warning.
package css

import (
	"bytes"
	"regexp"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css")}
}

// Parse never fails, malformed input ends the stylesheet early.
func (p *Parser) Parse(data []byte) *Stylesheet {
	sheet := &Stylesheet{}
	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)

	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(err))
				sheet.warn("parse error: " + err.Error())
			}
			return sheet

		case css.BeginRulesetGrammar:
			sels := selectors(data, parser.Values())
			if rule, ok := p.parseRule(parser, sheet, sels); ok {
				sheet.Items = append(sheet.Items, StylesheetItem{Rule: &rule})
			}

		case css.BeginAtRuleGrammar:
			switch name := strings.ToLower(string(data)); name {
			case "@media":
				mb := &MediaBlock{Query: join(parser.Values())}
				mb.Rules = p.parseMediaRules(parser, sheet)
				if len(mb.Rules) > 0 {
					sheet.Items = append(sheet.Items, StylesheetItem{MediaBlock: mb})
				}
			case "@font-face":
				ff := &FontFace{}
				external := false
				for _, d := range p.parseDeclarations(parser, sheet, css.EndAtRuleGrammar) {
					if d.Property == "src" && strings.Contains(strings.ToLower(d.Value), "url(") {
						external = true
					}
					ff.Declarations = append(ff.Declarations, d)
				}
				if external {
					sheet.warn("@font-face with external source dropped")
					continue
				}
				sheet.Items = append(sheet.Items, StylesheetItem{FontFace: ff})
			default:
				skipBlock(parser)
				sheet.warn("unsupported " + name + " dropped")
			}

		case css.AtRuleGrammar:
			name := strings.ToLower(string(data))
			if name == "@import" {
				sheet.warn("@import dropped: " + join(parser.Values()))
			} else {
				sheet.warn("unsupported " + name + " dropped")
			}
		}
	}
}

func (p *Parser) parseRule(parser *css.Parser, sheet *Stylesheet, sels []string) (Rule, bool) {
	decls := p.parseDeclarations(parser, sheet, css.EndRulesetGrammar)
	if len(sels) == 0 || len(decls) == 0 {
		return Rule{}, false
	}
	return Rule{Selectors: sels, Declarations: decls}, true
}

func (p *Parser) parseMediaRules(parser *css.Parser, sheet *Stylesheet) []Rule {
	var rules []Rule
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return rules
		case css.BeginRulesetGrammar:
			if rule, ok := p.parseRule(parser, sheet, selectors(data, parser.Values())); ok {
				rules = append(rules, rule)
			}
		case css.BeginAtRuleGrammar:
			skipBlock(parser)
			sheet.warn("nested " + strings.ToLower(string(data)) + " dropped")
		}
	}
}

// parseDeclarations reads declarations until end (or error).
func (p *Parser) parseDeclarations(parser *css.Parser, sheet *Stylesheet, end css.GrammarType) []Declaration {
	var decls []Declaration
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, end:
			return decls
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			prop := strings.TrimSpace(string(data))
			val := join(parser.Values())
			if len(val) == 0 {
				continue
			}
			if externalURL(val) {
				p.log.Debug("Declaration references external resource", zap.String("property", prop), zap.String("value", val))
				sheet.warn("external reference dropped: " + prop + ": " + val)
				continue
			}
			decls = append(decls, Declaration{Property: prop, Value: val})
		}
	}
}

func skipBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// selectors splits grouped selectors, collapsing inner whitespace.
func selectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}
	var sels []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		if s = strings.Join(strings.Fields(s), " "); s != "" {
			sels = append(sels, s)
		}
	}
	return sels
}

// join rebuilds token text with whitespace runs collapsed to one space.
func join(tokens []css.Token) string {
	var sb strings.Builder
	space := false
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			space = sb.Len() > 0
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.Write(t.Data)
	}
	return sb.String()
}

var urlPattern = regexp.MustCompile(`(?i)url\(\s*["']?\s*([^"')\s]*)`)

func externalURL(val string) bool {
	for _, m := range urlPattern.FindAllStringSubmatch(val, -1) {
		if !strings.HasPrefix(strings.ToLower(m[1]), "data:") {
			return true
		}
	}
	return false
}
