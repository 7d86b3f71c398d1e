package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"ldx/common"
	"ldx/config"
	"ldx/extract"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	SourceFile string
	Format     string
	Dialect    string
	DocumentID string
	Creator    string
	Title      string
	Author     string
	Encoding   string
}

func expandTemplate(doc *extract.Document, name config.TemplateFieldName, field string, format common.OutputFmt) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		SourceFile: strings.TrimSuffix(filepath.Base(doc.Source), filepath.Ext(doc.Source)),
		Format:     format.String(),
		Dialect:    doc.Dialect,
		DocumentID: doc.ID,
		Creator:    doc.Meta.Creator,
		Title:      doc.Meta.Title,
		Author:     doc.Meta.Author,
		Encoding:   doc.Encoding,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
