// Package label renders human-readable task labels for cargo invocations.
package label

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// DefaultTemplate is used when no label_template is configured.
const DefaultTemplate = `cargo {{ join " " .Args }}`

// Data is what a label template sees.
type Data struct {
	Action  string
	Args    []string
	Package string
	Target  string
	Profile string
	Root    string
}

// Renderer executes one parsed label template.
type Renderer struct {
	tmpl *template.Template
}

// New parses text; an empty text selects DefaultTemplate.
func New(text string) (*Renderer, error) {
	if strings.TrimSpace(text) == "" {
		text = DefaultTemplate
	}

	tmpl, err := template.New("label").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the template and trims surrounding whitespace.
func (r *Renderer) Render(data Data) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render label: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
