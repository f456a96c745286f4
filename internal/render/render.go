// Package render produces the HTML fragments served for verb sections.
// Rendering is a pure function of its view model: rendering the same
// resolved conjugation twice yields identical markup, so fragments can
// be re-requested freely after a preverb switch.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer holds the parsed fragment templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// VerbSection writes the full section fragment for a verb: the header,
// the preverb selector when the verb has several preverbs, the overview
// grid, and the per-tense panels.
func (r *Renderer) VerbSection(w io.Writer, data SectionData) error {
	if err := r.tmpl.ExecuteTemplate(w, "section.tmpl", data); err != nil {
		return fmt.Errorf("render verb section %d: %w", data.VerbID, err)
	}
	return nil
}

// ErrorPanel writes the placeholder shown when a verb's data could not
// be loaded.
func (r *Renderer) ErrorPanel(w io.Writer, data ErrorData) error {
	if err := r.tmpl.ExecuteTemplate(w, "error.tmpl", data); err != nil {
		return fmt.Errorf("render error panel %d: %w", data.VerbID, err)
	}
	return nil
}
