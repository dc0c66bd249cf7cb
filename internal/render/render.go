// Package render turns built layout models into HTML. It is a consumer of
// the model, not part of it: rendering failures never affect the model, and
// the model only promises enough identity (row name, editor alias) to
// resolve a template.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/dgallion1/gridgest/internal/editors"
	"github.com/dgallion1/gridgest/internal/layout"
	"github.com/yuin/goldmark"
)

// ErrTemplateNotFound reports that an explicitly requested view has no
// template. It propagates to the caller; it is never swallowed.
var ErrTemplateNotFound = errors.New("template not found")

// Renderer renders layout nodes through html/template. Template names are
// resolved from an explicit view hint when given, otherwise from a name
// derived from the node itself: "row-<slug of row name>" for rows,
// "control-<editor alias>" for controls, falling back to the generic
// "row" / "control" templates.
type Renderer struct {
	tmpl *template.Template
}

// New returns a renderer with the built-in templates.
func New() (*Renderer, error) {
	t, err := template.New("gridgest").Parse(builtinTemplates)
	if err != nil {
		return nil, fmt.Errorf("parse builtin templates: %w", err)
	}
	return &Renderer{tmpl: t}, nil
}

// NewFromDir layers *.tmpl files from dir over the built-in templates, so
// a deployment can override or extend specific views.
func NewFromDir(dir string) (*Renderer, error) {
	r, err := New()
	if err != nil {
		return nil, err
	}
	t, err := r.tmpl.ParseGlob(dir + "/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates in %s: %w", dir, err)
	}
	r.tmpl = t
	return r, nil
}

type controlView struct {
	Editor layout.Editor
	Value  any
	Text   string
	HTML   template.HTML
	URL    string
	Alt    string
}

type rowView struct {
	ID      string
	Name    string
	Label   string
	Content template.HTML
}

// RenderControl renders one control. An empty view resolves to
// "control-<alias>" when such a template exists, else the generic
// "control" template; a non-empty view must exist.
func (r *Renderer) RenderControl(c layout.Control, view string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("%w: nil control", layout.ErrInvalidArgument)
	}
	t, err := r.lookup(view, "control-"+c.Editor().Alias, "control")
	if err != nil {
		return "", err
	}

	data := controlView{
		Editor: c.Editor(),
		Value:  c.Value(),
		Text:   c.SearchableText(),
	}
	switch v := c.(type) {
	case *editors.RichText:
		data.HTML = template.HTML(v.HTML)
	case *editors.Markdown:
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(v.Source), &buf); err != nil {
			return "", fmt.Errorf("render markdown: %w", err)
		}
		data.HTML = template.HTML(buf.String())
	case *editors.Embed:
		data.HTML = template.HTML(v.Markup)
	case *editors.Media:
		data.URL = v.URL
		data.Alt = v.AltText
	}

	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render control %q: %w", c.Editor().Alias, err)
	}
	return b.String(), nil
}

// RenderArea renders an area's controls in order inside an area wrapper.
func (r *Renderer) RenderArea(a *layout.Area, view string) (string, error) {
	if a == nil {
		return "", fmt.Errorf("%w: nil area", layout.ErrInvalidArgument)
	}
	var inner strings.Builder
	for _, c := range a.Controls {
		s, err := r.RenderControl(c, "")
		if err != nil {
			return "", err
		}
		inner.WriteString(s)
	}
	t, err := r.lookup(view, "", "area")
	if err != nil {
		return "", err
	}
	var b strings.Builder
	err = t.Execute(&b, struct {
		Grid    int
		Content template.HTML
	}{a.Grid, template.HTML(inner.String())})
	if err != nil {
		return "", fmt.Errorf("render area: %w", err)
	}
	return b.String(), nil
}

// RenderRow renders a row. An empty view resolves to "row-<slug>" from the
// row's own name when such a template exists, else the generic "row"
// template.
func (r *Renderer) RenderRow(row *layout.Row, view string) (string, error) {
	if row == nil {
		return "", fmt.Errorf("%w: nil row", layout.ErrInvalidArgument)
	}
	var inner strings.Builder
	for _, a := range row.Areas {
		s, err := r.RenderArea(a, "")
		if err != nil {
			return "", err
		}
		inner.WriteString(s)
	}
	t, err := r.lookup(view, "row-"+Slug(row.Name), "row")
	if err != nil {
		return "", err
	}
	var b strings.Builder
	err = t.Execute(&b, rowView{
		ID:      row.ID,
		Name:    row.Name,
		Label:   row.Label,
		Content: template.HTML(inner.String()),
	})
	if err != nil {
		return "", fmt.Errorf("render row %q: %w", row.Name, err)
	}
	return b.String(), nil
}

// RenderDocument renders the whole document with default views.
func (r *Renderer) RenderDocument(doc *layout.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("%w: nil document", layout.ErrInvalidArgument)
	}
	var b strings.Builder
	for _, sec := range doc.Sections {
		b.WriteString(fmt.Sprintf(`<div class="grid-section" data-grid="%d">`, sec.Grid))
		for _, row := range sec.Rows {
			s, err := r.RenderRow(row, "")
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		}
		b.WriteString(`</div>`)
	}
	return b.String(), nil
}

// lookup resolves a template. An explicit view must exist; a derived name
// may fall back to the generic template for that node kind.
func (r *Renderer) lookup(view, derived, generic string) (*template.Template, error) {
	if view != "" {
		if t := r.tmpl.Lookup(view); t != nil {
			return t, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, view)
	}
	if derived != "" && derived != "row-" && derived != "control-" {
		if t := r.tmpl.Lookup(derived); t != nil {
			return t, nil
		}
	}
	if t := r.tmpl.Lookup(generic); t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, generic)
}

// Slug derives a template name component from a display name:
// lowercased, spaces collapsed to dashes, everything else dropped.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			dash = true
		}
	}
	return b.String()
}

const builtinTemplates = `
{{define "row"}}<div class="grid-row"{{if .ID}} id="{{.ID}}"{{end}} data-row="{{.Name}}">{{.Content}}</div>{{end}}
{{define "area"}}<div class="grid-area" data-grid="{{.Grid}}">{{.Content}}</div>{{end}}
{{define "control"}}<div class="grid-control" data-editor="{{.Editor.Alias}}">{{.Text}}</div>{{end}}
{{define "control-rte"}}{{.HTML}}{{end}}
{{define "control-markdown"}}<div class="markdown">{{.HTML}}</div>{{end}}
{{define "control-headline"}}<h2>{{.Text}}</h2>{{end}}
{{define "control-quote"}}<blockquote>{{.Text}}</blockquote>{{end}}
{{define "control-media"}}<figure><img src="{{.URL}}" alt="{{.Alt}}"></figure>{{end}}
{{define "control-embed"}}<div class="embed">{{.HTML}}</div>{{end}}
`
