package render

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/dgallion1/gridgest/internal/editors"
	"github.com/dgallion1/gridgest/internal/layout"
)

func buildDoc(t *testing.T, src string) *layout.Document {
	t.Helper()
	f := layout.NewFactory()
	editors.Register(f)
	doc, err := layout.Parse(strings.NewReader(src), f)
	if err != nil {
		t.Fatalf("build layout: %v", err)
	}
	return doc
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRenderControl_RichTextPassesMarkupThrough(t *testing.T) {
	doc := buildDoc(t, `{"sections": [{"rows": [{"areas": [{"controls": [
		{"editor": {"alias": "rte"}, "value": "<p>Hello</p>"}
	]}]}]}]}`)
	r := newRenderer(t)

	out, err := r.RenderControl(doc.Controls()[0], "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "<p>Hello</p>" {
		t.Errorf("expected markup passed through, got %q", out)
	}
}

func TestRenderControl_GenericFallsBackToDefaultTemplate(t *testing.T) {
	doc := buildDoc(t, `{"sections": [{"rows": [{"areas": [{"controls": [
		{"editor": {"alias": "future-widget"}, "value": "x"}
	]}]}]}]}`)
	r := newRenderer(t)

	out, err := r.RenderControl(doc.Controls()[0], "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `data-editor="future-widget"`) {
		t.Errorf("expected generic wrapper carrying the alias, got %q", out)
	}
}

func TestRenderControl_ExplicitViewMustExist(t *testing.T) {
	doc := buildDoc(t, `{"sections": [{"rows": [{"areas": [{"controls": [
		{"editor": {"alias": "headline"}, "value": "Hi"}
	]}]}]}]}`)
	r := newRenderer(t)

	_, err := r.RenderControl(doc.Controls()[0], "no-such-view")
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestRenderControl_NilControl(t *testing.T) {
	r := newRenderer(t)
	_, err := r.RenderControl(nil, "")
	if !errors.Is(err, layout.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestRenderRow_WrapsAreasInOrder(t *testing.T) {
	doc := buildDoc(t, `{"sections": [{"rows": [{
		"id": "hero", "name": "Hero Banner",
		"areas": [
			{"controls": [{"editor": {"alias": "headline"}, "value": "First"}]},
			{"controls": [{"editor": {"alias": "headline"}, "value": "Second"}]}
		]
	}]}]}`)
	r := newRenderer(t)

	out, err := r.RenderRow(doc.Sections[0].Rows[0], "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `id="hero"`) || !strings.Contains(out, `data-row="Hero Banner"`) {
		t.Errorf("row identity missing from output: %q", out)
	}
	first := strings.Index(out, "First")
	second := strings.Index(out, "Second")
	if first < 0 || second < 0 || first > second {
		t.Errorf("areas rendered out of order: %q", out)
	}
}

func TestRenderDocument_MarkdownConverted(t *testing.T) {
	doc := buildDoc(t, `{"sections": [{"grid": 12, "rows": [{"areas": [{"controls": [
		{"editor": {"alias": "markdown"}, "value": "# Heading"}
	]}]}]}]}`)
	r := newRenderer(t)

	out, err := r.RenderDocument(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "Heading") {
		t.Errorf("expected converted markdown in output, got %q", out)
	}
	if !strings.Contains(out, `data-grid="12"`) {
		t.Errorf("expected section wrapper, got %q", out)
	}
}

func TestRenderer_OverrideDir(t *testing.T) {
	dir := t.TempDir()
	if err := writeFile(dir+"/row-hero.tmpl", `{{define "row-hero"}}<section class="hero">{{.Content}}</section>{{end}}`); err != nil {
		t.Fatal(err)
	}

	r, err := NewFromDir(dir)
	if err != nil {
		t.Fatalf("NewFromDir: %v", err)
	}

	doc := buildDoc(t, `{"sections": [{"rows": [{
		"name": "Hero",
		"areas": [{"controls": [{"editor": {"alias": "headline"}, "value": "Big"}]}]
	}]}]}`)

	out, err := r.RenderRow(doc.Sections[0].Rows[0], "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `class="hero"`) {
		t.Errorf("expected override template used for row named Hero, got %q", out)
	}
}

func TestSlug(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Hero Banner", "hero-banner"},
		{"  Article ", "article"},
		{"Two  Col_Layout", "two-col-layout"},
		{"", ""},
		{"Ünïcode Røw", "ncode-rw"},
	}
	for _, c := range cases {
		if got := Slug(c.in); got != c.want {
			t.Errorf("Slug(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
