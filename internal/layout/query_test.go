package layout

import (
	"strings"
	"testing"
)

func TestIsValid_RowBoundaries(t *testing.T) {
	doc := mustBuild(t, `{
		"sections": [{"rows": [
			{"name": "empty"},
			{"name": "blank", "areas": [{"controls": [{"editor": "text", "value": "   "}]}]},
			{"name": "good", "areas": [
				{"controls": [{"editor": "text", "value": ""}]},
				{"controls": [{"editor": "text", "value": "content"}]}
			]}
		]}]
	}`)

	rows := doc.Sections[0].Rows
	if rows[0].IsValid() {
		t.Error("row with zero areas must be invalid")
	}
	if rows[1].IsValid() {
		t.Error("row whose controls are all blank must be invalid")
	}
	if !rows[2].IsValid() {
		t.Error("row with one valid area must be valid")
	}
	if !doc.IsValid() {
		t.Error("document with a valid row must be valid")
	}
}

func TestIsValid_EmptyDocument(t *testing.T) {
	doc := mustBuild(t, `{"sections": []}`)
	if doc.IsValid() {
		t.Error("document with no sections must be invalid")
	}
}

func TestSearchableText_OrderSensitive(t *testing.T) {
	doc := mustBuild(t, `{
		"sections": [{"rows": [{"areas": [
			{"controls": [{"editor": "text", "value": "foo"}]},
			{"controls": [{"editor": "text", "value": "bar"}]}
		]}]}]
	}`)

	got := doc.Sections[0].Rows[0].SearchableText()
	if got != "foobar" {
		t.Errorf("expected %q, got %q", "foobar", got)
	}
	if doc.SearchableText() != "foobar" {
		t.Errorf("document text: expected %q, got %q", "foobar", doc.SearchableText())
	}
}

func TestSearchableText_EmptyTree(t *testing.T) {
	doc := mustBuild(t, `{"sections": [{"rows": [{"areas": []}]}]}`)
	if doc.SearchableText() != "" {
		t.Errorf("expected empty text, got %q", doc.SearchableText())
	}
}

func TestControls_CardinalityAndOrder(t *testing.T) {
	doc := mustBuild(t, `{
		"sections": [
			{"rows": [
				{"areas": [
					{"controls": [{"editor": "text", "value": "a"}, {"editor": "text", "value": "b"}]},
					{"controls": [{"editor": "other", "value": "c"}]}
				]},
				{"areas": [{"controls": [{"editor": "text", "value": "d"}]}]}
			]},
			{"rows": [{"areas": [{"controls": [{"editor": "other", "value": "e"}]}]}]}
		]
	}`)

	all := doc.Controls()
	if len(all) != 5 {
		t.Fatalf("expected 5 controls, got %d", len(all))
	}

	// Document order: flatten left-to-right, top-to-bottom.
	wantOrder := []string{"a", "b", "c", "d", "e"}
	for i, w := range wantOrder {
		v, _ := all[i].Value().(string)
		if v != w {
			t.Errorf("controls[%d]: expected value %q, got %q", i, w, v)
		}
	}

	// The alias overload must agree with filtering the full list.
	byAlias := doc.ControlsByEditor("text")
	var filtered []Control
	for _, c := range all {
		if c.Editor().Alias == "text" {
			filtered = append(filtered, c)
		}
	}
	if len(byAlias) != len(filtered) {
		t.Fatalf("alias overload returned %d, manual filter %d", len(byAlias), len(filtered))
	}
	for i := range byAlias {
		if byAlias[i] != filtered[i] {
			t.Errorf("alias overload and manual filter diverge at %d", i)
		}
	}
}

func TestControlsFunc_Predicate(t *testing.T) {
	doc := mustBuild(t, `{
		"sections": [{"rows": [{"areas": [{"controls": [
			{"editor": "text", "value": "keep"},
			{"editor": "text", "value": ""},
			{"editor": "text", "value": "also keep"}
		]}]}]}]
	}`)

	valid := doc.ControlsFunc(func(c Control) bool { return c.IsValid() })
	if len(valid) != 2 {
		t.Fatalf("expected 2 valid controls, got %d", len(valid))
	}
	if !strings.Contains(valid[1].SearchableText(), "also") {
		t.Errorf("predicate results out of order: %q", valid[1].SearchableText())
	}
}

func TestControls_RowAndSectionScopes(t *testing.T) {
	doc := mustBuild(t, `{
		"sections": [{"rows": [
			{"areas": [{"controls": [{"editor": "text", "value": "x"}]}]},
			{"areas": [{"controls": [{"editor": "text", "value": "y"}, {"editor": "text", "value": "z"}]}]}
		]}]
	}`)

	if n := len(doc.Sections[0].Rows[0].Controls()); n != 1 {
		t.Errorf("row 0: expected 1 control, got %d", n)
	}
	if n := len(doc.Sections[0].Rows[1].Controls()); n != 2 {
		t.Errorf("row 1: expected 2 controls, got %d", n)
	}
	if n := len(doc.Sections[0].Controls()); n != 3 {
		t.Errorf("section: expected 3 controls, got %d", n)
	}
}
