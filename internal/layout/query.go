package layout

import "strings"

// Derived, on-demand properties of a built model. None of these can fail:
// they walk an already-valid tree and treat empty sequences as the normal
// zero case.

// IsValid reports whether any section holds meaningful authored content.
func (d *Document) IsValid() bool {
	for _, s := range d.Sections {
		if s.IsValid() {
			return true
		}
	}
	return false
}

// IsValid reports whether any row in the section is valid.
func (s *Section) IsValid() bool {
	for _, r := range s.Rows {
		if r.IsValid() {
			return true
		}
	}
	return false
}

// IsValid reports whether any area in the row is valid. A row with no
// areas is not valid.
func (r *Row) IsValid() bool {
	for _, a := range r.Areas {
		if a.IsValid() {
			return true
		}
	}
	return false
}

// IsValid reports whether any control in the area is valid.
func (a *Area) IsValid() bool {
	for _, c := range a.Controls {
		if c.IsValid() {
			return true
		}
	}
	return false
}

// ControlsFunc returns the controls matching pred in source order
// (left-to-right within an area, areas within a row, rows within a
// section, sections within the document). A nil pred matches everything.
// It is the primitive the other enumerations are built on.
func (d *Document) ControlsFunc(pred func(Control) bool) []Control {
	var out []Control
	for _, s := range d.Sections {
		out = append(out, s.ControlsFunc(pred)...)
	}
	return out
}

func (s *Section) ControlsFunc(pred func(Control) bool) []Control {
	var out []Control
	for _, r := range s.Rows {
		out = append(out, r.ControlsFunc(pred)...)
	}
	return out
}

func (r *Row) ControlsFunc(pred func(Control) bool) []Control {
	var out []Control
	for _, a := range r.Areas {
		out = append(out, a.ControlsFunc(pred)...)
	}
	return out
}

func (a *Area) ControlsFunc(pred func(Control) bool) []Control {
	var out []Control
	for _, c := range a.Controls {
		if pred == nil || pred(c) {
			out = append(out, c)
		}
	}
	return out
}

// Controls returns every control in source order. At the area level the
// Controls field already is that enumeration.
func (d *Document) Controls() []Control { return d.ControlsFunc(nil) }
func (s *Section) Controls() []Control  { return s.ControlsFunc(nil) }
func (r *Row) Controls() []Control      { return r.ControlsFunc(nil) }

func byEditor(alias string) func(Control) bool {
	return func(c Control) bool { return c.Editor().Alias == alias }
}

// ControlsByEditor returns the controls whose editor alias matches exactly.
func (d *Document) ControlsByEditor(alias string) []Control {
	return d.ControlsFunc(byEditor(alias))
}

func (s *Section) ControlsByEditor(alias string) []Control {
	return s.ControlsFunc(byEditor(alias))
}

func (r *Row) ControlsByEditor(alias string) []Control {
	return r.ControlsFunc(byEditor(alias))
}

// SearchableText concatenates the searchable text of every section in
// source order. No separator is inserted at any level; control variants
// that need word breaks include them in their own text.
func (d *Document) SearchableText() string {
	var b strings.Builder
	for _, s := range d.Sections {
		b.WriteString(s.SearchableText())
	}
	return b.String()
}

func (s *Section) SearchableText() string {
	var b strings.Builder
	for _, r := range s.Rows {
		b.WriteString(r.SearchableText())
	}
	return b.String()
}

func (r *Row) SearchableText() string {
	var b strings.Builder
	for _, a := range r.Areas {
		b.WriteString(a.SearchableText())
	}
	return b.String()
}

func (a *Area) SearchableText() string {
	var b strings.Builder
	for _, c := range a.Controls {
		b.WriteString(c.SearchableText())
	}
	return b.String()
}
