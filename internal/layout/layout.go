// Package layout builds a typed, immutable document model from a generic
// page-layout document: sections containing rows, rows containing areas,
// areas containing controls whose concrete shape is decided at build time by
// the control's editor alias.
//
// A model is produced in one call to Build (or Parse) and is read-only
// afterward: parent back-references and prev/next sibling links are set
// during construction and never change, so a built Document is safe for
// concurrent reads without locking.
package layout

// Document is the root of a built layout. It owns all descendant nodes.
type Document struct {
	Name     string
	Sections []*Section
	Extra    map[string]any // source fields outside the fixed schema
}

// Section is a horizontal page band holding an ordered sequence of rows.
type Section struct {
	Grid  int
	Rows  []*Row
	Extra map[string]any

	doc *Document
}

// Document returns the owning document.
func (s *Section) Document() *Document { return s.doc }

// Row holds an ordered sequence of areas. Rows within the same section are
// doubly linked in source order.
type Row struct {
	ID     string
	Name   string
	Label  string
	Areas  []*Area
	Styles map[string]any
	Config map[string]any
	Extra  map[string]any

	section    *Section
	prev, next *Row
}

// Section returns the owning section.
func (r *Row) Section() *Section { return r.section }

// PreviousRow returns the row before this one within the same section, or
// nil for the first row.
func (r *Row) PreviousRow() *Row { return r.prev }

// NextRow returns the row after this one within the same section, or nil
// for the last row.
func (r *Row) NextRow() *Row { return r.next }

// Area holds an ordered sequence of controls. Areas within the same row are
// doubly linked in source order.
type Area struct {
	Grid     int
	Controls []Control
	Styles   map[string]any
	Config   map[string]any
	Extra    map[string]any

	row        *Row
	prev, next *Area
}

// Row returns the owning row.
func (a *Area) Row() *Row { return a.row }

// PreviousArea returns the area before this one within the same row, or nil
// for the first area.
func (a *Area) PreviousArea() *Area { return a.prev }

// NextArea returns the area after this one within the same row, or nil for
// the last area.
func (a *Area) NextArea() *Area { return a.next }

// Editor identifies a control's concrete kind.
type Editor struct {
	Alias string
	Name  string
	View  string
}

// Control is the polymorphic leaf of a layout. Concrete variants embed
// ControlBase and define their own validity and searchable-text rules.
type Control interface {
	Editor() Editor
	Area() *Area
	Value() any
	Extra() map[string]any

	// IsValid reports whether the control carries meaningful authored
	// content. Some kinds are invalid even when structurally present,
	// e.g. an empty rich-text control.
	IsValid() bool

	// SearchableText returns the control's plain-text content for
	// indexing, or "" for controls with no textual content.
	SearchableText() string
}

// ControlBase carries the shape every control shares: the editor
// descriptor, the raw value, unrecognized source fields and the owning
// area. Variant types embed it by value.
type ControlBase struct {
	editor Editor
	value  any
	extra  map[string]any
	area   *Area
}

func (b *ControlBase) Editor() Editor        { return b.editor }
func (b *ControlBase) Area() *Area           { return b.area }
func (b *ControlBase) Value() any            { return b.value }
func (b *ControlBase) Extra() map[string]any { return b.extra }

// GenericControl is the fallback for editor aliases with no registered
// constructor. It keeps the base shape intact so documents authored with
// newer editors still build and render as opaque blocks.
type GenericControl struct {
	ControlBase
}

// IsValid reports true when the control carries a non-empty value.
func (c *GenericControl) IsValid() bool {
	switch v := c.value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	}
	return true
}

// SearchableText returns "" — an unknown editor's value has no known
// textual interpretation.
func (c *GenericControl) SearchableText() string { return "" }
