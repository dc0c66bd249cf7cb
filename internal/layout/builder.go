package layout

import (
	"encoding/json"
	"fmt"
	"io"
)

// Parse decodes a JSON layout document from r and builds its model with f.
func Parse(r io.Reader, f *Factory) (*Document, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", ErrInvalidArgument)
	}
	var root map[string]any
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: decode layout: %v", ErrMalformedNode, err)
	}
	return Build(root, f)
}

// Build constructs a Document from an already-decoded layout value. The
// walk is strictly top-down — a parent always exists before its children
// are requested from the factory — and once a full child sequence exists,
// one forward pass wires the prev/next sibling links for that level.
// Wiring after construction means no node is ever observed half-linked and
// no two-phase shell-then-fill scheme is needed.
//
// Any structural field of the wrong shape aborts the whole build: callers
// either get a fully built, fully wired document or an error, never a
// partial tree.
func Build(root map[string]any, f *Factory) (*Document, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil layout document", ErrInvalidArgument)
	}
	if f == nil {
		return nil, fmt.Errorf("%w: nil factory", ErrInvalidArgument)
	}

	doc := &Document{
		Name:  stringField(root, "name"),
		Extra: extraFields(root, "name", "sections"),
	}

	sections, err := arrayField(root, "sections")
	if err != nil {
		return nil, err
	}
	for i, el := range sections {
		obj, err := objectElem(el, "sections", i)
		if err != nil {
			return nil, err
		}
		sec, err := f.CreateSection(obj, doc)
		if err != nil {
			return nil, err
		}
		if err := buildRows(obj, f, sec); err != nil {
			return nil, err
		}
		doc.Sections = append(doc.Sections, sec)
	}
	return doc, nil
}

func buildRows(obj map[string]any, f *Factory, sec *Section) error {
	rows, err := arrayField(obj, "rows")
	if err != nil {
		return err
	}
	for i, el := range rows {
		rowObj, err := objectElem(el, "rows", i)
		if err != nil {
			return err
		}
		row, err := f.CreateRow(rowObj, sec)
		if err != nil {
			return err
		}
		if err := buildAreas(rowObj, f, row); err != nil {
			return err
		}
		sec.Rows = append(sec.Rows, row)
	}
	// The sequence is complete; link each adjacent pair. First and last
	// keep nil prev/next.
	for i := 1; i < len(sec.Rows); i++ {
		sec.Rows[i].prev = sec.Rows[i-1]
		sec.Rows[i-1].next = sec.Rows[i]
	}
	return nil
}

func buildAreas(obj map[string]any, f *Factory, row *Row) error {
	areas, err := arrayField(obj, "areas")
	if err != nil {
		return err
	}
	for i, el := range areas {
		areaObj, err := objectElem(el, "areas", i)
		if err != nil {
			return err
		}
		area, err := f.CreateArea(areaObj, row)
		if err != nil {
			return err
		}
		if err := buildControls(areaObj, f, area); err != nil {
			return err
		}
		row.Areas = append(row.Areas, area)
	}
	for i := 1; i < len(row.Areas); i++ {
		row.Areas[i].prev = row.Areas[i-1]
		row.Areas[i-1].next = row.Areas[i]
	}
	return nil
}

func buildControls(obj map[string]any, f *Factory, area *Area) error {
	controls, err := arrayField(obj, "controls")
	if err != nil {
		return err
	}
	for i, el := range controls {
		ctrlObj, err := objectElem(el, "controls", i)
		if err != nil {
			return err
		}
		ctrl, err := f.CreateControl(ctrlObj, area)
		if err != nil {
			return err
		}
		area.Controls = append(area.Controls, ctrl)
	}
	return nil
}
