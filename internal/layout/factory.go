package layout

// ControlFunc constructs a concrete control variant. The base already
// carries the editor descriptor, raw value, leftover source fields and the
// owning area; obj is the full generic object for constructors that read
// variant-specific fields outside "value".
type ControlFunc func(base ControlBase, obj map[string]any) (Control, error)

// Factory resolves generic layout objects into concrete nodes. The
// alias-to-constructor mapping is per instance — there is no global
// registry, so factories with different capabilities can coexist. A factory
// must be treated as immutable once a build using it has started.
type Factory struct {
	controls map[string]ControlFunc
}

func NewFactory() *Factory {
	return &Factory{controls: make(map[string]ControlFunc)}
}

// RegisterControl maps an editor alias to a constructor, replacing any
// previous registration for the same alias.
func (f *Factory) RegisterControl(alias string, fn ControlFunc) {
	f.controls[alias] = fn
}

// CreateSection constructs a section from its generic object. The document
// must already exist; the section stores its back-reference immediately.
func (f *Factory) CreateSection(obj map[string]any, doc *Document) (*Section, error) {
	return &Section{
		Grid:  intField(obj, "grid"),
		Extra: extraFields(obj, "grid", "rows"),
		doc:   doc,
	}, nil
}

// CreateRow constructs a row from its generic object. Missing optional
// fields resolve to empty, never to an error.
func (f *Factory) CreateRow(obj map[string]any, section *Section) (*Row, error) {
	return &Row{
		ID:      stringField(obj, "id"),
		Name:    stringField(obj, "name"),
		Label:   stringField(obj, "label"),
		Styles:  mapField(obj, "styles"),
		Config:  mapField(obj, "config"),
		Extra:   extraFields(obj, "id", "name", "label", "styles", "config", "areas"),
		section: section,
	}, nil
}

// CreateArea constructs an area from its generic object.
func (f *Factory) CreateArea(obj map[string]any, row *Row) (*Area, error) {
	return &Area{
		Grid:   intField(obj, "grid"),
		Styles: mapField(obj, "styles"),
		Config: mapField(obj, "config"),
		Extra:  extraFields(obj, "grid", "styles", "config", "controls"),
		row:    row,
	}, nil
}

// CreateControl reads the control's editor alias and dispatches to the
// registered constructor. An alias with no registration yields a
// *GenericControl — unknown editors never fail the build.
func (f *Factory) CreateControl(obj map[string]any, area *Area) (Control, error) {
	base := ControlBase{
		editor: editorField(obj),
		value:  obj["value"],
		extra:  extraFields(obj, "editor", "value"),
		area:   area,
	}
	if fn, ok := f.controls[base.editor.Alias]; ok {
		return fn(base, obj)
	}
	return &GenericControl{ControlBase: base}, nil
}
