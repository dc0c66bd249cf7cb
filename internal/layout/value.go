package layout

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Loose-field accessors over the generic document value. Layout documents
// are authored by tooling that is sloppy about scalar types (column spans
// arrive as numbers or numeric strings), so these coerce where reasonable
// and fall back to the zero value instead of failing.

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func intField(obj map[string]any, key string) int {
	switch v := obj[key].(type) {
	case float64:
		return int(v)
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

func mapField(obj map[string]any, key string) map[string]any {
	m, _ := obj[key].(map[string]any)
	return m
}

// arrayField returns the array at key. An absent or null field is the
// normal empty case; a present field of any other shape is malformed.
func arrayField(obj map[string]any, key string) ([]any, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q must be an array, got %T", ErrMalformedNode, key, v)
	}
	return arr, nil
}

func objectElem(v any, field string, i int) (map[string]any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s[%d] must be an object, got %T", ErrMalformedNode, field, i, v)
	}
	return obj, nil
}

// extraFields copies every field the fixed schema does not claim. Authors
// attach custom fields to layout nodes; the model carries them through
// untouched.
func extraFields(obj map[string]any, schema ...string) map[string]any {
	var extra map[string]any
	for k, v := range obj {
		claimed := false
		for _, s := range schema {
			if k == s {
				claimed = true
				break
			}
		}
		if claimed {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = v
	}
	return extra
}

// editorField reads the editor descriptor, which is a full object in
// current documents but a bare alias string in older ones.
func editorField(obj map[string]any) Editor {
	switch v := obj["editor"].(type) {
	case string:
		return Editor{Alias: v}
	case map[string]any:
		return Editor{
			Alias: stringField(v, "alias"),
			Name:  stringField(v, "name"),
			View:  stringField(v, "view"),
		}
	}
	return Editor{}
}
