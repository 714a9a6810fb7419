package validator

import (
	"reflect"
)

// Materialize converts an untyped input, typically decoded JSON, into an
// instance of shape. Only declared fields are copied; absent keys stay absent
// and values are never coerced. Nested fields are instantiated recursively.
// Structurally invalid nested values are passed through unchanged so the
// evaluator can report them. The only errors are declaration errors: an
// unknown shape or an unresolvable nested reference.
//
// Materializing an existing instance of the same shape yields an equal instance.
func (e *Engine) Materialize(shape ShapeID, raw any) (*Instance, error) {
	e.registry.Freeze()

	s, err := e.registry.shape(shape)
	if err != nil {
		return nil, err
	}
	return e.materialize(s, raw)
}

func (e *Engine) materialize(s *shapeEntry, raw any) (*Instance, error) {
	values, ok := asObject(raw)
	if !ok {
		return &Instance{shape: s.id, values: map[string]any{}, malformed: true, raw: raw}, nil
	}

	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		v, ok := values[f.name]
		if !ok {
			continue
		}
		if !f.nested || v == nil {
			out[f.name] = v
			continue
		}

		nested, err := e.registry.resolve(s.id, f)
		if err != nil {
			return nil, err
		}

		if !f.array {
			if out[f.name], err = e.materializeElement(nested, v); err != nil {
				return nil, err
			}
			continue
		}

		items, ok := asSequence(v)
		if !ok {
			out[f.name] = v
			continue
		}
		elems := make([]any, len(items))
		for i, item := range items {
			if elems[i], err = e.materializeElement(nested, item); err != nil {
				return nil, err
			}
		}
		out[f.name] = elems
	}

	return &Instance{shape: s.id, values: out}, nil
}

// materializeElement instantiates one nested value, passing non-objects through.
func (e *Engine) materializeElement(s *shapeEntry, v any) (any, error) {
	if _, ok := asObject(v); !ok {
		return v, nil
	}
	return e.materialize(s, v)
}

// asObject returns the key/value view of an object-like value.
func asObject(v any) (map[string]any, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case *Instance:
		if val == nil || val.malformed {
			return nil, false
		}
		return val.values, true
	case map[string]any:
		return val, true
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = item
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// asSequence returns the elements of a slice or array value. Byte slices and
// strings are not sequences.
func asSequence(v any) ([]any, bool) {
	switch val := v.(type) {
	case nil, []byte, string:
		return nil, false
	case []any:
		return val, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
