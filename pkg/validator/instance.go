package validator

import "encoding/json"

// Instance is a materialized value of a declared shape: a mapping from field
// name to value where nested fields hold further *Instance values or []any of
// them. Instances are created by the Materializer and owned by the caller.
type Instance struct {
	shape  ShapeID
	values map[string]any

	// malformed holds the raw input when it was not an object at all.
	malformed bool
	raw       any
}

// NewInstance tags values with shape. The map is used as-is.
func NewInstance(shape ShapeID, values map[string]any) *Instance {
	if values == nil {
		values = make(map[string]any)
	}
	return &Instance{shape: shape, values: values}
}

// Shape returns the shape the instance was materialized for.
func (i *Instance) Shape() ShapeID {
	return i.shape
}

// Get returns the value of field and whether the key is present.
func (i *Instance) Get(field string) (any, bool) {
	v, ok := i.values[field]
	return v, ok
}

// Has reports whether field is present with a non-nil value.
func (i *Instance) Has(field string) bool {
	v, ok := i.values[field]
	return ok && v != nil
}

// Set assigns a field value.
func (i *Instance) Set(field string, value any) {
	i.values[field] = value
}

// Len returns the number of present keys.
func (i *Instance) Len() int {
	return len(i.values)
}

// Raw returns the original input when it was not an object.
func (i *Instance) Raw() (any, bool) {
	return i.raw, i.malformed
}

// Map converts the instance to plain nested maps and slices, suitable for
// encoding. Nested instances are converted recursively.
func (i *Instance) Map() map[string]any {
	out := make(map[string]any, len(i.values))
	for k, v := range i.values {
		out[k] = plain(v)
	}
	return out
}

// MarshalJSON encodes the instance as a JSON object. Keys are sorted by
// encoding/json, which keeps the output stable across calls.
func (i *Instance) MarshalJSON() ([]byte, error) {
	if i.malformed {
		return json.Marshal(i.raw)
	}
	return json.Marshal(i.Map())
}

// Decode copies the instance into dst, typically a pointer to a struct with
// json tags.
func (i *Instance) Decode(dst any) error {
	b, err := i.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

func plain(v any) any {
	switch val := v.(type) {
	case *Instance:
		if val == nil {
			return nil
		}
		if val.malformed {
			return val.raw
		}
		return val.Map()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}
