package validator

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
)

// ShapeID identifies a declared shape.
type ShapeID string

// ShapeMetadata is a read-only snapshot of a declared shape.
type ShapeMetadata struct {
	ID     ShapeID
	Fields []FieldMetadata
}

// Field returns the metadata of the named field.
func (m ShapeMetadata) Field(name string) (FieldMetadata, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldMetadata{}, false
}

// FieldMetadata is a read-only snapshot of a declared field. Rules are listed
// in declaration order, which is also evaluation order.
type FieldMetadata struct {
	Name     string
	Rules    []Rule
	Nested   bool
	Array    bool
	Optional bool
	// NestedShape is the resolved nested shape, empty when the field is not
	// nested or its reference does not resolve.
	NestedShape ShapeID
}

type shapeEntry struct {
	id     ShapeID
	fields []*fieldEntry
	index  map[string]*fieldEntry
}

type fieldEntry struct {
	name     string
	rules    []Rule
	nested   bool
	array    bool
	optional bool

	ref      func() ShapeID
	refOnce  sync.Once
	resolved ShapeID
}

func (f *fieldEntry) nestedShape() ShapeID {
	f.refOnce.Do(func() {
		f.resolved = f.ref()
	})
	return f.resolved
}

// Registry stores shape declarations: for each shape, its fields in
// declaration order, their rules and nesting flags. A registry is populated
// once during initialization and frozen by the first Materialize or Validate
// call; after that it is read without locking and every registration call
// fails with ErrRegistryFrozen.
type Registry struct {
	mu     sync.RWMutex
	shapes map[ShapeID]*shapeEntry
	order  []ShapeID
	frozen atomic.Bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{shapes: make(map[ShapeID]*shapeEntry)}
}

// DeclareShape creates an empty shape entry. Declaring an existing shape is a no-op.
func (r *Registry) DeclareShape(shape ShapeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.shapeForWrite(shape)
	return err
}

// DeclareField creates a field entry without rules. Declared fields are copied
// by the Materializer even when nothing validates them.
func (r *Registry) DeclareField(shape ShapeID, field string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.fieldForWrite(shape, field)
	return err
}

// Register appends rule to the rule list of shape.field, creating the shape
// and field entries on first use. Registering a leaf rule identical to one
// already attached to the field is a declaration error. Rules built by Func,
// FuncContext and Async are never duplicates of each other.
func (r *Registry) Register(shape ShapeID, field string, rule Rule) error {
	if rule.IsZero() {
		return fmt.Errorf("%w: %s.%s", ErrInvalidRule, shape, field)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.fieldForWrite(shape, field)
	if err != nil {
		return err
	}

	if rule.eval == nil && !rule.opaque {
		for _, existing := range f.rules {
			if sameRule(existing, rule) {
				return fmt.Errorf("%w: %q on %s.%s", ErrDuplicateRule, rule.ID(), shape, field)
			}
		}
	}

	f.rules = append(f.rules, rule)
	return nil
}

// RegisterNested marks shape.field as holding another shape, or an ordered
// sequence of them when isArray is set. ref is resolved lazily on first use so
// shapes may reference each other regardless of declaration order.
func (r *Registry) RegisterNested(shape ShapeID, field string, ref func() ShapeID, isArray bool) error {
	if ref == nil {
		return fmt.Errorf("%w: %s.%s", ErrNilShapeRef, shape, field)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.fieldForWrite(shape, field)
	if err != nil {
		return err
	}
	if f.nested {
		return fmt.Errorf("%w: %s.%s", ErrDuplicateNested, shape, field)
	}

	f.nested = true
	f.array = isArray
	f.ref = ref
	return nil
}

// SetOptional marks shape.field as optional: when its value is absent only
// presence rules run.
func (r *Registry) SetOptional(shape ShapeID, field string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.fieldForWrite(shape, field)
	if err != nil {
		return err
	}
	f.optional = true
	return nil
}

// Freeze ends the declaration phase. It is safe to call more than once.
func (r *Registry) Freeze() {
	if r.frozen.Load() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen.Store(true)
}

// Frozen reports whether the declaration phase has ended.
func (r *Registry) Frozen() bool {
	return r.frozen.Load()
}

// Shapes lists declared shapes in declaration order.
func (r *Registry) Shapes() []ShapeID {
	if !r.frozen.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	return slices.Clone(r.order)
}

// Lookup returns a snapshot of the shape's metadata or an error wrapping
// ErrUnknownShape.
func (r *Registry) Lookup(shape ShapeID) (ShapeMetadata, error) {
	s, err := r.shape(shape)
	if err != nil {
		return ShapeMetadata{}, err
	}

	if !r.frozen.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}

	meta := ShapeMetadata{ID: s.id, Fields: make([]FieldMetadata, 0, len(s.fields))}
	for _, f := range s.fields {
		fm := FieldMetadata{
			Name:     f.name,
			Rules:    slices.Clone(f.rules),
			Nested:   f.nested,
			Array:    f.array,
			Optional: f.optional,
		}
		if f.nested {
			if id := f.nestedShape(); r.has(id) {
				fm.NestedShape = id
			}
		}
		meta.Fields = append(meta.Fields, fm)
	}
	return meta, nil
}

// shape returns the live entry for reading.
func (r *Registry) shape(id ShapeID) (*shapeEntry, error) {
	if !r.frozen.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	s, ok := r.shapes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, id)
	}
	return s, nil
}

func (r *Registry) has(id ShapeID) bool {
	_, ok := r.shapes[id]
	return ok
}

// resolve returns the nested shape of f or an error wrapping ErrUnresolvedShape.
func (r *Registry) resolve(owner ShapeID, f *fieldEntry) (*shapeEntry, error) {
	id := f.nestedShape()
	s, err := r.shape(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s.%s references %q", ErrUnresolvedShape, owner, f.name, id)
	}
	return s, nil
}

func (r *Registry) shapeForWrite(id ShapeID) (*shapeEntry, error) {
	if r.frozen.Load() {
		return nil, ErrRegistryFrozen
	}
	if id == "" {
		return nil, ErrEmptyShapeID
	}

	s, ok := r.shapes[id]
	if !ok {
		s = &shapeEntry{id: id, index: make(map[string]*fieldEntry)}
		r.shapes[id] = s
		r.order = append(r.order, id)
	}
	return s, nil
}

func (r *Registry) fieldForWrite(shape ShapeID, field string) (*fieldEntry, error) {
	if field == "" {
		return nil, fmt.Errorf("%w: shape %q", ErrEmptyFieldName, shape)
	}

	s, err := r.shapeForWrite(shape)
	if err != nil {
		return nil, err
	}

	f, ok := s.index[field]
	if !ok {
		f = &fieldEntry{name: field}
		s.index[field] = f
		s.fields = append(s.fields, f)
	}
	return f, nil
}

func sameRule(a, b Rule) bool {
	return !a.opaque && a.id == b.id &&
		a.hasOverride == b.hasOverride &&
		a.message == b.message &&
		reflect.DeepEqual(a.params, b.params)
}
