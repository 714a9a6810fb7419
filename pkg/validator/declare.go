package validator

import (
	"errors"
	"fmt"
)

// ShapeBuilder is the declaration layer over the Registry API: each method maps
// one field declaration onto DeclareField / Register / RegisterNested /
// SetOptional calls. Errors are collected and reported by Err or MustDone.
type ShapeBuilder struct {
	reg  *Registry
	id   ShapeID
	errs []error
}

// Declare starts the declaration of shape id in reg.
//
//	validator.Declare(reg, "User").
//	    Field("email", validator.Required(), validator.Email()).
//	    Optional("nickname", validator.MaxLength(32)).
//	    Nested("address", validator.Ref("Address"), validator.Required()).
//	    NestedArray("orders", validator.Ref("Order")).
//	    MustDone()
func Declare(reg *Registry, id ShapeID) *ShapeBuilder {
	b := &ShapeBuilder{reg: reg, id: id}
	b.collect(reg.DeclareShape(id))
	return b
}

// Ref returns a lazy reference to a shape by id.
func Ref(id ShapeID) func() ShapeID {
	return func() ShapeID { return id }
}

// Field declares a required-by-default field with its rules.
func (b *ShapeBuilder) Field(name string, rules ...Rule) *ShapeBuilder {
	b.collect(b.reg.DeclareField(b.id, name))
	for _, r := range rules {
		b.collect(b.reg.Register(b.id, name, r))
	}
	return b
}

// Optional declares a field whose absence skips every non-presence rule.
func (b *ShapeBuilder) Optional(name string, rules ...Rule) *ShapeBuilder {
	b.Field(name, rules...)
	b.collect(b.reg.SetOptional(b.id, name))
	return b
}

// Nested declares a field holding one instance of the referenced shape.
func (b *ShapeBuilder) Nested(name string, ref func() ShapeID, rules ...Rule) *ShapeBuilder {
	b.Field(name, rules...)
	b.collect(b.reg.RegisterNested(b.id, name, ref, false))
	return b
}

// NestedArray declares a field holding an ordered sequence of the referenced shape.
func (b *ShapeBuilder) NestedArray(name string, ref func() ShapeID, rules ...Rule) *ShapeBuilder {
	b.Field(name, rules...)
	b.collect(b.reg.RegisterNested(b.id, name, ref, true))
	return b
}

// OptionalNested declares an optional field holding one instance of the referenced shape.
func (b *ShapeBuilder) OptionalNested(name string, ref func() ShapeID, rules ...Rule) *ShapeBuilder {
	b.Nested(name, ref, rules...)
	b.collect(b.reg.SetOptional(b.id, name))
	return b
}

// ID returns the shape being declared.
func (b *ShapeBuilder) ID() ShapeID {
	return b.id
}

// Err returns every declaration error joined, or nil.
func (b *ShapeBuilder) Err() error {
	return errors.Join(b.errs...)
}

// MustDone returns the shape id, panicking on declaration errors. Declaration
// errors are programming mistakes and must stop initialization.
func (b *ShapeBuilder) MustDone() ShapeID {
	if err := b.Err(); err != nil {
		panic(fmt.Sprintf("validator: declaring shape %q: %v", b.id, err))
	}
	return b.id
}

func (b *ShapeBuilder) collect(err error) {
	if err != nil {
		b.errs = append(b.errs, err)
	}
}
