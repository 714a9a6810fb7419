package schema

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/dmitrymomot/shapekit/pkg/logger"
	"github.com/dmitrymomot/shapekit/pkg/lookup"
	"github.com/dmitrymomot/shapekit/pkg/validator"
)

// LookupResolver builds the backend of a lookup declared in a document.
type LookupResolver func(spec LookupSpec) (validator.Lookup, error)

// Option configures Declare.
type Option func(*compiler)

// WithFactory registers or replaces a rule factory by name.
func WithFactory(name string, f Factory) Option {
	return func(c *compiler) {
		c.factories[name] = f
	}
}

// WithLookup binds a named lookup, taking precedence over the document.
func WithLookup(name string, l validator.Lookup) Option {
	return func(c *compiler) {
		c.lookups[name] = l
	}
}

// WithLookupResolver builds document lookups whose driver is not "static".
func WithLookupResolver(r LookupResolver) Option {
	return func(c *compiler) {
		c.resolver = r
	}
}

// WithLogger sets the logger used to report declared shapes.
func WithLogger(l *slog.Logger) Option {
	return func(c *compiler) {
		if l != nil {
			c.logger = l
		}
	}
}

type compiler struct {
	doc       *Document
	factories map[string]Factory
	lookups   map[string]validator.Lookup
	resolver  LookupResolver
	logger    *slog.Logger
}

type compiledField struct {
	field Field
	rules []validator.Rule
}

type compiledShape struct {
	id     validator.ShapeID
	fields []compiledField
}

// Declare compiles doc and declares its shapes into reg. Nothing is declared
// unless the whole document compiles; every problem found is reported.
func Declare(reg *validator.Registry, doc *Document, opts ...Option) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	c := &compiler{
		doc:       doc,
		factories: maps.Clone(builtinFactories),
		lookups:   make(map[string]validator.Lookup),
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	shapes, err := c.compile(reg)
	if err != nil {
		return err
	}

	// A dry run on a scratch registry surfaces registry-level conflicts
	// before reg is touched.
	if err := c.declare(validator.NewRegistry(), shapes); err != nil {
		return err
	}
	if reg.Frozen() {
		return validator.ErrRegistryFrozen
	}
	if err := c.declare(reg, shapes); err != nil {
		return err
	}
	for _, s := range shapes {
		c.logger.Debug("shape declared", logger.Shape(string(s.id)), slog.Int("fields", len(s.fields)))
	}
	return nil
}

func (c *compiler) declare(reg *validator.Registry, shapes []compiledShape) error {
	for _, s := range shapes {
		b := validator.Declare(reg, s.id)
		for _, cf := range s.fields {
			f := cf.field
			switch {
			case f.Shape != "" && f.Array:
				b.NestedArray(f.Name, validator.Ref(validator.ShapeID(f.Shape)), cf.rules...)
			case f.Shape != "":
				b.Nested(f.Name, validator.Ref(validator.ShapeID(f.Shape)), cf.rules...)
			default:
				b.Field(f.Name, cf.rules...)
			}
		}
		if err := b.Err(); err != nil {
			return fmt.Errorf("shape %s: %w", s.id, err)
		}
		for _, cf := range s.fields {
			if cf.field.Optional {
				if err := reg.SetOptional(s.id, cf.field.Name); err != nil {
					return fmt.Errorf("shape %s: %w", s.id, err)
				}
			}
		}
	}
	return nil
}

// Load parses data and declares it into reg.
func Load(reg *validator.Registry, data []byte, opts ...Option) (*Document, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := Declare(reg, doc, opts...); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *compiler) compile(reg *validator.Registry) ([]compiledShape, error) {
	known := make(map[string]bool, len(c.doc.Shapes))
	for _, id := range reg.Shapes() {
		known[string(id)] = true
	}

	var errs []error
	seen := make(map[string]bool, len(c.doc.Shapes))
	for _, s := range c.doc.Shapes {
		if seen[s.Name] || known[s.Name] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateShape, s.Name))
		}
		seen[s.Name] = true
	}
	maps.Copy(known, seen)

	out := make([]compiledShape, 0, len(c.doc.Shapes))
	for _, s := range c.doc.Shapes {
		cs := compiledShape{id: validator.ShapeID(s.Name)}
		fieldSeen := make(map[string]bool, len(s.Fields))
		for _, f := range s.Fields {
			where := fmt.Sprintf("shape %s field %s", s.Name, f.Name)
			if fieldSeen[f.Name] {
				errs = append(errs, fmt.Errorf("%s: %w", where, ErrDuplicateField))
				continue
			}
			fieldSeen[f.Name] = true

			if f.Array && f.Shape == "" {
				errs = append(errs, fmt.Errorf("%s: %w: array requires shape", where, ErrInvalidDocument))
			}
			if f.Shape != "" && !known[f.Shape] {
				errs = append(errs, fmt.Errorf("%s: %w: %s", where, ErrUnknownShapeRef, f.Shape))
			}

			cf := compiledField{field: f}
			for i, spec := range f.Rules {
				rule, err := c.rule(spec)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s rule %d (%s): %w", where, i+1, spec.Name, err))
					continue
				}
				cf.rules = append(cf.rules, rule)
			}
			cs.fields = append(cs.fields, cf)
		}
		out = append(out, cs)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *compiler) rule(spec RuleSpec) (validator.Rule, error) {
	rule, err := c.build(spec)
	if err != nil {
		return validator.Rule{}, err
	}
	if spec.Message != "" {
		rule = rule.WithMessage(spec.Message)
	}
	return rule, nil
}

func (c *compiler) build(spec RuleSpec) (validator.Rule, error) {
	switch spec.Name {
	case "and", "or":
		if len(spec.Rules) == 0 {
			return validator.Rule{}, fmt.Errorf("%w: %s needs rules", ErrInvalidArgs, spec.Name)
		}
		rules := make([]validator.Rule, len(spec.Rules))
		for i, child := range spec.Rules {
			r, err := c.rule(child)
			if err != nil {
				return validator.Rule{}, fmt.Errorf("%s operand %d: %w", spec.Name, i+1, err)
			}
			rules[i] = r
		}
		if spec.Name == "and" {
			return validator.And(rules...), nil
		}
		return validator.Or(rules...), nil

	case "if":
		if spec.If == nil || spec.Then == nil {
			return validator.Rule{}, fmt.Errorf("%w: if needs if and then", ErrInvalidArgs)
		}
		cond, err := c.rule(*spec.If)
		if err != nil {
			return validator.Rule{}, fmt.Errorf("if: %w", err)
		}
		then, err := c.rule(*spec.Then)
		if err != nil {
			return validator.Rule{}, fmt.Errorf("then: %w", err)
		}
		var otherwise validator.Rule
		if spec.Else != nil {
			if otherwise, err = c.rule(*spec.Else); err != nil {
				return validator.Rule{}, fmt.Errorf("else: %w", err)
			}
		}
		return validator.IfThenElse(cond, then, otherwise), nil

	case "not", "each":
		if spec.Of == nil {
			return validator.Rule{}, fmt.Errorf("%w: %s needs a rule under of", ErrInvalidArgs, spec.Name)
		}
		child, err := c.rule(*spec.Of)
		if err != nil {
			return validator.Rule{}, fmt.Errorf("%s: %w", spec.Name, err)
		}
		if spec.Name == "not" {
			return validator.Not(child), nil
		}
		return validator.Each(child), nil

	case "exists", "unique":
		l, err := c.lookup(spec.Lookup)
		if err != nil {
			return validator.Rule{}, err
		}
		if spec.Name == "exists" {
			return validator.Exists(l), nil
		}
		return validator.Unique(l), nil
	}

	factory, ok := c.factories[spec.Name]
	if !ok {
		return validator.Rule{}, fmt.Errorf("%w: %q", ErrUnknownRule, spec.Name)
	}
	return factory(Args(spec.Args))
}

func (c *compiler) lookup(name string) (validator.Lookup, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: lookup name is missing", ErrInvalidArgs)
	}
	if l, ok := c.lookups[name]; ok {
		return l, nil
	}

	spec, ok := c.doc.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLookup, name)
	}

	var (
		l   validator.Lookup
		err error
	)
	switch {
	case spec.Driver == "static":
		l = lookup.Set(spec.Values...)
	case c.resolver != nil:
		l, err = c.resolver(spec)
	default:
		err = fmt.Errorf("%w: %q uses driver %q and no resolver is configured", ErrUnknownLookup, name, spec.Driver)
	}
	if err != nil {
		return nil, err
	}
	c.lookups[name] = l
	return l, nil
}
