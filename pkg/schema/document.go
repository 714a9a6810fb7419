package schema

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a declarative description of shapes. YAML and JSON sources
// decode the same way; shape and field order follows the source.
//
//	lookups:
//	  emails: {driver: postgres, table: users, column: email}
//	shapes:
//	  User:
//	    fields:
//	      email: [required, email, {rule: unique, lookup: emails}]
//	      nickname:
//	        optional: true
//	        rules: [{min_length: 3}]
//	      address: {shape: Address}
type Document struct {
	Lookups Lookups `yaml:"lookups"`
	Shapes  Shapes  `yaml:"shapes"`
}

// Shape declares one shape and its fields.
type Shape struct {
	Name        string `yaml:"-"`
	Description string `yaml:"description"`
	Fields      Fields `yaml:"fields"`
}

// Field declares one field. A bare sequence in the source is shorthand for
// a field with rules only.
type Field struct {
	Name     string     `yaml:"-"`
	Optional bool       `yaml:"optional"`
	Shape    string     `yaml:"shape"`
	Array    bool       `yaml:"array"`
	Rules    []RuleSpec `yaml:"rules"`
}

// RuleSpec names a rule factory with its arguments, or a combinator with its
// operands. In the source a rule is either a bare name ("email"), a one-key
// mapping ({min_length: 3}, {and: [...]}) or a full mapping with "rule".
type RuleSpec struct {
	Name    string     `yaml:"rule"`
	Args    []any      `yaml:"args"`
	Message string     `yaml:"message"`
	Lookup  string     `yaml:"lookup"`
	Rules   []RuleSpec `yaml:"rules"`
	If      *RuleSpec  `yaml:"if"`
	Then    *RuleSpec  `yaml:"then"`
	Else    *RuleSpec  `yaml:"else"`
	Of      *RuleSpec  `yaml:"of"`
}

// LookupSpec describes a named existence backend for exists and unique rules.
// Only the "static" driver is built here; other drivers are resolved by the
// caller through WithLookupResolver.
type LookupSpec struct {
	Name       string `yaml:"-"`
	Driver     string `yaml:"driver"`
	Table      string `yaml:"table"`
	Column     string `yaml:"column"`
	Key        string `yaml:"key"`
	Collection string `yaml:"collection"`
	Field      string `yaml:"field"`
	Prefix     string `yaml:"prefix"`
	Values     []any  `yaml:"values"`
}

type (
	Shapes  []Shape
	Fields  []Field
	Lookups []LookupSpec
)

// Parse decodes a YAML or JSON schema document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if len(doc.Shapes) == 0 {
		return nil, fmt.Errorf("%w: no shapes declared", ErrInvalidDocument)
	}
	return &doc, nil
}

// ParseFile reads and decodes a schema document from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Shape returns the shape named name.
func (d *Document) Shape(name string) (Shape, bool) {
	for _, s := range d.Shapes {
		if s.Name == name {
			return s, true
		}
	}
	return Shape{}, false
}

// Lookup returns the lookup spec named name.
func (d *Document) Lookup(name string) (LookupSpec, bool) {
	for _, l := range d.Lookups {
		if l.Name == name {
			return l, true
		}
	}
	return LookupSpec{}, false
}

// eachPair walks a mapping node in source order.
func eachPair(node *yaml.Node, what string, fn func(key string, value *yaml.Node) error) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: %s must be a mapping", ErrInvalidDocument, node.Line, what)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i].Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shapes) UnmarshalYAML(node *yaml.Node) error {
	return eachPair(node, "shapes", func(name string, value *yaml.Node) error {
		var shape Shape
		if err := value.Decode(&shape); err != nil {
			return fmt.Errorf("shape %s: %w", name, err)
		}
		shape.Name = name
		*s = append(*s, shape)
		return nil
	})
}

func (f *Fields) UnmarshalYAML(node *yaml.Node) error {
	return eachPair(node, "fields", func(name string, value *yaml.Node) error {
		var field Field
		if err := value.Decode(&field); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		field.Name = name
		*f = append(*f, field)
		return nil
	})
}

func (l *Lookups) UnmarshalYAML(node *yaml.Node) error {
	return eachPair(node, "lookups", func(name string, value *yaml.Node) error {
		var spec LookupSpec
		if err := value.Decode(&spec); err != nil {
			return fmt.Errorf("lookup %s: %w", name, err)
		}
		spec.Name = name
		*l = append(*l, spec)
		return nil
	})
}

func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&f.Rules)
	}
	type plain Field
	return node.Decode((*plain)(f))
}

// ruleKeys are the keys of the full RuleSpec form.
var ruleKeys = map[string]bool{
	"rule": true, "args": true, "message": true, "lookup": true,
	"rules": true, "if": true, "then": true, "else": true, "of": true,
}

func (r *RuleSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		r.Name = node.Value
		return nil
	case yaml.MappingNode:
	default:
		return fmt.Errorf("%w: line %d: rule must be a name or a mapping", ErrInvalidDocument, node.Line)
	}

	if len(node.Content) == 2 && !ruleKeys[node.Content[0].Value] {
		return r.decodeShorthand(node.Content[0].Value, node.Content[1])
	}

	type plain RuleSpec
	if err := node.Decode((*plain)(r)); err != nil {
		return err
	}
	if r.Name == "" && r.If != nil {
		r.Name = "if"
	}
	if r.Name == "" {
		return fmt.Errorf("%w: line %d: rule name is missing", ErrInvalidDocument, node.Line)
	}
	return nil
}

// decodeShorthand handles one-key forms: {min_length: 3}, {between: [1, 5]},
// {and: [required, email]}, {not: email}, {each: {min: 1}}.
func (r *RuleSpec) decodeShorthand(name string, value *yaml.Node) error {
	r.Name = name
	switch name {
	case "and", "or":
		return value.Decode(&r.Rules)
	case "not", "each":
		r.Of = new(RuleSpec)
		return value.Decode(r.Of)
	case "exists", "unique":
		return value.Decode(&r.Lookup)
	}

	if value.Kind == yaml.SequenceNode {
		return value.Decode(&r.Args)
	}
	var arg any
	if err := value.Decode(&arg); err != nil {
		return err
	}
	r.Args = []any{arg}
	return nil
}
