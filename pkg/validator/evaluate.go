package validator

import (
	"context"
)

// Validate evaluates inst against the shape it was materialized for.
func (e *Engine) Validate(ctx context.Context, inst *Instance) (*Result, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}
	return e.Evaluate(ctx, inst.Shape(), inst)
}

// Evaluate walks inst field by field in declaration order, runs every rule in
// declaration order, recurses into nested fields and collects every failure.
// It never stops at the first failing field. Errors are returned only for
// declaration problems; rule failures are data inside the Result.
//
// Asynchronous rules are awaited one at a time at their declared position, so
// the report order is deterministic.
func (e *Engine) Evaluate(ctx context.Context, shape ShapeID, inst *Instance) (*Result, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}
	e.registry.Freeze()

	s, err := e.registry.shape(shape)
	if err != nil {
		return nil, err
	}

	res := newResult()
	if err := e.evaluate(ctx, s, inst, Path{}, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (e *Engine) evaluate(ctx context.Context, s *shapeEntry, inst *Instance, path Path, res *Result) error {
	if inst.malformed {
		res.add(structuralFailure(path, "object", "must be an object"))
		return nil
	}

	onFault := e.onFault(ctx)

	for _, f := range s.fields {
		v, ok := inst.Get(f.name)
		present := ok && v != nil
		fieldPath := path.Field(f.name)

		rc := RuleContext{
			Shape:   s.id,
			Field:   f.name,
			Path:    fieldPath,
			Parent:  inst,
			Present: present,
		}

		for _, rule := range f.rules {
			if !present && f.optional && !rule.presence {
				continue
			}
			if o := rule.run(ctx, rc, v, onFault); !o.passed {
				res.add(FailureRecord{
					Path:       fieldPath,
					Rule:       rule.ID(),
					Message:    o.message,
					Key:        o.key,
					Params:     o.params,
					Overridden: o.overridden,
					Cause:      o.cause,
				})
			}
		}

		if !f.nested || !present {
			continue
		}

		nested, err := e.registry.resolve(s.id, f)
		if err != nil {
			return err
		}

		if !f.array {
			if err := e.evaluateElement(ctx, nested, v, fieldPath, res); err != nil {
				return err
			}
			continue
		}

		items, ok := asSequence(v)
		if !ok {
			res.add(structuralFailure(fieldPath, "array", "must be an array"))
			continue
		}
		for i, item := range items {
			if err := e.evaluateElement(ctx, nested, item, fieldPath.Index(i), res); err != nil {
				return err
			}
		}
	}

	return nil
}

// evaluateElement validates one nested value. Values that were not
// materialized yet are materialized on the fly; non-objects are reported.
func (e *Engine) evaluateElement(ctx context.Context, s *shapeEntry, v any, path Path, res *Result) error {
	inst, ok := v.(*Instance)
	if !ok || inst == nil {
		if _, isObject := asObject(v); !isObject {
			res.add(structuralFailure(path, "object", "must be an object"))
			return nil
		}
		var err error
		if inst, err = e.materialize(s, v); err != nil {
			return err
		}
	}
	return e.evaluate(ctx, s, inst, path, res)
}

func structuralFailure(path Path, rule, message string) FailureRecord {
	return FailureRecord{
		Path:    path,
		Rule:    rule,
		Message: message,
		Key:     "validation." + rule,
	}
}
