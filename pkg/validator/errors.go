package validator

import "errors"

// Declaration-time and structural errors. Validation failures are never
// returned as errors; they are reported inside Result.
var (
	// ErrValidationFailed is the sentinel matched by ValidationErrors via errors.Is.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnknownShape is returned when a shape was never declared against the registry.
	ErrUnknownShape = errors.New("unknown shape")

	// ErrUnresolvedShape is returned when a nested field references a shape that was never declared.
	ErrUnresolvedShape = errors.New("unresolved nested shape reference")

	// ErrDuplicateRule is returned when the same rule is attached twice to one field.
	ErrDuplicateRule = errors.New("duplicate rule registration")

	// ErrDuplicateNested is returned when a field is marked nested twice.
	ErrDuplicateNested = errors.New("duplicate nested field registration")

	// ErrRegistryFrozen is returned by registration calls after the declaration phase ended.
	ErrRegistryFrozen = errors.New("registry is frozen")

	ErrEmptyShapeID   = errors.New("shape id is empty")
	ErrEmptyFieldName = errors.New("field name is empty")
	ErrNilShapeRef    = errors.New("nested shape reference is nil")
	ErrInvalidRule    = errors.New("rule is empty")
	ErrNilInstance    = errors.New("instance is nil")

	// Rule faults, reported as failure records rather than returned.
	ErrRulePanicked = errors.New("rule check panicked")
	ErrNilVerdict   = errors.New("rule check returned no verdict")
)
