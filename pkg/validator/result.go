package validator

import (
	"errors"
	"maps"
)

// FailureRecord is one reported rule violation, addressed by field path.
type FailureRecord struct {
	Path    Path   `json:"path"`
	Rule    string `json:"rule"`
	Message string `json:"message"`

	// Key is the translation key of the message source, e.g. "validation.min_length".
	Key string `json:"-"`
	// Params are the interpolation values of the message source.
	Params Params `json:"-"`
	// Overridden is set when Message is a caller-supplied literal.
	Overridden bool `json:"-"`
	// Cause is set when the rule check itself broke.
	Cause error `json:"-"`
}

// Result is the outcome of one validation call. Errors is empty iff Success.
type Result struct {
	Success bool            `json:"success"`
	Errors  []FailureRecord `json:"errors"`
}

func newResult() *Result {
	return &Result{Success: true, Errors: []FailureRecord{}}
}

func (r *Result) add(rec FailureRecord) {
	r.Errors = append(r.Errors, rec)
	r.Success = false
}

// Has reports whether any failure is addressed at path, rendered as by Path.String.
func (r *Result) Has(path string) bool {
	for _, e := range r.Errors {
		if e.Path.String() == path {
			return true
		}
	}
	return false
}

// Messages returns the messages reported at path, in report order.
func (r *Result) Messages(path string) []string {
	var out []string
	for _, e := range r.Errors {
		if e.Path.String() == path {
			out = append(out, e.Message)
		}
	}
	return out
}

// Fields returns the distinct failing paths in report order.
func (r *Result) Fields() []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range r.Errors {
		p := e.Path.String()
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// Clone returns a deep copy of r that shares no slices or maps with it.
func (r *Result) Clone() *Result {
	out := &Result{Success: r.Success, Errors: make([]FailureRecord, len(r.Errors))}
	for i, e := range r.Errors {
		e.Path = append(Path(nil), e.Path...)
		e.Params = maps.Clone(e.Params)
		out.Errors[i] = e
	}
	return out
}

// Err returns nil on success, otherwise the failures as ValidationErrors.
func (r *Result) Err() error {
	if r.Success {
		return nil
	}
	errs := make(ValidationErrors, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, ValidationError{
			Field:             e.Path.String(),
			Rule:              e.Rule,
			Message:           e.Message,
			TranslationKey:    e.Key,
			TranslationValues: maps.Clone(e.Params),
		})
	}
	return errs
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}
