package schema

import "errors"

var (
	ErrInvalidDocument = errors.New("invalid schema document")
	ErrUnknownRule     = errors.New("unknown rule")
	ErrInvalidArgs     = errors.New("invalid rule arguments")
	ErrUnknownShapeRef = errors.New("reference to undeclared shape")
	ErrUnknownLookup   = errors.New("unknown lookup")
	ErrDuplicateShape  = errors.New("shape declared twice")
	ErrDuplicateField  = errors.New("field declared twice")
)
