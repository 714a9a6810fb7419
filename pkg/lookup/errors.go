package lookup

import "errors"

var (
	ErrInvalidIdentifier = errors.New("invalid sql identifier")
	ErrNilClient         = errors.New("lookup client is nil")
	ErrEmptyKey          = errors.New("lookup key is empty")
	ErrUnsupportedValue  = errors.New("unsupported lookup value")
	ErrLookupFailed      = errors.New("lookup failed")
)
