package plugin

import "errors"

var (
	ErrNilStore       = errors.New("plugin: result store is nil")
	ErrNilCatalog     = errors.New("plugin: catalog is nil")
	ErrCorruptedEntry = errors.New("plugin: cached result is corrupted")
)
