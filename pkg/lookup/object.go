package lookup

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrymomot/shapekit/pkg/file"
)

// ObjectLookup checks whether a value names a stored object.
type ObjectLookup struct {
	store  file.Store
	prefix string
}

// Object builds a lookup that treats values as object keys under prefix.
func Object(store file.Store, prefix string) (*ObjectLookup, error) {
	if store == nil {
		return nil, ErrNilClient
	}
	return &ObjectLookup{store: store, prefix: prefix}, nil
}

func (l *ObjectLookup) Exists(ctx context.Context, value any) (bool, error) {
	key, err := text(value)
	if err != nil {
		return false, err
	}
	if l.prefix != "" {
		key = strings.TrimSuffix(l.prefix, "/") + "/" + key
	}

	found, err := l.store.Exists(ctx, key)
	if errors.Is(err, file.ErrInvalidPath) {
		// A value that cannot be a key names nothing.
		return false, nil
	}
	if err != nil {
		return false, errors.Join(ErrLookupFailed, err)
	}
	return found, nil
}
