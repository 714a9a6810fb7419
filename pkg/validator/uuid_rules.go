package validator

import (
	"strings"

	"github.com/google/uuid"
)

// UUID rules accept uuid.UUID values and canonical 36-character strings.

func asUUID(v any) (uuid.UUID, bool) {
	switch id := v.(type) {
	case uuid.UUID:
		return id, true
	case *uuid.UUID:
		if id == nil {
			return uuid.Nil, false
		}
		return *id, true
	}

	s, ok := asString(v)
	if !ok || len(s) != 36 {
		return uuid.Nil, false
	}
	if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(strings.ToLower(s))
	return id, err == nil
}

func UUID() Rule {
	return predicate("uuid", nil, "must be a valid UUID", func(v any) bool {
		_, ok := asUUID(v)
		return ok
	})
}

func UUIDVersion(version int) Rule {
	return predicate("uuid_version", Params{"version": version}, "must be a UUID version %{version}", func(v any) bool {
		id, ok := asUUID(v)
		return ok && int(id.Version()) == version
	})
}

// NonNilUUID passes for valid UUIDs other than the all-zero one.
func NonNilUUID() Rule {
	return predicate("uuid_not_nil", nil, "UUID cannot be nil", func(v any) bool {
		id, ok := asUUID(v)
		return ok && id != uuid.Nil
	})
}
