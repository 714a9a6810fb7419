package lookup

import "context"

// SetLookup is a fixed in-memory set of values.
type SetLookup struct {
	members map[string]struct{}
}

// Set builds a lookup over values, compared by their text form.
func Set(values ...any) *SetLookup {
	s := &SetLookup{members: make(map[string]struct{}, len(values))}
	for _, v := range values {
		if key, err := text(v); err == nil {
			s.members[key] = struct{}{}
		}
	}
	return s
}

func (s *SetLookup) Exists(_ context.Context, value any) (bool, error) {
	key, err := text(value)
	if err != nil {
		return false, err
	}
	_, ok := s.members[key]
	return ok, nil
}

// Len returns the number of members.
func (s *SetLookup) Len() int {
	return len(s.members)
}
