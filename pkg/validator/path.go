package validator

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Path addresses a value inside an instance: string elements are field names,
// int elements are array indices. The root path is empty.
type Path []any

// Field returns a new path with name appended. The receiver is never modified.
func (p Path) Field(name string) Path {
	return p.append(name)
}

// Index returns a new path with i appended. The receiver is never modified.
func (p Path) Index(i int) Path {
	return p.append(i)
}

func (p Path) append(seg any) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// Concat returns p followed by other.
func (p Path) Concat(other Path) Path {
	out := make(Path, 0, len(p)+len(other))
	out = append(out, p...)
	return append(out, other...)
}

// HasPrefix reports whether p starts with prefix.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// String renders the path as "items[1].name". The root path renders as "".
func (p Path) String() string {
	var b strings.Builder
	for _, seg := range p {
		switch v := seg.(type) {
		case int:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(v))
			b.WriteByte(']')
		default:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(formatParam(v))
		}
	}
	return b.String()
}

// MarshalJSON encodes the path as an array; the root path is [].
func (p Path) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]any(p))
}
