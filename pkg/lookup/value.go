package lookup

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// normalize turns decoded JSON values into driver-friendly scalars: whole
// float64 numbers become int64, json.Number is resolved. Composite values are
// rejected.
func normalize(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedValue)
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32:
		return val, nil
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1<<53 {
			return int64(val), nil
		}
		return val, nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
		return val.Float64()
	case fmt.Stringer:
		return val.String(), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

// text renders a normalized value as the string form used by key-value stores.
func text(v any) (string, error) {
	n, err := normalize(v)
	if err != nil {
		return "", err
	}
	switch val := n.(type) {
	case string:
		return val, nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	default:
		return fmt.Sprint(val), nil
	}
}
