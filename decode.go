package shapekit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxBodySize is the request body limit applied by Bind.
const DefaultMaxBodySize int64 = 1 << 20

// DecodeJSON reads a single JSON value from the request body. The request
// must declare an application/json content type and the body may not exceed
// maxBytes; anything after the first value is rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64) (any, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: expected application/json", ErrMissingContentType)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return nil, fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, contentType)
	}

	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBytes))

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, tooLarge.Limit)
		case errors.Is(err, io.EOF):
			return nil, fmt.Errorf("%w: empty body", ErrInvalidJSON)
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
	}

	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON value", ErrInvalidJSON)
	}
	return raw, nil
}
