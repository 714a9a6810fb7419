package i18n

import (
	"context"
	"path/filepath"
	"strings"
)

// Parser decodes a translation document into language -> key tree.
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)

	// SupportsFileExtension reports whether the parser handles ext, with or without the leading dot.
	SupportsFileExtension(ext string) bool
}

// ParserForFile picks a parser from the file extension, or returns nil.
func ParserForFile(filename string) Parser {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "json":
		return JSONParser{}
	case "yaml", "yml":
		return YAMLParser{}
	default:
		return nil
	}
}
