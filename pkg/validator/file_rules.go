package validator

import (
	"context"
	"mime/multipart"
	"slices"
	"strings"

	"github.com/dmitrymomot/shapekit/pkg/file"
)

// File rules accept *multipart.FileHeader, file.Info and *file.Info values.
// Headers are inspected on demand; an unreadable upload is a rule fault.

func fileRule(id string, params Params, tmpl string, fn func(info file.Info) bool) Rule {
	return NewRule(id, params, Template(tmpl), func(_ context.Context, _ RuleContext, v any) Verdict {
		var info file.Info
		switch f := v.(type) {
		case file.Info:
			info = f
		case *file.Info:
			if f == nil {
				return Resolved(false)
			}
			info = *f
		case *multipart.FileHeader:
			if f == nil {
				return Resolved(false)
			}
			inspected, err := file.Inspect(f)
			if err != nil {
				return Faulted(err)
			}
			info = inspected
		default:
			return Resolved(false)
		}
		return Resolved(fn(info))
	})
}

func MaxFileSize(maxBytes int64) Rule {
	return fileRule("max_file_size", Params{"max": maxBytes}, "file size must not exceed %{max} bytes", func(info file.Info) bool {
		return info.Size <= maxBytes
	})
}

func MinFileSize(minBytes int64) Rule {
	return fileRule("min_file_size", Params{"min": minBytes}, "file size must be at least %{min} bytes", func(info file.Info) bool {
		return info.Size >= minBytes
	})
}

// FileExtension passes when the file name ends with one of exts. Extensions
// are compared case-insensitively and the leading dot is optional.
func FileExtension(exts ...string) Rule {
	normalized := make([]string, len(exts))
	for i, ext := range exts {
		normalized[i] = "." + strings.TrimPrefix(strings.ToLower(ext), ".")
	}
	return fileRule("file_extension", Params{"extensions": normalized}, "file extension must be one of: %{extensions}", func(info file.Info) bool {
		ext := info.Extension
		if ext == "" {
			ext = file.Extension(info.Filename)
		}
		return slices.Contains(normalized, ext)
	})
}

// MIMEType passes when the sniffed content type is one of types.
func MIMEType(types ...string) Rule {
	return fileRule("mime_type", Params{"types": types}, "file type must be one of: %{types}", func(info file.Info) bool {
		mt := file.BaseMIMEType(info.MIMEType)
		return slices.ContainsFunc(types, func(t string) bool { return strings.EqualFold(t, mt) })
	})
}

func Image() Rule {
	return fileRule("image", nil, "file must be an image", file.Info.IsImage)
}

func PDF() Rule {
	return fileRule("pdf", nil, "file must be a PDF document", file.Info.IsPDF)
}
