package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// Info describes an uploaded or stored file.
type Info struct {
	Filename  string
	Size      int64
	MIMEType  string // sniffed from content when available
	Extension string // lowercase, including the dot
}

// Store is a read-only view of a file backend.
type Store interface {
	// Stat returns metadata for the object at path, or ErrFileNotFound.
	Stat(ctx context.Context, path string) (Info, error)
	// Exists reports whether an object lives at path. A missing object is not an error.
	Exists(ctx context.Context, path string) (bool, error)
}

var imageMIMETypes = map[string]bool{
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
	"image/bmp":     true,
	"image/tiff":    true,
	"image/heic":    true,
	"image/heif":    true,
	"image/avif":    true,
	"image/jxl":     true,
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".svg": true, ".bmp": true,
	".tiff": true, ".tif": true, ".heic": true, ".heif": true, ".avif": true, ".jxl": true,
}

// Inspect reads the header of an uploaded file and sniffs its content type.
// http.DetectContentType inspects magic bytes, so a renamed extension does not
// change the reported MIME type.
func Inspect(fh *multipart.FileHeader) (Info, error) {
	if fh == nil {
		return Info{}, ErrNilFileHeader
	}

	f, err := fh.Open()
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	mimeType, err := sniff(f)
	if err != nil {
		return Info{}, err
	}

	return Info{
		Filename:  fh.Filename,
		Size:      fh.Size,
		MIMEType:  mimeType,
		Extension: Extension(fh.Filename),
	}, nil
}

// sniff reads up to 512 bytes, the most http.DetectContentType looks at.
func sniff(r io.Reader) (string, error) {
	buffer := make([]byte, 512)
	n, err := io.ReadFull(r, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	if n == 0 {
		return "", nil
	}
	return http.DetectContentType(buffer[:n]), nil
}

// Extension returns the lowercase extension of name including the dot.
func Extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// BaseMIMEType strips parameters such as "; charset=utf-8".
func BaseMIMEType(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

// IsImage reports whether the file is an image. The sniffed type wins; the
// extension is consulted only when nothing could be sniffed.
func (i Info) IsImage() bool {
	if mt := BaseMIMEType(i.MIMEType); mt != "" && mt != "application/octet-stream" {
		return imageMIMETypes[mt]
	}
	return imageExtensions[i.Extension]
}

// IsPDF reports whether the file is a PDF document.
func (i Info) IsPDF() bool {
	if mt := BaseMIMEType(i.MIMEType); mt != "" && mt != "application/octet-stream" {
		return mt == "application/pdf"
	}
	return i.Extension == ".pdf"
}

// cleanKey normalizes an object key and rejects traversal attempts.
func cleanKey(path string) (string, error) {
	path = strings.TrimPrefix(strings.ReplaceAll(path, "\\", "/"), "/")
	if path == "" || strings.Contains(path, "..") || strings.ContainsRune(path, 0) {
		return "", ErrInvalidPath
	}
	return path, nil
}
