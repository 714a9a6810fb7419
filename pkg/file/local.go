package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore reads files below a base directory.
// All lookups are confined to baseDir to prevent path traversal attacks.
type LocalStore struct {
	baseDir string // Absolute path
}

// NewLocalStore creates a store rooted at baseDir. The directory must exist.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}

	st, err := os.Stat(absBaseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidConfig, baseDir)
	}

	return &LocalStore{baseDir: absBaseDir}, nil
}

// Stat returns metadata for the file at path with its content type sniffed.
func (s *LocalStore) Stat(ctx context.Context, path string) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return Info{}, err
	}

	st, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Info{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Info{}, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if st.IsDir() {
		return Info{}, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	f, err := os.Open(absPath)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	mimeType, err := sniff(f)
	if err != nil {
		return Info{}, err
	}

	return Info{
		Filename:  st.Name(),
		Size:      st.Size(),
		MIMEType:  mimeType,
		Extension: Extension(st.Name()),
	}, nil
}

// Exists reports whether a regular file lives at path.
func (s *LocalStore) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.Stat(ctx, path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrFileNotFound), errors.Is(err, ErrIsDirectory):
		return false, nil
	}
	return false, err
}

// resolvePath validates and resolves a path within the base directory.
func (s *LocalStore) resolvePath(path string) (string, error) {
	key, err := cleanKey(path)
	if err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	return absPath, nil
}
