package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
)

// Loader supplies raw translations: language -> nested key tree.
type Loader interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (map[string]map[string]any, error)

func (f LoaderFunc) Load(ctx context.Context) (map[string]map[string]any, error) {
	return f(ctx)
}

// MapLoader serves translations from memory.
func MapLoader(data map[string]map[string]any) Loader {
	return LoaderFunc(func(context.Context) (map[string]map[string]any, error) {
		return data, nil
	})
}

// FileLoader reads one JSON or YAML file from the local file system.
func FileLoader(filename string) Loader {
	return LoaderFunc(func(ctx context.Context) (map[string]map[string]any, error) {
		content, err := os.ReadFile(filename)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}
		return parseFile(ctx, filename, content)
	})
}

// FSLoader reads every JSON and YAML file in dir of fsys, in name order.
// Later files override keys of earlier ones per language. Works with
// os.DirFS and embed.FS alike.
func FSLoader(fsys fs.FS, dir string) Loader {
	return LoaderFunc(func(ctx context.Context) (map[string]map[string]any, error) {
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadDir, err)
		}

		all := make(map[string]map[string]any)
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, errors.Join(ErrLoadingCancelled, err)
			}
			if entry.IsDir() || ParserForFile(entry.Name()) == nil {
				continue
			}

			name := path.Join(dir, entry.Name())
			content, err := fs.ReadFile(fsys, name)
			if err != nil {
				return nil, errors.Join(ErrFailedToReadFile, err)
			}
			translations, err := parseFile(ctx, name, content)
			if err != nil {
				return nil, err
			}
			for lang, tree := range translations {
				if all[lang] == nil {
					all[lang] = make(map[string]any, len(tree))
				}
				maps.Copy(all[lang], tree)
			}
		}
		return all, nil
	})
}

func parseFile(ctx context.Context, filename string, content []byte) (map[string]map[string]any, error) {
	parser := ParserForFile(filename)
	if parser == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
	translations, err := parser.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return translations, nil
}
