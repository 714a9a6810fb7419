package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/shapekit/pkg/httpserver"
	"github.com/dmitrymomot/shapekit/pkg/i18n"
	"github.com/dmitrymomot/shapekit/pkg/logger"
	"github.com/dmitrymomot/shapekit/pkg/schema"
	"github.com/dmitrymomot/shapekit/pkg/validator"
)

// ErrInvalidInput is returned by check when the input fails validation.
var ErrInvalidInput = errors.New("input is invalid")

// app carries what every command needs.
type app struct {
	cfg    Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
}

// newCommand builds the shapecheck command tree.
func newCommand(a *app) *cli.Command {
	return &cli.Command{
		EnableShellCompletion: true,
		Name:                  "shapecheck",
		Description:           "Validate data against shapes declared in a schema document.",
		Usage:                 "shapecheck [command] [flags]",
		Writer:                a.stdout,
		ErrWriter:             a.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "schema",
				Aliases: []string{"s"},
				Usage:   "Path to the YAML or JSON schema document",
				Value:   a.cfg.SchemaPath,
			},
			&cli.StringFlag{
				Name:  "locales",
				Usage: "Directory of JSON/YAML message catalogs",
				Value: a.cfg.LocalesPath,
			},
		},
		Commands: []*cli.Command{
			checkCommand(a),
			shapesCommand(a),
			serveCommand(a),
		},
	}
}

// engine loads the schema at path into a fresh registry. Backend lookups are
// built by resolve.
func (a *app) engine(path string, resolve schema.LookupResolver) (*validator.Engine, error) {
	doc, err := schema.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", path, err)
	}

	reg := validator.NewRegistry()
	if err := schema.Declare(reg, doc, schema.WithLogger(a.log), schema.WithLookupResolver(resolve)); err != nil {
		return nil, fmt.Errorf("declare schema %s: %w", path, err)
	}

	a.log.Debug("schema loaded", slog.String("path", path), slog.Int("shapes", len(reg.Shapes())))
	return validator.New(reg, validator.WithLogger(a.log)), nil
}

// catalog loads message catalogs when --locales is set.
func (a *app) catalog(ctx context.Context, c *cli.Command) (*i18n.Catalog, error) {
	dir := c.String("locales")
	if dir == "" {
		return nil, nil
	}
	cat, err := i18n.New(ctx, i18n.FSLoader(os.DirFS(dir), "."),
		i18n.WithDefaultLanguage(a.cfg.DefaultLanguage),
		i18n.WithLogger(a.log),
	)
	if err != nil {
		return nil, fmt.Errorf("load locales %s: %w", dir, err)
	}
	return cat, nil
}

func newLogger(cfg Config, w io.Writer) *slog.Logger {
	return logger.New(
		logger.WithEnvironment(cfg.AppEnv, "shapecheck"),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithOutput(w),
		logger.WithContextExtractors(httpserver.RequestIDExtractor()),
	)
}
