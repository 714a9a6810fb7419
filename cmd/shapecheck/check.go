package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/shapekit/pkg/i18n"
	"github.com/dmitrymomot/shapekit/pkg/plugin"
	"github.com/dmitrymomot/shapekit/pkg/validator"
)

// checkCommand validates one JSON or YAML document.
//
// Usage example:
//
//	shapecheck --schema schema.yaml check --shape Signup signup.json
//	cat signup.yaml | shapecheck check --shape Signup --format json
func checkCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:        "check",
		Description: "Validate a JSON or YAML document against a declared shape.",
		Usage:       "Reads the file argument, or stdin when it is missing or \"-\". Exits with status 1 when the document is invalid.",
		ArgsUsage:   "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "shape",
				Usage:    "Shape to validate against",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: text or json",
				Value: "text",
				Validator: func(s string) error {
					if s != "text" && s != "json" {
						return fmt.Errorf("unknown format %q", s)
					}
					return nil
				},
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Language of failure messages when --locales is set",
				Value: a.cfg.DefaultLanguage,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			b := newBackends(ctx, a.log)
			defer b.Close()

			engine, err := a.engine(c.String("schema"), b.resolve)
			if err != nil {
				return err
			}
			cat, err := a.catalog(ctx, c)
			if err != nil {
				return err
			}

			mws := []plugin.Middleware{plugin.Logging(a.log)}
			if cat != nil {
				mws = append(mws, plugin.Translate(cat))
				ctx = i18n.SetLocale(ctx, c.String("lang"))
			}

			raw, err := readDocument(a.stdin, c.Args().First())
			if err != nil {
				return err
			}
			inst, err := engine.Materialize(validator.ShapeID(c.String("shape")), raw)
			if err != nil {
				return err
			}
			res, err := plugin.Chain(engine, mws...).Validate(ctx, inst)
			if err != nil {
				return err
			}

			if err := renderResult(a.stdout, c.String("format"), res); err != nil {
				return err
			}
			if !res.Success {
				return ErrInvalidInput
			}
			return nil
		},
	}
}

// readDocument decodes a JSON or YAML document; JSON is read as YAML.
func readDocument(stdin io.Reader, path string) (any, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	return raw, nil
}

func renderResult(w io.Writer, format string, res *validator.Result) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if res.Success {
		_, err := fmt.Fprintln(w, "ok")
		return err
	}
	for _, rec := range res.Errors {
		path := rec.Path.String()
		if path == "" {
			path = "(root)"
		}
		if _, err := fmt.Fprintf(w, "%s: %s [%s]\n", path, rec.Message, rec.Rule); err != nil {
			return err
		}
	}
	return nil
}
