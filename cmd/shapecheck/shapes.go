package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/shapekit/pkg/validator"
)

// shapeInfo is the public description of a declared shape.
type shapeInfo struct {
	Name   string      `json:"name"`
	Fields []fieldInfo `json:"fields"`
}

type fieldInfo struct {
	Name     string   `json:"name"`
	Rules    []string `json:"rules"`
	Optional bool     `json:"optional,omitempty"`
	Shape    string   `json:"shape,omitempty"`
	Array    bool     `json:"array,omitempty"`
}

func describe(reg *validator.Registry) ([]shapeInfo, error) {
	ids := reg.Shapes()
	out := make([]shapeInfo, 0, len(ids))
	for _, id := range ids {
		meta, err := reg.Lookup(id)
		if err != nil {
			return nil, err
		}
		info := shapeInfo{Name: string(id), Fields: make([]fieldInfo, 0, len(meta.Fields))}
		for _, f := range meta.Fields {
			fi := fieldInfo{
				Name:     f.Name,
				Rules:    make([]string, 0, len(f.Rules)),
				Optional: f.Optional,
				Shape:    string(f.NestedShape),
				Array:    f.Array,
			}
			for _, r := range f.Rules {
				fi.Rules = append(fi.Rules, r.ID())
			}
			info.Fields = append(info.Fields, fi)
		}
		out = append(out, info)
	}
	return out, nil
}

// shapesCommand lists the declared shapes and their fields.
//
// Usage example:
//
//	shapecheck --schema schema.yaml shapes --json
func shapesCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:        "shapes",
		Description: "List the shapes declared in the schema with their fields and rules.",
		Usage:       "Prints one block per shape in declaration order.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print JSON instead of a table",
			},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			engine, err := a.engine(c.String("schema"), offline)
			if err != nil {
				return err
			}
			shapes, err := describe(engine.Registry())
			if err != nil {
				return err
			}

			if c.Bool("json") {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(shapes)
			}
			return printShapes(a.stdout, shapes)
		},
	}
}

func printShapes(w io.Writer, shapes []shapeInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, s := range shapes {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintln(tw, s.Name)
		for _, f := range s.Fields {
			var kind string
			switch {
			case f.Shape != "" && f.Array:
				kind = "[]" + f.Shape
			case f.Shape != "":
				kind = f.Shape
			}
			flags := ""
			if f.Optional {
				flags = "optional"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", f.Name, kind, strings.Join(f.Rules, " "), flags)
		}
	}
	return tw.Flush()
}
