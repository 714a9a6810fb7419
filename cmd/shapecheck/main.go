// Command shapecheck validates documents against shapes declared in a schema
// file, lists those shapes, or serves validation over HTTP.
//
// Configuration comes from the environment (and a .env file when present);
// see Config. Lookup backends named by the schema are configured the same
// way: PG_CONN_URL, REDIS_URL, MONGODB_URL with MONGODB_DATABASE, S3_* or
// OBJECT_LOCAL_DIR.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrymomot/shapekit/pkg/config"
)

func main() {
	os.Exit(run(context.Background(), os.Args))
}

func run(ctx context.Context, args []string) int {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	a := &app{cfg: cfg, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr, log: newLogger(cfg, os.Stderr)}
	if err := newCommand(a).Run(ctx, args); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return 1
		}
		a.log.Error("shapecheck failed", "error", err)
		return 2
	}
	return 0
}
