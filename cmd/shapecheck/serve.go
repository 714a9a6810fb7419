package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/shapekit"
	"github.com/dmitrymomot/shapekit/pkg/httpserver"
	"github.com/dmitrymomot/shapekit/pkg/i18n"
	"github.com/dmitrymomot/shapekit/pkg/plugin"
	"github.com/dmitrymomot/shapekit/pkg/validator"
)

// serveCommand exposes the schema over HTTP.
//
// Usage example:
//
//	shapecheck --schema schema.yaml serve --addr :8080
//
// The process runs until it receives an interrupt (SIGINT or SIGTERM).
func serveCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:        "serve",
		Description: "Serve validation of declared shapes over HTTP.",
		Usage:       "Starts the HTTP API. Terminates gracefully on Ctrl+C or termination signals.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address",
				Value: a.cfg.HTTP.Addr,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

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
			mws, err := a.plugins(b, cat)
			if err != nil {
				return err
			}

			router := newRouter(routerDeps{
				engine:        engine,
				validator:     plugin.Chain(engine, mws...),
				catalog:       cat,
				checks:        b.Checks(),
				healthTimeout: a.cfg.HealthTimeout,
				log:           a.log,
			})

			srv := httpserver.NewFromConfig(a.cfg.HTTP,
				httpserver.WithAddr(c.String("addr")),
				httpserver.WithLogger(a.log),
			)
			return srv.Run(ctx, router)
		},
	}
}

// plugins assembles the validator middleware of the serve command from the
// cache settings and the optional catalog.
func (a *app) plugins(b *backends, cat *i18n.Catalog) ([]plugin.Middleware, error) {
	mws := []plugin.Middleware{plugin.Logging(a.log)}
	if cat != nil {
		mws = append(mws, plugin.Translate(cat))
	}

	switch a.cfg.CacheStore {
	case "memory":
		mws = append(mws, plugin.Cache(plugin.NewMemoryStore(a.cfg.CacheSize), a.cfg.CacheTTL, plugin.WithCacheLogger(a.log)))
	case "redis":
		b.mu.Lock()
		rdb, err := b.redis()
		b.mu.Unlock()
		if err != nil {
			return nil, err
		}
		store := plugin.NewRedisStore(rdb, a.cfg.CachePrefix)
		mws = append(mws, plugin.Cache(store, a.cfg.CacheTTL, plugin.WithCacheLogger(a.log)))
	}
	return mws, nil
}

type routerDeps struct {
	engine        *validator.Engine
	validator     validator.Validator
	catalog       *i18n.Catalog
	checks        []httpserver.Check
	healthTimeout time.Duration
	log           *slog.Logger
}

// newRouter mounts:
//
//	GET  /healthz                  readiness of the opened backends
//	GET  /shapes                   declared shapes
//	POST /shapes/{shape}/validate  validate the JSON body
func newRouter(d routerDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(httpserver.RequestID)
	if d.catalog != nil {
		r.Use(i18n.Middleware(d.catalog))
	}

	r.Get("/healthz", httpserver.HealthCheckHandler(d.log, d.healthTimeout, d.checks...))

	r.Route("/shapes", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			shapes, err := describe(d.engine.Registry())
			if err != nil {
				_ = shapekit.WriteError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_ = json.NewEncoder(w).Encode(map[string]any{"shapes": shapes})
		})
		r.Method(http.MethodPost, "/{shape}/validate", shapekit.Handler(d.validator, d.engine,
			func(r *http.Request) validator.ShapeID { return validator.ShapeID(chi.URLParam(r, "shape")) },
			shapekit.WithLogger(d.log),
		))
	})
	return r
}
