package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/shapekit/pkg/config"
	"github.com/dmitrymomot/shapekit/pkg/file"
	"github.com/dmitrymomot/shapekit/pkg/httpserver"
	"github.com/dmitrymomot/shapekit/pkg/logger"
	"github.com/dmitrymomot/shapekit/pkg/lookup"
	"github.com/dmitrymomot/shapekit/pkg/mongo"
	"github.com/dmitrymomot/shapekit/pkg/pg"
	"github.com/dmitrymomot/shapekit/pkg/redis"
	"github.com/dmitrymomot/shapekit/pkg/schema"
	"github.com/dmitrymomot/shapekit/pkg/validator"
)

var (
	ErrUnsupportedDriver = errors.New("unsupported lookup driver")
	ErrNotConnected      = errors.New("lookup backend is not connected")
)

// offline resolves every lookup to one that always faults. Commands that
// only inspect declarations use it to avoid opening connections.
func offline(spec schema.LookupSpec) (validator.Lookup, error) {
	return validator.LookupFunc(func(context.Context, any) (bool, error) {
		return false, fmt.Errorf("%w: %s (%s)", ErrNotConnected, spec.Name, spec.Driver)
	}), nil
}

// backends opens lookup backends on first use, one connection per driver,
// and keeps their health probes.
type backends struct {
	ctx context.Context
	log *slog.Logger

	mu      sync.Mutex
	pool    *pgxpool.Pool
	rdb     *goredis.Client
	mongoDB *gomongo.Database
	s3      *file.S3Store
	local   *file.LocalStore
	checks  []httpserver.Check
	closers []func()
}

func newBackends(ctx context.Context, log *slog.Logger) *backends {
	return &backends{ctx: ctx, log: log.With(logger.Component("backends"))}
}

// resolve is the schema.LookupResolver of shapecheck.
func (b *backends) resolve(spec schema.LookupSpec) (validator.Lookup, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch spec.Driver {
	case "postgres":
		pool, err := b.postgres()
		if err != nil {
			return nil, err
		}
		return lookup.Postgres(pool, spec.Table, spec.Column)

	case "redis":
		rdb, err := b.redis()
		if err != nil {
			return nil, err
		}
		return lookup.RedisSet(rdb, spec.Key)

	case "mongo":
		db, err := b.mongo()
		if err != nil {
			return nil, err
		}
		return lookup.Mongo(db.Collection(spec.Collection), spec.Field)

	case "s3", "local":
		store, err := b.objects(spec.Driver)
		if err != nil {
			return nil, err
		}
		return lookup.Object(store, spec.Prefix)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, spec.Driver)
}

func (b *backends) postgres() (*pgxpool.Pool, error) {
	if b.pool != nil {
		return b.pool, nil
	}
	var cfg pg.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	pool, err := pg.Connect(b.ctx, cfg)
	if err != nil {
		return nil, err
	}
	b.pool = pool
	b.checks = append(b.checks, httpserver.Check{Name: "postgres", Probe: pg.Healthcheck(pool)})
	b.closers = append(b.closers, pool.Close)
	b.log.Info("postgres connected")
	return pool, nil
}

// redis is also used by the result cache.
func (b *backends) redis() (*goredis.Client, error) {
	if b.rdb != nil {
		return b.rdb, nil
	}
	var cfg redis.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	rdb, err := redis.Connect(b.ctx, cfg)
	if err != nil {
		return nil, err
	}
	b.rdb = rdb
	b.checks = append(b.checks, httpserver.Check{Name: "redis", Probe: redis.Healthcheck(rdb)})
	b.closers = append(b.closers, func() { _ = rdb.Close() })
	b.log.Info("redis connected")
	return rdb, nil
}

func (b *backends) mongo() (*gomongo.Database, error) {
	if b.mongoDB != nil {
		return b.mongoDB, nil
	}
	var cfg mongo.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	db, err := mongo.NewWithDatabase(b.ctx, cfg, cfg.Database)
	if err != nil {
		return nil, err
	}
	b.mongoDB = db
	client := db.Client()
	b.checks = append(b.checks, httpserver.Check{Name: "mongo", Probe: mongo.Healthcheck(client)})
	b.closers = append(b.closers, func() { _ = client.Disconnect(context.WithoutCancel(b.ctx)) })
	b.log.Info("mongo connected", slog.String("database", cfg.Database))
	return db, nil
}

func (b *backends) objects(driver string) (file.Store, error) {
	var cfg objectConfig
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	if driver == "local" {
		if b.local == nil {
			store, err := file.NewLocalStore(cfg.LocalDir)
			if err != nil {
				return nil, err
			}
			b.local = store
		}
		return b.local, nil
	}

	if b.s3 == nil {
		store, err := file.NewS3Store(b.ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		b.s3 = store
		b.log.Info("s3 store ready", slog.String("bucket", cfg.S3.Bucket))
	}
	return b.s3, nil
}

// Checks returns the health probes of the backends opened so far.
func (b *backends) Checks() []httpserver.Check {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]httpserver.Check(nil), b.checks...)
}

// Close releases every opened backend in reverse order.
func (b *backends) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
}
