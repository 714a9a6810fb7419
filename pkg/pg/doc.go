// Package pg opens PostgreSQL connection pools with the pgx/v5 driver.
//
// Config is populated from environment variables (see pkg/config) and
// Connect retries with exponential backoff via github.com/avast/retry-go/v4
// until the database answers a ping. Healthcheck adapts a pool to the
// func(context.Context) error shape used by health endpoints.
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
// The pool backs lookup.Postgres, which answers existence and uniqueness
// questions for async validation rules.
package pg
