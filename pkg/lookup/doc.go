// Package lookup implements validator.Lookup against external stores, so
// validator.Exists and validator.Unique can check values against real data.
//
//	emails, err := lookup.Postgres(pool, "users", "email")
//	if err != nil {
//	    return err
//	}
//
//	validator.Declare(reg, "Signup").
//	    Field("email", validator.Required(), validator.Email(), validator.Unique(emails)).
//	    MustDone()
//
// Backends:
//
//   - Postgres: SELECT EXISTS over one column of one table (pgx/v5).
//   - RedisSet: SISMEMBER against a Redis set (go-redis/v9).
//   - Mongo: CountDocuments with limit 1 on one field (mongo-driver/v2).
//   - Object: object presence in a file.Store (local disk or S3).
//   - Set: a fixed in-memory set, handy for tests and static allow-lists.
//
// Every backend is safe for concurrent use as long as the underlying client is.
// Lookup errors surface as rule faults, never as validation failures.
package lookup
