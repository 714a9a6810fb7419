// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment.
//   - Load parses the environment into a struct using `env` field tags and
//     caches the result per type, so every package can call Load for the
//     same struct without re-parsing.
//   - MustLoad and MustLoadEnv panic on failure, for configuration the
//     process cannot start without.
//
// # Usage
//
//	type Config struct {
//	    HTTPAddr   string        `env:"HTTP_ADDR" envDefault:":8080"`
//	    SchemaPath string        `env:"SCHEMA_PATH,required"`
//	    CacheTTL   time.Duration `env:"CACHE_TTL" envDefault:"5m"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// A failed parse is not cached; once the environment is fixed, the next Load
// retries. Reset clears the cache between tests.
//
// # Errors
//
//   - ErrParsingConfig: the environment does not satisfy the struct tags.
//   - ErrInvalidConfigType: the target is not a struct.
//   - ErrNilPointer: a nil pointer was passed.
//   - ErrLoadingEnvFile: a .env file could not be read.
package config
