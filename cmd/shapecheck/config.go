package main

import (
	"time"

	"github.com/dmitrymomot/shapekit/pkg/file"
	"github.com/dmitrymomot/shapekit/pkg/httpserver"
)

// Config is the environment of every shapecheck command.
type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	SchemaPath      string `env:"SCHEMA_PATH" envDefault:"schema.yaml"`
	LocalesPath     string `env:"LOCALES_PATH"`
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`

	CacheStore  string        `env:"CACHE_STORE" envDefault:"memory"` // memory, redis or none
	CacheSize   int           `env:"CACHE_SIZE" envDefault:"1024"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	CachePrefix string        `env:"CACHE_PREFIX" envDefault:"shapecheck:result:"`

	HealthTimeout time.Duration `env:"HEALTH_TIMEOUT" envDefault:"2s"`

	HTTP httpserver.Config
}

// objectConfig locates the stores behind s3 and local lookups.
type objectConfig struct {
	S3       file.S3Config `envPrefix:"S3_"`
	LocalDir string        `env:"OBJECT_LOCAL_DIR" envDefault:"."`
}
