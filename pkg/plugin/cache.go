package plugin

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/shapekit/pkg/logger"
	"github.com/dmitrymomot/shapekit/pkg/validator"
)

// Store keeps validation results by fingerprint.
type Store interface {
	// Get returns the stored result. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) (*validator.Result, bool, error)
	Set(ctx context.Context, key string, res *validator.Result, ttl time.Duration) error
}

// CacheOption configures the Cache middleware.
type CacheOption func(*cacheConfig)

type cacheConfig struct {
	logger *slog.Logger
}

// WithCacheLogger sets the logger that receives store errors.
func WithCacheLogger(l *slog.Logger) CacheOption {
	return func(c *cacheConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Cache memoizes results by instance fingerprint. Results containing a
// broken rule check are not stored, and store errors degrade to a cache miss.
func Cache(store Store, ttl time.Duration, opts ...CacheOption) Middleware {
	if store == nil {
		panic(ErrNilStore)
	}
	cfg := &cacheConfig{logger: logger.Discard()}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next validator.Validator) validator.Validator {
		return validator.ValidatorFunc(func(ctx context.Context, inst *validator.Instance) (*validator.Result, error) {
			if inst == nil {
				return next.Validate(ctx, inst)
			}

			key, err := Fingerprint(inst)
			if err != nil {
				cfg.logger.WarnContext(ctx, "cannot fingerprint instance", logger.Shape(inst.Shape()), logger.Error(err))
				return next.Validate(ctx, inst)
			}

			cached, ok, err := store.Get(ctx, key)
			if err != nil {
				cfg.logger.WarnContext(ctx, "result store read failed", logger.Shape(inst.Shape()), logger.Error(err))
			}
			if ok {
				return cached, nil
			}

			res, err := next.Validate(ctx, inst)
			if err != nil || faulted(res) {
				return res, err
			}
			if err := store.Set(ctx, key, res, ttl); err != nil {
				cfg.logger.WarnContext(ctx, "result store write failed", logger.Shape(inst.Shape()), logger.Error(err))
			}
			return res, nil
		})
	}
}

// Fingerprint identifies an instance by the sha256 of its shape and a
// canonical JSON encoding of its values in which every leaf carries its Go
// type, so []byte{'h','i'} and the string "aGk=" differ. Map keys are sorted
// by the encoder, so structurally identical instances share a fingerprint.
func Fingerprint(inst *validator.Instance) (string, error) {
	var tree any
	if raw, malformed := inst.Raw(); malformed {
		tree = typed(raw)
	} else {
		tree = typed(inst.Map())
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return "", fmt.Errorf("encode instance: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(inst.Shape()))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// typed wraps every leaf of v as [type, value].
func typed(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = typed(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = typed(item)
		}
		return out
	default:
		return [2]any{fmt.Sprintf("%T", val), val}
	}
}

func faulted(res *validator.Result) bool {
	for _, rec := range res.Errors {
		if rec.Cause != nil {
			return true
		}
	}
	return false
}
