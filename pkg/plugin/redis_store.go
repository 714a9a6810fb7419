package plugin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/shapekit/pkg/validator"
)

// RedisClient is the subset of the go-redis API used by RedisStore.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps results in Redis as JSON under a common key prefix.
type RedisStore struct {
	client RedisClient
	prefix string
}

// NewRedisStore creates a store on client. Keys are written as prefix+fingerprint.
func NewRedisStore(client RedisClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// storedRecord keeps the fields FailureRecord omits from its public JSON so
// that translated messages can still be produced from a cached result.
// Params are stored rendered, since JSON does not keep their Go types.
type storedRecord struct {
	Path       []any             `json:"path"`
	Rule       string            `json:"rule"`
	Message    string            `json:"message"`
	Key        string            `json:"key,omitempty"`
	Params     map[string]string `json:"params,omitempty"`
	Overridden bool              `json:"overridden,omitempty"`
}

type storedResult struct {
	Success bool           `json:"success"`
	Errors  []storedRecord `json:"errors"`
}

func (s *RedisStore) Get(ctx context.Context, key string) (*validator.Result, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var stored storedResult
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&stored); err != nil {
		return nil, false, errors.Join(ErrCorruptedEntry, err)
	}

	res := &validator.Result{Success: stored.Success, Errors: make([]validator.FailureRecord, 0, len(stored.Errors))}
	for _, rec := range stored.Errors {
		path, err := decodePath(rec.Path)
		if err != nil {
			return nil, false, errors.Join(ErrCorruptedEntry, err)
		}
		res.Errors = append(res.Errors, validator.FailureRecord{
			Path:       path,
			Rule:       rec.Rule,
			Message:    rec.Message,
			Key:        rec.Key,
			Params:     restoreParams(rec.Params),
			Overridden: rec.Overridden,
		})
	}
	return res, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, res *validator.Result, ttl time.Duration) error {
	stored := storedResult{Success: res.Success, Errors: make([]storedRecord, 0, len(res.Errors))}
	for _, rec := range res.Errors {
		stored.Errors = append(stored.Errors, storedRecord{
			Path:       rec.Path,
			Rule:       rec.Rule,
			Message:    rec.Message,
			Key:        rec.Key,
			Params:     renderParams(rec.Params),
			Overridden: rec.Overridden,
		})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return s.client.Set(ctx, s.prefix+key, data, ttl).Err()
}

func decodePath(segments []any) (validator.Path, error) {
	path := make(validator.Path, 0, len(segments))
	for _, seg := range segments {
		switch v := seg.(type) {
		case string:
			path = append(path, v)
		case json.Number:
			n, err := v.Int64()
			if err != nil {
				return nil, fmt.Errorf("path index %q: %w", v, err)
			}
			path = append(path, int(n))
		default:
			return nil, fmt.Errorf("unexpected path segment %v", seg)
		}
	}
	return path, nil
}

func renderParams(p validator.Params) map[string]string {
	if len(p) == 0 {
		return nil
	}
	out := make(map[string]string, len(p))
	for k, v := range validator.FormatParams(p) {
		out[k], _ = v.(string)
	}
	return out
}

func restoreParams(p map[string]string) validator.Params {
	if len(p) == 0 {
		return nil
	}
	out := make(validator.Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
