package lookup

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// SetMembership is the subset of redis.Cmdable used by RedisSet.
type SetMembership interface {
	SIsMember(ctx context.Context, key string, member any) *redis.BoolCmd
}

// RedisSetLookup checks membership in one Redis set.
type RedisSetLookup struct {
	client SetMembership
	key    string
}

// RedisSet builds a lookup over the set stored at key.
func RedisSet(client SetMembership, key string) (*RedisSetLookup, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if key == "" {
		return nil, ErrEmptyKey
	}
	return &RedisSetLookup{client: client, key: key}, nil
}

func (l *RedisSetLookup) Exists(ctx context.Context, value any) (bool, error) {
	member, err := text(value)
	if err != nil {
		return false, err
	}
	found, err := l.client.SIsMember(ctx, l.key, member).Result()
	if err != nil {
		return false, errors.Join(ErrLookupFailed, err)
	}
	return found, nil
}
