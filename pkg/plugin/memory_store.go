package plugin

import (
	"context"
	"time"

	"github.com/dmitrymomot/shapekit/pkg/cache"
	"github.com/dmitrymomot/shapekit/pkg/validator"
)

// MemoryStore is an in-process Store bounded by entry count.
type MemoryStore struct {
	lru *cache.LRU[string, *validator.Result]
}

// NewMemoryStore creates a store holding at most size results.
func NewMemoryStore(size int) *MemoryStore {
	return &MemoryStore{lru: cache.New[string, *validator.Result](size)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*validator.Result, bool, error) {
	res, ok := s.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return res.Clone(), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, res *validator.Result, ttl time.Duration) error {
	s.lru.PutWithTTL(key, res.Clone(), ttl)
	return nil
}

// Len returns the number of stored results.
func (s *MemoryStore) Len() int {
	return s.lru.Len()
}
