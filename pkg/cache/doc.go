// Package cache provides a generic, thread-safe LRU cache with optional entry
// expiry.
//
// The cache is bounded by entry count: once full, the least recently used
// entry is evicted. Entries may also carry a lifetime, either the default set
// with WithTTL or a per-call one passed to PutWithTTL. Expired entries are
// dropped lazily when touched, or eagerly by Purge.
//
// # Usage
//
//	results := cache.New[string, []byte](1024,
//	    cache.WithTTL[string, []byte](5*time.Minute),
//	)
//
//	results.Put("user:42", payload)
//	if data, ok := results.Get("user:42"); ok {
//	    // use data
//	}
//
// An eviction callback observes every entry leaving the cache:
//
//	c := cache.New[string, *os.File](16,
//	    cache.WithEvictCallback(func(_ string, f *os.File) { _ = f.Close() }),
//	)
//
// # Concurrency
//
// All operations take a single mutex and run in O(1), except Purge and Clear
// which walk every entry. Eviction callbacks run while the lock is held and
// must not call back into the cache.
//
// The validation result cache in pkg/plugin is built on this type.
package cache
