// Package redis connects to Redis with github.com/redis/go-redis/v9.
//
// Connect retries the initial ping with exponential backoff (retry-go) inside
// Config.ConnectTimeout, and Healthcheck wraps a client for health endpoints.
// The client backs lookup.RedisSet and the Redis result store of pkg/plugin.
//
//	client, err := redis.Connect(ctx, redis.Config{
//	    ConnectionURL: "redis://localhost:6379/0",
//	    RetryAttempts: 3,
//	    RetryInterval: time.Second,
//	})
package redis
