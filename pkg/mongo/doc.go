// Package mongo connects to MongoDB with go.mongodb.org/mongo-driver/v2.
//
// New retries connect-and-ping with exponential backoff (retry-go);
// NewWithDatabase returns the database handle lookups run against. The
// database backs lookup.Mongo for async existence and uniqueness rules.
package mongo
