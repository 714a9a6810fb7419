package mongo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/shapekit/pkg/mongo"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("invalid uri", func(t *testing.T) {
		_, err := mongo.New(context.Background(), mongo.Config{ConnectionURL: "not-a-mongo-uri", RetryAttempts: 1})
		assert.ErrorIs(t, err, mongo.ErrFailedToConnectToMongo)
	})

	t.Run("missing database name", func(t *testing.T) {
		_, err := mongo.NewWithDatabase(context.Background(), mongo.Config{ConnectionURL: "mongodb://localhost:27017"}, "")
		assert.ErrorIs(t, err, mongo.ErrEmptyDatabaseName)
	})
}
