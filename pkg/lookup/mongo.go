package lookup

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Counter is the subset of *mongo.Collection used by Mongo.
type Counter interface {
	CountDocuments(ctx context.Context, filter any, opts ...options.Lister[options.CountOptions]) (int64, error)
}

// MongoLookup checks whether any document has field equal to a value.
type MongoLookup struct {
	coll  Counter
	field string
}

// Mongo builds a lookup over field of coll. Dotted fields address nested documents.
func Mongo(coll Counter, field string) (*MongoLookup, error) {
	if coll == nil {
		return nil, ErrNilClient
	}
	if field == "" {
		return nil, ErrEmptyKey
	}
	return &MongoLookup{coll: coll, field: field}, nil
}

func (l *MongoLookup) Exists(ctx context.Context, value any) (bool, error) {
	v, err := normalize(value)
	if err != nil {
		return false, err
	}
	n, err := l.coll.CountDocuments(ctx, bson.D{{Key: l.field, Value: v}}, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Join(ErrLookupFailed, err)
	}
	return n > 0, nil
}
