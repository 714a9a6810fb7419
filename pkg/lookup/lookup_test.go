package lookup_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/shapekit/pkg/file"
	"github.com/dmitrymomot/shapekit/pkg/lookup"
	"github.com/dmitrymomot/shapekit/pkg/validator"
)

// Every backend plugs into validator rules.
var (
	_ validator.Lookup = (*lookup.PostgresLookup)(nil)
	_ validator.Lookup = (*lookup.RedisSetLookup)(nil)
	_ validator.Lookup = (*lookup.MongoLookup)(nil)
	_ validator.Lookup = (*lookup.ObjectLookup)(nil)
	_ validator.Lookup = (*lookup.SetLookup)(nil)
)

type fakeRow struct {
	exists bool
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*bool) = r.exists
	return nil
}

type fakeQuerier struct {
	rows  map[any]bool
	err   error
	query string
	args  []any
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.query = sql
	q.args = args
	if q.err != nil {
		return fakeRow{err: q.err}
	}
	return fakeRow{exists: q.rows[args[0]]}
}

func TestPostgres(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("builds a quoted query", func(t *testing.T) {
		l, err := lookup.Postgres(&fakeQuerier{}, "auth.users", "email")
		require.NoError(t, err)
		assert.Equal(t, `SELECT EXISTS (SELECT 1 FROM "auth"."users" WHERE "email" = $1)`, l.Query())
	})

	t.Run("rejects unsafe identifiers", func(t *testing.T) {
		for _, table := range []string{"", "users;drop", "a..b", `"users"`, "1users"} {
			_, err := lookup.Postgres(&fakeQuerier{}, table, "email")
			assert.ErrorIs(t, err, lookup.ErrInvalidIdentifier, table)
		}
		_, err := lookup.Postgres(&fakeQuerier{}, "users", "e mail")
		assert.ErrorIs(t, err, lookup.ErrInvalidIdentifier)
	})

	t.Run("nil client", func(t *testing.T) {
		_, err := lookup.Postgres(nil, "users", "email")
		assert.ErrorIs(t, err, lookup.ErrNilClient)
	})

	t.Run("answers from the row", func(t *testing.T) {
		q := &fakeQuerier{rows: map[any]bool{"taken@example.com": true, int64(7): true}}
		l, err := lookup.Postgres(q, "users", "email")
		require.NoError(t, err)

		found, err := l.Exists(ctx, "taken@example.com")
		require.NoError(t, err)
		assert.True(t, found)

		found, err = l.Exists(ctx, "free@example.com")
		require.NoError(t, err)
		assert.False(t, found)

		found, err = l.Exists(ctx, float64(7))
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []any{int64(7)}, q.args)
	})

	t.Run("query errors are wrapped", func(t *testing.T) {
		l, err := lookup.Postgres(&fakeQuerier{err: errors.New("conn reset")}, "users", "email")
		require.NoError(t, err)
		_, err = l.Exists(ctx, "x")
		assert.ErrorIs(t, err, lookup.ErrLookupFailed)
	})

	t.Run("composite values are rejected", func(t *testing.T) {
		l, err := lookup.Postgres(&fakeQuerier{}, "users", "email")
		require.NoError(t, err)
		_, err = l.Exists(ctx, map[string]any{"a": 1})
		assert.ErrorIs(t, err, lookup.ErrUnsupportedValue)
	})
}

type mockSetMembership struct {
	mock.Mock
}

func (m *mockSetMembership) SIsMember(ctx context.Context, key string, member any) *redis.BoolCmd {
	args := m.Called(ctx, key, member)
	return redis.NewBoolResult(args.Bool(0), args.Error(1))
}

func TestRedisSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("checks membership of the text form", func(t *testing.T) {
		client := &mockSetMembership{}
		client.On("SIsMember", ctx, "usernames", "alice").Return(true, nil)
		client.On("SIsMember", ctx, "usernames", "42").Return(false, nil)

		l, err := lookup.RedisSet(client, "usernames")
		require.NoError(t, err)

		found, err := l.Exists(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, found)

		found, err = l.Exists(ctx, json.Number("42"))
		require.NoError(t, err)
		assert.False(t, found)
		client.AssertExpectations(t)
	})

	t.Run("redis errors are wrapped", func(t *testing.T) {
		client := &mockSetMembership{}
		client.On("SIsMember", ctx, "usernames", "alice").Return(false, redis.ErrClosed)

		l, err := lookup.RedisSet(client, "usernames")
		require.NoError(t, err)
		_, err = l.Exists(ctx, "alice")
		assert.ErrorIs(t, err, lookup.ErrLookupFailed)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	t.Run("requires a key", func(t *testing.T) {
		_, err := lookup.RedisSet(&mockSetMembership{}, "")
		assert.ErrorIs(t, err, lookup.ErrEmptyKey)
	})
}

type mockCounter struct {
	mock.Mock
}

func (m *mockCounter) CountDocuments(ctx context.Context, filter any, opts ...options.Lister[options.CountOptions]) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestMongo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	coll := &mockCounter{}
	coll.On("CountDocuments", ctx, bson.D{{Key: "sku", Value: "AB-1"}}).Return(int64(1), nil)
	coll.On("CountDocuments", ctx, bson.D{{Key: "sku", Value: "ZZ-9"}}).Return(int64(0), nil)
	coll.On("CountDocuments", ctx, bson.D{{Key: "sku", Value: "ERR"}}).Return(int64(0), errors.New("timeout"))

	l, err := lookup.Mongo(coll, "sku")
	require.NoError(t, err)

	found, err := l.Exists(ctx, "AB-1")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = l.Exists(ctx, "ZZ-9")
	require.NoError(t, err)
	assert.False(t, found)

	_, err = l.Exists(ctx, "ERR")
	assert.ErrorIs(t, err, lookup.ErrLookupFailed)

	_, err = lookup.Mongo(coll, "")
	assert.ErrorIs(t, err, lookup.ErrEmptyKey)
}

func TestObject(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "avatars"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "avatars", "alice.png"), []byte("png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secret.txt"), []byte("x"), 0o644))

	store, err := file.NewLocalStore(dir)
	require.NoError(t, err)
	l, err := lookup.Object(store, "avatars")
	require.NoError(t, err)

	found, err := l.Exists(ctx, "alice.png")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = l.Exists(ctx, "bob.png")
	require.NoError(t, err)
	assert.False(t, found)

	found, err = l.Exists(ctx, "../secret.txt")
	require.NoError(t, err)
	assert.False(t, found, "keys cannot escape the prefix")
}

func TestSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := lookup.Set("red", "green", 3)
	assert.Equal(t, 3, s.Len())

	for value, want := range map[any]bool{"red": true, "blue": false, float64(3): true, 3: true} {
		found, err := s.Exists(ctx, value)
		require.NoError(t, err)
		assert.Equal(t, want, found, "%v", value)
	}

	rule := validator.Exists(s)
	ok, _ := rule.Apply(ctx, "green")
	assert.True(t, ok)
}
