package validator_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shapekit/pkg/validator"
)

func takenEmails(emails ...string) validator.LookupFunc {
	return func(_ context.Context, v any) (bool, error) {
		s, _ := v.(string)
		return slices.Contains(emails, s), nil
	}
}

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("resolves the check result", func(t *testing.T) {
		rule := validator.Async("slow_even", func(_ context.Context, v any) (bool, error) {
			time.Sleep(5 * time.Millisecond)
			n, _ := v.(int)
			return n%2 == 0, nil
		}, "must be even")

		ok, _ := rule.Apply(context.Background(), 4)
		assert.True(t, ok)

		ok, msg := rule.Apply(context.Background(), 3)
		assert.False(t, ok)
		assert.Equal(t, "must be even", msg)
	})

	t.Run("error is a fault", func(t *testing.T) {
		rule := validator.Async("remote", func(context.Context, any) (bool, error) {
			return false, errors.New("connection refused")
		}, "is invalid")

		ok, msg := rule.Apply(context.Background(), "x")
		assert.False(t, ok)
		assert.Equal(t, "rule evaluation failed: connection refused", msg)
	})

	t.Run("canceled context is a fault", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		rule := validator.Async("never", func(ctx context.Context, _ any) (bool, error) {
			<-ctx.Done()
			return true, nil
		}, "is invalid")

		ok, msg := rule.Apply(ctx, "x")
		assert.False(t, ok)
		assert.Contains(t, msg, context.Canceled.Error())
	})

	t.Run("deadline stops waiting", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		block := make(chan struct{})
		defer close(block)
		rule := validator.Async("blocked", func(context.Context, any) (bool, error) {
			<-block
			return true, nil
		}, "is invalid")

		ok, msg := rule.Apply(ctx, "x")
		assert.False(t, ok)
		assert.Contains(t, msg, context.DeadlineExceeded.Error())
	})
}

func TestExistsAndUnique(t *testing.T) {
	t.Parallel()
	lookup := takenEmails("taken@example.com")

	assertRule(t, validator.Exists(lookup), []ruleCase{
		{name: "known", value: "taken@example.com", want: true},
		{name: "unknown", value: "free@example.com", want: false},
	})
	assertRule(t, validator.Unique(lookup), []ruleCase{
		{name: "known", value: "taken@example.com", want: false},
		{name: "unknown", value: "free@example.com", want: true},
	})

	_, msg := validator.Unique(lookup).Apply(context.Background(), "taken@example.com")
	assert.Equal(t, "is already taken", msg)
	_, msg = validator.Exists(lookup).Apply(context.Background(), "nobody@example.com")
	assert.Equal(t, "does not exist", msg)
}

func TestUniqueInsideShape(t *testing.T) {
	t.Parallel()

	reg := validator.NewRegistry()
	validator.Declare(reg, "Signup").
		Field("email", validator.Required(), validator.Email(), validator.Unique(takenEmails("taken@example.com"))).
		MustDone()

	_, res, err := validator.New(reg).Check(context.Background(), "Signup", map[string]any{"email": "taken@example.com"})
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "unique", res.Errors[0].Rule)
	assert.Equal(t, "is already taken", res.Errors[0].Message)
	assert.Equal(t, validator.Path{"email"}, res.Errors[0].Path)
}
