package plugin_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shapekit/pkg/i18n"
	"github.com/dmitrymomot/shapekit/pkg/plugin"
	"github.com/dmitrymomot/shapekit/pkg/validator"
)

func newEngine(t *testing.T) *validator.Engine {
	t.Helper()
	reg := validator.NewRegistry()
	validator.Declare(reg, "User").
		Field("name", validator.Required(), validator.MinLength(3)).
		Optional("nick", validator.MinLength(2).WithMessage("nick too short")).
		MustDone()
	return validator.New(reg)
}

func materialize(t *testing.T, e *validator.Engine, raw map[string]any) *validator.Instance {
	t.Helper()
	inst, err := e.Materialize("User", raw)
	require.NoError(t, err)
	return inst
}

type counter struct {
	next  validator.Validator
	calls atomic.Int32
}

func (c *counter) Validate(ctx context.Context, inst *validator.Instance) (*validator.Result, error) {
	c.calls.Add(1)
	return c.next.Validate(ctx, inst)
}

func TestChain(t *testing.T) {
	t.Parallel()

	var order []string
	trace := func(name string) plugin.Middleware {
		return func(next validator.Validator) validator.Validator {
			return validator.ValidatorFunc(func(ctx context.Context, inst *validator.Instance) (*validator.Result, error) {
				order = append(order, name)
				return next.Validate(ctx, inst)
			})
		}
	}

	e := newEngine(t)
	v := plugin.Chain(e, trace("outer"), nil, trace("inner"))
	_, err := v.Validate(context.Background(), materialize(t, e, map[string]any{"name": "alice"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestLogging(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := newEngine(t)
	v := plugin.Chain(e, plugin.Logging(log))

	t.Run("failed call", func(t *testing.T) {
		buf.Reset()
		res, err := v.Validate(ctx, materialize(t, e, map[string]any{"name": "al"}))
		require.NoError(t, err)
		require.False(t, res.Success)

		out := buf.String()
		assert.Contains(t, out, `"msg":"validation failed"`)
		assert.Contains(t, out, `"shape":"User"`)
		assert.Contains(t, out, `"failures":1`)
		assert.Contains(t, out, `"duration"`)
	})

	t.Run("passed call", func(t *testing.T) {
		buf.Reset()
		_, err := v.Validate(ctx, materialize(t, e, map[string]any{"name": "alice"}))
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `"msg":"validation passed"`)
	})

	t.Run("engine error", func(t *testing.T) {
		buf.Reset()
		_, err := v.Validate(ctx, nil)
		require.ErrorIs(t, err, validator.ErrNilInstance)
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
	})
}

func TestCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("identical instances hit the store", func(t *testing.T) {
		e := newEngine(t)
		c := &counter{next: e}
		store := plugin.NewMemoryStore(16)
		v := plugin.Chain(c, plugin.Cache(store, time.Minute))

		first, err := v.Validate(ctx, materialize(t, e, map[string]any{"name": "al", "nick": "x"}))
		require.NoError(t, err)
		second, err := v.Validate(ctx, materialize(t, e, map[string]any{"nick": "x", "name": "al"}))
		require.NoError(t, err)

		assert.Equal(t, int32(1), c.calls.Load())
		assert.Equal(t, first, second)
		assert.Equal(t, 1, store.Len())

		_, err = v.Validate(ctx, materialize(t, e, map[string]any{"name": "bob"}))
		require.NoError(t, err)
		assert.Equal(t, int32(2), c.calls.Load())
	})

	t.Run("results with broken checks are not stored", func(t *testing.T) {
		e := newEngine(t)
		broken := validator.ValidatorFunc(func(context.Context, *validator.Instance) (*validator.Result, error) {
			return &validator.Result{Errors: []validator.FailureRecord{{
				Path:    validator.Path{"name"},
				Rule:    "exists",
				Message: "rule evaluation failed: connection refused",
				Cause:   errors.New("connection refused"),
			}}}, nil
		})
		c := &counter{next: broken}
		store := plugin.NewMemoryStore(16)
		v := plugin.Chain(c, plugin.Cache(store, time.Minute))

		inst := materialize(t, e, map[string]any{"name": "alice"})
		_, _ = v.Validate(ctx, inst)
		_, _ = v.Validate(ctx, inst)
		assert.Equal(t, int32(2), c.calls.Load())
		assert.Zero(t, store.Len())
	})

	t.Run("cached results are isolated from callers", func(t *testing.T) {
		e := newEngine(t)
		v := plugin.Chain(e, plugin.Cache(plugin.NewMemoryStore(16), time.Minute))

		inst := materialize(t, e, map[string]any{"name": "al"})
		first, err := v.Validate(ctx, inst)
		require.NoError(t, err)
		first.Errors[0].Message = "tampered"

		second, err := v.Validate(ctx, inst)
		require.NoError(t, err)
		assert.NotEqual(t, "tampered", second.Errors[0].Message)
	})

	t.Run("nil store panics", func(t *testing.T) {
		assert.PanicsWithValue(t, plugin.ErrNilStore, func() { plugin.Cache(nil, time.Minute) })
	})
}

func TestFingerprint(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	a, err := plugin.Fingerprint(materialize(t, e, map[string]any{"name": "alice", "nick": "al"}))
	require.NoError(t, err)
	b, err := plugin.Fingerprint(materialize(t, e, map[string]any{"nick": "al", "name": "alice"}))
	require.NoError(t, err)
	c, err := plugin.Fingerprint(materialize(t, e, map[string]any{"name": "alicia", "nick": "al"}))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)

	t.Run("distinguishes bytes from their base64 text", func(t *testing.T) {
		t.Parallel()
		raw, err := plugin.Fingerprint(materialize(t, e, map[string]any{"name": []byte("hi")}))
		require.NoError(t, err)
		text, err := plugin.Fingerprint(materialize(t, e, map[string]any{"name": "aGk="}))
		require.NoError(t, err)
		assert.NotEqual(t, raw, text)
	})
}

func newCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	c, err := i18n.New(context.Background(), i18n.MapLoader(map[string]map[string]any{
		"en": {"validation": map[string]any{
			"min_length": "needs %{min} or more characters",
		}},
		"de": {"validation": map[string]any{
			"min_length": "mindestens %{min} Zeichen",
			"required":   "ist erforderlich",
		}},
	}))
	require.NoError(t, err)
	return c
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	v := plugin.Chain(e, plugin.Translate(newCatalog(t)))

	t.Run("uses the context locale", func(t *testing.T) {
		ctx := i18n.SetLocale(context.Background(), "de-AT")
		res, err := v.Validate(ctx, materialize(t, e, map[string]any{"name": "al", "nick": "x"}))
		require.NoError(t, err)

		require.Len(t, res.Errors, 2)
		assert.Equal(t, "mindestens 3 Zeichen", res.Errors[0].Message)
		assert.Equal(t, "nick too short", res.Errors[1].Message)
		assert.Equal(t, []string{"name", "nick"}, res.Fields())
	})

	t.Run("falls back to the default language", func(t *testing.T) {
		res, err := v.Validate(context.Background(), materialize(t, e, map[string]any{"name": "al"}))
		require.NoError(t, err)
		assert.Equal(t, []string{"needs 3 or more characters"}, res.Messages("name"))
	})

	t.Run("keeps messages without a catalog entry", func(t *testing.T) {
		ctx := i18n.SetLocale(context.Background(), "en")
		res, err := v.Validate(ctx, materialize(t, e, map[string]any{}))
		require.NoError(t, err)
		require.NotEmpty(t, res.Errors)
		assert.Equal(t, "required", res.Errors[0].Rule)
		assert.Equal(t, "field is required", res.Errors[0].Message)
	})

	t.Run("does not modify the wrapped result", func(t *testing.T) {
		store := plugin.NewMemoryStore(4)
		cached := plugin.Chain(e, plugin.Translate(newCatalog(t)), plugin.Cache(store, time.Minute))
		inst := materialize(t, e, map[string]any{"name": "al"})

		de, err := cached.Validate(i18n.SetLocale(context.Background(), "de"), inst)
		require.NoError(t, err)
		en, err := cached.Validate(i18n.SetLocale(context.Background(), "en"), inst)
		require.NoError(t, err)

		assert.Equal(t, "mindestens 3 Zeichen", de.Errors[0].Message)
		assert.Equal(t, "needs 3 or more characters", en.Errors[0].Message)
	})
}
