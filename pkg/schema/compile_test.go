package schema_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shapekit/pkg/lookup"
	"github.com/dmitrymomot/shapekit/pkg/schema"
	"github.com/dmitrymomot/shapekit/pkg/validator"
)

func signupEngine(t *testing.T) *validator.Engine {
	t.Helper()

	doc, err := schema.ParseFile("testdata/signup.yaml")
	require.NoError(t, err)

	reg := validator.NewRegistry()
	err = schema.Declare(reg, doc, schema.WithLookup("usernames", lookup.Set("admin")))
	require.NoError(t, err)
	return validator.New(reg)
}

func validSignup() map[string]any {
	return map[string]any{
		"email":    "new@example.com",
		"password": "s3cretpass",
		"confirm":  "s3cretpass",
		"address":  map[string]any{"country": "de", "zip": "10115"},
	}
}

func TestDeclare(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("declares shapes in document order", func(t *testing.T) {
		engine := signupEngine(t)
		assert.Equal(t, []validator.ShapeID{"Signup", "Address", "Contact"}, engine.Registry().Shapes())

		meta, err := engine.Registry().Lookup("Signup")
		require.NoError(t, err)
		age, ok := meta.Field("age")
		require.True(t, ok)
		assert.True(t, age.Optional)
	})

	t.Run("valid input passes", func(t *testing.T) {
		_, res, err := signupEngine(t).Check(ctx, "Signup", validSignup())
		require.NoError(t, err)
		assert.True(t, res.Success, "%+v", res.Errors)
	})

	t.Run("reports failures with document messages", func(t *testing.T) {
		in := validSignup()
		in["email"] = "taken@example.com"
		in["password"] = "longpassword"
		in["confirm"] = "different"

		_, res, err := signupEngine(t).Check(ctx, "Signup", in)
		require.NoError(t, err)
		require.False(t, res.Success)

		assert.Equal(t, []string{"is already taken"}, res.Messages("email"))
		assert.Equal(t, []string{"password needs a digit"}, res.Messages("password"))
		assert.Equal(t, []string{"must be equal to password"}, res.Messages("confirm"))
	})

	t.Run("optional fields are validated when present", func(t *testing.T) {
		in := validSignup()
		in["age"] = 9
		in["tags"] = []any{"go", "java"}

		_, res, err := signupEngine(t).Check(ctx, "Signup", in)
		require.NoError(t, err)
		assert.Equal(t, []string{"must be between 13 and 130"}, res.Messages("age"))
		require.True(t, res.Has("tags"))
		assert.Equal(t, "each", res.Errors[len(res.Errors)-1].Rule)
	})

	t.Run("nested and array shapes", func(t *testing.T) {
		in := validSignup()
		in["address"] = map[string]any{"country": "ES", "zip": "ab"}
		in["contacts"] = []any{
			map[string]any{"kind": "email", "value": "a@example.com"},
			map[string]any{"kind": "fax", "value": "nope"},
		}

		_, res, err := signupEngine(t).Check(ctx, "Signup", in)
		require.NoError(t, err)
		assert.Equal(t, []string{"address.country", "address.zip", "contacts[1].kind", "contacts[1].value"}, res.Fields())

		zip := res.Errors[1]
		assert.Equal(t, "if_then_else", zip.Rule)
	})
}

func TestDeclare_Errors(t *testing.T) {
	t.Parallel()

	declare := func(t *testing.T, src string, opts ...schema.Option) error {
		t.Helper()
		doc, err := schema.Parse([]byte(src))
		require.NoError(t, err)
		return schema.Declare(validator.NewRegistry(), doc, opts...)
	}

	tests := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "unknown rule",
			src:  "shapes:\n  A:\n    fields:\n      x: [frobnicate]\n",
			want: schema.ErrUnknownRule,
		},
		{
			name: "wrong arity",
			src:  "shapes:\n  A:\n    fields:\n      x: [{min_length: [1, 2]}]\n",
			want: schema.ErrInvalidArgs,
		},
		{
			name: "wrong argument type",
			src:  "shapes:\n  A:\n    fields:\n      x: [{min_length: abc}]\n",
			want: schema.ErrInvalidArgs,
		},
		{
			name: "bad regular expression",
			src:  "shapes:\n  A:\n    fields:\n      x: [{pattern: '(['}]\n",
			want: schema.ErrInvalidArgs,
		},
		{
			name: "undeclared nested shape",
			src:  "shapes:\n  A:\n    fields:\n      b: {shape: B}\n",
			want: schema.ErrUnknownShapeRef,
		},
		{
			name: "array without shape",
			src:  "shapes:\n  A:\n    fields:\n      b: {array: true}\n",
			want: schema.ErrInvalidDocument,
		},
		{
			name: "undeclared lookup",
			src:  "shapes:\n  A:\n    fields:\n      x: [{exists: nope}]\n",
			want: schema.ErrUnknownLookup,
		},
		{
			name: "backend lookup without resolver",
			src:  "lookups:\n  l: {driver: postgres, table: t, column: c}\nshapes:\n  A:\n    fields:\n      x: [{exists: l}]\n",
			want: schema.ErrUnknownLookup,
		},
		{
			name: "duplicate field",
			src:  "shapes:\n  A:\n    fields:\n      x: [required]\n      x: [email]\n",
			want: schema.ErrDuplicateField,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, declare(t, tt.src), tt.want)
		})
	}

	t.Run("all problems are reported and nothing is declared", func(t *testing.T) {
		doc, err := schema.Parse([]byte("shapes:\n  A:\n    fields:\n      x: [frobnicate]\n      y: {shape: Missing}\n"))
		require.NoError(t, err)

		reg := validator.NewRegistry()
		err = schema.Declare(reg, doc)
		assert.ErrorIs(t, err, schema.ErrUnknownRule)
		assert.ErrorIs(t, err, schema.ErrUnknownShapeRef)
		assert.Empty(t, reg.Shapes())
	})

	t.Run("registry conflicts leave the registry untouched", func(t *testing.T) {
		reg := validator.NewRegistry()
		_, err := schema.Load(reg, []byte("shapes:\n  A:\n    fields:\n      x: [required]\n  B:\n    fields:\n      y: [required, required]\n"))
		assert.ErrorIs(t, err, validator.ErrDuplicateRule)
		assert.Empty(t, reg.Shapes())

		_, err = schema.Load(reg, []byte("shapes:\n  A:\n    fields:\n      x: [required]\n  B:\n    fields:\n      y: [required]\n"))
		require.NoError(t, err)
		assert.Equal(t, []validator.ShapeID{"A", "B"}, reg.Shapes())
	})

	t.Run("distinct lookups on one field", func(t *testing.T) {
		reg := validator.NewRegistry()
		_, err := schema.Load(reg, []byte(`
lookups:
  staff: {driver: static, values: [alice]}
  reserved: {driver: static, values: [root]}
shapes:
  A:
    fields:
      name: [{unique: staff}, {unique: reserved}]
`))
		require.NoError(t, err)

		engine := validator.New(reg)
		for _, name := range []string{"alice", "root"} {
			_, res, err := engine.Check(context.Background(), "A", map[string]any{"name": name})
			require.NoError(t, err)
			assert.Equal(t, []string{"is already taken"}, res.Messages("name"), name)
		}
		_, res, err := engine.Check(context.Background(), "A", map[string]any{"name": "bob"})
		require.NoError(t, err)
		assert.True(t, res.Success)
	})

	t.Run("shape already in registry", func(t *testing.T) {
		reg := validator.NewRegistry()
		validator.Declare(reg, "A").Field("x").MustDone()
		doc, err := schema.Parse([]byte("shapes:\n  A:\n    fields:\n      x: [required]\n"))
		require.NoError(t, err)
		assert.ErrorIs(t, schema.Declare(reg, doc), schema.ErrDuplicateShape)
	})
}

func TestOptions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("custom factory", func(t *testing.T) {
		reg := validator.NewRegistry()
		_, err := schema.Load(reg, []byte("shapes:\n  A:\n    fields:\n      code: [{prefix_upper: ACME}]\n"),
			schema.WithFactory("prefix_upper", func(args schema.Args) (validator.Rule, error) {
				prefix, err := args.String(0)
				if err != nil {
					return validator.Rule{}, err
				}
				return validator.Func("prefix_upper", func(v any) bool {
					s, ok := v.(string)
					return ok && strings.HasPrefix(strings.ToUpper(s), prefix)
				}, "must start with "+prefix), nil
			}),
		)
		require.NoError(t, err)

		_, res, err := validator.New(reg).Check(ctx, "A", map[string]any{"code": "nope"})
		require.NoError(t, err)
		assert.Equal(t, []string{"must start with ACME"}, res.Messages("code"))
	})

	t.Run("lookup resolver receives the spec once", func(t *testing.T) {
		var calls int
		resolver := func(spec schema.LookupSpec) (validator.Lookup, error) {
			calls++
			assert.Equal(t, "postgres", spec.Driver)
			assert.Equal(t, "users", spec.Table)
			return lookup.Set("alice"), nil
		}

		reg := validator.NewRegistry()
		_, err := schema.Load(reg, []byte(`
lookups:
  users: {driver: postgres, table: users, column: name}
shapes:
  A:
    fields:
      owner: [{exists: users}]
      reviewer: [{exists: users}]
`), schema.WithLookupResolver(resolver))
		require.NoError(t, err)
		assert.Equal(t, 1, calls)

		_, res, err := validator.New(reg).Check(ctx, "A", map[string]any{"owner": "alice", "reviewer": "bob"})
		require.NoError(t, err)
		assert.Equal(t, []string{"reviewer"}, res.Fields())
		assert.Equal(t, []string{"does not exist"}, res.Messages("reviewer"))
	})
}

func TestRuleNames(t *testing.T) {
	t.Parallel()
	names := schema.RuleNames()
	assert.Contains(t, names, "email")
	assert.Contains(t, names, "if")
	assert.IsIncreasing(t, names)
}
