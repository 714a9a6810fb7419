package validator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/shapekit/pkg/validator"
)

func TestRequired(t *testing.T) {
	t.Parallel()
	rule := validator.Required()
	assert.Equal(t, "required", rule.ID())
	assert.Equal(t, "field is required", rule.Message())
	assert.True(t, rule.Presence())

	assertRule(t, rule, []ruleCase{
		{name: "non-empty string", value: "test@example.com", want: true},
		{name: "string with surrounding whitespace", value: "  John  ", want: true},
		{name: "zero number", value: 0, want: true},
		{name: "false", value: false, want: true},
		{name: "empty string", value: "", want: false},
		{name: "whitespace only", value: "   ", want: false},
		{name: "nil", value: nil, want: false},
		{name: "empty slice", value: []any{}, want: false},
		{name: "empty map", value: map[string]any{}, want: false},
	})
}

func TestNotNil(t *testing.T) {
	t.Parallel()
	assertRule(t, validator.NotNil(), []ruleCase{
		{name: "empty string", value: "", want: true},
		{name: "nil", value: nil, want: false},
	})
}

func TestEmpty(t *testing.T) {
	t.Parallel()
	assertRule(t, validator.Empty(), []ruleCase{
		{name: "nil", value: nil, want: true},
		{name: "blank string", value: " ", want: true},
		{name: "value", value: "x", want: false},
	})
}

func TestMinLength(t *testing.T) {
	t.Parallel()
	rule := validator.MinLength(5)
	assert.Equal(t, "min_length", rule.ID())
	assert.Equal(t, "must be at least 5 characters long", rule.Message())
	assert.Equal(t, validator.Params{"min": 5}, rule.Params())

	assertRule(t, rule, []ruleCase{
		{name: "equal to minimum", value: "12345", want: true},
		{name: "longer", value: "123456", want: true},
		{name: "shorter", value: "1234", want: false},
		{name: "counts runes not bytes", value: "héllo", want: true},
		{name: "multibyte shorter", value: "日本語", want: false},
		{name: "not a string", value: 12345, want: false},
	})
}

func TestMaxLength(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "must be at most 3 characters long", validator.MaxLength(3).Message())
	assertRule(t, validator.MaxLength(3), []ruleCase{
		{name: "shorter", value: "ab", want: true},
		{name: "equal", value: "日本語", want: true},
		{name: "longer", value: "abcd", want: false},
	})
}

func TestLength(t *testing.T) {
	t.Parallel()
	assertRule(t, validator.Length(2), []ruleCase{
		{name: "exact", value: "ab", want: true},
		{name: "off by one", value: "abc", want: false},
	})
	assertRule(t, validator.LengthBetween(2, 4), []ruleCase{
		{name: "lower bound", value: "ab", want: true},
		{name: "upper bound", value: "abcd", want: true},
		{name: "above", value: "abcde", want: false},
	})
	assert.Equal(t, "must be between 2 and 4 characters long", validator.LengthBetween(2, 4).Message())
}

func TestSubstringRules(t *testing.T) {
	t.Parallel()
	assertRule(t, validator.StartsWith("A"), []ruleCase{
		{name: "prefix", value: "Apple", want: true},
		{name: "no prefix", value: "apple", want: false},
	})
	assertRule(t, validator.EndsWith(".com"), []ruleCase{
		{name: "suffix", value: "example.com", want: true},
		{name: "no suffix", value: "example.org", want: false},
	})
	assertRule(t, validator.Contains("@"), []ruleCase{
		{name: "contains", value: "a@b", want: true},
		{name: "missing", value: "ab", want: false},
	})
	assert.Equal(t, "must start with A", validator.StartsWith("A").Message())
}

func TestCaseRules(t *testing.T) {
	t.Parallel()
	assertRule(t, validator.Lowercase(), []ruleCase{
		{name: "lowercase", value: "hello-1", want: true},
		{name: "mixed", value: "Hello", want: false},
	})
	assertRule(t, validator.Uppercase(), []ruleCase{
		{name: "uppercase", value: "HELLO-1", want: true},
		{name: "mixed", value: "Hello", want: false},
	})
}

func TestIsStringAndNotBlank(t *testing.T) {
	t.Parallel()
	assertRule(t, validator.IsString(), []ruleCase{
		{name: "string", value: "", want: true},
		{name: "number", value: 1, want: false},
	})
	assertRule(t, validator.NotBlank(), []ruleCase{
		{name: "text", value: " a ", want: true},
		{name: "blank", value: "\t\n", want: false},
	})
}

func TestRule_WithMessage(t *testing.T) {
	t.Parallel()

	base := validator.MinLength(5)
	custom := base.WithMessage("too short")

	assert.False(t, base.HasOverride())
	assert.True(t, custom.HasOverride())
	assert.Equal(t, "too short", custom.Message())
	assert.Equal(t, "must be at least 5 characters long", custom.DefaultMessage())

	ok, msg := custom.Apply(context.Background(), "abc")
	assert.False(t, ok)
	assert.Equal(t, "too short", msg)
}

func TestRule_Params(t *testing.T) {
	t.Parallel()

	rule := validator.MinLength(5)
	p := rule.Params()
	p["min"] = 1
	assert.Equal(t, 5, rule.Params()["min"], "params are returned as a copy")
}

func TestZeroRule(t *testing.T) {
	t.Parallel()

	var rule validator.Rule
	assert.True(t, rule.IsZero())
	ok, _ := rule.Apply(context.Background(), "anything")
	assert.True(t, ok)
}
