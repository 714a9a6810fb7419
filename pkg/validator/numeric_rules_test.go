package validator_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/shapekit/pkg/validator"
)

func TestIsNumber(t *testing.T) {
	t.Parallel()
	assertRule(t, validator.IsNumber(), []ruleCase{
		{name: "float64", value: 1.5, want: true},
		{name: "int", value: 3, want: true},
		{name: "uint8", value: uint8(3), want: true},
		{name: "json number", value: json.Number("42"), want: true},
		{name: "numeric string", value: "42", want: false},
		{name: "bool", value: true, want: false},
	})
}

func TestInteger(t *testing.T) {
	t.Parallel()
	assertRule(t, validator.Integer(), []ruleCase{
		{name: "whole float", value: float64(4), want: true},
		{name: "fraction", value: 4.2, want: false},
		{name: "int64", value: int64(-7), want: true},
	})
}

func TestMinMax(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "must be at least 18", validator.Min(18).Message())
	assert.Equal(t, "must be at most 2.5", validator.Max(2.5).Message())

	assertRule(t, validator.Min(18), []ruleCase{
		{name: "equal", value: float64(18), want: true},
		{name: "below", value: 17, want: false},
		{name: "not a number", value: "20", want: false},
	})
	assertRule(t, validator.Max(2.5), []ruleCase{
		{name: "below", value: 2, want: true},
		{name: "above", value: 2.6, want: false},
	})
	assertRule(t, validator.Between(1, 10), []ruleCase{
		{name: "lower bound", value: 1, want: true},
		{name: "upper bound", value: float64(10), want: true},
		{name: "outside", value: 11, want: false},
	})
	assert.Equal(t, "must be between 1 and 10", validator.Between(1, 10).Message())
}

func TestSignRules(t *testing.T) {
	t.Parallel()
	assertRule(t, validator.Positive(), []ruleCase{
		{name: "positive", value: 0.1, want: true},
		{name: "zero", value: 0, want: false},
	})
	assertRule(t, validator.Negative(), []ruleCase{
		{name: "negative", value: -1, want: true},
		{name: "zero", value: 0, want: false},
	})
	assertRule(t, validator.NonNegative(), []ruleCase{
		{name: "zero", value: 0, want: true},
		{name: "negative", value: -0.5, want: false},
	})
}

func TestMultipleOf(t *testing.T) {
	t.Parallel()
	assertRule(t, validator.MultipleOf(0.25), []ruleCase{
		{name: "multiple", value: 1.75, want: true},
		{name: "not multiple", value: 1.8, want: false},
	})
	assertRule(t, validator.MultipleOf(0), []ruleCase{
		{name: "zero step never passes", value: 0, want: false},
	})
}

func TestEqualsConstant(t *testing.T) {
	t.Parallel()
	assertRule(t, validator.Equals(1), []ruleCase{
		{name: "same number different type", value: float64(1), want: true},
		{name: "different", value: 2, want: false},
		{name: "string", value: "1", want: false},
	})
	assertRule(t, validator.NotEquals("root"), []ruleCase{
		{name: "different", value: "alice", want: true},
		{name: "same", value: "root", want: false},
	})
}
