package validator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/shapekit/pkg/validator"
)

type ruleCase struct {
	name  string
	value any
	want  bool
}

// assertRule runs rule against each value of cases in isolation.
func assertRule(t *testing.T, rule validator.Rule, cases []ruleCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, msg := rule.Apply(context.Background(), tc.value)
			assert.Equal(t, tc.want, ok, "value %#v, message %q", tc.value, msg)
		})
	}
}
