package conditions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verityhq/verity/packages/state"
)

func evaluate(t *testing.T, cond func() (bool, any, error)) bool {
	t.Helper()
	ok, _, err := cond()
	require.NoError(t, err)
	return ok
}

func TestEquals(t *testing.T) {
	tests := []struct {
		name     string
		actual   any
		expected any
		want     bool
	}{
		{"identical strings", "foo", "foo", true},
		{"different strings", "foo", "bar", false},
		{"numeric coercion int vs float", 200, 200.0, true},
		{"numeric string", "42", 42, true},
		{"both nil", nil, nil, true},
		{"actual nil", nil, "x", false},
		{"expected nil", "x", nil, false},
		{"slices deep equal", []any{1, 2}, []any{1, 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := Equals(state.Of(tt.actual), tt.expected)
			assert.Equal(t, tt.want, evaluate(t, cond))
		})
	}
}

func TestNotEquals(t *testing.T) {
	assert.True(t, evaluate(t, NotEquals(state.Of("foo"), "bar")))
	assert.False(t, evaluate(t, NotEquals(state.Of("foo"), "foo")))
}

func TestNot_DoesNotInvertErrors(t *testing.T) {
	boom := errors.New("read failed")
	src := state.FromFunc(func() (string, error) { return "", boom })

	ok, _, err := Not(Equals(src, "x"))()
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
}

func TestStringChecks(t *testing.T) {
	src := state.Of("hello world")

	assert.True(t, evaluate(t, Contains(src, "lo wo")))
	assert.False(t, evaluate(t, Contains(src, "z")))
	assert.True(t, evaluate(t, StartsWith(src, "hello")))
	assert.False(t, evaluate(t, StartsWith(src, "world")))
	assert.True(t, evaluate(t, EndsWith(src, "world")))
	assert.True(t, evaluate(t, Matches(src, `^hello\s\w+$`)))
	assert.True(t, evaluate(t, Matches(src, `/^hello/`)), "surrounding slashes are stripped")
}

func TestStringChecks_NilActual(t *testing.T) {
	src := state.Of[any](nil)

	// Absent values contain nothing; no panic, no accidental "<nil>" match.
	assert.False(t, evaluate(t, Contains(src, "nil")))
	assert.False(t, evaluate(t, StartsWith(src, "<")))
	assert.False(t, evaluate(t, Matches(src, ".*")))
}

func TestMatches_InvalidPattern(t *testing.T) {
	ok, _, err := Matches(state.Of("x"), "[unclosed")()
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestNilChecks(t *testing.T) {
	assert.True(t, evaluate(t, Nil(state.Of[any](nil))))
	assert.False(t, evaluate(t, Nil(state.Of[any]("present"))))
	assert.True(t, evaluate(t, NotNil(state.Of[any](0))))

	var m map[string]any
	assert.True(t, evaluate(t, Nil(state.Of[any](m))), "typed nil is still absent")
}

func TestIn(t *testing.T) {
	src := state.Of(404)
	assert.True(t, evaluate(t, In(src, 200, 404, 500)))
	assert.False(t, evaluate(t, In(src, 200, 201)))
	assert.True(t, evaluate(t, In(src, 404.0)), "numeric coercion applies per element")
}

func TestLength(t *testing.T) {
	assert.True(t, evaluate(t, Length(state.Of("abc"), 3)))
	assert.True(t, evaluate(t, Length(state.Of([]any{1, 2}), 2)))
	assert.True(t, evaluate(t, Length(state.Of(map[string]any{"a": 1}), 1)))
	assert.False(t, evaluate(t, Length(state.Of(42), 2)), "lengthless values fail the check")
	assert.False(t, evaluate(t, Length(state.Of[any](nil), 0)))
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		actual any
		want   string
	}{
		{nil, "null"},
		{true, "boolean"},
		{3.14, "number"},
		{7, "number"},
		{"s", "string"},
		{[]any{}, "array"},
		{map[string]any{}, "object"},
	}
	for _, tt := range tests {
		assert.True(t, evaluate(t, TypeOf(state.Of(tt.actual), tt.want)),
			"expected %v to have type %s", tt.actual, tt.want)
	}
}

func TestSatisfies(t *testing.T) {
	src := state.Of(41)
	assert.False(t, evaluate(t, Satisfies(src, func(n int) bool { return n > 41 })))
	assert.True(t, evaluate(t, Satisfies(src, func(n int) bool { return n%2 == 1 })))
}

func TestBooleanSources(t *testing.T) {
	ready := false
	src := state.Supply(func() bool { return ready })

	assert.False(t, evaluate(t, IsTrue(src)))
	assert.True(t, evaluate(t, IsFalse(src)))

	ready = true
	assert.True(t, evaluate(t, IsTrue(src)), "condition reads the live source")
}

func TestConditionReportsActual(t *testing.T) {
	_, actual, err := Equals(state.Of("observed"), "wanted")()
	require.NoError(t, err)
	assert.Equal(t, "observed", actual)
}
