package conditions

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/verityhq/verity/packages/poll"
	"github.com/verityhq/verity/packages/state"
)

// Not inverts a condition. "Should never be X" checks are pre-negated here
// so the polling layer only ever waits for true. Evaluation errors are not
// inverted; a failing read satisfies neither polarity.
func Not(cond poll.Condition) poll.Condition {
	return func() (bool, any, error) {
		ok, actual, err := cond()
		if err != nil {
			return false, actual, err
		}
		return !ok, actual, nil
	}
}

// Satisfies builds a condition from an arbitrary predicate over the live
// value.
func Satisfies[T any](src state.Accessor[T], pred func(T) bool) poll.Condition {
	return func() (bool, any, error) {
		v, err := src.Get()
		if err != nil {
			return false, nil, err
		}
		return pred(v), v, nil
	}
}

// IsTrue polls a boolean source until it reads true.
func IsTrue(src state.Accessor[bool]) poll.Condition {
	return Satisfies(src, func(b bool) bool { return b })
}

// IsFalse polls a boolean source until it reads false.
func IsFalse(src state.Accessor[bool]) poll.Condition {
	return Satisfies(src, func(b bool) bool { return !b })
}

// Equals compares the live value against expected, coercing numerics and
// falling back to string comparison, so 200 and 200.0 compare equal the way
// values decoded from JSON do.
func Equals[T any](src state.Accessor[T], expected any) poll.Condition {
	return func() (bool, any, error) {
		v, err := src.Get()
		if err != nil {
			return false, nil, err
		}
		return equalValues(v, expected), v, nil
	}
}

// NotEquals is the pre-negated form of Equals.
func NotEquals[T any](src state.Accessor[T], expected any) poll.Condition {
	return Not(Equals(src, expected))
}

// Nil reports whether the live value is absent.
func Nil[T any](src state.Accessor[T]) poll.Condition {
	return func() (bool, any, error) {
		v, err := src.Get()
		if err != nil {
			return false, nil, err
		}
		return isNil(v), v, nil
	}
}

// NotNil reports whether the live value is present.
func NotNil[T any](src state.Accessor[T]) poll.Condition {
	return Not(Nil(src))
}

// Contains checks the string rendering of the live value for a substring.
// Absent values contain nothing.
func Contains[T any](src state.Accessor[T], substr string) poll.Condition {
	return stringCheck(src, func(s string) bool {
		return strings.Contains(s, substr)
	})
}

// StartsWith checks the string rendering of the live value for a prefix.
func StartsWith[T any](src state.Accessor[T], prefix string) poll.Condition {
	return stringCheck(src, func(s string) bool {
		return strings.HasPrefix(s, prefix)
	})
}

// EndsWith checks the string rendering of the live value for a suffix.
func EndsWith[T any](src state.Accessor[T], suffix string) poll.Condition {
	return stringCheck(src, func(s string) bool {
		return strings.HasSuffix(s, suffix)
	})
}

// Matches checks the string rendering of the live value against a regular
// expression. Surrounding slashes are stripped, so "/foo.*/" and "foo.*"
// are equivalent.
func Matches[T any](src state.Accessor[T], pattern string) poll.Condition {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(pattern, "/"), "/")
	re, err := regexp.Compile(trimmed)
	if err != nil {
		compileErr := fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		return func() (bool, any, error) {
			return false, nil, compileErr
		}
	}
	return stringCheck(src, re.MatchString)
}

// In reports whether the live value equals any of the allowed values.
func In[T any](src state.Accessor[T], allowed ...any) poll.Condition {
	return func() (bool, any, error) {
		v, err := src.Get()
		if err != nil {
			return false, nil, err
		}
		for _, item := range allowed {
			if equalValues(v, item) {
				return true, v, nil
			}
		}
		return false, v, nil
	}
}

// Length reports whether the live value has the wanted length. Values
// without a length fail the check rather than erroring, so a "length 0"
// expectation on an absent value behaves like any other mismatch.
func Length[T any](src state.Accessor[T], want int) poll.Condition {
	return func() (bool, any, error) {
		v, err := src.Get()
		if err != nil {
			return false, nil, err
		}
		return lengthOf(v) == want, v, nil
	}
}

// TypeOf reports whether the live value has the wanted JSON-flavored type
// name: null, boolean, number, string, array or object.
func TypeOf[T any](src state.Accessor[T], want string) poll.Condition {
	return func() (bool, any, error) {
		v, err := src.Get()
		if err != nil {
			return false, nil, err
		}
		return typeName(v) == want, v, nil
	}
}

func stringCheck[T any](src state.Accessor[T], check func(string) bool) poll.Condition {
	return func() (bool, any, error) {
		v, err := src.Get()
		if err != nil {
			return false, nil, err
		}
		if isNil(v) {
			return false, v, nil
		}
		return check(fmt.Sprintf("%v", v)), v, nil
	}
}

func equalValues(actual, expected any) bool {
	if isNil(actual) || isNil(expected) {
		return isNil(actual) && isNil(expected)
	}
	if reflect.DeepEqual(actual, expected) {
		return true
	}

	actualNum, aOk := toFloat64(actual)
	expectedNum, eOk := toFloat64(expected)
	if aOk && eOk && actualNum == expectedNum {
		return true
	}

	return fmt.Sprintf("%v", actual) == fmt.Sprintf("%v", expected)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// lengthOf returns the length of a value, or -1 if length cannot be computed.
func lengthOf(v any) int {
	switch val := v.(type) {
	case string:
		return len(val)
	case []any:
		return len(val)
	case map[string]any:
		return len(val)
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
			return rv.Len()
		default:
			return -1
		}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		if isNil(v) {
			return "null"
		}
		return reflect.TypeOf(v).String()
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
