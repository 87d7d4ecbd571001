package verify

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verityhq/verity/packages/poll"
)

// Record is the immutable snapshot of one verification outcome. It is
// created once, appended to exactly one Queue, and never mutated.
type Record struct {
	ID             string
	Passed         bool
	Message        string
	DiffStyle      bool
	Expected       string
	Actual         string
	WaitSeconds    int
	IntervalMillis int
	Attempts       int
	ElapsedMillis  int64
	CreatedAt      time.Time
}

// Format renders the record for failure reporting. DiffStyle records show
// the expected and observed values; descriptive records show the message
// alone, since "contains"-style checks already describe themselves.
func (r Record) Format() string {
	if r.DiffStyle {
		return fmt.Sprintf("%s: expected %s, got %s", r.Message, r.Expected, r.Actual)
	}
	return r.Message
}

func newRecord(outcome *poll.Result, message string, diffStyle bool, expected string, wait, interval time.Duration) Record {
	actual := formatValue(outcome.LastValue, maxValueLen)
	if outcome.LastErr != nil {
		// The final attempt failed by error; capture it for diagnosis
		// instead of a stale value.
		actual = outcome.LastErr.Error()
	}
	return Record{
		ID:             uuid.NewString(),
		Passed:         outcome.Satisfied,
		Message:        message,
		DiffStyle:      diffStyle,
		Expected:       expected,
		Actual:         actual,
		WaitSeconds:    int(wait / time.Second),
		IntervalMillis: int(interval / time.Millisecond),
		Attempts:       outcome.Attempts,
		ElapsedMillis:  outcome.Elapsed.Milliseconds(),
		CreatedAt:      time.Now(),
	}
}

// AggregateError is the single error raised by Finalize when soft
// verifications failed. Failures appear in original call order.
type AggregateError struct {
	Failures []Record
}

func (e *AggregateError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d verification(s) failed:", len(e.Failures))
	for i, r := range e.Failures {
		fmt.Fprintf(&b, "\n  %d) %s", i+1, r.Format())
	}
	return b.String()
}

const maxValueLen = 120

// formatValue renders a value for display, summarizing collections and
// truncating long strings.
func formatValue(v any, maxLen int) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case []any:
		return fmt.Sprintf("[array with %d items]", len(val))
	case map[string]any:
		return fmt.Sprintf("{object with %d keys}", len(val))
	}
	str := fmt.Sprintf("%v", v)
	if len(str) > maxLen {
		return str[:maxLen] + "..."
	}
	return str
}
