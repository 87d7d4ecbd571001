package verify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/verityhq/verity/packages/poll"
)

// Queue collects verification outcomes for one logical test session.
// Appends are serialized internally so verify calls issued from parallel
// workers sharing a queue do not lose records; the expected discipline is
// still one queue per session, owned by one goroutine.
type Queue struct {
	mu      sync.Mutex
	session string
	pending []Record
	passed  int
	failed  int
}

func NewQueue() *Queue {
	return &Queue{session: uuid.NewString()}
}

// SessionID identifies this queue's session in reports and history.
func (q *Queue) SessionID() string {
	return q.session
}

// Record appends the poll outcome as a Record and returns it. It never
// fails: deferring judgment to Finalize is the point of soft verification.
func (q *Queue) Record(outcome *poll.Result, message string, diffStyle bool, expected string, wait, interval time.Duration) Record {
	rec := newRecord(outcome, message, diffStyle, expected, wait, interval)
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending = append(q.pending, rec)
	if rec.Passed {
		q.passed++
	} else {
		q.failed++
	}
	return rec
}

// Snapshot returns a copy of the pending records in insertion order.
func (q *Queue) Snapshot() []Record {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Record, len(q.pending))
	copy(out, q.pending)
	return out
}

// PendingCount reports how many records await the next Finalize.
func (q *Queue) PendingCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// PassedCount reports passes recorded over the queue's lifetime; it
// survives Finalize so sessions can still be summarized afterwards.
func (q *Queue) PassedCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.passed
}

// FailedCount reports failures recorded over the queue's lifetime.
func (q *Queue) FailedCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.failed
}

// Finalize atomically drains the pending records and returns an
// *AggregateError when any of them failed, listing every failed record's
// message in original insertion order. With no pending failures it returns
// nil, so a repeat Finalize with no new records is a no-op.
func (q *Queue) Finalize() error {
	q.mu.Lock()
	drained := q.pending
	q.pending = nil
	q.mu.Unlock()

	var failures []Record
	for _, r := range drained {
		if !r.Passed {
			failures = append(failures, r)
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return &AggregateError{Failures: failures}
}
