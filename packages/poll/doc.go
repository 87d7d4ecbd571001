// Package poll re-evaluates a condition at a bounded interval until it is
// satisfied or a wall-clock deadline passes.
//
// The poller only ever waits for a condition to become true; "should be
// false" checks are pre-negated before they reach it. Evaluation errors on
// non-final attempts are treated as "not yet satisfied" and retried, since
// the underlying source may be transiently unavailable between attempts.
// The final attempt's error, if any, is preserved on the Result for
// diagnostics.
//
// Polling blocks the calling goroutine; there is no background timer and no
// cancellation, so verification timing stays deterministic.
package poll
