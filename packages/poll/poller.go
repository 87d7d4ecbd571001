package poll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Condition reports whether the property under verification currently
// holds. It returns the observed value alongside the verdict so failures
// can be diagnosed. A non-nil error counts as "not satisfied".
type Condition func() (satisfied bool, actual any, err error)

var (
	// ErrNilCondition indicates a programming error in the calling layer.
	ErrNilCondition = errors.New("poll: nil condition")
	// ErrNegativeWait indicates a programming error in the calling layer;
	// a negative wait is never a legitimate verification outcome.
	ErrNegativeWait = errors.New("poll: negative wait")
)

// Result is the outcome of a single Poll call. It is produced once and
// never mutated afterwards.
type Result struct {
	Satisfied bool
	Attempts  int
	Elapsed   time.Duration
	LastValue any   // value observed on the final attempt
	LastErr   error // error from the final attempt, if any
}

// Observer receives every completed poll, for metrics collection.
type Observer interface {
	Observe(*Result)
}

// Poller runs the retry loop. The zero value is usable; New exists to
// attach options.
type Poller struct {
	observer Observer
}

type Option func(*Poller)

// WithObserver attaches an observer that is notified once per Poll call.
func WithObserver(o Observer) Option {
	return func(p *Poller) {
		p.observer = o
	}
}

func New(opts ...Option) *Poller {
	p := &Poller{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Poll evaluates cond until it is satisfied or wait elapses, re-evaluating
// every interval. The first evaluation happens immediately; wait <= 0 means
// exactly one evaluation with no retries. interval <= 0 retries without
// pausing, bounded only by the deadline.
//
// The deadline is checked before each pause, so the attempt whose pause
// crosses the deadline still runs; elapsed time is therefore bounded by
// wait plus one interval.
//
// Negative wait and nil conditions are caller misuse and fail synchronously
// before any evaluation.
func (p *Poller) Poll(cond Condition, wait, interval time.Duration) (*Result, error) {
	if cond == nil {
		return nil, ErrNilCondition
	}
	if wait < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNegativeWait, wait)
	}

	start := time.Now()
	res := &Result{}

	evaluate := func() {
		res.Attempts++
		res.Satisfied, res.LastValue, res.LastErr = cond()
		if res.LastErr != nil {
			res.Satisfied = false
		}
	}

	evaluate()
	if res.Satisfied || wait == 0 {
		return p.finish(res, start), nil
	}

	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	limiter := rate.NewLimiter(limit, 1)
	limiter.Allow() // the immediate first attempt consumed the initial token

	deadline := start.Add(wait)
	for time.Now().Before(deadline) {
		_ = limiter.Wait(context.Background())
		evaluate()
		if res.Satisfied {
			break
		}
	}

	return p.finish(res, start), nil
}

func (p *Poller) finish(res *Result, start time.Time) *Result {
	res.Elapsed = time.Since(start)
	if p.observer != nil {
		p.observer.Observe(res)
	}
	return res
}
