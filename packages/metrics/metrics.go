// Package metrics aggregates poll timings and attempt counts across an
// engine's lifetime, for reporting on how long verifications actually wait.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/verityhq/verity/packages/poll"
)

// Collector records every completed poll. It implements poll.Observer and
// is safe for use by parallel verify calls.
type Collector struct {
	mu sync.Mutex

	// Latency histogram (in microseconds for precision)
	latency *hdrhistogram.Histogram
	// Attempts per poll
	attempts *hdrhistogram.Histogram

	totalPolls atomic.Int64
	satisfied  atomic.Int64
	timedOut   atomic.Int64
}

// NewCollector creates a new Collector.
func NewCollector() *Collector {
	return &Collector{
		// Histogram: 1us to 60s range, 3 significant digits
		latency:  hdrhistogram.New(1, 60_000_000, 3),
		attempts: hdrhistogram.New(1, 1_000_000, 3),
	}
}

// Observe implements poll.Observer.
func (c *Collector) Observe(res *poll.Result) {
	c.totalPolls.Add(1)
	if res.Satisfied {
		c.satisfied.Add(1)
	} else {
		c.timedOut.Add(1)
	}

	micros := res.Elapsed.Microseconds()
	if micros < 1 {
		micros = 1
	}

	c.mu.Lock()
	_ = c.latency.RecordValue(micros)
	_ = c.attempts.RecordValue(int64(res.Attempts))
	c.mu.Unlock()
}

// Snapshot is a point-in-time view of the collected metrics.
type Snapshot struct {
	TotalPolls   int64
	Satisfied    int64
	TimedOut     int64
	P50          time.Duration
	P95          time.Duration
	P99          time.Duration
	MaxLatency   time.Duration
	MeanAttempts float64
	MaxAttempts  int64
}

// Snapshot returns the current aggregates.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		TotalPolls:   c.totalPolls.Load(),
		Satisfied:    c.satisfied.Load(),
		TimedOut:     c.timedOut.Load(),
		P50:          time.Duration(c.latency.ValueAtQuantile(50)) * time.Microsecond,
		P95:          time.Duration(c.latency.ValueAtQuantile(95)) * time.Microsecond,
		P99:          time.Duration(c.latency.ValueAtQuantile(99)) * time.Microsecond,
		MaxLatency:   time.Duration(c.latency.Max()) * time.Microsecond,
		MeanAttempts: c.attempts.Mean(),
		MaxAttempts:  c.attempts.Max(),
	}
}

// Reset clears all collected data.
func (c *Collector) Reset() {
	c.totalPolls.Store(0)
	c.satisfied.Store(0)
	c.timedOut.Store(0)

	c.mu.Lock()
	c.latency.Reset()
	c.attempts.Reset()
	c.mu.Unlock()
}
