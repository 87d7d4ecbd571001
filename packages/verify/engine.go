package verify

import (
	"fmt"
	"time"

	"github.com/verityhq/verity/packages/core/config"
	"github.com/verityhq/verity/packages/poll"
)

// Options configures a single Verify call. One options value replaces the
// with/without-message, with/without-interval overload families of typical
// assertion layers.
type Options struct {
	// WaitSeconds bounds the poll. 0 means a single immediate evaluation
	// with no retries; negative values are caller misuse.
	WaitSeconds int
	// IntervalMillis paces re-evaluation. 0 falls back to the engine's
	// configured default; a negative value retries without pausing.
	IntervalMillis int
	// Message describes the check. Params, when present, are resolved into
	// Message printf-style before the record is built; the record always
	// stores the resolved string.
	Message string
	Params  []any
	// DiffStyle selects "expected X, got Y" failure reporting. Leave false
	// for descriptive checks such as "contains", where the message already
	// says everything.
	DiffStyle bool
	// Expected is the rendering of the expected value shown when DiffStyle
	// is set.
	Expected string
}

func (o Options) resolvedMessage() string {
	if len(o.Params) == 0 {
		return o.Message
	}
	return fmt.Sprintf(o.Message, o.Params...)
}

// SessionSink receives a session's records when the engine finalizes, for
// durable history. See the history package.
type SessionSink interface {
	SaveSession(sessionID string, records []Record) error
}

// Engine ties a poller, a queue and configuration together. Construct one
// per test session; configuration is injected once and read thereafter.
type Engine struct {
	cfg    *config.Config
	poller *poll.Poller
	queue  *Queue
	sink   SessionSink
}

type EngineOption func(*Engine)

// WithSink persists finalized sessions to a durable store.
func WithSink(s SessionSink) EngineOption {
	return func(e *Engine) {
		e.sink = s
	}
}

// WithObserver forwards every poll outcome to an observer, typically a
// metrics collector.
func WithObserver(o poll.Observer) EngineOption {
	return func(e *Engine) {
		e.poller = poll.New(poll.WithObserver(o))
	}
}

func NewEngine(cfg *config.Config, opts ...EngineOption) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	e := &Engine{
		cfg:    cfg,
		poller: poll.New(),
		queue:  NewQueue(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Queue exposes the engine's session queue for counters and reporting.
func (e *Engine) Queue() *Queue {
	return e.queue
}

// Verify polls cond per opts and records the outcome. The only errors it
// returns are caller-misuse errors (negative wait, nil condition), raised
// before anything reaches the queue; assertion outcomes are surfaced by
// Finalize alone.
func (e *Engine) Verify(cond poll.Condition, opts Options) error {
	wait := time.Duration(opts.WaitSeconds) * time.Second
	intervalMillis := opts.IntervalMillis
	if intervalMillis == 0 {
		intervalMillis = e.cfg.DefaultIntervalMillis
	}
	interval := time.Duration(intervalMillis) * time.Millisecond

	res, err := e.poller.Poll(cond, wait, interval)
	if err != nil {
		return err
	}
	e.queue.Record(res, opts.resolvedMessage(), opts.DiffStyle, opts.Expected, wait, interval)
	return nil
}

// Finalize drains the queue, persists the session when a sink is
// configured, and returns the aggregate verification error, if any.
func (e *Engine) Finalize() error {
	records := e.queue.Snapshot()
	err := e.queue.Finalize()

	if e.sink != nil && len(records) > 0 {
		if serr := e.sink.SaveSession(e.queue.SessionID(), records); serr != nil && err == nil {
			// A bookkeeping failure surfaces only when it would not mask
			// the verification verdict.
			err = fmt.Errorf("saving session history: %w", serr)
		}
	}
	return err
}
