package poll

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// always returns a condition with a fixed verdict.
func always(satisfied bool) Condition {
	return func() (bool, any, error) {
		return satisfied, nil, nil
	}
}

// trueAfter returns a condition that fails the first n evaluations and
// succeeds afterwards, counting calls through the returned pointer.
func trueAfter(n int) (Condition, *int) {
	calls := new(int)
	return func() (bool, any, error) {
		*calls++
		return *calls > n, *calls, nil
	}, calls
}

func TestPoll_InstantMode(t *testing.T) {
	cond, calls := trueAfter(100) // never true within one attempt

	start := time.Now()
	res, err := New().Poll(cond, 0, 250*time.Millisecond)
	require.NoError(t, err)

	assert.False(t, res.Satisfied)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, 1, *calls)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestPoll_InstantModeSatisfied(t *testing.T) {
	res, err := New().Poll(always(true), 0, 0)
	require.NoError(t, err)

	assert.True(t, res.Satisfied)
	assert.Equal(t, 1, res.Attempts)
}

func TestPoll_SatisfiedWithinDeadline(t *testing.T) {
	const k = 2
	interval := 50 * time.Millisecond
	cond, _ := trueAfter(k)

	res, err := New().Poll(cond, 2*time.Second, interval)
	require.NoError(t, err)

	assert.True(t, res.Satisfied)
	assert.Equal(t, k+1, res.Attempts)
	assert.GreaterOrEqual(t, res.Elapsed, time.Duration(k)*interval)
}

func TestPoll_Timeout(t *testing.T) {
	wait := 300 * time.Millisecond
	interval := 100 * time.Millisecond

	res, err := New().Poll(always(false), wait, interval)
	require.NoError(t, err)

	assert.False(t, res.Satisfied)
	assert.GreaterOrEqual(t, res.Elapsed, wait)
	// The attempt whose pause crosses the deadline still runs, so elapsed
	// time is bounded by wait plus one interval (with scheduling slack).
	assert.Less(t, res.Elapsed, wait+interval+100*time.Millisecond)
	assert.GreaterOrEqual(t, res.Attempts, 2)
}

func TestPoll_TightLoopWhenIntervalNotPositive(t *testing.T) {
	wait := 50 * time.Millisecond

	res, err := New().Poll(always(false), wait, 0)
	require.NoError(t, err)
	assert.False(t, res.Satisfied)
	// No pause between attempts: far more evaluations than any sane interval
	// would allow.
	assert.Greater(t, res.Attempts, 10)

	res, err = New().Poll(always(false), wait, -1*time.Millisecond)
	require.NoError(t, err)
	assert.Greater(t, res.Attempts, 10)
}

func TestPoll_NegativeWaitFailsFast(t *testing.T) {
	evaluated := false
	cond := Condition(func() (bool, any, error) {
		evaluated = true
		return true, nil, nil
	})

	res, err := New().Poll(cond, -1*time.Second, 0)
	assert.Nil(t, res)
	require.ErrorIs(t, err, ErrNegativeWait)
	assert.False(t, evaluated, "misuse must fail before any evaluation")
}

func TestPoll_NilConditionFailsFast(t *testing.T) {
	res, err := New().Poll(nil, time.Second, 0)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrNilCondition)
}

func TestPoll_TransientErrorsAreRetried(t *testing.T) {
	calls := 0
	cond := Condition(func() (bool, any, error) {
		calls++
		if calls <= 2 {
			return false, nil, errors.New("source not ready")
		}
		return true, "ready", nil
	})

	res, err := New().Poll(cond, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, err)

	assert.True(t, res.Satisfied)
	assert.Equal(t, 3, res.Attempts)
	assert.NoError(t, res.LastErr, "early errors must not surface in the result")
	assert.Equal(t, "ready", res.LastValue)
}

func TestPoll_FinalAttemptErrorIsPreserved(t *testing.T) {
	boom := errors.New("still broken")
	cond := Condition(func() (bool, any, error) {
		return false, nil, boom
	})

	res, err := New().Poll(cond, 100*time.Millisecond, 30*time.Millisecond)
	require.NoError(t, err)

	assert.False(t, res.Satisfied)
	assert.ErrorIs(t, res.LastErr, boom)
}

func TestPoll_ErrorForcesUnsatisfied(t *testing.T) {
	// A condition that claims success while also erroring is treated as
	// not satisfied.
	cond := Condition(func() (bool, any, error) {
		return true, "x", errors.New("read failed")
	})

	res, err := New().Poll(cond, 0, 0)
	require.NoError(t, err)
	assert.False(t, res.Satisfied)
}

type recordingObserver struct {
	results []*Result
}

func (r *recordingObserver) Observe(res *Result) {
	r.results = append(r.results, res)
}

func TestPoll_ObserverSeesEveryPoll(t *testing.T) {
	obs := &recordingObserver{}
	p := New(WithObserver(obs))

	_, err := p.Poll(always(true), 0, 0)
	require.NoError(t, err)
	_, err = p.Poll(always(false), 0, 0)
	require.NoError(t, err)

	require.Len(t, obs.results, 2)
	assert.True(t, obs.results[0].Satisfied)
	assert.False(t, obs.results[1].Satisfied)
}
