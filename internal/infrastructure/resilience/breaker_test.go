package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFailed = errors.New("failed")

func run(b *Breaker, success bool) error {
	return b.Execute(func() error {
		if success {
			return nil
		}
		return errFailed
	})
}

func tripAfter(n uint32) func(Counts) bool {
	return func(c Counts) bool { return c.ConsecutiveFailures >= n }
}

func TestBreakerStateTransitions(t *testing.T) {
	tests := []struct {
		name          string
		settings      Settings
		requests      []bool // true = success, false = failure
		expectedState State
	}{
		{
			name:          "stays closed on successes",
			settings:      Settings{Interval: time.Minute, Timeout: time.Minute},
			requests:      []bool{true, true, true},
			expectedState: StateClosed,
		},
		{
			name:          "opens after consecutive failures",
			settings:      Settings{Interval: time.Minute, Timeout: time.Minute, ReadyToTrip: tripAfter(3)},
			requests:      []bool{false, false, false},
			expectedState: StateOpen,
		},
		{
			name:          "a success resets the streak",
			settings:      Settings{Interval: time.Minute, Timeout: time.Minute, ReadyToTrip: tripAfter(2)},
			requests:      []bool{false, true, false},
			expectedState: StateClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breaker := New("test", tt.settings)
			for _, success := range tt.requests {
				_ = run(breaker, success)
			}
			assert.Equal(t, tt.expectedState, breaker.State())
		})
	}
}

func TestBreakerCounts(t *testing.T) {
	breaker := New("test", Settings{Interval: time.Minute, Timeout: time.Minute})

	require.NoError(t, run(breaker, true))
	counts := breaker.Counts()
	assert.Equal(t, uint32(1), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalSuccesses)
	assert.Equal(t, uint32(1), counts.ConsecutiveSuccesses)
	assert.Equal(t, uint32(0), counts.TotalFailures)

	assert.ErrorIs(t, run(breaker, false), errFailed)
	counts = breaker.Counts()
	assert.Equal(t, uint32(2), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalFailures)
	assert.Equal(t, uint32(1), counts.ConsecutiveFailures)
	assert.Equal(t, uint32(0), counts.ConsecutiveSuccesses)
}

func TestBreakerOpenState(t *testing.T) {
	breaker := New("test", Settings{Interval: time.Minute, Timeout: time.Minute, ReadyToTrip: tripAfter(2)})

	_ = run(breaker, false)
	_ = run(breaker, false)
	assert.Equal(t, StateOpen, breaker.State())

	called := false
	err := breaker.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestBreakerHalfOpenState(t *testing.T) {
	newOpen := func(t *testing.T) *Breaker {
		breaker := New("test", Settings{
			MaxRequests: 2,
			Interval:    time.Minute,
			Timeout:     50 * time.Millisecond,
			ReadyToTrip: tripAfter(2),
		})
		_ = run(breaker, false)
		_ = run(breaker, false)
		require.Equal(t, StateOpen, breaker.State())

		time.Sleep(60 * time.Millisecond)
		require.Equal(t, StateHalfOpen, breaker.State())
		return breaker
	}

	t.Run("Successes close it", func(t *testing.T) {
		breaker := newOpen(t)
		require.NoError(t, run(breaker, true))
		require.NoError(t, run(breaker, true))
		assert.Equal(t, StateClosed, breaker.State())
	})

	t.Run("A failure reopens it", func(t *testing.T) {
		breaker := newOpen(t)
		_ = run(breaker, false)
		assert.Equal(t, StateOpen, breaker.State())
	})
}

func TestBreakerIsSuccessful(t *testing.T) {
	errRejected := errors.New("expression rejected")
	breaker := New("test", Settings{
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: tripAfter(2),
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errRejected)
		},
	})

	for i := 0; i < 5; i++ {
		err := breaker.Execute(func() error { return errRejected })
		assert.ErrorIs(t, err, errRejected)
	}
	assert.Equal(t, StateClosed, breaker.State())
	assert.Equal(t, uint32(5), breaker.Counts().TotalSuccesses)
}

func TestDo(t *testing.T) {
	breaker := New("test", Settings{})

	got, err := Do(breaker, func() (string, error) { return "4.75", nil })
	require.NoError(t, err)
	assert.Equal(t, "4.75", got)

	_, err = Do(breaker, func() (int, error) { return 0, errFailed })
	assert.ErrorIs(t, err, errFailed)
}

func TestBreakerPanic(t *testing.T) {
	breaker := New("test", Settings{})

	assert.Panics(t, func() {
		_ = breaker.Execute(func() error { panic("boom") })
	})
	assert.Equal(t, uint32(1), breaker.Counts().TotalFailures)
}

func TestBreakerCallbacks(t *testing.T) {
	var transitions []string

	breaker := New("test", Settings{
		Interval:    time.Minute,
		Timeout:     10 * time.Millisecond,
		ReadyToTrip: tripAfter(2),
		OnStateChange: func(name string, from State, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_ = run(breaker, false)
	_ = run(breaker, false)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, breaker.State())

	assert.Equal(t, []string{"closed->open", "open->half-open"}, transitions)
}
