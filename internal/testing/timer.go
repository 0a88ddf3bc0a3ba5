package testing

import (
	"sync"
	"time"
)

// FakeTimer satisfies backoff.Timer. It fires immediately and records every
// requested wait so tests can assert the simulated elapsed time.
type FakeTimer struct {
	mu    sync.Mutex
	waits []time.Duration
	ch    chan time.Time
}

// NewFakeTimer returns a FakeTimer ready for use with retry.WithTimer.
func NewFakeTimer() *FakeTimer {
	return &FakeTimer{ch: make(chan time.Time, 1)}
}

// Start records d and fires the timer without sleeping.
func (f *FakeTimer) Start(d time.Duration) {
	f.mu.Lock()
	f.waits = append(f.waits, d)
	f.mu.Unlock()

	select {
	case f.ch <- time.Now():
	default:
	}
}

// Stop is a no-op.
func (f *FakeTimer) Stop() {}

// C returns the firing channel.
func (f *FakeTimer) C() <-chan time.Time {
	return f.ch
}

// Waits returns a copy of the recorded waits in order.
func (f *FakeTimer) Waits() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]time.Duration, len(f.waits))
	copy(out, f.waits)
	return out
}

// Elapsed returns the sum of all recorded waits.
func (f *FakeTimer) Elapsed() time.Duration {
	var total time.Duration
	for _, d := range f.Waits() {
		total += d
	}
	return total
}
