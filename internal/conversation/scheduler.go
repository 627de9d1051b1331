package conversation

import (
	"sync"
	"time"
)

// Scheduler runs the deferred advance to the next module.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// TimerScheduler runs f on its own goroutine after d.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// ImmediateScheduler runs f synchronously, ignoring d. Hosts without a
// visible pause between modules (the HTTP API) use it so every call returns
// with the session settled.
type ImmediateScheduler struct{}

func (ImmediateScheduler) AfterFunc(_ time.Duration, f func()) {
	f()
}

// ManualScheduler queues deferred functions until Fire is called.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (m *ManualScheduler) AfterFunc(d time.Duration, f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, f)
	m.delays = append(m.delays, d)
}

// Pending returns how many functions are queued.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Delays returns the delay requested by every AfterFunc call so far.
func (m *ManualScheduler) Delays() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.delays...)
}

// Fire runs the queued functions in order and returns how many ran.
// Functions queued while firing wait for the next Fire.
func (m *ManualScheduler) Fire() int {
	m.mu.Lock()
	fns := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, f := range fns {
		f()
	}
	return len(fns)
}
