package engine

import (
	"sync/atomic"
	"time"
)

// MockTimeProvider is a manually advanced clock for tests and headless runs
// Now is base plus the accumulated offset, safe across goroutines
type MockTimeProvider struct {
	base   time.Time
	offset atomic.Int64
}

func NewMockTimeProvider(base time.Time) *MockTimeProvider {
	return &MockTimeProvider{base: base}
}

func (m *MockTimeProvider) Now() time.Time {
	return m.base.Add(time.Duration(m.offset.Load()))
}

// Advance moves the clock forward by d, negative d is ignored
func (m *MockTimeProvider) Advance(d time.Duration) {
	if d > 0 {
		m.offset.Add(int64(d))
	}
}

// Elapsed returns the total advanced duration
func (m *MockTimeProvider) Elapsed() time.Duration {
	return time.Duration(m.offset.Load())
}
