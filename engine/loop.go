package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/particle-morph/core"
	"github.com/lixenwraith/particle-morph/parameter"
)

// Presenter draws one frame, an error stops the loop
type Presenter interface {
	Present(*Frame) error
}

// PresenterFunc adapts a function to Presenter
type PresenterFunc func(*Frame) error

// Present calls f
func (f PresenterFunc) Present(frame *Frame) error {
	return f(frame)
}

// Loop drives Simulation.Tick and Presenter.Present on a fixed-rate ticker
// A tick completes before the next starts, late ticks are coalesced by the ticker
type Loop struct {
	sim       *Simulation
	presenter Presenter
	clock     Clock
	interval  time.Duration
	start     time.Time

	ticks atomic.Uint64

	// Lifecycle, a stopped loop never starts
	mu       sync.Mutex
	started  bool
	stopped  bool
	stopChan chan struct{}
	done     chan struct{}
	wg       sync.WaitGroup

	errMu sync.Mutex
	err   error
}

// NewLoop creates a loop at fps frames per second, clamped to the supported range
// A zero fps selects the default rate and a nil clock the system clock
func NewLoop(sim *Simulation, presenter Presenter, fps int, clock Clock) *Loop {
	if fps == 0 {
		fps = parameter.FrameRate
	}
	fps = max(parameter.FrameRateMin, min(parameter.FrameRateMax, fps))
	if clock == nil {
		clock = NewTimeProvider()
	}
	return &Loop{
		sim:       sim,
		presenter: presenter,
		clock:     clock,
		interval:  time.Second / time.Duration(fps),
		start:     clock.Now(),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Interval returns the tick period
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Ticks returns the number of completed ticks
func (l *Loop) Ticks() uint64 {
	return l.ticks.Load()
}

// Start begins ticking on a new goroutine, elapsed time counts from here
// Start after Stop is a no-op
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started || l.stopped {
		return
	}
	l.started = true
	l.start = l.clock.Now()
	l.wg.Add(1)
	core.Go(l.run)
}

// Stop halts the loop and waits for the in-flight tick to finish
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.stopped {
		l.stopped = true
		close(l.stopChan)
		if !l.started {
			close(l.done)
		}
	}
	l.mu.Unlock()
	l.wg.Wait()
}

// Done is closed once the loop exits, or on Stop if it never started
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Wait blocks until the loop exits and returns the presenter error, if any
func (l *Loop) Wait() error {
	<-l.done
	return l.Err()
}

// Err returns the error that stopped the loop
func (l *Loop) Err() error {
	l.errMu.Lock()
	defer l.errMu.Unlock()
	return l.err
}

// Step runs one tick synchronously, for headless drivers that do not Start
func (l *Loop) Step() error {
	elapsed := l.clock.Now().Sub(l.start).Seconds()
	frame := l.sim.Tick(elapsed)
	l.ticks.Add(1)
	if l.presenter == nil {
		return nil
	}
	if err := l.presenter.Present(frame); err != nil {
		return fmt.Errorf("engine: present frame %d: %w", frame.Snapshot.Frame, err)
	}
	return nil
}

func (l *Loop) run() {
	defer l.wg.Done()
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			if err := l.Step(); err != nil {
				l.errMu.Lock()
				l.err = err
				l.errMu.Unlock()
				return
			}
		}
	}
}
