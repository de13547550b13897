package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/particle-morph/core"
	"github.com/lixenwraith/particle-morph/gesture"
	"github.com/lixenwraith/particle-morph/logging"
)

// LandmarkSource yields hand tracker results, Next blocks until the next
// frame or until ctx is done. Close releases the underlying device
type LandmarkSource interface {
	Next(ctx context.Context) (gesture.Frame, error)
	Close() error
}

// Producer pumps a LandmarkSource into a mailbox on its own goroutine
type Producer struct {
	source LandmarkSource
	sink   *Mailbox[gesture.Frame]

	frames atomic.Uint64

	mu       sync.Mutex
	cancel   context.CancelFunc
	err      error
	started  bool
	stopOnce sync.Once
	stopErr  error
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewProducer connects source to sink, nothing runs until Start
func NewProducer(source LandmarkSource, sink *Mailbox[gesture.Frame]) *Producer {
	return &Producer{
		source: source,
		sink:   sink,
		done:   make(chan struct{}),
	}
}

// Start launches the pump, later calls and calls after Stop are no-ops
func (p *Producer) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	ctx, p.cancel = context.WithCancel(ctx)
	p.wg.Add(1)
	core.Go(func() {
		defer p.wg.Done()
		defer close(p.done)
		p.run(ctx)
	})
}

func (p *Producer) run(ctx context.Context) {
	for {
		f, err := p.source.Next(ctx)
		if err != nil {
			// The field stops reacting once the stream ends
			p.sink.Offer(gesture.NoHand)
			if ctx.Err() == nil && !errors.Is(err, io.EOF) {
				logging.Warn("landmark source failed", "error", err)
				p.mu.Lock()
				p.err = err
				p.mu.Unlock()
			}
			return
		}
		p.frames.Add(1)
		p.sink.Offer(f)
	}
}

// Stop cancels the pump, waits for its goroutine, then closes the source
func (p *Producer) Stop() error {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		cancel := p.cancel
		p.started = true
		p.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		p.wg.Wait()

		if err := p.source.Close(); err != nil {
			p.stopErr = fmt.Errorf("engine: close landmark source: %w", err)
		}
	})
	return p.stopErr
}

// Done is closed when a started pump exits
func (p *Producer) Done() <-chan struct{} {
	return p.done
}

// Err returns the source failure that ended the pump, nil on cancel or EOF
func (p *Producer) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Frames returns the number of frames offered so far
func (p *Producer) Frames() uint64 {
	return p.frames.Load()
}
