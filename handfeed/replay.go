package handfeed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/lixenwraith/particle-morph/gesture"
	"github.com/lixenwraith/particle-morph/logging"
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/protocol"
)

// ReplayOptions controls recording playback
type ReplayOptions struct {
	// Loop restarts from the first frame at the end of the recording
	Loop bool
	// Speed scales playback, zero means real time
	Speed float64
}

// Replay plays a JSONL recording paced by its recorded timestamps
type Replay struct {
	file *os.File
	opts ReplayOptions
	r    *protocol.Reader

	prevTS  float64
	hasPrev bool
	// frames counts well-formed frames since the last rewind
	frames int

	closed    chan struct{}
	closeOnce sync.Once
}

// OpenReplay opens a recording written by protocol.Writer
func OpenReplay(path string, opts ReplayOptions) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("handfeed: open recording: %w", err)
	}
	if opts.Speed <= 0 {
		opts.Speed = 1
	}
	return &Replay{
		file:   f,
		opts:   opts,
		r:      protocol.NewReader(f),
		closed: make(chan struct{}),
	}, nil
}

// Next returns the next recorded frame after the recorded gap has elapsed
// Malformed lines play as no hand without pacing
func (r *Replay) Next(ctx context.Context) (gesture.Frame, error) {
	for {
		f, hdr, err := r.r.Next()
		if errors.Is(err, io.EOF) {
			if !r.opts.Loop || r.frames == 0 {
				return gesture.NoHand, io.EOF
			}
			if err := r.rewind(); err != nil {
				return gesture.NoHand, err
			}
			continue
		}
		if errors.Is(err, protocol.ErrMalformed) {
			logging.Warn("malformed recorded frame", "error", err)
			return gesture.NoHand, nil
		}
		if err != nil {
			return gesture.NoHand, err
		}

		if err := r.wait(ctx, hdr.TS); err != nil {
			return gesture.NoHand, err
		}
		r.frames++
		return f, nil
	}
}

// wait sleeps for the gap since the previous frame, capped at ReplayMaxGap
func (r *Replay) wait(ctx context.Context, ts float64) error {
	var gap time.Duration
	if r.hasPrev {
		gap = time.Duration((ts - r.prevTS) / r.opts.Speed * float64(time.Second))
	}
	r.prevTS, r.hasPrev = ts, true

	gap = min(max(gap, 0), parameter.ReplayMaxGap)
	if gap == 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.closed:
			return io.EOF
		default:
			return nil
		}
	}

	timer := time.NewTimer(gap)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.closed:
		return io.EOF
	case <-timer.C:
		return nil
	}
}

func (r *Replay) rewind() error {
	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("handfeed: rewind recording: %w", err)
	}
	r.r = protocol.NewReader(r.file)
	r.hasPrev = false
	r.frames = 0
	return nil
}

// Close releases the recording file
func (r *Replay) Close() error {
	var err error
	r.closeOnce.Do(func() {
		close(r.closed)
		err = r.file.Close()
	})
	return err
}
