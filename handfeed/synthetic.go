// Package handfeed provides landmark sources that stand in for a camera hand
// tracker: a noise-driven synthetic hand, JSONL replay, and a websocket feeder.
package handfeed

import (
	"context"
	"io"
	"math"
	"sync"
	"time"

	"github.com/ojrac/opensimplex-go"

	"github.com/lixenwraith/particle-morph/gesture"
	"github.com/lixenwraith/particle-morph/parameter"
)

// SyntheticConfig shapes the generated hand
type SyntheticConfig struct {
	Seed int64
	// Rate is the sample rate in Hz, zero means HandTrackingRate
	Rate int

	// DropoutEvery starts a no-hand period at this interval, zero disables
	DropoutEvery time.Duration
	// Dropout is the length of each no-hand period
	Dropout time.Duration
}

// Synthetic is a wandering fingertip with a slowly oscillating pinch
type Synthetic struct {
	cfg    SyntheticConfig
	noiseX opensimplex.Noise
	noiseY opensimplex.Noise
	noiseA opensimplex.Noise

	ticker    *time.Ticker
	n         uint64
	closed    chan struct{}
	closeOnce sync.Once
}

// NewSynthetic creates the source, its ticker starts immediately
func NewSynthetic(cfg SyntheticConfig) *Synthetic {
	if cfg.Rate <= 0 {
		cfg.Rate = parameter.HandTrackingRate
	}
	return &Synthetic{
		cfg:    cfg,
		noiseX: opensimplex.NewNormalized(cfg.Seed),
		noiseY: opensimplex.NewNormalized(cfg.Seed + 1),
		noiseA: opensimplex.NewNormalized(cfg.Seed + 2),
		ticker: time.NewTicker(time.Second / time.Duration(cfg.Rate)),
		closed: make(chan struct{}),
	}
}

// Next waits for the next tick and returns the hand at that sample time
func (s *Synthetic) Next(ctx context.Context) (gesture.Frame, error) {
	select {
	case <-s.closed:
		return gesture.NoHand, io.EOF
	default:
	}
	select {
	case <-ctx.Done():
		return gesture.NoHand, ctx.Err()
	case <-s.closed:
		return gesture.NoHand, io.EOF
	case <-s.ticker.C:
	}
	t := float64(s.n) / float64(s.cfg.Rate)
	s.n++
	return s.Sample(t), nil
}

// Close stops the ticker, a pending Next returns io.EOF
func (s *Synthetic) Close() error {
	s.closeOnce.Do(func() {
		s.ticker.Stop()
		close(s.closed)
	})
	return nil
}

// Sample returns the hand at t seconds, deterministic for a given seed
func (s *Synthetic) Sample(t float64) gesture.Frame {
	if s.droppedOut(t) {
		return gesture.NoHand
	}

	span := 1 - 2*parameter.SyntheticMargin
	u := t * parameter.SyntheticWanderSpeed
	index := gesture.Landmark{
		X: parameter.SyntheticMargin + span*s.noiseX.Eval2(u, 0),
		Y: parameter.SyntheticMargin + span*s.noiseY.Eval2(0, u),
	}

	// Pinch opens and closes on a fixed period, the thumb orbits the index tip
	phase := 2 * math.Pi * t / parameter.SyntheticPinchPeriod.Seconds()
	pinch := parameter.SyntheticPinchMin +
		(parameter.SyntheticPinchMax-parameter.SyntheticPinchMin)*(0.5+0.5*math.Sin(phase))
	angle := math.Pi * (0.75 + 0.5*s.noiseA.Eval2(u, u))
	thumb := gesture.Landmark{
		X: index.X + pinch*math.Cos(angle),
		Y: index.Y + pinch*math.Sin(angle),
	}

	return gesture.Frame{Hands: [][]gesture.Landmark{handFrom(thumb, index)}}
}

func (s *Synthetic) droppedOut(t float64) bool {
	if s.cfg.DropoutEvery <= 0 || s.cfg.Dropout <= 0 {
		return false
	}
	every := s.cfg.DropoutEvery.Seconds()
	return math.Mod(t, every) >= every-s.cfg.Dropout.Seconds()
}

// handFrom lays out a 21-point hand: wrist at 0, then four joints per finger
// thumb first, each finger ending in its tip
func handFrom(thumb, index gesture.Landmark) []gesture.Landmark {
	wrist := gesture.Landmark{X: index.X, Y: index.Y + parameter.SyntheticPalmLength}

	tips := [5]gesture.Landmark{thumb, index}
	for f := 2; f < 5; f++ {
		tips[f] = gesture.Landmark{
			X: index.X + float64(f-1)*parameter.SyntheticFingerSpread,
			Y: index.Y + float64(f-1)*parameter.SyntheticFingerSpread*0.5,
		}
	}

	lm := make([]gesture.Landmark, parameter.LandmarkCount)
	lm[0] = clamp(wrist)
	for i := 1; i < parameter.LandmarkCount; i++ {
		f, joint := (i-1)/4, (i-1)%4+1
		if joint == 4 {
			lm[i] = clamp(tips[f])
			continue
		}
		j := float64(joint) / 4
		lm[i] = clamp(gesture.Landmark{
			X: wrist.X + (tips[f].X-wrist.X)*j,
			Y: wrist.Y + (tips[f].Y-wrist.Y)*j,
		})
	}
	return lm
}

func clamp(l gesture.Landmark) gesture.Landmark {
	l.X = math.Min(1, math.Max(0, l.X))
	l.Y = math.Min(1, math.Max(0, l.Y))
	return l
}
