// Package audio plays the short cue that marks a shape switch.
package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/particle-morph/logging"
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/shape"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// Frequency returns the chime pitch for a shape
func Frequency(k shape.Kind) float64 {
	switch k {
	case shape.Saturn:
		return parameter.ChimeFreqSaturn
	case shape.Heart:
		return parameter.ChimeFreqHeart
	default:
		return parameter.ChimeFreqSphere
	}
}

// Tone builds the finite sine streamer for a shape
func Tone(k shape.Kind) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, Frequency(k))
	if err != nil {
		return nil, fmt.Errorf("audio: tone for %s: %w", k, err)
	}
	return beep.Take(sampleRate.N(parameter.ChimeDuration), sine), nil
}

// Chime owns the speaker, all methods are no-ops until Initialize succeeds
type Chime struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewChime creates an uninitialized chime
func NewChime() *Chime {
	return &Chime{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device, failure leaves the chime silent
func (c *Chime) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Enabled reports whether the device is open
func (c *Chime) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// Play queues the cue for k, never blocks on playback
func (c *Chime) Play(k shape.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	tone, err := Tone(k)
	if err != nil {
		logging.Warn("chime skipped", "error", err)
		return
	}
	speaker.Lock()
	c.mixer.Add(tone)
	speaker.Unlock()
}

// Close silences pending cues and releases the device
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.initialized = false
}
