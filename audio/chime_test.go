package audio

import (
	"testing"

	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/shape"
)

func TestFrequency(t *testing.T) {
	tests := map[shape.Kind]float64{
		shape.Saturn:  523.25,
		shape.Heart:   659.25,
		shape.Sphere:  783.99,
		shape.Kind(9): 783.99,
	}
	for k, want := range tests {
		if got := Frequency(k); got != want {
			t.Errorf("%s: expected %f Hz, got %f", k, want, got)
		}
	}
}

func TestTone_Length(t *testing.T) {
	tone, err := Tone(shape.Heart)
	if err != nil {
		t.Fatalf("Tone failed: %v", err)
	}

	want := sampleRate.N(parameter.ChimeDuration)
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := tone.Stream(buf)
		for _, s := range buf[:n] {
			peak = max(peak, s[0])
		}
		total += n
		if !ok || n == 0 {
			break
		}
	}
	if total != want {
		t.Errorf("Expected %d samples, got %d", want, total)
	}
	if peak <= 0 || peak > 1 {
		t.Errorf("Expected peak in (0, 1], got %f", peak)
	}
}

func TestChime_SilentUntilInitialized(t *testing.T) {
	c := NewChime()
	if c.Enabled() {
		t.Error("Expected new chime disabled")
	}
	// No device: these must not touch the speaker
	c.Play(shape.Saturn)
	c.Close()
}
