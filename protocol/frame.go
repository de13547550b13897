// Package protocol defines the JSON wire format for landmark frames sent over
// websocket and stored in JSONL recordings.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/particle-morph/gesture"
)

// HeaderClientID is the websocket upgrade header naming the sending session
const HeaderClientID = "X-Client-ID"

// ErrMalformed is returned for messages that are not a landmark frame
var ErrMalformed = errors.New("protocol: malformed frame")

// Header carries per-message sequencing
type Header struct {
	// Seq is a sender-assigned counter
	Seq uint64 `json:"seq"`
	// TS is the capture time in seconds on the sender clock
	TS float64 `json:"ts"`
}

// wireLandmark uses pointers so JSON null survives as a missing coordinate
type wireLandmark struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	Z *float64 `json:"z,omitempty"`
}

type wireFrame struct {
	Seq   uint64           `json:"seq"`
	TS    float64          `json:"ts"`
	Hands [][]wireLandmark `json:"hands"`
}

func coord(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func wire(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Decode parses one message, null or absent x/y coordinates become NaN
// and an empty or missing hands array is no hand
func Decode(data []byte) (gesture.Frame, Header, error) {
	var w wireFrame
	if err := json.Unmarshal(data, &w); err != nil {
		return gesture.NoHand, Header{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	hdr := Header{Seq: w.Seq, TS: w.TS}
	if len(w.Hands) == 0 {
		return gesture.NoHand, hdr, nil
	}

	f := gesture.Frame{Hands: make([][]gesture.Landmark, len(w.Hands))}
	for h, hand := range w.Hands {
		lms := make([]gesture.Landmark, len(hand))
		for i, lm := range hand {
			z := 0.0
			if lm.Z != nil {
				z = *lm.Z
			}
			lms[i] = gesture.Landmark{X: coord(lm.X), Y: coord(lm.Y), Z: z}
		}
		f.Hands[h] = lms
	}
	return f, hdr, nil
}

// Encode renders a frame, non-finite coordinates are written as null
func Encode(f gesture.Frame, hdr Header) ([]byte, error) {
	w := wireFrame{Seq: hdr.Seq, TS: hdr.TS, Hands: make([][]wireLandmark, len(f.Hands))}
	for h, hand := range f.Hands {
		lms := make([]wireLandmark, len(hand))
		for i, lm := range hand {
			lms[i] = wireLandmark{X: wire(lm.X), Y: wire(lm.Y), Z: wire(lm.Z)}
		}
		w.Hands[h] = lms
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode frame %d: %w", hdr.Seq, err)
	}
	return data, nil
}
