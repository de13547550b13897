// Package gesture converts hand landmark samples into an input point and
// debounced zoom and rotation changes.
package gesture

import (
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/vmath"
)

// Landmark is one normalized hand keypoint, X and Y in [0,1] image space
type Landmark struct {
	X, Y, Z float64
}

// Frame is one hand tracker result; empty Hands means no hand detected
type Frame struct {
	Hands [][]Landmark
}

// NoHand is the frame delivered when detection fails
var NoHand = Frame{}

// InputPoint is the tracked fingertip for the current frame
type InputPoint struct {
	X, Y    float64
	Present bool
}

// Absent is the zero InputPoint
var Absent = InputPoint{}

// valid reports whether l carries finite coordinates
func (l Landmark) valid() bool {
	return vmath.Finite(l.X) && vmath.Finite(l.Y)
}

// tips extracts thumb and index fingertips from the first hand
// ok is false when either is missing or non-numeric
func (f Frame) tips() (thumb, index Landmark, ok bool) {
	if len(f.Hands) == 0 {
		return Landmark{}, Landmark{}, false
	}
	hand := f.Hands[0]
	if len(hand) <= parameter.LandmarkIndexTip {
		return Landmark{}, Landmark{}, false
	}
	thumb = hand[parameter.LandmarkThumbTip]
	index = hand[parameter.LandmarkIndexTip]
	if !thumb.valid() || !index.valid() {
		return Landmark{}, Landmark{}, false
	}
	return thumb, index, true
}

// Detected reports whether the frame carries a usable hand
func (f Frame) Detected() bool {
	_, _, ok := f.tips()
	return ok
}
