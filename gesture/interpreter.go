package gesture

import (
	"math"

	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/vmath"
)

// State is the retained gesture state
// Rotation is unbounded, Zoom stays within [ZoomMin, ZoomMax]
type State struct {
	PrevPinch    float64
	HasPrevPinch bool
	PrevX        float64
	HasPrevX     bool
	Rotation     float64
	Zoom         float64
}

// Interpreter filters landmark samples into zoom and rotation changes
// Not safe for concurrent use, owned by the frame task
type Interpreter struct {
	state State
}

// NewInterpreter creates an interpreter at the given zoom, clamped to limits
func NewInterpreter(zoom float64) *Interpreter {
	return &Interpreter{
		state: State{Zoom: clampZoom(zoom)},
	}
}

// Process consumes one tracker result and returns the current input point
func (in *Interpreter) Process(f Frame) InputPoint {
	thumb, index, ok := f.tips()
	if !ok {
		in.Reset()
		return Absent
	}

	point := InputPoint{X: index.X, Y: index.Y, Present: true}

	// Pinch: closing fingers (positive delta) increases viewing distance
	pinch := vmath.Hypot2(thumb.X-index.X, thumb.Y-index.Y)
	if in.state.HasPrevPinch {
		delta := in.state.PrevPinch - pinch
		if math.Abs(delta) > parameter.PinchDeadZone {
			in.AddZoom(delta * parameter.PinchZoomGain)
		}
	}
	in.state.PrevPinch = pinch
	in.state.HasPrevPinch = true

	// Swipe: horizontal fingertip motion rotates
	if in.state.HasPrevX {
		dx := index.X - in.state.PrevX
		if math.Abs(dx) > parameter.SwipeDeadZone {
			in.AddRotation(dx * parameter.SwipeRotationGain)
		}
	}
	in.state.PrevX = index.X
	in.state.HasPrevX = true

	return point
}

// Reset clears gesture continuity so the next sample computes no delta
func (in *Interpreter) Reset() {
	in.state.PrevPinch = 0
	in.state.HasPrevPinch = false
	in.state.PrevX = 0
	in.state.HasPrevX = false
}

// AddZoom applies a zoom change with clamping, bypassing dead-zones
func (in *Interpreter) AddZoom(delta float64) {
	in.state.Zoom = clampZoom(in.state.Zoom + delta)
}

// AddRotation accumulates a rotation change, bypassing dead-zones
func (in *Interpreter) AddRotation(delta float64) {
	in.state.Rotation += delta
}

// Zoom returns the current zoom target
func (in *Interpreter) Zoom() float64 {
	return in.state.Zoom
}

// Rotation returns the accumulated rotation angle
func (in *Interpreter) Rotation() float64 {
	return in.state.Rotation
}

// State returns a copy of the retained state
func (in *Interpreter) State() State {
	return in.state
}

func clampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return parameter.ZoomDefault
	}
	return vmath.Clamp(z, parameter.ZoomMin, parameter.ZoomMax)
}
