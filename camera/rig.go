// Package camera eases the viewing distance toward the zoom target.
package camera

import (
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/vmath"
)

// Rig holds the current viewing distance
// Owned by the frame task, updated once per tick
type Rig struct {
	distance float64
}

// NewRig creates a rig at rest at the given distance
func NewRig(distance float64) *Rig {
	return &Rig{distance: distance}
}

// Update eases the distance toward target and returns the new distance
// The factor is below 1 so the approach never overshoots
func (r *Rig) Update(target float64) float64 {
	r.distance = vmath.Ease(r.distance, target, parameter.CameraEaseFactor)
	return r.distance
}

// Distance returns the current viewing distance
func (r *Rig) Distance() float64 {
	return r.distance
}
