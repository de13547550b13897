// Package field owns the live particle buffer and blends it toward the
// rotated target formation under the repulsion field of the input point.
package field

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/particle-morph/gesture"
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/shape"
	"github.com/lixenwraith/particle-morph/vmath"
)

// StepInput is the per-frame view of published gesture state
type StepInput struct {
	// Rotation is the accumulated gesture rotation about the vertical axis
	Rotation float64
	// Input is the tracked fingertip, repulsion is skipped when absent
	Input gesture.InputPoint
	// Elapsed is seconds since start, drives the depth wobble
	Elapsed float64
}

// Field holds target and live clouds as interleaved xyz float32 buffers
// Both buffers are allocated once, live[i] chases target[i]
type Field struct {
	kind   shape.Kind
	target []float32
	live   []float32
	rng    *rand.Rand

	// groupRotation is the passive rotation of the rendered group
	groupRotation float64
}

// New creates a field of count particles with live positions starting on the target
func New(count int, kind shape.Kind, rng *rand.Rand) *Field {
	if count < 0 {
		count = 0
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f := &Field{
		kind:   kind,
		target: make([]float32, count*3),
		live:   make([]float32, count*3),
		rng:    rng,
	}
	shape.GenerateInto(f.target, kind, rng)
	copy(f.live, f.target)
	return f
}

// SetShape regenerates the target cloud, the live cloud keeps its state and morphs over
func (f *Field) SetShape(kind shape.Kind) {
	f.kind = kind
	shape.GenerateInto(f.target, kind, f.rng)
}

// Step advances every particle one tick, allocation-free
func (f *Field) Step(in StepInput) {
	sin := float32(math.Sin(in.Rotation))
	cos := float32(math.Cos(in.Rotation))

	repel := in.Input.Present
	var hand vmath.Vec3
	if repel {
		hand = vmath.Vec3{
			X: float32((in.Input.X - 0.5) * parameter.HandPlaneScale),
			Y: float32((0.5 - in.Input.Y) * parameter.HandPlaneScale),
		}
	}
	wobble := in.Elapsed * parameter.RepulsionWobbleFreq

	n := len(f.live) / 3
	for i := 0; i < n; i++ {
		t := vmath.V3RotateY(vmath.V3At(f.target, i), sin, cos)
		cur := vmath.V3At(f.live, i)

		if repel {
			// Distance from the live position, not the target
			d := vmath.V3Sub(cur, hand)
			dist := vmath.V3Mag(d)
			if dist < parameter.RepulsionRadius {
				push := (parameter.RepulsionRadius - dist) / parameter.RepulsionRadius * parameter.RepulsionStrength
				// Zero distance normalizes to the zero vector
				t = vmath.V3Add(t, vmath.V3Scale(vmath.V3Normalize(d), push))
				t.Z += float32(math.Sin(wobble+float64(i)*parameter.RepulsionWobblePhase) * parameter.RepulsionWobbleAmp)
			}
		}

		vmath.V3Put(f.live, i, vmath.V3Lerp(cur, t, parameter.ParticleEaseFactor))
	}

	f.groupRotation += parameter.GroupRotationStep
}

// Live returns the live buffer, valid until the next Step
func (f *Field) Live() []float32 {
	return f.live
}

// Target returns the unrotated target buffer
func (f *Field) Target() []float32 {
	return f.target
}

// Shape returns the active formation
func (f *Field) Shape() shape.Kind {
	return f.kind
}

// Count returns the number of particles
func (f *Field) Count() int {
	return len(f.live) / 3
}

// GroupRotation returns the passive rotation applied by presenters about the vertical axis
func (f *Field) GroupRotation() float64 {
	return f.groupRotation
}
