package render

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/vmath"
)

// Projector maps world points to viewport coordinates for a camera on the
// +Z axis looking at the origin
type Projector struct {
	halfW, halfH float32
	focal        float32
	xScale       float32
	distance     float32
	near         float32
	sin, cos     float32
}

// Setup prepares a projection for one frame
// xScale stretches horizontally, 2 for terminal cells twice as tall as wide
func (p *Projector) Setup(width, height int, xScale, distance, groupRotation float64) {
	p.halfW = float32(width) / 2
	p.halfH = float32(height) / 2
	fov := parameter.CameraFovY * math.Pi / 180
	p.focal = p.halfH / float32(math.Tan(fov/2))
	p.xScale = float32(xScale)
	p.distance = float32(distance)
	p.near = parameter.CameraNear
	// Group rotation is counter-clockwise seen from above
	p.sin = -float32(math.Sin(groupRotation))
	p.cos = float32(math.Cos(groupRotation))
}

// Focal returns the focal length in viewport rows
func (p *Projector) Focal() float32 {
	return p.focal
}

// Project returns viewport coordinates and view depth, ok is false behind the near plane
func (p *Projector) Project(v vmath.Vec3) (sx, sy, depth float32, ok bool) {
	r := vmath.V3RotateY(v, p.sin, p.cos)
	depth = p.distance - r.Z
	if depth < p.near || math32.IsNaN(depth) {
		return 0, 0, depth, false
	}
	inv := p.focal / depth
	sx = p.halfW + r.X*inv*p.xScale
	sy = p.halfH - r.Y*inv
	return sx, sy, depth, true
}
