package vmath

import (
	"github.com/chewxy/math32"
)

// Vec3 is a float32 3D vector matching the layout of point cloud buffers
type Vec3 struct {
	X, Y, Z float32
}

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Scale(v Vec3, s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func V3MagSq(v Vec3) float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3Mag(v Vec3) float32 {
	return math32.Sqrt(V3MagSq(v))
}

// V3Normalize returns the unit vector, zero vector for zero magnitude
func V3Normalize(v Vec3) Vec3 {
	mag := V3Mag(v)
	if mag == 0 {
		return Vec3{}
	}
	inv := 1 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3Lerp moves a toward b by fraction t per axis
func V3Lerp(a, b Vec3, t float32) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// V3RotateY rotates v about the vertical axis given precomputed sin/cos
// x' = x*cos - z*sin, z' = x*sin + z*cos, y unchanged
func V3RotateY(v Vec3, sin, cos float32) Vec3 {
	return Vec3{
		X: v.X*cos - v.Z*sin,
		Y: v.Y,
		Z: v.X*sin + v.Z*cos,
	}
}

// V3At reads point i from an interleaved xyz buffer
func V3At(buf []float32, i int) Vec3 {
	i3 := i * 3
	return Vec3{buf[i3], buf[i3+1], buf[i3+2]}
}

// V3Put writes point i into an interleaved xyz buffer
func V3Put(buf []float32, i int, v Vec3) {
	i3 := i * 3
	buf[i3] = v.X
	buf[i3+1] = v.Y
	buf[i3+2] = v.Z
}
