package shape

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/lixenwraith/particle-morph/parameter"
)

// Generate allocates and fills a target cloud of n points (3n floats)
func Generate(kind Kind, n int, rng *rand.Rand) []float32 {
	if n < 0 {
		n = 0
	}
	buf := make([]float32, n*3)
	GenerateInto(buf, kind, rng)
	return buf
}

// GenerateInto fills dst with len(dst)/3 points sampled from the formation
// Statistically shape-conforming, not reproducible unless rng is seeded
func GenerateInto(dst []float32, kind Kind, rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	n := len(dst) / 3

	switch kind {
	case Saturn:
		body := int(float64(n) * parameter.SaturnBodyShare)
		for i := 0; i < n; i++ {
			var x, y, z float32
			if i < body {
				x, y, z = spherePoint(rng, parameter.SaturnBodyRadius)
			} else {
				x, y, z = ringPoint(rng)
			}
			put(dst, i, x, y, z)
		}
	case Heart:
		for i := 0; i < n; i++ {
			x, y, z := heartPoint(rng)
			put(dst, i, x, y, z)
		}
	default:
		for i := 0; i < n; i++ {
			x, y, z := spherePoint(rng, parameter.SphereRadius)
			put(dst, i, x, y, z)
		}
	}
}

// spherePoint samples the sphere surface uniformly
// Inverse-cosine polar angle avoids clustering at the poles
func spherePoint(rng *rand.Rand, r float32) (x, y, z float32) {
	phi := math32.Acos(2*rng.Float32() - 1)
	theta := rng.Float32() * 2 * math32.Pi
	sinPhi := math32.Sin(phi)
	return r * sinPhi * math32.Cos(theta),
		r * sinPhi * math32.Sin(theta),
		r * math32.Cos(phi)
}

// ringPoint samples a flattened disk, vertical extent scaled relative to ring radius
func ringPoint(rng *rand.Rand) (x, y, z float32) {
	angle := rng.Float32() * 2 * math32.Pi
	r := float32(parameter.SaturnRingMin) + rng.Float32()*float32(parameter.SaturnRingMax-parameter.SaturnRingMin)
	sin, cos := math32.Sin(angle), math32.Cos(angle)
	return cos * r,
		sin * r * parameter.SaturnRingFlatten,
		sin * r
}

// heartPoint samples the classic parametric heart with depth jitter
func heartPoint(rng *rand.Rand) (x, y, z float32) {
	t := rng.Float32() * 2 * math32.Pi
	s := math32.Sin(t)
	x = parameter.HeartScale * (16 * s * s * s)
	y = parameter.HeartScale * (13*math32.Cos(t) - 5*math32.Cos(2*t) - 2*math32.Cos(3*t) - math32.Cos(4*t))
	z = (rng.Float32() - 0.5) * parameter.HeartDepth
	return x, y, z
}

func put(dst []float32, i int, x, y, z float32) {
	i3 := i * 3
	dst[i3] = x
	dst[i3+1] = y
	dst[i3+2] = z
}
