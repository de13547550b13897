package parameter

// Sphere formation
const (
	// SphereRadius is the radius of the SPHERE formation
	SphereRadius = 3.5
)

// Saturn formation
const (
	// SaturnBodyShare is the fraction of particles forming the planet body
	SaturnBodyShare = 0.6

	// SaturnBodyRadius is the radius of the planet body
	SaturnBodyRadius = 2.5

	// SaturnRingMin/Max bound the ring radius
	SaturnRingMin = 3.5
	SaturnRingMax = 5.0

	// SaturnRingFlatten scales the vertical ring extent relative to ring radius
	SaturnRingFlatten = 0.2
)

// Heart formation
const (
	// HeartScale scales the parametric heart curve
	HeartScale = 0.2

	// HeartDepth is the full width of the uniform depth jitter
	HeartDepth = 1.5
)
