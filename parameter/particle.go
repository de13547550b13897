package parameter

// Particle Field
const (
	// ParticleCount is the number of particles in the reference configuration
	ParticleCount = 15000

	// ParticleCountMin/Max bound the configurable particle count
	ParticleCountMin = 1
	ParticleCountMax = 500000

	// ParticleEaseFactor is the per-tick fraction live positions move toward targets
	// Faster than the camera so the field responds before the view settles
	ParticleEaseFactor = 0.08

	// GroupRotationStep is the passive rotation of the rendered group per tick (radians)
	GroupRotationStep = 0.0005
)

// Repulsion Field
const (
	// HandPlaneScale maps normalized [0,1] hand coordinates to render-space (±7.5 units)
	HandPlaneScale = 15.0

	// RepulsionRadius is the render-space distance within which particles are displaced
	RepulsionRadius = 4.0

	// RepulsionStrength is the displacement at zero distance
	RepulsionStrength = 1.2

	// RepulsionWobbleFreq is the time frequency of the depth perturbation
	RepulsionWobbleFreq = 3.0

	// RepulsionWobblePhase is the per-index phase offset of the depth perturbation
	RepulsionWobblePhase = 0.1

	// RepulsionWobbleAmp is the depth perturbation amplitude
	RepulsionWobbleAmp = 0.3
)
