package parameter

import "time"

// Synthetic Hand
const (
	// SyntheticWanderSpeed is the noise-space distance travelled per second by the fingertip
	SyntheticWanderSpeed = 0.35

	// SyntheticMargin keeps the wandering index tip this far from the image edge
	SyntheticMargin = 0.15

	// SyntheticPinchMin/Max bound the thumb to index distance
	SyntheticPinchMin = 0.03
	SyntheticPinchMax = 0.12

	// SyntheticPinchPeriod is the duration of one full pinch open-close cycle
	SyntheticPinchPeriod = 6 * time.Second

	// SyntheticPalmLength is the wrist offset below the fingertips
	SyntheticPalmLength = 0.25

	// SyntheticFingerSpread is the horizontal gap between neighbouring fingertips
	SyntheticFingerSpread = 0.035
)

// Replay and Feeder
const (
	// ReplayMaxGap caps the pause between recorded frames
	ReplayMaxGap = time.Second

	// FeederWriteTimeout bounds a single websocket write
	FeederWriteTimeout = 2 * time.Second

	// FeederCloseGrace bounds the close handshake on shutdown
	FeederCloseGrace = time.Second
)
