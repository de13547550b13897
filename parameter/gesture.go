package parameter

// Landmark indices consumed from a 21-point hand model
const (
	LandmarkThumbTip = 4
	LandmarkIndexTip = 8

	// LandmarkCount is the number of points per hand produced by the tracker
	LandmarkCount = 21
)

// Gesture dead-zones and sensitivities
// Per-frame landmark jitter is larger than intentional motion below these thresholds
const (
	// PinchDeadZone is the minimum pinch distance change treated as intentional
	PinchDeadZone = 0.015

	// PinchZoomGain converts pinch distance change to zoom change, closing fingers moves the camera away
	PinchZoomGain = 40.0

	// SwipeDeadZone is the minimum horizontal fingertip change treated as intentional
	SwipeDeadZone = 0.005

	// SwipeRotationGain converts horizontal fingertip change to rotation (radians)
	SwipeRotationGain = 2.0

	// RotationButtonStep is the rotation change per button press (radians)
	RotationButtonStep = 0.2
)
