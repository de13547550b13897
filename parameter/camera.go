package parameter

// Camera easing and projection
const (
	// CameraEaseFactor is the per-tick fraction of the remaining distance the camera covers
	CameraEaseFactor = 0.1

	// CameraFovY is the vertical field of view in degrees
	CameraFovY = 50.0

	// CameraNear is the near clipping distance in render-space units
	CameraNear = 0.1
)

// Zoom limits and input steps
const (
	// ZoomMin/Max bound the camera viewing distance target
	ZoomMin = 5.0
	ZoomMax = 30.0

	// ZoomDefault is the initial viewing distance
	ZoomDefault = 15.0

	// ZoomButtonStep is the zoom change per button press
	ZoomButtonStep = 2.0

	// ZoomScrollStep is the zoom change per mouse wheel tick, wheel down zooms out
	ZoomScrollStep = 1.5
)
