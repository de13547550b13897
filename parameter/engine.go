package parameter

// Frame Loop Timing
const (
	// FrameRate is the nominal display refresh rate of the frame loop
	FrameRate = 60

	// FrameRateMin/Max bound the configurable frame rate
	FrameRateMin = 5
	FrameRateMax = 240

	// HandTrackingRate is the default rate of the synthetic landmark producer
	// Real trackers deliver 15-30 results per second, slower than the frame loop
	HandTrackingRate = 30
)

// Queues
const (
	// CommandQueueSize is the capacity of the UI command queue drained each tick
	CommandQueueSize = 64

	// InputEventQueueSize is the capacity of the terminal input event channel
	InputEventQueueSize = 256
)
