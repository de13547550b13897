package parameter

import "time"

// Control Surface
const (
	// ControlListenAddr is the default REST/websocket listen address
	ControlListenAddr = "127.0.0.1:8765"

	// ControlShutdownTimeout bounds graceful shutdown of the control server
	ControlShutdownTimeout = 2 * time.Second

	// LandmarkMessageLimit caps a single websocket landmark message in bytes
	LandmarkMessageLimit = 64 * 1024
)
