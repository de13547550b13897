package engine

import (
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/shape"
)

// CommandType identifies a control surface request
type CommandType uint8

const (
	CmdSelectShape CommandType = iota
	CmdZoom
	CmdRotate
	CmdToggleDebug
	CmdSetDebug
	CmdSetDisplay
)

// Display carries presenter settings that can change while running
type Display struct {
	Tint       string  `json:"tint"`
	PointAlpha float64 `json:"point_alpha"`
}

// Command is one UI request, applied on the frame task in submission order
type Command struct {
	Type    CommandType
	Shape   shape.Kind
	Delta   float64
	Flag    bool
	Display Display
}

// SelectShape switches the target formation
func SelectShape(k shape.Kind) Command {
	return Command{Type: CmdSelectShape, Shape: k}
}

// ZoomIn moves the camera closer by one button step
func ZoomIn() Command {
	return Command{Type: CmdZoom, Delta: -parameter.ZoomButtonStep}
}

// ZoomOut moves the camera away by one button step
func ZoomOut() Command {
	return Command{Type: CmdZoom, Delta: parameter.ZoomButtonStep}
}

// RotateLeft turns the formation by one negative button step
func RotateLeft() Command {
	return Command{Type: CmdRotate, Delta: -parameter.RotationButtonStep}
}

// RotateRight turns the formation by one positive button step
func RotateRight() Command {
	return Command{Type: CmdRotate, Delta: parameter.RotationButtonStep}
}

// Scroll applies one wheel tick, positive dir (wheel down) moves the camera away
func Scroll(dir int) Command {
	switch {
	case dir > 0:
		return Command{Type: CmdZoom, Delta: parameter.ZoomScrollStep}
	case dir < 0:
		return Command{Type: CmdZoom, Delta: -parameter.ZoomScrollStep}
	default:
		return Command{Type: CmdZoom}
	}
}

// ToggleDebug flips the debug overlay
func ToggleDebug() Command {
	return Command{Type: CmdToggleDebug}
}

// SetDebug sets the debug overlay
func SetDebug(on bool) Command {
	return Command{Type: CmdSetDebug, Flag: on}
}

// SetDisplay replaces presenter display settings
func SetDisplay(d Display) Command {
	return Command{Type: CmdSetDisplay, Display: d}
}
