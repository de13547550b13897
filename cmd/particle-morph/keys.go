package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/particle-morph/engine"
	"github.com/lixenwraith/particle-morph/shape"
)

var shapeKeys = map[rune]shape.Kind{
	'1': shape.Saturn,
	's': shape.Saturn,
	'2': shape.Heart,
	'h': shape.Heart,
	'3': shape.Sphere,
	'p': shape.Sphere,
}

// translate maps one terminal event to a command
// ok is false for events that carry no command
func translate(ev tcell.Event) (cmd engine.Command, ok, quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return engine.Command{}, false, true
		case tcell.KeyLeft:
			return engine.RotateLeft(), true, false
		case tcell.KeyRight:
			return engine.RotateRight(), true, false
		case tcell.KeyRune:
		default:
			return engine.Command{}, false, false
		}

		r := ev.Rune()
		if k, found := shapeKeys[r]; found {
			return engine.SelectShape(k), true, false
		}
		switch r {
		case '+', '=':
			return engine.ZoomIn(), true, false
		case '-', '_':
			return engine.ZoomOut(), true, false
		case 'd', 'D':
			return engine.ToggleDebug(), true, false
		case 'q', 'Q':
			return engine.Command{}, false, true
		}

	case *tcell.EventMouse:
		// Wheel down moves the camera away
		buttons := ev.Buttons()
		switch {
		case buttons&tcell.WheelDown != 0:
			return engine.Scroll(1), true, false
		case buttons&tcell.WheelUp != 0:
			return engine.Scroll(-1), true, false
		}
	}
	return engine.Command{}, false, false
}
