package render

import (
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/particle-morph/engine"
	"github.com/lixenwraith/particle-morph/logging"
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/vmath"
)

// ErrNoScreen is returned when presenting without a screen
var ErrNoScreen = errors.New("render: no screen")

// TerminalPresenter draws the live cloud into a tcell screen, one additive
// accumulator per cell with a density glyph ramp
type TerminalPresenter struct {
	screen tcell.Screen
	proj   Projector
	canvas *Canvas
	glyphs []rune
	bg     tcell.Style

	tintHex string
	tint    colorful.Color
	hudDim  tcell.Style
	hudText tcell.Style
}

// NewTerminalPresenter wraps an initialized screen
func NewTerminalPresenter(screen tcell.Screen) *TerminalPresenter {
	p := &TerminalPresenter{
		screen: screen,
		canvas: NewCanvas(0, 0),
		glyphs: []rune(parameter.PointGlyphs),
		bg:     tcell.StyleDefault.Background(RGBBlack.Tcell()),
	}
	p.setTint(parameter.PointTint)
	return p
}

func (p *TerminalPresenter) setTint(hex string) {
	c, err := ParseTint(hex)
	if err != nil {
		logging.Warn("keeping previous tint", "error", err)
		p.tintHex = hex
		return
	}
	p.tintHex = hex
	p.tint = c
	p.hudText = p.bg.Foreground(FromColorful(c).Tcell())
	p.hudDim = p.bg.Foreground(FromColorful(Dim(c, 0.55)).Tcell())
}

// Present implements engine.Presenter
func (p *TerminalPresenter) Present(f *engine.Frame) error {
	if p.screen == nil {
		return ErrNoScreen
	}
	snap := f.Snapshot
	if snap.Display.Tint != "" && snap.Display.Tint != p.tintHex {
		p.setTint(snap.Display.Tint)
	}

	w, h := p.screen.Size()
	viewH := max(h-parameter.BottomMargin, 0)

	p.canvas.Resize(w, viewH)
	p.proj.Setup(w, viewH, 1/parameter.CellAspect, f.Distance, f.GroupRotation)

	contrib := Premultiply(p.tint, snap.Display.PointAlpha)
	n := len(f.Live) / 3
	for i := 0; i < n; i++ {
		sx, sy, _, ok := p.proj.Project(vmath.V3At(f.Live, i))
		if !ok || sx < 0 || sy < 0 {
			continue
		}
		p.canvas.Splat(int(sx), int(sy), contrib)
	}

	p.drawCanvas(w, viewH)
	p.drawHUD(snap, w, h)
	if snap.Debug {
		p.drawDebug(snap, w, viewH)
	}

	p.screen.Show()
	return nil
}

func (p *TerminalPresenter) drawCanvas(w, viewH int) {
	last := len(p.glyphs) - 1
	for y := 0; y < viewH; y++ {
		for x := 0; x < w; x++ {
			c := p.canvas.At(x, y)
			peak := c.Peak()
			if peak <= 0 {
				p.screen.SetContent(x, y, ' ', nil, p.bg)
				continue
			}
			idx := int(min(peak, 1)*float32(last) + 0.5)
			idx = max(1, min(idx, last))
			p.screen.SetContent(x, y, p.glyphs[idx], nil, p.bg.Foreground(c.Clamp().Tcell()))
		}
	}
}

// drawText writes s from (x, y), clipped at the right edge
func (p *TerminalPresenter) drawText(x, y, w int, s string, style tcell.Style) int {
	for _, r := range s {
		if x >= w {
			break
		}
		p.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// clearRow blanks a HUD row
func (p *TerminalPresenter) clearRow(y, w int) {
	for x := 0; x < w; x++ {
		p.screen.SetContent(x, y, ' ', nil, p.bg)
	}
}

func (p *TerminalPresenter) drawHUD(snap *engine.Snapshot, w, h int) {
	if h < parameter.BottomMargin {
		return
	}
	statusY := h - 2
	controlY := h - 1
	p.clearRow(statusY, w)
	p.clearRow(controlY, w)

	p.drawText(1, statusY, w, StatusLine(snap), p.hudText)
	p.drawText(1, controlY, w, ControlHint, p.hudDim)
}

func (p *TerminalPresenter) drawDebug(snap *engine.Snapshot, w, viewH int) {
	if viewH <= 0 {
		return
	}
	p.drawText(1, 0, w, DebugLine(snap), p.hudDim)
	if !snap.HandDetected {
		return
	}
	// Screen-space marker, not projected
	x := int(snap.InputX * float64(w))
	y := int(snap.InputY * float64(viewH))
	if x >= 0 && x < w && y >= 0 && y < viewH {
		p.screen.SetContent(x, y, parameter.HandMarkerGlyph, nil, p.hudText.Bold(true))
	}
}
