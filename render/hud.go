package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/lixenwraith/particle-morph/engine"
)

// ControlHint lists the terminal key bindings
const ControlHint = "1/2/3 s/h/p:shape  +/-:zoom  ←/→:rotate  wheel:zoom  d:debug  q:quit"

// StatusLine summarizes the scalar state for the HUD
func StatusLine(snap *engine.Snapshot) string {
	hand := "no hand"
	if snap.HandDetected {
		hand = "hand"
	}
	return fmt.Sprintf("%-6s  zoom %5.2f  dist %5.2f  rot %+6.2f  %s particles  %s",
		snap.Shape,
		snap.Zoom,
		snap.Distance,
		snap.Rotation,
		humanize.Comma(int64(snap.Particles)),
		hand,
	)
}

// DebugLine reports raw input and landmark throughput
func DebugLine(snap *engine.Snapshot) string {
	var b strings.Builder
	if snap.HandDetected {
		fmt.Fprintf(&b, "x=%.3f y=%.3f", snap.InputX, snap.InputY)
	} else {
		b.WriteString("x=- y=-")
	}
	fmt.Fprintf(&b, "  frame %s  landmarks %s  coalesced %s  t=%ss",
		humanize.Comma(int64(snap.Frame)),
		humanize.Comma(int64(snap.LandmarkFrames)),
		humanize.Comma(int64(snap.CoalescedFrames)),
		humanize.FtoaWithDigits(snap.Elapsed, 1),
	)
	return b.String()
}
