package parameter

// Layout & Margins
const (
	// BottomMargin reserves rows for the HUD (status line + key hints)
	BottomMargin = 2

	// CellAspect is the width/height ratio of a terminal cell
	CellAspect = 0.5
)

// Point Sprites
const (
	// PointTint is the uniform particle color
	PointTint = "#ffdf7e"

	// PointAlpha is the additive contribution of one particle to its terminal cell
	PointAlpha = 0.35

	// PointAlphaImage is the additive contribution of one particle to its image pixels
	PointAlphaImage = 0.6

	// PointSize is the world-space sprite diameter, attenuated with depth
	PointSize = 0.06

	// PointGlyphs is the density ramp from faint to saturated cells
	PointGlyphs = " .·:+*oO@"
)

// Debug Overlay
const (
	// HandMarkerGlyph marks the tracked fingertip position
	HandMarkerGlyph = '◎'
)

// Snapshot Defaults
const (
	SnapshotWidth       = 960
	SnapshotHeight      = 720
	SnapshotSupersample = 2
	SnapshotTicks       = 120

	// SnapshotSupersampleMax bounds the offscreen resolution multiplier
	SnapshotSupersampleMax = 4
)
