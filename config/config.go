// Package config loads the TOML settings file and merges command line overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/particle-morph/engine"
	"github.com/lixenwraith/particle-morph/logging"
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/shape"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("config: invalid")

// Color modes for the terminal presenter
const (
	ColorAuto      = "auto"
	ColorTrueColor = "truecolor"
	Color256       = "256"
)

// Config mirrors the settings file, every section is optional
type Config struct {
	Simulation Simulation `toml:"simulation"`
	Display    Display    `toml:"display"`
	Audio      Audio      `toml:"audio"`
	Control    Control    `toml:"control"`
	Log        Log        `toml:"log"`
	Snapshot   Snapshot   `toml:"snapshot"`
}

// Simulation holds initial simulation state
type Simulation struct {
	Particles int     `toml:"particles"`
	Shape     string  `toml:"shape"`
	Zoom      float64 `toml:"zoom"`
	FPS       int     `toml:"fps"`
	// Seed zero picks a random seed
	Seed uint64 `toml:"seed"`
}

// Display holds presenter settings, applied live on reload
type Display struct {
	Tint       string  `toml:"tint"`
	PointAlpha float64 `toml:"point_alpha"`
	Debug      bool    `toml:"debug"`
	Color      string  `toml:"color"`
}

// Audio toggles the shape chime
type Audio struct {
	Enabled bool `toml:"enabled"`
}

// Control configures the REST and websocket surface
type Control struct {
	Enabled bool   `toml:"enabled"`
	Listen  string `toml:"listen"`
}

// Log selects level and file, empty file discards in the terminal app
type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Snapshot configures the headless renderer
type Snapshot struct {
	Width       int `toml:"width"`
	Height      int `toml:"height"`
	Supersample int `toml:"supersample"`
	Ticks       int `toml:"ticks"`
}

// Flags holds command line values that override the file
// Zero values leave the file setting untouched
type Flags struct {
	Particles   int
	Shape       string
	Zoom        float64
	FPS         int
	Seed        uint64
	Tint        string
	Debug       bool
	Color       string
	NoAudio     bool
	Control     bool
	Listen      string
	LogLevel    string
	LogFile     string
	Width       int
	Height      int
	Supersample int
	Ticks       int
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Simulation: Simulation{
			Particles: parameter.ParticleCount,
			Shape:     shape.Saturn.String(),
			Zoom:      parameter.ZoomDefault,
			FPS:       parameter.FrameRate,
		},
		Display: Display{
			Tint:       parameter.PointTint,
			PointAlpha: parameter.PointAlpha,
			Color:      ColorAuto,
		},
		Audio:   Audio{Enabled: true},
		Control: Control{Listen: parameter.ControlListenAddr},
		Log:     Log{Level: "info"},
		Snapshot: Snapshot{
			Width:       parameter.SnapshotWidth,
			Height:      parameter.SnapshotHeight,
			Supersample: parameter.SnapshotSupersample,
			Ticks:       parameter.SnapshotTicks,
		},
	}
}

// Load reads a TOML file over the defaults, keys absent from the file keep
// their default values. An empty path returns the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Decode unmarshals TOML onto cfg, unknown keys are rejected
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Encode renders cfg as TOML
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return data, nil
}

// Resolve applies flag overrides, then fills zero values with defaults
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Particles > 0 {
		c.Simulation.Particles = flags.Particles
	}
	if flags.Shape != "" {
		c.Simulation.Shape = flags.Shape
	}
	if flags.Zoom > 0 {
		c.Simulation.Zoom = flags.Zoom
	}
	if flags.FPS > 0 {
		c.Simulation.FPS = flags.FPS
	}
	if flags.Seed != 0 {
		c.Simulation.Seed = flags.Seed
	}
	if flags.Tint != "" {
		c.Display.Tint = flags.Tint
	}
	if flags.Debug {
		c.Display.Debug = true
	}
	if flags.Color != "" {
		c.Display.Color = flags.Color
	}
	if flags.NoAudio {
		c.Audio.Enabled = false
	}
	if flags.Control {
		c.Control.Enabled = true
	}
	if flags.Listen != "" {
		c.Control.Listen = flags.Listen
	}
	if flags.LogLevel != "" {
		c.Log.Level = flags.LogLevel
	}
	if flags.LogFile != "" {
		c.Log.File = flags.LogFile
	}
	if flags.Width > 0 {
		c.Snapshot.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Snapshot.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Snapshot.Supersample = flags.Supersample
	}
	if flags.Ticks > 0 {
		c.Snapshot.Ticks = flags.Ticks
	}

	// Defaults for anything still empty
	def := Default()
	if c.Simulation.Particles == 0 {
		c.Simulation.Particles = def.Simulation.Particles
	}
	if c.Simulation.Shape == "" {
		c.Simulation.Shape = def.Simulation.Shape
	}
	if c.Simulation.Zoom == 0 {
		c.Simulation.Zoom = def.Simulation.Zoom
	}
	if c.Simulation.FPS == 0 {
		c.Simulation.FPS = def.Simulation.FPS
	}
	if c.Display.Tint == "" {
		c.Display.Tint = def.Display.Tint
	}
	if c.Display.PointAlpha == 0 {
		c.Display.PointAlpha = def.Display.PointAlpha
	}
	if c.Display.Color == "" {
		c.Display.Color = def.Display.Color
	}
	if c.Control.Listen == "" {
		c.Control.Listen = def.Control.Listen
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Snapshot.Width == 0 {
		c.Snapshot.Width = def.Snapshot.Width
	}
	if c.Snapshot.Height == 0 {
		c.Snapshot.Height = def.Snapshot.Height
	}
	if c.Snapshot.Supersample == 0 {
		c.Snapshot.Supersample = def.Snapshot.Supersample
	}
	if c.Snapshot.Ticks == 0 {
		c.Snapshot.Ticks = def.Snapshot.Ticks
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate reports every out-of-range setting, each error wraps ErrInvalid
func (c *Config) Validate() error {
	var errs []error

	s := c.Simulation
	if s.Particles < parameter.ParticleCountMin || s.Particles > parameter.ParticleCountMax {
		errs = append(errs, invalid("simulation.particles %d outside [%d, %d]", s.Particles, parameter.ParticleCountMin, parameter.ParticleCountMax))
	}
	if _, err := shape.ParseKind(s.Shape); err != nil {
		errs = append(errs, invalid("simulation.shape %q", s.Shape))
	}
	if s.Zoom < parameter.ZoomMin || s.Zoom > parameter.ZoomMax {
		errs = append(errs, invalid("simulation.zoom %g outside [%g, %g]", s.Zoom, parameter.ZoomMin, parameter.ZoomMax))
	}
	if s.FPS < parameter.FrameRateMin || s.FPS > parameter.FrameRateMax {
		errs = append(errs, invalid("simulation.fps %d outside [%d, %d]", s.FPS, parameter.FrameRateMin, parameter.FrameRateMax))
	}

	d := c.Display
	if _, err := colorful.Hex(d.Tint); err != nil {
		errs = append(errs, invalid("display.tint %q is not a #rrggbb color", d.Tint))
	}
	if d.PointAlpha <= 0 || d.PointAlpha > 1 {
		errs = append(errs, invalid("display.point_alpha %g outside (0, 1]", d.PointAlpha))
	}
	switch d.Color {
	case ColorAuto, ColorTrueColor, Color256:
	default:
		errs = append(errs, invalid("display.color %q, want auto, truecolor or 256", d.Color))
	}

	if c.Control.Enabled && strings.TrimSpace(c.Control.Listen) == "" {
		errs = append(errs, invalid("control.listen is empty"))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, invalid("log.level %q", c.Log.Level))
	}

	sn := c.Snapshot
	if sn.Width <= 0 || sn.Height <= 0 {
		errs = append(errs, invalid("snapshot size %dx%d", sn.Width, sn.Height))
	}
	if sn.Supersample < 1 || sn.Supersample > parameter.SnapshotSupersampleMax {
		errs = append(errs, invalid("snapshot.supersample %d outside [1, %d]", sn.Supersample, parameter.SnapshotSupersampleMax))
	}
	if sn.Ticks < 0 {
		errs = append(errs, invalid("snapshot.ticks %d is negative", sn.Ticks))
	}

	return errors.Join(errs...)
}

// ShapeKind returns the configured shape, SATURN if unparseable
func (c *Config) ShapeKind() shape.Kind {
	k, err := shape.ParseKind(c.Simulation.Shape)
	if err != nil {
		logging.Warn("unknown shape in config, using SATURN", "shape", c.Simulation.Shape)
		return shape.Saturn
	}
	return k
}

// SimulationConfig converts to the engine startup state
func (c *Config) SimulationConfig() engine.SimulationConfig {
	sc := engine.DefaultSimulationConfig()
	sc.Particles = c.Simulation.Particles
	sc.Shape = c.ShapeKind()
	sc.Zoom = c.Simulation.Zoom
	sc.Seed = c.Simulation.Seed
	sc.Debug = c.Display.Debug
	sc.Display = c.DisplaySettings()
	return sc
}

// DisplaySettings returns the live-adjustable presenter settings
func (c *Config) DisplaySettings() engine.Display {
	return engine.Display{Tint: c.Display.Tint, PointAlpha: c.Display.PointAlpha}
}
