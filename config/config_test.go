package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/shape"
)

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "morph.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_Validates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, parameter.ParticleCount, cfg.Simulation.Particles)
	assert.Equal(t, "SATURN", cfg.Simulation.Shape)
	assert.True(t, cfg.Audio.Enabled)
	assert.False(t, cfg.Control.Enabled)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), `
[simulation]
particles = 2000
shape = "heart"

[display]
tint = "#00ffcc"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2000, cfg.Simulation.Particles)
	assert.Equal(t, shape.Heart, cfg.ShapeKind())
	assert.Equal(t, "#00ffcc", cfg.Display.Tint)
	assert.Equal(t, parameter.ZoomDefault, cfg.Simulation.Zoom)
	assert.True(t, cfg.Audio.Enabled, "absent [audio] keeps the default")
	require.NoError(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "config: read")

	path := writeFile(t, t.TempDir(), "[simulation\nparticles = 1")
	_, err = Load(path)
	assert.ErrorContains(t, err, "config: parse")

	path = writeFile(t, t.TempDir(), "[simulation]\nparticle = 10\n")
	_, err = Load(path)
	assert.Error(t, err, "unknown keys are rejected")
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestResolve_FlagPrecedence(t *testing.T) {
	path := writeFile(t, t.TempDir(), `
[simulation]
particles = 2000
fps = 30

[audio]
enabled = true

[log]
level = "warn"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	cfg.Resolve(Flags{Particles: 500, Shape: "sphere", NoAudio: true, Control: true, Debug: true})

	assert.Equal(t, 500, cfg.Simulation.Particles, "flag beats file")
	assert.Equal(t, 30, cfg.Simulation.FPS, "file beats default")
	assert.Equal(t, "sphere", cfg.Simulation.Shape)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Audio.Enabled)
	assert.True(t, cfg.Control.Enabled)
	assert.True(t, cfg.Display.Debug)
	require.NoError(t, cfg.Validate())
}

func TestResolve_ZeroValuesGetDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.Resolve(Flags{})

	def := Default()
	assert.Equal(t, def.Simulation.Particles, cfg.Simulation.Particles)
	assert.Equal(t, def.Simulation.FPS, cfg.Simulation.FPS)
	assert.Equal(t, def.Display.Tint, cfg.Display.Tint)
	assert.Equal(t, def.Snapshot, cfg.Snapshot)
	assert.Equal(t, def.Control.Listen, cfg.Control.Listen)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"particles", func(c *Config) { c.Simulation.Particles = -1 }, "simulation.particles"},
		{"shape", func(c *Config) { c.Simulation.Shape = "cube" }, "simulation.shape"},
		{"zoom", func(c *Config) { c.Simulation.Zoom = 31 }, "simulation.zoom"},
		{"fps", func(c *Config) { c.Simulation.FPS = 1000 }, "simulation.fps"},
		{"tint", func(c *Config) { c.Display.Tint = "yellow" }, "display.tint"},
		{"alpha", func(c *Config) { c.Display.PointAlpha = 1.5 }, "display.point_alpha"},
		{"color", func(c *Config) { c.Display.Color = "16" }, "display.color"},
		{"listen", func(c *Config) { c.Control.Enabled = true; c.Control.Listen = " " }, "control.listen"},
		{"level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"supersample", func(c *Config) { c.Snapshot.Supersample = 9 }, "snapshot.supersample"},
		{"size", func(c *Config) { c.Snapshot.Width = 0 }, "snapshot size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestValidate_ReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Simulation.Shape = "cube"
	cfg.Display.Tint = "x"
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "simulation.shape")
	assert.ErrorContains(t, err, "display.tint")
}

func TestSimulationConfig(t *testing.T) {
	cfg := Default()
	cfg.Simulation.Shape = "Sphere"
	cfg.Simulation.Seed = 9
	cfg.Display.Debug = true
	sc := cfg.SimulationConfig()

	assert.Equal(t, shape.Sphere, sc.Shape)
	assert.Equal(t, uint64(9), sc.Seed)
	assert.True(t, sc.Debug)
	assert.Equal(t, parameter.PointTint, sc.Display.Tint)
}

func TestEncode_Decodes(t *testing.T) {
	cfg := Default()
	cfg.Simulation.Particles = 1234
	data, err := cfg.Encode()
	require.NoError(t, err)

	back := &Config{}
	require.NoError(t, Decode(data, back))
	assert.Equal(t, cfg, back)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "[display]\ntint = \"#ffffff\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	require.NoError(t, Watch(ctx, path, Flags{}, func(c *Config) { got <- c }))

	// Invalid content is skipped
	require.NoError(t, os.WriteFile(path, []byte("[display]\ntint = \"bad\"\n"), 0o644))
	time.Sleep(3 * reloadDelay)
	require.NoError(t, os.WriteFile(path, []byte("[display]\ntint = \"#123456\"\n"), 0o644))

	select {
	case cfg := <-got:
		assert.Equal(t, "#123456", cfg.Display.Tint)
	case <-time.After(3 * time.Second):
		t.Fatal("Timed out waiting for reload")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "morph.toml"), Flags{}, func(*Config) {})
	assert.Error(t, err)
}
