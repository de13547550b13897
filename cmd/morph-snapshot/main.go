// morph-snapshot runs the simulation headless for a fixed number of ticks and
// writes the last frame as a WebP or TGA image.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lixenwraith/particle-morph/config"
	"github.com/lixenwraith/particle-morph/engine"
	"github.com/lixenwraith/particle-morph/handfeed"
	"github.com/lixenwraith/particle-morph/logging"
	"github.com/lixenwraith/particle-morph/render"
)

type options struct {
	configPath string
	output     string
	hand       bool
	flags      config.Flags
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "TOML settings file")
	flag.StringVar(&opts.output, "o", "snapshot.webp", "Output image, .webp or .tga")
	flag.BoolVar(&opts.hand, "hand", false, "Drive the field with the synthetic hand")

	f := &opts.flags
	flag.IntVar(&f.Particles, "particles", 0, "Particle count")
	flag.StringVar(&f.Shape, "shape", "", "Shape: SATURN, HEART, SPHERE")
	flag.Float64Var(&f.Zoom, "zoom", 0, "Viewing distance")
	flag.IntVar(&f.FPS, "fps", 0, "Simulated frame rate")
	flag.Uint64Var(&f.Seed, "seed", 0, "Shape generation seed, 0 is random")
	flag.StringVar(&f.Tint, "tint", "", "Point tint as #rrggbb")
	flag.IntVar(&f.Width, "width", 0, "Image width")
	flag.IntVar(&f.Height, "height", 0, "Image height")
	flag.IntVar(&f.Supersample, "supersample", 0, "Supersample factor, 1 to 4")
	flag.IntVar(&f.Ticks, "ticks", 0, "Ticks to simulate before capture")
	flag.StringVar(&f.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.StringVar(&f.LogFile, "log-file", "", "Log file, stderr when empty")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "morph-snapshot: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	cfg.Resolve(opts.flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logCloser, err := logging.Init(logging.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Writer: os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logCloser.Close()

	format, err := render.FormatFromPath(opts.output)
	if err != nil {
		return err
	}

	img, err := render.NewImagePresenter(render.ImageOptions{
		Width:       cfg.Snapshot.Width,
		Height:      cfg.Snapshot.Height,
		Supersample: cfg.Snapshot.Supersample,
		Tint:        cfg.Display.Tint,
		PointAlpha:  cfg.Display.PointAlpha,
	})
	if err != nil {
		return err
	}

	sim := engine.NewSimulation(cfg.SimulationConfig())
	ticks := uint64(cfg.Snapshot.Ticks)
	if ticks == 0 {
		return fmt.Errorf("snapshot ticks must be positive")
	}
	capture := &finalFrame{presenter: img, at: ticks}

	clock := engine.NewMockTimeProvider(time.Unix(0, 0))
	loop := engine.NewLoop(sim, capture, cfg.Simulation.FPS, clock)

	var hand *handfeed.Synthetic
	if opts.hand {
		hand = handfeed.NewSynthetic(handfeed.SyntheticConfig{Seed: int64(cfg.Simulation.Seed)})
		defer hand.Close()
	}

	start := time.Now()
	for i := uint64(0); i < ticks; i++ {
		clock.Advance(loop.Interval())
		if hand != nil {
			sim.Landmarks().Offer(hand.Sample(float64(i) * loop.Interval().Seconds()))
		}
		if err := loop.Step(); err != nil {
			return err
		}
	}

	if err := capture.check(); err != nil {
		return err
	}

	out, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.output, err)
	}
	if err := img.Encode(out, format); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", opts.output, err)
	}

	snap := sim.Snapshot()
	logging.Info("snapshot written",
		"path", opts.output,
		"format", format.String(),
		"ticks", humanize.Comma(int64(snap.Frame)),
		"particles", humanize.Comma(int64(snap.Particles)),
		"simulated", clock.Elapsed(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// finalFrame rasterizes only frames at or past tick at
type finalFrame struct {
	presenter engine.Presenter
	at        uint64
	captured  bool
}

func (c *finalFrame) Present(f *engine.Frame) error {
	if f.Snapshot.Frame < c.at {
		return nil
	}
	c.captured = true
	return c.presenter.Present(f)
}

// check reports a run that ended before the capture tick
func (c *finalFrame) check() error {
	if !c.captured {
		return fmt.Errorf("no frame reached tick %d", c.at)
	}
	return nil
}
