package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"

	"github.com/lixenwraith/particle-morph/audio"
	"github.com/lixenwraith/particle-morph/config"
	"github.com/lixenwraith/particle-morph/control"
	"github.com/lixenwraith/particle-morph/core"
	"github.com/lixenwraith/particle-morph/engine"
	"github.com/lixenwraith/particle-morph/handfeed"
	"github.com/lixenwraith/particle-morph/logging"
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/render"
)

type options struct {
	configPath string
	hand       string
	handLoop   bool
	flags      config.Flags
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "TOML settings file, display settings reload on save")
	flag.StringVar(&opts.hand, "hand", "", "Local landmark source: synthetic, or a JSONL recording")
	flag.BoolVar(&opts.handLoop, "hand-loop", true, "Loop the JSONL recording")

	f := &opts.flags
	flag.IntVar(&f.Particles, "particles", 0, "Particle count")
	flag.StringVar(&f.Shape, "shape", "", "Initial shape: SATURN, HEART, SPHERE")
	flag.Float64Var(&f.Zoom, "zoom", 0, "Initial viewing distance")
	flag.IntVar(&f.FPS, "fps", 0, "Frame rate")
	flag.Uint64Var(&f.Seed, "seed", 0, "Shape generation seed, 0 is random")
	flag.StringVar(&f.Tint, "tint", "", "Point tint as #rrggbb")
	flag.BoolVar(&f.Debug, "debug", false, "Start with the debug overlay")
	flag.StringVar(&f.Color, "color", "", "Color mode: auto, truecolor, 256")
	flag.BoolVar(&f.NoAudio, "no-audio", false, "Disable the shape chime")
	flag.BoolVar(&f.Control, "control", false, "Serve the REST and websocket control surface")
	flag.StringVar(&f.Listen, "listen", "", "Control surface listen address")
	flag.StringVar(&f.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.StringVar(&f.LogFile, "log-file", "", "Log file, logs are discarded when empty")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "particle-morph: %v\n", err)
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

	// The screen owns stdout
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errors.New("stdout is not a terminal, use morph-snapshot for headless rendering")
	}

	logCloser, err := logging.Init(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logCloser.Close()

	applyColorMode(cfg.Display.Color)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	// Restore the terminal before any crash report
	core.SetCrashFinalizer(screen.Fini)
	defer screen.Fini()
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	sim := engine.NewSimulation(cfg.SimulationConfig())

	chime := audio.NewChime()
	if cfg.Audio.Enabled {
		if err := chime.Initialize(); err != nil {
			logging.Warn("audio unavailable, continuing without chime", "error", err)
		}
	}
	sim.OnShapeChange(chime.Play)

	loop := engine.NewLoop(sim, render.NewTerminalPresenter(screen), cfg.Simulation.FPS, nil)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var (
		srv      *control.Server
		srvDone  <-chan error
		producer *engine.Producer
		quit     = make(chan struct{})
	)

	// Teardown: control, producer, loop, audio, then the deferred screen.Fini
	defer func() {
		cancel()
		if srv != nil {
			if err := srv.Shutdown(); err != nil {
				logging.Warn("control shutdown", "error", err)
			}
		}
		if producer != nil {
			if err := producer.Stop(); err != nil {
				logging.Warn("landmark source close", "error", err)
			}
		}
		loop.Stop()
		chime.Close()
		close(quit)
		logging.Info("stopped", "ticks", loop.Ticks())
	}()

	if cfg.Control.Enabled {
		srv = control.New(sim)
		srv.Start(cfg.Control.Listen)
		srvDone = srv.Done()
	}

	if opts.hand != "" {
		src, err := openSource(opts.hand, opts.handLoop, int64(cfg.Simulation.Seed))
		if err != nil {
			return err
		}
		producer = engine.NewProducer(src, sim.Landmarks())
		producer.Start(ctx)
	}

	if opts.configPath != "" {
		err := config.Watch(ctx, opts.configPath, opts.flags, func(c *config.Config) {
			sim.Submit(engine.SetDisplay(c.DisplaySettings()))
			sim.Submit(engine.SetDebug(c.Display.Debug))
			logging.Info("display settings reloaded", "tint", c.Display.Tint, "alpha", c.Display.PointAlpha)
		})
		if err != nil {
			logging.Warn("config reload disabled", "error", err)
		}
	}

	loop.Start()
	logging.Info("started",
		"particles", cfg.Simulation.Particles,
		"shape", cfg.Simulation.Shape,
		"fps", cfg.Simulation.FPS,
	)

	events := make(chan tcell.Event, parameter.InputEventQueueSize)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	})

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-loop.Done():
			return loop.Err()

		case err := <-srvDone:
			if err != nil {
				return fmt.Errorf("control server: %w", err)
			}
			srvDone = nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				screen.Sync()
				continue
			}
			cmd, ok, quitKey := translate(ev)
			if quitKey {
				return nil
			}
			if ok && !sim.Submit(cmd) {
				logging.Warn("command queue full, dropping command", "type", cmd.Type)
			}
		}
	}
}

// applyColorMode steers tcell's color detection before the screen is created
func applyColorMode(mode string) {
	switch mode {
	case config.Color256:
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case config.ColorTrueColor:
		os.Setenv("COLORTERM", "truecolor")
	}
}

func openSource(hand string, loop bool, seed int64) (engine.LandmarkSource, error) {
	if hand == "synthetic" {
		return handfeed.NewSynthetic(handfeed.SyntheticConfig{Seed: seed}), nil
	}
	return handfeed.OpenReplay(hand, handfeed.ReplayOptions{Loop: loop})
}
