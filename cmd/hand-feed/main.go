// hand-feed streams synthetic or recorded hand landmarks to a running
// particle-morph control surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/particle-morph/engine"
	"github.com/lixenwraith/particle-morph/handfeed"
	"github.com/lixenwraith/particle-morph/logging"
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/protocol"
)

func main() {
	url := flag.String("url", "ws://"+parameter.ControlListenAddr+"/ws/landmarks", "Landmark ingest websocket URL")
	replay := flag.String("replay", "", "JSONL recording to stream instead of the synthetic hand")
	loop := flag.Bool("loop", false, "Loop the recording")
	speed := flag.Float64("speed", 1, "Recording playback speed")
	seed := flag.Int64("seed", 1, "Synthetic hand seed")
	rate := flag.Int("rate", parameter.HandTrackingRate, "Synthetic sample rate in Hz")
	dropEvery := flag.Duration("dropout-every", 0, "Interval between synthetic no-hand periods, 0 disables")
	dropFor := flag.Duration("dropout", 500*time.Millisecond, "Length of each synthetic no-hand period")
	record := flag.String("record", "", "Write the synthetic stream to this JSONL file instead of sending it")
	duration := flag.Duration("duration", 10*time.Second, "Recording length when -record is set")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	if _, err := logging.Init(logging.Options{Level: *logLevel, Writer: os.Stderr}); err != nil {
		fmt.Fprintf(os.Stderr, "hand-feed: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	synth := handfeed.SyntheticConfig{
		Seed:         *seed,
		Rate:         *rate,
		DropoutEvery: *dropEvery,
		Dropout:      *dropFor,
	}

	var err error
	if *record != "" {
		err = recordSynthetic(*record, synth, *duration)
	} else {
		err = feed(ctx, *url, *replay, handfeed.ReplayOptions{Loop: *loop, Speed: *speed}, synth)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "hand-feed: %v\n", err)
		os.Exit(1)
	}
}

func feed(ctx context.Context, url, replay string, ropts handfeed.ReplayOptions, synth handfeed.SyntheticConfig) error {
	var src engine.LandmarkSource
	if replay != "" {
		r, err := handfeed.OpenReplay(replay, ropts)
		if err != nil {
			return err
		}
		src = r
	} else {
		src = handfeed.NewSynthetic(synth)
	}

	feeder, err := handfeed.Dial(ctx, url, src)
	if err != nil {
		src.Close()
		return err
	}
	defer feeder.Close()

	start := time.Now()
	err = feeder.Run(ctx)
	logging.Info("feed ended", "sent", feeder.Sent(), "elapsed", time.Since(start).Round(time.Millisecond))
	return err
}

// recordSynthetic writes duration worth of synthetic samples without pacing
func recordSynthetic(path string, cfg handfeed.SyntheticConfig, duration time.Duration) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	synth := handfeed.NewSynthetic(cfg)
	defer synth.Close()

	if cfg.Rate <= 0 {
		cfg.Rate = parameter.HandTrackingRate
	}
	w := protocol.NewWriter(out)
	n := int(duration.Seconds() * float64(cfg.Rate))
	for i := 0; i < n; i++ {
		ts := float64(i) / float64(cfg.Rate)
		if err := w.Write(synth.Sample(ts), protocol.Header{Seq: uint64(i + 1), TS: ts}); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	logging.Info("recording written", "path", path, "frames", n)
	return out.Close()
}
