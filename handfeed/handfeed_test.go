package handfeed

import (
	"context"
	"io"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/particle-morph/control"
	"github.com/lixenwraith/particle-morph/engine"
	"github.com/lixenwraith/particle-morph/gesture"
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/protocol"
)

func tips(t *testing.T, f gesture.Frame) (thumb, index gesture.Landmark) {
	t.Helper()
	require.Len(t, f.Hands, 1)
	require.Len(t, f.Hands[0], parameter.LandmarkCount)
	return f.Hands[0][parameter.LandmarkThumbTip], f.Hands[0][parameter.LandmarkIndexTip]
}

func TestSynthetic_HandLayout(t *testing.T) {
	s := NewSynthetic(SyntheticConfig{Seed: 42})
	defer s.Close()

	for i := 0; i < 300; i++ {
		f := s.Sample(float64(i) * 0.1)
		require.True(t, f.Detected())
		for _, lm := range f.Hands[0] {
			assert.GreaterOrEqual(t, lm.X, 0.0)
			assert.LessOrEqual(t, lm.X, 1.0)
			assert.GreaterOrEqual(t, lm.Y, 0.0)
			assert.LessOrEqual(t, lm.Y, 1.0)
		}

		thumb, index := tips(t, f)
		pinch := math.Hypot(thumb.X-index.X, thumb.Y-index.Y)
		assert.InDelta(t, (parameter.SyntheticPinchMin+parameter.SyntheticPinchMax)/2, pinch,
			(parameter.SyntheticPinchMax-parameter.SyntheticPinchMin)/2+1e-9)
	}
}

func TestSynthetic_DeterministicAndSmooth(t *testing.T) {
	a := NewSynthetic(SyntheticConfig{Seed: 9})
	b := NewSynthetic(SyntheticConfig{Seed: 9})
	defer a.Close()
	defer b.Close()

	step := 1.0 / parameter.HandTrackingRate
	_, prev := tips(t, a.Sample(0))
	for i := 1; i < 200; i++ {
		ts := float64(i) * step
		assert.Equal(t, a.Sample(ts), b.Sample(ts))

		_, index := tips(t, a.Sample(ts))
		assert.Less(t, math.Hypot(index.X-prev.X, index.Y-prev.Y), 0.05, "jump at sample %d", i)
		prev = index
	}
}

func TestSynthetic_Dropout(t *testing.T) {
	s := NewSynthetic(SyntheticConfig{
		Seed:         1,
		DropoutEvery: 2 * time.Second,
		Dropout:      500 * time.Millisecond,
	})
	defer s.Close()

	assert.True(t, s.Sample(0.5).Detected())
	assert.False(t, s.Sample(1.6).Detected())
	assert.True(t, s.Sample(2.1).Detected())
	assert.False(t, s.Sample(3.9).Detected())
}

func TestSynthetic_NextAndClose(t *testing.T) {
	s := NewSynthetic(SyntheticConfig{Seed: 5, Rate: 200})
	ctx := context.Background()

	f, err := s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.Sample(0), f)

	f, err = s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.Sample(1.0/200), f)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	_, err = s.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestSynthetic_NextCancelled(t *testing.T) {
	s := NewSynthetic(SyntheticConfig{Rate: 1})
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f, err := s.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, f.Detected())
}

func handAt(x float64) gesture.Frame {
	lm := make([]gesture.Landmark, parameter.LandmarkCount)
	lm[parameter.LandmarkThumbTip] = gesture.Landmark{X: x + 0.05, Y: 0.5}
	lm[parameter.LandmarkIndexTip] = gesture.Landmark{X: x, Y: 0.5}
	return gesture.Frame{Hands: [][]gesture.Landmark{lm}}
}

func writeRecording(t *testing.T, frames ...gesture.Frame) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hand.jsonl")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	w := protocol.NewWriter(file)
	for i, f := range frames {
		require.NoError(t, w.Write(f, protocol.Header{Seq: uint64(i + 1), TS: float64(i) * 0.01}))
	}
	require.NoError(t, w.Flush())
	return path
}

func indexX(t *testing.T, f gesture.Frame) float64 {
	t.Helper()
	_, index := tips(t, f)
	return index.X
}

func TestReplay_PlaysInOrder(t *testing.T) {
	path := writeRecording(t, handAt(0.2), gesture.NoHand, handAt(0.4))
	r, err := OpenReplay(path, ReplayOptions{})
	require.NoError(t, err)
	defer r.Close()

	ctx := context.Background()
	f, err := r.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.2, indexX(t, f))

	f, err = r.Next(ctx)
	require.NoError(t, err)
	assert.False(t, f.Detected())

	f, err = r.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.4, indexX(t, f))

	_, err = r.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReplay_Loop(t *testing.T) {
	path := writeRecording(t, handAt(0.1), handAt(0.3))
	r, err := OpenReplay(path, ReplayOptions{Loop: true, Speed: 10})
	require.NoError(t, err)
	defer r.Close()

	var xs []float64
	for i := 0; i < 5; i++ {
		f, err := r.Next(context.Background())
		require.NoError(t, err)
		xs = append(xs, indexX(t, f))
	}
	assert.Equal(t, []float64{0.1, 0.3, 0.1, 0.3, 0.1}, xs)
}

func TestReplay_LoopEmptyEnds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0o644))

	r, err := OpenReplay(path, ReplayOptions{Loop: true})
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestReplay_MalformedLineIsNoHand(t *testing.T) {
	good, err := protocol.Encode(handAt(0.6), protocol.Header{Seq: 2})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("not json\n"+string(good)+"\n"), 0o644))

	r, err := OpenReplay(path, ReplayOptions{})
	require.NoError(t, err)
	defer r.Close()

	f, err := r.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, f.Detected())

	f, err = r.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.6, indexX(t, f))
}

func TestReplay_PacedAndCancellable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slow.jsonl")
	first, _ := protocol.Encode(handAt(0.2), protocol.Header{Seq: 1, TS: 100})
	second, _ := protocol.Encode(handAt(0.3), protocol.Header{Seq: 2, TS: 100.5})
	require.NoError(t, os.WriteFile(path, []byte(string(first)+"\n"+string(second)+"\n"), 0o644))

	r, err := OpenReplay(path, ReplayOptions{})
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err = r.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestOpenReplay_Missing(t *testing.T) {
	_, err := OpenReplay(filepath.Join(t.TempDir(), "nope.jsonl"), ReplayOptions{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// listSource yields fixed frames then io.EOF
type listSource struct {
	frames []gesture.Frame
	closed atomic.Bool
}

func (s *listSource) Next(ctx context.Context) (gesture.Frame, error) {
	if err := ctx.Err(); err != nil {
		return gesture.NoHand, err
	}
	if len(s.frames) == 0 {
		return gesture.NoHand, io.EOF
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, nil
}

func (s *listSource) Close() error {
	s.closed.Store(true)
	return nil
}

func TestFeeder_StreamsFrames(t *testing.T) {
	type received struct {
		frame gesture.Frame
		hdr   protocol.Header
	}
	got := make(chan received, 8)
	clientID := make(chan string, 1)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID <- r.Header.Get(protocol.HeaderClientID)
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				return
			}
			f, hdr, err := protocol.Decode(data)
			if err == nil {
				got <- received{f, hdr}
			}
		}
	}))
	defer srv.Close()

	src := &listSource{frames: []gesture.Frame{handAt(0.1), gesture.NoHand, handAt(0.5)}}
	feeder, err := Dial(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), src)
	require.NoError(t, err)

	require.NoError(t, feeder.Run(context.Background()))
	assert.Equal(t, uint64(3), feeder.Sent())
	assert.Equal(t, feeder.ID(), <-clientID)

	for i, want := range []bool{true, false, true} {
		select {
		case r := <-got:
			assert.Equal(t, uint64(i+1), r.hdr.Seq)
			assert.Equal(t, want, r.frame.Detected())
		case <-time.After(2 * time.Second):
			t.Fatalf("Timed out waiting for frame %d", i+1)
		}
	}

	require.NoError(t, feeder.Close())
	assert.True(t, src.closed.Load())
}

func TestFeeder_IntoControlServer(t *testing.T) {
	cfg := engine.DefaultSimulationConfig()
	cfg.Particles = 50
	sim := engine.NewSimulation(cfg)
	srv := control.New(sim)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv.Serve(ln)
	defer srv.Shutdown()

	src := &listSource{frames: []gesture.Frame{handAt(0.25)}}
	feeder, err := Dial(context.Background(), "ws://"+ln.Addr().String()+"/ws/landmarks", src)
	require.NoError(t, err)
	require.NoError(t, feeder.Run(context.Background()))

	assert.Eventually(t, func() bool {
		snap := sim.Tick(0).Snapshot
		return snap.HandDetected && snap.InputX == 0.25
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, feeder.Close())
	assert.Eventually(t, func() bool {
		return !sim.Tick(0).Snapshot.HandDetected
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFeeder_DialRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	_, err = Dial(context.Background(), "ws://"+addr+"/ws/landmarks", &listSource{})
	assert.Error(t, err)
}
