package handfeed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/particle-morph/engine"
	"github.com/lixenwraith/particle-morph/logging"
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/protocol"
)

// Feeder streams a landmark source to a remote ingest endpoint
type Feeder struct {
	id     string
	source engine.LandmarkSource
	ws     *websocket.Conn
	wsMu   sync.Mutex

	start time.Time
	sent  atomic.Uint64

	closeOnce sync.Once
	closeErr  error
}

// Dial connects to url, the ws:// address of a /ws/landmarks route
func Dial(ctx context.Context, url string, source engine.LandmarkSource) (*Feeder, error) {
	id := uuid.NewString()
	header := http.Header{}
	header.Set(protocol.HeaderClientID, id)

	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, fmt.Errorf("handfeed: dial %s: %w", url, err)
	}
	logging.Info("feeder connected", "url", url, "session", id)

	return &Feeder{
		id:     id,
		source: source,
		ws:     ws,
		start:  time.Now(),
	}, nil
}

// ID returns the session id sent on upgrade
func (f *Feeder) ID() string {
	return f.id
}

// Sent returns the number of frames written
func (f *Feeder) Sent() uint64 {
	return f.sent.Load()
}

// Run forwards frames until the source ends or ctx is done
// Source exhaustion and cancellation return nil
func (f *Feeder) Run(ctx context.Context) error {
	for {
		frame, err := f.source.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("handfeed: read source: %w", err)
		}

		hdr := protocol.Header{
			Seq: f.sent.Load() + 1,
			TS:  time.Since(f.start).Seconds(),
		}
		data, err := protocol.Encode(frame, hdr)
		if err != nil {
			return err
		}

		f.wsMu.Lock()
		f.ws.SetWriteDeadline(time.Now().Add(parameter.FeederWriteTimeout))
		err = f.ws.WriteMessage(websocket.TextMessage, data)
		f.wsMu.Unlock()
		if err != nil {
			return fmt.Errorf("handfeed: send frame %d: %w", hdr.Seq, err)
		}
		f.sent.Add(1)
	}
}

// Close sends a close frame, then releases the connection and the source
func (f *Feeder) Close() error {
	f.closeOnce.Do(func() {
		f.wsMu.Lock()
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = f.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(parameter.FeederCloseGrace))
		wsErr := f.ws.Close()
		f.wsMu.Unlock()

		f.closeErr = errors.Join(wsErr, f.source.Close())
		logging.Info("feeder closed", "session", f.id, "sent", f.sent.Load())
	})
	return f.closeErr
}
