// Package control exposes the UI command surface over REST and accepts
// landmark frames from remote hand trackers over websocket.
package control

import (
	"net"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/lixenwraith/particle-morph/core"
	"github.com/lixenwraith/particle-morph/engine"
	"github.com/lixenwraith/particle-morph/gesture"
	"github.com/lixenwraith/particle-morph/logging"
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/protocol"
	"github.com/lixenwraith/particle-morph/shape"
)

// HeaderClientID carries the feeder's session id on the websocket upgrade
const HeaderClientID = protocol.HeaderClientID

// Target is the simulation surface the server drives
type Target interface {
	Submit(engine.Command) bool
	Snapshot() *engine.Snapshot
	Landmarks() *engine.Mailbox[gesture.Frame]
}

// Stats reports ingest counters
type Stats struct {
	Sessions int64  `json:"sessions"`
	Received uint64 `json:"received"`
	Rejected uint64 `json:"rejected"`
}

// Server is the fiber app plus ingest counters
type Server struct {
	app    *fiber.App
	target Target

	sessions atomic.Int64
	received atomic.Uint64
	rejected atomic.Uint64

	done chan error
}

// New builds the routes, nothing listens until Start or Serve
func New(target Target) *Server {
	s := &Server{
		target: target,
		done:   make(chan error, 1),
	}

	app := fiber.New(fiber.Config{
		AppName:               "particle-morph",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())

	// API routes
	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/stats", s.handleStats)
	api.Post("/shape/:kind", s.handleShape)
	api.Post("/zoom/:dir", s.handleZoom)
	api.Post("/rotate/:dir", s.handleRotate)
	api.Post("/scroll/:dir", s.handleScroll)
	api.Post("/debug/toggle", s.handleDebugToggle)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		id := c.Get(HeaderClientID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Locals("session", id)
		return c.Next()
	})

	app.Get("/ws/landmarks", websocket.New(s.handleLandmarks))

	s.app = app
	return s
}

// App returns the fiber app, for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Start listens on addr in the background, the result is reported on Done
func (s *Server) Start(addr string) {
	core.Go(func() {
		logging.Info("control listening", "addr", addr)
		s.done <- s.app.Listen(addr)
	})
}

// Serve runs on an existing listener in the background
func (s *Server) Serve(ln net.Listener) {
	core.Go(func() {
		logging.Info("control listening", "addr", ln.Addr().String())
		s.done <- s.app.Listener(ln)
	})
}

// Done yields the listener result once it returns
func (s *Server) Done() <-chan error {
	return s.done
}

// Shutdown closes listeners and open websockets
func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(parameter.ControlShutdownTimeout)
}

// Stats returns a copy of the ingest counters
func (s *Server) Stats() Stats {
	return Stats{
		Sessions: s.sessions.Load(),
		Received: s.received.Load(),
		Rejected: s.rejected.Load(),
	}
}

func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(s.target.Snapshot())
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	return c.JSON(s.Stats())
}

// submit queues cmd, 503 when the frame task is behind
func (s *Server) submit(c *fiber.Ctx, cmd engine.Command) error {
	if !s.target.Submit(cmd) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "command queue full"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func (s *Server) handleShape(c *fiber.Ctx) error {
	k, err := shape.ParseKind(c.Params("kind"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	return s.submit(c, engine.SelectShape(k))
}

func (s *Server) handleZoom(c *fiber.Ctx) error {
	switch c.Params("dir") {
	case "in":
		return s.submit(c, engine.ZoomIn())
	case "out":
		return s.submit(c, engine.ZoomOut())
	default:
		return badRequest(c, "zoom direction must be in or out")
	}
}

func (s *Server) handleRotate(c *fiber.Ctx) error {
	switch c.Params("dir") {
	case "left":
		return s.submit(c, engine.RotateLeft())
	case "right":
		return s.submit(c, engine.RotateRight())
	default:
		return badRequest(c, "rotate direction must be left or right")
	}
}

func (s *Server) handleScroll(c *fiber.Ctx) error {
	switch c.Params("dir") {
	case "up":
		return s.submit(c, engine.Scroll(-1))
	case "down":
		return s.submit(c, engine.Scroll(1))
	default:
		return badRequest(c, "scroll direction must be up or down")
	}
}

func (s *Server) handleDebugToggle(c *fiber.Ctx) error {
	return s.submit(c, engine.ToggleDebug())
}

// handleLandmarks offers every received frame to the landmark mailbox
func (s *Server) handleLandmarks(c *websocket.Conn) {
	session, _ := c.Locals("session").(string)
	log := logging.With("session", session)

	s.sessions.Add(1)
	log.Info("landmark feed connected", "remote", c.RemoteAddr().String())

	mailbox := s.target.Landmarks()
	defer func() {
		// The field stops reacting once the feed goes away
		mailbox.Offer(gesture.NoHand)
		s.sessions.Add(-1)
		log.Info("landmark feed disconnected")
	}()

	c.SetReadLimit(parameter.LandmarkMessageLimit)

	// Read loop
	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			log.Debug("landmark feed read ended", "error", err)
			return
		}

		frame, _, err := protocol.Decode(data)
		if err != nil {
			s.rejected.Add(1)
			log.Debug("malformed landmark frame", "error", err)
			frame = gesture.NoHand
		} else {
			s.received.Add(1)
		}
		mailbox.Offer(frame)
	}
}
