package engine

import (
	"math/rand/v2"
	"sync/atomic"

	"github.com/lixenwraith/particle-morph/camera"
	"github.com/lixenwraith/particle-morph/field"
	"github.com/lixenwraith/particle-morph/gesture"
	"github.com/lixenwraith/particle-morph/logging"
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/shape"
)

// SimulationConfig sets the initial state of a Simulation
type SimulationConfig struct {
	Particles int
	Shape     shape.Kind
	Zoom      float64

	// Seed fixes target generation, zero seeds randomly
	Seed      uint64
	Debug     bool
	Display   Display
	QueueSize int
}

// DefaultSimulationConfig returns the stock startup state
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Particles: parameter.ParticleCount,
		Shape:     shape.Saturn,
		Zoom:      parameter.ZoomDefault,
		Display: Display{
			Tint:       parameter.PointTint,
			PointAlpha: parameter.PointAlpha,
		},
		QueueSize: parameter.CommandQueueSize,
	}
}

// Snapshot is an immutable copy of the scalar state after a tick
type Snapshot struct {
	Frame         uint64     `json:"frame"`
	Elapsed       float64    `json:"elapsed"`
	Shape         shape.Kind `json:"shape"`
	Particles     int        `json:"particles"`
	Zoom          float64    `json:"zoom"`
	Distance      float64    `json:"distance"`
	Rotation      float64    `json:"rotation"`
	GroupRotation float64    `json:"group_rotation"`
	HandDetected  bool       `json:"hand_detected"`
	InputX        float64    `json:"input_x"`
	InputY        float64    `json:"input_y"`
	Debug         bool       `json:"debug"`
	Display       Display    `json:"display"`

	// LandmarkFrames counts frames consumed by the interpreter
	LandmarkFrames uint64 `json:"landmark_frames"`
	// CoalescedFrames counts frames replaced before the frame task saw them
	CoalescedFrames uint64 `json:"coalesced_frames"`
}

// Input returns the tracked fingertip as an InputPoint
func (s *Snapshot) Input() gesture.InputPoint {
	return gesture.InputPoint{X: s.InputX, Y: s.InputY, Present: s.HandDetected}
}

// Frame is the presenter view of one tick, valid until the next Tick
type Frame struct {
	// Live is the interleaved xyz particle buffer, read-only
	Live          []float32
	Distance      float64
	GroupRotation float64
	Snapshot      *Snapshot
}

// Simulation owns the interpreter, camera and field, all mutated only from Tick
type Simulation struct {
	interp *gesture.Interpreter
	rig    *camera.Rig
	field  *field.Field

	landmarks *Mailbox[gesture.Frame]
	commands  chan Command

	input          gesture.InputPoint
	debug          bool
	display        Display
	frame          uint64
	landmarkFrames uint64

	onShape func(shape.Kind)

	snapshot atomic.Pointer[Snapshot]
	view     Frame
}

// NewSimulation builds the initial state, live particles start on the first target
func NewSimulation(cfg SimulationConfig) *Simulation {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = parameter.CommandQueueSize
	}
	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	}

	interp := gesture.NewInterpreter(cfg.Zoom)
	s := &Simulation{
		interp:    interp,
		rig:       camera.NewRig(interp.Zoom()),
		field:     field.New(cfg.Particles, cfg.Shape, rng),
		landmarks: NewMailbox[gesture.Frame](),
		commands:  make(chan Command, cfg.QueueSize),
		debug:     cfg.Debug,
		display:   cfg.Display,
	}
	s.publish(0)
	return s
}

// Landmarks returns the mailbox hand tracking producers offer frames to
func (s *Simulation) Landmarks() *Mailbox[gesture.Frame] {
	return s.landmarks
}

// Submit queues a command without blocking, false when the queue is full
func (s *Simulation) Submit(c Command) bool {
	select {
	case s.commands <- c:
		return true
	default:
		return false
	}
}

// OnShapeChange registers a hook run on the frame task after a shape switch
// Must be called before ticking starts
func (s *Simulation) OnShapeChange(fn func(shape.Kind)) {
	s.onShape = fn
}

// Snapshot returns the state published by the latest tick, safe from any goroutine
func (s *Simulation) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Tick applies queued commands and the latest landmark frame, then advances
// camera and field by one frame. Never blocks
func (s *Simulation) Tick(elapsed float64) *Frame {
	s.drainCommands()

	// Reuse the previous input point when the tracker has nothing new
	if f, ok := s.landmarks.Poll(); ok {
		s.input = s.interp.Process(f)
		s.landmarkFrames++
	}

	distance := s.rig.Update(s.interp.Zoom())
	s.field.Step(field.StepInput{
		Rotation: s.interp.Rotation(),
		Input:    s.input,
		Elapsed:  elapsed,
	})
	s.frame++

	snap := s.publish(elapsed)
	s.view = Frame{
		Live:          s.field.Live(),
		Distance:      distance,
		GroupRotation: s.field.GroupRotation(),
		Snapshot:      snap,
	}
	return &s.view
}

func (s *Simulation) drainCommands() {
drain:
	for {
		select {
		case c := <-s.commands:
			s.apply(c)
		default:
			break drain
		}
	}
}

func (s *Simulation) apply(c Command) {
	switch c.Type {
	case CmdSelectShape:
		if int(c.Shape) >= len(shape.Kinds()) {
			logging.Warn("ignoring unknown shape", "kind", c.Shape)
			return
		}
		if c.Shape == s.field.Shape() {
			return
		}
		s.field.SetShape(c.Shape)
		logging.Debug("shape selected", "shape", c.Shape)
		if s.onShape != nil {
			s.onShape(c.Shape)
		}
	case CmdZoom:
		s.interp.AddZoom(c.Delta)
	case CmdRotate:
		s.interp.AddRotation(c.Delta)
	case CmdToggleDebug:
		s.debug = !s.debug
	case CmdSetDebug:
		s.debug = c.Flag
	case CmdSetDisplay:
		if c.Display.Tint != "" {
			s.display.Tint = c.Display.Tint
		}
		if c.Display.PointAlpha > 0 {
			s.display.PointAlpha = c.Display.PointAlpha
		}
	}
}

func (s *Simulation) publish(elapsed float64) *Snapshot {
	snap := &Snapshot{
		Frame:           s.frame,
		Elapsed:         elapsed,
		Shape:           s.field.Shape(),
		Particles:       s.field.Count(),
		Zoom:            s.interp.Zoom(),
		Distance:        s.rig.Distance(),
		Rotation:        s.interp.Rotation(),
		GroupRotation:   s.field.GroupRotation(),
		HandDetected:    s.input.Present,
		InputX:          s.input.X,
		InputY:          s.input.Y,
		Debug:           s.debug,
		Display:         s.display,
		LandmarkFrames:  s.landmarkFrames,
		CoalescedFrames: s.landmarks.Replaced(),
	}
	s.snapshot.Store(snap)
	return snap
}
