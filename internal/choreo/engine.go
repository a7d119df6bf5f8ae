// Package choreo drives the particle choreography: scattered clusters that
// form shapes on hover and, once the scroll passes the trigger, converge for
// good onto a rotating sphere colored by the surface mask.
//
// Everything runs on one goroutine. Hosts queue input with Post and call
// Step once per frame; events are applied at the start of the step.
package choreo

import (
	"fmt"
	"image/color"
	"log"

	"particle-globe/internal/camera"
	"particle-globe/internal/scene"
	"particle-globe/internal/surface"
	"particle-globe/pkg/core"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	cursorRadius  = 0.03
	cursorOpacity = 0.95
	glowRadius    = 0.11
	glowOpacity   = 0.35
)

// Engine owns the groups, the camera and the choreography state.
type Engine struct {
	cfg    Config
	cam    *camera.Camera
	scene  Scene
	rng    *core.RNG
	logger *log.Logger

	groups  []*Group
	state   State
	pending []Event
	stats   []AssignStats
	warned  map[string]bool

	cursor     scene.Handle
	cursorGlow scene.Handle
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger routes fallback warnings to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCamera replaces the default camera.
func WithCamera(c *camera.Camera) Option {
	return func(e *Engine) {
		if c != nil {
			e.cam = c
		}
	}
}

// New builds an engine with the given groups. sc may be nil for headless
// use. Groups are assigned sphere targets in the order given.
func New(cfg Config, specs []GroupSpec, sc Scene, opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:    cfg,
		cam:    camera.New(1, cfg.StartDepth),
		scene:  sc,
		rng:    core.NewRNG(cfg.Seed),
		logger: log.Default(),
		warned: map[string]bool{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.cam.SetDepth(cfg.StartDepth)

	for _, spec := range specs {
		g, err := NewGroup(spec, cfg, e.rng, sc)
		if err != nil {
			return nil, err
		}
		e.groups = append(e.groups, g)
	}

	e.state = State{
		Phase:           Scattered,
		TargetDepth:     cfg.StartDepth,
		IntroVisible:    true,
		AutoRotateSpeed: cfg.AutoRotateStart,
	}
	if sc != nil {
		white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		e.cursor = sc.AddPoint(scene.Point{Radius: cursorRadius, Color: white, Opacity: cursorOpacity})
		e.cursorGlow = sc.AddPoint(scene.Point{Radius: glowRadius, Color: white, Opacity: glowOpacity, Blend: scene.BlendAdditive})
	}
	return e, nil
}

// Post queues an input event for the next Step.
func (e *Engine) Post(ev Event) {
	if ev == nil {
		return
	}
	e.pending = append(e.pending, ev)
}

// Step advances the choreography by one frame.
func (e *Engine) Step() {
	for _, ev := range e.pending {
		ev.apply(e)
	}
	e.pending = e.pending[:0]

	s := &e.state
	s.Frame++
	if s.Converged() {
		s.TargetDepth = s.FinalDepth
	}
	depth := e.cam.Depth()
	e.cam.SetDepth(depth + (s.TargetDepth-depth)*e.cfg.CameraLerp)
	depth = e.cam.Depth()

	if !s.Converged() {
		if p, ok := e.cam.Unproject(s.Pointer, depth-e.cfg.CursorOffset); ok {
			s.Cursor = p
		} else {
			e.warnOnce("unproject", "pointer ray parallel to cursor plane; keeping last cursor position")
		}
		for _, g := range e.groups {
			g.Hovered = IsHovered(g.Anchor, e.cam, s.Pointer, e.cfg)
			g.step(nil, e.cfg.FollowLerp)
		}
	} else {
		s.SphereCenter = mgl64.Vec3{0, 0, depth - e.cfg.CursorOffset}
		s.Cursor = s.SphereCenter
		if !s.Dragging {
			s.Rotation[1] += s.AutoRotateSpeed
			s.AutoRotateSpeed = min(s.AutoRotateSpeed+e.cfg.AutoRotateAccel, e.cfg.AutoRotateMax)
		}
		frame := &sphereFrame{center: s.SphereCenter, rotation: RotationMatrix(s.Rotation)}
		for _, g := range e.groups {
			g.Hovered = false
			g.step(frame, e.cfg.ConvergeLerp)
		}
	}
	e.sync()
}

// converge performs the one-way transition to sphere mode.
func (e *Engine) converge() {
	s := &e.state
	if s.Converged() {
		return
	}
	s.Phase = Converging
	s.ConvergedAtFrame = s.Frame
	s.FinalDepth = e.cam.Depth()
	s.TargetDepth = s.FinalDepth
	s.IntroVisible = false
	s.ScrollLocked = true
	s.Dragging = false

	total := 0
	for _, g := range e.groups {
		total += g.Len()
	}
	pools := surface.Pools(surface.Targets(total, e.cfg.SphereRadius, e.cfg.Surface))
	for _, c := range surface.Categories {
		core.Shuffle(e.rng, pools[c])
	}
	e.stats = Assign(e.groups, pools, mgl64.Vec3{0, 0, e.cfg.SphereRadius})
	for _, st := range e.stats {
		if st.Fallback > 0 {
			e.warnOnce("fallback", fmt.Sprintf("group %s: no sphere targets available, %d particles use the fallback point", st.Group, st.Fallback))
		}
		if st.Repeated > 0 {
			e.warnOnce("repeat:"+st.Group, fmt.Sprintf("group %s: target pools exhausted, repeating last target for %d particles", st.Group, st.Repeated))
		}
	}
}

func (e *Engine) sync() {
	if e.scene == nil {
		return
	}
	for _, g := range e.groups {
		g.sync(e.scene)
	}
	e.scene.SetPosition(e.cursor, e.state.Cursor)
	e.scene.SetPosition(e.cursorGlow, e.state.Cursor)
}

func (e *Engine) warnOnce(kind, msg string) {
	if e.warned[kind] {
		return
	}
	e.warned[kind] = true
	e.logger.Printf("choreo: %s", msg)
}

// State returns a copy of the current state.
func (e *Engine) State() State { return e.state }

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Camera exposes the camera for projection by renderers.
func (e *Engine) Camera() *camera.Camera { return e.cam }

// Groups returns the groups in assignment order.
func (e *Engine) Groups() []*Group { return e.groups }

// Stats returns the assignment statistics, empty before convergence.
func (e *Engine) Stats() []AssignStats { return e.stats }

// IntroVisible reports whether the intro caption should be shown.
func (e *Engine) IntroVisible() bool { return e.state.IntroVisible }

// ScrollLocked reports whether the host should stop scrolling the page.
func (e *Engine) ScrollLocked() bool { return e.state.ScrollLocked }

// Converged reports whether the sphere phase has started.
func (e *Engine) Converged() bool { return e.state.Converged() }
