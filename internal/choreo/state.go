package choreo

import (
	"fmt"
	"math"

	"particle-globe/internal/camera"

	"github.com/go-gl/mathgl/mgl64"
)

// Phase is the coarse stage of the choreography.
type Phase uint8

const (
	// Scattered covers idle scatter and hover formations.
	Scattered Phase = iota
	// Converging is terminal: particles follow the rotating sphere.
	Converging
)

func (p Phase) String() string {
	if p == Converging {
		return "converging"
	}
	return "scattered"
}

// State is the mutable input-driven state read by every frame.
type State struct {
	Phase        Phase
	Progress     float64
	TargetDepth  float64
	FinalDepth   float64
	IntroVisible bool
	ScrollLocked bool

	Pointer          mgl64.Vec2 // NDC
	ViewportW        int
	ViewportH        int
	Dragging         bool
	dragX, dragY     float64
	Rotation         mgl64.Vec3 // radians, applied X then Y then Z
	AutoRotateSpeed  float64
	Cursor           mgl64.Vec3
	SphereCenter     mgl64.Vec3
	Frame            uint64
	ConvergedAtFrame uint64

	// Last client pointer position, re-mapped to NDC on resize.
	pointerX, pointerY float64
	pointerSeen        bool
}

// Converged reports whether the one-way transition has happened.
func (s *State) Converged() bool { return s.Phase == Converging }

// DepthForProgress maps scroll progress to the camera's target depth.
func DepthForProgress(progress float64, cfg Config) float64 {
	return cfg.StartDepth - progress*cfg.ScrollTravel
}

// RotationMatrix returns the sphere orientation for an XYZ Euler triple.
func RotationMatrix(r mgl64.Vec3) mgl64.Mat3 {
	return mgl64.Rotate3DX(r.X()).Mul3(mgl64.Rotate3DY(r.Y())).Mul3(mgl64.Rotate3DZ(r.Z()))
}

// Event is an input message. Events are queued by the host and applied at
// the start of the next frame; applying one only mutates state.
type Event interface {
	apply(e *Engine)
}

// Scroll reports the page scroll offset out of the scrollable length.
type Scroll struct {
	Offset float64
	Max    float64
}

func (ev Scroll) apply(e *Engine) {
	if e.state.Converged() || e.state.ScrollLocked {
		return
	}
	if !finite(ev.Offset) || !finite(ev.Max) {
		e.warnOnce("scroll", fmt.Sprintf("ignoring non-finite scroll offset %v of %v", ev.Offset, ev.Max))
		return
	}
	progress := 0.0
	if ev.Max > 0 {
		progress = mgl64.Clamp(ev.Offset/ev.Max, 0, 1)
	}
	e.state.Progress = progress
	e.state.TargetDepth = DepthForProgress(progress, e.cfg)
	e.state.IntroVisible = progress <= e.cfg.IntroHideProgress
	if progress > e.cfg.TriggerProgress {
		e.converge()
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// PointerMove reports the pointer position in window coordinates.
type PointerMove struct{ X, Y float64 }

func (ev PointerMove) apply(e *Engine) {
	e.state.pointerX, e.state.pointerY, e.state.pointerSeen = ev.X, ev.Y, true
	e.state.Pointer = camera.ClientToNDC(ev.X, ev.Y, e.state.ViewportW, e.state.ViewportH)
	if !e.state.Converged() || !e.state.Dragging {
		return
	}
	dx := ev.X - e.state.dragX
	dy := ev.Y - e.state.dragY
	e.state.Rotation[1] += dx * e.cfg.DragSensitivity
	e.state.Rotation[0] += dy * e.cfg.DragSensitivity
	e.state.dragX, e.state.dragY = ev.X, ev.Y
}

// PointerDown starts a sphere drag once converged.
type PointerDown struct{ X, Y float64 }

func (ev PointerDown) apply(e *Engine) {
	if !e.state.Converged() {
		return
	}
	e.state.Dragging = true
	e.state.dragX, e.state.dragY = ev.X, ev.Y
	e.state.AutoRotateSpeed = 0
}

// PointerUp ends a drag.
type PointerUp struct{}

func (PointerUp) apply(e *Engine) { e.state.Dragging = false }

// Resize reports a new viewport size in pixels.
type Resize struct{ W, H int }

func (ev Resize) apply(e *Engine) {
	if ev.W <= 0 || ev.H <= 0 {
		return
	}
	e.state.ViewportW, e.state.ViewportH = ev.W, ev.H
	e.cam.SetAspect(ev.W, ev.H)
	if e.state.pointerSeen {
		e.state.Pointer = camera.ClientToNDC(e.state.pointerX, e.state.pointerY, ev.W, ev.H)
	}
}
