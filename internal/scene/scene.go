// Package scene is the retained list of point renderables the choreography
// writes to and the renderer reads from.
package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Blend selects how a point is composited.
type Blend uint8

const (
	BlendNormal Blend = iota
	BlendAdditive
)

// Point is a sphere-like renderable.
type Point struct {
	Pos     mgl64.Vec3
	Radius  float64
	Color   color.RGBA
	Opacity float64
	Blend   Blend
}

// Handle identifies a point inside a Scene.
type Handle int

// Scene stores points in creation order.
type Scene struct {
	points []Point
}

// New returns an empty scene with room for n points.
func New(n int) *Scene {
	if n < 0 {
		n = 0
	}
	return &Scene{points: make([]Point, 0, n)}
}

// AddPoint registers p and returns its handle.
func (s *Scene) AddPoint(p Point) Handle {
	s.points = append(s.points, p)
	return Handle(len(s.points) - 1)
}

// SetPosition moves the point behind h. Unknown handles are ignored.
func (s *Scene) SetPosition(h Handle, pos mgl64.Vec3) {
	if !s.valid(h) {
		return
	}
	s.points[h].Pos = pos
}

// Point returns a copy of the point behind h.
func (s *Scene) Point(h Handle) (Point, bool) {
	if !s.valid(h) {
		return Point{}, false
	}
	return s.points[h], true
}

// Points exposes the backing slice for read-only iteration.
func (s *Scene) Points() []Point { return s.points }

// Len returns the number of points.
func (s *Scene) Len() int { return len(s.points) }

func (s *Scene) valid(h Handle) bool { return h >= 0 && int(h) < len(s.points) }
