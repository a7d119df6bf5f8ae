// Package camera implements the perspective camera the choreography reads
// from: a dolly along the Z axis that always looks toward -Z.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera positioned on the Z axis looking at -Z.
type Camera struct {
	FovY   float64 // degrees
	Aspect float64
	Near   float64
	Far    float64

	Position mgl64.Vec3
}

// New returns a camera with the default lens at the given depth.
func New(aspect, depth float64) *Camera {
	if aspect <= 0 {
		aspect = 1
	}
	return &Camera{
		FovY:     75,
		Aspect:   aspect,
		Near:     0.1,
		Far:      1000,
		Position: mgl64.Vec3{0, 0, depth},
	}
}

// SetAspect updates the aspect ratio from a viewport size.
func (c *Camera) SetAspect(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.Aspect = float64(w) / float64(h)
}

// Depth reports the camera's Z coordinate.
func (c *Camera) Depth() float64 { return c.Position.Z() }

// SetDepth moves the camera along Z.
func (c *Camera) SetDepth(z float64) { c.Position[2] = z }

// ViewProjection returns the combined projection * view matrix.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	proj := mgl64.Perspective(mgl64.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
	view := mgl64.LookAtV(c.Position, c.Position.Add(mgl64.Vec3{0, 0, -1}), mgl64.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

// Project maps a world position to normalized device coordinates. It
// reports false for points on or behind the camera plane.
func (c *Camera) Project(world mgl64.Vec3) (mgl64.Vec3, bool) {
	clip := c.ViewProjection().Mul4x1(world.Vec4(1))
	if clip.W() <= 0 {
		return mgl64.Vec3{}, false
	}
	return clip.Vec3().Mul(1 / clip.W()), true
}

// minRayZ bounds how parallel to the depth plane a pointer ray may be.
const minRayZ = 1e-9

// Unproject casts a ray from the camera through ndc and returns where it
// crosses the plane z = planeZ. It reports false when the ray is parallel to
// the plane.
func (c *Camera) Unproject(ndc mgl64.Vec2, planeZ float64) (mgl64.Vec3, bool) {
	inv := c.ViewProjection().Inv()
	p := inv.Mul4x1(mgl64.Vec4{ndc.X(), ndc.Y(), 0.5, 1})
	if p.W() == 0 {
		return mgl64.Vec3{}, false
	}
	dir := p.Vec3().Mul(1 / p.W()).Sub(c.Position)
	if dir.Len() == 0 {
		return mgl64.Vec3{}, false
	}
	dir = dir.Normalize()
	if math.Abs(dir.Z()) < minRayZ {
		return mgl64.Vec3{}, false
	}
	t := (planeZ - c.Position.Z()) / dir.Z()
	return c.Position.Add(dir.Mul(t)), true
}

// PixelRadius converts a world-space radius at the given position to screen
// pixels for a viewport of height viewportH. Points behind the near plane
// have zero radius.
func (c *Camera) PixelRadius(world mgl64.Vec3, radius float64, viewportH int) float64 {
	depth := c.Position.Z() - world.Z()
	if depth <= c.Near {
		return 0
	}
	half := math.Tan(mgl64.DegToRad(c.FovY) / 2)
	return radius * float64(viewportH) / 2 / (half * depth)
}

// ClientToNDC maps window coordinates (origin top-left) to normalized
// device coordinates (origin center, +Y up).
func ClientToNDC(x, y float64, w, h int) mgl64.Vec2 {
	if w <= 0 || h <= 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{
		x/float64(w)*2 - 1,
		-(y/float64(h))*2 + 1,
	}
}

// NDCToClient is the inverse of ClientToNDC.
func NDCToClient(ndc mgl64.Vec2, w, h int) (float64, float64) {
	return (ndc.X() + 1) / 2 * float64(w), (1 - ndc.Y()) / 2 * float64(h)
}
