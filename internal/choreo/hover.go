package choreo

import (
	"math"

	"particle-globe/internal/camera"

	"github.com/go-gl/mathgl/mgl64"
)

// HoverRadius is the NDC radius of the hover lens for a group at the given
// depth distance from the camera. The lens widens as the group approaches.
func HoverRadius(distance float64, cfg Config) float64 {
	r := cfg.HoverRadiusBase + (cfg.HoverRange-distance)*cfg.HoverRadiusGain
	return mgl64.Clamp(r, cfg.HoverRadiusMin, cfg.HoverRadiusMax)
}

// IsHovered reports whether the pointer (in NDC) sits over the anchor.
// Anchors further than HoverRange from the camera depth never qualify.
func IsHovered(anchor mgl64.Vec3, cam *camera.Camera, pointer mgl64.Vec2, cfg Config) bool {
	distance := math.Abs(cam.Depth() - anchor.Z())
	if distance > cfg.HoverRange {
		return false
	}
	ndc, ok := cam.Project(anchor)
	if !ok {
		return false
	}
	d := math.Hypot(pointer.X()-ndc.X(), pointer.Y()-ndc.Y())
	return d < HoverRadius(distance, cfg)
}
