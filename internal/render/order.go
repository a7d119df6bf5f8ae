package render

import (
	"image/color"
	"math"
	"sort"

	"particle-globe/internal/camera"
	"particle-globe/internal/scene"

	"github.com/lucasb-eyer/go-colorful"
)

// FogDensity matches the exponential-squared fog of the scene background.
const FogDensity = 0.02

// FogFactor returns the visibility of a point at the given view distance
// under exponential-squared fog.
func FogFactor(distance, density float64) float64 {
	if distance <= 0 {
		return 1
	}
	d := density * distance
	return math.Exp(-d * d)
}

// Fog blends c toward the fog color by the fog amount at distance.
func Fog(c, fog color.RGBA, distance, density float64) color.RGBA {
	f := FogFactor(distance, density)
	if f >= 1 {
		return c
	}
	src, _ := colorful.MakeColor(opaque(c))
	dst, _ := colorful.MakeColor(opaque(fog))
	r, g, b := src.BlendRgb(dst, 1-f).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: c.A}
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 0xff
	return c
}

// DrawOrder returns indices of the visible points sorted far to near so
// nearer points are painted over farther ones.
func DrawOrder(points []scene.Point, cam *camera.Camera, dst []int) []int {
	dst = dst[:0]
	for i, p := range points {
		if p.Opacity <= 0 {
			continue
		}
		if cam.Depth()-p.Pos.Z() <= cam.Near {
			continue
		}
		dst = append(dst, i)
	}
	sort.SliceStable(dst, func(a, b int) bool {
		return points[dst[a]].Pos.Z() < points[dst[b]].Pos.Z()
	})
	return dst
}
