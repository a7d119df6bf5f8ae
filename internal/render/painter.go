//go:build ebiten

package render

import (
	"image/color"

	"particle-globe/internal/camera"
	"particle-globe/internal/scene"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const discSize = 64

// minPixelRadius keeps distant points from vanishing entirely.
const minPixelRadius = 0.5

// PointPainter draws scene points as soft discs through a camera.
type PointPainter struct {
	disc  *ebiten.Image
	order []int

	FogColor   color.RGBA
	FogDensity float64
}

// NewPointPainter allocates the shared disc sprite.
func NewPointPainter() *PointPainter {
	disc := ebiten.NewImage(discSize, discSize)
	vector.DrawFilledCircle(disc, discSize/2, discSize/2, discSize/2, color.White, true)
	return &PointPainter{disc: disc, FogColor: color.RGBA{A: 0xff}, FogDensity: FogDensity}
}

// Draw paints every visible point of sc onto dst.
func (pp *PointPainter) Draw(dst *ebiten.Image, sc *scene.Scene, cam *camera.Camera) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return
	}
	points := sc.Points()
	pp.order = DrawOrder(points, cam, pp.order)
	for _, i := range pp.order {
		p := points[i]
		ndc, ok := cam.Project(p.Pos)
		if !ok {
			continue
		}
		sx, sy := camera.NDCToClient(ndc.Vec2(), w, h)
		r := cam.PixelRadius(p.Pos, p.Radius, h)
		if r < minPixelRadius {
			r = minPixelRadius
		}
		c := Fog(p.Color, pp.FogColor, cam.Depth()-p.Pos.Z(), pp.FogDensity)

		op := &ebiten.DrawImageOptions{}
		scale := 2 * r / discSize
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(sx-r, sy-r)
		op.ColorScale.ScaleWithColor(c)
		op.ColorScale.ScaleAlpha(float32(p.Opacity))
		op.Filter = ebiten.FilterLinear
		if p.Blend == scene.BlendAdditive {
			op.Blend = ebiten.BlendLighter
		}
		dst.DrawImage(pp.disc, op)
	}
}
