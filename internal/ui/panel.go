//go:build ebiten

package ui

import (
	"image/color"

	"particle-globe/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 12
	lineHeight   = 16
	panelWidth   = 260
)

// Panel draws the debug parameter list in the top-left corner.
type Panel struct {
	Visible bool
	bg      *ebiten.Image
	lines   []string
}

// NewPanel returns a hidden panel.
func NewPanel() *Panel {
	return &Panel{}
}

// Toggle flips visibility.
func (p *Panel) Toggle() {
	if p == nil {
		return
	}
	p.Visible = !p.Visible
}

// Update caches the rows for the next Draw.
func (p *Panel) Update(src core.ParameterProvider) {
	if p == nil || !p.Visible || src == nil {
		return
	}
	p.lines = Lines(src.Parameters())
}

// Draw paints the panel onto screen.
func (p *Panel) Draw(screen *ebiten.Image) {
	if p == nil || !p.Visible || len(p.lines) == 0 {
		return
	}
	height := panelPadding*2 + len(p.lines)*lineHeight
	if p.bg == nil || p.bg.Bounds().Dy() != height {
		p.bg = ebiten.NewImage(panelWidth, height)
	}
	p.bg.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 200})
	face := basicfont.Face7x13
	for i, line := range p.lines {
		y := panelPadding + (i+1)*lineHeight - 4
		text.Draw(p.bg, line, face, panelPadding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}
	screen.DrawImage(p.bg, nil)
}
