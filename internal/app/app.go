//go:build ebiten

package app

import (
	"image/color"

	"particle-globe/internal/choreo"
	"particle-globe/internal/render"
	"particle-globe/internal/scene"
	"particle-globe/internal/telemetry"
	"particle-globe/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const introCaption = "scroll to gather the particles"

// Game adapts a choreography engine to the ebiten.Game interface.
type Game struct {
	engine  *choreo.Engine
	scene   *scene.Scene
	painter *render.PointPainter
	panel   *ui.Panel
	hub     *telemetry.Hub

	scroll         Scroller
	wheelStep      float64
	telemetryEvery int

	width, height int
	cursorX       int
	cursorY       int
}

// New constructs a Game. hub may be nil when telemetry is disabled.
func New(engine *choreo.Engine, sc *scene.Scene, hub *telemetry.Hub, cfg *Config) *Game {
	return &Game{
		engine:         engine,
		scene:          sc,
		painter:        render.NewPointPainter(),
		panel:          ui.NewPanel(),
		hub:            hub,
		scroll:         Scroller{Max: cfg.PageLength},
		wheelStep:      cfg.WheelStep,
		telemetryEvery: cfg.TelemetryEvery,
		cursorX:        -1,
		cursorY:        -1,
	}
}

// Update translates input into engine events and advances one frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.panel.Toggle()
	}

	g.handleScroll()
	g.handlePointer()

	g.engine.Step()
	g.panel.Update(g.engine)

	if g.hub != nil && g.telemetryEvery > 0 {
		if frame := g.engine.State().Frame; frame%uint64(g.telemetryEvery) == 0 {
			g.hub.Publish(g.engine.Snapshot(true))
		}
	}
	return nil
}

func (g *Game) handleScroll() {
	if g.engine.ScrollLocked() {
		return
	}
	_, dy := ebiten.Wheel()
	delta := -dy * g.wheelStep
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyPageDown) {
		delta += g.wheelStep / 4
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyPageUp) {
		delta -= g.wheelStep / 4
	}
	if delta != 0 && g.scroll.Add(delta) {
		g.engine.Post(choreo.Scroll{Offset: g.scroll.Offset, Max: g.scroll.Max})
	}
}

func (g *Game) handlePointer() {
	x, y := ebiten.CursorPosition()
	if x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		g.engine.Post(choreo.PointerMove{X: float64(x), Y: float64(y)})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.engine.Post(choreo.PointerDown{X: float64(x), Y: float64(y)})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.engine.Post(choreo.PointerUp{})
	}
}

// Draw renders the particles, the intro caption and the debug panel.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.painter.Draw(screen, g.scene, g.engine.Camera())
	if g.engine.IntroVisible() {
		face := basicfont.Face7x13
		x := (g.width - len(introCaption)*7) / 2
		text.Draw(screen, introCaption, face, x, g.height-48, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	}
	g.panel.Draw(screen)
}

// Layout follows the window size and reports changes to the engine.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.engine.Post(choreo.Resize{W: outsideWidth, H: outsideHeight})
	}
	return outsideWidth, outsideHeight
}
