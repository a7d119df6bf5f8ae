package choreo

import (
	"fmt"
	"image/color"

	"particle-globe/internal/formation"
	"particle-globe/internal/scene"
	"particle-globe/internal/surface"
	"particle-globe/pkg/core"

	"github.com/go-gl/mathgl/mgl64"
)

// Scene is the subset of the render backend the choreography drives.
type Scene interface {
	AddPoint(p scene.Point) scene.Handle
	SetPosition(h scene.Handle, pos mgl64.Vec3)
}

// Particle is a single member of a Group.
type Particle struct {
	Position mgl64.Vec3
	Rest     mgl64.Vec3 // scatter offset from the anchor, fixed at creation

	sphere   mgl64.Vec3
	assigned bool
	handle   scene.Handle
}

// SphereTarget returns the assigned sphere-surface point, if any.
func (p *Particle) SphereTarget() (mgl64.Vec3, bool) { return p.sphere, p.assigned }

// assign sets the sphere target once; later calls are ignored.
func (p *Particle) assign(target mgl64.Vec3) bool {
	if p.assigned {
		return false
	}
	p.sphere = target
	p.assigned = true
	return true
}

// Group is a named cluster sharing a color and an anchor.
type Group struct {
	Name      string
	Color     color.RGBA
	Anchor    mgl64.Vec3
	Formation formation.Func
	Primary   surface.Category
	Backups   []surface.Category
	Hovered   bool

	particles []Particle
}

// NewGroup creates the group's particles scattered around the anchor and
// registers one point per particle with sc.
func NewGroup(spec GroupSpec, cfg Config, rng *core.RNG, sc Scene) (*Group, error) {
	if spec.Count < 0 {
		return nil, fmt.Errorf("group %q: negative particle count %d", spec.Name, spec.Count)
	}
	form, ok := formation.Lookup(spec.Formation)
	if !ok {
		return nil, fmt.Errorf("group %q: unknown formation %q", spec.Name, spec.Formation)
	}
	g := &Group{
		Name:      spec.Name,
		Color:     spec.Color,
		Anchor:    mgl64.Vec3{spec.Anchor.X(), 0, spec.Anchor.Y()},
		Formation: form,
		Primary:   spec.Primary,
		Backups:   append([]surface.Category(nil), spec.Backups...),
		particles: make([]Particle, spec.Count),
	}
	span := cfg.ScatterSpan
	for i := range g.particles {
		p := &g.particles[i]
		p.Rest = mgl64.Vec3{rng.Centered(span.X()), rng.Centered(span.Y()), rng.Centered(span.Z())}
		p.Position = g.Anchor.Add(p.Rest)
		if sc != nil {
			p.handle = sc.AddPoint(scene.Point{
				Pos:     p.Position,
				Radius:  cfg.ParticleRadius,
				Color:   g.Color,
				Opacity: cfg.ParticleOpacity,
			})
		}
	}
	return g, nil
}

// Len returns the fixed particle count.
func (g *Group) Len() int { return len(g.particles) }

// Particle returns a pointer to particle i.
func (g *Group) Particle(i int) *Particle { return &g.particles[i] }

// Assigned counts particles holding a sphere target.
func (g *Group) Assigned() int {
	n := 0
	for i := range g.particles {
		if g.particles[i].assigned {
			n++
		}
	}
	return n
}

// target picks where particle i is heading this frame.
func (g *Group) target(i int, sphere *sphereFrame) (mgl64.Vec3, bool) {
	p := &g.particles[i]
	if sphere != nil {
		if !p.assigned {
			return mgl64.Vec3{}, false
		}
		return sphere.rotation.Mul3x1(p.sphere).Add(sphere.center), true
	}
	if g.Hovered {
		return g.Formation(i, len(g.particles)).Add(g.Anchor), true
	}
	return g.Anchor.Add(p.Rest), true
}

// sphereFrame is the per-frame pose of the converged sphere.
type sphereFrame struct {
	center   mgl64.Vec3
	rotation mgl64.Mat3
}

// step moves every particle a fixed fraction toward its target. A nil
// sphere means the group is still in its scattered/formed phase.
func (g *Group) step(sphere *sphereFrame, factor float64) {
	for i := range g.particles {
		target, ok := g.target(i, sphere)
		if !ok {
			continue
		}
		p := &g.particles[i]
		p.Position = p.Position.Add(target.Sub(p.Position).Mul(factor))
	}
}

// sync pushes particle positions to the scene.
func (g *Group) sync(sc Scene) {
	if sc == nil {
		return
	}
	for i := range g.particles {
		sc.SetPosition(g.particles[i].handle, g.particles[i].Position)
	}
}
