package main

import (
	"bytes"
	"log"

	"particle-globe/internal/camera"
	"particle-globe/internal/choreo"
	"particle-globe/internal/surface"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	viewportW  = 1280
	viewportH  = 720
	dragFrames = 45
	dragStep   = 6
)

// script describes the scripted input session.
type script struct {
	Frames     int
	RampFrames int
	PageLength float64
}

type sessionResult struct {
	Seed        int64
	Converged   bool
	ConvergedAt uint64
	HoverFrames map[string]int
	Stats       []choreo.AssignStats
	Categories  map[surface.Category]int
	Rotation    mgl64.Vec3
	Warnings    string
}

// runSession drives an engine through a scroll ramp with the pointer parked
// on the nearest group, then drags the sphere once converged. publish, if
// set, receives every frame's engine after the step.
func runSession(cfg choreo.Config, groups []choreo.GroupSpec, sc script, publish func(*choreo.Engine)) (sessionResult, error) {
	var logs bytes.Buffer
	e, err := choreo.New(cfg, groups, nil, choreo.WithLogger(log.New(&logs, "", 0)))
	if err != nil {
		return sessionResult{}, err
	}
	res := sessionResult{Seed: cfg.Seed, HoverFrames: map[string]int{}}
	e.Post(choreo.Resize{W: viewportW, H: viewportH})

	ramp := sc.RampFrames
	if ramp <= 0 {
		ramp = 1
	}
	dragStart := -1
	for f := 0; f < sc.Frames; f++ {
		if !e.Converged() {
			offset := sc.PageLength * min(float64(f)/float64(ramp), 1)
			e.Post(choreo.Scroll{Offset: offset, Max: sc.PageLength})
			if x, y, ok := nearestGroup(e); ok {
				e.Post(choreo.PointerMove{X: x, Y: y})
			}
		} else {
			if dragStart < 0 {
				dragStart = f
				e.Post(choreo.PointerDown{X: viewportW / 2, Y: viewportH / 2})
			}
			switch k := f - dragStart; {
			case k > 0 && k <= dragFrames:
				e.Post(choreo.PointerMove{X: viewportW/2 + float64(k*dragStep), Y: viewportH/2 + float64(k*dragStep)/2})
			case k == dragFrames+1:
				e.Post(choreo.PointerUp{})
			}
		}
		e.Step()
		for _, g := range e.Groups() {
			if g.Hovered {
				res.HoverFrames[g.Name]++
			}
		}
		if publish != nil {
			publish(e)
		}
	}

	st := e.State()
	if e.Converged() {
		res.Converged = true
		res.ConvergedAt = st.ConvergedAtFrame
	}
	res.Stats = e.Stats()
	res.Rotation = st.Rotation
	res.Categories = categoryCounts(e)
	res.Warnings = logs.String()
	return res, nil
}

// nearestGroup returns the client position of the closest anchor in front
// of the camera.
func nearestGroup(e *choreo.Engine) (float64, float64, bool) {
	cam := e.Camera()
	best := -1.0
	var target mgl64.Vec3
	for _, g := range e.Groups() {
		d := cam.Depth() - g.Anchor.Z()
		if d <= 0 || (best >= 0 && d >= best) {
			continue
		}
		best, target = d, g.Anchor
	}
	if best < 0 {
		return 0, 0, false
	}
	ndc, ok := cam.Project(target)
	if !ok {
		return 0, 0, false
	}
	x, y := camera.NDCToClient(ndc.Vec2(), viewportW, viewportH)
	return x, y, true
}

func categoryCounts(e *choreo.Engine) map[surface.Category]int {
	total := 0
	for _, g := range e.Groups() {
		total += g.Len()
	}
	cfg := e.Config()
	counts := make(map[surface.Category]int, len(surface.Categories))
	for _, t := range surface.Targets(total, cfg.SphereRadius, cfg.Surface) {
		counts[t.Category]++
	}
	return counts
}
