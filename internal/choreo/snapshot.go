package choreo

import (
	"fmt"
	"strconv"

	"particle-globe/internal/core"
)

// Snapshot is an immutable copy of one frame, safe to hand to other
// goroutines.
type Snapshot struct {
	Frame       uint64          `json:"frame"`
	Phase       string          `json:"phase"`
	Progress    float64         `json:"progress"`
	CameraDepth float64         `json:"cameraDepth"`
	Rotation    [3]float64      `json:"rotation"`
	Cursor      [3]float64      `json:"cursor"`
	Groups      []GroupSnapshot `json:"groups"`
}

// GroupSnapshot is the per-group part of a Snapshot.
type GroupSnapshot struct {
	Name      string       `json:"name"`
	Color     string       `json:"color"`
	Hovered   bool         `json:"hovered"`
	Positions [][3]float64 `json:"positions"`
}

// Snapshot copies the current frame. Positions are included only when
// withPositions is set.
func (e *Engine) Snapshot(withPositions bool) Snapshot {
	s := e.state
	snap := Snapshot{
		Frame:       s.Frame,
		Phase:       s.Phase.String(),
		Progress:    s.Progress,
		CameraDepth: e.cam.Depth(),
		Rotation:    [3]float64(s.Rotation),
		Cursor:      [3]float64(s.Cursor),
		Groups:      make([]GroupSnapshot, len(e.groups)),
	}
	for i, g := range e.groups {
		gs := GroupSnapshot{
			Name:    g.Name,
			Color:   fmt.Sprintf("#%02x%02x%02x", g.Color.R, g.Color.G, g.Color.B),
			Hovered: g.Hovered,
		}
		if withPositions {
			gs.Positions = make([][3]float64, len(g.particles))
			for j := range g.particles {
				gs.Positions[j] = [3]float64(g.particles[j].Position)
			}
		}
		snap.Groups[i] = gs
	}
	return snap
}

// Parameters exposes the live state for the debug overlay.
func (e *Engine) Parameters() core.ParameterSnapshot {
	s := e.state
	hover := make([]core.Parameter, 0, len(e.groups))
	for _, g := range e.groups {
		hover = append(hover, boolParam("hover_"+g.Name, g.Name+" hovered", g.Hovered))
	}
	groups := []core.ParameterGroup{
		{
			Name: "Choreography",
			Params: []core.Parameter{
				{Key: "phase", Label: "Phase", Value: s.Phase.String()},
				floatParam("progress", "Scroll progress", s.Progress),
				floatParam("camera_depth", "Camera depth", e.cam.Depth()),
				floatParam("target_depth", "Target depth", s.TargetDepth),
				boolParam("intro", "Intro visible", s.IntroVisible),
			},
		},
		{Name: "Hover", Params: hover},
	}
	if s.Converged() {
		groups = append(groups, core.ParameterGroup{
			Name: "Sphere",
			Params: []core.Parameter{
				floatParam("rot_x", "Rotation X", s.Rotation.X()),
				floatParam("rot_y", "Rotation Y", s.Rotation.Y()),
				floatParam("auto_rotate", "Auto-rotate speed", s.AutoRotateSpeed),
				boolParam("dragging", "Dragging", s.Dragging),
			},
		})
		assigned := make([]core.Parameter, 0, len(e.stats))
		for _, st := range e.stats {
			assigned = append(assigned, core.Parameter{
				Key:   "assign_" + st.Group,
				Label: st.Group,
				Value: fmt.Sprintf("primary %d, backup %v, repeated %d", st.Primary, st.Backup, st.Repeated),
			})
		}
		groups = append(groups, core.ParameterGroup{Name: "Assignment", Params: assigned})
	}
	return core.ParameterSnapshot{Groups: groups}
}

func floatParam(key, label string, v float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Value: strconv.FormatFloat(v, 'f', 3, 64)}
}

func boolParam(key, label string, v bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Value: strconv.FormatBool(v)}
}
