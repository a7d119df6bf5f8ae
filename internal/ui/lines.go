package ui

import (
	"fmt"

	"particle-globe/internal/core"
)

// Lines flattens a parameter snapshot into the text rows of the debug panel.
func Lines(snap core.ParameterSnapshot) []string {
	var out []string
	for i, group := range snap.Groups {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, group.Name)
		for _, p := range group.Params {
			out = append(out, fmt.Sprintf("  %s: %s", p.Label, p.Value))
		}
	}
	return out
}
