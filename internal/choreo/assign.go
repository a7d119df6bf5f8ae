package choreo

import (
	"particle-globe/internal/surface"

	"github.com/go-gl/mathgl/mgl64"
)

// AssignStats records where one group's sphere targets came from.
type AssignStats struct {
	Group    string
	Primary  int
	Backup   []int // aligned with the group's Backups
	Repeated int
	Fallback int
}

// Total is the number of particles that received a target.
func (s AssignStats) Total() int {
	n := s.Primary + s.Repeated + s.Fallback
	for _, b := range s.Backup {
		n += b
	}
	return n
}

// pools hands out category targets in order; taken points are gone for
// every later group.
type pools struct {
	items map[surface.Category][]mgl64.Vec3
	next  map[surface.Category]int
}

func newPools(items map[surface.Category][]mgl64.Vec3) *pools {
	return &pools{items: items, next: make(map[surface.Category]int, len(items))}
}

func (p *pools) take(c surface.Category) (mgl64.Vec3, bool) {
	i := p.next[c]
	if i >= len(p.items[c]) {
		return mgl64.Vec3{}, false
	}
	p.next[c] = i + 1
	return p.items[c][i], true
}

// Assign distributes the category pools over groups in order. Each group
// drains its primary pool first, then its backups in order, then repeats
// its last target. A group that got nothing at all uses fallback. Pools
// are shared, so earlier groups get first claim. Particles that already
// hold a target keep it.
func Assign(groups []*Group, items map[surface.Category][]mgl64.Vec3, fallback mgl64.Vec3) []AssignStats {
	src := newPools(items)
	stats := make([]AssignStats, len(groups))
	for gi, g := range groups {
		st := AssignStats{Group: g.Name, Backup: make([]int, len(g.Backups))}
		var last mgl64.Vec3
		have := false
		for i := range g.particles {
			p := &g.particles[i]
			if p.assigned {
				last, have = p.sphere, true
				continue
			}
			target, ok := src.take(g.Primary)
			if ok {
				st.Primary++
			} else {
				for bi, c := range g.Backups {
					if target, ok = src.take(c); ok {
						st.Backup[bi]++
						break
					}
				}
			}
			switch {
			case ok:
			case have:
				target = last
				st.Repeated++
			default:
				target = fallback
				st.Fallback++
			}
			p.assign(target)
			last, have = target, true
		}
		stats[gi] = st
	}
	return stats
}
