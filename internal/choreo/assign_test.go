package choreo

import (
	"testing"

	"particle-globe/internal/surface"
	"particle-globe/pkg/core"

	"github.com/go-gl/mathgl/mgl64"
)

func pool(n int, tag float64) []mgl64.Vec3 {
	pts := make([]mgl64.Vec3, n)
	for i := range pts {
		pts[i] = mgl64.Vec3{tag, float64(i), 0}
	}
	return pts
}

func testGroup(t *testing.T, name string, n int, primary surface.Category, backups ...surface.Category) *Group {
	t.Helper()
	g, err := NewGroup(GroupSpec{
		Name:      name,
		Count:     n,
		Formation: "cube",
		Primary:   primary,
		Backups:   backups,
	}, DefaultConfig(), core.NewRNG(1), nil)
	if err != nil {
		t.Fatalf("NewGroup: %v", err)
	}
	return g
}

func TestAssignPrimaryThenFirstBackup(t *testing.T) {
	g := testGroup(t, "green", 125, surface.Land, surface.Ocean, surface.Desert)
	pools := map[surface.Category][]mgl64.Vec3{
		surface.Land:   pool(100, 1),
		surface.Ocean:  pool(50, 2),
		surface.Desert: pool(50, 3),
	}
	stats := Assign([]*Group{g}, pools, mgl64.Vec3{})
	st := stats[0]
	if st.Primary != 100 || st.Backup[0] != 25 || st.Backup[1] != 0 || st.Repeated != 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
	for i := 0; i < 100; i++ {
		if p, _ := g.Particle(i).SphereTarget(); p != pools[surface.Land][i] {
			t.Fatalf("particle %d should take primary target %d in order", i, i)
		}
	}
	for i := 100; i < 125; i++ {
		if p, _ := g.Particle(i).SphereTarget(); p != pools[surface.Ocean][i-100] {
			t.Fatalf("particle %d should take first-backup target %d in order", i, i-100)
		}
	}
}

func TestAssignPoolsAreShared(t *testing.T) {
	a := testGroup(t, "a", 30, surface.Land, surface.Ocean)
	b := testGroup(t, "b", 30, surface.Land, surface.Ocean)
	pools := map[surface.Category][]mgl64.Vec3{
		surface.Land:  pool(40, 1),
		surface.Ocean: pool(20, 2),
	}
	stats := Assign([]*Group{a, b}, pools, mgl64.Vec3{})
	if stats[0].Primary != 30 {
		t.Fatalf("first group should claim its primary pool first: %+v", stats[0])
	}
	if stats[1].Primary != 10 || stats[1].Backup[0] != 20 {
		t.Fatalf("second group should get the rest: %+v", stats[1])
	}

	seen := map[mgl64.Vec3]bool{}
	for _, g := range []*Group{a, b} {
		for i := 0; i < g.Len(); i++ {
			p, _ := g.Particle(i).SphereTarget()
			if seen[p] {
				t.Fatalf("target %v handed out twice", p)
			}
			seen[p] = true
		}
	}
}

func TestAssignRepeatsLastWhenExhausted(t *testing.T) {
	g := testGroup(t, "red", 5, surface.Desert, surface.Land)
	pools := map[surface.Category][]mgl64.Vec3{
		surface.Desert: pool(2, 3),
		surface.Land:   pool(1, 1),
	}
	st := Assign([]*Group{g}, pools, mgl64.Vec3{})[0]
	if st.Primary != 2 || st.Backup[0] != 1 || st.Repeated != 2 {
		t.Fatalf("unexpected stats %+v", st)
	}
	last := pools[surface.Land][0]
	for i := 2; i < 5; i++ {
		if p, _ := g.Particle(i).SphereTarget(); p != last {
			t.Fatalf("particle %d should reuse the last target, got %v", i, p)
		}
	}
}

func TestAssignFallbackWhenNothingAvailable(t *testing.T) {
	g := testGroup(t, "blue", 4, surface.Ocean)
	fallback := mgl64.Vec3{0, 0, 2.5}
	st := Assign([]*Group{g}, map[surface.Category][]mgl64.Vec3{}, fallback)[0]
	if st.Fallback != 1 || st.Repeated != 3 {
		t.Fatalf("unexpected stats %+v", st)
	}
	for i := 0; i < g.Len(); i++ {
		if p, ok := g.Particle(i).SphereTarget(); !ok || p != fallback {
			t.Fatalf("particle %d should use the fallback target, got %v", i, p)
		}
	}
}

func TestAssignTotalsMatchParticleCount(t *testing.T) {
	rng := core.NewRNG(5)
	for round := 0; round < 50; round++ {
		sizes := []int{rng.IntN(60), rng.IntN(60), rng.IntN(60)}
		groups := []*Group{
			testGroup(t, "g", sizes[0], surface.Land, surface.Ocean, surface.Desert),
			testGroup(t, "b", sizes[1], surface.Ocean, surface.Land, surface.Desert),
			testGroup(t, "r", sizes[2], surface.Desert, surface.Land, surface.Ocean),
		}
		total := sizes[0] + sizes[1] + sizes[2]
		land := rng.IntN(total + 1)
		ocean := rng.IntN(total - land + 1)
		pools := map[surface.Category][]mgl64.Vec3{
			surface.Land:   pool(land, 1),
			surface.Ocean:  pool(ocean, 2),
			surface.Desert: pool(total-land-ocean, 3),
		}
		stats := Assign(groups, pools, mgl64.Vec3{})
		sum := 0
		for i, st := range stats {
			sum += st.Total()
			if groups[i].Assigned() != groups[i].Len() {
				t.Fatalf("round %d: group %d left particles without targets", round, i)
			}
			if st.Repeated != 0 || st.Fallback != 0 {
				t.Fatalf("round %d: pools match the particle count, nothing should repeat: %+v", round, st)
			}
		}
		if sum != total {
			t.Fatalf("round %d: assigned %d targets for %d particles", round, sum, total)
		}
	}
}

func TestAssignKeepsExistingTargets(t *testing.T) {
	g := testGroup(t, "g", 2, surface.Land)
	first := mgl64.Vec3{9, 9, 9}
	g.Particle(0).assign(first)
	Assign([]*Group{g}, map[surface.Category][]mgl64.Vec3{surface.Land: pool(2, 1)}, mgl64.Vec3{})
	if p, _ := g.Particle(0).SphereTarget(); p != first {
		t.Fatalf("existing target overwritten: %v", p)
	}
	if g.Particle(0).assign(mgl64.Vec3{}) {
		t.Fatal("second assignment must be refused")
	}
}

func TestGroupTargetPrecedence(t *testing.T) {
	g := testGroup(t, "g", 8, surface.Land)
	g.Anchor = mgl64.Vec3{1, 0, -2}

	g.step(nil, 1)
	for i := 0; i < g.Len(); i++ {
		if want := g.Anchor.Add(g.Particle(i).Rest); !g.Particle(i).Position.ApproxEqualThreshold(want, 1e-12) {
			t.Fatalf("idle particle %d should rest at anchor+offset", i)
		}
	}

	g.Hovered = true
	g.step(nil, 1)
	for i := 0; i < g.Len(); i++ {
		if want := g.Formation(i, g.Len()).Add(g.Anchor); !g.Particle(i).Position.ApproxEqualThreshold(want, 1e-12) {
			t.Fatalf("hovered particle %d should sit in formation", i)
		}
	}

	g.Particle(0).assign(mgl64.Vec3{0, 0, 2.5})
	held := g.Particle(1).Position
	frame := &sphereFrame{center: mgl64.Vec3{0, 0, 1}, rotation: RotationMatrix(mgl64.Vec3{0, 0, 0})}
	g.step(frame, 1)
	if got := g.Particle(0).Position; !got.ApproxEqualThreshold(mgl64.Vec3{0, 0, 3.5}, 1e-12) {
		t.Fatalf("converged particle should follow the sphere, got %v", got)
	}
	if g.Particle(1).Position != held {
		t.Fatal("converged particle without a target should hold position")
	}
}

func TestGroupStepIsFirstOrderLag(t *testing.T) {
	g := testGroup(t, "g", 1, surface.Land)
	p := g.Particle(0)
	p.Position = mgl64.Vec3{10, 0, 0}
	target := g.Anchor.Add(p.Rest)
	g.step(nil, 0.08)
	want := mgl64.Vec3{10, 0, 0}.Add(target.Sub(mgl64.Vec3{10, 0, 0}).Mul(0.08))
	if !p.Position.ApproxEqualThreshold(want, 1e-12) {
		t.Fatalf("expected %v, got %v", want, p.Position)
	}
}

func TestRotationMatrixQuarterTurn(t *testing.T) {
	got := RotationMatrix(mgl64.Vec3{0, mgl64.DegToRad(90), 0}).Mul3x1(mgl64.Vec3{1, 0, 0})
	if !got.ApproxEqualThreshold(mgl64.Vec3{0, 0, -1}, 1e-12) {
		t.Fatalf("quarter turn about Y should send +X to -Z, got %v", got)
	}
}
