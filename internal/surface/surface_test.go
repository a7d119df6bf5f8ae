package surface

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestClassifyDeterministic(t *testing.T) {
	th := DefaultThresholds()
	for _, p := range SpherePoints(400, 1) {
		a := Classify(p, th)
		b := Classify(p, th)
		if a != b {
			t.Fatalf("classify %v not deterministic: %v vs %v", p, a, b)
		}
		// Scaling the direction must not change the category.
		if c := Classify(p.Mul(7.5), th); c != a {
			t.Fatalf("classify %v depends on length: %v vs %v", p, a, c)
		}
	}
}

func TestClassifyPolarCapsAreOcean(t *testing.T) {
	th := DefaultThresholds()
	for _, dir := range []mgl64.Vec3{{0, 1, 0}, {0, -1, 0}, {0.1, 0.99, 0.05}, {-0.2, -0.97, 0.1}} {
		if got := Classify(dir, th); got != Ocean {
			t.Fatalf("polar direction %v classified %v, expected ocean", dir, got)
		}
	}
}

func TestClassifyZeroVector(t *testing.T) {
	if got := Classify(mgl64.Vec3{}, DefaultThresholds()); got != Ocean {
		t.Fatalf("zero vector classified %v, expected ocean", got)
	}
}

func TestClassifyRespectsThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.LandThreshold = -10
	th.DesertLatitude = 0
	th.PolarLatitude = math.Pi
	for _, p := range SpherePoints(100, 1) {
		if got := Classify(p, th); got != Land {
			t.Fatalf("with land threshold below hash range %v classified %v", p, got)
		}
	}

	th = DefaultThresholds()
	th.LandThreshold = 10
	th.DesertLatitude = 0
	for _, p := range SpherePoints(100, 1) {
		if got := Classify(p, th); got != Ocean {
			t.Fatalf("with land threshold above hash range %v classified %v", p, got)
		}
	}
}

func TestDefaultMaskProducesEveryCategory(t *testing.T) {
	counts := map[Category]int{}
	for _, tg := range Targets(2000, 2.5, DefaultThresholds()) {
		counts[tg.Category]++
	}
	for _, c := range Categories {
		if counts[c] == 0 {
			t.Fatalf("expected some %v targets, counts=%v", c, counts)
		}
	}
}

func TestHash3Range(t *testing.T) {
	for x := -50.0; x <= 50; x += 7 {
		for y := -50.0; y <= 50; y += 11 {
			h := Hash3(x, y, x-y)
			if h < 0 || h >= 1 {
				t.Fatalf("hash3(%v,%v) = %v out of [0,1)", x, y, h)
			}
		}
	}
}

func TestSpherePointsOnSurface(t *testing.T) {
	const r = 2.5
	pts := SpherePoints(400, r)
	if len(pts) != 400 {
		t.Fatalf("expected 400 points, got %d", len(pts))
	}
	for i, p := range pts {
		if d := math.Abs(p.Len() - r); d > 1e-9 {
			t.Fatalf("point %d at distance %v from sphere", i, p.Len())
		}
	}
	if SpherePoints(0, r) != nil {
		t.Fatal("expected nil for zero points")
	}
}

func TestPoolsPartitionAllTargets(t *testing.T) {
	targets := Targets(321, 2.5, DefaultThresholds())
	pools := Pools(targets)
	total := 0
	for _, c := range Categories {
		total += len(pools[c])
	}
	if total != len(targets) {
		t.Fatalf("pools hold %d points, expected %d", total, len(targets))
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(c.String())
		if err != nil || got != c {
			t.Fatalf("ParseCategory(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseCategory("tundra"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}
