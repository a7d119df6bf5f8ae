package surface

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Target is a point on the sphere tagged with its surface category.
type Target struct {
	Pos      mgl64.Vec3
	Category Category
}

// SpherePoints spreads n points over a sphere of the given radius using a
// Fibonacci-like spiral, so each point covers roughly equal area.
func SpherePoints(n int, radius float64) []mgl64.Vec3 {
	if n <= 0 {
		return nil
	}
	pts := make([]mgl64.Vec3, n)
	turns := math.Sqrt(float64(n) * math.Pi)
	for i := range pts {
		phi := math.Acos(-1 + 2*float64(i)/float64(n))
		theta := turns * phi
		sinPhi := math.Sin(phi)
		pts[i] = mgl64.Vec3{
			radius * math.Cos(theta) * sinPhi,
			radius * math.Sin(theta) * sinPhi,
			radius * math.Cos(phi),
		}
	}
	return pts
}

// Targets generates n classified sphere-surface points.
func Targets(n int, radius float64, t Thresholds) []Target {
	pts := SpherePoints(n, radius)
	out := make([]Target, len(pts))
	for i, p := range pts {
		out[i] = Target{Pos: p, Category: Classify(p, t)}
	}
	return out
}

// Pools splits targets by category, preserving generation order.
func Pools(targets []Target) map[Category][]mgl64.Vec3 {
	pools := make(map[Category][]mgl64.Vec3, len(Categories))
	for _, c := range Categories {
		pools[c] = nil
	}
	for _, t := range targets {
		pools[t.Category] = append(pools[t.Category], t.Pos)
	}
	return pools
}
