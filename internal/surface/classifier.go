package surface

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Category tags a point on the sphere surface.
type Category uint8

const (
	Ocean Category = iota
	Land
	Desert
)

// Categories lists every category in pool order.
var Categories = [...]Category{Land, Ocean, Desert}

func (c Category) String() string {
	switch c {
	case Land:
		return "land"
	case Desert:
		return "desert"
	default:
		return "ocean"
	}
}

// ParseCategory maps a name such as "land" to its Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "land":
		return Land, nil
	case "ocean":
		return Ocean, nil
	case "desert":
		return Desert, nil
	}
	return Ocean, fmt.Errorf("unknown surface category %q", s)
}

// Thresholds holds the tuned constants of the land/ocean/desert mask.
type Thresholds struct {
	Grid           float64 // coordinate quantization before hashing
	BandAmplitude  float64 // strength of the longitude/latitude banding
	PolarLatitude  float64 // radians; above this is always ocean
	DesertLatitude float64 // radians; desert belt half-width
	DesertLow      float64
	DesertHigh     float64
	LandThreshold  float64
}

// DefaultThresholds returns the standard mask tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Grid:           50,
		BandAmplitude:  0.15,
		PolarLatitude:  1.2,
		DesertLatitude: 0.35,
		DesertLow:      0.48,
		DesertHigh:     0.58,
		LandThreshold:  0.55,
	}
}

// Classify maps a direction to a surface category. The direction does not
// need to be normalized; a zero vector is classified as ocean.
func Classify(dir mgl64.Vec3, t Thresholds) Category {
	l := dir.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Ocean
	}
	d := dir.Mul(1 / l)

	lat := math.Asin(mgl64.Clamp(d.Y(), -1, 1))
	lon := math.Atan2(d.Z(), d.X())

	n := Hash3(roundHalfUp(d.X()*t.Grid), roundHalfUp(d.Y()*t.Grid), roundHalfUp(d.Z()*t.Grid))
	n += t.BandAmplitude * math.Sin(3*lon) * math.Cos(2*lat)

	if math.Abs(lat) > t.PolarLatitude {
		return Ocean
	}
	if math.Abs(lat) < t.DesertLatitude && n > t.DesertLow && n < t.DesertHigh {
		return Desert
	}
	if n > t.LandThreshold {
		return Land
	}
	return Ocean
}

// Hash3 is a sine-based pseudo-random hash in [0, 1).
func Hash3(x, y, z float64) float64 {
	return fract(math.Sin(x*12.9898+y*78.233+z*37.719) * 43758.5453)
}

func fract(x float64) float64 { return x - math.Floor(x) }

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(x float64) float64 { return math.Floor(x + 0.5) }
