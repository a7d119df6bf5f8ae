// Package formation defines the shapes a particle group snaps into while it
// is hovered. Each generator maps (index, total) to an offset from the group
// anchor and depends on nothing else.
package formation

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Func returns the offset of particle index out of total.
type Func func(index, total int) mgl64.Vec3

const (
	cubeSpacing = 0.25

	waveTurns     = 3 // full turns across the index range
	waveRadius    = 1.2
	waveRipple    = 0.4
	waveAmplitude = 0.6

	pyramidLayers     = 12
	pyramidRingStep   = 0.18
	pyramidLayerStep  = 0.2
	pyramidBaseHeight = -1.2
)

// Cube arranges indices into a near-cubic lattice centered on the origin.
func Cube(index, total int) mgl64.Vec3 {
	if total <= 0 {
		return mgl64.Vec3{}
	}
	size := cubeSide(total)
	half := float64(size) / 2
	x := float64(index%size) - half
	y := float64((index/size)%size) - half
	z := float64(index/(size*size)) - half
	return mgl64.Vec3{x * cubeSpacing, y * cubeSpacing, z * cubeSpacing}
}

// cubeSide returns the smallest side whose cube holds total indices.
func cubeSide(total int) int {
	side := int(math.Round(math.Cbrt(float64(total))))
	for side*side*side < total {
		side++
	}
	for side > 1 && (side-1)*(side-1)*(side-1) >= total {
		side--
	}
	return side
}

// Wave sweeps the indices along a twisting ribbon whose radius ripples.
func Wave(index, total int) mgl64.Vec3 {
	if total <= 0 {
		return mgl64.Vec3{}
	}
	angle := float64(index) / float64(total) * math.Pi * 2 * waveTurns
	radius := waveRadius + math.Sin(angle*3)*waveRipple
	return mgl64.Vec3{
		math.Cos(angle) * radius,
		math.Sin(angle*2) * waveAmplitude,
		math.Sin(angle) * radius,
	}
}

// Pyramid stacks the indices in rings that shrink going upward.
func Pyramid(index, total int) mgl64.Vec3 {
	if total <= 0 {
		return mgl64.Vec3{}
	}
	layer := int(math.Floor(float64(index) / float64(total) * pyramidLayers))
	perLayer := int(math.Ceil(float64(total) / pyramidLayers))
	radius := float64(pyramidLayers-layer) * pyramidRingStep
	angle := float64(index%perLayer) / float64(perLayer) * math.Pi * 2
	return mgl64.Vec3{
		math.Cos(angle) * radius,
		pyramidBaseHeight + float64(layer)*pyramidLayerStep,
		math.Sin(angle) * radius,
	}
}

var registry = map[string]Func{}

// Register adds a formation under the provided name.
func Register(name string, f Func) {
	if name == "" || f == nil {
		return
	}
	registry[name] = f
}

// Lookup returns the formation registered under name.
func Lookup(name string) (Func, bool) {
	f, ok := registry[name]
	return f, ok
}

// Names lists the registered formations in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("cube", Cube)
	Register("wave", Wave)
	Register("pyramid", Pyramid)
}
