package choreo

import (
	"image/color"
	"strconv"

	"particle-globe/internal/surface"

	"github.com/go-gl/mathgl/mgl64"
)

// Config holds the tunables of the choreography.
type Config struct {
	Seed int64

	// Scroll-driven camera dolly.
	StartDepth        float64
	ScrollTravel      float64
	TriggerProgress   float64
	IntroHideProgress float64
	CameraLerp        float64

	// Per-frame interpolation factors.
	FollowLerp   float64
	ConvergeLerp float64

	// Hover lens.
	HoverRange      float64
	HoverRadiusBase float64
	HoverRadiusGain float64
	HoverRadiusMin  float64
	HoverRadiusMax  float64

	// Distance in front of the camera of the cursor plane and sphere center.
	CursorOffset float64
	SphereRadius float64

	AutoRotateStart float64
	AutoRotateAccel float64
	AutoRotateMax   float64
	DragSensitivity float64

	ScatterSpan     mgl64.Vec3
	ParticleRadius  float64
	ParticleOpacity float64

	Surface surface.Thresholds
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Seed:              42,
		StartDepth:        5,
		ScrollTravel:      70,
		TriggerProgress:   0.92,
		IntroHideProgress: 0.01,
		CameraLerp:        0.05,
		FollowLerp:        0.08,
		ConvergeLerp:      0.05,
		HoverRange:        8,
		HoverRadiusBase:   0.35,
		HoverRadiusGain:   0.02,
		HoverRadiusMin:    0.25,
		HoverRadiusMax:    0.5,
		CursorOffset:      3,
		SphereRadius:      2.5,
		AutoRotateStart:   0,
		AutoRotateAccel:   0.00005,
		AutoRotateMax:     0.002,
		DragSensitivity:   0.01,
		ScatterSpan:       mgl64.Vec3{4, 4, 3},
		ParticleRadius:    0.04,
		ParticleOpacity:   0.8,
		Surface:           surface.DefaultThresholds(),
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unknown keys and unparsable values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	floats := map[string]*float64{
		"start_depth":         &c.StartDepth,
		"scroll_travel":       &c.ScrollTravel,
		"trigger_progress":    &c.TriggerProgress,
		"camera_lerp":         &c.CameraLerp,
		"follow_lerp":         &c.FollowLerp,
		"converge_lerp":       &c.ConvergeLerp,
		"hover_range":         &c.HoverRange,
		"sphere_radius":       &c.SphereRadius,
		"auto_rotate_start":   &c.AutoRotateStart,
		"auto_rotate_accel":   &c.AutoRotateAccel,
		"auto_rotate_max":     &c.AutoRotateMax,
		"drag_sensitivity":    &c.DragSensitivity,
		"polar_latitude":      &c.Surface.PolarLatitude,
		"desert_latitude":     &c.Surface.DesertLatitude,
		"desert_low":          &c.Surface.DesertLow,
		"desert_high":         &c.Surface.DesertHigh,
		"land_threshold":      &c.Surface.LandThreshold,
		"surface_band":        &c.Surface.BandAmplitude,
		"surface_grid":        &c.Surface.Grid,
		"particle_radius":     &c.ParticleRadius,
		"particle_opacity":    &c.ParticleOpacity,
		"intro_hide_progress": &c.IntroHideProgress,
	}
	for key, dst := range floats {
		v, ok := cfg[key]
		if !ok {
			continue
		}
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = parsed
		}
	}
	if c.Surface.DesertHigh < c.Surface.DesertLow {
		c.Surface.DesertHigh = c.Surface.DesertLow
	}
	if c.AutoRotateMax < c.AutoRotateStart {
		c.AutoRotateMax = c.AutoRotateStart
	}
	return c
}

// GroupSpec describes one particle cluster.
type GroupSpec struct {
	Name      string
	Color     color.RGBA
	Count     int
	Anchor    mgl64.Vec2 // x, z; the anchor sits on y = 0
	Formation string
	Primary   surface.Category
	Backups   []surface.Category
}

// DefaultGroups returns the three clusters along the corridor, in
// assignment order.
func DefaultGroups() []GroupSpec {
	return []GroupSpec{
		{
			Name:      "green",
			Color:     color.RGBA{R: 0x00, G: 0xff, B: 0x88, A: 0xff},
			Count:     125,
			Anchor:    mgl64.Vec2{4, -15},
			Formation: "cube",
			Primary:   surface.Land,
			Backups:   []surface.Category{surface.Ocean, surface.Desert},
		},
		{
			Name:      "blue",
			Color:     color.RGBA{R: 0x00, G: 0x88, B: 0xff, A: 0xff},
			Count:     150,
			Anchor:    mgl64.Vec2{-4, -35},
			Formation: "wave",
			Primary:   surface.Ocean,
			Backups:   []surface.Category{surface.Land, surface.Desert},
		},
		{
			Name:      "red",
			Color:     color.RGBA{R: 0xff, G: 0x33, B: 0x44, A: 0xff},
			Count:     125,
			Anchor:    mgl64.Vec2{4, -55},
			Formation: "pyramid",
			Primary:   surface.Desert,
			Backups:   []surface.Category{surface.Land, surface.Ocean},
		},
	}
}
