// Package config loads the optional settings file that overrides engine
// tunables and the group palette.
package config

import (
	"encoding/json"
	"image/color"
	"os"
	"strconv"

	"particle-globe/internal/choreo"
	"particle-globe/internal/formation"
	"particle-globe/internal/surface"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Settings mirrors the JSON settings file.
type Settings struct {
	Seed    *int64            `json:"seed,omitempty"`
	Engine  map[string]string `json:"engine,omitempty"`
	Surface SurfaceSettings   `json:"surface"`
	Groups  []GroupSettings   `json:"groups,omitempty"`
}

// SurfaceSettings overrides classifier thresholds; nil fields keep defaults.
type SurfaceSettings struct {
	PolarLatitude  *float64 `json:"polarLatitude,omitempty"`
	DesertLatitude *float64 `json:"desertLatitude,omitempty"`
	DesertLow      *float64 `json:"desertLow,omitempty"`
	DesertHigh     *float64 `json:"desertHigh,omitempty"`
	LandThreshold  *float64 `json:"landThreshold,omitempty"`
}

// GroupSettings describes one particle cluster in the settings file.
type GroupSettings struct {
	Name      string     `json:"name"`
	Color     string     `json:"color"`
	Count     int        `json:"count"`
	Anchor    [2]float64 `json:"anchor"`
	Formation string     `json:"formation"`
	Primary   string     `json:"primary"`
	Backups   []string   `json:"backups"`
}

// Load reads settings from path. A missing file yields empty settings.
func Load(path string) (Settings, error) {
	var s Settings
	if path == "" {
		return s, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, errors.Wrapf(err, "open settings %s", path)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&s); err != nil {
		return s, errors.Wrapf(err, "parse settings %s", path)
	}
	return s, nil
}

// Resolve merges the settings over the defaults.
func (s Settings) Resolve() (choreo.Config, []choreo.GroupSpec, error) {
	engine := make(map[string]string, len(s.Engine)+1)
	for k, v := range s.Engine {
		engine[k] = v
	}
	if s.Seed != nil {
		engine["seed"] = strconv.FormatInt(*s.Seed, 10)
	}
	cfg := choreo.FromMap(engine)
	s.Surface.apply(&cfg.Surface)

	if len(s.Groups) == 0 {
		return cfg, choreo.DefaultGroups(), nil
	}
	specs := make([]choreo.GroupSpec, 0, len(s.Groups))
	for i, g := range s.Groups {
		spec, err := g.spec()
		if err != nil {
			return cfg, nil, errors.Wrapf(err, "group %d", i)
		}
		specs = append(specs, spec)
	}
	return cfg, specs, nil
}

func (ss SurfaceSettings) apply(t *surface.Thresholds) {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&t.PolarLatitude, ss.PolarLatitude)
	set(&t.DesertLatitude, ss.DesertLatitude)
	set(&t.DesertLow, ss.DesertLow)
	set(&t.DesertHigh, ss.DesertHigh)
	set(&t.LandThreshold, ss.LandThreshold)
}

func (g GroupSettings) spec() (choreo.GroupSpec, error) {
	if g.Name == "" {
		return choreo.GroupSpec{}, errors.New("missing name")
	}
	if g.Count < 0 {
		return choreo.GroupSpec{}, errors.Errorf("%s: negative count %d", g.Name, g.Count)
	}
	if _, ok := formation.Lookup(g.Formation); !ok {
		return choreo.GroupSpec{}, errors.Errorf("%s: unknown formation %q (have %v)", g.Name, g.Formation, formation.Names())
	}
	col, err := ParseColor(g.Color)
	if err != nil {
		return choreo.GroupSpec{}, errors.Wrap(err, g.Name)
	}
	primary, err := surface.ParseCategory(g.Primary)
	if err != nil {
		return choreo.GroupSpec{}, errors.Wrap(err, g.Name)
	}
	backups := make([]surface.Category, 0, len(g.Backups))
	for _, b := range g.Backups {
		c, err := surface.ParseCategory(b)
		if err != nil {
			return choreo.GroupSpec{}, errors.Wrap(err, g.Name)
		}
		backups = append(backups, c)
	}
	return choreo.GroupSpec{
		Name:      g.Name,
		Color:     col,
		Count:     g.Count,
		Anchor:    mgl64.Vec2{g.Anchor[0], g.Anchor[1]},
		Formation: g.Formation,
		Primary:   primary,
		Backups:   backups,
	}, nil
}

// ParseColor parses a "#rrggbb" hex color into an opaque RGBA.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "color %q", hex)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
