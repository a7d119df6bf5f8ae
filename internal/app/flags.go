package app

import (
	"flag"
	"time"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Settings       string
	Seed           int64
	TPS            int
	Width          int
	Height         int
	PageLength     float64
	WheelStep      float64
	Telemetry      string
	TelemetryEvery int
	ShutdownWait   time.Duration
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Seed:           42,
		TPS:            60,
		Width:          1280,
		Height:         720,
		PageLength:     4000,
		WheelStep:      60,
		TelemetryEvery: 6,
		ShutdownWait:   time.Second,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Settings, "settings", c.Settings, "path to a JSON settings file")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the scatter and target shuffle")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.Float64Var(&c.PageLength, "page", c.PageLength, "virtual scrollable page length in pixels")
	fs.Float64Var(&c.WheelStep, "wheel-step", c.WheelStep, "pixels scrolled per wheel notch or arrow key")
	fs.StringVar(&c.Telemetry, "telemetry", c.Telemetry, "address for the websocket snapshot stream (empty disables)")
	fs.IntVar(&c.TelemetryEvery, "telemetry-every", c.TelemetryEvery, "publish a snapshot every N frames")
	fs.DurationVar(&c.ShutdownWait, "shutdown-wait", c.ShutdownWait, "how long to wait for the telemetry server on exit")
}

// Scroller tracks a virtual page offset driven by wheel and key input.
type Scroller struct {
	Offset float64
	Max    float64
}

// Add moves the offset by delta pixels, clamped to the page.
func (s *Scroller) Add(delta float64) bool {
	next := s.Offset + delta
	if next < 0 {
		next = 0
	}
	if next > s.Max {
		next = s.Max
	}
	if next == s.Offset {
		return false
	}
	s.Offset = next
	return true
}
