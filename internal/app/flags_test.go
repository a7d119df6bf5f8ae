package app

import (
	"flag"
	"testing"
)

func TestBindOverridesDefaults(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("globe", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-seed", "7", "-telemetry", ":8081", "-page", "1000"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Seed != 7 || cfg.Telemetry != ":8081" || cfg.PageLength != 1000 {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.TPS != 60 {
		t.Fatalf("expected default tps 60, got %d", cfg.TPS)
	}
}

func TestScrollerClamps(t *testing.T) {
	s := Scroller{Max: 100}
	if s.Add(-10) {
		t.Fatal("scrolling up at the top should not move")
	}
	if !s.Add(60) || s.Offset != 60 {
		t.Fatalf("expected offset 60, got %v", s.Offset)
	}
	s.Add(60)
	if s.Offset != 100 {
		t.Fatalf("expected offset clamped to 100, got %v", s.Offset)
	}
	if s.Add(5) {
		t.Fatal("scrolling past the end should not move")
	}
}
