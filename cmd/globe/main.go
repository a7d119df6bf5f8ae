//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"particle-globe/internal/app"
	"particle-globe/internal/choreo"
	"particle-globe/internal/config"
	"particle-globe/internal/scene"
	"particle-globe/internal/telemetry"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	settings, err := config.Load(cfg.Settings)
	if err != nil {
		log.Fatal(err)
	}
	if !flagSet("seed") && settings.Seed != nil {
		cfg.Seed = *settings.Seed
	}
	engineCfg, groups, err := settings.Resolve()
	if err != nil {
		log.Fatal(err)
	}
	engineCfg.Seed = cfg.Seed

	total := 2
	for _, g := range groups {
		total += g.Count
	}
	sc := scene.New(total)
	engine, err := choreo.New(engineCfg, groups, sc)
	if err != nil {
		log.Fatal(err)
	}

	var hub *telemetry.Hub
	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan struct{})
	if cfg.Telemetry != "" {
		hub = telemetry.NewHub(4, nil)
		go func() {
			defer close(served)
			if err := hub.Serve(ctx, cfg.Telemetry, cfg.ShutdownWait); err != nil {
				log.Printf("telemetry disabled: %v", err)
			}
		}()
	} else {
		close(served)
	}

	game := app.New(engine, sc, hub, cfg)

	ebiten.SetWindowTitle("particle globe")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(game)

	cancel()
	select {
	case <-served:
	case <-time.After(cfg.ShutdownWait):
		log.Printf("telemetry: server still running after %s", cfg.ShutdownWait)
	}
	if hub != nil {
		hub.Close()
	}

	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Fatal(runErr)
	}
}

func flagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
