package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"particle-globe/internal/choreo"
	"particle-globe/internal/config"
	"particle-globe/internal/formation"
	"particle-globe/internal/surface"
	"particle-globe/internal/telemetry"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	settingsPath := flag.String("settings", "", "path to a JSON settings file")
	seed := flag.Int64("seed", 42, "first seed of the run")
	seeds := flag.Int("seeds", 1, "number of consecutive seeds to run")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel sessions")
	frames := flag.Int("frames", 900, "frames to simulate per session")
	ramp := flag.Int("ramp", 600, "frames the scripted scroll takes to reach the bottom")
	page := flag.Float64("page", 4000, "virtual page length in pixels")
	dumpFormations := flag.Int("formations", 0, "print the first N formation offsets of each group and exit")
	telemetryAddr := flag.String("telemetry", "", "stream the first session over websocket at this address")
	tps := flag.Int("tps", 60, "frame rate of the streamed session")
	var overrides kvList
	flag.Var(&overrides, "set", "engine override in key=value form (repeatable)")
	flag.Parse()

	settings, err := config.Load(*settingsPath)
	if err != nil {
		log.Fatal(err)
	}
	if settings.Engine == nil {
		settings.Engine = map[string]string{}
	}
	for _, kv := range overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			log.Fatalf("invalid override %q (want key=value)", kv)
		}
		settings.Engine[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	cfg, groups, err := settings.Resolve()
	if err != nil {
		log.Fatal(err)
	}

	if *dumpFormations > 0 {
		printFormations(groups, *dumpFormations)
		return
	}

	first := startSeed(*seed, flagSet("seed"), settings.Seed)
	sc := script{Frames: *frames, RampFrames: *ramp, PageLength: *page}

	var publish func(*choreo.Engine)
	if *telemetryAddr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		hub := telemetry.NewHub(4, nil)
		defer hub.Close()
		go func() {
			if err := hub.Serve(ctx, *telemetryAddr, time.Second); err != nil {
				log.Printf("telemetry disabled: %v", err)
			}
		}()
		interval := time.Second / time.Duration(max(*tps, 1))
		publish = func(e *choreo.Engine) {
			hub.Publish(e.Snapshot(true))
			time.Sleep(interval)
		}
	}

	if *seeds <= 1 {
		cfg.Seed = first
		res, err := runSession(cfg, groups, sc, publish)
		if err != nil {
			log.Fatal(err)
		}
		printResult(os.Stdout, res)
		return
	}

	fmt.Printf("Running %d seeds (%d workers, %d frames)\n", *seeds, *workers, *frames)

	jobs := make(chan int64)
	results := make(chan sessionResult)
	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				run := cfg
				run.Seed = s
				res, err := runSession(run, groups, sc, nil)
				if err != nil {
					log.Printf("seed %d: %v", s, err)
					continue
				}
				results <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for i := 0; i < *seeds; i++ {
			jobs <- first + int64(i)
		}
		close(jobs)
	}()

	start := time.Now()
	var all []sessionResult
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Seed < all[j].Seed })
	for _, res := range all {
		printResult(os.Stdout, res)
	}
	fmt.Printf("\n%d sessions in %s\n", len(all), time.Since(start).Round(time.Millisecond))
}

// startSeed prefers an explicit -seed flag, then the settings file, then
// the flag default.
func startSeed(flagValue int64, explicit bool, fromSettings *int64) int64 {
	if !explicit && fromSettings != nil {
		return *fromSettings
	}
	return flagValue
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

func printResult(out io.Writer, res sessionResult) {
	fmt.Fprintf(out, "seed %d: ", res.Seed)
	if !res.Converged {
		fmt.Fprintln(out, "did not converge")
	} else {
		fmt.Fprintf(out, "converged at frame %d, rotation (%.3f, %.3f, %.3f)\n",
			res.ConvergedAt, res.Rotation.X(), res.Rotation.Y(), res.Rotation.Z())
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  group\thover frames\tprimary\tbackup\trepeated\tfallback")
	for _, st := range res.Stats {
		fmt.Fprintf(tw, "  %s\t%d\t%d\t%v\t%d\t%d\n",
			st.Group, res.HoverFrames[st.Group], st.Primary, st.Backup, st.Repeated, st.Fallback)
	}
	tw.Flush()

	var cats []string
	for _, c := range surface.Categories {
		cats = append(cats, fmt.Sprintf("%s=%d", c, res.Categories[c]))
	}
	fmt.Fprintf(out, "  surface: %s\n", strings.Join(cats, " "))
	if res.Warnings != "" {
		fmt.Fprint(out, indent(res.Warnings))
	}
}

func printFormations(groups []choreo.GroupSpec, n int) {
	for _, g := range groups {
		fn, ok := formation.Lookup(g.Formation)
		if !ok {
			log.Fatalf("%s: unknown formation %q", g.Name, g.Formation)
		}
		fmt.Printf("%s (%s, %d particles)\n", g.Name, g.Formation, g.Count)
		for i := 0; i < n && i < g.Count; i++ {
			p := fn(i, g.Count)
			fmt.Printf("  %4d  % .4f % .4f % .4f\n", i, p.X(), p.Y(), p.Z())
		}
	}
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  ! " + l
	}
	return strings.Join(lines, "\n") + "\n"
}
