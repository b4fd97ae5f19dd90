// Command ripples runs the 1-D saltation ripple simulation and writes the
// snapshot plots of the run.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/ripples/internal/config"
	"github.com/banshee-data/ripples/internal/fsutil"
	"github.com/banshee-data/ripples/internal/live"
	"github.com/banshee-data/ripples/internal/monitoring"
	"github.com/banshee-data/ripples/internal/ripple"
	"github.com/banshee-data/ripples/internal/version"
	"github.com/banshee-data/ripples/internal/visualiser"
)

var (
	configPath  = flag.String("config", "", "Path to a JSON run config (default: reference run)")
	seed        = flag.Uint64("seed", 0, "Launch height seed; 0 uses the config seed, then the clock")
	impacts     = flag.Int("impacts", 0, "Override n_grains_fired when > 0")
	plotDir     = flag.String("plot-dir", "plots", "Directory for run plots; empty disables them")
	liveAddr    = flag.String("live", "", "Serve the live profile on this address, e.g. :8090")
	asciiFrames = flag.Bool("ascii", false, "Draw every frame in the terminal")
	quiet       = flag.Bool("quiet", false, "Silence progress logging")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

const (
	comparisonFile = "profiles.png"
	pageFile       = "profiles.html"
)

type runOptions struct {
	cfg      *config.RippleConfig
	seed     uint64
	plotDir  string
	fsys     fsutil.FileSystem // plot destination
	liveAddr string
	ascii    io.Writer // nil disables terminal frames
}

// loadConfig reads the run config, or the reference run when path is empty,
// and applies the -impacts override.
func loadConfig(path string, impacts int) (*config.RippleConfig, error) {
	cfg := config.DefaultRippleConfig()
	if path != "" {
		var err error
		if cfg, err = config.LoadRippleConfig(path); err != nil {
			return nil, err
		}
	}
	if impacts > 0 {
		cfg.NGrainsFired = &impacts
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// run fires the whole simulation and writes its plots. With a live address
// the server keeps serving the finished run until ctx is cancelled. A
// cancelled run still returns, and plots, its partial result.
func run(ctx context.Context, o runOptions) (*ripple.Result, error) {
	simOpts := []ripple.Option{ripple.WithProgressEvery(o.cfg.GetProgressEvery())}
	s := o.seed
	if s == 0 {
		s = o.cfg.GetSeed()
	}
	if s != 0 {
		simOpts = append(simOpts, ripple.WithSeed(s))
	}
	if o.ascii != nil {
		simOpts = append(simOpts, ripple.WithFrameSink(visualiser.NewTerminalRenderer(o.ascii, visualiser.WithClearScreen())))
	}
	var feed *live.Feed
	if o.liveAddr != "" {
		feed = live.NewFeed()
		simOpts = append(simOpts, ripple.WithFrameSink(feed))
	}

	sim, err := ripple.NewSimulator(o.cfg.ToParams(), simOpts...)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	var res *ripple.Result
	g.Go(func() error {
		var runErr error
		res, runErr = sim.Run(gctx)
		if feed != nil {
			feed.SetResult(res)
		}
		if err := writePlots(o.fsys, o.plotDir, res); err != nil {
			return errors.Join(runErr, err)
		}
		if runErr == nil && feed != nil {
			monitoring.Logf("run %s complete; live view on %s until interrupted", res.RunID, o.liveAddr)
		}
		return runErr
	})
	if feed != nil {
		srv := live.NewServer(live.Config{Address: o.liveAddr, Feed: feed})
		g.Go(func() error {
			return srv.Start(gctx)
		})
	}

	err = g.Wait()
	return res, err
}

// writePlots writes the comparison PNG and the HTML page of res under
// dir/<run id>.
func writePlots(fsys fsutil.FileSystem, dir string, res *ripple.Result) error {
	if dir == "" || res == nil {
		return nil
	}
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	out := filepath.Join(dir, res.RunID)
	if err := visualiser.SaveComparisonPlot(fsys, filepath.Join(out, comparisonFile), res.Positions, res.Snapshots); err != nil {
		return err
	}
	final := ripple.Frame{Impacts: res.Stats.Events, Positions: res.Positions, Profile: res.Profile}
	if err := visualiser.WriteEchartsPage(fsys, filepath.Join(out, pageFile), final, res.Snapshots); err != nil {
		return err
	}
	monitoring.Logf("run %s: plots written to %s", res.RunID, out)
	return nil
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("ripples"))
		return
	}
	if *quiet {
		monitoring.SetLogger(nil)
	}

	cfg, err := loadConfig(*configPath, *impacts)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var ascii io.Writer
	if *asciiFrames {
		ascii = os.Stdout
	}

	res, err := run(ctx, runOptions{
		cfg:      cfg,
		seed:     *seed,
		plotDir:  *plotDir,
		fsys:     fsutil.OSFileSystem{},
		liveAddr: *liveAddr,
		ascii:    ascii,
	})
	switch {
	case errors.Is(err, context.Canceled) && res != nil:
		monitoring.Logf("run %s interrupted after %d impacts", res.RunID, res.Stats.Events)
	case err != nil:
		log.Fatalf("ripples: %v", err)
	}
}
