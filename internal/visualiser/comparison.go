package visualiser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/ripples/internal/fsutil"
	"github.com/banshee-data/ripples/internal/ripple"
)

// ErrNoSnapshots is returned when there is nothing to plot.
var ErrNoSnapshots = errors.New("visualiser: no snapshots")

// ComparisonPlot builds the time series plot of a run: one line per
// snapshot, each lifted by SnapshotOffset so the ripples can be compared.
func ComparisonPlot(positions []float64, snaps []ripple.Snapshot) (*plot.Plot, error) {
	if len(snaps) == 0 {
		return nil, ErrNoSnapshots
	}

	p := plot.New()
	p.Title.Text = "Ripple Time Series"
	p.X.Label.Text = "X [m]"
	p.Y.Label.Text = "Z [m]"

	colors := generateColors(len(snaps))
	for i, s := range snaps {
		if len(s.Profile) != len(positions) {
			return nil, fmt.Errorf("snapshot %d: %d heights for %d positions", s.Impacts, len(s.Profile), len(positions))
		}
		off := SnapshotOffset(i)
		pts := make(plotter.XYs, len(positions))
		for j, x := range positions {
			pts[j] = plotter.XY{X: x, Y: s.Profile[j] + off}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = colors[i]
		line.Width = vg.Points(3)
		p.Add(line)
		p.Legend.Add(SnapshotLabel(s), line)
	}

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = 10
	p.Legend.YOffs = -10
	return p, nil
}

// SaveComparisonPlot writes the comparison plot of snaps to path. The format
// follows the file extension (.png, .svg, .pdf).
func SaveComparisonPlot(fsys fsutil.FileSystem, path string, positions []float64, snaps []ripple.Snapshot) error {
	p, err := ComparisonPlot(positions, snaps)
	if err != nil {
		return err
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	wt, err := p.WriterTo(12*vg.Inch, 8*vg.Inch, format)
	if err != nil {
		return fmt.Errorf("save comparison plot: %w", err)
	}
	return writeFile(fsys, path, func(w io.Writer) error {
		_, err := wt.WriteTo(w)
		return err
	})
}

// writeFile creates path, and its directory, on fsys and fills it with fill.
func writeFile(fsys fsutil.FileSystem, path string, fill func(io.Writer) error) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fill(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
