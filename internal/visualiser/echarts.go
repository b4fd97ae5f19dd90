package visualiser

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/ripples/internal/fsutil"
	"github.com/banshee-data/ripples/internal/ripple"
)

// EchartsAssetsHost serves the echarts JavaScript for rendered pages.
const EchartsAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// Vertical range of a single evolving profile.
const (
	frameYMin = -0.1
	frameYMax = 0.1
)

func profileData(positions, profile []float64) []opts.LineData {
	data := make([]opts.LineData, len(positions))
	for i, x := range positions {
		data[i] = opts.LineData{Value: []interface{}{x, profile[i]}}
	}
	return data
}

func newProfileLine(pageTitle, title, subtitle string, xMax float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: pageTitle, Width: "1200px", Height: "600px", AssetsHost: EchartsAssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "5%"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: 0, Max: xMax, Name: "X [m]", NameLocation: "middle", NameGap: 25}),
	)
	return line
}

// FrameChart is a line chart of a single frame, drawn on the fixed axes of
// the evolving profile view.
func FrameChart(fr ripple.Frame) *charts.Line {
	xMax := 0.0
	if n := len(fr.Positions); n > 0 {
		xMax = fr.Positions[n-1]
	}
	line := newProfileLine("Ripple Profile", "Time Evolving Profiles", fmt.Sprintf("Impacts [#]: %d", fr.Impacts), xMax)
	line.SetGlobalOptions(
		charts.WithYAxisOpts(opts.YAxis{Min: frameYMin, Max: frameYMax, Name: "Z [m]", NameLocation: "middle", NameGap: 40}),
	)
	line.AddSeries("profile", profileData(fr.Positions, fr.Profile),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
	)
	return line
}

// SnapshotChart is the interactive counterpart of ComparisonPlot.
func SnapshotChart(positions []float64, snaps []ripple.Snapshot) (*charts.Line, error) {
	if len(snaps) == 0 {
		return nil, ErrNoSnapshots
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("visualiser: no positions")
	}
	line := newProfileLine("Ripple Time Series", "Ripple Time Series",
		fmt.Sprintf("%d snapshots", len(snaps)), positions[len(positions)-1])
	line.SetGlobalOptions(
		charts.WithYAxisOpts(opts.YAxis{Name: "Z [m]", NameLocation: "middle", NameGap: 40}),
	)

	colors := generateColors(len(snaps))
	for i, s := range snaps {
		if len(s.Profile) != len(positions) {
			return nil, fmt.Errorf("snapshot %d: %d heights for %d positions", s.Impacts, len(s.Profile), len(positions))
		}
		line.AddSeries(SnapshotLabel(s), profileData(positions, offsetProfile(s.Profile, SnapshotOffset(i))),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Width: 3, Color: hexColor(colors[i])}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(colors[i])}),
		)
	}
	return line, nil
}

// EchartsPage renders charts as one HTML page to w.
func EchartsPage(w io.Writer, cs ...components.Charter) error {
	page := components.NewPage()
	page.SetAssetsHost(EchartsAssetsHost)
	page.AddCharts(cs...)
	return page.Render(w)
}

// WriteEchartsPage renders the run summary page (final frame and snapshot
// series) to path.
func WriteEchartsPage(fsys fsutil.FileSystem, path string, final ripple.Frame, snaps []ripple.Snapshot) error {
	series, err := SnapshotChart(final.Positions, snaps)
	if err != nil {
		return err
	}
	return writeFile(fsys, path, func(w io.Writer) error {
		return EchartsPage(w, FrameChart(final), series)
	})
}
