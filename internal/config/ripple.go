package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/ripples/internal/ripple"
)

// DefaultConfigPath is the path to the canonical run defaults file.
const DefaultConfigPath = "config/ripple.defaults.json"

// RippleConfig is the JSON run configuration. Every field is optional; the
// Get* accessors fall back to the reference run for anything left unset.
type RippleConfig struct {
	// Grid and grains
	NBins     *int     `json:"n_bins,omitempty"`
	BinWidth  *float64 `json:"bin_width,omitempty"`  // metres
	GrainSize *float64 `json:"grain_size,omitempty"` // metres

	// Impacts
	ImpactAngle  *float64 `json:"impact_angle,omitempty"`
	NEjected     *int     `json:"n_ejected,omitempty"`
	NGrainsFired *int     `json:"n_grains_fired,omitempty"`
	Seed         *uint64  `json:"seed,omitempty"` // 0 picks a time-based seed

	// Cadences
	PlotEvery     *int `json:"plot_every,omitempty"`
	SaveEvery     *int `json:"save_every,omitempty"`
	ProgressEvery *int `json:"progress_every,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }
func ptrUint64(v uint64) *uint64    { return &v }

// Default cadence for progress log lines.
const DefaultProgressEvery = 5000

// DefaultRippleConfig returns a config with every field set to the reference
// run values.
func DefaultRippleConfig() *RippleConfig {
	return &RippleConfig{
		NBins:         ptrInt(ripple.DefaultNBins),
		BinWidth:      ptrFloat64(ripple.DefaultBinWidth),
		GrainSize:     ptrFloat64(ripple.DefaultGrainSize),
		ImpactAngle:   ptrFloat64(ripple.DefaultImpactAngle),
		NEjected:      ptrInt(ripple.DefaultNEjected),
		NGrainsFired:  ptrInt(ripple.DefaultNGrainsFired),
		Seed:          ptrUint64(0),
		PlotEvery:     ptrInt(ripple.DefaultPlotEvery),
		SaveEvery:     ptrInt(ripple.DefaultSaveEvery),
		ProgressEvery: ptrInt(DefaultProgressEvery),
	}
}

// LoadRippleConfig loads a RippleConfig from a JSON file.
// The file must have a .json extension and be under 1MB. Omitted fields keep
// their defaults, so partial configs are safe.
func LoadRippleConfig(path string) (*RippleConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &RippleConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath from the current directory or
// one of its parents. Panics if the file cannot be loaded; intended for tests.
func MustLoadDefaultConfig() *RippleConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,       // from cmd/
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadRippleConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks the fields that are set. Unset fields take defaults, which
// are always valid.
func (c *RippleConfig) Validate() error {
	positiveInts := []struct {
		name string
		v    *int
	}{
		{"n_bins", c.NBins},
		{"n_ejected", c.NEjected},
		{"n_grains_fired", c.NGrainsFired},
		{"plot_every", c.PlotEvery},
		{"save_every", c.SaveEvery},
	}
	for _, f := range positiveInts {
		if f.v != nil && *f.v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", f.name, *f.v)
		}
	}

	positiveFloats := []struct {
		name string
		v    *float64
	}{
		{"bin_width", c.BinWidth},
		{"grain_size", c.GrainSize},
		{"impact_angle", c.ImpactAngle},
	}
	for _, f := range positiveFloats {
		if f.v != nil && *f.v <= 0 {
			return fmt.Errorf("%s must be positive, got %g", f.name, *f.v)
		}
	}

	if c.ProgressEvery != nil && *c.ProgressEvery < 0 {
		return fmt.Errorf("progress_every must be non-negative, got %d", *c.ProgressEvery)
	}

	// Checked on the effective values so a partial config cannot pair a custom
	// grain size with the default bin width.
	if bw, gs := c.GetBinWidth(), c.GetGrainSize(); bw <= gs {
		return fmt.Errorf("bin_width (%g) must exceed grain_size (%g)", bw, gs)
	}

	return nil
}

// ToParams returns the effective simulation parameters.
func (c *RippleConfig) ToParams() ripple.Params {
	return ripple.Params{
		NBins:        c.GetNBins(),
		BinWidth:     c.GetBinWidth(),
		GrainSize:    c.GetGrainSize(),
		ImpactAngle:  c.GetImpactAngle(),
		NEjected:     c.GetNEjected(),
		NGrainsFired: c.GetNGrainsFired(),
		PlotEvery:    c.GetPlotEvery(),
		SaveEvery:    c.GetSaveEvery(),
	}
}

// GetNBins returns the n_bins value or the default.
func (c *RippleConfig) GetNBins() int {
	if c.NBins == nil {
		return ripple.DefaultNBins
	}
	return *c.NBins
}

// GetBinWidth returns the bin_width value or the default.
func (c *RippleConfig) GetBinWidth() float64 {
	if c.BinWidth == nil {
		return ripple.DefaultBinWidth
	}
	return *c.BinWidth
}

// GetGrainSize returns the grain_size value or the default.
func (c *RippleConfig) GetGrainSize() float64 {
	if c.GrainSize == nil {
		return ripple.DefaultGrainSize
	}
	return *c.GrainSize
}

// GetImpactAngle returns the impact_angle value or the default.
func (c *RippleConfig) GetImpactAngle() float64 {
	if c.ImpactAngle == nil {
		return ripple.DefaultImpactAngle
	}
	return *c.ImpactAngle
}

// GetNEjected returns the n_ejected value or the default.
func (c *RippleConfig) GetNEjected() int {
	if c.NEjected == nil {
		return ripple.DefaultNEjected
	}
	return *c.NEjected
}

// GetNGrainsFired returns the n_grains_fired value or the default.
func (c *RippleConfig) GetNGrainsFired() int {
	if c.NGrainsFired == nil {
		return ripple.DefaultNGrainsFired
	}
	return *c.NGrainsFired
}

// GetSeed returns the seed value, 0 when unset.
func (c *RippleConfig) GetSeed() uint64 {
	if c.Seed == nil {
		return 0
	}
	return *c.Seed
}

// GetPlotEvery returns the plot_every value or the default.
func (c *RippleConfig) GetPlotEvery() int {
	if c.PlotEvery == nil {
		return ripple.DefaultPlotEvery
	}
	return *c.PlotEvery
}

// GetSaveEvery returns the save_every value or the default.
func (c *RippleConfig) GetSaveEvery() int {
	if c.SaveEvery == nil {
		return ripple.DefaultSaveEvery
	}
	return *c.SaveEvery
}

// GetProgressEvery returns the progress_every value or the default.
func (c *RippleConfig) GetProgressEvery() int {
	if c.ProgressEvery == nil {
		return DefaultProgressEvery
	}
	return *c.ProgressEvery
}
