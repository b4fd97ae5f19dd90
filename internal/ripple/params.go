package ripple

import "fmt"

// Params is the immutable configuration of a ripple run. Lengths are in
// metres, counts in grains or impact events.
type Params struct {
	NBins        int     // number of cells; the grid has NBins+1 positions
	BinWidth     float64 // cell width
	GrainSize    float64 // grain diameter
	ImpactAngle  float64 // trajectory slope (dimensionless, 0.176 is ~10 degrees)
	NEjected     int     // grains moved per impact
	NGrainsFired int     // impact events after the first; the run fires NGrainsFired+1
	PlotEvery    int     // render cadence in impacts
	SaveEvery    int     // snapshot cadence in impacts
}

// Reference run defaults.
const (
	DefaultNBins        = 200
	DefaultBinWidth     = 0.01
	DefaultGrainSize    = 0.0005
	DefaultImpactAngle  = 0.176
	DefaultNEjected     = 10
	DefaultNGrainsFired = 25000
	DefaultPlotEvery    = 500
	DefaultSaveEvery    = 5000
)

// DefaultParams returns the parameters of the reference run.
func DefaultParams() Params {
	return Params{
		NBins:        DefaultNBins,
		BinWidth:     DefaultBinWidth,
		GrainSize:    DefaultGrainSize,
		ImpactAngle:  DefaultImpactAngle,
		NEjected:     DefaultNEjected,
		NGrainsFired: DefaultNGrainsFired,
		PlotEvery:    DefaultPlotEvery,
		SaveEvery:    DefaultSaveEvery,
	}
}

// Validate checks that every parameter is positive and that a cell holds
// more than one grain.
func (p Params) Validate() error {
	switch {
	case p.NBins <= 0:
		return fmt.Errorf("%w: n_bins must be positive, got %d", ErrInvalidParams, p.NBins)
	case p.BinWidth <= 0:
		return fmt.Errorf("%w: bin_width must be positive, got %g", ErrInvalidParams, p.BinWidth)
	case p.GrainSize <= 0:
		return fmt.Errorf("%w: grain_size must be positive, got %g", ErrInvalidParams, p.GrainSize)
	case p.BinWidth <= p.GrainSize:
		return fmt.Errorf("%w: bin_width (%g) must exceed grain_size (%g)", ErrInvalidParams, p.BinWidth, p.GrainSize)
	case p.ImpactAngle <= 0:
		return fmt.Errorf("%w: impact_angle must be positive, got %g", ErrInvalidParams, p.ImpactAngle)
	case p.NEjected <= 0:
		return fmt.Errorf("%w: n_ejected must be positive, got %d", ErrInvalidParams, p.NEjected)
	case p.NGrainsFired <= 0:
		return fmt.Errorf("%w: n_grains_fired must be positive, got %d", ErrInvalidParams, p.NGrainsFired)
	case p.PlotEvery <= 0:
		return fmt.Errorf("%w: plot_every must be positive, got %d", ErrInvalidParams, p.PlotEvery)
	case p.SaveEvery <= 0:
		return fmt.Errorf("%w: save_every must be positive, got %d", ErrInvalidParams, p.SaveEvery)
	}
	return nil
}

// GrainsPerBin is the number of grain diameters that fit in one cell.
func (p Params) GrainsPerBin() float64 {
	return p.BinWidth / p.GrainSize
}

// TransferAmount is the elevation removed from the impact cell, and added
// downstream, by a single impact.
func (p Params) TransferAmount() float64 {
	return p.GrainSize * float64(p.NEjected) / p.GrainsPerBin()
}

// TotalEvents is the number of impact events in a full run.
func (p Params) TotalEvents() int {
	return p.NGrainsFired + 1
}

// SnapshotSlots is the size of the snapshot buffer: the initial flat profile
// plus one slot per save cadence tick within the run.
func (p Params) SnapshotSlots() int {
	return p.TotalEvents()/p.SaveEvery + 1
}
