package ripple

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Field is a one-dimensional elevation profile over an evenly spaced grid.
// The grid is fixed at construction; only the heights change.
type Field struct {
	binWidth  float64
	positions []float64
	heights   []float64
}

// NewField returns a flat field of nBins+1 cells spaced binWidth apart,
// starting at x = 0.
func NewField(nBins int, binWidth float64) *Field {
	return NewFieldFromHeights(binWidth, make([]float64, nBins+1))
}

// NewFieldFromHeights returns a field with one cell per height. The heights
// are copied.
func NewFieldFromHeights(binWidth float64, heights []float64) *Field {
	f := &Field{
		binWidth:  binWidth,
		positions: make([]float64, len(heights)),
		heights:   make([]float64, len(heights)),
	}
	for i := range f.positions {
		f.positions[i] = float64(i) * binWidth
	}
	copy(f.heights, heights)
	return f
}

// Len returns the number of cells.
func (f *Field) Len() int {
	return len(f.heights)
}

// Last returns the index of the last cell.
func (f *Field) Last() int {
	return len(f.heights) - 1
}

// BinWidth returns the cell spacing.
func (f *Field) BinWidth() float64 {
	return f.binWidth
}

// Position returns the x coordinate of cell i.
func (f *Field) Position(i int) float64 {
	f.checkIndex(i)
	return f.positions[i]
}

// Positions returns a copy of the grid coordinates.
func (f *Field) Positions() []float64 {
	out := make([]float64, len(f.positions))
	copy(out, f.positions)
	return out
}

// HeightAt returns the elevation of cell i.
func (f *Field) HeightAt(i int) float64 {
	f.checkIndex(i)
	return f.heights[i]
}

// Erode lowers cell i by amount. Heights may go negative.
func (f *Field) Erode(i int, amount float64) {
	f.checkIndex(i)
	f.heights[i] -= amount
}

// Deposit raises cell i by amount.
func (f *Field) Deposit(i int, amount float64) {
	f.checkIndex(i)
	f.heights[i] += amount
}

// DownstreamOf returns the cell that receives material ejected from cell i,
// wrapping from the last cell to cell 0.
func (f *Field) DownstreamOf(i int) int {
	f.checkIndex(i)
	return (i + 1) % len(f.heights)
}

// EnforcePeriodicBoundary ties the first cell to the last so the two ends of
// the domain describe the same point.
func (f *Field) EnforcePeriodicBoundary() {
	f.heights[0] = f.heights[len(f.heights)-1]
}

// Recenter subtracts the mean elevation from every cell and returns the mean
// that was removed.
func (f *Field) Recenter() float64 {
	mean := stat.Mean(f.heights, nil)
	floats.AddConst(-mean, f.heights)
	return mean
}

// Sum returns the total elevation over all cells.
func (f *Field) Sum() float64 {
	return floats.Sum(f.heights)
}

// Mean returns the mean elevation.
func (f *Field) Mean() float64 {
	return stat.Mean(f.heights, nil)
}

// Snapshot returns an independent copy of the elevation profile.
func (f *Field) Snapshot() []float64 {
	out := make([]float64, len(f.heights))
	copy(out, f.heights)
	return out
}

// checkIndex panics on an out-of-range cell index; callers inside the
// package never produce one.
func (f *Field) checkIndex(i int) {
	if i < 0 || i >= len(f.heights) {
		panic(fmt.Sprintf("ripple: cell index %d out of range [0, %d)", i, len(f.heights)))
	}
}
