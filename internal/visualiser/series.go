package visualiser

import (
	"strconv"

	"github.com/banshee-data/ripples/internal/ripple"
)

// snapshotOffsets stack successive snapshots so the profiles do not overlap
// in a comparison plot.
var snapshotOffsets = []float64{0, 0.02, 0.05, 0.1, 0.15, 0.23}

// SnapshotOffset returns the vertical offset of the i-th snapshot. Past the
// table the last step is repeated.
func SnapshotOffset(i int) float64 {
	n := len(snapshotOffsets)
	if i < n {
		return snapshotOffsets[i]
	}
	step := snapshotOffsets[n-1] - snapshotOffsets[n-2]
	return snapshotOffsets[n-1] + step*float64(i-n+1)
}

// SnapshotLabel is the legend entry for a snapshot.
func SnapshotLabel(s ripple.Snapshot) string {
	if s.Impacts == 0 {
		return "0 impacts"
	}
	return strconv.Itoa(s.Impacts)
}

// offsetProfile returns profile shifted up by off.
func offsetProfile(profile []float64, off float64) []float64 {
	out := make([]float64, len(profile))
	for i, z := range profile {
		out[i] = z + off
	}
	return out
}
