package prepare

import (
	"math/rand/v2"
	"slices"

	"github.com/sells-group/parking-dashboard/internal/model"
)

// SampleIndices picks n distinct indices from [0, total) using a PCG source
// seeded with seed. The result is sorted ascending, so callers keep source
// order. n >= total selects everything; n <= 0 selects nothing.
func SampleIndices(total, n int, seed uint64) []int {
	if n <= 0 || total <= 0 {
		return nil
	}
	if n >= total {
		idx := make([]int, total)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	idx := make([]int, total)
	for i := range idx {
		idx[i] = i
	}
	// partial Fisher-Yates
	for i := 0; i < n; i++ {
		j := i + rng.IntN(total-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	sel := idx[:n:n]
	slices.Sort(sel)
	return sel
}

// Sample returns the rows at SampleIndices(len(rows), n, seed).
func Sample(rows []model.GeocodedComplaint, n int, seed uint64) []model.GeocodedComplaint {
	idx := SampleIndices(len(rows), n, seed)
	out := make([]model.GeocodedComplaint, len(idx))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}
