package circuit

import "github.com/alexiusacademia/gocable/internal/hd60364"

// MinAluminiumSize is the smallest aluminium cross-section in use (mm²)
const MinAluminiumSize = 16.0

// single-phase copper circuits stay within the multi-core cable range
var (
	singlePhaseFeederSizes = []float64{2.5, 4, 6, 10, 16, 25, 35}
	singlePhaseBranchSizes = []float64{1.5, 2.5, 4, 6, 10, 16, 25, 35}
)

// Candidates returns the ascending cross-sections tried when auto-sizing
func Candidates(repo *hd60364.Repository, role Role, mat hd60364.Material, phase hd60364.Phase) []float64 {
	sizes := repo.Sizes()

	switch {
	case mat == hd60364.Aluminium:
		out := sizes[:0]
		for _, s := range sizes {
			if s >= MinAluminiumSize {
				out = append(out, s)
			}
		}
		return out
	case mat == hd60364.Copper && phase == hd60364.SinglePhase && role == Feeder:
		return append([]float64(nil), singlePhaseFeederSizes...)
	case mat == hd60364.Copper && phase == hd60364.SinglePhase:
		return append([]float64(nil), singlePhaseBranchSizes...)
	}
	return sizes
}
