package electrical

import (
	"fmt"

	"github.com/alexiusacademia/gocable/internal/hd60364"
)

// Study selects the resistance multiplier of a short-circuit study
type Study int

const (
	// MinStudy models conductor heating during the fault (R × 1.5)
	MinStudy Study = iota
	// MaxStudy uses the 20 °C resistance (R × 1.0)
	MaxStudy
)

// RFactor returns the resistance multiplier of the study
func (s Study) RFactor() float64 {
	if s == MinStudy {
		return 1.5
	}
	return 1.0
}

func (s Study) String() string {
	if s == MinStudy {
		return "min"
	}
	return "max"
}

// Conductors returns the cable conductor count used for reactance lookup.
// Single-phase circuits with a protective conductor are treated as 4-conductor cables.
func Conductors(phase hd60364.Phase) int {
	if phase == hd60364.ThreePhase {
		return 3
	}
	return 4
}

// SegmentImpedance returns Z = L/1000·(Rf·R + jX) in Ω for a cable run of length m
func SegmentImpedance(repo *hd60364.Repository, mat hd60364.Material, size, length float64, phase hd60364.Phase, study Study) (complex128, error) {
	c, err := repo.Cable(mat, size)
	if err != nil {
		return 0, err
	}
	x, err := repo.Reactance(mat, size, Conductors(phase))
	if err != nil {
		return 0, err
	}

	km := length / 1000
	return complex(km*study.RFactor()*c.Resistance, km*x), nil
}

// FormatImpedance renders a complex impedance as "R + jX Ω"
func FormatImpedance(z complex128) string {
	return fmt.Sprintf("%.5f + j%.5f Ω", real(z), imag(z))
}
