package electrical

import (
	"fmt"
	"math"
	"strings"
)

// ParallelImbalanceLimit is the deviation (percentage points from 50 %) above
// which the current split between two parallel cables is flagged
const ParallelImbalanceLimit = 10.0

// ParallelSplit is the division of a load current between two parallel cables
type ParallelSplit struct {
	I1, I2         float64 // A
	Share1, Share2 float64 // % of the total current
	Imbalance      float64 // percentage points from an even split
	Unbalanced     bool
}

// SplitParallel divides total between two parallel cables of impedance z1 and z2:
// I1 = I·Z2/(Z1+Z2), I2 = I·Z1/(Z1+Z2).
func SplitParallel(total, z1, z2 float64) (ParallelSplit, error) {
	if !(z1 > 0) || !(z2 > 0) || math.IsInf(z1+z2, 0) {
		return ParallelSplit{}, fmt.Errorf("parallel cable impedances must be positive, got %g and %g Ω", z1, z2)
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return ParallelSplit{}, fmt.Errorf("parallel cable current must be positive, got %g A", total)
	}

	sum := z1 + z2
	s := ParallelSplit{
		I1: total * z2 / sum,
		I2: total * z1 / sum,
	}
	s.Share1 = s.I1 / total * 100
	s.Share2 = s.I2 / total * 100
	s.Imbalance = math.Abs(s.Share1 - 50)
	s.Unbalanced = s.Imbalance > ParallelImbalanceLimit
	return s, nil
}

// ProtectionScheme is where parallel cables are protected
type ProtectionScheme string

const (
	SupplyEnd ProtectionScheme = "single"     // one device at the supply end
	BothEnds  ProtectionScheme = "double"     // devices at supply and load end
	PerCable  ProtectionScheme = "individual" // one device per cable
)

// ParseProtectionScheme converts a scheme tag into a ProtectionScheme
func ParseProtectionScheme(s string) (ProtectionScheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "supply", "supply-end":
		return SupplyEnd, nil
	case "double", "both", "both-ends":
		return BothEnds, nil
	case "individual", "per-cable", "each":
		return PerCable, nil
	}
	return "", fmt.Errorf("unknown protection scheme %q", s)
}

// ParallelProtection is the short-circuit protection verdict of parallel cables
type ParallelProtection struct {
	Scheme   ProtectionScheme
	Adequate bool // Ik >= 2·In
	Note     string
}

// CheckParallelProtection verifies that a fault current ik can operate a
// device of rating in protecting parallel cables
func CheckParallelProtection(scheme ProtectionScheme, ik, in float64, split ParallelSplit) ParallelProtection {
	p := ParallelProtection{Scheme: scheme, Adequate: ik >= 2*in}

	switch scheme {
	case SupplyEnd:
		if p.Adequate {
			p.Note = fmt.Sprintf("Supply-end device %.0f A operates at Ik = %.0f A, but a fault in one cable is still fed through the other.", in, ik)
		} else {
			p.Note = fmt.Sprintf("Ik = %.0f A may not operate the %.0f A supply-end device. Protect both ends or each cable.", ik, in)
		}
	case BothEnds:
		if p.Adequate {
			p.Note = fmt.Sprintf("Devices at both ends (%.0f A) isolate a faulted cable at Ik = %.0f A.", in, ik)
		} else {
			p.Note = fmt.Sprintf("Ik = %.0f A may not operate the %.0f A devices at both ends.", ik, in)
		}
	case PerCable:
		if p.Adequate {
			p.Note = fmt.Sprintf("Each cable has its own device, set to its share (%.1f A / %.1f A).", split.I1, split.I2)
		} else {
			p.Note = fmt.Sprintf("Ik = %.0f A may not operate the per-cable devices; set each to its share (%.1f A / %.1f A).", ik, split.I1, split.I2)
		}
	}
	return p
}
