package electrical

import (
	"fmt"
	"math"
	"math/cmplx"
)

// ShortCircuit is a prospective short-circuit current and the loop that drives it
type ShortCircuit struct {
	SourceZ complex128 // Ω
	TotalZ  complex128 // Ω, source plus cable loop
	Current complex128 // A
}

// Magnitude returns |Ik| in A
func (s ShortCircuit) Magnitude() float64 {
	return cmplx.Abs(s.Current)
}

// Angle returns the principal argument of Ik in degrees
func (s ShortCircuit) Angle() float64 {
	return AngleDeg(s.Current)
}

func (s ShortCircuit) String() string {
	return FormatCurrent(s.Current)
}

// MinShortCircuit returns Ik,min = U / (U/I_min,supply + 2·Z_cable,min).
// zCable is the sum of the minimum-study impedances from source to fault point.
func MinShortCircuit(u, iMinSupply float64, zCable complex128) (ShortCircuit, error) {
	if u <= 0 || iMinSupply <= 0 {
		return ShortCircuit{}, fmt.Errorf("invalid supply: U = %g V, I_min,supply = %g A", u, iMinSupply)
	}
	zSup := complex(u/iMinSupply, 0)
	total := zSup + 2*zCable
	return ShortCircuit{
		SourceZ: zSup,
		TotalZ:  total,
		Current: complex(u, 0) / total,
	}, nil
}

// SourceImpedance returns Z = U/Ik·(cosφ − j·sinφ) for a source short-circuit level
func SourceImpedance(u, ikSource, cosPhi float64) complex128 {
	sinPhi := math.Sqrt(math.Max(0, 1-cosPhi*cosPhi))
	mag := u / ikSource
	return complex(mag*cosPhi, -mag*sinPhi)
}

// MaxShortCircuit returns Ik,max = U / (Z_source + Z_cable,max)
func MaxShortCircuit(u, ikSource, cosPhi float64, zCable complex128) (ShortCircuit, error) {
	if u <= 0 || ikSource <= 0 {
		return ShortCircuit{}, fmt.Errorf("invalid source: U = %g V, Ik = %g A", u, ikSource)
	}
	if cosPhi < 0 || cosPhi > 1 {
		return ShortCircuit{}, fmt.Errorf("invalid source power factor %g", cosPhi)
	}
	zSrc := SourceImpedance(u, ikSource, cosPhi)
	total := zSrc + zCable
	return ShortCircuit{
		SourceZ: zSrc,
		TotalZ:  total,
		Current: complex(u, 0) / total,
	}, nil
}

// AngleDeg returns the principal argument of c in degrees
func AngleDeg(c complex128) float64 {
	return cmplx.Phase(c) * 180 / math.Pi
}

// FromPolar rebuilds a complex value from magnitude and angle in degrees
func FromPolar(mag, deg float64) complex128 {
	return cmplx.Rect(mag, deg*math.Pi/180)
}

// FormatCurrent renders a complex current as magnitude and angle
func FormatCurrent(c complex128) string {
	return fmt.Sprintf("%.1f A (angle %.1f°)", cmplx.Abs(c), AngleDeg(c))
}
