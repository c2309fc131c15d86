package electrical

import "math"

// Thermal is the k²S² against I²t comparison for a fault
type Thermal struct {
	K          float64 // A·√s/mm²
	Capacity   float64 // A²s, Σ k²·S_i²
	LetThrough float64 // A²s, Ik²·t
	MinSection float64 // mm², √(Ik²·t)/k
	OK         bool    // Capacity > LetThrough
}

// CheckThermal compares conductor withstand with device let-through energy.
// Withstand holds only if the capacity is strictly greater than the let-through energy.
func CheckThermal(k float64, sizes []float64, ik, t float64) Thermal {
	th := Thermal{K: k}
	for _, s := range sizes {
		th.Capacity += k * k * s * s
	}
	th.LetThrough = ik * ik * t
	th.MinSection = MinThermalSection(k, ik, t)
	th.OK = th.Capacity > th.LetThrough
	return th
}

// MinThermalSection returns the smallest cross-section (mm²) that withstands Ik for t seconds
func MinThermalSection(k, ik, t float64) float64 {
	if k <= 0 || t <= 0 {
		return 0
	}
	return math.Sqrt(ik*ik*t) / k
}
