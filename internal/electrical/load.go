package electrical

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gocable/internal/hd60364"
)

// Velander coefficients for all-year dwellings without electric heating
const (
	VelanderK1 = 0.24
	VelanderK2 = 2.31
)

// VelanderPower returns the peak demand (W) of n dwellings with an average
// consumption of w watts each: P = k1·W·n + k2·√(W·n), with W in kW.
func VelanderPower(w float64, n int) float64 {
	kw := w / 1000 * float64(n)
	return (VelanderK1*kw + VelanderK2*math.Sqrt(kw)) * 1000
}

// Occupancy is a building use with a specific load per floor area
type Occupancy string

const (
	Dwelling    Occupancy = "dwelling"
	Supermarket Occupancy = "supermarket"
	Retail      Occupancy = "retail"
	Office      Occupancy = "office"
	Storage     Occupancy = "storage"
)

// areaLoad is the design load per floor area (W/m²)
var areaLoad = map[Occupancy]float64{
	Dwelling:    30,
	Supermarket: 110,
	Retail:      70,
	Office:      40,
	Storage:     10,
}

// Occupancies lists the occupancy types in display order
func Occupancies() []Occupancy {
	return []Occupancy{Dwelling, Supermarket, Retail, Office, Storage}
}

// AreaLoad returns the design load per floor area (W/m²) of an occupancy
func AreaLoad(o Occupancy) (float64, error) {
	w, ok := areaLoad[Occupancy(strings.ToLower(string(o)))]
	if !ok {
		return 0, fmt.Errorf("unknown occupancy %q", o)
	}
	return w, nil
}

// AreaPower returns the design load (W) of a floor area
func AreaPower(area float64, o Occupancy) (float64, error) {
	w, err := AreaLoad(o)
	if err != nil {
		return 0, err
	}
	return area * w, nil
}

// DiversityPower returns the sum of the loads scaled by a diversity factor in (0, 1]
func DiversityPower(loads []float64, factor float64) (float64, error) {
	if !(factor > 0 && factor <= 1) {
		return 0, fmt.Errorf("diversity factor must be in (0, 1], got %g", factor)
	}
	var sum float64
	for _, p := range loads {
		sum += p
	}
	return sum * factor, nil
}

// LoadCurrent returns the design current (A) of a load of p watts:
// I = P/(√3·U·cosφ) for three-phase and I = P/(U·cosφ) for single-phase circuits.
func LoadCurrent(p, voltage float64, phase hd60364.Phase, cosPhi float64) (float64, error) {
	if !(voltage > 0) || !(cosPhi > 0 && cosPhi <= 1) {
		return 0, fmt.Errorf("invalid load data: U = %g V, cos φ = %g", voltage, cosPhi)
	}
	if phase == hd60364.ThreePhase {
		return p / (math.Sqrt(3) * voltage * cosPhi), nil
	}
	return p / (voltage * cosPhi), nil
}
