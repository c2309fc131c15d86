package electrical

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gocable/internal/hd60364"
)

// Drop is a voltage drop
type Drop struct {
	Volts   float64 // V
	Percent float64 // % of nominal voltage
}

// Add returns the sum of two drops on the same nominal voltage
func (d Drop) Add(o Drop) Drop {
	return Drop{Volts: d.Volts + o.Volts, Percent: d.Percent + o.Percent}
}

func (d Drop) String() string {
	return fmt.Sprintf("%.2f V (%.2f %%)", d.Volts, d.Percent)
}

// DropInput holds the circuit quantities of the voltage drop formula
type DropInput struct {
	Voltage  float64 // V, nominal
	Current  float64 // A
	Material hd60364.Material
	Size     float64 // mm²
	Length   float64 // m
	Phase    hd60364.Phase
	CosPhi   float64
}

// VoltageDrop returns du = b·(q·L/S·cosφ + λ·L·sinφ)·I with b = 1 for
// three-phase and b = 2 for single-phase circuits.
func VoltageDrop(repo *hd60364.Repository, in DropInput) (Drop, error) {
	if in.Voltage <= 0 || in.Size <= 0 {
		return Drop{}, fmt.Errorf("invalid voltage drop input: U = %g V, S = %g mm²", in.Voltage, in.Size)
	}
	if _, err := repo.Cable(in.Material, in.Size); err != nil {
		return Drop{}, err
	}
	k, err := repo.Constants(in.Material)
	if err != nil {
		return Drop{}, err
	}

	b := 2.0
	if in.Phase == hd60364.ThreePhase {
		b = 1.0
	}
	sinPhi := math.Sqrt(math.Max(0, 1-in.CosPhi*in.CosPhi))

	du := b * (k.Q*in.Length/in.Size*in.CosPhi + k.Lambda*in.Length*sinPhi) * in.Current
	return Drop{Volts: du, Percent: du / in.Voltage * 100}, nil
}
