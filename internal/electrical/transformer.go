package electrical

import (
	"fmt"
	"math"
)

// Transformer is a distribution transformer feeding the installation
type Transformer struct {
	Rating     float64 // kVA
	Voltage    float64 // V, secondary line voltage
	UkPercent  float64 // %, short-circuit voltage
	CopperLoss float64 // W, load losses at rated current
}

// TransformerSource is the short-circuit level derived from transformer data
type TransformerSource struct {
	Impedance float64 // Ω, |Z| per phase
	CosPhi    float64
	Current   float64 // A, three-phase fault at the secondary terminals
}

// Source returns Z = uk·U²/(100·S), cosφ = Pcu·U²/(S²·Z) and Ik = U/(√3·Z)
func (t Transformer) Source() (TransformerSource, error) {
	if t.Rating <= 0 || t.Voltage <= 0 || t.UkPercent <= 0 {
		return TransformerSource{}, fmt.Errorf("invalid transformer data: S = %g kVA, U = %g V, uk = %g %%", t.Rating, t.Voltage, t.UkPercent)
	}
	if t.CopperLoss < 0 {
		return TransformerSource{}, fmt.Errorf("invalid transformer copper loss %g W", t.CopperLoss)
	}

	s := t.Rating * 1000
	z := t.UkPercent * t.Voltage * t.Voltage / (100 * s)
	cos := t.CopperLoss * t.Voltage * t.Voltage / (s * s * z)
	cos = math.Max(0, math.Min(1, cos))

	return TransformerSource{
		Impedance: z,
		CosPhi:    cos,
		Current:   t.Voltage / (math.Sqrt(3) * z),
	}, nil
}

// NetworkIk returns the source current that reproduces the transformer impedance
// in the U/Ik source model at network voltage u, so U/Ik,source = Z
func (s TransformerSource) NetworkIk(u float64) float64 {
	return u / s.Impedance
}
