package electrical

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gocable/internal/hd60364"
)

// EarthingSystem is the earthing arrangement of the installation
type EarthingSystem string

const (
	TN EarthingSystem = "TN"
	TT EarthingSystem = "TT"
)

// CableType is the construction of a cable with respect to its protective conductor
type CableType string

const (
	MultiCore  CableType = "multi-core"  // PE is a core of the cable
	SingleCore CableType = "single-core" // separate PE conductor
	Armoured   CableType = "armoured"    // armour used as PE
)

// CircuitKind is the use of a circuit for RCD and disconnection rules
type CircuitKind string

const (
	Socket         CircuitKind = "socket"
	FixedEquipment CircuitKind = "fixed-equipment"
	Distribution   CircuitKind = "distribution"
	Lighting       CircuitKind = "lighting"
)

// Location is where a circuit's equipment is installed
type Location string

const (
	Indoor   Location = "indoor"
	Bathroom Location = "bathroom"
	Outdoor  Location = "outdoor"
)

const (
	// TouchVoltageLimit is the permitted prospective touch voltage (V AC)
	TouchVoltageLimit = 50.0
	// ElectrodeResistanceHigh is the TT electrode resistance (Ω) above which fault currents get very low
	ElectrodeResistanceHigh = 100.0
	// PhaseToEarthVoltage is the default U0 (V)
	PhaseToEarthVoltage = 230.0
	// disconnectMultiple is the fault current, in multiples of In, assumed to disconnect in time
	disconnectMultiple = 5.0
)

// resistivity at 20 °C (Ω·mm²/m) for earth conductors missing from the cable table
var resistivity = map[hd60364.Material]float64{
	hd60364.Copper:    0.0175,
	hd60364.Aluminium: 0.0283,
}

// temperature coefficient of resistance (1/K)
var tempCoefficient = map[hd60364.Material]float64{
	hd60364.Copper:    0.00393,
	hd60364.Aluminium: 0.00403,
}

// ParseEarthingSystem converts "TN" or "TT"
func ParseEarthingSystem(s string) (EarthingSystem, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TN", "TN-S", "TN-C-S":
		return TN, nil
	case "TT":
		return TT, nil
	}
	return "", fmt.Errorf("unknown earthing system %q", s)
}

// ParseCableType converts a cable construction tag, defaulting to single-core
func ParseCableType(s string) (CableType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single-core", "single":
		return SingleCore, nil
	case "multi-core", "multi":
		return MultiCore, nil
	case "armoured", "armored":
		return Armoured, nil
	}
	return "", fmt.Errorf("unknown cable type %q", s)
}

// ParseCircuitKind converts a circuit use tag, defaulting to fixed equipment
func ParseCircuitKind(s string) (CircuitKind, error) {
	switch k := CircuitKind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return FixedEquipment, nil
	case Socket, FixedEquipment, Distribution, Lighting:
		return k, nil
	}
	return "", fmt.Errorf("unknown circuit kind %q", s)
}

// ParseLocation converts a location tag, defaulting to indoor
func ParseLocation(s string) (Location, error) {
	switch l := Location(strings.ToLower(strings.TrimSpace(s))); l {
	case "":
		return Indoor, nil
	case Indoor, Bathroom, Outdoor:
		return l, nil
	}
	return "", fmt.Errorf("unknown location %q", s)
}

// MinEarthConductor returns the smallest protective conductor (mm²) for a phase
// conductor of size mm². A PE core of a multi-core cable always equals the phase
// size; a separate PE is S up to 16 mm², 16 mm² up to 35 mm² and S/2 above.
// A TT distribution cable only needs the electrode conductor (6 mm² Cu, 10 mm² Al).
func MinEarthConductor(size float64, mat hd60364.Material, ct CableType, sys EarthingSystem, kind CircuitKind) float64 {
	switch {
	case sys == TT && kind == Distribution:
		if mat == hd60364.Aluminium {
			return 10
		}
		return 6
	case ct == MultiCore:
		return size
	case size <= 16:
		return size
	case size <= 35:
		return 16
	}
	return size / 2
}

// MinMainEarthConductor returns the smallest main earthing conductor (mm²)
func MinMainEarthConductor(mat hd60364.Material, protected bool) float64 {
	switch {
	case mat == hd60364.Copper && protected:
		return 6
	case mat == hd60364.Copper:
		return 16
	case protected:
		return 16
	}
	return 25
}

// EarthConductorResistance returns the 20 °C resistance (Ω/km) of a protective
// conductor, from the cable table when tabulated and from resistivity otherwise
func EarthConductorResistance(repo *hd60364.Repository, mat hd60364.Material, size float64) (float64, error) {
	if c, err := repo.Cable(mat, size); err == nil {
		return c.Resistance, nil
	}
	rho, ok := resistivity[mat]
	if !ok || size <= 0 {
		return 0, fmt.Errorf("%w: earth conductor %s %g mm²", hd60364.ErrMissingCableData, mat, size)
	}
	return rho * 1000 / size, nil
}

// PhaseResistance returns the phase conductor resistance (Ω/km) at temp °C
func PhaseResistance(repo *hd60364.Repository, mat hd60364.Material, size, temp float64) (float64, error) {
	c, err := repo.Cable(mat, size)
	if err != nil {
		return 0, err
	}
	return c.Resistance * (1 + tempCoefficient[mat]*(temp-20)), nil
}

// RCDRequirement is the residual current device a circuit needs
type RCDRequirement struct {
	Required    bool
	Sensitivity string // "30 mA", "300 mA" or "none"
	Delayed     bool   // time-delayed (selective) device
	Reason      string
}

// RCDFor returns the RCD requirement of a circuit. zsOK reports whether the
// overcurrent device alone disconnects in time.
func RCDFor(sys EarthingSystem, kind CircuitKind, in float64, loc Location, zsOK bool) RCDRequirement {
	rcd30 := func(reason string) RCDRequirement {
		return RCDRequirement{Required: true, Sensitivity: "30 mA", Reason: reason}
	}

	switch {
	case sys == TT && kind != Distribution:
		return rcd30("TT system, every final circuit needs an RCD")
	case kind == Socket && in <= 20:
		return rcd30("socket outlet circuit of 20 A or less")
	case loc == Bathroom:
		return rcd30("bathroom circuit")
	case loc == Outdoor:
		return rcd30("outdoor circuit")
	case !zsOK:
		return rcd30("Zs too high for the overcurrent device to disconnect in time")
	case kind == Distribution:
		return RCDRequirement{Sensitivity: "300 mA", Delayed: true, Reason: "recommended for fire protection"}
	}
	return RCDRequirement{Sensitivity: "none", Reason: "no RCD requirement"}
}

// EarthRun is one cable run of an earth-fault loop
type EarthRun struct {
	Length    float64 // m
	Size      float64 // mm², phase conductor
	EarthSize float64 // mm², protective conductor (0 = minimum for the phase size)
	CableType CableType
}

// EarthFaultInput describes a circuit for the earth-fault check
type EarthFaultInput struct {
	System       EarthingSystem
	SourceZs     float64 // Ω, loop impedance up to the origin of the circuit
	ElectrodeR   float64 // Ω, TT earth electrode resistance
	Voltage      float64 // V, U0 (0 = 230 V)
	DeviceRating float64 // A
	Material     hd60364.Material
	Kind         CircuitKind
	Location     Location
	Runs         []EarthRun
}

// EarthFault is the result of the earth-fault check
type EarthFault struct {
	PhaseR       float64 // Ω, R1 at 70 °C
	EarthR       float64 // Ω, R2 at 20 °C
	Zs           float64 // Ω, source Zs + R1 + R2
	EffectiveZs  float64 // Ω, Zs plus electrode resistance in TT systems
	ZsMax        float64 // Ω, U0 / Ia,required
	Ia           float64 // A, earth fault current
	IaRequired   float64 // A, 5·In
	TouchVoltage float64 // V, Ia·R2
	ZsOK         bool
	RCD          RCDRequirement
	OK           bool // disconnection ensured by the device or an RCD
	Warnings     []string
}

// EarthFaultProtection computes the earth-fault loop of a circuit and checks
// disconnection, touch voltage and protective conductor sizes
func EarthFaultProtection(repo *hd60364.Repository, in EarthFaultInput) (EarthFault, error) {
	var ef EarthFault
	if in.System != TN && in.System != TT {
		return ef, fmt.Errorf("unknown earthing system %q", in.System)
	}
	if !(in.DeviceRating > 0) || len(in.Runs) == 0 {
		return ef, fmt.Errorf("earth fault check needs a device rating and at least one cable run")
	}
	u0 := in.Voltage
	if u0 == 0 {
		u0 = PhaseToEarthVoltage
	}

	minPE := math.Inf(1)
	for i, run := range in.Runs {
		km := run.Length / 1000
		r1, err := PhaseResistance(repo, in.Material, run.Size, 70)
		if err != nil {
			return ef, err
		}
		ef.PhaseR += r1 * km

		required := MinEarthConductor(run.Size, in.Material, run.CableType, in.System, in.Kind)
		pe := run.EarthSize
		if pe == 0 {
			pe = required
		}
		if pe < required {
			ef.Warnings = append(ef.Warnings, fmt.Sprintf("Run %d: protective conductor %g mm² is below the minimum of %g mm².", i+1, pe, required))
		}
		minPE = math.Min(minPE, pe)

		r2, err := EarthConductorResistance(repo, in.Material, pe)
		if err != nil {
			return ef, err
		}
		ef.EarthR += r2 * km
	}

	if main := MinMainEarthConductor(in.Material, true); in.Kind == Distribution && minPE < main {
		ef.Warnings = append(ef.Warnings, fmt.Sprintf("Main earthing conductor %g mm² is below the minimum of %g mm² %s.", minPE, main, in.Material))
	}

	ef.Zs = in.SourceZs + ef.PhaseR + ef.EarthR
	ef.EffectiveZs = ef.Zs
	if in.System == TT {
		ef.EffectiveZs += in.ElectrodeR
		if in.ElectrodeR > ElectrodeResistanceHigh {
			ef.Warnings = append(ef.Warnings, fmt.Sprintf("TT electrode resistance Ra = %.1f Ω is above %.0f Ω, the earth fault current is very low.", in.ElectrodeR, ElectrodeResistanceHigh))
		}
	}
	if ef.EffectiveZs > 0 {
		ef.Ia = u0 / ef.EffectiveZs
	}
	ef.TouchVoltage = ef.Ia * ef.EarthR
	if ef.TouchVoltage > TouchVoltageLimit {
		ef.Warnings = append(ef.Warnings, fmt.Sprintf("Touch voltage %.1f V exceeds %.0f V.", ef.TouchVoltage, TouchVoltageLimit))
	}

	ef.IaRequired = disconnectMultiple * in.DeviceRating
	ef.ZsMax = u0 / ef.IaRequired
	ef.ZsOK = ef.EffectiveZs <= ef.ZsMax
	if !ef.ZsOK {
		ef.Warnings = append(ef.Warnings, fmt.Sprintf("Zs = %.4f Ω exceeds Zs,max = %.4f Ω, the device does not disconnect in time.", ef.EffectiveZs, ef.ZsMax))
	}

	ef.RCD = RCDFor(in.System, in.Kind, in.DeviceRating, in.Location, ef.ZsOK)
	if in.System == TT {
		ef.OK = ef.RCD.Required
	} else {
		ef.OK = ef.ZsOK || ef.RCD.Required
	}
	return ef, nil
}
