package circuit

import (
	"github.com/alexiusacademia/gocable/internal/electrical"
	"github.com/alexiusacademia/gocable/internal/fuse"
	"github.com/alexiusacademia/gocable/internal/hd60364"
)

// Role distinguishes the supply cable from the circuits it feeds
type Role string

const (
	Feeder Role = "feeder"
	Branch Role = "branch"
)

// Segment is one physical run of cable with uniform installation conditions
type Segment struct {
	Method      int     // installation method number
	Length      float64 // m
	AmbientTemp float64 // °C
	Loaded      int     // loaded conductors, 1-4
	GroupSize   int     // cables bundled together, >= 1
	Spacing     float64 // m, spacing of buried cables (0 = touching)
	Size        float64 // mm², explicit cross-section when auto-sizing is off
}

// Factors are the correction factors of a segment
type Factors struct {
	Method hd60364.InstallationMethod
	Kt     float64
	Kj     float64
	Kgrp   float64
}

// Product returns Kt·Kj·Kgrp
func (f Factors) Product() float64 {
	return f.Kt * f.Kj * f.Kgrp
}

// Resolve derives Kt, Kj and Kgrp for the segment from the reference tables
func (s Segment) Resolve(repo *hd60364.Repository, soilKj float64) (Factors, error) {
	m, err := repo.Method(s.Method)
	if err != nil {
		return Factors{}, err
	}
	kt, err := repo.TemperatureFactor(m.Environment, s.AmbientTemp)
	if err != nil {
		return Factors{}, err
	}
	return Factors{
		Method: m,
		Kt:     kt,
		Kj:     m.SoilFactor(soilKj),
		Kgrp:   repo.GroupingFactorSpaced(m.Reference, s.GroupSize, s.Spacing),
	}, nil
}

// Circuit is a feeder or branch circuit to verify or dimension
type Circuit struct {
	Name           string
	Segments       []Segment
	Current        float64 // A, design current In
	Phase          hd60364.Phase
	Material       hd60364.Material
	CosPhi         float64 // load power factor
	MaxDropPercent float64 // %, limit for own drop plus upstream drop
	AutoSize       bool
	SoilKj         float64     // field soil factor for buried methods, 0 means 1.0
	Device         fuse.Family // protective device family or fuse.MCBAuto
	MinSupply      float64     // A, explicit I_min,supply (0 = derive)
	K              float64     // A·√s/mm², thermal constant override (0 = material value)
	Earthing       *Earthing   // earth-fault check, nil to skip
}

// Earthing describes the earth-fault loop of a circuit
type Earthing struct {
	System     electrical.EarthingSystem
	SourceZs   float64 // Ω, loop impedance at the origin (0 = upstream Zs for branches, else 0)
	ElectrodeR float64 // Ω, TT earth electrode resistance
	Voltage    float64 // V, U0 (0 = 230 V)
	CableType  electrical.CableType
	EarthSize  float64 // mm², protective conductor (0 = minimum for the phase size)
	Kind       electrical.CircuitKind
	Location   electrical.Location
}

// Length returns the total circuit length (m)
func (c Circuit) Length() float64 {
	var l float64
	for _, s := range c.Segments {
		l += s.Length
	}
	return l
}

// SupplyNetwork describes the source feeding the installation
type SupplyNetwork struct {
	Voltage      float64 // V, nominal
	MinSupply    float64 // A, minimum prospective supply current (0 = 5·In,feeder)
	SourceIk     float64 // A, source short-circuit current for Ik,max
	SourceCosPhi float64 // source power factor
}

// SegmentResult is the ampacity and impedance breakdown of one segment at the chosen size
type SegmentResult struct {
	Index       int
	Segment     Segment
	Factors     Factors
	Size        float64    // mm²
	IzTable     float64    // A
	IzCorrected float64    // A, Iz·Kt·Kj·Kgrp
	IzRequired  float64    // A, In/(Kt·Kj·Kgrp)
	ZMin        complex128 // Ω, R × 1.5
	ZMax        complex128 // Ω, R × 1.0
}

// DeviceResult is the protective device operating point for Ik,min
type DeviceResult struct {
	Family        fuse.Family
	Label         string
	Rating        float64 // A, matched catalog rating
	MinTripFactor float64
	Trip          fuse.Trip
	BelowMinTrip  bool // Ik,min < MinTripFactor·In
}

// Result is the outcome of a feeder or branch computation.
// Branch computations read a feeder Result and never modify it.
type Result struct {
	Role    Role
	Circuit Circuit
	Network SupplyNetwork

	Size             float64 // mm², chosen cross-section
	Length           float64 // m
	RequiredAmpacity float64 // A, worst In/(Kt·Kj·Kgrp) across segments
	AmpacityOK       bool
	Segments         []SegmentResult

	ZMin     complex128 // Ω, own cable, minimum study
	ZMax     complex128 // Ω, own cable, maximum study
	PathZMin complex128 // Ω, source to this circuit's end, minimum study
	PathZMax complex128 // Ω, source to this circuit's end, maximum study

	MinSupply     float64 // A, I_min,supply used for Ik,min
	SourceCurrent float64 // A, In,source handed to dependents (I_min,supply = 5·In,source)
	SourceNote    string  // origin of SourceCurrent

	IkMin electrical.ShortCircuit
	IkMax electrical.ShortCircuit

	Drop         electrical.Drop // own cable
	UpstreamDrop electrical.Drop // branch current over the feeder cable
	TotalDrop    electrical.Drop
	DropOK       bool

	Device  DeviceResult
	Thermal electrical.Thermal

	EarthFault *electrical.EarthFault // nil when the circuit has no earthing data
	Warnings   []string

	Trace Trace
}

// Name returns the circuit name
func (r *Result) Name() string {
	return r.Circuit.Name
}
