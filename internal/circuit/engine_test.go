package circuit

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gocable/internal/electrical"
	"github.com/alexiusacademia/gocable/internal/fuse"
	"github.com/alexiusacademia/gocable/internal/hd60364"
)

func network230() SupplyNetwork {
	return SupplyNetwork{Voltage: 230, SourceIk: 10000, SourceCosPhi: 0.3}
}

// singlePhaseFeeder is a 35 A copper feeder buried direct in the ground (method 72, D2)
func singlePhaseFeeder() Circuit {
	return Circuit{
		Name:           "F1",
		Segments:       []Segment{{Method: 72, Length: 20, AmbientTemp: 20, Loaded: 2, GroupSize: 1}},
		Current:        35,
		Phase:          hd60364.SinglePhase,
		Material:       hd60364.Copper,
		CosPhi:         1,
		MaxDropPercent: 1,
		AutoSize:       true,
		Device:         fuse.Neozed,
	}
}

func TestSearch_StopsAtFirstPassingCandidate(t *testing.T) {
	var tried []float64
	size, _, ok := search([]float64{1.5, 2.5, 4, 6}, func(s float64) verdict {
		tried = append(tried, s)
		return verdict{ok: s >= 4, reason: "too small"}
	})

	assert.True(t, ok)
	assert.Equal(t, 4.0, size)
	assert.Equal(t, []float64{1.5, 2.5, 4}, tried)
}

func TestSearch_ExhaustedReturnsLastReason(t *testing.T) {
	size, reason, ok := search([]float64{1.5, 2.5}, func(s float64) verdict {
		return verdict{reason: "rejected"}
	})

	assert.False(t, ok)
	assert.Equal(t, 2.5, size)
	assert.Equal(t, "rejected", reason)
}

func TestFeeder_SmallestFeasibleSize(t *testing.T) {
	// 2.5 mm² fails ampacity (33 A < 35 A), 4 mm² fails the drop (2.57 %), 6 mm² passes (1.71 %)
	c := Circuit{
		Name:           "F1",
		Segments:       []Segment{{Method: 20, Length: 15, AmbientTemp: 30, Loaded: 2, GroupSize: 1}},
		Current:        35,
		Phase:          hd60364.SinglePhase,
		Material:       hd60364.Copper,
		CosPhi:         1,
		MaxDropPercent: 2,
		AutoSize:       true,
		Device:         fuse.Neozed,
	}

	r, err := NewEngine().Feeder(c, network230())
	require.NoError(t, err)

	assert.Equal(t, 6.0, r.Size)
	assert.True(t, r.AmpacityOK)
	assert.True(t, r.DropOK)
	assert.InDelta(t, 1.712, r.TotalDrop.Percent, 0.001)

	trace := r.Trace.String()
	assert.Contains(t, trace, "⇒ S = 2.5 mm² is NOT OK")
	assert.Contains(t, trace, "⇒ S = 4.0 mm² is NOT OK")
	assert.Contains(t, trace, "⇒ S = 6.0 mm² is OK for all segments.")
	assert.Less(t, strings.Index(trace, "S = 2.5 mm²"), strings.Index(trace, "S = 4.0 mm²"))
}

func TestFeeder_SinglePhaseScenario(t *testing.T) {
	r, err := NewEngine().Feeder(singlePhaseFeeder(), network230())
	require.NoError(t, err)

	// 10 mm² carries 77·1.5 A but drops 1.37 %
	assert.Equal(t, 16.0, r.Size)
	assert.Contains(t, r.Trace.String(), "Voltage drop (1.37 %) exceeds the limit of 1.00 %.")

	require.Len(t, r.Segments, 1)
	seg := r.Segments[0]
	assert.Equal(t, 1.5, seg.Factors.Kj)
	assert.Equal(t, 1.0, seg.Factors.Kt)
	assert.Equal(t, 100.0, seg.IzTable)
	assert.InDelta(t, 150.0, seg.IzCorrected, 1e-9)
	assert.InDelta(t, 35/1.5, seg.IzRequired, 1e-9)
	assert.InDelta(t, 0.0345, real(seg.ZMin), 1e-9)
	assert.InDelta(t, 0.0017, imag(seg.ZMin), 1e-9)
	assert.InDelta(t, 0.023, real(seg.ZMax), 1e-9)

	assert.Equal(t, 175.0, r.MinSupply)
	assert.Equal(t, 35.0, r.SourceCurrent)
	assert.Equal(t, "In,feeder", r.SourceNote)
	assert.InDelta(t, 166.27, r.IkMin.Magnitude(), 0.01)
	assert.InDelta(t, 6370.0, r.IkMax.Magnitude(), 1)

	assert.Equal(t, 35.0, r.Device.Rating)
	assert.True(t, r.Device.BelowMinTrip)
	assert.Greater(t, r.Device.Trip.Time, 0.3)
	assert.Less(t, r.Device.Trip.Time, 0.5)
	assert.True(t, r.Thermal.OK)
	assert.Equal(t, 143.0, r.Thermal.K)
}

func TestFeeder_Idempotent(t *testing.T) {
	e := NewEngine()
	a, err := e.Feeder(singlePhaseFeeder(), network230())
	require.NoError(t, err)
	b, err := e.Feeder(singlePhaseFeeder(), network230())
	require.NoError(t, err)

	assert.Equal(t, a.Size, b.Size)
	assert.Equal(t, a.Trace, b.Trace)
}

func TestFeeder_ExplicitMinSupply(t *testing.T) {
	net := network230()
	net.MinSupply = 500

	r, err := NewEngine().Feeder(singlePhaseFeeder(), net)
	require.NoError(t, err)

	assert.Equal(t, 500.0, r.MinSupply)
	assert.Equal(t, 100.0, r.SourceCurrent)
	assert.Equal(t, "I_min,supply/5", r.SourceNote)
}

func TestFeeder_DoesNotMutateInput(t *testing.T) {
	c := singlePhaseFeeder()
	c.SoilKj = 0
	before := slices.Clone(c.Segments)

	r, err := NewEngine().Feeder(c, network230())
	require.NoError(t, err)

	assert.Equal(t, before, c.Segments)
	assert.Equal(t, 0.0, c.SoilKj)
	assert.Equal(t, 1.0, r.Circuit.SoilKj)
}

func TestBranch_DerivesSupplyFromFeeder(t *testing.T) {
	e := NewEngine()
	feeder, err := e.Feeder(singlePhaseFeeder(), network230())
	require.NoError(t, err)
	snapshot := *feeder
	snapshot.Trace = slices.Clone(feeder.Trace)

	branch := Circuit{
		Name:           "B1",
		Segments:       []Segment{{Method: 20, Length: 10, AmbientTemp: 30, Loaded: 2, GroupSize: 1}},
		Current:        16,
		Phase:          hd60364.SinglePhase,
		Material:       hd60364.Copper,
		CosPhi:         1,
		MaxDropPercent: 3,
		AutoSize:       true,
		Device:         fuse.MCBB,
	}

	r, err := e.Branch(branch, feeder)
	require.NoError(t, err)

	assert.Equal(t, Branch, r.Role)
	assert.Equal(t, 1.5, r.Size)
	assert.Equal(t, 175.0, r.MinSupply)
	assert.Equal(t, "In,feeder", r.SourceNote)
	assert.InDelta(t, 0.3913, r.UpstreamDrop.Percent, 0.0001)
	assert.InDelta(t, 2.0870, r.Drop.Percent, 0.0001)
	assert.InDelta(t, r.Drop.Percent+r.UpstreamDrop.Percent, r.TotalDrop.Percent, 1e-9)
	assert.Equal(t, feeder.PathZMin+r.ZMin, r.PathZMin)
	assert.InDelta(t, 131.71, r.IkMin.Magnitude(), 0.01)
	assert.Less(t, r.IkMax.Magnitude(), feeder.IkMax.Magnitude())

	assert.Equal(t, snapshot, *feeder)
}

func branchB1() Circuit {
	return Circuit{
		Name:           "B1",
		Segments:       []Segment{{Method: 20, Length: 10, AmbientTemp: 30, Loaded: 2, GroupSize: 1}},
		Current:        16,
		Phase:          hd60364.SinglePhase,
		Material:       hd60364.Copper,
		CosPhi:         1,
		MaxDropPercent: 3,
		AutoSize:       true,
		Device:         fuse.MCBB,
	}
}

func TestBranch_InheritsExplicitFeederSupply(t *testing.T) {
	e := NewEngine()
	net := network230()
	net.MinSupply = 500
	feeder, err := e.Feeder(singlePhaseFeeder(), net)
	require.NoError(t, err)
	require.Equal(t, 100.0, feeder.SourceCurrent)

	r, err := e.Branch(branchB1(), feeder)
	require.NoError(t, err)

	assert.Equal(t, 500.0, r.MinSupply)
	assert.Equal(t, 100.0, r.SourceCurrent)
	assert.Equal(t, "I_min,supply/5", r.SourceNote)
	assert.Contains(t, r.Trace.String(), "I_min,supply = 5 × I_min,supply/5 = 5 × 100.0 A = 500.0 A")
	assert.Greater(t, r.IkMin.Magnitude(), 131.71)
}

func TestBranch_OwnMinSupplyOverrides(t *testing.T) {
	e := NewEngine()
	net := network230()
	net.MinSupply = 500
	feeder, err := e.Feeder(singlePhaseFeeder(), net)
	require.NoError(t, err)

	b := branchB1()
	b.MinSupply = 300
	r, err := e.Branch(b, feeder)
	require.NoError(t, err)

	assert.Equal(t, 300.0, r.MinSupply)
	assert.Equal(t, 60.0, r.SourceCurrent)
	assert.Equal(t, "I_min,supply/5", r.SourceNote)
	assert.Contains(t, r.Trace.String(), "I_min,supply = 300.0 A (given)")

	// the network value applies to the feeder only
	plain, err := e.Feeder(singlePhaseFeeder(), network230())
	require.NoError(t, err)
	b.MinSupply = 300
	r, err = e.Branch(b, plain)
	require.NoError(t, err)
	assert.Equal(t, 300.0, r.MinSupply)
}

func TestFeeder_RejectsNonFiniteInput(t *testing.T) {
	c := singlePhaseFeeder()
	c.Current = math.NaN()
	_, err := NewEngine().Feeder(c, network230())
	assert.ErrorIs(t, err, ErrInvalidInput)

	c = singlePhaseFeeder()
	c.Segments[0].Length = math.Inf(1)
	_, err = NewEngine().Feeder(c, network230())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBranch_ProtectionUsesIkMagnitude(t *testing.T) {
	e := NewEngine()
	feeder, err := e.Feeder(singlePhaseFeeder(), network230())
	require.NoError(t, err)
	r, err := e.Branch(branchB1(), feeder)
	require.NoError(t, err)

	ik := r.IkMin.Magnitude()
	require.Greater(t, ik, real(r.IkMin.Current))
	assert.InDelta(t, ik*ik*r.Device.Trip.Time, r.Thermal.LetThrough, 1e-6)
	assert.Equal(t, ik < r.Device.MinTripFactor*16, r.Device.BelowMinTrip)
}

func TestFeeder_BundlingWarning(t *testing.T) {
	c := branchB1()
	c.Segments[0].GroupSize = 6

	r, err := NewEngine().Feeder(c, network230())
	require.NoError(t, err)

	assert.Equal(t, 0.57, r.Segments[0].Factors.Kgrp)
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "Segment 1: 6 cables bundled (Kgrp = 0.57)")
	assert.Contains(t, r.Warnings[0], "Kgrp = 0.81")
	assert.Contains(t, r.Trace.String(), "[WARNING] Segment 1: 6 cables bundled")

	// single cables and buried groups are not checked
	r, err = NewEngine().Feeder(branchB1(), network230())
	require.NoError(t, err)
	assert.Empty(t, r.Warnings)

	buried := singlePhaseFeeder()
	buried.Segments[0].GroupSize = 6
	r, err = NewEngine().Feeder(buried, network230())
	require.NoError(t, err)
	assert.Empty(t, r.Warnings)
}

func TestBranch_EarthFaultContinuesFeederLoop(t *testing.T) {
	e := NewEngine()
	fc := singlePhaseFeeder()
	fc.Earthing = &Earthing{System: electrical.TN, SourceZs: 0.2, CableType: electrical.MultiCore, Kind: electrical.Distribution}
	feeder, err := e.Feeder(fc, network230())
	require.NoError(t, err)
	require.NotNil(t, feeder.EarthFault)
	assert.Greater(t, feeder.EarthFault.Zs, 0.2)
	assert.Equal(t, "300 mA", feeder.EarthFault.RCD.Sensitivity)

	b := branchB1()
	b.Earthing = &Earthing{System: electrical.TN, CableType: electrical.MultiCore, Kind: electrical.Socket}
	r, err := e.Branch(b, feeder)
	require.NoError(t, err)
	require.NotNil(t, r.EarthFault)

	ef := r.EarthFault
	assert.InDelta(t, feeder.EarthFault.Zs+ef.PhaseR+ef.EarthR, ef.Zs, 1e-12)
	assert.Equal(t, 5*r.Device.Rating, ef.IaRequired)
	assert.True(t, ef.RCD.Required)
	assert.Equal(t, "30 mA", ef.RCD.Sensitivity)
	assert.True(t, ef.OK)

	trace := r.Trace.String()
	assert.Contains(t, trace, "=== Earth fault protection ===")
	assert.Contains(t, trace, "RCD 30 mA required: socket outlet circuit")

	// circuits without earthing data skip the check
	plain, err := e.Branch(branchB1(), feeder)
	require.NoError(t, err)
	assert.Nil(t, plain.EarthFault)
	assert.NotContains(t, plain.Trace.String(), "Earth fault protection")
}

func TestFeeder_EarthFaultTT(t *testing.T) {
	c := branchB1()
	c.Earthing = &Earthing{System: electrical.TT, ElectrodeR: 150, Kind: electrical.Lighting}

	r, err := NewEngine().Feeder(c, network230())
	require.NoError(t, err)
	require.NotNil(t, r.EarthFault)
	assert.False(t, r.EarthFault.ZsOK)
	assert.True(t, r.EarthFault.OK)
	assert.Contains(t, r.Trace.String(), "Zs,eff = Zs + Ra")
	assert.NotEmpty(t, r.Warnings)
}

func TestBranch_UpstreamNotReady(t *testing.T) {
	_, err := NewEngine().Branch(singlePhaseFeeder(), nil)
	assert.ErrorIs(t, err, ErrUpstreamNotReady)
}

func TestBranch_UpstreamMustBeFeeder(t *testing.T) {
	e := NewEngine()
	feeder, err := e.Feeder(singlePhaseFeeder(), network230())
	require.NoError(t, err)
	b := singlePhaseFeeder()
	b.MaxDropPercent = 5
	branch, err := e.Branch(b, feeder)
	require.NoError(t, err)

	_, err = e.Branch(b, branch)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExplicitSize_MismatchedSegments(t *testing.T) {
	c := singlePhaseFeeder()
	c.AutoSize = false
	c.Segments = []Segment{
		{Method: 72, Length: 10, AmbientTemp: 20, Loaded: 2, GroupSize: 1, Size: 10},
		{Method: 72, Length: 10, AmbientTemp: 20, Loaded: 2, GroupSize: 1, Size: 16},
	}

	_, err := NewEngine().Feeder(c, network230())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExplicitSize_ReportsVerdicts(t *testing.T) {
	c := singlePhaseFeeder()
	c.AutoSize = false
	c.Segments[0].Size = 10

	r, err := NewEngine().Feeder(c, network230())
	require.NoError(t, err)

	assert.Equal(t, 10.0, r.Size)
	assert.True(t, r.AmpacityOK)
	assert.False(t, r.DropOK)
	assert.InDelta(t, 1.3696, r.TotalDrop.Percent, 0.0001)
	assert.Contains(t, r.Trace.String(), "Automatic cross-section is OFF.")
}

func TestExplicitSize_AluminiumRaised(t *testing.T) {
	c := Circuit{
		Name:           "AL",
		Segments:       []Segment{{Method: 20, Length: 10, AmbientTemp: 30, Loaded: 2, GroupSize: 1, Size: 10}},
		Current:        32,
		Phase:          hd60364.SinglePhase,
		Material:       hd60364.Aluminium,
		CosPhi:         0.95,
		MaxDropPercent: 3,
		Device:         fuse.Neozed,
	}

	r, err := NewEngine().Feeder(c, network230())
	require.NoError(t, err)
	assert.Equal(t, MinAluminiumSize, r.Size)
	assert.Equal(t, 94.0, r.Thermal.K)
}

func TestFeeder_NoFeasibleSize(t *testing.T) {
	c := singlePhaseFeeder()
	c.Segments[0].Method = 20
	c.Segments[0].AmbientTemp = 30
	c.Current = 200
	c.MaxDropPercent = 5

	_, err := NewEngine().Feeder(c, network230())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoFeasibleSize)

	var se *SelectionError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 35.0, se.LastSize)
	assert.Contains(t, se.Reason, "Iz,corr")
	assert.NotEmpty(t, se.Trace)
}

func TestFeeder_AutomaticMCB(t *testing.T) {
	c := Circuit{
		Name:           "M1",
		Segments:       []Segment{{Method: 20, Length: 10, AmbientTemp: 30, Loaded: 3, GroupSize: 1}},
		Current:        10,
		Phase:          hd60364.ThreePhase,
		Material:       hd60364.Copper,
		CosPhi:         0.9,
		MaxDropPercent: 3,
		AutoSize:       true,
		Device:         fuse.MCBAuto,
	}
	net := SupplyNetwork{Voltage: 400, MinSupply: 1000, SourceIk: 10000, SourceCosPhi: 0.3}

	r, err := NewEngine().Feeder(c, net)
	require.NoError(t, err)
	assert.Equal(t, fuse.MCBC, r.Device.Family)
	assert.False(t, r.Device.BelowMinTrip)

	net.MinSupply = 40
	_, err = NewEngine().Feeder(c, net)
	assert.ErrorIs(t, err, fuse.ErrNoSuitableDevice)
}

func TestFeeder_ThermalOverride(t *testing.T) {
	c := singlePhaseFeeder()
	c.K = 115

	r, err := NewEngine().Feeder(c, network230())
	require.NoError(t, err)
	assert.Equal(t, 115.0, r.Thermal.K)
	assert.InDelta(t, 115*115*16*16, r.Thermal.Capacity, 1e-6)
}

func TestValidate(t *testing.T) {
	repo := hd60364.Default()
	tests := []struct {
		name   string
		mutate func(c *Circuit)
	}{
		{"zero current", func(c *Circuit) { c.Current = 0 }},
		{"NaN current", func(c *Circuit) { c.Current = math.NaN() }},
		{"infinite current", func(c *Circuit) { c.Current = math.Inf(1) }},
		{"NaN power factor", func(c *Circuit) { c.CosPhi = math.NaN() }},
		{"NaN drop limit", func(c *Circuit) { c.MaxDropPercent = math.NaN() }},
		{"infinite drop limit", func(c *Circuit) { c.MaxDropPercent = math.Inf(1) }},
		{"NaN soil factor", func(c *Circuit) { c.SoilKj = math.NaN() }},
		{"infinite k", func(c *Circuit) { c.K = math.Inf(1) }},
		{"NaN supply current", func(c *Circuit) { c.MinSupply = math.NaN() }},
		{"infinite length", func(c *Circuit) { c.Segments[0].Length = math.Inf(1) }},
		{"NaN length", func(c *Circuit) { c.Segments[0].Length = math.NaN() }},
		{"NaN temperature", func(c *Circuit) { c.Segments[0].AmbientTemp = math.NaN() }},
		{"negative infinite temperature", func(c *Circuit) { c.Segments[0].AmbientTemp = math.Inf(-1) }},
		{"NaN spacing", func(c *Circuit) { c.Segments[0].Spacing = math.NaN() }},
		{"bad phase", func(c *Circuit) { c.Phase = "two" }},
		{"bad material", func(c *Circuit) { c.Material = "Fe" }},
		{"power factor above one", func(c *Circuit) { c.CosPhi = 1.2 }},
		{"zero drop limit", func(c *Circuit) { c.MaxDropPercent = 0 }},
		{"unknown device", func(c *Circuit) { c.Device = "rewireable" }},
		{"no segments", func(c *Circuit) { c.Segments = nil }},
		{"zero length", func(c *Circuit) { c.Segments[0].Length = 0 }},
		{"five loaded conductors", func(c *Circuit) { c.Segments[0].Loaded = 5 }},
		{"empty group", func(c *Circuit) { c.Segments[0].GroupSize = 0 }},
		{"unknown method", func(c *Circuit) { c.Segments[0].Method = 99 }},
		{"unknown earthing system", func(c *Circuit) { c.Earthing = &Earthing{System: "IT"} }},
		{"TT without electrode", func(c *Circuit) { c.Earthing = &Earthing{System: electrical.TT} }},
		{"NaN source Zs", func(c *Circuit) { c.Earthing = &Earthing{System: electrical.TN, SourceZs: math.NaN()} }},
		{"negative earth size", func(c *Circuit) { c.Earthing = &Earthing{System: electrical.TN, EarthSize: -1} }},
		{"non-standard explicit size", func(c *Circuit) {
			c.AutoSize = false
			c.Segments[0].Size = 3
		}},
	}

	require.NoError(t, singlePhaseFeeder().Validate(repo))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := singlePhaseFeeder()
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(repo), ErrInvalidInput)
		})
	}
}

func TestSupplyNetworkValidate(t *testing.T) {
	assert.NoError(t, network230().Validate())

	bad := network230()
	bad.Voltage = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidInput)

	for name, mutate := range map[string]func(n *SupplyNetwork){
		"NaN voltage":         func(n *SupplyNetwork) { n.Voltage = math.NaN() },
		"infinite voltage":    func(n *SupplyNetwork) { n.Voltage = math.Inf(1) },
		"NaN supply current":  func(n *SupplyNetwork) { n.MinSupply = math.NaN() },
		"infinite source Ik":  func(n *SupplyNetwork) { n.SourceIk = math.Inf(1) },
		"NaN source cos":      func(n *SupplyNetwork) { n.SourceCosPhi = math.NaN() },
	} {
		t.Run(name, func(t *testing.T) {
			n := network230()
			mutate(&n)
			assert.ErrorIs(t, n.Validate(), ErrInvalidInput)
		})
	}

	bad = network230()
	bad.SourceIk = 0
	_, err := NewEngine().Feeder(singlePhaseFeeder(), bad)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCandidates(t *testing.T) {
	repo := hd60364.Default()

	assert.Equal(t, []float64{2.5, 4, 6, 10, 16, 25, 35}, Candidates(repo, Feeder, hd60364.Copper, hd60364.SinglePhase))
	assert.Equal(t, []float64{1.5, 2.5, 4, 6, 10, 16, 25, 35}, Candidates(repo, Branch, hd60364.Copper, hd60364.SinglePhase))
	assert.Equal(t, hd60364.StandardSizes, Candidates(repo, Feeder, hd60364.Copper, hd60364.ThreePhase))

	al := Candidates(repo, Branch, hd60364.Aluminium, hd60364.SinglePhase)
	assert.Equal(t, 16.0, al[0])
	assert.Equal(t, 400.0, al[len(al)-1])
}
