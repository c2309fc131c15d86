package electrical

import (
	"math"
	"testing"

	"github.com/alexiusacademia/gocable/internal/hd60364"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitParallel(t *testing.T) {
	s, err := SplitParallel(100, 1, 3)
	require.NoError(t, err)
	assert.InDelta(t, 75.0, s.I1, 1e-9)
	assert.InDelta(t, 25.0, s.I2, 1e-9)
	assert.InDelta(t, 75.0, s.Share1, 1e-9)
	assert.InDelta(t, 25.0, s.Imbalance, 1e-9)
	assert.True(t, s.Unbalanced)

	s, err = SplitParallel(200, 0.10, 0.11)
	require.NoError(t, err)
	assert.InDelta(t, 200, s.I1+s.I2, 1e-9)
	assert.False(t, s.Unbalanced)
}

func TestSplitParallel_Invalid(t *testing.T) {
	for name, args := range map[string][3]float64{
		"zero impedance":     {100, 0, 1},
		"negative impedance": {100, 1, -1},
		"NaN impedance":      {100, math.NaN(), 1},
		"zero current":       {0, 1, 1},
		"infinite current":   {math.Inf(1), 1, 1},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := SplitParallel(args[0], args[1], args[2])
			assert.Error(t, err)
		})
	}
}

func TestParseProtectionScheme(t *testing.T) {
	for in, want := range map[string]ProtectionScheme{
		"single":     SupplyEnd,
		"Both-Ends":  BothEnds,
		"individual": PerCable,
	} {
		got, err := ParseProtectionScheme(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseProtectionScheme("triple")
	assert.Error(t, err)
}

func TestCheckParallelProtection(t *testing.T) {
	split, err := SplitParallel(250, 0.1, 0.1)
	require.NoError(t, err)

	p := CheckParallelProtection(SupplyEnd, 1000, 250, split)
	assert.True(t, p.Adequate)
	assert.Contains(t, p.Note, "fed through the other")

	p = CheckParallelProtection(BothEnds, 499, 250, split)
	assert.False(t, p.Adequate)

	p = CheckParallelProtection(PerCable, 500, 250, split)
	assert.True(t, p.Adequate)
	assert.Contains(t, p.Note, "125.0 A / 125.0 A")
}

func TestVelanderPower(t *testing.T) {
	// 10 dwellings of 5 kW: 0.24·50 + 2.31·√50 kW
	assert.InDelta(t, 28334.0, VelanderPower(5000, 10), 1)
	assert.InDelta(t, 0.0, VelanderPower(5000, 0), 1e-12)
	assert.Less(t, VelanderPower(5000, 10), 10*VelanderPower(5000, 1))
}

func TestAreaPower(t *testing.T) {
	p, err := AreaPower(250, Office)
	require.NoError(t, err)
	assert.InDelta(t, 10000.0, p, 1e-9)

	w, err := AreaLoad("Supermarket")
	require.NoError(t, err)
	assert.Equal(t, 110.0, w)

	_, err = AreaPower(100, "hangar")
	assert.Error(t, err)
	assert.Len(t, Occupancies(), 5)
}

func TestDiversityPower(t *testing.T) {
	p, err := DiversityPower([]float64{4000, 6000, 10000}, 0.6)
	require.NoError(t, err)
	assert.InDelta(t, 12000.0, p, 1e-9)

	for _, f := range []float64{0, -0.5, 1.2, math.NaN()} {
		_, err = DiversityPower([]float64{1000}, f)
		assert.Error(t, err, "factor %g", f)
	}
}

func TestLoadCurrent(t *testing.T) {
	i, err := LoadCurrent(10000, 400, hd60364.ThreePhase, 0.9)
	require.NoError(t, err)
	assert.InDelta(t, 16.04, i, 0.01)

	i, err = LoadCurrent(2300, 230, hd60364.SinglePhase, 1)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, i, 1e-9)

	_, err = LoadCurrent(1000, 0, hd60364.SinglePhase, 1)
	assert.Error(t, err)
	_, err = LoadCurrent(1000, 230, hd60364.SinglePhase, 1.1)
	assert.Error(t, err)
}

func TestMinEarthConductor(t *testing.T) {
	cases := []struct {
		name string
		size float64
		mat  hd60364.Material
		ct   CableType
		sys  EarthingSystem
		kind CircuitKind
		want float64
	}{
		{"small separate PE", 10, hd60364.Copper, SingleCore, TN, FixedEquipment, 10},
		{"medium separate PE", 25, hd60364.Copper, SingleCore, TN, FixedEquipment, 16},
		{"large separate PE", 50, hd60364.Copper, SingleCore, TN, FixedEquipment, 25},
		{"multi-core", 70, hd60364.Copper, MultiCore, TN, FixedEquipment, 70},
		{"TT distribution Cu", 95, hd60364.Copper, SingleCore, TT, Distribution, 6},
		{"TT distribution Al", 95, hd60364.Aluminium, SingleCore, TT, Distribution, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MinEarthConductor(tc.size, tc.mat, tc.ct, tc.sys, tc.kind))
		})
	}
}

func TestMinMainEarthConductor(t *testing.T) {
	assert.Equal(t, 6.0, MinMainEarthConductor(hd60364.Copper, true))
	assert.Equal(t, 16.0, MinMainEarthConductor(hd60364.Copper, false))
	assert.Equal(t, 16.0, MinMainEarthConductor(hd60364.Aluminium, true))
	assert.Equal(t, 25.0, MinMainEarthConductor(hd60364.Aluminium, false))
}

func TestEarthConductorResistance(t *testing.T) {
	repo := hd60364.Default()

	r, err := EarthConductorResistance(repo, hd60364.Copper, 2.5)
	require.NoError(t, err)
	assert.Equal(t, 7.41, r)

	// untabulated size falls back to resistivity
	r, err = EarthConductorResistance(repo, hd60364.Copper, 0.75)
	require.NoError(t, err)
	assert.InDelta(t, 23.333, r, 1e-3)

	_, err = EarthConductorResistance(repo, hd60364.Copper, 0)
	assert.ErrorIs(t, err, hd60364.ErrMissingCableData)
}

func TestRCDFor(t *testing.T) {
	cases := []struct {
		name     string
		sys      EarthingSystem
		kind     CircuitKind
		in       float64
		loc      Location
		zsOK     bool
		required bool
		sens     string
	}{
		{"TT final circuit", TT, Lighting, 10, Indoor, true, true, "30 mA"},
		{"socket", TN, Socket, 16, Indoor, true, true, "30 mA"},
		{"large socket", TN, Socket, 32, Indoor, true, false, "none"},
		{"bathroom", TN, Lighting, 10, Bathroom, true, true, "30 mA"},
		{"outdoor", TN, FixedEquipment, 25, Outdoor, true, true, "30 mA"},
		{"Zs too high", TN, FixedEquipment, 25, Indoor, false, true, "30 mA"},
		{"distribution", TN, Distribution, 100, Indoor, true, false, "300 mA"},
		{"TT distribution", TT, Distribution, 100, Indoor, true, false, "300 mA"},
		{"plain TN", TN, Lighting, 10, Indoor, true, false, "none"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rcd := RCDFor(tc.sys, tc.kind, tc.in, tc.loc, tc.zsOK)
			assert.Equal(t, tc.required, rcd.Required)
			assert.Equal(t, tc.sens, rcd.Sensitivity)
			assert.NotEmpty(t, rcd.Reason)
		})
	}
	assert.True(t, RCDFor(TN, Distribution, 100, Indoor, true).Delayed)
}

func TestEarthFaultProtection_TN(t *testing.T) {
	ef, err := EarthFaultProtection(hd60364.Default(), EarthFaultInput{
		System:       TN,
		SourceZs:     0.3,
		DeviceRating: 16,
		Material:     hd60364.Copper,
		Kind:         Socket,
		Runs:         []EarthRun{{Length: 30, Size: 2.5, CableType: MultiCore}},
	})
	require.NoError(t, err)

	r1 := 7.41 * (1 + 0.00393*50) * 0.03
	assert.InDelta(t, r1, ef.PhaseR, 1e-9)
	assert.InDelta(t, 0.2223, ef.EarthR, 1e-9)
	assert.InDelta(t, 0.3+r1+0.2223, ef.Zs, 1e-9)
	assert.Equal(t, ef.Zs, ef.EffectiveZs)
	assert.InDelta(t, 230/ef.Zs, ef.Ia, 1e-9)
	assert.Equal(t, 80.0, ef.IaRequired)
	assert.InDelta(t, 2.875, ef.ZsMax, 1e-12)
	assert.True(t, ef.ZsOK)
	assert.True(t, ef.RCD.Required)
	assert.True(t, ef.OK)
	// touch voltage Ia·R2 is about 65 V
	assert.Greater(t, ef.TouchVoltage, TouchVoltageLimit)
	require.Len(t, ef.Warnings, 1)
	assert.Contains(t, ef.Warnings[0], "Touch voltage")
}

func TestEarthFaultProtection_TT(t *testing.T) {
	ef, err := EarthFaultProtection(hd60364.Default(), EarthFaultInput{
		System:       TT,
		SourceZs:     0.3,
		ElectrodeR:   150,
		DeviceRating: 16,
		Material:     hd60364.Copper,
		Kind:         FixedEquipment,
		Runs:         []EarthRun{{Length: 30, Size: 2.5, CableType: MultiCore}},
	})
	require.NoError(t, err)

	assert.InDelta(t, ef.Zs+150, ef.EffectiveZs, 1e-9)
	assert.Less(t, ef.Ia, 2.0)
	assert.False(t, ef.ZsOK)
	assert.True(t, ef.RCD.Required)
	assert.True(t, ef.OK)

	joined := ""
	for _, w := range ef.Warnings {
		joined += w + "\n"
	}
	assert.Contains(t, joined, "electrode resistance")
	assert.Contains(t, joined, "exceeds Zs,max")
}

func TestEarthFaultProtection_NoDisconnection(t *testing.T) {
	// a long 63 A lighting run in TN with no RCD trigger
	ef, err := EarthFaultProtection(hd60364.Default(), EarthFaultInput{
		System:       TN,
		SourceZs:     0.5,
		DeviceRating: 63,
		Material:     hd60364.Copper,
		Kind:         Lighting,
		Runs:         []EarthRun{{Length: 200, Size: 16, CableType: MultiCore}},
	})
	require.NoError(t, err)
	assert.False(t, ef.ZsOK)
	// Zs failure itself requires a 30 mA RCD
	assert.True(t, ef.RCD.Required)
	assert.True(t, ef.OK)
}

func TestEarthFaultProtection_UndersizedPE(t *testing.T) {
	ef, err := EarthFaultProtection(hd60364.Default(), EarthFaultInput{
		System:       TN,
		DeviceRating: 100,
		Material:     hd60364.Copper,
		Kind:         Distribution,
		Runs:         []EarthRun{{Length: 20, Size: 25, EarthSize: 4, CableType: SingleCore}},
	})
	require.NoError(t, err)
	assert.Contains(t, ef.Warnings[0], "below the minimum of 16 mm²")
	assert.Contains(t, ef.Warnings[1], "Main earthing conductor 4 mm²")
}

func TestEarthFaultProtection_Invalid(t *testing.T) {
	repo := hd60364.Default()
	_, err := EarthFaultProtection(repo, EarthFaultInput{System: "IT", DeviceRating: 16, Runs: []EarthRun{{Length: 1, Size: 2.5}}})
	assert.Error(t, err)

	_, err = EarthFaultProtection(repo, EarthFaultInput{System: TN, DeviceRating: 16})
	assert.Error(t, err)

	_, err = EarthFaultProtection(repo, EarthFaultInput{System: TN, DeviceRating: 16, Material: hd60364.Copper,
		Runs: []EarthRun{{Length: 1, Size: 400}}})
	assert.ErrorIs(t, err, hd60364.ErrMissingCableData)
}

func TestParseEarthing(t *testing.T) {
	sys, err := ParseEarthingSystem("tn-c-s")
	require.NoError(t, err)
	assert.Equal(t, TN, sys)
	_, err = ParseEarthingSystem("IT")
	assert.Error(t, err)

	ct, err := ParseCableType("")
	require.NoError(t, err)
	assert.Equal(t, SingleCore, ct)

	kind, err := ParseCircuitKind("Socket")
	require.NoError(t, err)
	assert.Equal(t, Socket, kind)
	_, err = ParseCircuitKind("heater")
	assert.Error(t, err)

	loc, err := ParseLocation("")
	require.NoError(t, err)
	assert.Equal(t, Indoor, loc)
	_, err = ParseLocation("attic")
	assert.Error(t, err)
}
