package fuse

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCurve() Curve {
	return Curve{Family: Diazed, Rating: 10, MinTripFactor: 5, Points: diazedPoints}
}

func TestTripTime_ExactAtFirstPoint(t *testing.T) {
	tr := testCurve().TripTime(30) // m = 3.0
	assert.Equal(t, 1.5, tr.Time)
	assert.Equal(t, 3.0, tr.Multiple)
}

func TestTripTime_ExactAtTabulatedPoints(t *testing.T) {
	c := testCurve()
	for _, p := range c.Points {
		tr := c.TripTime(p.Multiple * c.Rating)
		assert.InDelta(t, p.Time, tr.Time, 1e-12, "m = %v", p.Multiple)
	}
}

func TestTripTime_LogLogInterpolation(t *testing.T) {
	c := Curve{Rating: 1, Points: []Point{{1, 100}, {10, 1}}}

	// log-log straight line: t = 100 / m²
	tr := c.TripTime(math.Sqrt(10))
	assert.InDelta(t, 10.0, tr.Time, 1e-9)

	tr = c.TripTime(2)
	assert.InDelta(t, 25.0, tr.Time, 1e-9)
}

func TestTripTime_Clamps(t *testing.T) {
	c := testCurve()

	tr := c.TripTime(5) // m = 0.5
	assert.Equal(t, 1.5, tr.Time)
	assert.Contains(t, tr.Notes[1], "first curve point")

	tr = c.TripTime(10_000) // m = 1000
	assert.Equal(t, 0.02, tr.Time)
	assert.Contains(t, tr.Notes[1], "last curve point")
}

func TestTripTime_NoTrip(t *testing.T) {
	tr := testCurve().TripTime(0)
	assert.Zero(t, tr.Time)
	require.Len(t, tr.Notes, 1)
	assert.Contains(t, tr.Notes[0], "does not trip")

	tr = Curve{Rating: 0, Points: diazedPoints}.TripTime(100)
	assert.Zero(t, tr.Time)
	assert.Contains(t, tr.Notes[0], "Invalid device rating")
}

func TestTripTime_Deterministic(t *testing.T) {
	c := testCurve()
	assert.Equal(t, c.TripTime(123.4), c.TripTime(123.4))
}

func TestCurves_StrictlyIncreasingMultiples(t *testing.T) {
	cat := NewCatalog()
	for _, f := range cat.Families() {
		c, err := cat.Curve(f, 16)
		require.NoError(t, err)
		for i := 1; i < len(c.Points); i++ {
			assert.Greater(t, c.Points[i].Multiple, c.Points[i-1].Multiple, "%s point %d", f, i)
			assert.Greater(t, c.Points[i].Time, 0.0)
		}
	}
}

func TestCurves_TimeNonIncreasing(t *testing.T) {
	cat := NewCatalog()
	for _, f := range cat.Families() {
		c, _ := cat.Curve(f, 16)
		for i := 1; i < len(c.Points); i++ {
			assert.LessOrEqual(t, c.Points[i].Time, c.Points[i-1].Time, "%s point %d", f, i)
		}
	}
}

func TestCatalog_NearestRating(t *testing.T) {
	cat := NewCatalog()

	tests := []struct {
		name   string
		family Family
		in     float64
		want   float64
	}{
		{"exact rating", Diazed, 35, 35},
		{"rounds design current first", Diazed, 15.6, 16},
		{"nearest by absolute difference", Neozed, 44, 40},
		{"tie goes to lower rating", MCBB, 18, 16},
		{"below catalog", NH, 10, 25},
		{"above catalog", MCBC, 100, 63},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := cat.Curve(tt.family, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Rating)
		})
	}
}

func TestCatalog_MinTripFactor(t *testing.T) {
	cat := NewCatalog()
	want := map[Family]float64{Diazed: 5, Neozed: 5, NH: 5, MCBB: 5, MCBC: 10, MCBD: 20}
	for f, k := range want {
		c, err := cat.Curve(f, 16)
		require.NoError(t, err)
		assert.Equal(t, k, c.MinTripFactor, string(f))
	}
}

func TestCatalog_UnknownFamily(t *testing.T) {
	_, err := NewCatalog().Curve(MCBAuto, 16)
	assert.ErrorIs(t, err, ErrUnknownDevice)

	_, err = NewCatalog().Ratings(Family("gL"))
	assert.ErrorIs(t, err, ErrUnknownDevice)
}

func TestMCBCurves_Shape(t *testing.T) {
	assert.Equal(t, 3600.0, mcbBTime(1.2))
	assert.InDelta(t, 60, mcbBTime(2.55), 1e-9)
	assert.InDelta(t, 0.4, mcbBTime(5), 1e-9)
	assert.InDelta(t, 0.012, mcbBTime(20), 1e-4)

	assert.InDelta(t, 0.12, mcbCTime(10), 1e-9)
	assert.InDelta(t, 0.009, mcbCTime(30), 1e-4)

	assert.InDelta(t, 0.1, mcbDTime(20), 1e-9)
	assert.InDelta(t, 0.01, mcbDTime(40), 1e-9)
}

func TestGenerateCurve(t *testing.T) {
	pts := generateCurve(mcbCTime, mcbNoTrip, 30, 60)
	require.Len(t, pts, 60)
	assert.Equal(t, 1.45, pts[0].Multiple)
	assert.Equal(t, 30.0, pts[59].Multiple)
}

func TestSelectMCB(t *testing.T) {
	f, err := SelectMCB(170, 16)
	require.NoError(t, err)
	assert.Equal(t, MCBC, f)

	f, err = SelectMCB(100, 16)
	require.NoError(t, err)
	assert.Equal(t, MCBB, f)

	_, err = SelectMCB(80, 16)
	assert.ErrorIs(t, err, ErrNoSuitableDevice)
}

func TestParseFamily(t *testing.T) {
	f, err := ParseFamily("Neozed")
	require.NoError(t, err)
	assert.Equal(t, Neozed, f)

	f, err = ParseFamily("MCB")
	require.NoError(t, err)
	assert.Equal(t, MCBAuto, f)

	_, err = ParseFamily("gL")
	assert.ErrorIs(t, err, ErrUnknownDevice)
}

func TestLabel(t *testing.T) {
	cat := DefaultCatalog()
	assert.Equal(t, "MCB C", cat.Label(MCBC))
	assert.Equal(t, "MCB (auto B/C)", cat.Label(MCBAuto))
}
