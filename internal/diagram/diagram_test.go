package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gocable/internal/circuit"
	"github.com/alexiusacademia/gocable/internal/config"
	"github.com/alexiusacademia/gocable/internal/fuse"
	"github.com/alexiusacademia/gocable/internal/project"
)

func neozed35(t *testing.T) fuse.Curve {
	t.Helper()
	c, err := fuse.DefaultCatalog().Curve(fuse.Neozed, 35)
	require.NoError(t, err)
	return c
}

func TestExportTripCurve(t *testing.T) {
	dir := t.TempDir()
	data := TripCurveData{Curve: neozed35(t), FaultCurrent: 166, MinRating: 35}

	for _, name := range []string{"curve.png", "curve.svg"} {
		path := filepath.Join(dir, "plots", name)
		require.NoError(t, ExportTripCurve(data, path))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	require.NoError(t, ExportTripCurve(data, filepath.Join(dir, "noext")))
	_, err := os.Stat(filepath.Join(dir, "noext.png"))
	assert.NoError(t, err)
}

func TestExportTripCurve_NoPoints(t *testing.T) {
	err := ExportTripCurve(TripCurveData{Curve: fuse.Curve{Family: fuse.Neozed, Rating: 35}}, filepath.Join(t.TempDir(), "x.png"))
	assert.Error(t, err)
}

func TestDrawTripCurve(t *testing.T) {
	out := DrawTripCurve(neozed35(t), 166, 50, 10)
	assert.Contains(t, out, "neozed-gg 35 A")
	assert.Contains(t, out, "Ik = 166 A")

	assert.Equal(t, "  (no curve data)\n", DrawTripCurve(fuse.Curve{}, 0, 0, 0))
}

func TestDrawSingleLine(t *testing.T) {
	src := `
name: Line
network: {voltage: 230, source_ik: 6000}
feeder: {name: F1, current: 35, phase: single, max_drop: 2, segments: [{method: 20, length: 15}]}
branches:
  - {name: B1, current: 10, phase: single, device: mcb-b, segments: [{method: 20, length: 12}]}
  - {name: B2, current: 300, phase: single, segments: [{method: 20, length: 12}]}
`
	p, err := project.Parse(strings.NewReader(src), config.Defaults())
	require.NoError(t, err)
	rep, err := project.Run(circuit.NewEngine(), p)
	require.NoError(t, err)

	out := DrawSingleLine(rep)
	assert.Contains(t, out, "SUPPLY  U = 230 V")
	assert.Contains(t, out, "├──[ x ]── B1")
	assert.Contains(t, out, "└──[ ? ]── B2: FAILED")
}

func TestDrawSummaryBox(t *testing.T) {
	out := DrawSummaryBox("F1", []string{"S = 16 mm²", "OK"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)))
	}
}
