package workbook

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gocable/internal/circuit"
	"github.com/alexiusacademia/gocable/internal/config"
	"github.com/alexiusacademia/gocable/internal/project"
)

// projectBook builds a workbook with a feeder of two segments and one branch
func projectBook(t *testing.T) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", NetworkSheet))
	_, err := f.NewSheet(CircuitsSheet)
	require.NoError(t, err)

	network := [][]any{
		{"name", "Workshop"},
		{"voltage", 230},
		{"source_ik", 10000},
		{"source_cos_phi", 0.3},
	}
	for i, r := range network {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow(NetworkSheet, cell, &r))
	}

	rows := [][]any{
		{"role", "name", "current", "phase", "material", "cos_phi", "max_drop", "auto_size", "device", "method", "length", "ambient_temp"},
		{"feeder", "F1", 35, "single", "Cu", 1, 1, "yes", "neozed", 72, 12, 20},
		{"", "F1", "", "", "", "", "", "", "", 72, 8, 20},
		{"branch", "B1", 16, "single", "Cu", 1, 3, "true", "mcb-b", 20, 10, 30},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow(CircuitsSheet, cell, &r))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestRead(t *testing.T) {
	pf, err := Read(projectBook(t))
	require.NoError(t, err)

	assert.Equal(t, "Workshop", pf.Name)
	assert.Equal(t, 230.0, pf.Network.Voltage)
	require.NotNil(t, pf.Network.SourceCosPhi)
	assert.Equal(t, 0.3, *pf.Network.SourceCosPhi)

	assert.Equal(t, "F1", pf.Feeder.Name)
	require.Len(t, pf.Feeder.Segments, 2)
	assert.Equal(t, 12.0, pf.Feeder.Segments[0].Length)
	assert.Equal(t, 8.0, pf.Feeder.Segments[1].Length)
	require.NotNil(t, pf.Feeder.AutoSize)
	assert.True(t, *pf.Feeder.AutoSize)

	require.Len(t, pf.Branches, 1)
	assert.Equal(t, "mcb-b", pf.Branches[0].Device)
}

func TestRead_RunsAsProject(t *testing.T) {
	pf, err := Read(projectBook(t))
	require.NoError(t, err)
	p, err := project.Build(pf, config.Defaults())
	require.NoError(t, err)

	rep, err := project.Run(circuit.NewEngine(), p)
	require.NoError(t, err)
	assert.Equal(t, 16.0, rep.Feeder.Size)
	assert.InDelta(t, 20.0, rep.Feeder.Length, 1e-9)
}

func TestRead_Errors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	header := []any{"name", "current", "length"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := Read(&buf)
	assert.ErrorContains(t, err, "no circuit rows")

	_, err = Read(strings.NewReader("not a workbook"))
	assert.ErrorContains(t, err, "failed to open workbook")
}

func TestRead_BadNumber(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]any{
		{"name", "current", "method", "length"},
		{"F1", "lots", 20, 5},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := Read(&buf)
	assert.ErrorContains(t, err, "row 2: current")
}

func TestWriteFile(t *testing.T) {
	pf, err := Read(projectBook(t))
	require.NoError(t, err)
	p, err := project.Build(pf, config.Defaults())
	require.NoError(t, err)
	rep, err := project.Run(circuit.NewEngine(), p)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "results.xlsx")
	require.NoError(t, WriteFile(path, rep))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, "F1", summary[1][0])
	assert.Equal(t, "feeder", summary[1][1])
	assert.Equal(t, "16", summary[1][2])
	assert.Equal(t, "B1", summary[2][0])

	segments, err := f.GetRows(SegmentsSheet)
	require.NoError(t, err)
	assert.Len(t, segments, 4)

	trace, err := f.GetRows(TraceSheet)
	require.NoError(t, err)
	assert.Equal(t, len(rep.Feeder.Trace)+len(rep.Branches[0].Result.Trace)+1, len(trace))
}

func TestWriteTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")
	require.NoError(t, WriteTemplate(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(CircuitsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, CircuitColumns, rows[0])

	keys, err := f.GetRows(NetworkSheet)
	require.NoError(t, err)
	assert.Len(t, keys, len(NetworkKeys))
}
