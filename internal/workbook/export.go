package workbook

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gocable/internal/circuit"
	"github.com/alexiusacademia/gocable/internal/project"
)

// Result sheet names
const (
	SummarySheet  = "Summary"
	SegmentsSheet = "Segments"
	TraceSheet    = "Trace"
)

var summaryHeader = []any{
	"Circuit", "Role", "S (mm²)", "L (m)", "In (A)", "Iz,req (A)", "Ampacity",
	"ΔU (%)", "ΔU,total (%)", "Voltage drop", "Ik,min (A)", "Ik,max (A)",
	"Device", "In,curve (A)", "t (s)", "Thermal", "Error",
}

var segmentsHeader = []any{
	"Circuit", "Segment", "Method", "Ref", "L (m)", "T (°C)", "Kt", "Kj", "Kgrp",
	"Iz,table (A)", "Iz,corr (A)", "Iz,req (A)", "R,min (Ω)", "X (Ω)",
}

// WriteFile saves the results of a project run as an XLSX workbook
func WriteFile(path string, rep *project.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return Write(out, rep)
}

// Write encodes the results of a project run as XLSX
func Write(w io.Writer, rep *project.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	for _, s := range []string{SegmentsSheet, TraceSheet} {
		if _, err := f.NewSheet(s); err != nil {
			return err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	sw := sheetWriter{f: f}
	sw.header(SummarySheet, summaryHeader, bold)
	sw.header(SegmentsSheet, segmentsHeader, bold)
	sw.header(TraceSheet, []any{"Circuit", "Line"}, bold)

	all := append([]project.BranchOutcome{{Circuit: rep.Feeder.Circuit, Result: rep.Feeder}}, rep.Branches...)
	for _, b := range all {
		if b.Err != nil {
			sw.append(SummarySheet, []any{b.Circuit.Name, string(circuit.Branch), "", "", b.Circuit.Current,
				"", "", "", "", "", "", "", "", "", "", "", b.Err.Error()})
			continue
		}
		writeResult(&sw, b.Result)
	}

	if sw.err != nil {
		return fmt.Errorf("failed to build workbook: %w", sw.err)
	}
	if err := f.SetColWidth(TraceSheet, "B", "B", 110); err != nil {
		return err
	}
	return f.Write(w)
}

func writeResult(sw *sheetWriter, r *circuit.Result) {
	c := r.Circuit
	sw.append(SummarySheet, []any{
		c.Name, string(r.Role), r.Size, r.Length, c.Current, round(r.RequiredAmpacity, 2), verdict(r.AmpacityOK),
		round(r.Drop.Percent, 3), round(r.TotalDrop.Percent, 3), verdict(r.DropOK),
		round(r.IkMin.Magnitude(), 1), round(r.IkMax.Magnitude(), 1),
		r.Device.Label, r.Device.Rating, round(r.Device.Trip.Time, 4), verdict(r.Thermal.OK), "",
	})

	for _, s := range r.Segments {
		sw.append(SegmentsSheet, []any{
			c.Name, s.Index, s.Segment.Method, string(s.Factors.Method.Reference), s.Segment.Length, s.Segment.AmbientTemp,
			round(s.Factors.Kt, 3), round(s.Factors.Kj, 3), round(s.Factors.Kgrp, 3),
			s.IzTable, round(s.IzCorrected, 1), round(s.IzRequired, 1),
			round(real(s.ZMin), 5), round(imag(s.ZMin), 5),
		})
	}

	for _, line := range r.Trace {
		sw.append(TraceSheet, []any{c.Name, line})
	}
}

// sheetWriter appends rows and keeps the first error
type sheetWriter struct {
	f    *excelize.File
	rows map[string]int
	err  error
}

func (sw *sheetWriter) header(sheet string, cells []any, style int) {
	sw.append(sheet, cells)
	if sw.err != nil {
		return
	}
	end, err := excelize.CoordinatesToCellName(len(cells), 1)
	if err != nil {
		sw.err = err
		return
	}
	sw.err = sw.f.SetCellStyle(sheet, "A1", end, style)
}

func (sw *sheetWriter) append(sheet string, cells []any) {
	if sw.err != nil {
		return
	}
	if sw.rows == nil {
		sw.rows = map[string]int{}
	}
	sw.rows[sheet]++
	cell, err := excelize.CoordinatesToCellName(1, sw.rows[sheet])
	if err != nil {
		sw.err = err
		return
	}
	sw.err = sw.f.SetSheetRow(sheet, cell, &cells)
}

// WriteTemplate saves an empty project workbook with the expected sheets and headers
func WriteTemplate(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", NetworkSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(CircuitsSheet); err != nil {
		return err
	}

	sw := sheetWriter{f: f}
	for _, k := range NetworkKeys {
		sw.append(NetworkSheet, []any{k, ""})
	}
	header := make([]any, len(CircuitColumns))
	for i, c := range CircuitColumns {
		header[i] = c
	}
	sw.append(CircuitsSheet, header)
	if sw.err != nil {
		return sw.err
	}
	return f.SaveAs(path)
}

func verdict(ok bool) string {
	if ok {
		return "OK"
	}
	return "NOT OK"
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
