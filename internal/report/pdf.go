// Package report renders project results as a PDF calculation report.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/gocable/internal/circuit"
	"github.com/alexiusacademia/gocable/internal/project"
	"github.com/alexiusacademia/gocable/internal/version"
)

// Options controls the report header and attachments
type Options struct {
	Title  string
	Author string
	Date   string   // printed as given, empty to omit
	Images []string // PNG files appended after the traces (curve plots)
}

// symbols outside the core font code page
var symbols = strings.NewReplacer(
	"Ω", "Ohm", "Δ", "d", "φ", "phi", "⇒", "=>", "√", "sqrt", "Σ", "sum",
	"−", "-", "–", "-", "≤", "<=", "≥", ">=", "≈", "~", "═", "=", "─", "-",
)

// WriteFile saves the report to path, creating the directory
func WriteFile(path string, rep *project.Report, opt Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return Write(out, rep, opt)
}

// Write renders the report of a project run
func Write(w io.Writer, rep *project.Report, opt Options) error {
	if opt.Title == "" {
		opt.Title = "Cable Dimensioning Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(symbols.Replace(s)) }

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("gocable %s - page %d", version.Version, pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, text(opt.Title))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, text(fmt.Sprintf("Project: %s", rep.Project.Name)))
	pdf.Ln(6)
	if opt.Author != "" {
		pdf.Cell(0, 6, text(fmt.Sprintf("Author: %s", opt.Author)))
		pdf.Ln(6)
	}
	if opt.Date != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Date: %s", opt.Date))
		pdf.Ln(6)
	}
	net := rep.Project.Network
	pdf.Cell(0, 6, text(fmt.Sprintf("Supply: U = %.0f V, Ik,source = %.0f A, cos φ = %.2f", net.Voltage, net.SourceIk, net.SourceCosPhi)))
	pdf.Ln(10)

	summaryTable(pdf, text, rep)

	for _, r := range rep.Results() {
		circuitPage(pdf, text, r)
	}
	for _, b := range rep.Branches {
		if b.Err != nil {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.SetTextColor(180, 0, 0)
			pdf.MultiCell(0, 6, text(fmt.Sprintf("%s: %v", b.Circuit.Name, b.Err)), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		}
	}

	for _, img := range opt.Images {
		pdf.AddPage()
		pdf.ImageOptions(img, 15, 20, 180, 0, false, gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return pdf.Output(w)
}

func summaryTable(pdf *gofpdf.Fpdf, text func(string) string, rep *project.Report) {
	cols := []struct {
		title string
		width float64
	}{
		{"Circuit", 24}, {"S (mm²)", 18}, {"L (m)", 16}, {"In (A)", 16}, {"ΔU,tot (%)", 22},
		{"Ik,min (A)", 22}, {"Device", 30}, {"t (s)", 16}, {"Thermal", 16},
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, text(c.title), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, r := range rep.Results() {
		cells := []string{
			r.Name(),
			fmt.Sprintf("%g", r.Size),
			fmt.Sprintf("%.1f", r.Length),
			fmt.Sprintf("%.1f", r.Circuit.Current),
			fmt.Sprintf("%.2f", r.TotalDrop.Percent),
			fmt.Sprintf("%.1f", r.IkMin.Magnitude()),
			fmt.Sprintf("%s %.0f A", r.Device.Label, r.Device.Rating),
			fmt.Sprintf("%.3f", r.Device.Trip.Time),
			verdict(r.Thermal.OK),
		}
		for i, c := range cells {
			pdf.CellFormat(cols[i].width, 6, text(c), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

func circuitPage(pdf *gofpdf.Fpdf, text func(string) string, r *circuit.Result) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, text(fmt.Sprintf("%s (%s): S = %g mm²", r.Name(), r.Role, r.Size)))
	pdf.Ln(10)

	pdf.SetFont("Courier", "", 8)
	pdf.MultiCell(0, 4, text(r.Trace.String()), "", "L", false)
}

func verdict(ok bool) string {
	if ok {
		return "OK"
	}
	return "NOT OK"
}
