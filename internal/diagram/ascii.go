// Package diagram draws installation and device diagrams for the terminal
// and exports time–current curves as images.
package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gocable/internal/fuse"
	"github.com/alexiusacademia/gocable/internal/project"
)

// DrawSingleLine creates a single-line diagram of the feeder and its branches
func DrawSingleLine(rep *project.Report) string {
	var sb strings.Builder
	f := rep.Feeder
	net := rep.Project.Network

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  SUPPLY  U = %.0f V, Ik,source = %.0f A\n", net.Voltage, net.SourceIk))
	sb.WriteString("     │\n")
	sb.WriteString(fmt.Sprintf("    [%s]  %s %.0f A\n", deviceMark(f.Device.Family), f.Device.Label, f.Device.Rating))
	sb.WriteString("     │\n")
	sb.WriteString(fmt.Sprintf("     │  %s: %s %g mm², %.1f m, ΔU = %.2f %%\n", f.Name(), f.Circuit.Material, f.Size, f.Length, f.TotalDrop.Percent))
	sb.WriteString("     │\n")
	sb.WriteString(fmt.Sprintf("  ═══╧═══════════  DB  (Ik,min = %.0f A)\n", f.IkMin.Magnitude()))

	for i, b := range rep.Branches {
		joint := "├"
		if i == len(rep.Branches)-1 {
			joint = "└"
		}
		if b.Err != nil {
			sb.WriteString(fmt.Sprintf("     %s──[ ? ]── %s: FAILED\n", joint, b.Circuit.Name))
			continue
		}
		r := b.Result
		sb.WriteString(fmt.Sprintf("     %s──[%s]── %s: %s %.0f A, %g mm², %.1f m, ΔU,total = %.2f %%, Ik,min = %.0f A\n",
			joint, deviceMark(r.Device.Family), r.Name(), r.Device.Label, r.Device.Rating,
			r.Size, r.Length, r.TotalDrop.Percent, r.IkMin.Magnitude()))
	}
	return sb.String()
}

func deviceMark(f fuse.Family) string {
	switch f {
	case fuse.MCBB, fuse.MCBC, fuse.MCBD:
		return " x "
	}
	return "▭▭▭"
}

// DrawTripCurve plots log10(t) against the current multiple on a log grid
func DrawTripCurve(c fuse.Curve, faultCurrent float64, width, height int) string {
	if len(c.Points) < 2 || c.Rating <= 0 {
		return "  (no curve data)\n"
	}
	if width < 10 {
		width = 60
	}
	if height < 5 {
		height = 15
	}

	lo := math.Log10(c.Points[0].Multiple)
	hi := math.Log10(c.Points[len(c.Points)-1].Multiple)
	series := make([]float64, width)
	for i := range series {
		m := math.Pow(10, lo+(hi-lo)*float64(i)/float64(width-1))
		t := c.TripTime(m * c.Rating).Time
		series[i] = math.Log10(t)
	}

	caption := fmt.Sprintf("log10 t (s) vs m = %.2f … %.1f (log), %s %.0f A", c.Points[0].Multiple,
		c.Points[len(c.Points)-1].Multiple, c.Family, c.Rating)
	if faultCurrent > 0 {
		tr := c.TripTime(faultCurrent)
		caption += fmt.Sprintf("; Ik = %.0f A ⇒ m = %.2f, t = %.3f s", faultCurrent, tr.Multiple, tr.Time)
	}

	graph := asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	)
	return graph + "\n"
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

func pad(s string, n int) string {
	if d := n - utf8.RuneCountInString(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}
