package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gocable/internal/circuit"
	"github.com/alexiusacademia/gocable/internal/diagram"
	"github.com/alexiusacademia/gocable/internal/electrical"
)

const rule = "───────────────────────────────────────────────────────────────"

func printBanner(title string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     %s\n", title)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
}

func printHeading(title string) {
	fmt.Println(title)
	fmt.Println(rule)
}

// printResult prints the full report of one circuit
func printResult(r *circuit.Result) {
	c := r.Circuit

	printHeading("INPUT DATA:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Circuit:\t%s (%s)\n", c.Name, r.Role)
	fmt.Fprintf(w, "  Nominal voltage (U):\t%.0f V, %s-phase\n", r.Network.Voltage, c.Phase)
	fmt.Fprintf(w, "  Design current (In):\t%.1f A\n", c.Current)
	fmt.Fprintf(w, "  Conductor:\t%s\n", c.Material)
	fmt.Fprintf(w, "  Power factor (cos φ):\t%.2f\n", c.CosPhi)
	fmt.Fprintf(w, "  Voltage drop limit:\t%.2f %%\n", c.MaxDropPercent)
	fmt.Fprintf(w, "  Total length (L):\t%.1f m\n", r.Length)
	w.Flush()
	fmt.Println()

	printHeading("SEGMENTS:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  #\tMethod\tRef\tL (m)\tT (°C)\tKt\tKj\tKgrp\tIz,tab (A)\tIz,corr (A)\tIz,req (A)\t")
	for _, s := range r.Segments {
		fmt.Fprintf(w, "  %d\t%d\t%s\t%.1f\t%.1f\t%.3f\t%.3f\t%.3f\t%.1f\t%.1f\t%.1f\t\n",
			s.Index, s.Segment.Method, s.Factors.Method.Reference, s.Segment.Length, s.Segment.AmbientTemp,
			s.Factors.Kt, s.Factors.Kj, s.Factors.Kgrp, s.IzTable, s.IzCorrected, s.IzRequired)
	}
	w.Flush()
	fmt.Println()

	printHeading("CHECKS:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Ampacity (Iz,corr ≥ In):\t%s\n", verdict(r.AmpacityOK))
	fmt.Fprintf(w, "  Voltage drop, own cable:\t%s\n", r.Drop)
	if r.Role == circuit.Branch {
		fmt.Fprintf(w, "  Voltage drop, upstream:\t%s\n", r.UpstreamDrop)
	}
	fmt.Fprintf(w, "  Voltage drop, total:\t%s  %s\n", r.TotalDrop, verdict(r.DropOK))
	fmt.Fprintf(w, "  Cable Z,min / Z,max:\t%s / %s\n", electrical.FormatImpedance(r.ZMin), electrical.FormatImpedance(r.ZMax))
	fmt.Fprintf(w, "  I_min,supply:\t%.1f A (5 × %s)\n", r.MinSupply, r.SourceNote)
	fmt.Fprintf(w, "  Ik,min:\t%s\n", r.IkMin)
	fmt.Fprintf(w, "  Ik,max:\t%s\n", r.IkMax)
	fmt.Fprintf(w, "  Protective device:\t%s, In = %.0f A\n", r.Device.Label, r.Device.Rating)
	fmt.Fprintf(w, "  Trip time at Ik,min:\t%.3f s (m = %.2f)\n", r.Device.Trip.Time, r.Device.Trip.Multiple)
	fmt.Fprintf(w, "  Thermal (Σk²S² > Ik²t):\t%.0f > %.0f A²s  %s\n", r.Thermal.Capacity, r.Thermal.LetThrough, verdict(r.Thermal.OK))
	fmt.Fprintf(w, "  Minimum thermal section:\t%.2f mm²\n", r.Thermal.MinSection)
	w.Flush()
	fmt.Println()

	if r.Device.BelowMinTrip {
		printWarning("Ik,min is below %.0f × In, instantaneous trip is not guaranteed", r.Device.MinTripFactor)
		fmt.Println()
	}

	if ef := r.EarthFault; ef != nil {
		printEarthFault(ef)
	}
	if len(r.Warnings) > 0 {
		for _, msg := range r.Warnings {
			printWarning("%s", msg)
		}
		fmt.Println()
	}

	printHeading("RESULT:")
	fmt.Print(diagram.DrawSummaryBox(fmt.Sprintf("%s: S = %g mm² %s", c.Name, r.Size, c.Material), []string{
		fmt.Sprintf("ΔU,total = %.2f %%", r.TotalDrop.Percent),
		fmt.Sprintf("Ik,min = %.1f A, Ik,max = %.1f A", r.IkMin.Magnitude(), r.IkMax.Magnitude()),
		fmt.Sprintf("%s %.0f A, t = %.3f s", r.Device.Label, r.Device.Rating, r.Device.Trip.Time),
	}))
	fmt.Println()
}

func printEarthFault(ef *electrical.EarthFault) {
	printHeading("EARTH FAULT PROTECTION:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  R1 (70 °C) + R2:\t%.4f + %.4f Ω\n", ef.PhaseR, ef.EarthR)
	fmt.Fprintf(w, "  Loop impedance Zs:\t%.4f Ω (max %.4f Ω)  %s\n", ef.EffectiveZs, ef.ZsMax, verdict(ef.ZsOK))
	fmt.Fprintf(w, "  Earth fault current Ia:\t%.1f A (required %.1f A)\n", ef.Ia, ef.IaRequired)
	fmt.Fprintf(w, "  Touch voltage:\t%.1f V\n", ef.TouchVoltage)
	rcd := ef.RCD.Sensitivity
	if ef.RCD.Delayed {
		rcd += ", time-delayed"
	}
	if ef.RCD.Required {
		rcd += ", required"
	}
	fmt.Fprintf(w, "  RCD:\t%s (%s)\n", rcd, ef.RCD.Reason)
	fmt.Fprintf(w, "  Disconnection:\t%s\n", verdict(ef.OK))
	w.Flush()
	fmt.Println()
}

// printTrace prints the computation trace of a circuit
func printTrace(trace circuit.Trace) {
	printHeading("CALCULATION TRACE:")
	for _, line := range trace {
		fmt.Printf("  %s\n", line)
	}
	fmt.Println()
}

// printFailure prints an engine error, with the search trace when there is one
func printFailure(err error, showTrace bool) {
	printError(err)
	if se, ok := asSelectionError(err); ok && showTrace {
		printTrace(se.Trace)
	}
}

func asSelectionError(err error) (*circuit.SelectionError, bool) {
	var se *circuit.SelectionError
	ok := errors.As(err, &se)
	return se, ok
}
