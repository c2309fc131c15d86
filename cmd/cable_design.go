package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gocable/internal/circuit"
	"github.com/alexiusacademia/gocable/internal/diagram"
	"github.com/alexiusacademia/gocable/internal/fuse"
	"github.com/alexiusacademia/gocable/internal/logger"
)

var cableDesignCmd = &cobra.Command{
	Use:   "design",
	Short: "Select the cross-section of a feeder cable",
	Long: `Select the smallest standard cross-section whose corrected ampacity
carries the design current in every segment and whose voltage drop
stays within the limit. The chosen cable is then checked for
short-circuit protection and thermal withstand.

Examples:
  # 35 A single-phase copper cable, direct in ground, 20 m
  gocable cable design -i 35 -p single -m 72 -l 20 -t 20 -u 230 --max-drop 1

  # Three-phase cable in two segments with an automatic MCB
  gocable cable design -i 25 --segment 20:15:35 --segment 70:30:20 -d mcb-auto`,
	Run: runCableDesign,
}

func init() {
	cableCmd.AddCommand(cableDesignCmd)
	addCircuitFlags(cableDesignCmd)
}

func runCableDesign(cmd *cobra.Command, args []string) {
	c, net, err := circuitFromFlags(cmd, 0)
	if err != nil {
		printError(err)
		return
	}

	logger.Info("designing %s: In = %g A, %d segments", c.Name, c.Current, len(c.Segments))
	result, err := circuit.NewEngine().Feeder(c, net)
	if err != nil {
		printFailure(err, cableShowTrace)
		return
	}

	printBanner("CABLE DESIGN - AUTOMATIC CROSS-SECTION")
	printResult(result)
	if cableShowTrace {
		printTrace(result.Trace)
	}
	showCurve(result, cableShowCurve, cableExport)
}

// showCurve prints and exports the device curve of a result as requested
func showCurve(r *circuit.Result, ascii bool, export string) {
	if !ascii && export == "" {
		return
	}
	curve, err := fuse.DefaultCatalog().Curve(r.Device.Family, r.Circuit.Current)
	if err != nil {
		printError(err)
		return
	}
	ik := r.IkMin.Magnitude()

	if ascii {
		printHeading("TIME-CURRENT CURVE:")
		fmt.Println(diagram.DrawTripCurve(curve, ik, 60, 15))
	}
	if export != "" {
		data := diagram.TripCurveData{
			Title:        fmt.Sprintf("%s: %s %.0f A", r.Name(), r.Device.Label, curve.Rating),
			Curve:        curve,
			FaultCurrent: ik,
			MinRating:    r.Circuit.Current,
		}
		if err := diagram.ExportTripCurve(data, export); err != nil {
			printError(fmt.Errorf("exporting curve: %w", err))
			return
		}
		fmt.Printf("  Curve exported to %s\n\n", export)
	}
}
