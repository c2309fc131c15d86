package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gocable/internal/diagram"
	"github.com/alexiusacademia/gocable/internal/fuse"
)

var (
	fuseFamily string
	fuseRating float64
	fuseIk     float64
	fuseList   bool
	fuseASCII  bool
	fuseExport string
)

var fuseCmd = &cobra.Command{
	Use:   "fuse",
	Short: "Trip time of a protective device",
	Long: `Find the operating time of a fuse or circuit breaker for a fault
current. The catalog rating nearest to --rating is used (ties go to
the lower rating); times between curve points are interpolated on
log-log scale.

Examples:
  gocable fuse --family neozed --rating 35 --ik 166
  gocable fuse --family mcb-c --rating 16 --ik 400 --ascii
  gocable fuse --list`,
	Run: runFuse,
}

func init() {
	rootCmd.AddCommand(fuseCmd)

	fuseCmd.Flags().StringVarP(&fuseFamily, "family", "f", "neozed", "Device family: diazed, neozed, nh, mcb-b, mcb-c, mcb-d")
	fuseCmd.Flags().Float64VarP(&fuseRating, "rating", "r", 0, "Rated or design current (A)")
	fuseCmd.Flags().Float64Var(&fuseIk, "ik", 0, "Fault current (A)")
	fuseCmd.Flags().BoolVar(&fuseList, "list", false, "List device families and ratings")
	fuseCmd.Flags().BoolVar(&fuseASCII, "ascii", false, "Show the time-current curve in the terminal")
	fuseCmd.Flags().StringVarP(&fuseExport, "output", "o", "", "Export the curve to file (png, svg, pdf)")
}

func runFuse(cmd *cobra.Command, args []string) {
	cat := fuse.DefaultCatalog()

	if fuseList {
		printBanner("PROTECTIVE DEVICE CATALOG")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  Family\tTag\tMin trip\tRatings (A)")
		for _, f := range cat.Families() {
			ratings, _ := cat.Ratings(f)
			parts := make([]string, len(ratings))
			for i, r := range ratings {
				parts[i] = fmt.Sprintf("%g", r)
			}
			c, _ := cat.Curve(f, ratings[0])
			fmt.Fprintf(w, "  %s\t%s\t%.0f × In\t%s\n", cat.Label(f), f, c.MinTripFactor, strings.Join(parts, ", "))
		}
		w.Flush()
		fmt.Println()
		return
	}

	family, err := fuse.ParseFamily(fuseFamily)
	if err != nil {
		printError(err)
		return
	}
	if family == fuse.MCBAuto {
		if fuseIk <= 0 || fuseRating <= 0 {
			printWarning("mcb-auto needs --rating and --ik")
			return
		}
		if family, err = fuse.SelectMCB(fuseIk, fuseRating); err != nil {
			printError(err)
			return
		}
	}
	if fuseRating <= 0 {
		printWarning("--rating must be positive")
		return
	}

	curve, err := cat.Curve(family, fuseRating)
	if err != nil {
		printError(err)
		return
	}

	printBanner(fmt.Sprintf("%s - TRIP TIME", strings.ToUpper(cat.Label(family))))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Requested rating:\t%.1f A\n", fuseRating)
	fmt.Fprintf(w, "  Catalog rating (In):\t%.0f A\n", curve.Rating)
	fmt.Fprintf(w, "  Minimum trip current:\t%.0f × In = %.0f A\n", curve.MinTripFactor, curve.MinTripFactor*curve.Rating)
	w.Flush()
	fmt.Println()

	if fuseIk > 0 {
		trip := curve.TripTime(fuseIk)
		printHeading("OPERATING POINT:")
		for _, n := range trip.Notes {
			fmt.Printf("  %s\n", n)
		}
		fmt.Println()
		if fuseIk < curve.MinTripFactor*curve.Rating {
			printWarning("Ik is below %.0f × In", curve.MinTripFactor)
			fmt.Println()
		}
	}

	if fuseASCII {
		printHeading("TIME-CURRENT CURVE:")
		fmt.Println(diagram.DrawTripCurve(curve, fuseIk, 60, 15))
	}
	if fuseExport != "" {
		data := diagram.TripCurveData{Curve: curve, FaultCurrent: fuseIk, MinRating: curve.Rating}
		if err := diagram.ExportTripCurve(data, fuseExport); err != nil {
			printError(err)
			return
		}
		fmt.Printf("  Curve exported to %s\n\n", fuseExport)
	}
}
