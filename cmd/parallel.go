package cmd

import (
	"fmt"
	"math/cmplx"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gocable/internal/electrical"
	"github.com/alexiusacademia/gocable/internal/hd60364"
)

var (
	parCurrent  float64
	parZ1       float64
	parZ2       float64
	parSize1    float64
	parSize2    float64
	parLength1  float64
	parLength2  float64
	parMaterial string
	parPhase    string
	parScheme   string
	parIk       float64
	parRating   float64
)

var parallelCmd = &cobra.Command{
	Use:   "parallel",
	Short: "Current split and protection of two parallel cables",
	Long: `Divide a load current between two parallel cables in inverse
proportion to their impedances and check the short-circuit protection
of the pair.

Impedances are given directly with --z1/--z2, or derived from the
cable size and length (20 °C resistance and reactance).

Examples:
  gocable parallel --current 400 --size1 185 --length1 60 --size2 185 --length2 75
  gocable parallel --current 250 --z1 0.012 --z2 0.018 --ik 3000 --rating 250 --scheme double`,
	Run: runParallel,
}

func init() {
	rootCmd.AddCommand(parallelCmd)

	f := parallelCmd.Flags()
	f.Float64VarP(&parCurrent, "current", "i", 0, "Total load current (A) [required]")
	f.Float64Var(&parZ1, "z1", 0, "Impedance of cable 1 (Ω)")
	f.Float64Var(&parZ2, "z2", 0, "Impedance of cable 2 (Ω)")
	f.Float64Var(&parSize1, "size1", 0, "Cross-section of cable 1 (mm²)")
	f.Float64Var(&parSize2, "size2", 0, "Cross-section of cable 2 (mm²)")
	f.Float64Var(&parLength1, "length1", 0, "Length of cable 1 (m)")
	f.Float64Var(&parLength2, "length2", 0, "Length of cable 2 (m)")
	f.StringVar(&parMaterial, "material", "Cu", "Conductor material: Cu or Al")
	f.StringVarP(&parPhase, "phase", "p", "three", "Phase: single or three")
	f.StringVar(&parScheme, "scheme", "single", "Protection: single (supply end), double (both ends), individual")
	f.Float64Var(&parIk, "ik", 0, "Minimum fault current at the cables (A)")
	f.Float64VarP(&parRating, "rating", "r", 0, "Rating of the protective device (A)")

	parallelCmd.MarkFlagRequired("current")
}

func runParallel(cmd *cobra.Command, args []string) {
	z1, z2, err := parallelImpedances(hd60364.Default())
	if err != nil {
		printError(err)
		return
	}
	split, err := electrical.SplitParallel(parCurrent, z1, z2)
	if err != nil {
		printError(err)
		return
	}

	printBanner("PARALLEL CABLES - CURRENT SPLIT")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Total current:\t%.1f A\n", parCurrent)
	fmt.Fprintln(w, "  \tZ (Ω)\tI (A)\tShare\t")
	fmt.Fprintf(w, "  Cable 1\t%.5f\t%.1f\t%.1f %%\t\n", z1, split.I1, split.Share1)
	fmt.Fprintf(w, "  Cable 2\t%.5f\t%.1f\t%.1f %%\t\n", z2, split.I2, split.Share2)
	w.Flush()
	fmt.Println()

	if split.Unbalanced {
		printWarning("Current split deviates %.1f %% from an even share (limit %.0f %%)", split.Imbalance, electrical.ParallelImbalanceLimit)
		fmt.Println()
	}

	if parIk > 0 && parRating > 0 {
		scheme, err := electrical.ParseProtectionScheme(parScheme)
		if err != nil {
			printError(err)
			return
		}
		p := electrical.CheckParallelProtection(scheme, parIk, parRating, split)
		printHeading("SHORT-CIRCUIT PROTECTION:")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Scheme:\t%s\n", p.Scheme)
		fmt.Fprintf(w, "  Ik ≥ 2 × In:\t%.0f A ≥ %.0f A  %s\n", parIk, 2*parRating, verdict(p.Adequate))
		w.Flush()
		fmt.Printf("  %s\n\n", p.Note)
	}
}

// parallelImpedances returns the cable impedances from --z1/--z2, or from size and length
func parallelImpedances(repo *hd60364.Repository) (float64, float64, error) {
	if parZ1 > 0 || parZ2 > 0 {
		return parZ1, parZ2, nil
	}
	if parSize1 <= 0 || parSize2 <= 0 || parLength1 <= 0 || parLength2 <= 0 {
		return 0, 0, fmt.Errorf("give --z1 and --z2, or --size1/--length1 and --size2/--length2")
	}
	mat, err := hd60364.ParseMaterial(parMaterial)
	if err != nil {
		return 0, 0, err
	}
	phase, err := hd60364.ParsePhase(parPhase)
	if err != nil {
		return 0, 0, err
	}

	z1, err := electrical.SegmentImpedance(repo, mat, parSize1, parLength1, phase, electrical.MaxStudy)
	if err != nil {
		return 0, 0, err
	}
	z2, err := electrical.SegmentImpedance(repo, mat, parSize2, parLength2, phase, electrical.MaxStudy)
	if err != nil {
		return 0, 0, err
	}
	return cmplx.Abs(z1), cmplx.Abs(z2), nil
}
