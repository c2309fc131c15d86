package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gocable/internal/hd60364"
)

var (
	ampMaterial string
	ampRef      string
	ampLoaded   int
	ampTemp     float64
	ampGroup    int
)

var tablesAmpacityCmd = &cobra.Command{
	Use:   "ampacity",
	Short: "Print an ampacity column",
	Long: `Print tabulated current-carrying capacities for a material, reference
installation class and number of loaded conductors. With --temp or
--group the corrected values are shown next to the tabulated ones.

Examples:
  gocable tables ampacity --material Cu --ref C --loaded 3
  gocable tables ampacity --ref D2 --loaded 2 --temp 25`,
	Run: runTablesAmpacity,
}

func init() {
	tablesCmd.AddCommand(tablesAmpacityCmd)

	tablesAmpacityCmd.Flags().StringVar(&ampMaterial, "material", "Cu", "Conductor material: Cu or Al")
	tablesAmpacityCmd.Flags().StringVar(&ampRef, "ref", "C", "Reference class: A1, A2, B1, B2, C, D1, D2")
	tablesAmpacityCmd.Flags().IntVar(&ampLoaded, "loaded", 3, "Loaded conductors (2 or 3)")
	tablesAmpacityCmd.Flags().Float64Var(&ampTemp, "temp", 0, "Ambient temperature (°C) for Kt, 0 for none")
	tablesAmpacityCmd.Flags().IntVar(&ampGroup, "group", 1, "Number of grouped circuits for Kgrp")
}

func runTablesAmpacity(cmd *cobra.Command, args []string) {
	repo := hd60364.Default()
	mat, err := hd60364.ParseMaterial(ampMaterial)
	if err != nil {
		printError(err)
		return
	}
	ref := hd60364.Reference(strings.ToUpper(ampRef))
	column, ok := repo.AmpacityColumn(mat, ref, ampLoaded)
	if !ok {
		printWarning("no ampacity data for %s, ref %s, %d loaded conductors", mat, ref, ampLoaded)
		return
	}

	env := hd60364.Air
	if ref.Buried() {
		env = hd60364.Buried
	}
	kt := 1.0
	if ampTemp != 0 {
		if kt, err = repo.TemperatureFactor(env, ampTemp); err != nil {
			printError(err)
			return
		}
	}
	kgrp := repo.GroupingFactor(ref, ampGroup)

	printBanner(fmt.Sprintf("AMPACITY - %s, REF %s, %d LOADED CONDUCTORS", mat, ref, ampLoaded))
	fmt.Printf("  Kt = %.3f (%s), Kgrp = %.3f\n\n", kt, env, kgrp)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  S (mm²)\tIz,table (A)\tIz,corr (A)")
	for _, row := range column {
		fmt.Fprintf(w, "  %g\t%.1f\t%.1f\n", row[0], row[1], row[1]*kt*kgrp)
	}
	w.Flush()
	fmt.Println()
}
