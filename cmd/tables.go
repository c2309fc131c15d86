package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gocable/internal/hd60364"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the reference tables",
	Long: `Print the installation methods and current-carrying capacities used
by the calculations.

Subcommands:
  methods   - Installation methods with reference class and environment
  ampacity  - Ampacity column for a material, reference class and loaded conductors`,
}

var tablesMethodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List the installation methods",
	Run:   runTablesMethods,
}

func init() {
	rootCmd.AddCommand(tablesCmd)
	tablesCmd.AddCommand(tablesMethodsCmd)
}

func runTablesMethods(cmd *cobra.Command, args []string) {
	printBanner("INSTALLATION METHODS - HD 60364-5-52 TABLE B.52.3")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  No.\tRef\tEnv\tKj\tDescription")
	for _, m := range hd60364.Default().Methods() {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%.1f\t%s\n", m.Number, m.Reference, m.Environment, m.Kj, m.Description)
		if m.Conditions != "" {
			fmt.Fprintf(w, "\t\t\t\t  (%s)\n", m.Conditions)
		}
	}
	w.Flush()
	fmt.Println()
}
