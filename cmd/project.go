package cmd

import (
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Feeder and branch circuits of an installation",
	Long: `Compute a whole installation: the feeder from the source and every
branch circuit connected at its end. Branches use the feeder's
impedance, short-circuit level and voltage drop.

Subcommands:
  run     - Compute a project described in a YAML file
  import  - Compute a project described in an XLSX workbook`,
}

func init() {
	rootCmd.AddCommand(projectCmd)
}
