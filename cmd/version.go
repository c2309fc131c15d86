package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gocable/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gocable",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
		fmt.Println("Low-Voltage Cable Dimensioning Tool")
		fmt.Printf("Based on %s (current-carrying capacities of wiring systems)\n", version.Standard)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
