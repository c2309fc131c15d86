package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gocable/internal/config"
	"github.com/alexiusacademia/gocable/internal/logger"
	"github.com/alexiusacademia/gocable/internal/version"
)

var (
	verbose    bool
	configPath string

	// cfg holds the defaults for values a command leaves out
	cfg = config.Defaults()
)

var rootCmd = &cobra.Command{
	Use:   "gocable",
	Short: "Low-voltage cable dimensioning tool",
	Long: `gocable - Go Low-Voltage Cable Designer

A CLI tool for sizing and verifying low-voltage cable circuits
based on the HD 60364-5-52 current-carrying capacity tables.

This tool helps electrical engineers perform:
  - Automatic cross-section selection (ampacity and voltage drop)
  - Minimum and maximum short-circuit current calculation
  - Protective device trip time from time-current curves
  - Thermal withstand (k²S² > I²t) verification
  - Feeder and branch circuit projects from YAML or XLSX files

Defaults are read from ~/.gocable/config.toml and GOCABLE_* variables.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
		loadConfig()
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gocable v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Low-Voltage Cable Designer                           ║")
		fmt.Printf("  ║   %s ©  %-36s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for sizing low-voltage cables and checking")
		fmt.Println("  their short-circuit protection.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Cross-section selection from ampacity and voltage drop")
		fmt.Println("    • Ik,min / Ik,max with complex cable impedances")
		fmt.Println("    • Diazed, Neozed, NH fuses and B/C/D circuit breakers")
		fmt.Println("    • PDF, XLSX and time-current curve exports")
		fmt.Println()
		fmt.Println("  Use 'gocable --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print progress to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Defaults file (default ~/.gocable/config.toml)")
}

func loadConfig() {
	cfg = resolveConfig(configPath)
	logger.Debug("defaults: U = %g V, ΔU,max = %g %%, device %s", cfg.Voltage, cfg.MaxDropPercent, cfg.Device)
}

// resolveConfig reads the defaults file and applies environment overrides.
// A step that fails leaves the values of the previous step in place.
func resolveConfig(path string) config.Config {
	c, err := config.Load(path)
	if err != nil {
		logger.Warn("%v, using built-in defaults", err)
		c = config.Defaults()
	}
	env, err := config.ApplyEnv(c)
	if err != nil {
		logger.Warn("%v, ignoring environment overrides", err)
		return c
	}
	return env
}
