package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gocable/internal/circuit"
	"github.com/alexiusacademia/gocable/internal/logger"
)

var checkSize float64

var cableCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify a feeder cable of given cross-section",
	Long: `Verify ampacity, voltage drop, short-circuit protection and
thermal withstand of a cable with a given cross-section. Aluminium
cables below 16 mm² are raised to 16 mm².

Examples:
  gocable cable check -i 63 -m 70 -l 40 -t 20 --size 16 -d nh`,
	Run: runCableCheck,
}

func init() {
	cableCmd.AddCommand(cableCheckCmd)
	addCircuitFlags(cableCheckCmd)
	cableCheckCmd.Flags().Float64VarP(&checkSize, "size", "s", 0, "Cross-section (mm²) [required]")
	cableCheckCmd.MarkFlagRequired("size")
}

func runCableCheck(cmd *cobra.Command, args []string) {
	if checkSize <= 0 {
		printWarning("--size must be a positive standard cross-section")
		return
	}
	c, net, err := circuitFromFlags(cmd, checkSize)
	if err != nil {
		printError(err)
		return
	}

	logger.Info("checking %s at S = %g mm²", c.Name, checkSize)
	result, err := circuit.NewEngine().Feeder(c, net)
	if err != nil {
		printFailure(err, cableShowTrace)
		return
	}

	printBanner("CABLE CHECK - GIVEN CROSS-SECTION")
	printResult(result)
	if !result.AmpacityOK || !result.DropOK || !result.Thermal.OK {
		printWarning("the cable does not pass every check")
		fmt.Println()
	}
	if cableShowTrace {
		printTrace(result.Trace)
	}
	showCurve(result, cableShowCurve, cableExport)
}
