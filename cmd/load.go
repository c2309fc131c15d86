package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gocable/internal/electrical"
	"github.com/alexiusacademia/gocable/internal/hd60364"
)

var (
	loadMethod    string
	loadPerUnit   float64
	loadUnits     int
	loadArea      float64
	loadOccupancy string
	loadLoads     []float64
	loadFactor    float64
	loadVoltage   float64
	loadPhase     string
	loadCosPhi    float64
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Estimate the design power and current of a circuit",
	Long: `Estimate the design load of a feeder from one of three methods:

  velander   - peak demand of n dwellings, P = k1·W·n + k2·√(W·n)
  area       - floor area times the load per m² of the occupancy
  diversity  - sum of connected loads times a diversity factor

The design current follows from the phase, voltage and power factor
and can be passed to 'gocable cable design --current'.

Examples:
  gocable load --method velander --per-unit 5000 --units 12
  gocable load --method area --area 800 --occupancy office
  gocable load --method diversity --loads 4000,6000,10000 --factor 0.6 --phase single`,
	Run: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	f := loadCmd.Flags()
	f.StringVar(&loadMethod, "method", "velander", "Estimation method: velander, area, diversity")
	f.Float64Var(&loadPerUnit, "per-unit", 0, "Average consumption per dwelling (W)")
	f.IntVar(&loadUnits, "units", 1, "Number of dwellings")
	f.Float64Var(&loadArea, "area", 0, "Floor area (m²)")
	f.StringVar(&loadOccupancy, "occupancy", "dwelling", "Occupancy: dwelling, supermarket, retail, office, storage")
	f.Float64SliceVar(&loadLoads, "loads", nil, "Connected loads (W), comma separated")
	f.Float64Var(&loadFactor, "factor", 1, "Diversity factor (0, 1]")
	f.Float64VarP(&loadVoltage, "voltage", "u", 0, "Nominal voltage (V) (default from config)")
	f.StringVarP(&loadPhase, "phase", "p", "three", "Phase: single or three")
	f.Float64Var(&loadCosPhi, "cos", 0, "Load power factor (default from config)")
}

func runLoad(cmd *cobra.Command, args []string) {
	power, basis, err := estimateLoad()
	if err != nil {
		printError(err)
		return
	}
	phase, err := hd60364.ParsePhase(loadPhase)
	if err != nil {
		printError(err)
		return
	}
	voltage := orConfig(loadVoltage, cfg.Voltage)
	cos := orConfig(loadCosPhi, cfg.CosPhi)
	current, err := electrical.LoadCurrent(power, voltage, phase, cos)
	if err != nil {
		printError(err)
		return
	}

	printBanner(fmt.Sprintf("LOAD ESTIMATE - %s", strings.ToUpper(loadMethod)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Basis:\t%s\n", basis)
	fmt.Fprintf(w, "  Design power:\t%.2f kW\n", power/1000)
	fmt.Fprintf(w, "  Supply:\t%.0f V, %s-phase, cos φ = %.2f\n", voltage, phase, cos)
	fmt.Fprintf(w, "  Design current (In):\t%.1f A\n", current)
	w.Flush()
	fmt.Println()
}

// estimateLoad returns the design power (W) of the selected method and a description of its basis
func estimateLoad() (float64, string, error) {
	switch strings.ToLower(loadMethod) {
	case "velander":
		if loadPerUnit <= 0 || loadUnits < 1 {
			return 0, "", fmt.Errorf("velander needs --per-unit > 0 and --units >= 1")
		}
		p := electrical.VelanderPower(loadPerUnit, loadUnits)
		return p, fmt.Sprintf("%d × %.0f W, k1 = %.2f, k2 = %.2f", loadUnits, loadPerUnit, electrical.VelanderK1, electrical.VelanderK2), nil
	case "area":
		if loadArea <= 0 {
			return 0, "", fmt.Errorf("area needs --area > 0")
		}
		occ := electrical.Occupancy(strings.ToLower(loadOccupancy))
		w, err := electrical.AreaLoad(occ)
		if err != nil {
			return 0, "", err
		}
		p, err := electrical.AreaPower(loadArea, occ)
		return p, fmt.Sprintf("%.0f m² × %.0f W/m² (%s)", loadArea, w, occ), err
	case "diversity":
		if len(loadLoads) == 0 {
			return 0, "", fmt.Errorf("diversity needs --loads")
		}
		p, err := electrical.DiversityPower(loadLoads, loadFactor)
		return p, fmt.Sprintf("%d loads × factor %.2f", len(loadLoads), loadFactor), err
	}
	return 0, "", fmt.Errorf("unknown load method %q (velander, area, diversity)", loadMethod)
}
