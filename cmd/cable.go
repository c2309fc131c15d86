package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gocable/internal/circuit"
	"github.com/alexiusacademia/gocable/internal/electrical"
	"github.com/alexiusacademia/gocable/internal/fuse"
	"github.com/alexiusacademia/gocable/internal/hd60364"
)

var cableCmd = &cobra.Command{
	Use:   "cable",
	Short: "Single feeder cable design and verification",
	Long: `Size or verify a single feeder cable supplied directly from the source.

Subcommands:
  design  - Select the smallest cross-section meeting ampacity and voltage drop
  check   - Verify a given cross-section

A circuit has one segment given by --method/--length/--temp, or several
given by repeated --segment flags (method:length[:temp[:loaded[:group[:spacing]]]]).`,
}

var (
	// Circuit inputs
	cableName      string
	cableCurrent   float64
	cablePhase     string
	cableMaterial  string
	cableCosPhi    float64
	cableMaxDrop   float64
	cableDevice    string
	cableSoilKj    float64
	cableK         float64
	cableMinSupply float64

	// Single segment
	cableMethod  int
	cableLength  float64
	cableTemp    float64
	cableLoaded  int
	cableGroup   int
	cableSpacing float64
	cableSegment []string

	// Earth fault
	cableEarthing  string
	cableSourceZs  float64
	cableRa        float64
	cableKind      string
	cableLocation  string
	cableCableType string
	cableEarthSize float64

	// Supply
	cableVoltage  float64
	cableSourceIk float64
	cableSourceCo float64

	// Output options
	cableShowTrace bool
	cableShowCurve bool
	cableExport    string
)

func init() {
	rootCmd.AddCommand(cableCmd)
}

// addCircuitFlags registers the circuit flags on a cable subcommand
func addCircuitFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVar(&cableName, "name", "F1", "Circuit name")
	f.Float64VarP(&cableCurrent, "current", "i", 0, "Design current In (A) [required]")
	f.StringVarP(&cablePhase, "phase", "p", "three", "Phase: single or three")
	f.StringVar(&cableMaterial, "material", "Cu", "Conductor material: Cu or Al")
	f.Float64Var(&cableCosPhi, "cos", 0, "Load power factor (default from config)")
	f.Float64Var(&cableMaxDrop, "max-drop", 0, "Voltage drop limit (%) (default from config)")
	f.StringVarP(&cableDevice, "device", "d", "", "Device: diazed, neozed, nh, mcb-b, mcb-c, mcb-d, mcb-auto (default from config)")
	f.Float64Var(&cableSoilKj, "soil-kj", 0, "Field soil factor Kj for buried methods (default from config)")
	f.Float64Var(&cableK, "k", 0, "Thermal constant k (A·√s/mm²), 0 for the material value")
	f.Float64Var(&cableMinSupply, "min-supply", 0, "Minimum supply short-circuit current I_min,supply (A), 0 for 5 × In")

	f.IntVarP(&cableMethod, "method", "m", 0, "Installation method number")
	f.Float64VarP(&cableLength, "length", "l", 0, "Cable length (m)")
	f.Float64VarP(&cableTemp, "temp", "t", 0, "Ambient temperature (°C) (default from config)")
	f.IntVar(&cableLoaded, "loaded", 0, "Loaded conductors, 0 for 2 (single) or 3 (three-phase)")
	f.IntVar(&cableGroup, "group", 1, "Number of grouped circuits")
	f.Float64Var(&cableSpacing, "spacing", 0, "Spacing of buried cables (m)")
	f.StringArrayVar(&cableSegment, "segment", nil, "Segment as method:length[:temp[:loaded[:group[:spacing]]]], repeatable")

	f.Float64VarP(&cableVoltage, "voltage", "u", 0, "Nominal voltage (V) (default from config)")
	f.Float64Var(&cableSourceIk, "source-ik", 0, "Source short-circuit current (A) (default from config)")
	f.Float64Var(&cableSourceCo, "source-cos", -1, "Source power factor (default from config)")

	f.StringVar(&cableEarthing, "earthing", "", "Earthing system for the earth-fault check: TN or TT (empty to skip)")
	f.Float64Var(&cableSourceZs, "source-zs", 0, "Earth-fault loop impedance at the origin (Ω)")
	f.Float64Var(&cableRa, "ra", 0, "TT earth electrode resistance (Ω)")
	f.StringVar(&cableKind, "kind", "", "Circuit kind: socket, fixed-equipment, distribution, lighting")
	f.StringVar(&cableLocation, "location", "", "Location: indoor, bathroom, outdoor")
	f.StringVar(&cableCableType, "cable-type", "", "Cable type: single-core, multi-core, armoured")
	f.Float64Var(&cableEarthSize, "earth-size", 0, "Protective conductor size (mm²), 0 for the minimum")

	f.BoolVar(&cableShowTrace, "trace", false, "Print the calculation trace")
	f.BoolVar(&cableShowCurve, "curve", false, "Show the device time-current curve in the terminal")
	f.StringVarP(&cableExport, "output", "o", "", "Export the device curve to file (png, svg, pdf)")

	c.MarkFlagRequired("current")
}

// circuitFromFlags builds the circuit and supply from the flags, filling gaps from the config
func circuitFromFlags(c *cobra.Command, size float64) (circuit.Circuit, circuit.SupplyNetwork, error) {
	ckt := circuit.Circuit{
		Name:           cableName,
		Current:        cableCurrent,
		CosPhi:         orConfig(cableCosPhi, cfg.CosPhi),
		MaxDropPercent: orConfig(cableMaxDrop, cfg.MaxDropPercent),
		AutoSize:       size == 0,
		SoilKj:         orConfig(cableSoilKj, cfg.SoilKj),
		MinSupply:      cableMinSupply,
		K:              cableK,
	}
	net := circuit.SupplyNetwork{
		Voltage:      orConfig(cableVoltage, cfg.Voltage),
		SourceIk:     orConfig(cableSourceIk, cfg.SourceIk),
		SourceCosPhi: cfg.SourceCosPhi,
	}
	if cableSourceCo >= 0 {
		net.SourceCosPhi = cableSourceCo
	}

	var err error
	if ckt.Phase, err = hd60364.ParsePhase(cablePhase); err != nil {
		return ckt, net, err
	}
	if ckt.Material, err = hd60364.ParseMaterial(cableMaterial); err != nil {
		return ckt, net, err
	}
	device := cableDevice
	if device == "" {
		device = cfg.Device
	}
	if ckt.Device, err = fuse.ParseFamily(device); err != nil {
		return ckt, net, err
	}

	if cableEarthing != "" {
		if ckt.Earthing, err = earthingFromFlags(); err != nil {
			return ckt, net, err
		}
	}

	temp := cfg.AmbientTemp
	if c.Flags().Changed("temp") {
		temp = cableTemp
	}
	specs := cableSegment
	if len(specs) == 0 {
		if cableMethod == 0 || cableLength == 0 {
			return ckt, net, fmt.Errorf("give --method and --length, or one or more --segment")
		}
		specs = []string{fmt.Sprintf("%d:%g:%g:%d:%d:%g", cableMethod, cableLength, temp, cableLoaded, cableGroup, cableSpacing)}
	}
	for _, spec := range specs {
		s, err := parseSegment(spec, temp)
		if err != nil {
			return ckt, net, err
		}
		if s.Loaded == 0 {
			s.Loaded = 3
			if ckt.Phase == hd60364.SinglePhase {
				s.Loaded = 2
			}
		}
		s.Size = size
		ckt.Segments = append(ckt.Segments, s)
	}
	return ckt, net, nil
}

// parseSegment reads method:length[:temp[:loaded[:group[:spacing]]]].
// Method, loaded and group are whole numbers.
func parseSegment(spec string, temp float64) (circuit.Segment, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 6 {
		return circuit.Segment{}, fmt.Errorf("segment %q: expected method:length[:temp[:loaded[:group[:spacing]]]]", spec)
	}

	seg := circuit.Segment{AmbientTemp: temp, GroupSize: 1}
	ints := map[int]*int{0: &seg.Method, 3: &seg.Loaded, 4: &seg.GroupSize}
	floats := map[int]*float64{1: &seg.Length, 2: &seg.AmbientTemp, 5: &seg.Spacing}
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if dst, ok := ints[i]; ok {
			v, err := strconv.Atoi(p)
			if err != nil {
				return circuit.Segment{}, fmt.Errorf("segment %q: field %d must be a whole number: %w", spec, i+1, err)
			}
			*dst = v
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return circuit.Segment{}, fmt.Errorf("segment %q: %w", spec, err)
		}
		*floats[i] = v
	}
	return seg, nil
}

func earthingFromFlags() (*circuit.Earthing, error) {
	e := &circuit.Earthing{SourceZs: cableSourceZs, ElectrodeR: cableRa, EarthSize: cableEarthSize}
	var err error
	if e.System, err = electrical.ParseEarthingSystem(cableEarthing); err != nil {
		return nil, err
	}
	if e.Kind, err = electrical.ParseCircuitKind(cableKind); err != nil {
		return nil, err
	}
	if e.Location, err = electrical.ParseLocation(cableLocation); err != nil {
		return nil, err
	}
	if e.CableType, err = electrical.ParseCableType(cableCableType); err != nil {
		return nil, err
	}
	return e, nil
}

func orConfig(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
