package project

import (
	"fmt"

	"github.com/alexiusacademia/gocable/internal/circuit"
	"github.com/alexiusacademia/gocable/internal/config"
	"github.com/alexiusacademia/gocable/internal/electrical"
	"github.com/alexiusacademia/gocable/internal/fuse"
	"github.com/alexiusacademia/gocable/internal/hd60364"
)

// Build converts a project file into validated domain values, filling
// omitted fields from cfg. Every rejection wraps circuit.ErrInvalidInput.
func Build(pf File, cfg config.Config) (*Project, error) {
	p := &Project{Name: pf.Name}
	if p.Name == "" {
		p.Name = "project"
	}

	net, tr, err := buildNetwork(pf.Network, cfg)
	if err != nil {
		return nil, err
	}
	p.Network, p.Transformer = net, tr

	repo := hd60364.Default()
	seen := map[string]bool{}
	add := func(spec CircuitSpec, role string) (circuit.Circuit, error) {
		c, err := buildCircuit(spec, cfg)
		if err != nil {
			return c, err
		}
		if seen[c.Name] {
			return c, invalidf("duplicate circuit name %q", c.Name)
		}
		seen[c.Name] = true
		if err := c.Validate(repo); err != nil {
			return c, fmt.Errorf("%s: %w", role, err)
		}
		return c, nil
	}

	if p.Feeder, err = add(pf.Feeder, "feeder"); err != nil {
		return nil, err
	}
	for _, b := range pf.Branches {
		c, err := add(b, "branch")
		if err != nil {
			return nil, err
		}
		p.Branches = append(p.Branches, c)
	}
	return p, nil
}

func buildNetwork(spec NetworkSpec, cfg config.Config) (circuit.SupplyNetwork, *electrical.Transformer, error) {
	net := circuit.SupplyNetwork{
		Voltage:      orDefault(spec.Voltage, cfg.Voltage),
		MinSupply:    spec.MinSupply,
		SourceIk:     orDefault(spec.SourceIk, cfg.SourceIk),
		SourceCosPhi: cfg.SourceCosPhi,
	}
	if spec.SourceCosPhi != nil {
		net.SourceCosPhi = *spec.SourceCosPhi
	}

	var tr *electrical.Transformer
	if t := spec.Transformer; t != nil {
		if spec.SourceIk != 0 {
			return net, nil, invalidf("network: give either source_ik or transformer, not both")
		}
		tr = &electrical.Transformer{
			Rating:     t.RatingKVA,
			Voltage:    orDefault(t.Voltage, net.Voltage),
			UkPercent:  t.UkPercent,
			CopperLoss: t.CopperLoss,
		}
		src, err := tr.Source()
		if err != nil {
			return net, nil, invalidf("network: %v", err)
		}
		net.SourceIk = src.NetworkIk(net.Voltage)
		net.SourceCosPhi = src.CosPhi
	}

	if err := net.Validate(); err != nil {
		return net, nil, fmt.Errorf("network: %w", err)
	}
	return net, tr, nil
}

func buildCircuit(spec CircuitSpec, cfg config.Config) (circuit.Circuit, error) {
	c := circuit.Circuit{
		Name:           spec.Name,
		Current:        spec.Current,
		CosPhi:         orDefault(spec.CosPhi, cfg.CosPhi),
		MaxDropPercent: orDefault(spec.MaxDrop, cfg.MaxDropPercent),
		AutoSize:       true,
		SoilKj:         orDefault(spec.SoilKj, cfg.SoilKj),
		MinSupply:      spec.MinSupply,
		K:              spec.K,
	}
	if c.Name == "" {
		return c, invalidf("circuit without a name")
	}
	if spec.AutoSize != nil {
		c.AutoSize = *spec.AutoSize
	}

	var err error
	if c.Phase, err = hd60364.ParsePhase(spec.Phase); err != nil {
		return c, invalidf("%s: %v", c.Name, err)
	}
	material := spec.Material
	if material == "" {
		material = string(hd60364.Copper)
	}
	if c.Material, err = hd60364.ParseMaterial(material); err != nil {
		return c, invalidf("%s: %v", c.Name, err)
	}
	device := spec.Device
	if device == "" {
		device = cfg.Device
	}
	if c.Device, err = fuse.ParseFamily(device); err != nil {
		return c, invalidf("%s: %v", c.Name, err)
	}

	if spec.Earthing != nil {
		if c.Earthing, err = buildEarthing(*spec.Earthing); err != nil {
			return c, invalidf("%s: %v", c.Name, err)
		}
	}

	loaded := 3
	if c.Phase == hd60364.SinglePhase {
		loaded = 2
	}
	for _, s := range spec.Segments {
		seg := circuit.Segment{
			Method:      s.Method,
			Length:      s.Length,
			AmbientTemp: cfg.AmbientTemp,
			Loaded:      s.Loaded,
			GroupSize:   s.Group,
			Spacing:     s.Spacing,
			Size:        s.Size,
		}
		if s.AmbientTemp != nil {
			seg.AmbientTemp = *s.AmbientTemp
		}
		if seg.Loaded == 0 {
			seg.Loaded = loaded
		}
		if seg.GroupSize == 0 {
			seg.GroupSize = 1
		}
		c.Segments = append(c.Segments, seg)
	}
	return c, nil
}

func buildEarthing(spec EarthingSpec) (*circuit.Earthing, error) {
	e := &circuit.Earthing{
		SourceZs:   spec.SourceZs,
		ElectrodeR: spec.ElectrodeR,
		Voltage:    spec.Voltage,
		EarthSize:  spec.EarthSize,
	}
	var err error
	if e.System, err = electrical.ParseEarthingSystem(spec.System); err != nil {
		return nil, err
	}
	if e.CableType, err = electrical.ParseCableType(spec.CableType); err != nil {
		return nil, err
	}
	if e.Kind, err = electrical.ParseCircuitKind(spec.Kind); err != nil {
		return nil, err
	}
	if e.Location, err = electrical.ParseLocation(spec.Location); err != nil {
		return nil, err
	}
	return e, nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", circuit.ErrInvalidInput, fmt.Sprintf(format, args...))
}
