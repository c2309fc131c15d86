package circuit

import (
	"errors"
	"math"
	"slices"

	"github.com/alexiusacademia/gocable/internal/electrical"
	"github.com/alexiusacademia/gocable/internal/fuse"
	"github.com/alexiusacademia/gocable/internal/hd60364"
)

// Validate checks the circuit against the reference tables
func (c Circuit) Validate(repo *hd60364.Repository) error {
	if !finite(c.Current, c.CosPhi, c.MaxDropPercent, c.SoilKj, c.MinSupply, c.K) {
		return invalid("%s: circuit values must be finite numbers", c.Name)
	}
	if c.Current <= 0 {
		return invalid("%s: design current must be positive, got %g A", c.Name, c.Current)
	}
	if c.Phase != hd60364.SinglePhase && c.Phase != hd60364.ThreePhase {
		return invalid("%s: unknown phase %q", c.Name, c.Phase)
	}
	if c.Material != hd60364.Copper && c.Material != hd60364.Aluminium {
		return invalid("%s: unknown material %q", c.Name, c.Material)
	}
	if c.CosPhi <= 0 || c.CosPhi > 1 {
		return invalid("%s: power factor must be in (0, 1], got %g", c.Name, c.CosPhi)
	}
	if c.MaxDropPercent <= 0 {
		return invalid("%s: voltage drop limit must be positive, got %g %%", c.Name, c.MaxDropPercent)
	}
	if c.SoilKj < 0 || c.MinSupply < 0 || c.K < 0 {
		return invalid("%s: soil factor, supply current and k must not be negative", c.Name)
	}
	if c.Device == "" {
		return invalid("%s: no protective device family", c.Name)
	}
	if c.Device != fuse.MCBAuto {
		if _, err := fuse.ParseFamily(string(c.Device)); err != nil {
			return invalid("%s: %v", c.Name, err)
		}
	}
	if len(c.Segments) == 0 {
		return invalid("%s: at least one segment is required", c.Name)
	}

	for i, s := range c.Segments {
		n := i + 1
		if !finite(s.Length, s.AmbientTemp, s.Spacing, s.Size) {
			return invalid("%s segment %d: values must be finite numbers", c.Name, n)
		}
		if s.Length <= 0 {
			return invalid("%s segment %d: length must be positive, got %g m", c.Name, n, s.Length)
		}
		if s.Loaded < 1 || s.Loaded > 4 {
			return invalid("%s segment %d: loaded conductors must be 1-4, got %d", c.Name, n, s.Loaded)
		}
		if s.GroupSize < 1 {
			return invalid("%s segment %d: group size must be at least 1, got %d", c.Name, n, s.GroupSize)
		}
		if s.Spacing < 0 {
			return invalid("%s segment %d: spacing must not be negative", c.Name, n)
		}
		if _, err := repo.Method(s.Method); err != nil {
			if errors.Is(err, hd60364.ErrUnknownMethod) {
				return invalid("%s segment %d: %v", c.Name, n, err)
			}
			return err
		}
		if !c.AutoSize && !slices.Contains(repo.Sizes(), s.Size) {
			return invalid("%s segment %d: %g mm² is not a standard cross-section", c.Name, n, s.Size)
		}
	}
	if c.Earthing != nil {
		return c.Earthing.validate(c.Name)
	}
	return nil
}

func (e Earthing) validate(name string) error {
	if !finite(e.SourceZs, e.ElectrodeR, e.Voltage, e.EarthSize) {
		return invalid("%s: earthing values must be finite numbers", name)
	}
	if e.System != electrical.TN && e.System != electrical.TT {
		return invalid("%s: unknown earthing system %q", name, e.System)
	}
	if e.SourceZs < 0 || e.ElectrodeR < 0 || e.Voltage < 0 || e.EarthSize < 0 {
		return invalid("%s: earthing values must not be negative", name)
	}
	if e.System == electrical.TT && e.ElectrodeR == 0 {
		return invalid("%s: TT earthing needs the electrode resistance", name)
	}
	return nil
}

// Validate checks the supply parameters
func (n SupplyNetwork) Validate() error {
	if !finite(n.Voltage, n.MinSupply, n.SourceIk, n.SourceCosPhi) {
		return invalid("supply values must be finite numbers")
	}
	if n.Voltage <= 0 {
		return invalid("nominal voltage must be positive, got %g V", n.Voltage)
	}
	if n.MinSupply < 0 {
		return invalid("minimum supply current must not be negative, got %g A", n.MinSupply)
	}
	if n.SourceIk <= 0 {
		return invalid("source short-circuit current must be positive, got %g A", n.SourceIk)
	}
	if n.SourceCosPhi < 0 || n.SourceCosPhi > 1 {
		return invalid("source power factor must be in [0, 1], got %g", n.SourceCosPhi)
	}
	return nil
}

// finite reports whether no value is NaN or infinite
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
