package circuit

import (
	"fmt"

	"github.com/alexiusacademia/gocable/internal/electrical"
	"github.com/alexiusacademia/gocable/internal/hd60364"
)

// verdict is the outcome of trying one candidate cross-section
type verdict struct {
	ok     bool
	reason string
}

// search tries candidates in ascending order and stops at the first that passes.
// It returns the selected size, or ok == false with the last size and its reason.
func search(candidates []float64, try func(size float64) verdict) (size float64, reason string, ok bool) {
	for _, s := range candidates {
		v := try(s)
		if v.ok {
			return s, "", true
		}
		size, reason = s, v.reason
	}
	return size, reason, false
}

// selectSize runs the ampacity and voltage drop search over the candidate list
func (e *Engine) selectSize(r *Result, factors []Factors, up *Result) (float64, error) {
	c := r.Circuit
	tr := &r.Trace
	candidates := Candidates(e.Repo, r.Role, c.Material, c.Phase)

	tr.Section("Automatic cross-section (Iz + ΔU,total)")
	tr.Addf("Candidate cross-sections: %s mm²", joinSizes(candidates))
	tr.Blank()

	size, reason, ok := search(candidates, func(s float64) verdict {
		v := e.tryCandidate(c, r.Network.Voltage, factors, s, up, tr)
		if v.ok {
			tr.Addf("⇒ S = %.1f mm² is OK for all segments.", s)
		} else {
			tr.Addf("⇒ S = %.1f mm² is NOT OK, trying the next size.", s)
			tr.Blank()
		}
		return v
	})
	if !ok {
		tr.Add("No candidate cross-section satisfies both Iz and ΔU.")
		return 0, &SelectionError{Circuit: c.Name, LastSize: size, Reason: reason, Trace: r.Trace}
	}

	tr.Addf("Selected cross-section for %s: %.1f mm²", c.Name, size)
	tr.Blank()
	return size, nil
}

// tryCandidate checks ampacity of every segment, then the total voltage drop
func (e *Engine) tryCandidate(c Circuit, voltage float64, factors []Factors, size float64, up *Result, tr *Trace) verdict {
	tr.Addf("Trying cross-section S = %.1f mm²:", size)

	for i, s := range c.Segments {
		f := factors[i]
		ref := f.Method.Reference
		iz, ok := e.Repo.Ampacity(c.Material, ref, s.Loaded, size)
		if !ok {
			tr.Addf("  [WARNING] No Iz data for %s, ref %s, %d loaded, S = %.1f mm².", c.Material, ref, s.Loaded, size)
			return verdict{reason: fmt.Sprintf("no ampacity data for segment %d (ref %s, %d loaded)", i+1, ref, s.Loaded)}
		}

		izCorr := iz * f.Product()
		required := c.Current / f.Product()
		tr.Addf("  Segment %d: Iz,table = %.1f A, Kt = %.3f, Kj = %.3f, Kgrp = %.3f ⇒ Iz,corr = %.1f A, Iz,required = %.1f A",
			i+1, iz, f.Kt, f.Kj, f.Kgrp, izCorr, required)
		if izCorr < c.Current {
			tr.Add("    ⇒ Overload protection NOT OK in this segment.")
			return verdict{reason: fmt.Sprintf("segment %d: Iz,corr %.1f A < In %.1f A", i+1, izCorr, c.Current)}
		}
	}

	own, upstream, err := e.drops(c, voltage, size, up)
	if err != nil {
		tr.Addf("  [WARNING] %v", err)
		return verdict{reason: err.Error()}
	}
	total := own.Add(upstream)
	if up != nil {
		tr.Addf("  ΔU for S = %.1f mm²: %s + upstream %s = %s", size, own, upstream, total)
	} else {
		tr.Addf("  ΔU for S = %.1f mm²: %s", size, total)
	}

	if total.Percent > c.MaxDropPercent {
		tr.Addf("    ⇒ Voltage drop (%.2f %%) exceeds the limit of %.2f %%.", total.Percent, c.MaxDropPercent)
		return verdict{reason: fmt.Sprintf("voltage drop %.2f %% > %.2f %%", total.Percent, c.MaxDropPercent)}
	}
	tr.Addf("    ⇒ Voltage drop is within the limit of %.2f %%.", c.MaxDropPercent)
	return verdict{ok: true}
}

// drops returns the circuit's own drop and, for a branch, the drop of the
// branch current over the feeder cable
func (e *Engine) drops(c Circuit, voltage, size float64, up *Result) (own, upstream electrical.Drop, err error) {
	own, err = electrical.VoltageDrop(e.Repo, electrical.DropInput{
		Voltage:  voltage,
		Current:  c.Current,
		Material: c.Material,
		Size:     size,
		Length:   c.Length(),
		Phase:    c.Phase,
		CosPhi:   c.CosPhi,
	})
	if err != nil || up == nil {
		return own, upstream, err
	}

	upstream, err = electrical.VoltageDrop(e.Repo, electrical.DropInput{
		Voltage:  voltage,
		Current:  c.Current,
		Material: up.Circuit.Material,
		Size:     up.Size,
		Length:   up.Length,
		Phase:    c.Phase,
		CosPhi:   c.CosPhi,
	})
	return own, upstream, err
}

// explicitSize returns the shared cross-section of a circuit that is not auto-sized
func explicitSize(c Circuit, tr *Trace) (float64, error) {
	size := c.Segments[0].Size
	for i, s := range c.Segments[1:] {
		if s.Size != size {
			return 0, invalid("%s: with automatic sizing off all segments must share one cross-section (segment %d has %g mm², segment 1 has %g mm²)",
				c.Name, i+2, s.Size, size)
		}
	}

	tr.Add("Automatic cross-section is OFF.")
	if c.Material == hd60364.Aluminium && size < MinAluminiumSize {
		tr.Addf("  Aluminium below %.0f mm² is not used, raising %.1f mm² to %.1f mm².", MinAluminiumSize, size, MinAluminiumSize)
		size = MinAluminiumSize
	}
	tr.Addf("  Common cross-section: S = %.1f mm²", size)
	tr.Blank()
	return size, nil
}

func joinSizes(sizes []float64) string {
	out := ""
	for i, s := range sizes {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%g", s)
	}
	return out
}
