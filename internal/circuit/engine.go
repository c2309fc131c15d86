package circuit

import (
	"fmt"
	"math"
	"slices"

	"github.com/alexiusacademia/gocable/internal/electrical"
	"github.com/alexiusacademia/gocable/internal/fuse"
	"github.com/alexiusacademia/gocable/internal/hd60364"
)

// Engine dimensions and verifies circuits against a reference dataset and device catalog.
// It holds no per-call state and is safe to share.
type Engine struct {
	Repo    *hd60364.Repository
	Catalog *fuse.Catalog
}

// NewEngine returns an engine on the process-wide tables and catalog
func NewEngine() *Engine {
	return &Engine{Repo: hd60364.Default(), Catalog: fuse.DefaultCatalog()}
}

// Feeder computes the supply cable of the installation
func (e *Engine) Feeder(c Circuit, net SupplyNetwork) (*Result, error) {
	if err := net.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}
	return e.compute(newResult(Feeder, c, net), nil)
}

// Branch computes a circuit fed from the end of an already computed feeder.
// The feeder result is read, never modified.
func (e *Engine) Branch(c Circuit, upstream *Result) (*Result, error) {
	if upstream == nil {
		return nil, fmt.Errorf("%s: %w", c.Name, ErrUpstreamNotReady)
	}
	if upstream.Role != Feeder {
		return nil, invalid("%s: upstream %q is not a feeder", c.Name, upstream.Name())
	}
	return e.compute(newResult(Branch, c, upstream.Network), upstream)
}

func newResult(role Role, c Circuit, net SupplyNetwork) *Result {
	c.Segments = slices.Clone(c.Segments)
	if c.SoilKj == 0 {
		c.SoilKj = 1
	}
	return &Result{Role: role, Circuit: c, Network: net, Length: c.Length()}
}

func (e *Engine) compute(r *Result, up *Result) (*Result, error) {
	c := r.Circuit
	if err := c.Validate(e.Repo); err != nil {
		return nil, err
	}

	e.traceInputs(r, up)

	factors := make([]Factors, len(c.Segments))
	r.Trace.Section("Correction factors")
	for i, s := range c.Segments {
		f, err := s.Resolve(e.Repo, c.SoilKj)
		if err != nil {
			return nil, fmt.Errorf("%s segment %d: %w", c.Name, i+1, err)
		}
		factors[i] = f
		r.Trace.Addf("Segment %d: method %d (ref %s, %s), T = %.1f °C, group %d ⇒ Kt = %.3f, Kj = %.3f, Kgrp = %.3f",
			i+1, s.Method, f.Method.Reference, f.Method.Environment, s.AmbientTemp, s.GroupSize, f.Kt, f.Kj, f.Kgrp)
		e.checkBundling(r, i+1, s, f)
	}
	r.Trace.Blank()

	var (
		size float64
		err  error
	)
	if c.AutoSize {
		size, err = e.selectSize(r, factors, up)
	} else {
		size, err = explicitSize(c, &r.Trace)
	}
	if err != nil {
		return nil, err
	}
	r.Size = size

	if err := e.finalizeSegments(r, factors); err != nil {
		return nil, err
	}
	if err := e.finalizeDrop(r, up); err != nil {
		return nil, err
	}
	if err := e.shortCircuit(r, up); err != nil {
		return nil, err
	}
	if err := e.protection(r); err != nil {
		return nil, err
	}
	if err := e.earthFault(r, up); err != nil {
		return nil, err
	}

	r.Trace.Section("Summary")
	r.Trace.Addf("S = %.1f mm², ΔU,total = %s, Ik,min = %s, t = %.3f s, thermal %s",
		r.Size, r.TotalDrop, r.IkMin, r.Device.Trip.Time, okText(r.Thermal.OK))
	if r.EarthFault != nil {
		r.Trace.Addf("Zs = %.4f Ω, Ia = %.1f A, RCD %s, earth fault %s",
			r.EarthFault.EffectiveZs, r.EarthFault.Ia, r.EarthFault.RCD.Sensitivity, okText(r.EarthFault.OK))
	}
	return r, nil
}

// warn records a warning on the result and in the trace
func (r *Result) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	r.Trace.Add("[WARNING] " + msg)
}

// checkBundling flags grouped air-laid segments whose factor shows bundled cables
// that would gain ampacity in a single layer
func (e *Engine) checkBundling(r *Result, n int, s Segment, f Factors) {
	if s.GroupSize < 2 || f.Method.Reference.Buried() {
		return
	}
	b := hd60364.CheckBundling(f.Kgrp, s.GroupSize)
	if b.Warning {
		r.warn("Segment %d: %d cables bundled (Kgrp = %.2f). A single layer gives Kgrp = %.2f, %.0f %% more ampacity.",
			n, s.GroupSize, f.Kgrp, b.SingleLayerKgrp, b.ImprovementPercent)
	}
}

// earthFault checks the earth-fault loop when the circuit carries earthing data.
// A branch without its own source Zs continues the loop of its feeder.
func (e *Engine) earthFault(r *Result, up *Result) error {
	c := r.Circuit
	if c.Earthing == nil {
		return nil
	}
	eg := c.Earthing

	sourceZs := eg.SourceZs
	if sourceZs == 0 && up != nil && up.EarthFault != nil {
		sourceZs = up.EarthFault.Zs
	}
	runs := make([]electrical.EarthRun, len(c.Segments))
	for i, s := range c.Segments {
		runs[i] = electrical.EarthRun{Length: s.Length, Size: r.Size, EarthSize: eg.EarthSize, CableType: eg.CableType}
	}

	ef, err := electrical.EarthFaultProtection(e.Repo, electrical.EarthFaultInput{
		System:       eg.System,
		SourceZs:     sourceZs,
		ElectrodeR:   eg.ElectrodeR,
		Voltage:      eg.Voltage,
		DeviceRating: r.Device.Rating,
		Material:     c.Material,
		Kind:         eg.Kind,
		Location:     eg.Location,
		Runs:         runs,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	r.EarthFault = &ef

	tr := &r.Trace
	tr.Section("Earth fault protection")
	tr.Addf("%s system, %s circuit, %s", eg.System, eg.Kind, eg.Location)
	tr.Addf("Zs = Zs,source + R1(70 °C) + R2 = %.4f + %.4f + %.4f = %.4f Ω", sourceZs, ef.PhaseR, ef.EarthR, ef.Zs)
	if eg.System == electrical.TT {
		tr.Addf("Zs,eff = Zs + Ra = %.4f + %.1f = %.4f Ω", ef.Zs, eg.ElectrodeR, ef.EffectiveZs)
	}
	tr.Addf("Ia = U0/Zs,eff = %.1f A, Ia,required = 5 × In = %.1f A", ef.Ia, ef.IaRequired)
	tr.Addf("Zs,max = %.4f Ω (%s), touch voltage = %.1f V", ef.ZsMax, okText(ef.ZsOK), ef.TouchVoltage)
	if ef.RCD.Required {
		tr.Addf("RCD %s required: %s", ef.RCD.Sensitivity, ef.RCD.Reason)
	} else {
		tr.Addf("RCD: %s (%s)", ef.RCD.Sensitivity, ef.RCD.Reason)
	}
	for _, w := range ef.Warnings {
		r.warn("%s", w)
	}
	tr.Addf("⇒ Earth fault protection %s.", okText(ef.OK))
	tr.Blank()
	return nil
}

func (e *Engine) traceInputs(r *Result, up *Result) {
	c := r.Circuit
	tr := &r.Trace
	tr.Section(fmt.Sprintf("Circuit %s (%s)", c.Name, r.Role))
	tr.Addf("U = %.1f V, %s-phase, %s, In = %.1f A, cos φ = %.2f", r.Network.Voltage, c.Phase, c.Material, c.Current, c.CosPhi)
	tr.Addf("ΔU,max = %.2f %%, automatic cross-section: %s, device: %s", c.MaxDropPercent, onOff(c.AutoSize), c.Device)
	if up != nil {
		tr.Addf("Fed from %s: S = %.1f mm², L = %.1f m", up.Name(), up.Size, up.Length)
	}
	for i, s := range c.Segments {
		tr.Addf("Segment %d: method %d, L = %.1f m, T = %.1f °C, %d loaded, group %d, spacing %.2f m",
			i+1, s.Method, s.Length, s.AmbientTemp, s.Loaded, s.GroupSize, s.Spacing)
	}
	tr.Addf("Total length L = %.1f m", r.Length)
	tr.Blank()
}

// finalizeSegments records ampacity and impedance of every segment at the chosen size
func (e *Engine) finalizeSegments(r *Result, factors []Factors) error {
	c := r.Circuit
	tr := &r.Trace
	tr.Section(fmt.Sprintf("Ampacity and impedance at S = %.1f mm²", r.Size))

	r.AmpacityOK = true
	r.Segments = make([]SegmentResult, len(c.Segments))
	for i, s := range c.Segments {
		f := factors[i]
		iz, ok := e.Repo.Ampacity(c.Material, f.Method.Reference, s.Loaded, r.Size)
		if !ok {
			return fmt.Errorf("%s segment %d: %w: no ampacity for %s, ref %s, %d loaded, S = %g mm²",
				c.Name, i+1, hd60364.ErrMissingTableData, c.Material, f.Method.Reference, s.Loaded, r.Size)
		}

		zMin, err := electrical.SegmentImpedance(e.Repo, c.Material, r.Size, s.Length, c.Phase, electrical.MinStudy)
		if err != nil {
			return fmt.Errorf("%s segment %d: %w", c.Name, i+1, err)
		}
		zMax, err := electrical.SegmentImpedance(e.Repo, c.Material, r.Size, s.Length, c.Phase, electrical.MaxStudy)
		if err != nil {
			return fmt.Errorf("%s segment %d: %w", c.Name, i+1, err)
		}

		sr := SegmentResult{
			Index:       i + 1,
			Segment:     s,
			Factors:     f,
			Size:        r.Size,
			IzTable:     iz,
			IzCorrected: iz * f.Product(),
			IzRequired:  c.Current / f.Product(),
			ZMin:        zMin,
			ZMax:        zMax,
		}
		r.Segments[i] = sr
		r.ZMin += zMin
		r.ZMax += zMax
		r.RequiredAmpacity = math.Max(r.RequiredAmpacity, sr.IzRequired)
		if sr.IzCorrected < c.Current {
			r.AmpacityOK = false
		}

		tr.Addf("Segment %d: Iz,table = %.1f A, Iz,corr = %.1f A, Iz,required = %.1f A (%s)",
			sr.Index, sr.IzTable, sr.IzCorrected, sr.IzRequired, okText(sr.IzCorrected >= c.Current))
		tr.Addf("  Z,min = %s, Z,max = %s", electrical.FormatImpedance(zMin), electrical.FormatImpedance(zMax))
	}
	tr.Addf("Cable Z,min = %s, Z,max = %s", electrical.FormatImpedance(r.ZMin), electrical.FormatImpedance(r.ZMax))
	tr.Blank()
	return nil
}

func (e *Engine) finalizeDrop(r *Result, up *Result) error {
	c := r.Circuit
	own, upstream, err := e.drops(c, r.Network.Voltage, r.Size, up)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	r.Drop = own
	r.UpstreamDrop = upstream
	r.TotalDrop = own.Add(upstream)
	r.DropOK = r.TotalDrop.Percent <= c.MaxDropPercent

	tr := &r.Trace
	tr.Section("Voltage drop")
	tr.Addf("Own cable: %s", own)
	if up != nil {
		tr.Addf("Branch current over %s: %s", up.Name(), upstream)
	}
	tr.Addf("ΔU,total = %s, limit %.2f %% (%s)", r.TotalDrop, c.MaxDropPercent, okText(r.DropOK))
	tr.Blank()
	return nil
}

// shortCircuit resolves I_min,supply and computes Ik,min and Ik,max at the end of the circuit
func (e *Engine) shortCircuit(r *Result, up *Result) error {
	c := r.Circuit
	u := r.Network.Voltage
	tr := &r.Trace
	tr.Section("Short-circuit currents")

	explicit := c.MinSupply
	if explicit == 0 && up == nil {
		explicit = r.Network.MinSupply
	}

	switch {
	case explicit > 0:
		r.MinSupply = explicit
		r.SourceCurrent = explicit / 5
		r.SourceNote = "I_min,supply/5"
		tr.Addf("I_min,supply = %.1f A (given)", explicit)
	case up == nil:
		r.MinSupply = 5 * c.Current
		r.SourceCurrent = c.Current
		r.SourceNote = "In,feeder"
		tr.Addf("I_min,supply = 5 × In,feeder = 5 × %.1f A = %.1f A", c.Current, r.MinSupply)
	default:
		r.MinSupply = 5 * up.SourceCurrent
		r.SourceCurrent = up.SourceCurrent
		r.SourceNote = up.SourceNote
		tr.Addf("I_min,supply = 5 × %s = 5 × %.1f A = %.1f A", up.SourceNote, up.SourceCurrent, r.MinSupply)
	}

	r.PathZMin, r.PathZMax = r.ZMin, r.ZMax
	if up != nil {
		r.PathZMin += up.PathZMin
		r.PathZMax += up.PathZMax
		tr.Addf("Path Z,min = %s (feeder) + %s (own) = %s",
			electrical.FormatImpedance(up.PathZMin), electrical.FormatImpedance(r.ZMin), electrical.FormatImpedance(r.PathZMin))
	}

	ikMin, err := electrical.MinShortCircuit(u, r.MinSupply, r.PathZMin)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", c.Name, ErrInvalidInput, err)
	}
	r.IkMin = ikMin
	tr.Addf("Z,sup,min = U/I_min,supply = %.1f/%.1f = %.4f Ω", u, r.MinSupply, real(ikMin.SourceZ))
	tr.Addf("Z,total,min = Z,sup,min + 2·Z,cable,min = %s", electrical.FormatImpedance(ikMin.TotalZ))
	tr.Addf("Ik,min = U/Z,total,min = %s", ikMin)

	ikMax, err := electrical.MaxShortCircuit(u, r.Network.SourceIk, r.Network.SourceCosPhi, r.PathZMax)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", c.Name, ErrInvalidInput, err)
	}
	r.IkMax = ikMax
	tr.Addf("Z,source = U/Ik,source·(cos φ − j·sin φ) = %s (Ik,source = %.1f A, cos φ = %.2f)",
		electrical.FormatImpedance(ikMax.SourceZ), r.Network.SourceIk, r.Network.SourceCosPhi)
	tr.Addf("Z,total,max = %s", electrical.FormatImpedance(ikMax.TotalZ))
	tr.Addf("Ik,max = U/Z,total,max = %s", ikMax)
	tr.Blank()
	return nil
}

// protection matches the device curve, finds the trip time for Ik,min and checks thermal withstand
func (e *Engine) protection(r *Result) error {
	c := r.Circuit
	tr := &r.Trace
	ik := r.IkMin.Magnitude()
	tr.Section("Protective device")

	family := c.Device
	if family == fuse.MCBAuto {
		f, err := fuse.SelectMCB(ik, c.Current)
		if err != nil {
			tr.Addf("[WARNING] %v", err)
			return fmt.Errorf("%s: %w", c.Name, err)
		}
		tr.Addf("Automatic MCB: Ik,min = %.1f A ⇒ %s", ik, e.Catalog.Label(f))
		family = f
	}

	curve, err := e.Catalog.Curve(family, c.Current)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	trip := curve.TripTime(ik)
	r.Device = DeviceResult{
		Family:        family,
		Label:         e.Catalog.Label(family),
		Rating:        curve.Rating,
		MinTripFactor: curve.MinTripFactor,
		Trip:          trip,
		BelowMinTrip:  ik < curve.MinTripFactor*c.Current,
	}

	tr.Addf("Device: %s, In,curve = %.0f A", r.Device.Label, curve.Rating)
	if r.Device.BelowMinTrip {
		tr.Addf("[WARNING] Ik,min = %.1f A is below %.0f × In = %.1f A, instantaneous trip is not guaranteed.",
			ik, curve.MinTripFactor, curve.MinTripFactor*c.Current)
	}
	for _, n := range trip.Notes {
		tr.Add("  " + n)
	}
	tr.Blank()

	k := c.K
	if k == 0 {
		mc, err := e.Repo.Constants(c.Material)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Name, err)
		}
		k = mc.K
	}
	sizes := make([]float64, len(r.Segments))
	for i, s := range r.Segments {
		sizes[i] = s.Size
	}
	r.Thermal = electrical.CheckThermal(k, sizes, ik, trip.Time)

	tr.Section("Thermal withstand")
	tr.Addf("k = %.0f A·√s/mm², Σ k²·S² = %.0f A²s", k, r.Thermal.Capacity)
	tr.Addf("Ik,min²·t = %.1f² × %.3f = %.0f A²s", ik, trip.Time, r.Thermal.LetThrough)
	tr.Addf("S,min = √(Ik²·t)/k = %.2f mm²", r.Thermal.MinSection)
	if r.Thermal.OK {
		tr.Add("⇒ Thermal withstand OK.")
	} else {
		tr.Add("⇒ Thermal withstand NOT OK.")
	}
	tr.Blank()
	return nil
}

func okText(ok bool) string {
	if ok {
		return "OK"
	}
	return "NOT OK"
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
