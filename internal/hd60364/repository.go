package hd60364

import (
	"fmt"
	"sort"
	"sync"
)

// Repository is an immutable set of reference tables.
// A Repository is safe for concurrent reads.
type Repository struct {
	methods     map[int]InstallationMethod
	ampacity    map[Material]ampacityTable
	temperature map[Environment][]tempFactor
	grouping    map[Reference][]groupFactor
	cables      map[Material][]CableData
	constants   map[Material]MaterialConstants
}

var (
	defaultOnce sync.Once
	defaultRepo *Repository
)

// Default returns the process-wide repository with the national tables
func Default() *Repository {
	defaultOnce.Do(func() {
		defaultRepo = New()
	})
	return defaultRepo
}

// New builds a fresh repository from the national tables
func New() *Repository {
	r := &Repository{
		methods: make(map[int]InstallationMethod, len(methodTable)),
		ampacity: map[Material]ampacityTable{
			Copper:    copperAmpacity,
			Aluminium: aluminiumAmpacity,
		},
		temperature: temperatureTable,
		grouping:    groupingTable,
		cables:      cableTable,
		constants:   materialConstants,
	}
	for _, m := range methodTable {
		r.methods[m.Number] = m
	}
	return r
}

// Method returns the installation method with the given number
func (r *Repository) Method(number int) (InstallationMethod, error) {
	m, ok := r.methods[number]
	if !ok {
		return InstallationMethod{}, fmt.Errorf("%w: %d", ErrUnknownMethod, number)
	}
	return m, nil
}

// Methods returns all installation methods ordered by number
func (r *Repository) Methods() []InstallationMethod {
	out := make([]InstallationMethod, 0, len(r.methods))
	for _, m := range r.methods {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// TemperatureFactor returns Kt for an environment and ambient temperature (°C).
// Values between tabulated temperatures are interpolated linearly; values
// outside the table are clamped to the nearest edge.
func (r *Repository) TemperatureFactor(env Environment, temp float64) (float64, error) {
	pts, ok := r.temperature[env]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidEnvironment, env)
	}
	return interpolateTemperature(pts, temp), nil
}

// GroupingFactor returns Kgrp for n cables grouped in a reference class.
// Unknown classes and group sizes below the table give 1.0.
func (r *Repository) GroupingFactor(ref Reference, n int) float64 {
	pts, ok := r.grouping[ref]
	if !ok {
		return 1.0
	}
	return floorGrouping(pts, n)
}

// GroupingFactorSpaced is GroupingFactor with the buried spacing rule:
// D1/D2 cables laid more than SpacedBuriedLimit apart are not derated.
func (r *Repository) GroupingFactorSpaced(ref Reference, n int, spacing float64) float64 {
	if ref.Buried() && spacing > SpacedBuriedLimit {
		return 1.0
	}
	return r.GroupingFactor(ref, n)
}

// Ampacity returns the tabulated current (A) for a material, reference class,
// loaded conductor count and cross-section. An absent size falls back to the
// largest tabulated size below it; ok is false when nothing applies.
func (r *Repository) Ampacity(mat Material, ref Reference, loaded int, size float64) (float64, bool) {
	t, ok := r.ampacity[mat]
	if !ok {
		return 0, false
	}
	e, ok := t.lookup(ref, loaded, size)
	if !ok {
		return 0, false
	}
	return e.Amps, true
}

// AmpacityColumn returns the tabulated (size, current) pairs for a lookup key
func (r *Repository) AmpacityColumn(mat Material, ref Reference, loaded int) ([][2]float64, bool) {
	col, ok := r.ampacity[mat][ref][loaded]
	if !ok {
		return nil, false
	}
	out := make([][2]float64, len(col))
	for i, e := range col {
		out[i] = [2]float64{e.Size, e.Amps}
	}
	return out, true
}

// Cable returns the electrical data of a cross-section
func (r *Repository) Cable(mat Material, size float64) (CableData, error) {
	for _, c := range r.cables[mat] {
		if c.Size == size {
			return c, nil
		}
	}
	return CableData{}, fmt.Errorf("%w: %s %g mm²", ErrMissingCableData, mat, size)
}

// Reactance returns the reactance (Ω/km) for a cable with the given conductor count.
// A material with a single reactance table uses it for both counts.
func (r *Repository) Reactance(mat Material, size float64, conductors int) (float64, error) {
	c, err := r.Cable(mat, size)
	if err != nil {
		return 0, err
	}

	x3, x4 := c.Reactance3, c.Reactance4
	switch {
	case conductors == 3 && x3 > 0:
		return x3, nil
	case conductors == 4 && x4 > 0:
		return x4, nil
	case x4 > 0:
		return x4, nil
	case x3 > 0:
		return x3, nil
	}
	return 0, fmt.Errorf("%w: no reactance for %s %g mm²", ErrMissingCableData, mat, size)
}

// Constants returns the voltage-drop and thermal constants of a material
func (r *Repository) Constants(mat Material) (MaterialConstants, error) {
	c, ok := r.constants[mat]
	if !ok {
		return MaterialConstants{}, fmt.Errorf("%w: constants for %q", ErrMissingCableData, mat)
	}
	return c, nil
}

// Sizes returns a copy of the standard cross-section series
func (r *Repository) Sizes() []float64 {
	out := make([]float64, len(StandardSizes))
	copy(out, StandardSizes)
	return out
}
