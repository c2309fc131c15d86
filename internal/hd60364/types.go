package hd60364

import (
	"fmt"
	"strings"
)

// Material is the conductor material of a cable
type Material string

const (
	Copper    Material = "Cu"
	Aluminium Material = "Al"
)

// Phase is the phase configuration of a circuit
type Phase string

const (
	SinglePhase Phase = "single"
	ThreePhase  Phase = "three"
)

// Environment is the surrounding medium of an installation method
type Environment string

const (
	Air    Environment = "air"
	Buried Environment = "buried"
)

// Reference is a reference installation class (A1, A2, B1, B2, C, D1, D2, ...)
type Reference string

const (
	RefA1 Reference = "A1"
	RefA2 Reference = "A2"
	RefB1 Reference = "B1"
	RefB2 Reference = "B2"
	RefC  Reference = "C"
	RefD1 Reference = "D1"
	RefD2 Reference = "D2"
)

// Buried reports whether the reference class is an in-ground class
func (r Reference) Buried() bool {
	return r == RefD1 || r == RefD2
}

// InstallationMethod is one numbered entry of the installation method catalog
type InstallationMethod struct {
	Number      int
	Reference   Reference
	Environment Environment
	Kj          float64 // fixed soil factor, 1.0 means "not fixed"
	Description string
	Conditions  string
}

// SoilFactor returns Kj for a segment laid with this method.
// A fixed method value wins; otherwise buried methods use the field value and air methods 1.0.
func (m InstallationMethod) SoilFactor(field float64) float64 {
	if m.Kj != 1.0 {
		return m.Kj
	}
	if m.Environment == Buried {
		return field
	}
	return 1.0
}

// ParseMaterial converts a material tag ("Cu", "Al") into a Material
func ParseMaterial(s string) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cu", "copper":
		return Copper, nil
	case "al", "aluminium", "aluminum":
		return Aluminium, nil
	}
	return "", fmt.Errorf("%w: material %q", ErrUnknownTag, s)
}

// ParsePhase converts a phase tag ("single", "three", "1", "3") into a Phase
func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "1", "1-phase", "single-phase":
		return SinglePhase, nil
	case "three", "3", "3-phase", "three-phase":
		return ThreePhase, nil
	}
	return "", fmt.Errorf("%w: phase %q", ErrUnknownTag, s)
}

// ParseEnvironment converts an environment tag ("air", "buried") into an Environment
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "air":
		return Air, nil
	case "buried", "ground", "soil":
		return Buried, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidEnvironment, s)
}
