package project

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gocable/internal/config"
)

// File is the on-disk project description
type File struct {
	Name     string        `yaml:"name"`
	Network  NetworkSpec   `yaml:"network"`
	Feeder   CircuitSpec   `yaml:"feeder"`
	Branches []CircuitSpec `yaml:"branches,omitempty"`
}

// NetworkSpec describes the supply. Either SourceIk or Transformer sets the source level.
type NetworkSpec struct {
	Voltage      float64          `yaml:"voltage,omitempty"`
	MinSupply    float64          `yaml:"min_supply,omitempty"`
	SourceIk     float64          `yaml:"source_ik,omitempty"`
	SourceCosPhi *float64         `yaml:"source_cos_phi,omitempty"`
	Transformer  *TransformerSpec `yaml:"transformer,omitempty"`
}

// TransformerSpec is the nameplate of the supplying transformer
type TransformerSpec struct {
	RatingKVA  float64 `yaml:"rating_kva"`
	Voltage    float64 `yaml:"voltage,omitempty"`
	UkPercent  float64 `yaml:"uk_percent"`
	CopperLoss float64 `yaml:"copper_loss"`
}

// CircuitSpec describes one feeder or branch circuit
type CircuitSpec struct {
	Name      string        `yaml:"name"`
	Current   float64       `yaml:"current"`
	Phase     string        `yaml:"phase"`
	Material  string        `yaml:"material,omitempty"`
	CosPhi    float64       `yaml:"cos_phi,omitempty"`
	MaxDrop   float64       `yaml:"max_drop,omitempty"`
	AutoSize  *bool         `yaml:"auto_size,omitempty"`
	SoilKj    float64       `yaml:"soil_kj,omitempty"`
	Device    string        `yaml:"device,omitempty"`
	MinSupply float64       `yaml:"min_supply,omitempty"`
	K         float64       `yaml:"k,omitempty"`
	Earthing  *EarthingSpec `yaml:"earthing,omitempty"`
	Segments  []SegmentSpec `yaml:"segments"`
}

// EarthingSpec enables the earth-fault check of a circuit
type EarthingSpec struct {
	System     string  `yaml:"system"`
	SourceZs   float64 `yaml:"source_zs,omitempty"`
	ElectrodeR float64 `yaml:"electrode_r,omitempty"`
	Voltage    float64 `yaml:"voltage,omitempty"`
	CableType  string  `yaml:"cable_type,omitempty"`
	EarthSize  float64 `yaml:"earth_size,omitempty"`
	Kind       string  `yaml:"kind,omitempty"`
	Location   string  `yaml:"location,omitempty"`
}

// SegmentSpec describes one cable run
type SegmentSpec struct {
	Method      int      `yaml:"method"`
	Length      float64  `yaml:"length"`
	AmbientTemp *float64 `yaml:"ambient_temp,omitempty"`
	Loaded      int      `yaml:"loaded,omitempty"`
	Group       int      `yaml:"group,omitempty"`
	Spacing     float64  `yaml:"spacing,omitempty"`
	Size        float64  `yaml:"size,omitempty"`
}

// Load reads and validates a YAML project file
func Load(path string, cfg config.Config) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()
	return Parse(f, cfg)
}

// Parse decodes a YAML project and validates it
func Parse(r io.Reader, cfg config.Config) (*Project, error) {
	var pf File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return Build(pf, cfg)
}

// Encode writes a project file as YAML
func Encode(w io.Writer, pf File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()

	if err := enc.Encode(&pf); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}
