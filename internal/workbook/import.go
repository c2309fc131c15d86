// Package workbook reads projects from and writes results to XLSX files.
package workbook

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gocable/internal/project"
)

// Sheet names of a project workbook
const (
	NetworkSheet  = "Network"
	CircuitsSheet = "Circuits"
)

// CircuitColumns is the header row of the circuits sheet. Each row is one
// segment; rows repeating a circuit name add segments to that circuit.
var CircuitColumns = []string{
	"role", "name", "current", "phase", "material", "cos_phi", "max_drop", "auto_size",
	"device", "min_supply", "k", "soil_kj",
	"method", "length", "ambient_temp", "loaded", "group", "spacing", "size",
}

// NetworkKeys are the key column entries of the network sheet
var NetworkKeys = []string{
	"name", "voltage", "min_supply", "source_ik", "source_cos_phi",
	"transformer_kva", "transformer_uk", "transformer_pcu",
}

// ReadFile opens an XLSX project workbook
func ReadFile(path string) (project.File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return project.File{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return read(f)
}

// Read decodes an XLSX project workbook from r
func Read(r io.Reader) (project.File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return project.File{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return read(f)
}

func read(f *excelize.File) (project.File, error) {
	var pf project.File

	if idx, _ := f.GetSheetIndex(NetworkSheet); idx >= 0 {
		rows, err := f.GetRows(NetworkSheet)
		if err != nil {
			return pf, err
		}
		if err := readNetwork(rows, &pf); err != nil {
			return pf, err
		}
	}

	sheet := CircuitsSheet
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return pf, err
	}
	if len(rows) < 2 {
		return pf, fmt.Errorf("sheet %q has no circuit rows", sheet)
	}
	if err := readCircuits(rows, &pf); err != nil {
		return pf, err
	}
	return pf, nil
}

func readNetwork(rows [][]string, pf *project.File) error {
	var tr project.TransformerSpec
	for i, row := range rows {
		if len(row) < 2 || strings.TrimSpace(row[1]) == "" {
			continue
		}
		key, val := strings.ToLower(strings.TrimSpace(row[0])), strings.TrimSpace(row[1])
		if key == "name" {
			pf.Name = val
			continue
		}

		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("%s row %d: %s: %w", NetworkSheet, i+1, key, err)
		}
		switch key {
		case "voltage":
			pf.Network.Voltage = v
		case "min_supply":
			pf.Network.MinSupply = v
		case "source_ik":
			pf.Network.SourceIk = v
		case "source_cos_phi":
			pf.Network.SourceCosPhi = &v
		case "transformer_kva":
			tr.RatingKVA = v
		case "transformer_uk":
			tr.UkPercent = v
		case "transformer_pcu":
			tr.CopperLoss = v
		default:
			return fmt.Errorf("%s row %d: unknown key %q", NetworkSheet, i+1, key)
		}
	}
	if tr.RatingKVA > 0 {
		pf.Network.Transformer = &tr
	}
	return nil
}

// row gives named access to one circuits sheet row
type row struct {
	cells []string
	index map[string]int
	line  int
}

func (r row) str(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r row) number(col string) (float64, error) {
	s := r.str(col)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s row %d: %s: %w", CircuitsSheet, r.line, col, err)
	}
	return v, nil
}

func (r row) integer(col string) (int, error) {
	v, err := r.number(col)
	return int(v), err
}

func readCircuits(rows [][]string, pf *project.File) error {
	index := map[string]int{}
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{"name", "method", "length"} {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("%s: missing column %q", CircuitsSheet, col)
		}
	}

	var (
		circuits []*project.CircuitSpec
		roles    []string
		byName   = map[string]*project.CircuitSpec{}
	)
	for i, cells := range rows[1:] {
		r := row{cells: cells, index: index, line: i + 2}
		name := r.str("name")
		if name == "" {
			continue
		}

		seg, err := readSegment(r)
		if err != nil {
			return err
		}
		if c, ok := byName[name]; ok {
			c.Segments = append(c.Segments, seg)
			continue
		}

		c, err := readCircuit(r)
		if err != nil {
			return err
		}
		c.Segments = []project.SegmentSpec{seg}
		byName[name] = c
		circuits = append(circuits, c)
		roles = append(roles, strings.ToLower(r.str("role")))
	}

	feeder := -1
	for i, role := range roles {
		if role == "feeder" {
			if feeder >= 0 {
				return fmt.Errorf("%s: more than one feeder", CircuitsSheet)
			}
			feeder = i
		}
	}
	if feeder < 0 {
		if len(circuits) == 0 {
			return fmt.Errorf("%s: no circuits", CircuitsSheet)
		}
		feeder = 0
	}

	for i, c := range circuits {
		if i == feeder {
			pf.Feeder = *c
		} else {
			pf.Branches = append(pf.Branches, *c)
		}
	}
	return nil
}

func readCircuit(r row) (*project.CircuitSpec, error) {
	c := &project.CircuitSpec{
		Name:     r.str("name"),
		Phase:    r.str("phase"),
		Material: r.str("material"),
		Device:   r.str("device"),
	}

	floats := []struct {
		col string
		dst *float64
	}{
		{"current", &c.Current},
		{"cos_phi", &c.CosPhi},
		{"max_drop", &c.MaxDrop},
		{"min_supply", &c.MinSupply},
		{"k", &c.K},
		{"soil_kj", &c.SoilKj},
	}
	for _, f := range floats {
		v, err := r.number(f.col)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	if s := strings.ToLower(r.str("auto_size")); s != "" {
		auto, err := strconv.ParseBool(s)
		if err != nil {
			switch s {
			case "yes", "y", "on":
				auto = true
			case "no", "n", "off":
				auto = false
			default:
				return nil, fmt.Errorf("%s row %d: auto_size: %w", CircuitsSheet, r.line, err)
			}
		}
		c.AutoSize = &auto
	}
	return c, nil
}

func readSegment(r row) (project.SegmentSpec, error) {
	var (
		s   project.SegmentSpec
		err error
	)
	if s.Method, err = r.integer("method"); err != nil {
		return s, err
	}
	if s.Length, err = r.number("length"); err != nil {
		return s, err
	}
	if r.str("ambient_temp") != "" {
		t, err := r.number("ambient_temp")
		if err != nil {
			return s, err
		}
		s.AmbientTemp = &t
	}
	if s.Loaded, err = r.integer("loaded"); err != nil {
		return s, err
	}
	if s.Group, err = r.integer("group"); err != nil {
		return s, err
	}
	if s.Spacing, err = r.number("spacing"); err != nil {
		return s, err
	}
	if s.Size, err = r.number("size"); err != nil {
		return s, err
	}
	return s, nil
}
