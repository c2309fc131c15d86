package fuse

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
)

// Family is a protective device family with a common time–current characteristic
type Family string

const (
	Diazed  Family = "diazed-gg"
	Neozed  Family = "neozed-gg"
	NH      Family = "nh-gg"
	MCBB    Family = "mcb-b"
	MCBC    Family = "mcb-c"
	MCBD    Family = "mcb-d"
	MCBAuto Family = "mcb-auto" // chooses B or C from Ik,min
)

var (
	// ErrUnknownDevice is returned for a family the catalog does not carry.
	ErrUnknownDevice = errors.New("unknown protective device")

	// ErrNoSuitableDevice is returned when Ik,min is too low for any automatic MCB choice.
	ErrNoSuitableDevice = errors.New("no suitable protective device")
)

// Curve is the time–current characteristic of one device rating
type Curve struct {
	Family        Family
	Rating        float64 // A
	MinTripFactor float64 // Ik,min must exceed MinTripFactor·In
	Points        []Point
}

type familyData struct {
	Label         string
	MinTripFactor float64
	Ratings       []float64
	Points        []Point
}

// Catalog holds the device families and their cataloged ratings
type Catalog struct {
	families map[Family]familyData
}

var (
	catalogOnce    sync.Once
	defaultCatalog *Catalog
)

// DefaultCatalog returns the process-wide device catalog
func DefaultCatalog() *Catalog {
	catalogOnce.Do(func() {
		defaultCatalog = NewCatalog()
	})
	return defaultCatalog
}

// NewCatalog builds the standard device catalog
func NewCatalog() *Catalog {
	return &Catalog{
		families: map[Family]familyData{
			Diazed: {"Diazed gG", 5, fuseRatings, diazedPoints},
			Neozed: {"Neozed gG", 5, fuseRatings, neozedPoints},
			NH:     {"NH gG (knife)", 5, nhRatings, diazedPoints},
			MCBB:   {"MCB B", 5, mcbRatings, generateCurve(mcbBTime, mcbNoTrip, 20, mcbPoints)},
			MCBC:   {"MCB C", 10, mcbRatings, generateCurve(mcbCTime, mcbNoTrip, 30, mcbPoints)},
			MCBD:   {"MCB D", 20, mcbRatings, generateCurve(mcbDTime, mcbNoTrip, 40, mcbPoints)},
		},
	}
}

// Families returns the families of the catalog in display order
func (c *Catalog) Families() []Family {
	return []Family{Diazed, Neozed, NH, MCBB, MCBC, MCBD}
}

// Label returns the display name of a family
func (c *Catalog) Label(f Family) string {
	if f == MCBAuto {
		return "MCB (auto B/C)"
	}
	if d, ok := c.families[f]; ok {
		return d.Label
	}
	return string(f)
}

// Ratings returns the cataloged ratings of a family
func (c *Catalog) Ratings(f Family) ([]float64, error) {
	d, ok := c.families[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDevice, f)
	}
	out := make([]float64, len(d.Ratings))
	copy(out, d.Ratings)
	return out, nil
}

// Curve returns the curve of the cataloged rating nearest to in.
// The design current is rounded to whole amperes first; ties go to the lower rating.
func (c *Catalog) Curve(f Family, in float64) (Curve, error) {
	d, ok := c.families[f]
	if !ok {
		return Curve{}, fmt.Errorf("%w: %q", ErrUnknownDevice, f)
	}

	target := math.Round(in)
	nearest := d.Ratings[0]
	for _, r := range d.Ratings[1:] {
		if math.Abs(r-target) < math.Abs(nearest-target) {
			nearest = r
		}
	}

	return Curve{
		Family:        f,
		Rating:        nearest,
		MinTripFactor: d.MinTripFactor,
		Points:        d.Points,
	}, nil
}

// SelectMCB picks the MCB curve type for a minimum fault current:
// C when Ik,min > 10·In, B when Ik,min > 5·In.
func SelectMCB(ikMin, in float64) (Family, error) {
	switch {
	case ikMin > 10*in:
		return MCBC, nil
	case ikMin > 5*in:
		return MCBB, nil
	}
	return "", fmt.Errorf("%w: Ik,min %.1f A is not above 5·In = %.1f A", ErrNoSuitableDevice, ikMin, 5*in)
}

// ParseFamily converts a device tag into a Family
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "diazed", "diazed-gg", "diazed gg":
		return Diazed, nil
	case "neozed", "neozed-gg", "neozed gg":
		return Neozed, nil
	case "nh", "nh-gg", "knife", "nh gg":
		return NH, nil
	case "mcb-b", "mcb b", "b":
		return MCBB, nil
	case "mcb-c", "mcb c", "c":
		return MCBC, nil
	case "mcb-d", "mcb d", "d":
		return MCBD, nil
	case "mcb-auto", "mcb", "auto":
		return MCBAuto, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDevice, s)
}
