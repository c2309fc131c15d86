package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gocable/internal/fuse"
)

// TripCurveData holds a device curve and the fault it was checked against
type TripCurveData struct {
	Title        string
	Curve        fuse.Curve
	FaultCurrent float64 // A, 0 to omit the operating point
	MinRating    float64 // A, design current for the minimum trip marker, 0 to omit
}

// ExportTripCurve exports the time–current curve on log–log axes to an image file.
// The format follows the extension (.png, .svg, .pdf); anything else gets .png appended.
func ExportTripCurve(data TripCurveData, filename string) error {
	c := data.Curve
	if len(c.Points) < 2 {
		return fmt.Errorf("curve %s %.0f A has no points to plot", c.Family, c.Rating)
	}

	p := plot.New()
	p.Title.Text = data.Title
	if p.Title.Text == "" {
		p.Title.Text = fmt.Sprintf("%s %.0f A", c.Family, c.Rating)
	}
	p.X.Label.Text = "Current (A)"
	p.Y.Label.Text = "Time (s)"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(c.Points))
	for i, pt := range c.Points {
		pts[i] = plotter.XY{X: pt.Multiple * c.Rating, Y: pt.Time}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	p.Add(line)
	p.Legend.Add(fmt.Sprintf("In = %.0f A", c.Rating), line)

	tMin, tMax := c.Points[len(c.Points)-1].Time, c.Points[0].Time

	if data.MinRating > 0 && c.MinTripFactor > 0 {
		x := c.MinTripFactor * data.MinRating
		trip, err := plotter.NewLine(plotter.XYs{{X: x, Y: tMin}, {X: x, Y: tMax}})
		if err != nil {
			return err
		}
		trip.LineStyle.Color = color.RGBA{R: 255, G: 165, B: 0, A: 255}
		trip.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(trip)
		p.Legend.Add(fmt.Sprintf("%.0f × In", c.MinTripFactor), trip)
	}

	if data.FaultCurrent > 0 {
		t := c.TripTime(data.FaultCurrent)
		y := math.Max(t.Time, tMin)
		fault, err := plotter.NewScatter(plotter.XYs{{X: data.FaultCurrent, Y: y}})
		if err != nil {
			return err
		}
		fault.GlyphStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
		fault.GlyphStyle.Radius = vg.Points(5)
		fault.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(fault)

		lbl, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: data.FaultCurrent, Y: y}},
			Labels: []string{fmt.Sprintf("  Ik,min = %.0f A, t = %.3f s", data.FaultCurrent, t.Time)},
		})
		if err != nil {
			return err
		}
		p.Add(lbl)
	}

	width := 8 * vg.Inch
	height := 6 * vg.Inch

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
