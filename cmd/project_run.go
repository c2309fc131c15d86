package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gocable/internal/circuit"
	"github.com/alexiusacademia/gocable/internal/diagram"
	"github.com/alexiusacademia/gocable/internal/fuse"
	"github.com/alexiusacademia/gocable/internal/logger"
	"github.com/alexiusacademia/gocable/internal/project"
	"github.com/alexiusacademia/gocable/internal/report"
	"github.com/alexiusacademia/gocable/internal/workbook"
)

var (
	projectShowTrace   bool
	projectShowDiagram bool
	projectPDF         string
	projectXLSX        string
	projectPlots       bool
	projectAuthor      string
)

var projectRunCmd = &cobra.Command{
	Use:   "run <project.yaml>",
	Short: "Compute a project from a YAML file",
	Long: `Compute the feeder and branch circuits of a YAML project file.
Omitted values are taken from the defaults file.

Examples:
  gocable project run site.yaml --diagram
  gocable project run site.yaml --pdf output/site.pdf --plots`,
	Args: cobra.ExactArgs(1),
	Run:  runProjectRun,
}

func init() {
	projectCmd.AddCommand(projectRunCmd)
	addProjectOutputFlags(projectRunCmd)
}

// addProjectOutputFlags registers the output flags shared by project subcommands
func addProjectOutputFlags(c *cobra.Command) {
	c.Flags().BoolVar(&projectShowTrace, "trace", false, "Print the calculation trace of every circuit")
	c.Flags().BoolVar(&projectShowDiagram, "diagram", false, "Show the single-line diagram")
	c.Flags().StringVar(&projectPDF, "pdf", "", "Write a PDF report to file")
	c.Flags().StringVar(&projectXLSX, "xlsx", "", "Write the results to an XLSX workbook")
	c.Flags().BoolVar(&projectPlots, "plots", false, "Export device curves as PNG to the output directory")
	c.Flags().StringVar(&projectAuthor, "author", "", "Author printed on the PDF report")
}

func runProjectRun(cmd *cobra.Command, args []string) {
	p, err := project.Load(args[0], cfg)
	if err != nil {
		printError(err)
		return
	}
	runProject(p)
}

// runProject computes a loaded project and writes the requested outputs
func runProject(p *project.Project) {
	rep, err := project.Run(circuit.NewEngine(), p)
	if err != nil {
		printFailure(err, projectShowTrace)
		return
	}

	printBanner(fmt.Sprintf("PROJECT %s", strings.ToUpper(p.Name)))
	if p.Transformer != nil {
		t := p.Transformer
		if src, err := t.Source(); err == nil {
			fmt.Printf("  Transformer %.0f kVA, uk = %.1f %% ⇒ Z = %.5f Ω, Ik,3ph = %.0f A\n",
				t.Rating, t.UkPercent, src.Impedance, src.Current)
		}
		fmt.Printf("  Source model: Ik,source = U/Z = %.0f A, cos φ = %.3f\n\n", p.Network.SourceIk, p.Network.SourceCosPhi)
	}
	if projectShowDiagram {
		printHeading("SINGLE-LINE DIAGRAM:")
		fmt.Println(diagram.DrawSingleLine(rep))
	}

	printResult(rep.Feeder)
	if projectShowTrace {
		printTrace(rep.Feeder.Trace)
	}
	for _, b := range rep.Branches {
		if b.Err != nil {
			printFailure(b.Err, projectShowTrace)
			fmt.Println()
			continue
		}
		printResult(b.Result)
		if projectShowTrace {
			printTrace(b.Result.Trace)
		}
	}

	var images []string
	if projectPlots {
		images = exportPlots(rep)
	}
	if projectXLSX != "" {
		if err := workbook.WriteFile(projectXLSX, rep); err != nil {
			printError(fmt.Errorf("writing workbook: %w", err))
		} else {
			fmt.Printf("  Results written to %s\n", projectXLSX)
		}
	}
	if projectPDF != "" {
		opt := report.Options{Title: fmt.Sprintf("Cable Dimensioning Report - %s", p.Name), Author: projectAuthor, Images: images}
		if err := report.WriteFile(projectPDF, rep, opt); err != nil {
			printError(fmt.Errorf("writing report: %w", err))
		} else {
			fmt.Printf("  Report written to %s\n", projectPDF)
		}
	}

	if n := rep.Failed(); n > 0 {
		printWarning("%d of %d branch circuits failed", n, len(rep.Branches))
	}
	fmt.Println()
}

// exportPlots writes one curve image per computed circuit and returns the paths
func exportPlots(rep *project.Report) []string {
	var paths []string
	for _, r := range rep.Results() {
		curve, err := fuse.DefaultCatalog().Curve(r.Device.Family, r.Circuit.Current)
		if err != nil {
			printError(err)
			continue
		}
		path := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s-curve.png", r.Name()))
		data := diagram.TripCurveData{
			Title:        fmt.Sprintf("%s: %s %.0f A", r.Name(), r.Device.Label, curve.Rating),
			Curve:        curve,
			FaultCurrent: r.IkMin.Magnitude(),
			MinRating:    r.Circuit.Current,
		}
		if err := diagram.ExportTripCurve(data, path); err != nil {
			printError(fmt.Errorf("exporting curve of %s: %w", r.Name(), err))
			continue
		}
		logger.Debug("curve of %s written to %s", r.Name(), path)
		paths = append(paths, path)
	}
	if len(paths) > 0 {
		fmt.Printf("  %d curve plots written to %s\n", len(paths), cfg.OutputDir)
	}
	return paths
}
