package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gocable/internal/project"
	"github.com/alexiusacademia/gocable/internal/workbook"
)

var (
	importYAML     string
	importTemplate bool
)

var projectImportCmd = &cobra.Command{
	Use:   "import <project.xlsx>",
	Short: "Compute a project from an XLSX workbook",
	Long: `Read a project from an XLSX workbook and compute it.

The workbook has a "Network" sheet of key/value rows and a "Circuits"
sheet with one row per cable segment. Rows repeating a circuit name add
segments to it; the row with role "feeder" (or the first circuit) is
the feeder.

Examples:
  gocable project import --template site.xlsx     # write an empty workbook
  gocable project import site.xlsx --xlsx output/results.xlsx
  gocable project import site.xlsx --yaml site.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runProjectImport,
}

func init() {
	projectCmd.AddCommand(projectImportCmd)
	addProjectOutputFlags(projectImportCmd)
	projectImportCmd.Flags().StringVar(&importYAML, "yaml", "", "Also save the imported project as YAML")
	projectImportCmd.Flags().BoolVar(&importTemplate, "template", false, "Write an empty project workbook to the given path and exit")
}

func runProjectImport(cmd *cobra.Command, args []string) {
	if importTemplate {
		if err := workbook.WriteTemplate(args[0]); err != nil {
			printError(err)
			return
		}
		fmt.Printf("  Template written to %s\n", args[0])
		return
	}

	pf, err := workbook.ReadFile(args[0])
	if err != nil {
		printError(err)
		return
	}
	if importYAML != "" {
		if err := saveYAML(importYAML, pf); err != nil {
			printError(err)
			return
		}
		fmt.Printf("  Project saved to %s\n", importYAML)
	}

	p, err := project.Build(pf, cfg)
	if err != nil {
		printError(err)
		return
	}
	runProject(p)
}

func saveYAML(path string, pf project.File) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return project.Encode(out, pf)
}
