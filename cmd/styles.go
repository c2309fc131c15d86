package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true)
)

// verdict renders a check result as a colored OK / NOT OK
func verdict(ok bool) string {
	if ok {
		return okStyle.Render("OK ✓")
	}
	return errorStyle.Render("NOT OK ✗")
}

func printWarning(format string, args ...any) {
	fmt.Println(warnStyle.Render("  ⚠ " + fmt.Sprintf(format, args...)))
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
}
