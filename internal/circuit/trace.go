package circuit

import (
	"fmt"
	"strings"
)

// Trace is the ordered list of computation steps of one circuit.
// It contains no clock or random content, so equal inputs give equal traces.
type Trace []string

// Addf appends a formatted line
func (t *Trace) Addf(format string, args ...any) {
	*t = append(*t, fmt.Sprintf(format, args...))
}

// Add appends lines verbatim
func (t *Trace) Add(lines ...string) {
	*t = append(*t, lines...)
}

// Section appends a section header
func (t *Trace) Section(name string) {
	*t = append(*t, fmt.Sprintf("=== %s ===", name))
}

// Blank appends an empty line
func (t *Trace) Blank() {
	*t = append(*t, "")
}

// String joins the trace with newlines
func (t Trace) String() string {
	return strings.Join(t, "\n")
}
