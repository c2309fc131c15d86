// Package version holds build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/alexiusacademia/gocable/internal/version.Version=1.0.0"
package version

import "fmt"

var (
	Version   = "0.3.0"
	BuildTime = "unknown"
	GitCommit = "unknown"

	Author = "Alexius Academia"
	Year   = "2025"
)

// Standard is the wiring standard the ampacity and correction tables come from
const Standard = "HD 60364-5-52"

// String returns "gocable v<version>", with commit and build time when known
func String() string {
	s := fmt.Sprintf("gocable v%s", Version)
	if GitCommit != "unknown" {
		s += fmt.Sprintf(" (%s, built %s)", GitCommit, BuildTime)
	}
	return s
}
