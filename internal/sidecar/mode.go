package sidecar

import "fmt"

// Mode selects which bootstrap branch the supervisor executes. Desktop shells
// traditionally compile this in; here it is a runtime value chosen once at
// startup so packaging scripts and tests can select the branch explicitly.
type Mode int

const (
	// Development expects the operator to run the backend dev server manually.
	Development Mode = iota
	// Release spawns the bundled backend executable as a managed child.
	Release
)

func (m Mode) String() string {
	switch m {
	case Development:
		return "development"
	case Release:
		return "release"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts a config/flag string into a Mode.
// Accepts "development"/"dev" and "release"/"prod".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "development", "dev":
		return Development, nil
	case "release", "prod":
		return Release, nil
	default:
		return Development, fmt.Errorf("unknown mode %q", s)
	}
}
