package sidecar

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAlreadyInitialized is returned when Initialize is called twice. The
// supervisor spawns at most one child per application run.
var ErrAlreadyInitialized = errors.New("sidecar: supervisor already initialized")

// ResolutionError reports that the bundled backend executable could not be
// located. Fatal in Release mode: the shell must not come up without it.
type ResolutionError struct {
	Name     string
	Searched []string
	Err      error
}

func (e *ResolutionError) Error() string {
	if len(e.Searched) > 0 {
		return fmt.Sprintf("sidecar %q not found (searched %s): %v",
			e.Name, strings.Join(e.Searched, ", "), e.Err)
	}
	return fmt.Sprintf("sidecar %q could not be resolved: %v", e.Name, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// SpawnError reports that the operating system refused to create the child
// process. Fatal in Release mode.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn sidecar %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }
