package sidecar

import "time"

// Status is a point-in-time snapshot of the managed child.
type Status struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Running   bool      `json:"running"`
	PID       int       `json:"pid"`
	StartedAt time.Time `json:"started_at"`
	StoppedAt time.Time `json:"stopped_at"`
	ExitErr   error     `json:"exit_error,omitempty"`
}
