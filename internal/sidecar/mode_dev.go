//go:build !release

package sidecar

// Development builds: the backend dev server is started by the operator.

const DefaultMode = Development
