//go:build release

package sidecar

// Release builds: the bundled backend is spawned as a managed child.
// The binary is placed next to the shell executable by CI/CD before packaging.

const DefaultMode = Release
