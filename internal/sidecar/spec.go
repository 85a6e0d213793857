package sidecar

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hollis/appshell/internal/logger"
)

// DefaultName is the base name of the bundled backend executable.
const DefaultName = "backend"

// Spec describes the sidecar to supervise. The zero value plus a name is a
// valid spec: no arguments, inherited environment, discarded output.
type Spec struct {
	Name      string        `json:"name" mapstructure:"name"`
	Args      []string      `json:"args" mapstructure:"args"`
	Env       []string      `json:"env" mapstructure:"env"`               // extra KEY=VALUE entries
	WorkDir   string        `json:"work_dir" mapstructure:"work_dir"`     // optional working dir
	BundleDir string        `json:"bundle_dir" mapstructure:"bundle_dir"` // overrides the executable-relative search base
	Log       logger.Config `json:"log" mapstructure:"log"`               // captured output; discarded when unset
}

func (s *Spec) Validate() error {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return fmt.Errorf("sidecar requires name")
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("sidecar name %q must not contain path separators", name)
	}
	return nil
}

// BuildCommand constructs the *exec.Cmd for the resolved binary path.
// The sidecar is always invoked directly; no shell is involved.
func (s *Spec) BuildCommand(path string) *exec.Cmd {
	// #nosec G204 -- path comes from Resolve and points inside the app bundle
	cmd := exec.Command(path, s.Args...)
	if s.WorkDir != "" {
		cmd.Dir = s.WorkDir
	}
	if len(s.Env) > 0 {
		cmd.Env = append(os.Environ(), s.Env...)
	}
	return cmd
}
