package appshell

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	cfg "github.com/hollis/appshell/internal/config"
	"github.com/hollis/appshell/internal/metrics"
	"github.com/hollis/appshell/internal/server"
	"github.com/hollis/appshell/internal/sidecar"
)

// Re-export core types for external consumers.
// These are aliases so conversions are zero-cost.

type Mode = sidecar.Mode

const (
	Development = sidecar.Development
	Release     = sidecar.Release
)

// DefaultMode follows the build configuration: Release when built with the
// `release` tag, Development otherwise.
const DefaultMode = sidecar.DefaultMode

type Spec = sidecar.Spec

type Status = sidecar.Status

type Options = sidecar.Options

type Supervisor = sidecar.Supervisor

type Child = sidecar.Child

type ResolutionError = sidecar.ResolutionError

type SpawnError = sidecar.SpawnError

var ErrAlreadyInitialized = sidecar.ErrAlreadyInitialized

// New constructs the process supervisor for the shell.
func New(opts Options) *Supervisor { return sidecar.New(opts) }

// Resolve locates the bundled backend executable for name.
func Resolve(name string) (string, error) { return sidecar.Resolve(name) }

func ParseMode(s string) (Mode, error) { return sidecar.ParseMode(s) }

type Config = cfg.Config

func LoadConfig(path string) (*Config, error) { return cfg.Load(path) }

// Metrics helpers (public facade)

func RegisterMetrics(r prometheus.Registerer) error { return metrics.Register(r) }
func RegisterMetricsDefault() error                 { return metrics.Register(prometheus.DefaultRegisterer) }

// NewControlServer starts the loopback status server backed by the supervisor.
func NewControlServer(addr string, s *Supervisor) (*http.Server, error) {
	return server.NewServer(addr, s)
}
