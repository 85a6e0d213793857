package metrics

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Package-level Prometheus collectors for the sidecar bootstrap. They are
// registered via Register; the helpers no-op until then.
var (
	regOK atomic.Bool

	spawnAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "appshell",
			Subsystem: "sidecar",
			Name:      "spawn_attempts_total",
			Help:      "Number of attempts to spawn the bundled sidecar.",
		}, []string{"name"},
	)
	spawnFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "appshell",
			Subsystem: "sidecar",
			Name:      "spawn_failures_total",
			Help:      "Number of failed spawn attempts, by failure stage.",
		}, []string{"name", "stage"},
	)
	sidecarUp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "appshell",
			Subsystem: "sidecar",
			Name:      "up",
			Help:      "Whether the managed sidecar process is currently alive.",
		}, []string{"name"},
	)
)

// Register registers all collectors with the provided registerer.
// Safe to call multiple times; subsequent calls after success are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	cs := []prometheus.Collector{spawnAttempts, spawnFailures, sidecarUp}
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// Handler serves Prometheus metrics for the DefaultGatherer. The caller wires
// the route.
func Handler() http.Handler { return promhttp.Handler() }

func IncSpawnAttempt(name string) {
	if regOK.Load() {
		spawnAttempts.WithLabelValues(name).Inc()
	}
}

func IncSpawnFailure(name, stage string) {
	if regOK.Load() {
		spawnFailures.WithLabelValues(name, stage).Inc()
	}
}

func SetSidecarUp(name string, up bool) {
	if regOK.Load() {
		v := 0.0
		if up {
			v = 1.0
		}
		sidecarUp.WithLabelValues(name).Set(v)
	}
}
