package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterIdempotent(t *testing.T) {
	r := prometheus.NewRegistry()
	if err := Register(r); err != nil {
		t.Fatalf("Register: %v", err)
	}
	// Second call is a no-op, not a duplicate registration error.
	if err := Register(r); err != nil {
		t.Fatalf("second Register: %v", err)
	}
}

func TestHelpersAfterRegister(t *testing.T) {
	_ = Register(prometheus.NewRegistry())
	IncSpawnAttempt("backend")
	IncSpawnFailure("backend", "resolve")
	IncSpawnFailure("backend", "spawn")
	SetSidecarUp("backend", true)

	if got := testutil.ToFloat64(spawnAttempts.WithLabelValues("backend")); got < 1 {
		t.Fatalf("spawn attempts not recorded: %v", got)
	}
	if got := testutil.ToFloat64(sidecarUp.WithLabelValues("backend")); got != 1 {
		t.Fatalf("up gauge = %v, want 1", got)
	}
	SetSidecarUp("backend", false)
	if got := testutil.ToFloat64(sidecarUp.WithLabelValues("backend")); got != 0 {
		t.Fatalf("up gauge = %v, want 0", got)
	}
}
