package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis/appshell/internal/sidecar"
)

func newTestRouter(t *testing.T) (http.Handler, *sidecar.Supervisor) {
	t.Helper()
	sup := sidecar.New(sidecar.Options{
		Mode: sidecar.Development,
		Spec: sidecar.Spec{Name: "backend"},
	})
	return NewRouter(sup).Handler(), sup
}

func TestHealthz(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp["ok"])
}

func TestStatus_BeforeInitialize(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Mode        string          `json:"mode"`
		Initialized bool            `json:"initialized"`
		Sidecar     json.RawMessage `json:"sidecar"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "development", resp.Mode)
	assert.False(t, resp.Initialized)
	assert.Empty(t, resp.Sidecar)
}

func TestStatus_DevelopmentInitialized(t *testing.T) {
	h, sup := newTestRouter(t)
	require.NoError(t, sup.Initialize())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Mode        string          `json:"mode"`
		Initialized bool            `json:"initialized"`
		Sidecar     json.RawMessage `json:"sidecar"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Initialized)
	// Development mode never spawns, so no sidecar block is reported.
	assert.Empty(t, resp.Sidecar)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNoMutationEndpoints(t *testing.T) {
	h, _ := newTestRouter(t)
	for _, target := range []string{"/start", "/stop", "/restart"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
}
