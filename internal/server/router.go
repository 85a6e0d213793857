package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hollis/appshell/internal/metrics"
	"github.com/hollis/appshell/internal/sidecar"
)

// Router exposes a loopback status surface for the shell:
//
//	GET /healthz   liveness of the shell itself
//	GET /status    bootstrap mode and managed child snapshot
//	GET /metrics   Prometheus metrics
//
// The surface is read-only. The supervisor spawns at most one child per
// application run, so there are no start/stop mutation endpoints.
type Router struct {
	sup *sidecar.Supervisor
}

func NewRouter(sup *sidecar.Supervisor) *Router {
	return &Router{sup: sup}
}

// Handler returns an http.Handler powered by gin.
func (r *Router) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	g := gin.New()
	g.Use(gin.Recovery())
	g.GET("/healthz", r.handleHealthz)
	g.GET("/status", r.handleStatus)
	g.GET("/metrics", gin.WrapH(metrics.Handler()))
	return g
}

// NewServer starts a standalone HTTP server on addr using this router.
func NewServer(addr string, sup *sidecar.Supervisor) (*http.Server, error) {
	r := NewRouter(sup)
	server := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() { _ = server.ListenAndServe() }()
	return server, nil
}

type healthResp struct {
	OK bool `json:"ok"`
}

type sidecarResp struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	PID       int    `json:"pid"`
	Running   bool   `json:"running"`
	StartedAt string `json:"started_at,omitempty"`
	StoppedAt string `json:"stopped_at,omitempty"`
	ExitError string `json:"exit_error,omitempty"`
}

type statusResp struct {
	Mode        string       `json:"mode"`
	Initialized bool         `json:"initialized"`
	Sidecar     *sidecarResp `json:"sidecar,omitempty"`
}

func (r *Router) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, healthResp{OK: true})
}

func (r *Router) handleStatus(c *gin.Context) {
	resp := statusResp{
		Mode:        r.sup.Mode().String(),
		Initialized: r.sup.Initialized(),
	}
	if st, ok := r.sup.Status(); ok {
		sc := &sidecarResp{
			Name:    st.Name,
			Path:    st.Path,
			PID:     st.PID,
			Running: st.Running,
		}
		if !st.StartedAt.IsZero() {
			sc.StartedAt = st.StartedAt.Format(time.RFC3339)
		}
		if !st.StoppedAt.IsZero() {
			sc.StoppedAt = st.StoppedAt.Format(time.RFC3339)
		}
		if st.ExitErr != nil {
			sc.ExitError = st.ExitErr.Error()
		}
		resp.Sidecar = sc
	}
	c.JSON(http.StatusOK, resp)
}
