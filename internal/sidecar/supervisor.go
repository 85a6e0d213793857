package sidecar

import (
	"log/slog"
	"sync"
	"time"

	"github.com/hollis/appshell/internal/metrics"
)

// Supervisor binds the lifecycle of the bundled backend executable to the
// lifecycle of the shell. It performs a single one-shot Initialize with two
// mutually exclusive branches selected by Mode, and in Release mode owns the
// resulting child handle until Shutdown.

// Options configures a Supervisor. Mode and Spec are required; the rest are
// optional hooks wired by the caller (history recorder, custom logger).
type Options struct {
	Mode   Mode
	Spec   Spec
	Logger *slog.Logger

	// RecordSpawn and RecordExit receive lifecycle snapshots for history
	// persistence. Both are best-effort and may be nil.
	RecordSpawn func(Status)
	RecordExit  func(Status)
}

type Supervisor struct {
	mode        Mode
	spec        Spec
	log         *slog.Logger
	recordSpawn func(Status)
	recordExit  func(Status)

	mu          sync.Mutex
	initialized bool
	child       *Child // ownership slot; nil in Development mode
}

func New(opts Options) *Supervisor {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Supervisor{
		mode:        opts.Mode,
		spec:        opts.Spec,
		log:         log,
		recordSpawn: opts.RecordSpawn,
		recordExit:  opts.RecordExit,
	}
}

func (s *Supervisor) Mode() Mode { return s.mode }

// Initialize executes the bootstrap branch for the configured mode. It must
// run before the shell enters its event loop; any error it returns in Release
// mode is fatal to startup. Calling it a second time returns
// ErrAlreadyInitialized without attempting another spawn.
func (s *Supervisor) Initialize() error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return ErrAlreadyInitialized
	}
	s.initialized = true
	s.mu.Unlock()

	if err := s.spec.Validate(); err != nil {
		return err
	}

	if s.mode == Development {
		s.log.Info("dev mode: run the backend separately",
			"hint", "cd backend && bun run dev")
		return nil
	}
	return s.spawn()
}

func (s *Supervisor) spawn() error {
	metrics.IncSpawnAttempt(s.spec.Name)
	path, err := s.resolve()
	if err != nil {
		metrics.IncSpawnFailure(s.spec.Name, "resolve")
		return err
	}

	cmd := s.spec.BuildCommand(path)
	configureSysProcAttr(cmd)

	child := newChild(s.spec, path)
	child.configureOutput(cmd)
	if err := child.start(cmd); err != nil {
		metrics.IncSpawnFailure(s.spec.Name, "spawn")
		return &SpawnError{Path: path, Err: err}
	}
	metrics.SetSidecarUp(s.spec.Name, true)

	s.mu.Lock()
	s.child = child
	s.mu.Unlock()

	s.log.Info("backend sidecar started", "path", path, "pid", child.PID())
	if s.recordSpawn != nil {
		s.recordSpawn(child.Snapshot())
	}
	go s.monitor(child)
	return nil
}

func (s *Supervisor) resolve() (string, error) {
	if s.spec.BundleDir != "" {
		return ResolveIn(s.spec.BundleDir, s.spec.Name)
	}
	return Resolve(s.spec.Name)
}

// monitor reaps the child when it exits. No restart is attempted: the
// supervisor spawns exactly once per application run.
func (s *Supervisor) monitor(child *Child) {
	err := child.wait()
	metrics.SetSidecarUp(s.spec.Name, false)
	st := child.Snapshot()
	if child.StopRequested() {
		s.log.Info("backend sidecar stopped", "pid", st.PID)
	} else {
		s.log.Warn("backend sidecar exited", "pid", st.PID, "error", err)
	}
	if s.recordExit != nil {
		s.recordExit(st)
	}
}

// Initialized reports whether Initialize has run.
func (s *Supervisor) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Child returns the retained child handle, or nil when no spawn occurred
// (Development mode, or before Initialize).
func (s *Supervisor) Child() *Child {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.child
}

// Status returns the child's snapshot and whether a child exists.
func (s *Supervisor) Status() (Status, bool) {
	c := s.Child()
	if c == nil {
		return Status{}, false
	}
	return c.Snapshot(), true
}

// Shutdown terminates the managed child when one exists. Safe to call in any
// mode and more than once.
func (s *Supervisor) Shutdown(wait time.Duration) error {
	c := s.Child()
	if c == nil {
		return nil
	}
	return c.Stop(wait)
}
