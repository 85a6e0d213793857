package sidecar

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"sync"
	"time"
)

// Child is the managed child handle: the ownership slot contents. It is
// created by the supervisor on a successful spawn and retained until the
// application shuts down.
type Child struct {
	spec      Spec
	path      string
	mu        sync.Mutex
	cmd       *exec.Cmd
	status    Status
	outCloser io.WriteCloser
	errCloser io.WriteCloser
	waitDone  chan struct{} // closed by the monitor goroutine when cmd.Wait returns
	stopping  bool          // true once Stop has been requested
}

func newChild(spec Spec, path string) *Child {
	return &Child{spec: spec, path: path}
}

// configureOutput wires the child's stdout/stderr. The shell accepts the
// sidecar's output channel but never consumes it, so output is discarded
// unless capture to rotated files is configured.
func (c *Child) configureOutput(cmd *exec.Cmd) {
	lc := c.spec.Log
	if lc.Dir != "" || lc.StdoutPath != "" || lc.StderrPath != "" {
		if lc.Dir != "" {
			_ = os.MkdirAll(lc.Dir, 0o750)
		}
		outW, errW, _ := lc.Writers(c.spec.Name)
		c.mu.Lock()
		c.outCloser, c.errCloser = outW, errW
		c.mu.Unlock()
		if outW != nil {
			cmd.Stdout = outW
		}
		if errW != nil {
			cmd.Stderr = errW
		}
		return
	}
	null, _ := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	cmd.Stdout = null
	cmd.Stderr = null
}

// start launches cmd and records the run under lock. The caller owns error
// classification; on success exactly one monitor goroutine must call wait.
func (c *Child) start(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		c.closeWriters()
		return err
	}
	c.mu.Lock()
	c.cmd = cmd
	c.waitDone = make(chan struct{})
	c.status = Status{
		Name:      c.spec.Name,
		Path:      c.path,
		Running:   true,
		PID:       cmd.Process.Pid,
		StartedAt: time.Now(),
	}
	c.mu.Unlock()
	return nil
}

// wait reaps the child and finalizes its status. Called exactly once, from
// the supervisor's monitor goroutine.
func (c *Child) wait() error {
	c.mu.Lock()
	cmd := c.cmd
	c.mu.Unlock()
	var err error
	if cmd != nil {
		err = cmd.Wait()
	}
	c.mu.Lock()
	c.status.Running = false
	c.status.StoppedAt = time.Now()
	c.status.ExitErr = err
	wd := c.waitDone
	c.mu.Unlock()
	c.closeWriters()
	if wd != nil {
		close(wd)
	}
	return err
}

func (c *Child) closeWriters() {
	c.mu.Lock()
	out, errW := c.outCloser, c.errCloser
	c.outCloser, c.errCloser = nil, nil
	c.mu.Unlock()
	if out != nil {
		_ = out.Close()
	}
	if errW != nil {
		_ = errW.Close()
	}
}

// Snapshot returns a copy of the current status.
func (c *Child) Snapshot() Status {
	c.mu.Lock()
	st := c.status
	c.mu.Unlock()
	return st
}

// PID returns the child's process id, or 0 before a successful start.
func (c *Child) PID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status.PID
}

// Path returns the resolved executable the child was spawned from.
func (c *Child) Path() string { return c.path }

// Alive probes the child's liveness without racing os/exec internals.
func (c *Child) Alive() bool {
	c.mu.Lock()
	cmd := c.cmd
	c.mu.Unlock()
	if cmd == nil || cmd.Process == nil {
		return false
	}
	pid := cmd.Process.Pid
	// A quickly-exiting child shows up as a zombie until reaped; not alive.
	if runtime.GOOS == "linux" && isZombieLinux(pid) {
		return false
	}
	return processAlive(pid)
}

// Stop requests graceful termination of the child's process group and waits
// up to wait for the monitor to reap it, escalating to a hard kill.
// Idempotent; returns the child's exit error, if any.
func (c *Child) Stop(wait time.Duration) error {
	c.mu.Lock()
	c.stopping = true
	cmd := c.cmd
	wd := c.waitDone
	c.mu.Unlock()
	if cmd == nil || cmd.Process == nil || !c.Alive() {
		return c.Snapshot().ExitErr
	}
	pid := cmd.Process.Pid
	_ = terminateGroup(pid)
	if wd != nil {
		select {
		case <-wd:
		case <-time.After(wait):
			_ = killGroup(pid)
			select {
			case <-wd:
			case <-time.After(200 * time.Millisecond):
				// best-effort
			}
		}
	}
	return c.Snapshot().ExitErr
}

// StopRequested reports whether Stop has been called for this child.
func (c *Child) StopRequested() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopping
}

// isZombieLinux returns true if /proc/<pid>/status reports a zombie state (Z).
func isZombieLinux(pid int) bool {
	b, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/status")
	if err != nil {
		return false
	}
	return bytes.Contains(b, []byte("State:\tZ"))
}
