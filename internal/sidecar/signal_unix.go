//go:build !windows

package sidecar

import "syscall"

// terminateGroup asks the child's process group to exit.
func terminateGroup(pid int) error {
	return syscall.Kill(-pid, syscall.SIGTERM)
}

// killGroup forcefully terminates the child's process group.
func killGroup(pid int) error {
	return syscall.Kill(-pid, syscall.SIGKILL)
}

// processAlive checks process existence with a null signal.
func processAlive(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}
