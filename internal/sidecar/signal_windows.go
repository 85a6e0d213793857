//go:build windows

package sidecar

import "syscall"

var (
	kernel32             = syscall.NewLazyDLL("kernel32.dll")
	procOpenProcess      = kernel32.NewProc("OpenProcess")
	procTerminateProcess = kernel32.NewProc("TerminateProcess")
	procCloseHandle      = kernel32.NewProc("CloseHandle")
)

const (
	processTerminate        = 0x0001
	processQueryInformation = 0x0400
)

// terminateGroup terminates the child on Windows. There is no TERM/KILL
// distinction; TerminateProcess covers both, and taskkill-style tree kill is
// approximated by the new-process-group creation flag.
func terminateGroup(pid int) error {
	return terminate(pid)
}

func killGroup(pid int) error {
	return terminate(pid)
}

func terminate(pid int) error {
	if pid <= 0 {
		return nil
	}
	handle, err := openProcess(processTerminate, pid)
	if err != nil {
		// The process most likely exited already.
		return nil
	}
	defer closeHandle(handle)
	ret, _, callErr := procTerminateProcess.Call(uintptr(handle), uintptr(1))
	if ret == 0 {
		return callErr
	}
	return nil
}

// processAlive checks whether the pid can be opened for query.
func processAlive(pid int) bool {
	handle, err := openProcess(processQueryInformation, pid)
	if err != nil {
		return false
	}
	_ = closeHandle(handle)
	return true
}

func openProcess(access uint32, pid int) (syscall.Handle, error) {
	ret, _, err := procOpenProcess.Call(uintptr(access), 0, uintptr(uint32(pid)))
	if ret == 0 {
		return 0, err
	}
	return syscall.Handle(ret), nil
}

func closeHandle(handle syscall.Handle) error {
	ret, _, err := procCloseHandle.Call(uintptr(handle))
	if ret == 0 {
		return err
	}
	return nil
}
