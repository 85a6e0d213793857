package sidecar

import (
	"os"
	"path/filepath"
	"runtime"
)

// Resolve locates the bundled executable for name relative to the running
// shell binary. Search order mirrors common bundle layouts: the executable's
// own directory, a resources/ subdirectory, and on darwin the app bundle's
// ../Resources directory.
func Resolve(name string) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", &ResolutionError{Name: name, Err: err}
	}
	return ResolveIn(filepath.Dir(exe), name)
}

// ResolveIn resolves name against an explicit bundle directory. Used when the
// bundle location is configured and by resolve checks in tests and `doctor`.
func ResolveIn(dir, name string) (string, error) {
	file := name
	if runtime.GOOS == "windows" {
		file += ".exe"
	}
	candidates := []string{
		filepath.Join(dir, file),
		filepath.Join(dir, "resources", file),
	}
	if runtime.GOOS == "darwin" {
		candidates = append(candidates, filepath.Clean(filepath.Join(dir, "..", "Resources", file)))
	}
	for _, c := range candidates {
		info, err := os.Stat(c)
		if err != nil || info.IsDir() {
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
			continue
		}
		abs, err := filepath.Abs(c)
		if err != nil {
			return c, nil
		}
		return abs, nil
	}
	return "", &ResolutionError{Name: name, Searched: candidates, Err: os.ErrNotExist}
}
