package platform

import (
	"os"
	"runtime"
)

// Host returns the OS and architecture this process runs on, in Go's
// runtime naming ("darwin", "arm64"). Callers that need the build
// environment's own names should prefer configured overrides.
func Host() (osName, arch string) {
	return runtime.GOOS, runtime.GOARCH
}

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}
