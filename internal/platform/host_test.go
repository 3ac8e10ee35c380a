package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestHost(t *testing.T) {
	osName, arch := Host()
	if osName != runtime.GOOS || arch != runtime.GOARCH {
		t.Errorf("Host() = (%s, %s), want (%s, %s)", osName, arch, runtime.GOOS, runtime.GOARCH)
	}
}

func TestChmod(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "libminilm.so")
	if err := os.WriteFile(path, []byte("elf"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(path, 0755); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0755 {
			t.Errorf("permissions = %o, want %o", perm, 0755)
		}
	}
}
