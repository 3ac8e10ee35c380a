// Package loader locates the native library for the running host inside a
// packaged resource tree and extracts it to a temporary file that a
// dynamic loader can open.
//
// Resources are looked up as native/<key>/<file> first (cross-staged
// packages) and native/<file> second (host-staged packages).
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sync"

	"github.com/vacco-oss/nativestage/internal/platform"
)

// ErrLibraryNotFound means the resource tree holds no library for the host.
var ErrLibraryNotFound = errors.New("native library not found in resources")

// Extractor pulls a native library out of a resource filesystem.
type Extractor struct {
	Resources fs.FS
	Library   string // base name; empty means platform.DefaultLibrary
	OS        string // host-reported OS; empty means runtime.GOOS
	Arch      string // host-reported arch; empty means runtime.GOARCH
	TempDir   string // empty means os.TempDir()

	mu   sync.Mutex
	done bool
	path string
}

// Candidates returns the resource paths tried for this host, in order.
func (x *Extractor) Candidates() ([]string, error) {
	osName, arch := x.host()
	file, err := platform.LibraryFileName(osName, arch, x.Library)
	if err != nil {
		return nil, err
	}

	var out []string
	if key, err := platform.Normalize(osName, arch); err == nil {
		out = append(out, path.Join("native", key.String(), file))
	}
	return append(out, path.Join("native", file)), nil
}

// Extract copies the host's library to a fresh temp file and returns its
// path. The first successful extraction is cached and returned by later
// calls; a failed attempt is retried on the next call.
func (x *Extractor) Extract() (string, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.done {
		return x.path, nil
	}
	path, err := x.extract()
	if err != nil {
		return "", err
	}
	x.path, x.done = path, true
	return path, nil
}

func (x *Extractor) extract() (string, error) {
	candidates, err := x.Candidates()
	if err != nil {
		return "", err
	}

	for _, name := range candidates {
		src, err := x.Resources.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", name, err)
		}
		defer src.Close()
		return writeTemp(src, x.TempDir, path.Base(name))
	}
	return "", fmt.Errorf("%w: tried %v", ErrLibraryNotFound, candidates)
}

func (x *Extractor) host() (string, string) {
	osName, arch := platform.Host()
	if x.OS != "" {
		osName = x.OS
	}
	if x.Arch != "" {
		arch = x.Arch
	}
	return osName, arch
}

// writeTemp copies r into a temp file named like "libminilm*.so" so the
// platform's loader recognises the extension.
func writeTemp(r io.Reader, dir, file string) (string, error) {
	ext := path.Ext(file)
	prefix := file[:len(file)-len(ext)]

	tmp, err := os.CreateTemp(dir, prefix+"*"+ext)
	if err != nil {
		return "", fmt.Errorf("creating temp library file: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("extracting native library: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("extracting native library: %w", err)
	}
	if err := platform.Chmod(tmp.Name(), 0755); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
