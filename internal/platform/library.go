package platform

import (
	"errors"
	"fmt"
)

// DefaultLibrary is the base name of the native library ("minilm" → libminilm.so).
const DefaultLibrary = "minilm"

// ErrUnsupportedPlatform is matched by every *UnsupportedPlatformError.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// UnsupportedPlatformError reports a host whose OS has no known library
// filename mapping. OS and Arch carry the raw reported values.
type UnsupportedPlatformError struct {
	OS   string
	Arch string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: %s (%s)", e.OS, e.Arch)
}

// Is lets errors.Is match ErrUnsupportedPlatform.
func (e *UnsupportedPlatformError) Is(target error) bool {
	return target == ErrUnsupportedPlatform
}

// LibraryExt returns the shared-library extension (with dot) for a canonical OS.
func LibraryExt(canonOS string) (string, error) {
	switch canonOS {
	case OSMacOS:
		return ".dylib", nil
	case OSLinux:
		return ".so", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, canonOS)
	}
}

// FileName returns the library filename for base on platform k.
func FileName(k Key, base string) (string, error) {
	ext, err := LibraryExt(k.OS)
	if err != nil {
		return "", err
	}
	return "lib" + base + ext, nil
}

// LibraryFileName resolves the library filename from host-reported names.
// The OS name is lowercased: anything containing "mac" or "darwin" uses
// .dylib, anything containing "linux" uses .so. Every other OS fails with
// *UnsupportedPlatformError. The architecture is carried for diagnostics only.
func LibraryFileName(osName, arch, base string) (string, error) {
	canonOS, err := NormalizeOS(osName)
	if err != nil {
		return "", &UnsupportedPlatformError{OS: osName, Arch: arch}
	}
	if base == "" {
		base = DefaultLibrary
	}
	return FileName(Key{OS: canonOS, Arch: arch}, base)
}
