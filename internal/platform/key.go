package platform

import (
	"fmt"
	"strings"
)

// Canonical operating system names used in Keys.
const (
	OSLinux = "linux"
	OSMacOS = "macos"
)

// Canonical architecture names used in Keys.
const (
	ArchAMD64 = "amd64"
	ArchARM64 = "arm64"
)

// Key identifies a native build target by operating system and CPU architecture.
type Key struct {
	OS   string
	Arch string
}

// String returns the "<os>-<arch>" form used in directory names.
func (k Key) String() string {
	return k.OS + "-" + k.Arch
}

// MarshalText implements encoding.TextMarshaler so keys round-trip through YAML and JSON.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// crossTargets is the fixed set produced by the cross-compilation step, in
// declaration order.
var crossTargets = []Key{
	{OS: OSLinux, Arch: ArchAMD64},
	{OS: OSMacOS, Arch: ArchAMD64},
	{OS: OSLinux, Arch: ArchARM64},
	{OS: OSMacOS, Arch: ArchARM64},
}

// CrossTargets returns the platforms the cross-compiled profile stages.
func CrossTargets() []Key {
	out := make([]Key, len(crossTargets))
	copy(out, crossTargets)
	return out
}

// IsCrossTarget reports whether k is one of CrossTargets.
func IsCrossTarget(k Key) bool {
	for _, t := range crossTargets {
		if t == k {
			return true
		}
	}
	return false
}

// ParseKey parses a canonical "<os>-<arch>" string. Only canonical names are
// accepted here; use Normalize for host-reported names.
func ParseKey(s string) (Key, error) {
	osName, arch, ok := strings.Cut(s, "-")
	if !ok || osName == "" || arch == "" {
		return Key{}, fmt.Errorf("invalid platform key %q (expected <os>-<arch>)", s)
	}
	k := Key{OS: osName, Arch: arch}
	if !IsCrossTarget(k) {
		return Key{}, fmt.Errorf("unknown platform key %q", s)
	}
	return k, nil
}

// Normalize maps host-reported OS and architecture names onto a Key.
// OS names are matched case-insensitively by substring ("Mac OS X" and
// "darwin" both become "macos"); architectures accept the common aliases
// (x86_64, aarch64, ...).
func Normalize(osName, arch string) (Key, error) {
	canonOS, err := NormalizeOS(osName)
	if err != nil {
		return Key{}, &UnsupportedPlatformError{OS: osName, Arch: arch}
	}
	canonArch, ok := archAliases[strings.ToLower(strings.TrimSpace(arch))]
	if !ok {
		return Key{}, &UnsupportedPlatformError{OS: osName, Arch: arch}
	}
	return Key{OS: canonOS, Arch: canonArch}, nil
}

var archAliases = map[string]string{
	"amd64":   ArchAMD64,
	"x86_64":  ArchAMD64,
	"x86-64":  ArchAMD64,
	"x64":     ArchAMD64,
	"arm64":   ArchARM64,
	"aarch64": ArchARM64,
}

// NormalizeOS maps a host-reported OS name onto OSLinux or OSMacOS.
func NormalizeOS(osName string) (string, error) {
	lower := strings.ToLower(osName)
	switch {
	case strings.Contains(lower, "mac") || strings.Contains(lower, "darwin"):
		return OSMacOS, nil
	case strings.Contains(lower, "linux"):
		return OSLinux, nil
	default:
		return "", ErrUnsupportedPlatform
	}
}
