package platform

import (
	"errors"
	"testing"
)

func TestLibraryFileName(t *testing.T) {
	tests := []struct {
		os   string
		arch string
		want string
	}{
		{"linux", "amd64", "libminilm.so"},
		{"Linux", "aarch64", "libminilm.so"},
		{"mac os x", "aarch64", "libminilm.dylib"},
		{"Mac OS X", "x86_64", "libminilm.dylib"},
		{"darwin", "arm64", "libminilm.dylib"},
	}

	for _, tt := range tests {
		got, err := LibraryFileName(tt.os, tt.arch, DefaultLibrary)
		if err != nil {
			t.Errorf("LibraryFileName(%q, %q) error: %v", tt.os, tt.arch, err)
			continue
		}
		if got != tt.want {
			t.Errorf("LibraryFileName(%q, %q) = %q, want %q", tt.os, tt.arch, got, tt.want)
		}
	}
}

func TestLibraryFileName_Unsupported(t *testing.T) {
	_, err := LibraryFileName("windows", "amd64", DefaultLibrary)
	if err == nil {
		t.Fatal("expected error for windows")
	}
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("error %v does not match ErrUnsupportedPlatform", err)
	}

	var upe *UnsupportedPlatformError
	if !errors.As(err, &upe) {
		t.Fatalf("error %T is not *UnsupportedPlatformError", err)
	}
	if upe.OS != "windows" || upe.Arch != "amd64" {
		t.Errorf("diagnostics = (%q, %q), want raw values", upe.OS, upe.Arch)
	}
	if want := "unsupported platform: windows (amd64)"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestLibraryFileName_EmptyBaseUsesDefault(t *testing.T) {
	got, err := LibraryFileName("linux", "arm64", "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "libminilm.so" {
		t.Errorf("got %q", got)
	}
}

func TestFileName_CustomBase(t *testing.T) {
	got, err := FileName(Key{OS: OSMacOS, Arch: ArchARM64}, "tok")
	if err != nil {
		t.Fatal(err)
	}
	if got != "libtok.dylib" {
		t.Errorf("got %q", got)
	}
}
