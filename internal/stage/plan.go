package stage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vacco-oss/nativestage/internal/platform"
)

// NativeDir is the resource subdirectory holding staged libraries.
const NativeDir = "native"

// Layout locates the build outputs and the resource tree.
type Layout struct {
	BuildDir     string
	ResourcesDir string
	Library      string // base name, "minilm" → libminilm.so
}

// NativeRoot returns <ResourcesDir>/native.
func (l Layout) NativeRoot() string {
	return filepath.Join(l.ResourcesDir, NativeDir)
}

// RecordPath returns where the staging record for this layout lives.
func (l Layout) RecordPath() string {
	return filepath.Join(l.BuildDir, "nativestage", recordFileName)
}

func (l Layout) library() string {
	if l.Library == "" {
		return platform.DefaultLibrary
	}
	return l.Library
}

// Entry maps one build output onto its staged location.
type Entry struct {
	Key    platform.Key
	Source string
	Dest   string
}

// Plan is the ordered list of copies for one staging run.
type Plan struct {
	Profile string
	Layout  Layout
	Entries []Entry
}

// Profile names.
const (
	ProfileCross = "cross"
	ProfileHost  = "host"
)

// PlanCross maps <build>/lib/<key>/<file> to <resources>/native/<key>/<file>
// for every key, in the order given.
func PlanCross(layout Layout, keys []platform.Key) (*Plan, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("cross profile needs at least one target")
	}

	plan := &Plan{Profile: ProfileCross, Layout: layout}
	seen := make(map[platform.Key]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			return nil, fmt.Errorf("duplicate target %s", k)
		}
		seen[k] = true

		file, err := platform.FileName(k, layout.library())
		if err != nil {
			return nil, err
		}
		plan.Entries = append(plan.Entries, Entry{
			Key:    k,
			Source: filepath.Join(layout.BuildDir, "lib", k.String(), file),
			Dest:   filepath.Join(layout.NativeRoot(), k.String(), file),
		})
	}
	return plan, nil
}

// PlanHost resolves the library filename from the reported OS and
// architecture and maps <build>/lib/<file> to <resources>/native/<file>.
// An unsupported OS fails here, before any filesystem access.
func PlanHost(layout Layout, osName, arch string) (*Plan, error) {
	file, err := platform.LibraryFileName(osName, arch, layout.library())
	if err != nil {
		return nil, err
	}

	key, err := platform.Normalize(osName, arch)
	if err != nil {
		// Unknown architectures still stage; the key only labels the record.
		canonOS, _ := platform.NormalizeOS(osName)
		key = platform.Key{OS: canonOS, Arch: strings.ToLower(arch)}
	}

	return &Plan{
		Profile: ProfileHost,
		Layout:  layout,
		Entries: []Entry{{
			Key:    key,
			Source: filepath.Join(layout.BuildDir, "lib", file),
			Dest:   filepath.Join(layout.NativeRoot(), file),
		}},
	}, nil
}
