package stage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Verify loads the staging record for layout and re-hashes every staged
// file. It returns ErrNotStaged if no record exists and a *MismatchError
// for the first file that is missing or altered.
func Verify(layout Layout) (*Record, error) {
	rec, err := LoadRecord(layout.RecordPath())
	if err != nil {
		return nil, err
	}
	if len(rec.Entries) == 0 {
		return nil, &MismatchError{Path: layout.RecordPath(), Reason: "record lists no entries"}
	}

	nativeRoot := layout.NativeRoot()
	for _, e := range rec.Entries {
		path := filepath.Join(nativeRoot, filepath.FromSlash(e.Path))
		sum, size, err := hashFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MismatchError{Path: path, Reason: "file is missing"}
		}
		if err != nil {
			return nil, err
		}
		if size != e.Size || sum != e.SHA256 {
			return nil, &MismatchError{Path: path, Reason: "checksum differs from record"}
		}
	}
	return rec, nil
}

// Clean removes the staged files listed by plan, the staging record and any
// directories under the native root left empty.
func Clean(plan *Plan) error {
	if err := os.Remove(plan.Layout.RecordPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing staging record: %w", err)
	}

	nativeRoot := plan.Layout.NativeRoot()
	for _, e := range plan.Entries {
		if err := os.Remove(e.Dest); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", e.Dest, err)
		}
		// Drop now-empty parents up to and including the native root.
		for dir := filepath.Dir(e.Dest); ; dir = filepath.Dir(dir) {
			if err := os.Remove(dir); err != nil {
				break
			}
			if dir == nativeRoot {
				break
			}
		}
	}
	return nil
}

// VerifyPlan runs Verify and also checks that the record was written for
// plan: same profile and exactly the planned destinations. A record left by
// a run with other targets, library or profile fails with *MismatchError.
func VerifyPlan(plan *Plan) (*Record, error) {
	rec, err := Verify(plan.Layout)
	if err != nil {
		return nil, err
	}
	if rec.Profile != plan.Profile {
		return nil, &MismatchError{
			Path:   plan.Layout.RecordPath(),
			Reason: fmt.Sprintf("staged with profile %s, project uses %s", rec.Profile, plan.Profile),
		}
	}

	recorded := make(map[string]bool, len(rec.Entries))
	for _, e := range rec.Entries {
		recorded[e.Path] = true
	}
	nativeRoot := plan.Layout.NativeRoot()
	for _, e := range plan.Entries {
		rel, err := filepath.Rel(nativeRoot, e.Dest)
		if err != nil {
			return nil, fmt.Errorf("relativizing %s: %w", e.Dest, err)
		}
		if !recorded[filepath.ToSlash(rel)] {
			return nil, &MismatchError{Path: e.Dest, Reason: "not in staging record"}
		}
	}
	if len(rec.Entries) != len(plan.Entries) {
		return nil, &MismatchError{
			Path:   plan.Layout.RecordPath(),
			Reason: fmt.Sprintf("record lists %d libraries, project plans %d", len(rec.Entries), len(plan.Entries)),
		}
	}
	return rec, nil
}
