package stage

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingArtifact is matched by every *MissingArtifactError.
	ErrMissingArtifact = errors.New("missing native artifact")
	// ErrNotStaged means no staging record exists.
	ErrNotStaged = errors.New("native libraries have not been staged")
	// ErrRecordMismatch means the staged tree no longer matches its record.
	ErrRecordMismatch = errors.New("staged resources do not match staging record")
)

// MissingArtifactError lists every expected build output that was absent.
type MissingArtifactError struct {
	Paths []string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingArtifact, strings.Join(e.Paths, ", "))
}

func (e *MissingArtifactError) Is(target error) bool {
	return target == ErrMissingArtifact
}

// MismatchError describes one staged file that failed verification.
type MismatchError struct {
	Path   string
	Reason string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrRecordMismatch, e.Path, e.Reason)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrRecordMismatch
}
