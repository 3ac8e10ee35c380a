package stage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Stager executes staging plans.
type Stager struct {
	log     log.FieldLogger
	version string
	now     func() time.Time
	newID   func() string
}

// Option configures a Stager.
type Option func(*Stager)

// WithLogger sets the logger used for progress output.
func WithLogger(l log.FieldLogger) Option {
	return func(s *Stager) {
		s.log = l
	}
}

// WithVersion records the project version in the staging record.
func WithVersion(v string) Option {
	return func(s *Stager) {
		s.version = v
	}
}

// WithClock overrides the time source (useful for testing).
func WithClock(now func() time.Time) Option {
	return func(s *Stager) {
		s.now = now
	}
}

// New creates a Stager with the given options.
func New(opts ...Option) *Stager {
	s := &Stager{
		log:   log.StandardLogger(),
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run stages every entry of plan and returns the written record.
//
// Any previous record is removed first, so an interrupted or failed run
// never leaves a tree that verifies as complete. If any source is missing
// the run fails with *MissingArtifactError before touching the resource tree.
func (s *Stager) Run(ctx context.Context, plan *Plan) (*Record, error) {
	if plan == nil || len(plan.Entries) == 0 {
		return nil, fmt.Errorf("empty staging plan")
	}

	recordPath := plan.Layout.RecordPath()
	if err := os.Remove(recordPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("removing stale staging record: %w", err)
	}

	if err := CheckSources(plan); err != nil {
		return nil, err
	}

	rec := &Record{
		RunID:    s.newID(),
		Profile:  plan.Profile,
		Version:  s.version,
		StagedAt: s.now().UTC(),
	}

	nativeRoot := plan.Layout.NativeRoot()
	for _, e := range plan.Entries {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("staging interrupted: %w", err)
		}

		if err := copyFile(e.Source, e.Dest); err != nil {
			return nil, fmt.Errorf("copying %s to %s: %w", e.Source, e.Dest, err)
		}

		sum, size, err := hashFile(e.Dest)
		if err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(nativeRoot, e.Dest)
		if err != nil {
			return nil, fmt.Errorf("relativizing %s: %w", e.Dest, err)
		}

		rec.Entries = append(rec.Entries, RecordEntry{
			Key:    e.Key.String(),
			Path:   filepath.ToSlash(rel),
			Size:   size,
			SHA256: sum,
		})
		s.log.WithFields(log.Fields{
			"key":  e.Key.String(),
			"dest": e.Dest,
			"size": size,
		}).Debug("staged native library")
	}

	if err := SaveRecord(recordPath, rec); err != nil {
		return nil, fmt.Errorf("writing staging record: %w", err)
	}

	s.log.WithFields(log.Fields{
		"profile": plan.Profile,
		"count":   len(rec.Entries),
		"run_id":  rec.RunID,
	}).Info("native libraries staged")
	return rec, nil
}

// CheckSources verifies every source exists and is a regular file, and
// reports all missing paths together.
func CheckSources(plan *Plan) error {
	var missing []string
	for _, e := range plan.Entries {
		info, err := os.Stat(e.Source)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				missing = append(missing, e.Source)
				continue
			}
			return fmt.Errorf("checking %s: %w", e.Source, err)
		}
		if !info.Mode().IsRegular() {
			missing = append(missing, e.Source)
		}
	}
	if len(missing) > 0 {
		return &MissingArtifactError{Paths: missing}
	}
	return nil
}
