package stage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const recordFileName = "staging.json"

// Record proves that a staging run completed. It lives under the build
// directory so that the resource tree stays byte-identical across runs.
type Record struct {
	RunID    string        `json:"run_id"`
	Profile  string        `json:"profile"`
	Version  string        `json:"version,omitempty"`
	StagedAt time.Time     `json:"staged_at"`
	Entries  []RecordEntry `json:"entries"`
}

// RecordEntry describes one staged file. Path is slash-separated and
// relative to the native resource root.
type RecordEntry struct {
	Key    string `json:"key"`
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

// LoadRecord reads the staging record at path. A missing file yields ErrNotStaged.
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotStaged
	}
	if err != nil {
		return nil, fmt.Errorf("reading staging record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing staging record %s: %w", path, err)
	}
	return &rec, nil
}

// SaveRecord writes rec to path, creating parent directories.
func SaveRecord(path string, rec *Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating record directory: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling staging record: %w", err)
	}
	return writeAtomic(path, append(data, '\n'), 0644)
}

// hashFile returns the hex SHA-256 and size of the file at path.
func hashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, fmt.Errorf("computing checksum of %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}
