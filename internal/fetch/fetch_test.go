package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacco-oss/nativestage/internal/logger"
	"github.com/vacco-oss/nativestage/internal/platform"
	"github.com/vacco-oss/nativestage/internal/stage"
)

// mirror serves files plus a checksums.txt generated from them. Entries in
// corrupt are served with different bytes than their checksum claims.
func mirror(t *testing.T, files map[string]string, corrupt map[string]bool) *httptest.Server {
	t.Helper()
	var sums strings.Builder
	for name, content := range files {
		h := sha256.Sum256([]byte(content))
		fmt.Fprintf(&sums, "%s  %s\n", hex.EncodeToString(h[:]), name)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		if name == "checksums.txt" {
			fmt.Fprint(w, sums.String())
			return
		}
		content, ok := files[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if corrupt[name] {
			content += "!"
		}
		fmt.Fprint(w, content)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func crossFiles() map[string]string {
	return map[string]string{
		"linux-amd64/libminilm.so":    "elf-x86",
		"macos-amd64/libminilm.dylib": "macho-x86",
		"linux-arm64/libminilm.so":    "elf-arm",
		"macos-arm64/libminilm.dylib": "macho-arm",
	}
}

func TestFetch_AllTargets(t *testing.T) {
	srv := mirror(t, crossFiles(), nil)
	layout := stage.Layout{BuildDir: t.TempDir(), Library: "minilm"}

	f := New(srv.URL+"/", WithHTTPClient(srv.Client()), WithLogger(logger.Discard()))
	written, err := f.Fetch(context.Background(), layout, platform.CrossTargets())
	require.NoError(t, err)
	require.Len(t, written, 4)

	data, err := os.ReadFile(filepath.Join(layout.BuildDir, "lib", "macos-arm64", "libminilm.dylib"))
	require.NoError(t, err)
	assert.Equal(t, "macho-arm", string(data))
}

func TestFetch_ChecksumMismatch(t *testing.T) {
	srv := mirror(t, crossFiles(), map[string]bool{"linux-arm64/libminilm.so": true})
	layout := stage.Layout{BuildDir: t.TempDir()}

	f := New(srv.URL, WithHTTPClient(srv.Client()), WithLogger(logger.Discard()))
	_, err := f.Fetch(context.Background(), layout, platform.CrossTargets())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")

	dest := filepath.Join(layout.BuildDir, "lib", "linux-arm64", "libminilm.so")
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "corrupt download must not be left in place")

	entries, err := os.ReadDir(filepath.Dir(dest))
	require.NoError(t, err)
	assert.Empty(t, entries, "temp files must be cleaned up")
}

func TestFetch_MissingChecksumEntry(t *testing.T) {
	files := crossFiles()
	delete(files, "macos-amd64/libminilm.dylib")
	srv := mirror(t, files, nil)

	f := New(srv.URL, WithHTTPClient(srv.Client()), WithLogger(logger.Discard()))
	_, err := f.Fetch(context.Background(), stage.Layout{BuildDir: t.TempDir()}, platform.CrossTargets())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "macos-amd64/libminilm.dylib")
}

func TestFetch_MirrorDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := New(srv.URL, WithHTTPClient(srv.Client()), WithLogger(logger.Discard()))
	_, err := f.Fetch(context.Background(), stage.Layout{BuildDir: t.TempDir()}, platform.CrossTargets())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
