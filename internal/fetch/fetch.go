package fetch

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vacco-oss/nativestage/internal/branding"
	"github.com/vacco-oss/nativestage/internal/platform"
	"github.com/vacco-oss/nativestage/internal/stage"
)

const checksumsFile = "checksums.txt"

// Fetcher downloads native libraries from a mirror.
type Fetcher struct {
	baseURL    string
	httpClient *http.Client
	log        log.FieldLogger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// WithLogger sets the logger used for progress output.
func WithLogger(l log.FieldLogger) Option {
	return func(f *Fetcher) {
		f.log = l
	}
}

// New creates a Fetcher for the mirror at baseURL.
func New(baseURL string, opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		log:        log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the library for every key into
// <layout.BuildDir>/lib/<key>/<file> and returns the written paths.
func (f *Fetcher) Fetch(ctx context.Context, layout stage.Layout, keys []platform.Key) ([]string, error) {
	sums, err := f.checksums(ctx)
	if err != nil {
		return nil, err
	}

	library := layout.Library
	if library == "" {
		library = platform.DefaultLibrary
	}

	var written []string
	for _, k := range keys {
		file, err := platform.FileName(k, library)
		if err != nil {
			return nil, err
		}
		rel := k.String() + "/" + file
		want, ok := sums[rel]
		if !ok {
			return nil, fmt.Errorf("no checksum found for %s in %s", rel, checksumsFile)
		}

		dest := filepath.Join(layout.BuildDir, "lib", k.String(), file)
		if err := f.download(ctx, f.baseURL+"/"+rel, dest, want); err != nil {
			return nil, fmt.Errorf("fetching %s: %w", rel, err)
		}
		f.log.WithFields(log.Fields{"key": k.String(), "dest": dest}).Info("fetched native library")
		written = append(written, dest)
	}
	return written, nil
}

// checksums downloads and parses checksums.txt into path → hex digest.
func (f *Fetcher) checksums(ctx context.Context) (map[string]string, error) {
	body, err := f.get(ctx, f.baseURL+"/"+checksumsFile)
	if err != nil {
		return nil, fmt.Errorf("downloading checksums: %w", err)
	}
	defer body.Close()

	sums := make(map[string]string)
	sc := bufio.NewScanner(body)
	for sc.Scan() {
		parts := strings.Fields(sc.Text())
		if len(parts) == 2 {
			sums[strings.TrimPrefix(parts[1], "*")] = strings.ToLower(parts[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading checksums: %w", err)
	}
	return sums, nil
}

// download streams url into a temp file next to dest, verifies the SHA-256
// and renames it over dest.
func (f *Fetcher) download(ctx context.Context, url, dest, wantSum string) error {
	body, err := f.get(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return fmt.Errorf("creating download file: %w", err)
	}
	tmpPath := tmp.Name()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmp, h), body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if got := hex.EncodeToString(h.Sum(nil)); got != wantSum {
		os.Remove(tmpPath)
		return fmt.Errorf("checksum mismatch: expected %s, got %s", wantSum, got)
	}
	if err := platform.Chmod(tmpPath, 0755); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func (f *Fetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", branding.CLIName()+"-fetch")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s returned status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}
