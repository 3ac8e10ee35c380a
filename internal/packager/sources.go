package packager

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	log "github.com/sirupsen/logrus"
)

// archiveEpoch is stamped on every archive entry so identical inputs give
// identical archives.
var archiveEpoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// SourcesArchive verifies staging and writes a tar.gz holding the files
// selected by the source set plus every staged native library.
func (p *Packager) SourcesArchive(ctx context.Context) (string, error) {
	rec, err := p.requireStaged()
	if err != nil {
		return "", err
	}

	files, err := p.selectSources()
	if err != nil {
		return "", err
	}

	// Staged libraries always ship, even when the resource tree lies
	// outside the source root or is excluded by a pattern.
	nativeRoot := p.Layout.NativeRoot()
	for _, e := range rec.Entries {
		abs := filepath.Join(nativeRoot, filepath.FromSlash(e.Path))
		files[p.archiveName(abs)] = abs
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	out := p.SourcesArchivePath()
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Dir(out), err)
	}
	if err := writeTarGz(ctx, out, names, files); err != nil {
		os.Remove(out)
		return "", err
	}

	p.Log.WithFields(log.Fields{"archive": out, "files": len(names)}).Info("sources archive written")
	return out, nil
}

// selectSources returns archive name → absolute path for every regular
// file under the source root matching an include and no exclude pattern.
func (p *Packager) selectSources() (map[string]string, error) {
	root := p.Sources.Root
	fsys := os.DirFS(root)
	files := make(map[string]string)

	for _, pattern := range p.Sources.Include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding include pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			excluded, err := p.excluded(m)
			if err != nil {
				return nil, err
			}
			if excluded {
				continue
			}
			files[m] = filepath.Join(root, filepath.FromSlash(m))
		}
	}
	return files, nil
}

func (p *Packager) excluded(name string) (bool, error) {
	for _, pattern := range p.Sources.Exclude {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// archiveName maps an absolute path to its name inside the archive: relative
// to the source root when inside it, otherwise under resources/.
func (p *Packager) archiveName(abs string) string {
	if rel, err := filepath.Rel(p.Sources.Root, abs); err == nil && !outside(rel) {
		return filepath.ToSlash(rel)
	}
	rel, err := filepath.Rel(p.Layout.ResourcesDir, abs)
	if err != nil {
		return path.Join("resources", filepath.Base(abs))
	}
	return path.Join("resources", filepath.ToSlash(rel))
}

// outside reports whether a filepath.Rel result escapes its base.
func outside(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func writeTarGz(ctx context.Context, out string, names []string, files map[string]string) error {
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	gz.ModTime = archiveEpoch
	tw := tar.NewWriter(gz)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := addFile(tw, name, files[name]); err != nil {
			return fmt.Errorf("adding %s to archive: %w", name, err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finishing tar stream: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("finishing gzip stream: %w", err)
	}
	return f.Close()
}

func addFile(tw *tar.Writer, name, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", src, fs.ErrInvalid)
	}

	hdr := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Mode:     int64(info.Mode().Perm()),
		Size:     info.Size(),
		ModTime:  archiveEpoch,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err = io.Copy(tw, in)
	return err
}
