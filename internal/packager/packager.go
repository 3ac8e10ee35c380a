package packager

import (
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/vacco-oss/nativestage/internal/manifest"
	"github.com/vacco-oss/nativestage/internal/stage"
)

// Packager assembles packages from a staged project.
type Packager struct {
	Layout  stage.Layout
	Name    string
	Version string
	Sources manifest.SourceSet
	Log     log.FieldLogger
}

// New builds a Packager from a project manifest. projectDir anchors the
// manifest's relative paths.
func New(projectDir string, p *manifest.Project, l log.FieldLogger) *Packager {
	if l == nil {
		l = log.StandardLogger()
	}
	src := p.Sources
	src.Root = resolve(projectDir, src.Root)
	return &Packager{
		Layout: stage.Layout{
			BuildDir:     resolve(projectDir, p.BuildDir),
			ResourcesDir: resolve(projectDir, p.ResourcesDir),
			Library:      p.Library,
		},
		Name:    p.Name,
		Version: p.Version,
		Sources: src,
		Log:     l,
	}
}

// ResourcesOutputDir is where ProcessResources mirrors the resource tree.
func (p *Packager) ResourcesOutputDir() string {
	return filepath.Join(p.Layout.BuildDir, "resources", "main")
}

// SourcesArchivePath is where SourcesArchive writes its output.
func (p *Packager) SourcesArchivePath() string {
	return filepath.Join(p.Layout.BuildDir, "libs", fmt.Sprintf("%s-%s-sources.tar.gz", p.Name, p.Version))
}

func (p *Packager) requireStaged() (*stage.Record, error) {
	rec, err := stage.Verify(p.Layout)
	if err != nil {
		return nil, fmt.Errorf("native staging incomplete: %w", err)
	}
	return rec, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
