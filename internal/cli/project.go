package cli

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vacco-oss/nativestage/internal/branding"
	"github.com/vacco-oss/nativestage/internal/config"
	"github.com/vacco-oss/nativestage/internal/manifest"
	"github.com/vacco-oss/nativestage/internal/stage"
)

// project bundles the resolved manifest with its directory.
type project struct {
	dir      string
	manifest *manifest.Project
}

// loadProject reads the project manifest (or defaults) and overlays user
// settings, env vars and flags.
func loadProject() (*project, error) {
	dir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("resolving project directory: %w", err)
	}

	path := manifestPath
	if path == "" {
		path = filepath.Join(dir, branding.ProjectFile())
	}

	p, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	config.Apply(settings, p)

	if !slices.Contains(manifest.ValidProfiles, p.Profile) {
		return nil, fmt.Errorf("unknown profile %q (expected one of %s)", p.Profile, strings.Join(manifest.ValidProfiles, ", "))
	}
	return &project{dir: dir, manifest: p}, nil
}

func (p *project) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.dir, path)
}

func (p *project) layout() stage.Layout {
	return stage.Layout{
		BuildDir:     p.abs(p.manifest.BuildDir),
		ResourcesDir: p.abs(p.manifest.ResourcesDir),
		Library:      p.manifest.Library,
	}
}

// plan builds the staging plan for the project's profile.
func (p *project) plan() (*stage.Plan, error) {
	if p.manifest.Profile == manifest.ProfileHost {
		osName, arch := config.HostPlatform(settings)
		return stage.PlanHost(p.layout(), osName, arch)
	}

	keys, err := p.manifest.TargetKeys()
	if err != nil {
		return nil, err
	}
	return stage.PlanCross(p.layout(), keys)
}

// rel shortens path for display, relative to the project directory.
func (p *project) rel(path string) string {
	if r, err := filepath.Rel(p.dir, path); err == nil {
		return r
	}
	return path
}
