package manifest

import "github.com/vacco-oss/nativestage/internal/platform"

// Default returns the manifest used when a project has no nativestage.yaml.
// It follows the conventional Gradle layout (build/, src/main/resources).
func Default() *Project {
	p := &Project{}
	p.ApplyDefaults()
	return p
}

// ApplyDefaults fills every unset field with its default value.
func (p *Project) ApplyDefaults() {
	if p.Name == "" {
		p.Name = platform.DefaultLibrary
	}
	if p.Version == "" {
		p.Version = "0.0.0"
	}
	if p.Library == "" {
		p.Library = platform.DefaultLibrary
	}
	if p.Profile == "" {
		p.Profile = ProfileCross
	}
	if p.BuildDir == "" {
		p.BuildDir = "build"
	}
	if p.ResourcesDir == "" {
		p.ResourcesDir = "src/main/resources"
	}
	if len(p.Targets) == 0 {
		for _, k := range platform.CrossTargets() {
			p.Targets = append(p.Targets, k.String())
		}
	}
	if p.Sources.Root == "" {
		p.Sources.Root = "."
	}
	if len(p.Sources.Include) == 0 {
		p.Sources.Include = []string{"src/**"}
	}
	if len(p.Sources.Exclude) == 0 {
		p.Sources.Exclude = []string{"**/.DS_Store", "**/.git/**", "build/**"}
	}
}

// TargetKeys parses Targets into platform keys.
func (p *Project) TargetKeys() ([]platform.Key, error) {
	keys := make([]platform.Key, 0, len(p.Targets))
	for _, t := range p.Targets {
		k, err := platform.ParseKey(t)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}
