package manifest

// Project is the parsed form of nativestage.yaml.
type Project struct {
	Name         string       `yaml:"name" json:"name"`
	Version      string       `yaml:"version" json:"version"`
	Library      string       `yaml:"library,omitempty" json:"library,omitempty"`
	Profile      string       `yaml:"profile,omitempty" json:"profile,omitempty"`
	BuildDir     string       `yaml:"build_dir,omitempty" json:"build_dir,omitempty"`
	ResourcesDir string       `yaml:"resources_dir,omitempty" json:"resources_dir,omitempty"`
	Targets      []string     `yaml:"targets,omitempty" json:"targets,omitempty"`
	Sources      SourceSet    `yaml:"sources,omitempty" json:"sources,omitempty"`
	Fetch        *FetchConfig `yaml:"fetch,omitempty" json:"fetch,omitempty"`
}

// SourceSet selects the files that go into the sources archive. Patterns
// are doublestar globs relative to Root.
type SourceSet struct {
	Root    string   `yaml:"root,omitempty" json:"root,omitempty"`
	Include []string `yaml:"include,omitempty" json:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
}

// FetchConfig points at a mirror holding prebuilt libraries laid out as
// <base_url>/<key>/<file> plus a checksums.txt.
type FetchConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
}

// Profile names.
const (
	ProfileCross = "cross"
	ProfileHost  = "host"
)

// ValidProfiles contains all valid profile values.
var ValidProfiles = []string{ProfileCross, ProfileHost}
