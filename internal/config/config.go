package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/vacco-oss/nativestage/internal/branding"
	"github.com/vacco-oss/nativestage/internal/manifest"
	"github.com/vacco-oss/nativestage/internal/platform"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys. Nested keys map to env vars with "_" (host.os → NATIVESTAGE_HOST_OS).
const (
	KeyProfile      = "profile"
	KeyBuildDir     = "build_dir"
	KeyResourcesDir = "resources_dir"
	KeyHostOS       = "host.os"
	KeyHostArch     = "host.arch"
	KeyFetchURL     = "fetch.base_url"
	KeyLogLevel     = "log_level"
	KeyLogFormat    = "log_format"
)

// Dir returns the path to the user config directory (~/.nativestage/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the user config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// New returns a viper instance reading path (if it exists) and the
// NATIVESTAGE_* environment. An empty path means FilePath().
func New(path string) *viper.Viper {
	if path == "" {
		path = FilePath()
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	// Ignore error if config file doesn't exist yet.
	_ = v.ReadInConfig()
	return v
}

// Get returns a config value by key. Returns empty string if not set.
func Get(v *viper.Viper, key string) string {
	return v.GetString(key)
}

// Set writes a key-value pair to the config file backing v.
func Set(v *viper.Viper, key, value string) error {
	configFile := v.ConfigFileUsed()
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v.Set(key, value)

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Apply overlays every non-empty setting from v onto p.
func Apply(v *viper.Viper, p *manifest.Project) {
	if s := v.GetString(KeyProfile); s != "" {
		p.Profile = s
	}
	if s := v.GetString(KeyBuildDir); s != "" {
		p.BuildDir = s
	}
	if s := v.GetString(KeyResourcesDir); s != "" {
		p.ResourcesDir = s
	}
	if s := v.GetString(KeyFetchURL); s != "" {
		p.Fetch = &manifest.FetchConfig{BaseURL: s}
	}
}

// HostPlatform returns the OS and architecture the build environment
// reports, preferring configured overrides over the runtime's own values.
func HostPlatform(v *viper.Viper) (osName, arch string) {
	osName, arch = platform.Host()
	if s := v.GetString(KeyHostOS); s != "" {
		osName = s
	}
	if s := v.GetString(KeyHostArch); s != "" {
		arch = s
	}
	return osName, arch
}
