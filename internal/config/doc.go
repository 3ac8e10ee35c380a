// Package config manages nativestage settings. User-level defaults live at
// ~/.nativestage/config.yaml and can be overridden per invocation by
// NATIVESTAGE_* environment variables or command-line flags; the result is
// overlaid on the project's nativestage.yaml.
package config
