// Package cli defines the Cobra command tree for the nativestage CLI. Each
// file registers one top-level command (stage, verify, build, ...) with the
// root command. Commands resolve the project and settings, then delegate to
// the internal packages and only handle flag parsing and output.
package cli
