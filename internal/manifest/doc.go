// Package manifest handles parsing and validation of the per-project staging
// manifest (nativestage.yaml). The manifest names the native library, the
// staging profile, the build and resource directories, the cross targets and
// the source set packaged next to the staged libraries. Files are validated
// against an embedded JSON Schema and then checked semantically (semver
// version, known platform keys).
package manifest
