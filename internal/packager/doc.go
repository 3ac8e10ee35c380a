// Package packager implements the build steps that consume staged native
// libraries: mirroring the resource tree into the build output and writing
// a reproducible sources archive. Both refuse to run unless the staging
// record verifies.
package packager
