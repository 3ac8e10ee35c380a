// Package stage copies prebuilt native libraries into the resource tree that
// packaging consumes.
//
// Two profiles exist. The cross profile stages one library per platform key
// into native/<key>/<file>. The host profile resolves the library filename
// from the host's reported OS and stages build/lib/<file> into native/<file>.
//
// A run checks every source up front and writes nothing when any is missing.
// Each file is copied through a temp file and renamed into place, so re-runs
// overwrite earlier output atomically. After the last copy a staging record
// (run id, sizes, SHA-256) is written under the build directory; downstream
// steps call Verify against it before packaging.
package stage
