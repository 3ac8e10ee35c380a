// Package platform identifies native build targets. A Key pairs an operating
// system with a CPU architecture ("linux-amd64", "macos-arm64", ...), and the
// resolver maps the names a host reports for itself onto a Key and onto the
// shared-library filename that platform uses.
package platform
