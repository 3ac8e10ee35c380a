// Package fetch downloads prebuilt native libraries from a mirror into the
// build directory, where the stager expects them. The mirror serves
// <base>/<key>/<file> for every platform key plus a checksums.txt listing
// "sha256  <key>/<file>" per line; every download is verified before it
// replaces an existing build output.
package fetch
