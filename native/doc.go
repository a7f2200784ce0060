// Package native declares the flat UMFPACK entry-point surface shared
// by every backend.
//
// The declaration mirrors the C API exactly: raw typed buffers in
// compressed-column layout, fixed-length control/info vectors, integer
// status returns, and pointer-sized opaque object slots that the
// routines fill in or null out. One generic Routines table exists per
// index width; a Library bundles the four families (di, dl, zi, zl).
// A nil family table means that variant was not compiled in.
//
// Backends live in subpackages: reflu (pure Go reference), umfcgo
// (cgo to an installed libumfpack) and wasmlib (wazero-hosted wasm
// build of the solver).
package native
