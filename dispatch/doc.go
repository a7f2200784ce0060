// Package dispatch selects the concrete native entry-point family for a
// logical operation and builds the call: array arguments pass through
// the marshal adapters on the way in, opaque objects through the handle
// slot marshalling, and the native outputs are assembled into one
// ordered composite result.
//
// The family axis (index width x value domain) is a closed enum
// resolved at run time from the caller's arrays. The ABI-generation
// axis of the underlying library is a build-time decision carried by
// the backend packages; by the time a Library reaches this package it
// either has a family table or it does not, and a missing table is a
// configuration error.
//
// Composite results follow the declared output-parameter order of each
// operation, status first: Symbolic returns (status, symbolic handle),
// GetLunz returns (status, lnz, unz, nRow, nCol, nzUdiag), a plain
// solve returns the bare status. The order is identical across the
// 32/64-bit and real/complex variants of the same operation.
package dispatch
