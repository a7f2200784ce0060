//go:build umfpack

// Package umfcgo links the native UMFPACK library through cgo. It is
// only compiled under the umfpack build tag; without it the pure Go
// reference backend serves as the default.
//
// The additional umfpack44 tag targets the 4.4-era headers, which do
// not declare the free routines. Those declarations are supplied
// manually so the same call surface builds against either header
// generation.
package umfcgo
