// Package reflu is a hermetic pure-Go backend implementing the flat
// native ABI. It factors through a dense partial-pivoting LU, which is
// exact for the small systems the test suite and examples use; it is a
// reference and testbed, not a replacement for the native library on
// large sparse problems.
//
// The backend honors the ABI's observable contract: opaque pointer-sized
// tokens for factorization objects, split real/imaginary value arrays
// in the complex families, status codes, and the control/info exchange.
// Row scaling is not performed (Rs is all ones, doRecip false).
package reflu
