// Package umf is the high-level solver driver. A Context owns the
// control and info vectors, the symbolic and numeric factorizations,
// and the solve entry points for one matrix at a time.
//
// The zero-dependency reference backend is used unless the umfpack
// build tag links the native library. A Context is parameterized by the
// index type, which selects the 32-bit or 64-bit routine family; the
// real or complex family is chosen per matrix.
//
//	ctx := umf.New[int32]()
//	defer ctx.Free()
//	x, err := ctx.LinSolve(native.SysA, m, b)
//
// Factorizations are opaque native objects. The Context frees them
// exactly once, either explicitly or through Free, and tracks them in a
// handle table so leaks are observable.
package umf
