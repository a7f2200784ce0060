// Package umfbridge provides a Go marshalling bridge to the UMFPACK
// sparse direct solver.
//
// UMFPACK is exposed as a flat C-style API operating on raw buffers and
// opaque factorization objects. This library is the boundary between
// Go array values and that API: it validates and adapts caller-supplied
// arrays into the exact memory shape the native routines require,
// manages the create/use/free lifecycle of opaque factorization
// handles, assembles multiple native output parameters into a single
// ordered result, and dispatches between the four structurally parallel
// entry-point families (32/64-bit indices x real/complex values).
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	umfbridge/           Root package with guest Memory and Allocator interfaces
//	├── umf/             High-level driver: factorize, solve, LU extraction
//	├── dispatch/        Variant selection and per-operation call wrappers
//	├── marshal/         Array adaptation and composite result assembly
//	├── handle/          Typed opaque handles with lifecycle tracking
//	├── sparse/          Compressed-column/row matrix and triplet types
//	├── native/          Flat ABI declaration shared by all backends
//	│   ├── reflu/       Hermetic pure-Go reference backend
//	│   ├── umfcgo/      cgo binding to an installed libumfpack
//	│   └── wasmlib/     wazero-hosted wasm build of the solver
//	└── errors/          Structured error types for boundary failures
//
// # Quick Start
//
// Factor a matrix once and solve against several right-hand sides:
//
//	m := &sparse.Matrix[int32]{
//	    NRow: 3, NCol: 3,
//	    Ap: []int32{0, 2, 3, 5},
//	    Ai: []int32{0, 2, 1, 0, 2},
//	    Ax: []float64{4, -1, 4, -1, 4},
//	}
//
//	ctx := umf.New[int32]()
//	defer ctx.Free()
//
//	if err := ctx.Numeric(m); err != nil {
//	    log.Fatal(err)
//	}
//	x, err := ctx.Solve(native.SysA, m, []float64{1, 1, 1})
//
// # Variants
//
// The same logical operations exist in four native families: di
// (real, 32-bit indices), dl (real, 64-bit), zi (complex, 32-bit) and
// zl (complex, 64-bit). The family is selected at run time from the
// index width and value domain of the caller's arrays. Which symbols
// are linked is a build-time decision: the default build carries the
// pure-Go reference backend, the umfpack build tag links the installed
// native library, and the umfpack44 tag selects the legacy 4.4 header
// generation.
//
// # Handle Ownership
//
// Symbolic and numeric factorizations are library-owned opaque objects.
// Every produced handle must be freed exactly once; freeing an
// already-freed handle is a precondition violation the native library
// does not survive. The handle package makes reuse after free a checked
// boundary error instead of native undefined behavior.
//
// # Thread Safety
//
// All calls are synchronous and run on the caller's stack. An umf
// Context and the handles it owns are NOT safe for concurrent use; any
// concurrent read-only guarantee for a live factorization would have to
// come from the native library itself and is not assumed here.
package umfbridge
