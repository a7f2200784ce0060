// Package sparse provides the compressed-column matrix representation
// consumed by the solver driver, a triplet builder for incremental
// assembly, and a Matrix Market reader.
//
// A Matrix is stored in compressed sparse column (CSC) form: Ap holds
// the column pointers (length NCol+1, Ap[0] == 0, non-decreasing), Ai
// the row indices of each column's entries, and Ax the values. Complex
// matrices carry the imaginary parts in a parallel Az slice, matching
// the split layout the native libraries expect.
//
// The index type parameter selects between the 32-bit and 64-bit
// variant families. A Matrix[int32] routes to the di/zi routines, a
// Matrix[int64] to dl/zl.
package sparse
