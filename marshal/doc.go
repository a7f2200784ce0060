// Package marshal adapts caller-supplied array values into the exact
// memory shape the native routines require and assembles native output
// parameters into one ordered composite result.
//
// Adapt accepts raw Go slices and pdevine/tensor values. A contiguous
// value of the requested element type aliases its storage directly
// (zero copies); anything else is materialized into a contiguous,
// correctly typed copy whose lifetime is the one call. In-place
// arguments must already alias mutable contiguous storage of the right
// element type; non-conforming in-place arguments are rejected rather
// than copied and written back.
//
// AdaptControl and AdaptInfo are the fixed-length specializations for
// the native parameter and diagnostic vectors. They fail with a
// length (value) error kind, distinct from the shape errors of Adapt,
// so callers can tell "not an array" apart from "array of the wrong
// length".
package marshal
