// Package handle gives the native library's opaque factorization
// pointers a typed, lifecycle-checked representation.
//
// A Handle carries its kind (symbolic or numeric factorization), its
// lifecycle state and the pointer-sized native token. The two
// marshalling modes of the boundary are Slot (produce: a zeroed slot
// the native call fills with a new object) and Consume (consume-and-
// replace: an existing handle whose slot the native call may overwrite
// or null, as the free routines do).
//
// Kind confusion and reuse after free are rejected at the boundary.
// That check covers handles that went through this package; a handle
// freed behind the library's back remains a caller precondition
// violation the native library does not survive.
package handle
