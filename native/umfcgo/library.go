//go:build umfpack

package umfcgo

/*
#cgo CFLAGS: -I/usr/include/suitesparse
#cgo LDFLAGS: -lumfpack -lamd
#include <umfpack.h>
*/
import "C"

import (
	"unsafe"

	"github.com/sparsekit/umfbridge/native"
)

// Library returns the linked UMFPACK with all four routine families.
func Library() *native.Library {
	return &native.Library{
		DI:   diRoutines(),
		DL:   dlRoutines(),
		ZI:   ziRoutines(),
		ZL:   zlRoutines(),
		Name: "umfpack",
	}
}

// Pointer helpers. UMFPACK tolerates null for every optional array, so
// empty slices pass through as null rather than a pointer past a
// zero-length allocation.

func intPtr(s []int32) *C.int {
	if len(s) == 0 {
		return nil
	}
	return (*C.int)(unsafe.Pointer(&s[0]))
}

func longPtr(s []int64) *C.SuiteSparse_long {
	if len(s) == 0 {
		return nil
	}
	return (*C.SuiteSparse_long)(unsafe.Pointer(&s[0]))
}

func dblPtr(s []float64) *C.double {
	if len(s) == 0 {
		return nil
	}
	return (*C.double)(unsafe.Pointer(&s[0]))
}

// objIn converts an opaque token back to the C pointer it wraps.
func objIn(obj native.Object) unsafe.Pointer {
	return unsafe.Pointer(uintptr(obj))
}
