//go:build umfpack && !umfpack44

package umfcgo

/*
#cgo CFLAGS: -I/usr/include/suitesparse
#include <umfpack.h>
*/
import "C"

import (
	"unsafe"

	"github.com/sparsekit/umfbridge/native"
)

// The 5.x headers declare the free routines, call them directly. The
// native library nulls the slot after releasing the object.

func freeSymbolicDI(slot *native.Object) {
	p := unsafe.Pointer(uintptr(*slot))
	C.umfpack_di_free_symbolic(&p)
	*slot = native.Object(uintptr(p))
}

func freeNumericDI(slot *native.Object) {
	p := unsafe.Pointer(uintptr(*slot))
	C.umfpack_di_free_numeric(&p)
	*slot = native.Object(uintptr(p))
}

func freeSymbolicDL(slot *native.Object) {
	p := unsafe.Pointer(uintptr(*slot))
	C.umfpack_dl_free_symbolic(&p)
	*slot = native.Object(uintptr(p))
}

func freeNumericDL(slot *native.Object) {
	p := unsafe.Pointer(uintptr(*slot))
	C.umfpack_dl_free_numeric(&p)
	*slot = native.Object(uintptr(p))
}

func freeSymbolicZI(slot *native.Object) {
	p := unsafe.Pointer(uintptr(*slot))
	C.umfpack_zi_free_symbolic(&p)
	*slot = native.Object(uintptr(p))
}

func freeNumericZI(slot *native.Object) {
	p := unsafe.Pointer(uintptr(*slot))
	C.umfpack_zi_free_numeric(&p)
	*slot = native.Object(uintptr(p))
}

func freeSymbolicZL(slot *native.Object) {
	p := unsafe.Pointer(uintptr(*slot))
	C.umfpack_zl_free_symbolic(&p)
	*slot = native.Object(uintptr(p))
}

func freeNumericZL(slot *native.Object) {
	p := unsafe.Pointer(uintptr(*slot))
	C.umfpack_zl_free_numeric(&p)
	*slot = native.Object(uintptr(p))
}
