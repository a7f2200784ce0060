//go:build umfpack && umfpack44

package umfcgo

/*
#cgo CFLAGS: -I/usr/include/suitesparse
#include <umfpack.h>

// The 4.4-era headers ship without prototypes for the free routines,
// the symbols are still exported by the library. Declare them here so
// the legacy generation links against the same call surface.
extern void umfpack_di_free_symbolic(void **Symbolic);
extern void umfpack_di_free_numeric(void **Numeric);
extern void umfpack_dl_free_symbolic(void **Symbolic);
extern void umfpack_dl_free_numeric(void **Numeric);
extern void umfpack_zi_free_symbolic(void **Symbolic);
extern void umfpack_zi_free_numeric(void **Numeric);
extern void umfpack_zl_free_symbolic(void **Symbolic);
extern void umfpack_zl_free_numeric(void **Numeric);
*/
import "C"

import (
	"unsafe"

	"github.com/sparsekit/umfbridge/native"
)

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
