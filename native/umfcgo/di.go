//go:build umfpack

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

func diRoutines() *native.Routines[int32] {
	return &native.Routines[int32]{
		Defaults: func(control []float64) {
			C.umfpack_di_defaults(dblPtr(control))
		},
		Symbolic: func(nRow, nCol int32, ap, ai []int32, ax, az []float64, slot *native.Object, control, info []float64) native.Status {
			p := unsafe.Pointer(uintptr(*slot))
			st := C.umfpack_di_symbolic(C.int(nRow), C.int(nCol),
				intPtr(ap), intPtr(ai), dblPtr(ax), &p, dblPtr(control), dblPtr(info))
			*slot = native.Object(uintptr(p))
			return native.Status(st)
		},
		Numeric: func(ap, ai []int32, ax, az []float64, symbolic native.Object, slot *native.Object, control, info []float64) native.Status {
			p := unsafe.Pointer(uintptr(*slot))
			st := C.umfpack_di_numeric(intPtr(ap), intPtr(ai), dblPtr(ax),
				objIn(symbolic), &p, dblPtr(control), dblPtr(info))
			*slot = native.Object(uintptr(p))
			return native.Status(st)
		},
		Solve: func(sys native.Sys, ap, ai []int32, ax, az, x, xz, b, bz []float64, numeric native.Object, control, info []float64) native.Status {
			return native.Status(C.umfpack_di_solve(C.int(sys),
				intPtr(ap), intPtr(ai), dblPtr(ax), dblPtr(x), dblPtr(b),
				objIn(numeric), dblPtr(control), dblPtr(info)))
		},
		FreeSymbolic: freeSymbolicDI,
		FreeNumeric:  freeNumericDI,
		GetLunz: func(lnz, unz, nRow, nCol, nzUdiag *int32, numeric native.Object) native.Status {
			var a, b, r, c, d C.int
			st := C.umfpack_di_get_lunz(&a, &b, &r, &c, &d, objIn(numeric))
			*lnz, *unz, *nRow, *nCol, *nzUdiag = int32(a), int32(b), int32(r), int32(c), int32(d)
			return native.Status(st)
		},
		GetNumeric: func(lp, lj []int32, lx, lz []float64, up, ui []int32, ux, uz []float64,
			p, q []int32, dx, dz []float64, doRecip *int32, rs []float64, numeric native.Object) native.Status {
			var rec C.int
			st := C.umfpack_di_get_numeric(intPtr(lp), intPtr(lj), dblPtr(lx),
				intPtr(up), intPtr(ui), dblPtr(ux),
				intPtr(p), intPtr(q), dblPtr(dx), &rec, dblPtr(rs), objIn(numeric))
			*doRecip = int32(rec)
			return native.Status(st)
		},
		Scale: func(x, xz, b, bz []float64, numeric native.Object) native.Status {
			return native.Status(C.umfpack_di_scale(dblPtr(x), dblPtr(b), objIn(numeric)))
		},
		Transpose: func(nRow, nCol int32, ap, ai []int32, ax, az []float64, p, q []int32,
			rp, ri []int32, rx, rz []float64, conjugate bool) native.Status {
			return native.Status(C.umfpack_di_transpose(C.int(nRow), C.int(nCol),
				intPtr(ap), intPtr(ai), dblPtr(ax),
				intPtr(p), intPtr(q),
				intPtr(rp), intPtr(ri), dblPtr(rx)))
		},
		TripletToCol: func(nRow, nCol, nz int32, ti, tj []int32, tx, tz []float64,
			ap, ai []int32, ax, az []float64, mapping []int32) native.Status {
			return native.Status(C.umfpack_di_triplet_to_col(C.int(nRow), C.int(nCol), C.int(nz),
				intPtr(ti), intPtr(tj), dblPtr(tx),
				intPtr(ap), intPtr(ai), dblPtr(ax), intPtr(mapping)))
		},
		ColToTriplet: func(n int32, ap []int32, tj []int32) native.Status {
			return native.Status(C.umfpack_di_col_to_triplet(C.int(n), intPtr(ap), intPtr(tj)))
		},
		ReportControl: func(control []float64) {
			C.umfpack_di_report_control(dblPtr(control))
		},
		ReportInfo: func(control, info []float64) {
			C.umfpack_di_report_info(dblPtr(control), dblPtr(info))
		},
		ReportSymbolic: func(symbolic native.Object, control []float64) native.Status {
			return native.Status(C.umfpack_di_report_symbolic(objIn(symbolic), dblPtr(control)))
		},
		ReportNumeric: func(numeric native.Object, control []float64) native.Status {
			return native.Status(C.umfpack_di_report_numeric(objIn(numeric), dblPtr(control)))
		},
	}
}
