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

func zlRoutines() *native.Routines[int64] {
	return &native.Routines[int64]{
		Defaults: func(control []float64) {
			C.umfpack_zl_defaults(dblPtr(control))
		},
		Symbolic: func(nRow, nCol int64, ap, ai []int64, ax, az []float64, slot *native.Object, control, info []float64) native.Status {
			p := unsafe.Pointer(uintptr(*slot))
			st := C.umfpack_zl_symbolic(C.SuiteSparse_long(nRow), C.SuiteSparse_long(nCol),
				longPtr(ap), longPtr(ai), dblPtr(ax), dblPtr(az), &p, dblPtr(control), dblPtr(info))
			*slot = native.Object(uintptr(p))
			return native.Status(st)
		},
		Numeric: func(ap, ai []int64, ax, az []float64, symbolic native.Object, slot *native.Object, control, info []float64) native.Status {
			p := unsafe.Pointer(uintptr(*slot))
			st := C.umfpack_zl_numeric(longPtr(ap), longPtr(ai), dblPtr(ax), dblPtr(az),
				objIn(symbolic), &p, dblPtr(control), dblPtr(info))
			*slot = native.Object(uintptr(p))
			return native.Status(st)
		},
		Solve: func(sys native.Sys, ap, ai []int64, ax, az, x, xz, b, bz []float64, numeric native.Object, control, info []float64) native.Status {
			return native.Status(C.umfpack_zl_solve(C.SuiteSparse_long(sys),
				longPtr(ap), longPtr(ai), dblPtr(ax), dblPtr(az),
				dblPtr(x), dblPtr(xz), dblPtr(b), dblPtr(bz),
				objIn(numeric), dblPtr(control), dblPtr(info)))
		},
		FreeSymbolic: freeSymbolicZL,
		FreeNumeric:  freeNumericZL,
		GetLunz: func(lnz, unz, nRow, nCol, nzUdiag *int64, numeric native.Object) native.Status {
			var a, b, r, c, d C.SuiteSparse_long
			st := C.umfpack_zl_get_lunz(&a, &b, &r, &c, &d, objIn(numeric))
			*lnz, *unz, *nRow, *nCol, *nzUdiag = int64(a), int64(b), int64(r), int64(c), int64(d)
			return native.Status(st)
		},
		GetNumeric: func(lp, lj []int64, lx, lz []float64, up, ui []int64, ux, uz []float64,
			p, q []int64, dx, dz []float64, doRecip *int64, rs []float64, numeric native.Object) native.Status {
			var rec C.SuiteSparse_long
			st := C.umfpack_zl_get_numeric(longPtr(lp), longPtr(lj), dblPtr(lx), dblPtr(lz),
				longPtr(up), longPtr(ui), dblPtr(ux), dblPtr(uz),
				longPtr(p), longPtr(q), dblPtr(dx), dblPtr(dz), &rec, dblPtr(rs), objIn(numeric))
			*doRecip = int64(rec)
			return native.Status(st)
		},
		Scale: func(x, xz, b, bz []float64, numeric native.Object) native.Status {
			return native.Status(C.umfpack_zl_scale(dblPtr(x), dblPtr(xz), dblPtr(b), dblPtr(bz), objIn(numeric)))
		},
		Transpose: func(nRow, nCol int64, ap, ai []int64, ax, az []float64, p, q []int64,
			rp, ri []int64, rx, rz []float64, conjugate bool) native.Status {
			conj := C.SuiteSparse_long(0)
			if conjugate {
				conj = 1
			}
			return native.Status(C.umfpack_zl_transpose(C.SuiteSparse_long(nRow), C.SuiteSparse_long(nCol),
				longPtr(ap), longPtr(ai), dblPtr(ax), dblPtr(az),
				longPtr(p), longPtr(q),
				longPtr(rp), longPtr(ri), dblPtr(rx), dblPtr(rz), conj))
		},
		TripletToCol: func(nRow, nCol, nz int64, ti, tj []int64, tx, tz []float64,
			ap, ai []int64, ax, az []float64, mapping []int64) native.Status {
			return native.Status(C.umfpack_zl_triplet_to_col(C.SuiteSparse_long(nRow), C.SuiteSparse_long(nCol), C.SuiteSparse_long(nz),
				longPtr(ti), longPtr(tj), dblPtr(tx), dblPtr(tz),
				longPtr(ap), longPtr(ai), dblPtr(ax), dblPtr(az), longPtr(mapping)))
		},
		ColToTriplet: func(n int64, ap []int64, tj []int64) native.Status {
			return native.Status(C.umfpack_zl_col_to_triplet(C.SuiteSparse_long(n), longPtr(ap), longPtr(tj)))
		},
		ReportControl: func(control []float64) {
			C.umfpack_zl_report_control(dblPtr(control))
		},
		ReportInfo: func(control, info []float64) {
			C.umfpack_zl_report_info(dblPtr(control), dblPtr(info))
		},
		ReportSymbolic: func(symbolic native.Object, control []float64) native.Status {
			return native.Status(C.umfpack_zl_report_symbolic(objIn(symbolic), dblPtr(control)))
		},
		ReportNumeric: func(numeric native.Object, control []float64) native.Status {
			return native.Status(C.umfpack_zl_report_numeric(objIn(numeric), dblPtr(control)))
		},
	}
}
