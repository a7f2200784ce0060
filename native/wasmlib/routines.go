package wasmlib

import (
	"github.com/sparsekit/umfbridge/native"
)

func u(v int32) uint64   { return uint64(uint32(v)) }
func up(v uint32) uint64 { return uint64(v) }

func status(res uint64, err error) native.Status {
	if err != nil {
		return native.ErrInternal
	}
	return native.Status(int32(uint32(res)))
}

// routines adapts one narrow-index family, "di" or "zi". Complex
// families stage the split imaginary arrays alongside the real parts.
func (m *Module) routines(prefix string, cplx bool) *native.Routines[int32] {
	name := func(op string) string { return "umfpack_" + prefix + "_" + op }

	return &native.Routines[int32]{
		Defaults: func(control []float64) {
			a := newArena(m.mem, m.alloc)
			defer a.release()
			ctl := a.f64s(control)
			if a.err != nil {
				return
			}
			if _, err := m.call(name("defaults"), up(ctl)); err != nil {
				return
			}
			_ = readF64s(m.mem, ctl, control)
		},
		Symbolic: func(nRow, nCol int32, ap, ai []int32, ax, az []float64, slot *native.Object, control, info []float64) native.Status {
			a := newArena(m.mem, m.alloc)
			defer a.release()
			apP, aiP, axP := a.i32s(ap), a.i32s(ai), a.f64s(ax)
			args := []uint64{u(nRow), u(nCol), up(apP), up(aiP), up(axP)}
			if cplx {
				args = append(args, up(a.f64s(az)))
			}
			slotP := a.slot(uint32(*slot))
			ctl, inf := a.f64s(control), a.f64s(info)
			args = append(args, up(slotP), up(ctl), up(inf))
			if a.err != nil {
				return native.ErrOutOfMemory
			}
			st := status(m.call(name("symbolic"), args...))
			if v, err := m.mem.ReadU32(slotP); err == nil {
				*slot = native.Object(v)
			}
			_ = readF64s(m.mem, inf, info)
			return st
		},
		Numeric: func(ap, ai []int32, ax, az []float64, symbolic native.Object, slot *native.Object, control, info []float64) native.Status {
			a := newArena(m.mem, m.alloc)
			defer a.release()
			apP, aiP, axP := a.i32s(ap), a.i32s(ai), a.f64s(ax)
			args := []uint64{up(apP), up(aiP), up(axP)}
			if cplx {
				args = append(args, up(a.f64s(az)))
			}
			slotP := a.slot(uint32(*slot))
			ctl, inf := a.f64s(control), a.f64s(info)
			args = append(args, uint64(symbolic), up(slotP), up(ctl), up(inf))
			if a.err != nil {
				return native.ErrOutOfMemory
			}
			st := status(m.call(name("numeric"), args...))
			if v, err := m.mem.ReadU32(slotP); err == nil {
				*slot = native.Object(v)
			}
			_ = readF64s(m.mem, inf, info)
			return st
		},
		Solve: func(sys native.Sys, ap, ai []int32, ax, az, x, xz, b, bz []float64, numeric native.Object, control, info []float64) native.Status {
			a := newArena(m.mem, m.alloc)
			defer a.release()
			apP, aiP, axP := a.i32s(ap), a.i32s(ai), a.f64s(ax)
			args := []uint64{u(int32(sys)), up(apP), up(aiP), up(axP)}
			if cplx {
				args = append(args, up(a.f64s(az)))
			}
			xP := a.f64s(x)
			args = append(args, up(xP))
			var xzP uint32
			if cplx {
				xzP = a.f64s(xz)
				args = append(args, up(xzP))
			}
			args = append(args, up(a.f64s(b)))
			if cplx {
				args = append(args, up(a.f64s(bz)))
			}
			ctl, inf := a.f64s(control), a.f64s(info)
			args = append(args, uint64(numeric), up(ctl), up(inf))
			if a.err != nil {
				return native.ErrOutOfMemory
			}
			st := status(m.call(name("solve"), args...))
			_ = readF64s(m.mem, xP, x)
			if cplx {
				_ = readF64s(m.mem, xzP, xz)
			}
			_ = readF64s(m.mem, inf, info)
			return st
		},
		FreeSymbolic: m.freeFn(name("free_symbolic")),
		FreeNumeric:  m.freeFn(name("free_numeric")),
		GetLunz: func(lnz, unz, nRow, nCol, nzUdiag *int32, numeric native.Object) native.Status {
			a := newArena(m.mem, m.alloc)
			defer a.release()
			out := [5]uint32{a.slot(0), a.slot(0), a.slot(0), a.slot(0), a.slot(0)}
			if a.err != nil {
				return native.ErrOutOfMemory
			}
			st := status(m.call(name("get_lunz"),
				up(out[0]), up(out[1]), up(out[2]), up(out[3]), up(out[4]), uint64(numeric)))
			dst := [5]*int32{lnz, unz, nRow, nCol, nzUdiag}
			for i, ptr := range out {
				if v, err := m.mem.ReadU32(ptr); err == nil {
					*dst[i] = int32(v)
				}
			}
			return st
		},
		GetNumeric: func(lp, lj []int32, lx, lz []float64, up32, ui []int32, ux, uz []float64,
			p, q []int32, dx, dz []float64, doRecip *int32, rs []float64, numeric native.Object) native.Status {
			a := newArena(m.mem, m.alloc)
			defer a.release()
			lpP, ljP, lxP := a.i32s(lp), a.i32s(lj), a.f64s(lx)
			args := []uint64{up(lpP), up(ljP), up(lxP)}
			var lzP uint32
			if cplx {
				lzP = a.f64s(lz)
				args = append(args, up(lzP))
			}
			upP, uiP, uxP := a.i32s(up32), a.i32s(ui), a.f64s(ux)
			args = append(args, up(upP), up(uiP), up(uxP))
			var uzP uint32
			if cplx {
				uzP = a.f64s(uz)
				args = append(args, up(uzP))
			}
			pP, qP, dxP := a.i32s(p), a.i32s(q), a.f64s(dx)
			args = append(args, up(pP), up(qP), up(dxP))
			var dzP uint32
			if cplx {
				dzP = a.f64s(dz)
				args = append(args, up(dzP))
			}
			recP := a.slot(0)
			rsP := a.f64s(rs)
			args = append(args, up(recP), up(rsP), uint64(numeric))
			if a.err != nil {
				return native.ErrOutOfMemory
			}
			st := status(m.call(name("get_numeric"), args...))
			_ = readI32s(m.mem, lpP, lp)
			_ = readI32s(m.mem, ljP, lj)
			_ = readF64s(m.mem, lxP, lx)
			_ = readI32s(m.mem, upP, up32)
			_ = readI32s(m.mem, uiP, ui)
			_ = readF64s(m.mem, uxP, ux)
			_ = readI32s(m.mem, pP, p)
			_ = readI32s(m.mem, qP, q)
			_ = readF64s(m.mem, dxP, dx)
			_ = readF64s(m.mem, rsP, rs)
			if cplx {
				_ = readF64s(m.mem, lzP, lz)
				_ = readF64s(m.mem, uzP, uz)
				_ = readF64s(m.mem, dzP, dz)
			}
			if v, err := m.mem.ReadU32(recP); err == nil {
				*doRecip = int32(v)
			}
			return st
		},
		Scale: func(x, xz, b, bz []float64, numeric native.Object) native.Status {
			a := newArena(m.mem, m.alloc)
			defer a.release()
			xP := a.f64s(x)
			args := []uint64{up(xP)}
			var xzP uint32
			if cplx {
				xzP = a.f64s(xz)
				args = append(args, up(xzP))
			}
			args = append(args, up(a.f64s(b)))
			if cplx {
				args = append(args, up(a.f64s(bz)))
			}
			args = append(args, uint64(numeric))
			if a.err != nil {
				return native.ErrOutOfMemory
			}
			st := status(m.call(name("scale"), args...))
			_ = readF64s(m.mem, xP, x)
			if cplx {
				_ = readF64s(m.mem, xzP, xz)
			}
			return st
		},
		Transpose: func(nRow, nCol int32, ap, ai []int32, ax, az []float64, p, q []int32,
			rp, ri []int32, rx, rz []float64, conjugate bool) native.Status {
			a := newArena(m.mem, m.alloc)
			defer a.release()
			args := []uint64{u(nRow), u(nCol), up(a.i32s(ap)), up(a.i32s(ai)), up(a.f64s(ax))}
			if cplx {
				args = append(args, up(a.f64s(az)))
			}
			args = append(args, up(a.i32s(p)), up(a.i32s(q)))
			rpP, riP, rxP := a.i32s(rp), a.i32s(ri), a.f64s(rx)
			args = append(args, up(rpP), up(riP), up(rxP))
			var rzP uint32
			if cplx {
				rzP = a.f64s(rz)
				args = append(args, up(rzP))
				if conjugate {
					args = append(args, 1)
				} else {
					args = append(args, 0)
				}
			}
			if a.err != nil {
				return native.ErrOutOfMemory
			}
			st := status(m.call(name("transpose"), args...))
			_ = readI32s(m.mem, rpP, rp)
			_ = readI32s(m.mem, riP, ri)
			_ = readF64s(m.mem, rxP, rx)
			if cplx {
				_ = readF64s(m.mem, rzP, rz)
			}
			return st
		},
		TripletToCol: func(nRow, nCol, nz int32, ti, tj []int32, tx, tz []float64,
			ap, ai []int32, ax, az []float64, mapping []int32) native.Status {
			a := newArena(m.mem, m.alloc)
			defer a.release()
			args := []uint64{u(nRow), u(nCol), u(nz), up(a.i32s(ti)), up(a.i32s(tj)), up(a.f64s(tx))}
			if cplx {
				args = append(args, up(a.f64s(tz)))
			}
			apP, aiP, axP := a.i32s(ap), a.i32s(ai), a.f64s(ax)
			args = append(args, up(apP), up(aiP), up(axP))
			var azP uint32
			if cplx {
				azP = a.f64s(az)
				args = append(args, up(azP))
			}
			mapP := a.i32s(mapping)
			args = append(args, up(mapP))
			if a.err != nil {
				return native.ErrOutOfMemory
			}
			st := status(m.call(name("triplet_to_col"), args...))
			_ = readI32s(m.mem, apP, ap)
			_ = readI32s(m.mem, aiP, ai)
			_ = readF64s(m.mem, axP, ax)
			if cplx {
				_ = readF64s(m.mem, azP, az)
			}
			_ = readI32s(m.mem, mapP, mapping)
			return st
		},
		ColToTriplet: func(n int32, ap []int32, tj []int32) native.Status {
			a := newArena(m.mem, m.alloc)
			defer a.release()
			apP := a.i32s(ap)
			tjP := a.i32s(tj)
			if a.err != nil {
				return native.ErrOutOfMemory
			}
			st := status(m.call(name("col_to_triplet"), u(n), up(apP), up(tjP)))
			_ = readI32s(m.mem, tjP, tj)
			return st
		},
		ReportControl: func(control []float64) {
			a := newArena(m.mem, m.alloc)
			defer a.release()
			ctl := a.f64s(control)
			if a.err != nil {
				return
			}
			_, _ = m.call(name("report_control"), up(ctl))
		},
		ReportInfo: func(control, info []float64) {
			a := newArena(m.mem, m.alloc)
			defer a.release()
			ctl, inf := a.f64s(control), a.f64s(info)
			if a.err != nil {
				return
			}
			_, _ = m.call(name("report_info"), up(ctl), up(inf))
		},
		ReportSymbolic: func(symbolic native.Object, control []float64) native.Status {
			a := newArena(m.mem, m.alloc)
			defer a.release()
			ctl := a.f64s(control)
			if a.err != nil {
				return native.ErrOutOfMemory
			}
			return status(m.call(name("report_symbolic"), uint64(symbolic), up(ctl)))
		},
		ReportNumeric: func(numeric native.Object, control []float64) native.Status {
			a := newArena(m.mem, m.alloc)
			defer a.release()
			ctl := a.f64s(control)
			if a.err != nil {
				return native.ErrOutOfMemory
			}
			return status(m.call(name("report_numeric"), uint64(numeric), up(ctl)))
		},
	}
}

// freeFn wraps a guest free routine, which takes a pointer to the
// object slot and nulls it.
func (m *Module) freeFn(name string) func(*native.Object) {
	return func(slot *native.Object) {
		a := newArena(m.mem, m.alloc)
		defer a.release()
		slotP := a.slot(uint32(*slot))
		if a.err != nil {
			return
		}
		if _, err := m.call(name, up(slotP)); err != nil {
			return
		}
		if v, err := m.mem.ReadU32(slotP); err == nil {
			*slot = native.Object(v)
		}
	}
}
