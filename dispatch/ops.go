package dispatch

import (
	"github.com/sparsekit/umfbridge/errors"
	"github.com/sparsekit/umfbridge/handle"
	"github.com/sparsekit/umfbridge/marshal"
	"github.com/sparsekit/umfbridge/native"
)

// Defaults fills the control vector with the library defaults.
func (d *Dispatcher) Defaults(f Family, control any) error {
	if f.Wide() {
		r, err := d.wide(f)
		if err != nil {
			return err
		}
		return defaults(r, f, control)
	}
	r, err := d.narrow(f)
	if err != nil {
		return err
	}
	return defaults(r, f, control)
}

// Symbolic computes a symbolic factorization.
// Composite result: (status, symbolic handle).
func (d *Dispatcher) Symbolic(f Family, nRow, nCol, ap, ai, ax, az, control, info any) (any, error) {
	if f.Wide() {
		r, err := d.wide(f)
		if err != nil {
			return nil, err
		}
		return symbolic(r, f, nRow, nCol, ap, ai, ax, az, control, info)
	}
	r, err := d.narrow(f)
	if err != nil {
		return nil, err
	}
	return symbolic(r, f, nRow, nCol, ap, ai, ax, az, control, info)
}

// Numeric computes a numeric factorization from a live symbolic handle.
// Composite result: (status, numeric handle).
func (d *Dispatcher) Numeric(f Family, ap, ai, ax, az, symbolic, control, info any) (any, error) {
	if f.Wide() {
		r, err := d.wide(f)
		if err != nil {
			return nil, err
		}
		return numeric(r, f, ap, ai, ax, az, symbolic, control, info)
	}
	r, err := d.narrow(f)
	if err != nil {
		return nil, err
	}
	return numeric(r, f, ap, ai, ax, az, symbolic, control, info)
}

// Solve solves one system for one right-hand side, writing into x (and
// xz in the complex domain). Composite result: the bare status.
func (d *Dispatcher) Solve(f Family, sys native.Sys, ap, ai, ax, az, x, xz, b, bz, numeric, control, info any) (any, error) {
	if f.Wide() {
		r, err := d.wide(f)
		if err != nil {
			return nil, err
		}
		return solve(r, f, sys, ap, ai, ax, az, x, xz, b, bz, numeric, control, info)
	}
	r, err := d.narrow(f)
	if err != nil {
		return nil, err
	}
	return solve(r, f, sys, ap, ai, ax, az, x, xz, b, bz, numeric, control, info)
}

// FreeSymbolic consumes a live symbolic handle. Composite result: the
// authoritative, now-freed handle.
func (d *Dispatcher) FreeSymbolic(f Family, h any) (any, error) {
	if f.Wide() {
		r, err := d.wide(f)
		if err != nil {
			return nil, err
		}
		return freeHandle(r.FreeSymbolic, f, "free_symbolic", h, handle.Symbolic)
	}
	r, err := d.narrow(f)
	if err != nil {
		return nil, err
	}
	return freeHandle(r.FreeSymbolic, f, "free_symbolic", h, handle.Symbolic)
}

// FreeNumeric consumes a live numeric handle. Composite result: the
// authoritative, now-freed handle.
func (d *Dispatcher) FreeNumeric(f Family, h any) (any, error) {
	if f.Wide() {
		r, err := d.wide(f)
		if err != nil {
			return nil, err
		}
		return freeHandle(r.FreeNumeric, f, "free_numeric", h, handle.Numeric)
	}
	r, err := d.narrow(f)
	if err != nil {
		return nil, err
	}
	return freeHandle(r.FreeNumeric, f, "free_numeric", h, handle.Numeric)
}

// GetLunz reports factor sizes.
// Composite result: (status, lnz, unz, nRow, nCol, nzUdiag) as int64,
// identical across the 32/64-bit variants.
func (d *Dispatcher) GetLunz(f Family, numeric any) (any, error) {
	if f.Wide() {
		r, err := d.wide(f)
		if err != nil {
			return nil, err
		}
		return getLunz(r, f, numeric)
	}
	r, err := d.narrow(f)
	if err != nil {
		return nil, err
	}
	return getLunz(r, f, numeric)
}

// GetNumeric extracts the factors into caller-provided in-place arrays.
// Composite result: (status, doRecip).
func (d *Dispatcher) GetNumeric(f Family, lp, lj, lx, lz, up, ui, ux, uz, p, q, dx, dz, rs, numeric any) (any, error) {
	if f.Wide() {
		r, err := d.wide(f)
		if err != nil {
			return nil, err
		}
		return getNumeric(r, f, lp, lj, lx, lz, up, ui, ux, uz, p, q, dx, dz, rs, numeric)
	}
	r, err := d.narrow(f)
	if err != nil {
		return nil, err
	}
	return getNumeric(r, f, lp, lj, lx, lz, up, ui, ux, uz, p, q, dx, dz, rs, numeric)
}

// Scale applies the row scaling of a numeric object to b, writing into x.
// Composite result: the bare status.
func (d *Dispatcher) Scale(f Family, x, xz, b, bz, numeric any) (any, error) {
	if f.Wide() {
		r, err := d.wide(f)
		if err != nil {
			return nil, err
		}
		return scale(r, f, x, xz, b, bz, numeric)
	}
	r, err := d.narrow(f)
	if err != nil {
		return nil, err
	}
	return scale(r, f, x, xz, b, bz, numeric)
}

// Transpose forms R = A' (conjugate=true) or R = A.' into in-place
// output arrays. Composite result: the bare status.
func (d *Dispatcher) Transpose(f Family, nRow, nCol, ap, ai, ax, az, p, q, rp, ri, rx, rz any, conjugate bool) (any, error) {
	if f.Wide() {
		r, err := d.wide(f)
		if err != nil {
			return nil, err
		}
		return transpose(r, f, nRow, nCol, ap, ai, ax, az, p, q, rp, ri, rx, rz, conjugate)
	}
	r, err := d.narrow(f)
	if err != nil {
		return nil, err
	}
	return transpose(r, f, nRow, nCol, ap, ai, ax, az, p, q, rp, ri, rx, rz, conjugate)
}

// TripletToCol converts triplet form into in-place compressed-column
// arrays, summing duplicate entries. Composite result: the bare status.
func (d *Dispatcher) TripletToCol(f Family, nRow, nCol, nz, ti, tj, tx, tz, ap, ai, ax, az, mapping any) (any, error) {
	if f.Wide() {
		r, err := d.wide(f)
		if err != nil {
			return nil, err
		}
		return tripletToCol(r, f, nRow, nCol, nz, ti, tj, tx, tz, ap, ai, ax, az, mapping)
	}
	r, err := d.narrow(f)
	if err != nil {
		return nil, err
	}
	return tripletToCol(r, f, nRow, nCol, nz, ti, tj, tx, tz, ap, ai, ax, az, mapping)
}

// ColToTriplet recovers per-entry column indices into the in-place tj
// array. Composite result: the bare status.
func (d *Dispatcher) ColToTriplet(f Family, n, ap, tj any) (any, error) {
	if f.Wide() {
		r, err := d.wide(f)
		if err != nil {
			return nil, err
		}
		return colToTriplet(r, f, n, ap, tj)
	}
	r, err := d.narrow(f)
	if err != nil {
		return nil, err
	}
	return colToTriplet(r, f, n, ap, tj)
}

// ReportControl prints the control vector through the native library.
func (d *Dispatcher) ReportControl(f Family, control any) error {
	if f.Wide() {
		r, err := d.wide(f)
		if err != nil {
			return err
		}
		return reportControl(r, f, control)
	}
	r, err := d.narrow(f)
	if err != nil {
		return err
	}
	return reportControl(r, f, control)
}

// ReportInfo prints the info vector through the native library.
func (d *Dispatcher) ReportInfo(f Family, control, info any) error {
	if f.Wide() {
		r, err := d.wide(f)
		if err != nil {
			return err
		}
		return reportInfo(r, f, control, info)
	}
	r, err := d.narrow(f)
	if err != nil {
		return err
	}
	return reportInfo(r, f, control, info)
}

// ReportSymbolic prints information about a live symbolic handle.
// Composite result: the bare status.
func (d *Dispatcher) ReportSymbolic(f Family, h, control any) (any, error) {
	if f.Wide() {
		r, err := d.wide(f)
		if err != nil {
			return nil, err
		}
		return reportObject(r.ReportSymbolic, f, "report_symbolic", h, handle.Symbolic, control)
	}
	r, err := d.narrow(f)
	if err != nil {
		return nil, err
	}
	return reportObject(r.ReportSymbolic, f, "report_symbolic", h, handle.Symbolic, control)
}

// ReportNumeric prints information about a live numeric handle.
// Composite result: the bare status.
func (d *Dispatcher) ReportNumeric(f Family, h, control any) (any, error) {
	if f.Wide() {
		r, err := d.wide(f)
		if err != nil {
			return nil, err
		}
		return reportObject(r.ReportNumeric, f, "report_numeric", h, handle.Numeric, control)
	}
	r, err := d.narrow(f)
	if err != nil {
		return nil, err
	}
	return reportObject(r.ReportNumeric, f, "report_numeric", h, handle.Numeric, control)
}

// Generic operation cores, one per logical operation, shared by the
// narrow and wide index paths.

func defaults[I native.Index](r *native.Routines[I], f Family, controlV any) error {
	if r.Defaults == nil {
		return missing(f, "defaults")
	}
	control, err := marshal.AdaptControl(controlV)
	if err != nil {
		return err
	}
	r.Defaults(control.Float64s())
	return nil
}

func symbolic[I native.Index](r *native.Routines[I], f Family, nRowV, nColV, apV, aiV, axV, azV, controlV, infoV any) (any, error) {
	if r.Symbolic == nil {
		return nil, missing(f, "symbolic")
	}
	nRow, err := scalarIndex(f, nRowV, "nRow")
	if err != nil {
		return nil, err
	}
	nCol, err := scalarIndex(f, nColV, "nCol")
	if err != nil {
		return nil, err
	}
	ap, err := adaptIndex(f, apV, "Ap", marshal.Input)
	if err != nil {
		return nil, err
	}
	ai, err := adaptIndex(f, aiV, "Ai", marshal.Input)
	if err != nil {
		return nil, err
	}
	ax, az, err := adaptDomain(f, axV, azV, "Ax", "Az", marshal.Input)
	if err != nil {
		return nil, err
	}
	control, info, err := adaptVectors(controlV, infoV)
	if err != nil {
		return nil, err
	}

	slot := handle.NewSlot(handle.Symbolic)
	st := r.Symbolic(I(nRow), I(nCol), indices[I](ap), indices[I](ai),
		floats(ax), floats(az), slot.Ptr(), control.Float64s(), info.Float64s())

	result := marshal.Append(nil, st)
	result, _ = slot.Finish(result)
	return result, nil
}

func numeric[I native.Index](r *native.Routines[I], f Family, apV, aiV, axV, azV, symbolicV, controlV, infoV any) (any, error) {
	if r.Numeric == nil {
		return nil, missing(f, "numeric")
	}
	ap, err := adaptIndex(f, apV, "Ap", marshal.Input)
	if err != nil {
		return nil, err
	}
	ai, err := adaptIndex(f, aiV, "Ai", marshal.Input)
	if err != nil {
		return nil, err
	}
	ax, az, err := adaptDomain(f, axV, azV, "Ax", "Az", marshal.Input)
	if err != nil {
		return nil, err
	}
	sym, err := handleObject(symbolicV, handle.Symbolic)
	if err != nil {
		return nil, err
	}
	control, info, err := adaptVectors(controlV, infoV)
	if err != nil {
		return nil, err
	}

	slot := handle.NewSlot(handle.Numeric)
	st := r.Numeric(indices[I](ap), indices[I](ai), floats(ax), floats(az),
		sym, slot.Ptr(), control.Float64s(), info.Float64s())

	result := marshal.Append(nil, st)
	result, _ = slot.Finish(result)
	return result, nil
}

func solve[I native.Index](r *native.Routines[I], f Family, sys native.Sys, apV, aiV, axV, azV, xV, xzV, bV, bzV, numericV, controlV, infoV any) (any, error) {
	if r.Solve == nil {
		return nil, missing(f, "solve")
	}
	if !sys.Valid() {
		return nil, errors.InvalidInput(errors.PhaseDispatch, "unknown system code")
	}
	ap, err := adaptIndex(f, apV, "Ap", marshal.Input)
	if err != nil {
		return nil, err
	}
	ai, err := adaptIndex(f, aiV, "Ai", marshal.Input)
	if err != nil {
		return nil, err
	}
	ax, az, err := adaptDomain(f, axV, azV, "Ax", "Az", marshal.Input)
	if err != nil {
		return nil, err
	}
	x, xz, err := adaptDomain(f, xV, xzV, "X", "Xz", marshal.InPlace)
	if err != nil {
		return nil, err
	}
	b, bz, err := adaptDomain(f, bV, bzV, "B", "Bz", marshal.Input)
	if err != nil {
		return nil, err
	}
	num, err := handleObject(numericV, handle.Numeric)
	if err != nil {
		return nil, err
	}
	control, info, err := adaptVectors(controlV, infoV)
	if err != nil {
		return nil, err
	}

	st := r.Solve(sys, indices[I](ap), indices[I](ai), floats(ax), floats(az),
		floats(x), floats(xz), floats(b), floats(bz), num,
		control.Float64s(), info.Float64s())
	return marshal.Append(nil, st), nil
}

func freeHandle(free func(*native.Object), f Family, op string, hV any, kind handle.Kind) (any, error) {
	if free == nil {
		return nil, missing(f, op)
	}
	consumed, err := handle.Consume(hV, kind)
	if err != nil {
		return nil, err
	}
	free(consumed.Ptr())
	return consumed.Finish(nil), nil
}

func getLunz[I native.Index](r *native.Routines[I], f Family, numericV any) (any, error) {
	if r.GetLunz == nil {
		return nil, missing(f, "get_lunz")
	}
	num, err := handleObject(numericV, handle.Numeric)
	if err != nil {
		return nil, err
	}

	var lnz, unz, nRow, nCol, nzUdiag I
	st := r.GetLunz(&lnz, &unz, &nRow, &nCol, &nzUdiag, num)

	result := marshal.Append(nil, st)
	result = marshal.Append(result, int64(lnz))
	result = marshal.Append(result, int64(unz))
	result = marshal.Append(result, int64(nRow))
	result = marshal.Append(result, int64(nCol))
	result = marshal.Append(result, int64(nzUdiag))
	return result, nil
}

func getNumeric[I native.Index](r *native.Routines[I], f Family, lpV, ljV, lxV, lzV, upV, uiV, uxV, uzV, pV, qV, dxV, dzV, rsV, numericV any) (any, error) {
	if r.GetNumeric == nil {
		return nil, missing(f, "get_numeric")
	}
	lp, err := adaptIndex(f, lpV, "Lp", marshal.InPlace)
	if err != nil {
		return nil, err
	}
	lj, err := adaptIndex(f, ljV, "Lj", marshal.InPlace)
	if err != nil {
		return nil, err
	}
	lx, lz, err := adaptDomain(f, lxV, lzV, "Lx", "Lz", marshal.InPlace)
	if err != nil {
		return nil, err
	}
	up, err := adaptIndex(f, upV, "Up", marshal.InPlace)
	if err != nil {
		return nil, err
	}
	ui, err := adaptIndex(f, uiV, "Ui", marshal.InPlace)
	if err != nil {
		return nil, err
	}
	ux, uz, err := adaptDomain(f, uxV, uzV, "Ux", "Uz", marshal.InPlace)
	if err != nil {
		return nil, err
	}
	p, err := adaptIndex(f, pV, "P", marshal.InPlace)
	if err != nil {
		return nil, err
	}
	q, err := adaptIndex(f, qV, "Q", marshal.InPlace)
	if err != nil {
		return nil, err
	}
	dx, dz, err := adaptDomain(f, dxV, dzV, "Dx", "Dz", marshal.InPlace)
	if err != nil {
		return nil, err
	}
	rs, err := marshal.AdaptArg(rsV, marshal.Float64, 1, 1, marshal.InPlace, "Rs")
	if err != nil {
		return nil, err
	}
	num, err := handleObject(numericV, handle.Numeric)
	if err != nil {
		return nil, err
	}

	var doRecip I
	st := r.GetNumeric(indices[I](lp), indices[I](lj), floats(lx), floats(lz),
		indices[I](up), indices[I](ui), floats(ux), floats(uz),
		indices[I](p), indices[I](q), floats(dx), floats(dz),
		&doRecip, rs.Float64s(), num)

	result := marshal.Append(nil, st)
	result = marshal.Append(result, int64(doRecip))
	return result, nil
}

func scale[I native.Index](r *native.Routines[I], f Family, xV, xzV, bV, bzV, numericV any) (any, error) {
	if r.Scale == nil {
		return nil, missing(f, "scale")
	}
	x, xz, err := adaptDomain(f, xV, xzV, "X", "Xz", marshal.InPlace)
	if err != nil {
		return nil, err
	}
	b, bz, err := adaptDomain(f, bV, bzV, "B", "Bz", marshal.Input)
	if err != nil {
		return nil, err
	}
	num, err := handleObject(numericV, handle.Numeric)
	if err != nil {
		return nil, err
	}

	st := r.Scale(floats(x), floats(xz), floats(b), floats(bz), num)
	return marshal.Append(nil, st), nil
}

func transpose[I native.Index](r *native.Routines[I], f Family, nRowV, nColV, apV, aiV, axV, azV, pV, qV, rpV, riV, rxV, rzV any, conjugate bool) (any, error) {
	if r.Transpose == nil {
		return nil, missing(f, "transpose")
	}
	nRow, err := scalarIndex(f, nRowV, "nRow")
	if err != nil {
		return nil, err
	}
	nCol, err := scalarIndex(f, nColV, "nCol")
	if err != nil {
		return nil, err
	}
	ap, err := adaptIndex(f, apV, "Ap", marshal.Input)
	if err != nil {
		return nil, err
	}
	ai, err := adaptIndex(f, aiV, "Ai", marshal.Input)
	if err != nil {
		return nil, err
	}
	ax, az, err := adaptDomain(f, axV, azV, "Ax", "Az", marshal.Input)
	if err != nil {
		return nil, err
	}
	p, err := adaptOptIndex(f, pV, "P", marshal.Input)
	if err != nil {
		return nil, err
	}
	q, err := adaptOptIndex(f, qV, "Q", marshal.Input)
	if err != nil {
		return nil, err
	}
	rp, err := adaptIndex(f, rpV, "Rp", marshal.InPlace)
	if err != nil {
		return nil, err
	}
	ri, err := adaptIndex(f, riV, "Ri", marshal.InPlace)
	if err != nil {
		return nil, err
	}
	rx, rz, err := adaptDomain(f, rxV, rzV, "Rx", "Rz", marshal.InPlace)
	if err != nil {
		return nil, err
	}

	st := r.Transpose(I(nRow), I(nCol), indices[I](ap), indices[I](ai),
		floats(ax), floats(az), indices[I](p), indices[I](q),
		indices[I](rp), indices[I](ri), floats(rx), floats(rz), conjugate)
	return marshal.Append(nil, st), nil
}

func tripletToCol[I native.Index](r *native.Routines[I], f Family, nRowV, nColV, nzV, tiV, tjV, txV, tzV, apV, aiV, axV, azV, mappingV any) (any, error) {
	if r.TripletToCol == nil {
		return nil, missing(f, "triplet_to_col")
	}
	nRow, err := scalarIndex(f, nRowV, "nRow")
	if err != nil {
		return nil, err
	}
	nCol, err := scalarIndex(f, nColV, "nCol")
	if err != nil {
		return nil, err
	}
	nz, err := scalarIndex(f, nzV, "nz")
	if err != nil {
		return nil, err
	}
	ti, err := adaptIndex(f, tiV, "Ti", marshal.Input)
	if err != nil {
		return nil, err
	}
	tj, err := adaptIndex(f, tjV, "Tj", marshal.Input)
	if err != nil {
		return nil, err
	}
	tx, tz, err := adaptDomain(f, txV, tzV, "Tx", "Tz", marshal.Input)
	if err != nil {
		return nil, err
	}
	ap, err := adaptIndex(f, apV, "Ap", marshal.InPlace)
	if err != nil {
		return nil, err
	}
	ai, err := adaptIndex(f, aiV, "Ai", marshal.InPlace)
	if err != nil {
		return nil, err
	}
	ax, az, err := adaptDomain(f, axV, azV, "Ax", "Az", marshal.InPlace)
	if err != nil {
		return nil, err
	}
	mapping, err := adaptOptIndex(f, mappingV, "Map", marshal.InPlace)
	if err != nil {
		return nil, err
	}

	st := r.TripletToCol(I(nRow), I(nCol), I(nz),
		indices[I](ti), indices[I](tj), floats(tx), floats(tz),
		indices[I](ap), indices[I](ai), floats(ax), floats(az),
		indices[I](mapping))
	return marshal.Append(nil, st), nil
}

func colToTriplet[I native.Index](r *native.Routines[I], f Family, nV, apV, tjV any) (any, error) {
	if r.ColToTriplet == nil {
		return nil, missing(f, "col_to_triplet")
	}
	n, err := scalarIndex(f, nV, "n")
	if err != nil {
		return nil, err
	}
	ap, err := adaptIndex(f, apV, "Ap", marshal.Input)
	if err != nil {
		return nil, err
	}
	tj, err := adaptIndex(f, tjV, "Tj", marshal.InPlace)
	if err != nil {
		return nil, err
	}

	st := r.ColToTriplet(I(n), indices[I](ap), indices[I](tj))
	return marshal.Append(nil, st), nil
}

func reportControl[I native.Index](r *native.Routines[I], f Family, controlV any) error {
	if r.ReportControl == nil {
		return missing(f, "report_control")
	}
	control, err := marshal.AdaptControl(controlV)
	if err != nil {
		return err
	}
	r.ReportControl(control.Float64s())
	return nil
}

func reportInfo[I native.Index](r *native.Routines[I], f Family, controlV, infoV any) error {
	if r.ReportInfo == nil {
		return missing(f, "report_info")
	}
	control, info, err := adaptVectors(controlV, infoV)
	if err != nil {
		return err
	}
	r.ReportInfo(control.Float64s(), info.Float64s())
	return nil
}

func reportObject(report func(native.Object, []float64) native.Status, f Family, op string, hV any, kind handle.Kind, controlV any) (any, error) {
	if report == nil {
		return nil, missing(f, op)
	}
	obj, err := handleObject(hV, kind)
	if err != nil {
		return nil, err
	}
	control, err := marshal.AdaptControl(controlV)
	if err != nil {
		return nil, err
	}
	st := report(obj, control.Float64s())
	return marshal.Append(nil, st), nil
}
