package reflu

import (
	"fmt"
	"math/cmplx"
	"sort"

	"github.com/sparsekit/umfbridge/native"
)

// Library returns a fully populated backend with all four families.
func Library() *native.Library {
	return &native.Library{
		DI:   familyRoutines[int32](false),
		DL:   familyRoutines[int64](false),
		ZI:   familyRoutines[int32](true),
		ZL:   familyRoutines[int64](true),
		Name: "reflu",
	}
}

func isWide[I native.Index]() bool {
	_, wide := any(I(0)).(int64)
	return wide
}

func familyRoutines[I native.Index](cplx bool) *native.Routines[I] {
	wide := isWide[I]()
	return &native.Routines[I]{
		Defaults: defaultsImpl,
		Symbolic: func(nRow, nCol I, ap, ai []I, ax, az []float64, slot *native.Object, control, info []float64) native.Status {
			return symbolicImpl(wide, cplx, int(nRow), int(nCol), ap, ai, ax, az, slot, info)
		},
		Numeric: func(ap, ai []I, ax, az []float64, symbolic native.Object, slot *native.Object, control, info []float64) native.Status {
			return numericImpl(wide, cplx, ap, ai, ax, az, symbolic, slot, info)
		},
		Solve: func(sys native.Sys, ap, ai []I, ax, az, x, xz, b, bz []float64, numeric native.Object, control, info []float64) native.Status {
			return solveImpl(wide, cplx, sys, x, xz, b, bz, numeric, info)
		},
		FreeSymbolic: freeImpl,
		FreeNumeric:  freeImpl,
		GetLunz: func(lnz, unz, nRow, nCol, nzUdiag *I, numeric native.Object) native.Status {
			return getLunzImpl(wide, cplx, lnz, unz, nRow, nCol, nzUdiag, numeric)
		},
		GetNumeric: func(lp, lj []I, lx, lz []float64, up, ui []I, ux, uz []float64,
			p, q []I, dx, dz []float64, doRecip *I, rs []float64, numeric native.Object) native.Status {
			return getNumericImpl(wide, cplx, lp, lj, lx, lz, up, ui, ux, uz, p, q, dx, dz, doRecip, rs, numeric)
		},
		Scale: func(x, xz, b, bz []float64, numeric native.Object) native.Status {
			return scaleImpl(wide, cplx, x, xz, b, bz, numeric)
		},
		Transpose: func(nRow, nCol I, ap, ai []I, ax, az []float64, p, q []I,
			rp, ri []I, rx, rz []float64, conjugate bool) native.Status {
			return transposeImpl(cplx, int(nRow), int(nCol), ap, ai, ax, az, p, q, rp, ri, rx, rz, conjugate)
		},
		TripletToCol: func(nRow, nCol, nz I, ti, tj []I, tx, tz []float64,
			ap, ai []I, ax, az []float64, mapping []I) native.Status {
			return tripletToColImpl(cplx, int(nRow), int(nCol), int(nz), ti, tj, tx, tz, ap, ai, ax, az, mapping)
		},
		ColToTriplet: func(n I, ap []I, tj []I) native.Status {
			return colToTripletImpl(int(n), ap, tj)
		},
		ReportControl: reportControlImpl,
		ReportInfo:    reportInfoImpl,
		ReportSymbolic: func(symbolic native.Object, control []float64) native.Status {
			return reportSymbolicImpl(symbolic, control)
		},
		ReportNumeric: func(numeric native.Object, control []float64) native.Status {
			return reportNumericImpl(numeric, control)
		},
	}
}

func setStatus(info []float64, st native.Status) native.Status {
	if len(info) > native.InfoStatus {
		info[native.InfoStatus] = float64(st)
	}
	return st
}

func defaultsImpl(control []float64) {
	for i := range control {
		control[i] = 0
	}
	if len(control) < native.ControlLen {
		return
	}
	control[native.ControlPRL] = 1
	control[native.ControlDenseRow] = 0.2
	control[native.ControlDenseCol] = 0.2
	control[native.ControlPivotTolerance] = 0.1
	control[native.ControlBlockSize] = 32
	control[native.ControlAllocInit] = 0.7
	control[native.ControlIRStep] = 2
	control[native.ControlScale] = native.ScaleSum
}

// validPattern checks the compressed-column invariants: Ap of length
// nCol+1 starting at zero, monotonic non-decreasing, row indices within
// range.
func validPattern[I native.Index](nRow, nCol int, ap, ai []I) bool {
	if len(ap) != nCol+1 || ap[0] != 0 {
		return false
	}
	for j := 0; j < nCol; j++ {
		if ap[j+1] < ap[j] {
			return false
		}
	}
	nz := int(ap[nCol])
	if len(ai) < nz {
		return false
	}
	for _, r := range ai[:nz] {
		if r < 0 || int(r) >= nRow {
			return false
		}
	}
	return true
}

func symbolicImpl[I native.Index](wide, cplx bool, nRow, nCol int, ap, ai []I, ax, az []float64, slot *native.Object, info []float64) native.Status {
	if nRow <= 0 || nCol <= 0 {
		return setStatus(info, native.ErrNNonpositive)
	}
	if !validPattern(nRow, nCol, ap, ai) {
		return setStatus(info, native.ErrInvalidMatrix)
	}
	nz := int(ap[nCol])
	if len(ax) < nz || (cplx && len(az) < nz) {
		return setStatus(info, native.ErrArgumentMissing)
	}

	s := &symbolicObj{
		ap:   make([]int64, len(ap)),
		ai:   make([]int64, nz),
		nRow: nRow,
		nCol: nCol,
		wide: wide,
		cplx: cplx,
	}
	for i, v := range ap {
		s.ap[i] = int64(v)
	}
	for i, v := range ai[:nz] {
		s.ai[i] = int64(v)
	}

	*slot = register(s)
	if len(info) >= native.InfoLen {
		info[native.InfoNRow] = float64(nRow)
		info[native.InfoNCol] = float64(nCol)
		info[native.InfoNZ] = float64(nz)
	}
	return setStatus(info, native.StatusOK)
}

func numericImpl[I native.Index](wide, cplx bool, ap, ai []I, ax, az []float64, symbolic native.Object, slot *native.Object, info []float64) native.Status {
	v, ok := lookup(symbolic)
	if !ok {
		return setStatus(info, native.ErrInvalidSymbolicObject)
	}
	s, ok := v.(*symbolicObj)
	if !ok || s.wide != wide || s.cplx != cplx {
		return setStatus(info, native.ErrInvalidSymbolicObject)
	}
	if !samePattern(s, ap, ai) {
		return setStatus(info, native.ErrDifferentPattern)
	}
	if s.nRow != s.nCol {
		return setStatus(info, native.ErrInvalidMatrix)
	}
	n := s.nRow
	nz := int(ap[n])
	if len(ax) < nz || (cplx && len(az) < nz) {
		return setStatus(info, native.ErrArgumentMissing)
	}

	ap64 := make([]int64, len(ap))
	for i, x := range ap {
		ap64[i] = int64(x)
	}
	ai64 := make([]int64, nz)
	for i, x := range ai[:nz] {
		ai64[i] = int64(x)
	}
	dense := buildDense(n, ap64, ai64, ax, az)
	perm, singular := luFactor(n, dense)

	f := &numericObj{
		lu:       dense,
		perm:     perm,
		n:        n,
		singular: singular,
		wide:     wide,
		cplx:     cplx,
	}
	f.factorStats()

	*slot = register(f)
	if len(info) >= native.InfoLen {
		info[native.InfoNRow] = float64(n)
		info[native.InfoNCol] = float64(n)
		info[native.InfoNZ] = float64(nz)
		info[native.InfoLNZ] = float64(f.lnz)
		info[native.InfoUNZ] = float64(f.unz)
		info[native.InfoRCond] = f.rcond
	}
	if singular {
		return setStatus(info, native.WarningSingularMatrix)
	}
	return setStatus(info, native.StatusOK)
}

func samePattern[I native.Index](s *symbolicObj, ap, ai []I) bool {
	if len(ap) != len(s.ap) {
		return false
	}
	for i, v := range ap {
		if int64(v) != s.ap[i] {
			return false
		}
	}
	nz := len(s.ai)
	if len(ai) < nz {
		return false
	}
	for i, v := range ai[:nz] {
		if int64(v) != s.ai[i] {
			return false
		}
	}
	return true
}

func lookupNumeric(numeric native.Object, wide, cplx bool) (*numericObj, native.Status) {
	v, ok := lookup(numeric)
	if !ok {
		return nil, native.ErrInvalidNumericObject
	}
	f, ok := v.(*numericObj)
	if !ok || f.wide != wide || f.cplx != cplx {
		return nil, native.ErrInvalidNumericObject
	}
	return f, native.StatusOK
}

func solveImpl(wide, cplx bool, sys native.Sys, x, xz, b, bz []float64, numeric native.Object, info []float64) native.Status {
	f, st := lookupNumeric(numeric, wide, cplx)
	if st.Failed() {
		return setStatus(info, st)
	}
	n := f.n
	if len(x) < n || len(b) < n || (cplx && (len(xz) < n || len(bz) < n)) {
		return setStatus(info, native.ErrArgumentMissing)
	}

	rhs := make([]complex128, n)
	for i := 0; i < n; i++ {
		if cplx {
			rhs[i] = complex(b[i], bz[i])
		} else {
			rhs[i] = complex(b[i], 0)
		}
	}

	sol, st := f.solveSys(sys, rhs)
	if st.Failed() {
		return setStatus(info, st)
	}
	for i := 0; i < n; i++ {
		x[i] = real(sol[i])
		if cplx {
			xz[i] = imag(sol[i])
		}
	}

	if len(info) >= native.InfoLen {
		info[native.InfoRCond] = f.rcond
	}
	if f.singular {
		return setStatus(info, native.WarningSingularMatrix)
	}
	return setStatus(info, native.StatusOK)
}

// solveSys dispatches one system code against the factors PA = LU with
// Q treated as identity (this backend fixes the column ordering).
func (f *numericObj) solveSys(sys native.Sys, b []complex128) ([]complex128, native.Status) {
	switch sys {
	case native.SysA:
		y := f.applyPerm(b)
		f.lowerSolve(y)
		f.upperSolve(y)
		return y, native.StatusOK
	case native.SysAt, native.SysAat:
		conj := sys == native.SysAt
		z := append([]complex128(nil), b...)
		f.upperTransSolve(z, conj)
		f.lowerTransSolve(z, conj)
		return f.applyPermInv(z), native.StatusOK
	case native.SysL:
		y := append([]complex128(nil), b...)
		f.lowerSolve(y)
		return y, native.StatusOK
	case native.SysPtL:
		y := f.applyPerm(b)
		f.lowerSolve(y)
		return y, native.StatusOK
	case native.SysLt, native.SysLat:
		y := append([]complex128(nil), b...)
		f.lowerTransSolve(y, sys == native.SysLt)
		return y, native.StatusOK
	case native.SysLtP, native.SysLatP:
		y := append([]complex128(nil), b...)
		f.lowerTransSolve(y, sys == native.SysLtP)
		return f.applyPermInv(y), native.StatusOK
	case native.SysU, native.SysUQt:
		y := append([]complex128(nil), b...)
		f.upperSolve(y)
		return y, native.StatusOK
	case native.SysUt, native.SysQUt:
		y := append([]complex128(nil), b...)
		f.upperTransSolve(y, true)
		return y, native.StatusOK
	case native.SysUat, native.SysQUat:
		y := append([]complex128(nil), b...)
		f.upperTransSolve(y, false)
		return y, native.StatusOK
	default:
		return nil, native.ErrInvalidSystem
	}
}

func freeImpl(slot *native.Object) {
	if slot == nil || *slot == 0 {
		return
	}
	unregister(*slot)
	*slot = 0
}

func getLunzImpl[I native.Index](wide, cplx bool, lnz, unz, nRow, nCol, nzUdiag *I, numeric native.Object) native.Status {
	f, st := lookupNumeric(numeric, wide, cplx)
	if st.Failed() {
		return st
	}
	nzd := 0
	for i := 0; i < f.n; i++ {
		if f.lu[i*f.n+i] != 0 {
			nzd++
		}
	}
	*lnz = I(f.lnz)
	*unz = I(f.unz)
	*nRow = I(f.n)
	*nCol = I(f.n)
	*nzUdiag = I(nzd)
	return native.StatusOK
}

func getNumericImpl[I native.Index](wide, cplx bool, lp, lj []I, lx, lz []float64, up, ui []I, ux, uz []float64,
	p, q []I, dx, dz []float64, doRecip *I, rs []float64, numeric native.Object) native.Status {
	f, st := lookupNumeric(numeric, wide, cplx)
	if st.Failed() {
		return st
	}
	n := f.n
	if len(lp) < n+1 || len(up) < n+1 || len(lj) < f.lnz || len(lx) < f.lnz ||
		len(ui) < f.unz || len(ux) < f.unz || len(p) < n || len(q) < n ||
		len(dx) < n || len(rs) < n {
		return native.ErrArgumentMissing
	}
	if cplx && (len(lz) < f.lnz || len(uz) < f.unz || len(dz) < n) {
		return native.ErrArgumentMissing
	}

	// L in row form with the unit diagonal stored explicitly.
	pos := 0
	for i := 0; i < n; i++ {
		lp[i] = I(pos)
		for j := 0; j < i; j++ {
			v := f.lu[i*n+j]
			if v == 0 {
				continue
			}
			lj[pos] = I(j)
			lx[pos] = real(v)
			if cplx {
				lz[pos] = imag(v)
			}
			pos++
		}
		lj[pos] = I(i)
		lx[pos] = 1
		if cplx {
			lz[pos] = 0
		}
		pos++
	}
	lp[n] = I(pos)

	// U in column form including the diagonal.
	pos = 0
	for j := 0; j < n; j++ {
		up[j] = I(pos)
		for i := 0; i <= j; i++ {
			v := f.lu[i*n+j]
			if v == 0 {
				continue
			}
			ui[pos] = I(i)
			ux[pos] = real(v)
			if cplx {
				uz[pos] = imag(v)
			}
			pos++
		}
	}
	up[n] = I(pos)

	for k := 0; k < n; k++ {
		p[k] = I(f.perm[k])
		q[k] = I(k)
		d := f.lu[k*n+k]
		dx[k] = real(d)
		if cplx {
			dz[k] = imag(d)
		}
		rs[k] = 1
	}
	*doRecip = 0
	return native.StatusOK
}

func scaleImpl(wide, cplx bool, x, xz, b, bz []float64, numeric native.Object) native.Status {
	f, st := lookupNumeric(numeric, wide, cplx)
	if st.Failed() {
		return st
	}
	if len(x) < f.n || len(b) < f.n || (cplx && (len(xz) < f.n || len(bz) < f.n)) {
		return native.ErrArgumentMissing
	}
	// No row scaling in this backend: the scaled vector equals b.
	copy(x[:f.n], b[:f.n])
	if cplx {
		copy(xz[:f.n], bz[:f.n])
	}
	return native.StatusOK
}

func transposeImpl[I native.Index](cplx bool, nRow, nCol int, ap, ai []I, ax, az []float64, p, q []I,
	rp, ri []I, rx, rz []float64, conjugate bool) native.Status {
	if nRow <= 0 || nCol <= 0 {
		return native.ErrNNonpositive
	}
	if !validPattern(nRow, nCol, ap, ai) {
		return native.ErrInvalidMatrix
	}
	nz := int(ap[nCol])
	if len(rp) < nRow+1 || len(ri) < nz || len(rx) < nz || (cplx && len(rz) < nz) {
		return native.ErrArgumentMissing
	}

	pinv, ok := invPerm(p, nRow)
	if !ok {
		return native.ErrInvalidPermutation
	}
	qinv, ok := invPerm(q, nCol)
	if !ok {
		return native.ErrInvalidPermutation
	}

	// R = (PAQ)' in column form: column i of R collects the entries of
	// permuted row i, ordered by permuted column.
	type entry struct {
		row int
		val complex128
	}
	cols := make([][]entry, nRow)
	for c := 0; c < nCol; c++ {
		j := qinv[c]
		for k := ap[c]; k < ap[c+1]; k++ {
			i := pinv[int(ai[k])]
			v := complex(ax[k], 0)
			if cplx {
				v = complex(ax[k], az[k])
			}
			if conjugate && cplx {
				v = cmplx.Conj(v)
			}
			cols[i] = append(cols[i], entry{row: j, val: v})
		}
	}

	pos := 0
	for i := 0; i < nRow; i++ {
		rp[i] = I(pos)
		es := cols[i]
		sort.Slice(es, func(a, b int) bool { return es[a].row < es[b].row })
		for _, e := range es {
			ri[pos] = I(e.row)
			rx[pos] = real(e.val)
			if cplx {
				rz[pos] = imag(e.val)
			}
			pos++
		}
	}
	rp[nRow] = I(pos)
	return native.StatusOK
}

// invPerm inverts a permutation vector, identity when perm is absent.
func invPerm[I native.Index](perm []I, n int) ([]int, bool) {
	inv := make([]int, n)
	if perm == nil {
		for i := range inv {
			inv[i] = i
		}
		return inv, true
	}
	if len(perm) < n {
		return nil, false
	}
	seen := make([]bool, n)
	for k := 0; k < n; k++ {
		v := int(perm[k])
		if v < 0 || v >= n || seen[v] {
			return nil, false
		}
		seen[v] = true
		inv[v] = k
	}
	return inv, true
}

func tripletToColImpl[I native.Index](cplx bool, nRow, nCol, nz int, ti, tj []I, tx, tz []float64,
	ap, ai []I, ax, az []float64, mapping []I) native.Status {
	if nRow <= 0 || nCol <= 0 {
		return native.ErrNNonpositive
	}
	if nz < 0 || len(ti) < nz || len(tj) < nz || len(tx) < nz || (cplx && len(tz) < nz) {
		return native.ErrArgumentMissing
	}
	if len(ap) < nCol+1 || len(ai) < nz || len(ax) < nz || (cplx && len(az) < nz) {
		return native.ErrArgumentMissing
	}
	for k := 0; k < nz; k++ {
		if ti[k] < 0 || int(ti[k]) >= nRow || tj[k] < 0 || int(tj[k]) >= nCol {
			return native.ErrInvalidMatrix
		}
	}

	type entry struct {
		row     int
		val     complex128
		triplet []int
	}
	cols := make(map[int]map[int]*entry, nCol)
	for k := 0; k < nz; k++ {
		c, r := int(tj[k]), int(ti[k])
		v := complex(tx[k], 0)
		if cplx {
			v = complex(tx[k], tz[k])
		}
		rows := cols[c]
		if rows == nil {
			rows = make(map[int]*entry)
			cols[c] = rows
		}
		if e := rows[r]; e != nil {
			e.val += v
			e.triplet = append(e.triplet, k)
		} else {
			rows[r] = &entry{row: r, val: v, triplet: []int{k}}
		}
	}

	pos := 0
	for c := 0; c < nCol; c++ {
		ap[c] = I(pos)
		rows := cols[c]
		keys := make([]int, 0, len(rows))
		for r := range rows {
			keys = append(keys, r)
		}
		sort.Ints(keys)
		for _, r := range keys {
			e := rows[r]
			ai[pos] = I(r)
			ax[pos] = real(e.val)
			if cplx {
				az[pos] = imag(e.val)
			}
			for _, k := range e.triplet {
				if mapping != nil {
					mapping[k] = I(pos)
				}
			}
			pos++
		}
	}
	ap[nCol] = I(pos)
	return native.StatusOK
}

func colToTripletImpl[I native.Index](n int, ap []I, tj []I) native.Status {
	if n <= 0 {
		return native.ErrNNonpositive
	}
	if len(ap) < n+1 || ap[0] != 0 {
		return native.ErrInvalidMatrix
	}
	nz := int(ap[n])
	if len(tj) < nz {
		return native.ErrArgumentMissing
	}
	for j := 0; j < n; j++ {
		if ap[j+1] < ap[j] {
			return native.ErrInvalidMatrix
		}
		for k := ap[j]; k < ap[j+1]; k++ {
			tj[k] = I(j)
		}
	}
	return native.StatusOK
}

func reportControlImpl(control []float64) {
	if len(control) < native.ControlLen || control[native.ControlPRL] < 2 {
		return
	}
	fmt.Printf("reflu control: prl=%.0f pivot_tol=%g scale=%.0f\n",
		control[native.ControlPRL], control[native.ControlPivotTolerance], control[native.ControlScale])
}

func reportInfoImpl(control, info []float64) {
	if len(control) < native.ControlLen || control[native.ControlPRL] < 2 || len(info) < native.InfoLen {
		return
	}
	fmt.Printf("reflu info: status=%.0f n=%.0fx%.0f nz=%.0f lnz=%.0f unz=%.0f rcond=%g\n",
		info[native.InfoStatus], info[native.InfoNRow], info[native.InfoNCol],
		info[native.InfoNZ], info[native.InfoLNZ], info[native.InfoUNZ], info[native.InfoRCond])
}

func reportSymbolicImpl(symbolic native.Object, control []float64) native.Status {
	v, ok := lookup(symbolic)
	if !ok {
		return native.ErrInvalidSymbolicObject
	}
	s, ok := v.(*symbolicObj)
	if !ok {
		return native.ErrInvalidSymbolicObject
	}
	if len(control) >= native.ControlLen && control[native.ControlPRL] >= 2 {
		fmt.Printf("reflu symbolic: %dx%d nz=%d\n", s.nRow, s.nCol, len(s.ai))
	}
	return native.StatusOK
}

func reportNumericImpl(numeric native.Object, control []float64) native.Status {
	v, ok := lookup(numeric)
	if !ok {
		return native.ErrInvalidNumericObject
	}
	f, ok := v.(*numericObj)
	if !ok {
		return native.ErrInvalidNumericObject
	}
	if len(control) >= native.ControlLen && control[native.ControlPRL] >= 2 {
		fmt.Printf("reflu numeric: n=%d lnz=%d unz=%d rcond=%g\n", f.n, f.lnz, f.unz, f.rcond)
	}
	return native.StatusOK
}
