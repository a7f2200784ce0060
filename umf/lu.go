package umf

import (
	"github.com/sparsekit/umfbridge/errors"
	"github.com/sparsekit/umfbridge/native"
	"github.com/sparsekit/umfbridge/sparse"
)

// Factors holds the parts of a numeric factorization,
//
//	P R A Q = L U
//
// with L row-compressed including its unit diagonal, U
// column-compressed, P and Q the row and column permutations, and R the
// row scaling. When DoRecip is set the scale factors multiply instead
// of divide.
type Factors[I native.Index] struct {
	L       *sparse.Matrix[I]
	U       *sparse.Matrix[I]
	P, Q    []I
	R       []float64
	DoRecip bool
}

// LU extracts the factors of the numeric factorization, computing it
// first when needed.
func (c *Context[I]) LU(m *sparse.Matrix[I]) (*Factors[I], error) {
	if c.numeric == nil || !c.numeric.Live() {
		if err := c.Numeric(m); err != nil {
			return nil, err
		}
	}
	cplx := c.family.Complex()
	rt, fam, err := routinesFor[I](c.cfg.lib, cplx)
	if err != nil {
		return nil, err
	}
	obj := c.numeric.Object()

	var lnz, unz, nRow, nCol, nzUdiag I
	if st := rt.GetLunz(&lnz, &unz, &nRow, &nCol, &nzUdiag, obj); st.Failed() {
		return nil, errors.Status(opName(fam, "get_lunz"), int(st), st.String())
	}

	n := int(nRow)
	f := &Factors[I]{
		L: &sparse.Matrix[I]{
			Kind: sparse.CSR,
			NRow: n, NCol: n,
			Ap: make([]I, n+1),
			Ai: make([]I, lnz),
			Ax: make([]float64, lnz),
		},
		U: &sparse.Matrix[I]{
			NRow: n, NCol: int(nCol),
			Ap: make([]I, int(nCol)+1),
			Ai: make([]I, unz),
			Ax: make([]float64, unz),
		},
		P: make([]I, n),
		Q: make([]I, int(nCol)),
		R: make([]float64, n),
	}
	var lz, uz, dz []float64
	dx := make([]float64, n)
	if cplx {
		f.L.Az = make([]float64, lnz)
		f.U.Az = make([]float64, unz)
		lz, uz = f.L.Az, f.U.Az
		dz = make([]float64, n)
	}

	var doRecip I
	st := rt.GetNumeric(f.L.Ap, f.L.Ai, f.L.Ax, lz,
		f.U.Ap, f.U.Ai, f.U.Ax, uz,
		f.P, f.Q, dx, dz, &doRecip, f.R, obj)
	if st.Failed() {
		return nil, errors.Status(opName(fam, "get_numeric"), int(st), st.String())
	}
	f.DoRecip = doRecip != 0
	return f, nil
}

// Lunz reports the factor sizes of the live numeric factorization: the
// entry counts of L and U, the factored dimensions, and the number of
// nonzeros on the diagonal of U.
func (c *Context[I]) Lunz() (lnz, unz, nRow, nCol, nzUdiag int, err error) {
	if c.numeric == nil || !c.numeric.Live() {
		return 0, 0, 0, 0, 0, errors.NotInitialized("numeric factorization")
	}
	rt, fam, err := routinesFor[I](c.cfg.lib, c.family.Complex())
	if err != nil {
		return 0, 0, 0, 0, 0, err
	}
	var a, b, r, co, d I
	if st := rt.GetLunz(&a, &b, &r, &co, &d, c.numeric.Object()); st.Failed() {
		return 0, 0, 0, 0, 0, errors.Status(opName(fam, "get_lunz"), int(st), st.String())
	}
	return int(a), int(b), int(r), int(co), int(d), nil
}
