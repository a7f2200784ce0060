package reflu

import (
	"math"
	"math/cmplx"
)

// symbolicObj captures the pattern a symbolic factorization was computed
// from. The elimination ordering of this backend is trivial, so the
// pattern copy is all the state a numeric call needs to verify against.
type symbolicObj struct {
	ap   []int64
	ai   []int64
	nRow int
	nCol int
	wide bool
	cplx bool
}

// numericObj holds the computed dense factors: PA = LU with L unit
// lower triangular, stored row-major in one buffer.
type numericObj struct {
	lu       []complex128
	perm     []int // perm[k] = original row eliminated at step k
	n        int
	lnz      int // entries of L including the unit diagonal
	unz      int // entries of U including the diagonal
	rcond    float64
	singular bool
	wide     bool
	cplx     bool
}

// buildDense scatters a CSC matrix into a dense row-major buffer.
// Duplicate entries within a column are summed.
func buildDense(n int, ap, ai []int64, ax, az []float64) []complex128 {
	a := make([]complex128, n*n)
	for j := 0; j < n; j++ {
		for p := ap[j]; p < ap[j+1]; p++ {
			i := ai[p]
			v := complex(ax[p], 0)
			if az != nil {
				v = complex(ax[p], az[p])
			}
			a[int(i)*n+j] += v
		}
	}
	return a
}

// luFactor runs Doolittle elimination with partial pivoting in place.
// A zero pivot marks the factorization singular but elimination
// continues, matching the native library's warning-and-proceed
// behavior: solves against a singular factorization produce
// non-finite entries instead of failing.
func luFactor(n int, a []complex128) (perm []int, singular bool) {
	perm = make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	for k := 0; k < n; k++ {
		// Pivot on the largest magnitude in column k.
		pivRow := k
		pivMag := cmplx.Abs(a[k*n+k])
		for i := k + 1; i < n; i++ {
			if m := cmplx.Abs(a[i*n+k]); m > pivMag {
				pivMag = m
				pivRow = i
			}
		}
		if pivRow != k {
			for j := 0; j < n; j++ {
				a[k*n+j], a[pivRow*n+j] = a[pivRow*n+j], a[k*n+j]
			}
			perm[k], perm[pivRow] = perm[pivRow], perm[k]
		}

		piv := a[k*n+k]
		if piv == 0 {
			singular = true
			continue
		}
		for i := k + 1; i < n; i++ {
			m := a[i*n+k] / piv
			a[i*n+k] = m
			if m == 0 {
				continue
			}
			for j := k + 1; j < n; j++ {
				a[i*n+j] -= m * a[k*n+j]
			}
		}
	}
	return perm, singular
}

// factorStats counts stored factor entries and estimates the reciprocal
// condition number from the U diagonal, the same cheap estimate the
// native library reports.
func (f *numericObj) factorStats() {
	n := f.n
	minD, maxD := math.Inf(1), 0.0
	lnz, unz := 0, 0
	for i := 0; i < n; i++ {
		lnz++ // unit diagonal of L
		for j := 0; j < i; j++ {
			if f.lu[i*n+j] != 0 {
				lnz++
			}
		}
		for j := i; j < n; j++ {
			if f.lu[i*n+j] != 0 {
				unz++
			}
		}
		d := cmplx.Abs(f.lu[i*n+i])
		if d < minD {
			minD = d
		}
		if d > maxD {
			maxD = d
		}
	}
	f.lnz, f.unz = lnz, unz
	if maxD == 0 {
		f.rcond = 0
	} else {
		f.rcond = minD / maxD
	}
}

// lowerSolve solves Ly = b in place with L unit lower triangular.
func (f *numericObj) lowerSolve(y []complex128) {
	n := f.n
	for i := 1; i < n; i++ {
		s := y[i]
		for j := 0; j < i; j++ {
			if m := f.lu[i*n+j]; m != 0 {
				s -= m * y[j]
			}
		}
		y[i] = s
	}
}

// upperSolve solves Ux = y in place.
func (f *numericObj) upperSolve(x []complex128) {
	n := f.n
	for i := n - 1; i >= 0; i-- {
		s := x[i]
		for j := i + 1; j < n; j++ {
			if u := f.lu[i*n+j]; u != 0 {
				s -= u * x[j]
			}
		}
		x[i] = s / f.lu[i*n+i]
	}
}

// lowerTransSolve solves L'y = b (conj=true) or L.'y = b in place.
func (f *numericObj) lowerTransSolve(y []complex128, conj bool) {
	n := f.n
	for i := n - 2; i >= 0; i-- {
		s := y[i]
		for j := i + 1; j < n; j++ {
			m := f.lu[j*n+i]
			if m == 0 {
				continue
			}
			if conj {
				m = cmplx.Conj(m)
			}
			s -= m * y[j]
		}
		y[i] = s
	}
}

// upperTransSolve solves U'x = y (conj=true) or U.'x = y in place.
func (f *numericObj) upperTransSolve(x []complex128, conj bool) {
	n := f.n
	for i := 0; i < n; i++ {
		s := x[i]
		for j := 0; j < i; j++ {
			u := f.lu[j*n+i]
			if u == 0 {
				continue
			}
			if conj {
				u = cmplx.Conj(u)
			}
			s -= u * x[j]
		}
		d := f.lu[i*n+i]
		if conj {
			d = cmplx.Conj(d)
		}
		x[i] = s / d
	}
}

// applyPerm gathers b into Pb: out[k] = b[perm[k]].
func (f *numericObj) applyPerm(b []complex128) []complex128 {
	out := make([]complex128, len(b))
	for k, p := range f.perm {
		out[k] = b[p]
	}
	return out
}

// applyPermInv scatters y into P'y: out[perm[k]] = y[k].
func (f *numericObj) applyPermInv(y []complex128) []complex128 {
	out := make([]complex128, len(y))
	for k, p := range f.perm {
		out[p] = y[k]
	}
	return out
}
