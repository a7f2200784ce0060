package umf

import (
	"math"

	"go.uber.org/zap"

	"github.com/sparsekit/umfbridge/errors"
	"github.com/sparsekit/umfbridge/marshal"
	"github.com/sparsekit/umfbridge/native"
	"github.com/sparsekit/umfbridge/sparse"
)

// flipSys maps a system code to its transpose counterpart. Only the A
// family of codes is meaningful against a transposed factorization.
func flipSys(sys native.Sys) (native.Sys, error) {
	switch sys {
	case native.SysA:
		return native.SysAat, nil
	case native.SysAt, native.SysAat:
		return native.SysA, nil
	default:
		return 0, errors.InvalidInput(errors.PhaseDriver,
			"system code cannot be flipped for a row-compressed matrix")
	}
}

// Solve computes the solution of the system selected by sys for a real
// matrix, factorizing first when needed.
func (c *Context[I]) Solve(sys native.Sys, m *sparse.Matrix[I], b []float64) ([]float64, error) {
	if m != nil && m.Complex() {
		return nil, errors.InvalidInput(errors.PhaseDriver,
			"complex matrix passed to real solve, use SolveComplex")
	}
	x, _, err := c.solve(sys, m, b, nil)
	return x, err
}

// SolveComplex computes the solution for a complex matrix.
func (c *Context[I]) SolveComplex(sys native.Sys, m *sparse.Matrix[I], b []complex128) ([]complex128, error) {
	if m != nil && !m.Complex() {
		return nil, errors.InvalidInput(errors.PhaseDriver,
			"real matrix passed to complex solve, use Solve")
	}
	br, bi := marshal.SplitComplex(b)
	xr, xi, err := c.solve(sys, m, br, bi)
	if err != nil {
		return nil, err
	}
	return marshal.CombineComplex(xr, xi), nil
}

// LinSolve is the one-shot entry point: factorize when no numeric
// factor is live, then solve.
func (c *Context[I]) LinSolve(sys native.Sys, m *sparse.Matrix[I], b []float64) ([]float64, error) {
	if c.numeric == nil || !c.numeric.Live() {
		if err := c.Numeric(m); err != nil {
			return nil, err
		}
	}
	return c.Solve(sys, m, b)
}

func (c *Context[I]) solve(sys native.Sys, m *sparse.Matrix[I], b, bz []float64) (x, xz []float64, err error) {
	if !sys.Valid() {
		return nil, nil, errors.InvalidInput(errors.PhaseDriver, "unknown system code")
	}
	_, _, flip, err := c.prepare(m)
	if err != nil {
		return nil, nil, err
	}
	if flip {
		if sys, err = flipSys(sys); err != nil {
			return nil, nil, err
		}
	}
	if c.numeric == nil || !c.numeric.Live() {
		if err := c.Numeric(m); err != nil {
			return nil, nil, err
		}
	}
	rt, fam, err := routinesFor[I](c.cfg.lib, m.Complex())
	if err != nil {
		return nil, nil, err
	}

	n := m.NRow
	if sys == native.SysAt || sys == native.SysAat {
		n = m.NCol
	}
	if len(b) != n {
		return nil, nil, errors.BadLength(errors.PhaseDriver, []string{"b"}, len(b), n)
	}
	if m.Complex() && len(bz) != n {
		return nil, nil, errors.BadLength(errors.PhaseDriver, []string{"bz"}, len(bz), n)
	}

	x = make([]float64, n)
	if m.Complex() {
		xz = make([]float64, n)
	}
	st := rt.Solve(sys, m.Ap, m.Ai, m.Ax, m.Az, x, xz, b, bz, c.numeric.Object(), c.control, c.info)
	if st.Failed() {
		return nil, nil, errors.Status(opName(fam, "solve"), int(st), st.String())
	}
	if st == native.WarningSingularMatrix {
		zeroed := zeroNonFinite(x) + zeroNonFinite(xz)
		c.cfg.log.Warn("singular matrix solve",
			zap.Int("zeroed", zeroed),
			zap.Float64("rcond", c.info[native.InfoRCond]))
	}
	if rcond := c.info[native.InfoRCond]; rcond > 0 && 1/rcond > c.cfg.maxCond {
		c.cfg.log.Warn("matrix is nearly singular",
			zap.Float64("rcond", rcond),
			zap.Float64("max_cond", c.cfg.maxCond))
	}
	return x, xz, nil
}

// zeroNonFinite replaces NaN and infinite entries with zero so that a
// singular solve returns a usable least-effort vector.
func zeroNonFinite(v []float64) int {
	zeroed := 0
	for i, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			v[i] = 0
			zeroed++
		}
	}
	return zeroed
}
