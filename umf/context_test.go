package umf

import (
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sparsekit/umfbridge/errors"
	"github.com/sparsekit/umfbridge/native"
	"github.com/sparsekit/umfbridge/sparse"
)

// testMatrix is
//
//	[ 4  0 -1 ]
//	[ 0  4  0 ]
//	[-1  0  4 ]
//
// with A*ones = [3, 4, 3] and A\ones = [1/3, 1/4, 1/3].
func testMatrix() *sparse.Matrix[int32] {
	return &sparse.Matrix[int32]{
		NRow: 3, NCol: 3,
		Ap: []int32{0, 2, 3, 5},
		Ai: []int32{0, 2, 1, 0, 2},
		Ax: []float64{4, -1, 4, -1, 4},
	}
}

func checkClose(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length %d, want %d", len(got), len(want))
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("x[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func observedContext[I native.Index](level zapcore.Level, opts ...Option) (*Context[I], *observer.ObservedLogs) {
	core, logs := observer.New(level)
	opts = append(opts, WithLogger(zap.New(core)))
	return New[I](opts...), logs
}

func TestLinSolve(t *testing.T) {
	c := New[int32]()
	defer c.Free()

	x, err := c.LinSolve(native.SysA, testMatrix(), []float64{1, 1, 1})
	if err != nil {
		t.Fatalf("linsolve: %v", err)
	}
	checkClose(t, x, []float64{1.0 / 3, 0.25, 1.0 / 3})
	if st := c.LastStatus(); st != native.StatusOK {
		t.Fatalf("status after solve: %v", st)
	}
	if c.Family() != DI {
		t.Fatalf("family: %v", c.Family())
	}
}

func TestSolveReusesFactors(t *testing.T) {
	c := New[int32]()
	defer c.Free()

	m := testMatrix()
	if err := c.Numeric(m); err != nil {
		t.Fatalf("numeric: %v", err)
	}
	if c.Table().Len() != 2 {
		t.Fatalf("live handles after factorization: %d", c.Table().Len())
	}
	x1, err := c.Solve(native.SysA, m, []float64{1, 1, 1})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	x2, err := c.Solve(native.SysA, m, []float64{3, 4, 3})
	if err != nil {
		t.Fatalf("second solve: %v", err)
	}
	checkClose(t, x1, []float64{1.0 / 3, 0.25, 1.0 / 3})
	checkClose(t, x2, []float64{1, 1, 1})
	if c.Table().Len() != 2 {
		t.Fatalf("solve must not grow the handle table, got %d", c.Table().Len())
	}
}

func TestRefactorizeOnPatternChange(t *testing.T) {
	c, logs := observedContext[int32](zapcore.DebugLevel)
	defer c.Free()

	if err := c.Numeric(testMatrix()); err != nil {
		t.Fatalf("first numeric: %v", err)
	}

	// Same shape, different pattern: the stale symbolic object is
	// recomputed and the factorization retried.
	m2 := &sparse.Matrix[int32]{
		NRow: 3, NCol: 3,
		Ap: []int32{0, 1, 3, 4},
		Ai: []int32{0, 1, 2, 2},
		Ax: []float64{2, 3, -1, 5},
	}
	if err := c.Numeric(m2); err != nil {
		t.Fatalf("numeric after pattern change: %v", err)
	}
	if logs.FilterMessage("symbolic object stale, refactorizing").Len() != 1 {
		t.Fatal("expected one refactorization")
	}

	x, err := c.Solve(native.SysA, m2, []float64{2, 3, 5})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	checkClose(t, x, []float64{1, 1, 1.2})
}

func TestSingularSolveZeroesAndWarns(t *testing.T) {
	c, logs := observedContext[int32](zapcore.WarnLevel)
	defer c.Free()

	// Middle column identically zero.
	m := &sparse.Matrix[int32]{
		NRow: 3, NCol: 3,
		Ap: []int32{0, 1, 1, 2},
		Ai: []int32{0, 2},
		Ax: []float64{1, 1},
	}
	x, err := c.LinSolve(native.SysA, m, []float64{1, 1, 1})
	if err != nil {
		t.Fatalf("singular solve must warn, not fail: %v", err)
	}
	for i, f := range x {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			t.Fatalf("x[%d] = %v, non-finite entries must be zeroed", i, f)
		}
	}
	if logs.FilterMessage("singular matrix").Len() == 0 {
		t.Fatal("missing singular factorization warning")
	}
	if logs.FilterMessage("singular matrix solve").Len() == 0 {
		t.Fatal("missing singular solve warning")
	}
}

func TestMaxCondWarning(t *testing.T) {
	c, logs := observedContext[int32](zapcore.WarnLevel, WithMaxCond(1))
	defer c.Free()

	if _, err := c.LinSolve(native.SysA, testMatrix(), []float64{1, 1, 1}); err != nil {
		t.Fatalf("linsolve: %v", err)
	}
	entries := logs.FilterMessage("matrix is nearly singular").All()
	if len(entries) != 1 {
		t.Fatalf("expected one condition warning, got %d", len(entries))
	}
	for _, f := range entries[0].Context {
		if f.Key == "max_cond" && f.Type == zapcore.Float64Type {
			return
		}
	}
	t.Fatal("condition warning missing max_cond field")
}

func TestFreeIsIdempotent(t *testing.T) {
	c := New[int32]()
	if err := c.Numeric(testMatrix()); err != nil {
		t.Fatalf("numeric: %v", err)
	}
	if err := c.Free(); err != nil {
		t.Fatalf("free: %v", err)
	}
	if c.Table().Len() != 0 {
		t.Fatalf("handles alive after free: %d", c.Table().Len())
	}
	if err := c.Free(); err != nil {
		t.Fatalf("second free: %v", err)
	}
	if _, _, _, _, _, err := c.Lunz(); !errors.Matches(err, errors.PhaseDriver, errors.KindNotInitialized) {
		t.Fatalf("lunz after free: %v", err)
	}
}

func TestLUReconstruction(t *testing.T) {
	c := New[int32]()
	defer c.Free()

	m := testMatrix()
	f, err := c.LU(m)
	if err != nil {
		t.Fatalf("lu: %v", err)
	}
	lnz, unz, nRow, nCol, nzUdiag, err := c.Lunz()
	if err != nil {
		t.Fatalf("lunz: %v", err)
	}
	if nRow != 3 || nCol != 3 {
		t.Fatalf("factored shape %dx%d", nRow, nCol)
	}
	if f.L.NNZ() != lnz || f.U.NNZ() != unz {
		t.Fatalf("factor sizes %d/%d, lunz reported %d/%d", f.L.NNZ(), f.U.NNZ(), lnz, unz)
	}
	if nzUdiag != 3 {
		t.Fatalf("U diagonal nonzeros: %d", nzUdiag)
	}

	// Check P R A Q = L U entry by entry. The reference backend keeps
	// R at one and DoRecip unset, so the row scaling divides by one.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var lu complex128
			for k := 0; k < 3; k++ {
				lu += f.L.At(i, k) * f.U.At(k, j)
			}
			a := m.At(int(f.P[i]), int(f.Q[j]))
			r := f.R[f.P[i]]
			if f.DoRecip {
				a *= complex(r, 0)
			} else {
				a /= complex(r, 0)
			}
			if math.Abs(real(lu-a)) > 1e-12 || math.Abs(imag(lu-a)) > 1e-12 {
				t.Fatalf("LU(%d,%d) = %v, want %v", i, j, lu, a)
			}
		}
	}
}

func TestCSRAutoTranspose(t *testing.T) {
	// A = [[2, 1], [0, 3]], stored once per orientation.
	csc := &sparse.Matrix[int32]{
		NRow: 2, NCol: 2,
		Ap: []int32{0, 1, 3},
		Ai: []int32{0, 0, 1},
		Ax: []float64{2, 1, 3},
	}
	csr := &sparse.Matrix[int32]{
		Kind: sparse.CSR,
		NRow: 2, NCol: 2,
		Ap: []int32{0, 2, 3},
		Ai: []int32{0, 1, 1},
		Ax: []float64{2, 1, 3},
	}
	b := []float64{1, 1}

	cc := New[int32]()
	defer cc.Free()
	want, err := cc.LinSolve(native.SysA, csc, b)
	if err != nil {
		t.Fatalf("csc solve: %v", err)
	}

	cr := New[int32]()
	defer cr.Free()
	got, err := cr.LinSolve(native.SysA, csr, b)
	if err != nil {
		t.Fatalf("csr solve: %v", err)
	}
	checkClose(t, got, want)
	checkClose(t, got, []float64{1.0 / 3, 1.0 / 3})

	// Transpose systems flip the other way.
	wantT, err := cc.Solve(native.SysAt, csc, b)
	if err != nil {
		t.Fatalf("csc transpose solve: %v", err)
	}
	gotT, err := cr.Solve(native.SysAt, csr, b)
	if err != nil {
		t.Fatalf("csr transpose solve: %v", err)
	}
	checkClose(t, gotT, wantT)
}

func TestCSRRejections(t *testing.T) {
	csr := &sparse.Matrix[int32]{
		Kind: sparse.CSR,
		NRow: 2, NCol: 2,
		Ap: []int32{0, 1, 2},
		Ai: []int32{0, 1},
		Ax: []float64{1, 1},
	}

	c := New[int32]()
	defer c.Free()
	// Only the A family of system codes has a transpose counterpart.
	if _, err := c.LinSolve(native.SysL, csr, []float64{1, 1}); !errors.Matches(err, errors.PhaseDriver, errors.KindInvalidInput) {
		t.Fatalf("SysL against row storage: %v", err)
	}

	noAuto := New[int32](WithAutoTranspose(false))
	defer noAuto.Free()
	if err := noAuto.Numeric(csr); !errors.Matches(err, errors.PhaseDriver, errors.KindInvalidInput) {
		t.Fatalf("auto-transpose disabled: %v", err)
	}

	cplx := &sparse.Matrix[int32]{
		Kind: sparse.CSR,
		NRow: 1, NCol: 1,
		Ap: []int32{0, 1},
		Ai: []int32{0},
		Ax: []float64{1},
		Az: []float64{0},
	}
	if err := c.Numeric(cplx); !errors.Matches(err, errors.PhaseDriver, errors.KindInvalidInput) {
		t.Fatalf("complex row storage: %v", err)
	}
}

func TestSolveComplex(t *testing.T) {
	// diag(2+i, 1-i)
	m := &sparse.Matrix[int32]{
		NRow: 2, NCol: 2,
		Ap: []int32{0, 1, 2},
		Ai: []int32{0, 1},
		Ax: []float64{2, 1},
		Az: []float64{1, -1},
	}
	c := New[int32]()
	defer c.Free()

	x, err := c.SolveComplex(native.SysA, m, []complex128{1, 1})
	if err != nil {
		t.Fatalf("complex solve: %v", err)
	}
	want := []complex128{complex(0.4, -0.2), complex(0.5, 0.5)}
	for i := range x {
		if math.Abs(real(x[i]-want[i])) > 1e-12 || math.Abs(imag(x[i]-want[i])) > 1e-12 {
			t.Fatalf("x[%d] = %v, want %v", i, x[i], want[i])
		}
	}
	if c.Family() != ZI {
		t.Fatalf("family: %v", c.Family())
	}

	// Domain mismatches route to the other entry point.
	if _, err := c.Solve(native.SysA, m, []float64{1, 1}); err == nil {
		t.Fatal("real solve accepted a complex matrix")
	}
	if _, err := c.SolveComplex(native.SysA, testMatrix(), []complex128{1, 1, 1}); err == nil {
		t.Fatal("complex solve accepted a real matrix")
	}
}

func TestBadRHSLength(t *testing.T) {
	c := New[int32]()
	defer c.Free()
	if _, err := c.LinSolve(native.SysA, testMatrix(), []float64{1, 1}); !errors.Matches(err, errors.PhaseDriver, errors.KindBadLength) {
		t.Fatalf("short rhs: %v", err)
	}
}

func TestMissingVariantIsConfigError(t *testing.T) {
	lib := &native.Library{Name: "di-only", DI: DefaultLibrary().DI}
	c := New[int64](WithLibrary(lib))
	err := c.Numeric(&sparse.Matrix[int64]{
		NRow: 1, NCol: 1,
		Ap: []int64{0, 1},
		Ai: []int64{0},
		Ax: []float64{1},
	})
	if !errors.Matches(err, errors.PhaseDispatch, errors.KindNoVariant) {
		t.Fatalf("missing dl variant: %v", err)
	}
}

func TestControlRoundTrip(t *testing.T) {
	c := New[int32]()
	if c.Control()[native.ControlPivotTolerance] == 0 {
		t.Fatal("defaults not loaded into control vector")
	}
	entries := c.ControlEntries()
	if len(entries) == 0 || c.ControlString() == "" {
		t.Fatal("control report empty")
	}
	if err := c.Numeric(testMatrix()); err != nil {
		t.Fatalf("numeric: %v", err)
	}
	defer c.Free()
	if c.InfoString() == "" || c.RCond() <= 0 {
		t.Fatal("info report empty after factorization")
	}
}
