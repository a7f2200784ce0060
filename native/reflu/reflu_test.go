package reflu

import (
	"math"
	"testing"

	"github.com/sparsekit/umfbridge/native"
)

// 3x3 test system:
//
//	[ 4  0 -1 ]       [1]
//	[ 0  4  0 ]   b = [1]
//	[-1  0  4 ]       [1]
var (
	testAp = []int32{0, 2, 3, 5}
	testAi = []int32{0, 2, 1, 0, 2}
	testAx = []float64{4, -1, 4, -1, 4}
	testB  = []float64{1, 1, 1}
)

func factorTest(t *testing.T, r *native.Routines[int32]) (sym, num native.Object, control, info []float64) {
	t.Helper()
	control = make([]float64, native.ControlLen)
	info = make([]float64, native.InfoLen)
	r.Defaults(control)

	if st := r.Symbolic(3, 3, testAp, testAi, testAx, nil, &sym, control, info); st != native.StatusOK {
		t.Fatalf("symbolic: %v", st)
	}
	if sym == 0 {
		t.Fatal("symbolic slot not filled")
	}
	if st := r.Numeric(testAp, testAi, testAx, nil, sym, &num, control, info); st != native.StatusOK {
		t.Fatalf("numeric: %v", st)
	}
	if num == 0 {
		t.Fatal("numeric slot not filled")
	}
	return sym, num, control, info
}

func TestSolve3x3(t *testing.T) {
	r := Library().DI
	sym, num, control, info := factorTest(t, r)
	defer r.FreeSymbolic(&sym)
	defer r.FreeNumeric(&num)

	x := make([]float64, 3)
	if st := r.Solve(native.SysA, testAp, testAi, testAx, nil, x, nil, testB, nil, num, control, info); st != native.StatusOK {
		t.Fatalf("solve: %v", st)
	}
	want := []float64{1.0 / 3, 0.25, 1.0 / 3}
	for i := range want {
		if math.Abs(x[i]-want[i]) > 1e-12 {
			t.Fatalf("x[%d] = %v, want %v", i, x[i], want[i])
		}
	}
	if info[native.InfoRCond] <= 0 || info[native.InfoRCond] > 1 {
		t.Fatalf("rcond out of range: %v", info[native.InfoRCond])
	}
}

func TestSolveTransposeSystems(t *testing.T) {
	r := Library().DI
	sym, num, control, info := factorTest(t, r)
	defer r.FreeSymbolic(&sym)
	defer r.FreeNumeric(&num)

	// The matrix is symmetric, the transpose solve must agree with the
	// plain solve.
	x := make([]float64, 3)
	xt := make([]float64, 3)
	if st := r.Solve(native.SysA, testAp, testAi, testAx, nil, x, nil, testB, nil, num, control, info); !st.OK() {
		t.Fatalf("solve A: %v", st)
	}
	if st := r.Solve(native.SysAt, testAp, testAi, testAx, nil, xt, nil, testB, nil, num, control, info); !st.OK() {
		t.Fatalf("solve At: %v", st)
	}
	for i := range x {
		if math.Abs(x[i]-xt[i]) > 1e-12 {
			t.Fatalf("transpose solve differs at %d: %v vs %v", i, x[i], xt[i])
		}
	}
}

func TestFreeNullsSlot(t *testing.T) {
	r := Library().DI
	sym, num, _, _ := factorTest(t, r)

	before := liveObjects()
	r.FreeNumeric(&num)
	if num != 0 {
		t.Fatal("free must null the slot")
	}
	r.FreeNumeric(&num) // second free is a no-op
	r.FreeSymbolic(&sym)
	if sym != 0 {
		t.Fatal("free must null the symbolic slot")
	}
	if got := liveObjects(); got != before-2 {
		t.Fatalf("live objects: %d, want %d", got, before-2)
	}
}

func TestStaleSymbolicRejected(t *testing.T) {
	r := Library().DI
	sym, num, control, info := factorTest(t, r)
	defer r.FreeNumeric(&num)
	r.FreeSymbolic(&sym)

	var num2 native.Object
	st := r.Numeric(testAp, testAi, testAx, nil, sym, &num2, control, info)
	if st != native.ErrInvalidSymbolicObject {
		t.Fatalf("numeric with freed symbolic: %v", st)
	}
}

func TestDifferentPattern(t *testing.T) {
	r := Library().DI
	sym, num, control, info := factorTest(t, r)
	defer r.FreeSymbolic(&sym)
	defer r.FreeNumeric(&num)

	otherAp := []int32{0, 1, 2, 3}
	otherAi := []int32{0, 1, 2}
	otherAx := []float64{1, 1, 1}
	var num2 native.Object
	if st := r.Numeric(otherAp, otherAi, otherAx, nil, sym, &num2, control, info); st != native.ErrDifferentPattern {
		t.Fatalf("pattern change: %v", st)
	}
}

func TestSymbolicRejectsBadInput(t *testing.T) {
	r := Library().DI
	control := make([]float64, native.ControlLen)
	info := make([]float64, native.InfoLen)
	var sym native.Object

	if st := r.Symbolic(0, 3, testAp, testAi, testAx, nil, &sym, control, info); st != native.ErrNNonpositive {
		t.Fatalf("n=0: %v", st)
	}
	badAp := []int32{0, 2, 1, 5} // decreasing
	if st := r.Symbolic(3, 3, badAp, testAi, testAx, nil, &sym, control, info); st != native.ErrInvalidMatrix {
		t.Fatalf("bad pointers: %v", st)
	}
	badAi := []int32{0, 5, 1, 0, 2} // row out of range
	if st := r.Symbolic(3, 3, testAp, badAi, testAx, nil, &sym, control, info); st != native.ErrInvalidMatrix {
		t.Fatalf("bad rows: %v", st)
	}
	if info[native.InfoStatus] != float64(native.ErrInvalidMatrix) {
		t.Fatalf("status not recorded in info: %v", info[native.InfoStatus])
	}
}

func TestSingularWarning(t *testing.T) {
	r := Library().DI
	control := make([]float64, native.ControlLen)
	info := make([]float64, native.InfoLen)
	r.Defaults(control)

	// Second column is zero.
	ap := []int32{0, 1, 1, 2}
	ai := []int32{0, 2}
	ax := []float64{1, 1}
	var sym, num native.Object
	if st := r.Symbolic(3, 3, ap, ai, ax, nil, &sym, control, info); !st.OK() {
		t.Fatalf("symbolic: %v", st)
	}
	defer r.FreeSymbolic(&sym)
	st := r.Numeric(ap, ai, ax, nil, sym, &num, control, info)
	if st != native.WarningSingularMatrix {
		t.Fatalf("singular: %v", st)
	}
	defer r.FreeNumeric(&num)
	if !st.Warning() || st.Failed() {
		t.Fatal("singular must be a warning, not a failure")
	}
}

func TestGetLunzAndGetNumeric(t *testing.T) {
	r := Library().DI
	sym, num, _, _ := factorTest(t, r)
	defer r.FreeSymbolic(&sym)
	defer r.FreeNumeric(&num)

	var lnz, unz, nRow, nCol, nzUdiag int32
	if st := r.GetLunz(&lnz, &unz, &nRow, &nCol, &nzUdiag, num); !st.OK() {
		t.Fatalf("get_lunz: %v", st)
	}
	if nRow != 3 || nCol != 3 || nzUdiag != 3 {
		t.Fatalf("get_lunz dims: %d %d %d", nRow, nCol, nzUdiag)
	}

	lp := make([]int32, 4)
	lj := make([]int32, lnz)
	lx := make([]float64, lnz)
	up := make([]int32, 4)
	ui := make([]int32, unz)
	ux := make([]float64, unz)
	p := make([]int32, 3)
	q := make([]int32, 3)
	dx := make([]float64, 3)
	rs := make([]float64, 3)
	var doRecip int32
	if st := r.GetNumeric(lp, lj, lx, nil, up, ui, ux, nil, p, q, dx, nil, &doRecip, rs, num); !st.OK() {
		t.Fatalf("get_numeric: %v", st)
	}

	// Reconstruct P*A from L (row form) times U (column form) and
	// compare entrywise. Q is the identity and scaling is trivial here.
	n := 3
	lu := func(i, j int) float64 {
		var sum float64
		for k := lp[i]; k < lp[i+1]; k++ {
			col := lj[k]
			for m := up[j]; m < up[j+1]; m++ {
				if ui[m] == col {
					sum += lx[k] * ux[m]
				}
			}
		}
		return sum
	}
	dense := [3][3]float64{{4, 0, -1}, {0, 4, 0}, {-1, 0, 4}}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := dense[p[i]][q[j]]
			if math.Abs(lu(i, j)-want) > 1e-12 {
				t.Fatalf("LU(%d,%d) = %v, want %v", i, j, lu(i, j), want)
			}
		}
	}
	for i := 0; i < n; i++ {
		if rs[i] != 1 {
			t.Fatalf("row scale %d = %v", i, rs[i])
		}
	}
}

func TestTripletToColSumsDuplicates(t *testing.T) {
	r := Library().DI
	ti := []int32{0, 1, 0, 0}
	tj := []int32{0, 1, 0, 1}
	tx := []float64{1, 2, 3, 4}
	ap := make([]int32, 3)
	ai := make([]int32, 4)
	ax := make([]float64, 4)
	mapping := make([]int32, 4)

	if st := r.TripletToCol(2, 2, 4, ti, tj, tx, nil, ap, ai, ax, nil, mapping); !st.OK() {
		t.Fatalf("triplet_to_col: %v", st)
	}
	// (0,0) appears twice and must be summed.
	if ap[2] != 3 {
		t.Fatalf("merged entry count: %d", ap[2])
	}
	if ax[0] != 4 {
		t.Fatalf("duplicate sum: %v", ax[0])
	}
	if mapping[0] != mapping[2] {
		t.Fatal("duplicates must map to the same merged slot")
	}

	// Round trip through col_to_triplet recovers the column indices.
	tjOut := make([]int32, 3)
	if st := r.ColToTriplet(2, ap, tjOut); !st.OK() {
		t.Fatalf("col_to_triplet: %v", st)
	}
	if tjOut[0] != 0 || tjOut[1] != 1 || tjOut[2] != 1 {
		t.Fatalf("column indices: %v", tjOut)
	}
}

func TestTranspose(t *testing.T) {
	r := Library().DI
	// 2x3 matrix [[1,2,0],[0,3,4]] in CSC.
	ap := []int32{0, 1, 3, 4}
	ai := []int32{0, 0, 1, 1}
	ax := []float64{1, 2, 3, 4}

	rp := make([]int32, 3)
	ri := make([]int32, 4)
	rx := make([]float64, 4)
	if st := r.Transpose(2, 3, ap, ai, ax, nil, nil, nil, rp, ri, rx, nil, false); !st.OK() {
		t.Fatalf("transpose: %v", st)
	}
	// A' is 3x2: column 0 holds row 0's entries of A.
	if rp[0] != 0 || rp[1] != 2 || rp[2] != 4 {
		t.Fatalf("transpose pointers: %v", rp)
	}
	if ri[0] != 0 || ri[1] != 1 || rx[0] != 1 || rx[1] != 2 {
		t.Fatalf("transpose column 0: %v %v", ri[:2], rx[:2])
	}
}

func TestComplexSolve(t *testing.T) {
	r := Library().ZI
	control := make([]float64, native.ControlLen)
	info := make([]float64, native.InfoLen)
	r.Defaults(control)

	// [[2+i, 0], [0, 1-i]] x = [1, 1]
	ap := []int32{0, 1, 2}
	ai := []int32{0, 1}
	ax := []float64{2, 1}
	az := []float64{1, -1}

	var sym, num native.Object
	if st := r.Symbolic(2, 2, ap, ai, ax, az, &sym, control, info); !st.OK() {
		t.Fatalf("symbolic: %v", st)
	}
	defer r.FreeSymbolic(&sym)
	if st := r.Numeric(ap, ai, ax, az, sym, &num, control, info); !st.OK() {
		t.Fatalf("numeric: %v", st)
	}
	defer r.FreeNumeric(&num)

	x := make([]float64, 2)
	xz := make([]float64, 2)
	b := []float64{1, 1}
	bz := []float64{0, 0}
	if st := r.Solve(native.SysA, ap, ai, ax, az, x, xz, b, bz, num, control, info); !st.OK() {
		t.Fatalf("solve: %v", st)
	}
	// 1/(2+i) = (2-i)/5, 1/(1-i) = (1+i)/2
	if math.Abs(x[0]-0.4) > 1e-12 || math.Abs(xz[0]+0.2) > 1e-12 {
		t.Fatalf("x[0] = %v + %vi", x[0], xz[0])
	}
	if math.Abs(x[1]-0.5) > 1e-12 || math.Abs(xz[1]-0.5) > 1e-12 {
		t.Fatalf("x[1] = %v + %vi", x[1], xz[1])
	}
}
