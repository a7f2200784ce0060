package dispatch

import (
	"math"
	"testing"

	"github.com/sparsekit/umfbridge/errors"
	"github.com/sparsekit/umfbridge/handle"
	"github.com/sparsekit/umfbridge/marshal"
	"github.com/sparsekit/umfbridge/native"
	"github.com/sparsekit/umfbridge/native/reflu"
)

// vecs allocates a fresh control/info pair of the required lengths.
func vecs() (ctl, inf []float64) {
	return make([]float64, native.ControlLen), make([]float64, native.InfoLen)
}

func TestDetectFamily(t *testing.T) {
	cases := []struct {
		index   any
		complex bool
		want    Family
	}{
		{[]int32{0}, false, DI},
		{[]int64{0}, false, DL},
		{[]int32{0}, true, ZI},
		{[]int64{0}, true, ZL},
	}
	for _, tc := range cases {
		got, err := Detect(tc.index, tc.complex)
		if err != nil {
			t.Fatalf("detect(%T, %v): %v", tc.index, tc.complex, err)
		}
		if got != tc.want {
			t.Fatalf("detect(%T, %v) = %v, want %v", tc.index, tc.complex, got, tc.want)
		}
	}

	if _, err := Detect([]float64{0}, false); err == nil {
		t.Fatal("non-index array accepted as index")
	}
}

func TestNoVariantIsConfigError(t *testing.T) {
	d := New(&native.Library{DI: reflu.Library().DI, Name: "partial"})
	if !d.Available(DI) {
		t.Fatal("di must be available")
	}
	if d.Available(ZL) {
		t.Fatal("zl must not be available")
	}
	_, err := d.Symbolic(ZL, 1, 1, []int64{0, 1}, []int64{0}, []float64{1}, []float64{0}, nil, nil)
	if !errors.Matches(err, errors.PhaseDispatch, errors.KindNoVariant) {
		t.Fatalf("want no-variant, got %v", err)
	}
}

func TestIndexWidthMismatch(t *testing.T) {
	d := New(reflu.Library())
	// DI expects int32 index arrays; int64 arrays are a dispatch-level
	// type error, not a silent conversion.
	_, err := d.Symbolic(DI, 2, 2, []int64{0, 1, 2}, []int32{0, 1}, []float64{1, 1}, nil, nil, nil)
	if !errors.Matches(err, errors.PhaseDispatch, errors.KindTypeMismatch) {
		t.Fatalf("want dispatch type mismatch, got %v", err)
	}
}

func TestScalarOverflowsNarrowFamily(t *testing.T) {
	d := New(reflu.Library())
	// A dimension beyond the 32-bit index width cannot be narrowed for
	// the di family.
	_, err := d.Symbolic(DI, int64(1)<<40, 2, []int32{0, 1, 2}, []int32{0, 1}, []float64{1, 1}, nil, nil, nil)
	if !errors.Matches(err, errors.PhaseAdapt, errors.KindTypeMismatch) {
		t.Fatalf("want adapt type mismatch, got %v", err)
	}
}

// factorVia runs symbolic+numeric through the dispatcher and returns
// the live numeric handle.
func factorVia(t *testing.T, d *Dispatcher, f Family, ap, ai any, ax []float64) *handle.Handle {
	t.Helper()
	ctl, inf := vecs()
	res, err := d.Symbolic(f, 3, 3, ap, ai, ax, nil, ctl, inf)
	if err != nil {
		t.Fatalf("symbolic: %v", err)
	}
	tup, ok := res.(marshal.Tuple)
	if !ok || len(tup) != 2 {
		t.Fatalf("symbolic composite: %T %v", res, res)
	}
	if tup[0] != native.StatusOK {
		t.Fatalf("symbolic status: %v", tup[0])
	}
	sym := tup[1].(*handle.Handle)

	res, err = d.Numeric(f, ap, ai, ax, nil, sym, ctl, inf)
	if err != nil {
		t.Fatalf("numeric: %v", err)
	}
	tup = res.(marshal.Tuple)
	if tup[0] != native.StatusOK {
		t.Fatalf("numeric status: %v", tup[0])
	}
	num := tup[1].(*handle.Handle)

	if _, err := d.FreeSymbolic(f, sym); err != nil {
		t.Fatalf("free symbolic: %v", err)
	}
	if sym.Live() {
		t.Fatal("symbolic handle still live after free")
	}
	return num
}

func TestSolveThroughDispatcher(t *testing.T) {
	d := New(reflu.Library())

	ap := []int32{0, 2, 3, 5}
	ai := []int32{0, 2, 1, 0, 2}
	ax := []float64{4, -1, 4, -1, 4}
	num := factorVia(t, d, DI, ap, ai, ax)

	x := make([]float64, 3)
	b := []float64{1, 1, 1}
	ctl, inf := vecs()
	res, err := d.Solve(DI, native.SysA, ap, ai, ax, nil, x, nil, b, nil, num, ctl, inf)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	// A lone status comes back bare, not wrapped in a tuple.
	if res != native.StatusOK {
		t.Fatalf("solve result: %v", res)
	}
	want := []float64{1.0 / 3, 0.25, 1.0 / 3}
	for i := range want {
		if math.Abs(x[i]-want[i]) > 1e-12 {
			t.Fatalf("x[%d] = %v, want %v", i, x[i], want[i])
		}
	}

	res, err = d.FreeNumeric(DI, num)
	if err != nil {
		t.Fatalf("free numeric: %v", err)
	}
	if res != any(num) || num.Live() {
		t.Fatal("free must return the now-freed handle")
	}
	if _, err := d.FreeNumeric(DI, num); !errors.Matches(err, errors.PhaseHandle, errors.KindHandleState) {
		t.Fatalf("double free: want handle state error, got %v", err)
	}
}

func TestWideNarrowAgree(t *testing.T) {
	d := New(reflu.Library())

	b := []float64{1, 1, 1}
	x32 := make([]float64, 3)
	x64 := make([]float64, 3)
	ctl, inf := vecs()

	num32 := factorVia(t, d, DI, []int32{0, 2, 3, 5}, []int32{0, 2, 1, 0, 2}, []float64{4, -1, 4, -1, 4})
	if _, err := d.Solve(DI, native.SysA, []int32{0, 2, 3, 5}, []int32{0, 2, 1, 0, 2}, []float64{4, -1, 4, -1, 4}, nil, x32, nil, b, nil, num32, ctl, inf); err != nil {
		t.Fatalf("narrow solve: %v", err)
	}

	num64 := factorVia(t, d, DL, []int64{0, 2, 3, 5}, []int64{0, 2, 1, 0, 2}, []float64{4, -1, 4, -1, 4})
	if _, err := d.Solve(DL, native.SysA, []int64{0, 2, 3, 5}, []int64{0, 2, 1, 0, 2}, []float64{4, -1, 4, -1, 4}, nil, x64, nil, b, nil, num64, ctl, inf); err != nil {
		t.Fatalf("wide solve: %v", err)
	}

	for i := range x32 {
		if x32[i] != x64[i] {
			t.Fatalf("index width changed the solution at %d: %v vs %v", i, x32[i], x64[i])
		}
	}
}

func TestGetLunzComposite(t *testing.T) {
	d := New(reflu.Library())
	num := factorVia(t, d, DI, []int32{0, 2, 3, 5}, []int32{0, 2, 1, 0, 2}, []float64{4, -1, 4, -1, 4})
	defer d.FreeNumeric(DI, num)

	res, err := d.GetLunz(DI, num)
	if err != nil {
		t.Fatalf("get_lunz: %v", err)
	}
	tup, ok := res.(marshal.Tuple)
	if !ok || len(tup) != 6 {
		t.Fatalf("get_lunz composite: %v", res)
	}
	if tup[0] != native.StatusOK {
		t.Fatalf("status: %v", tup[0])
	}
	// Sizes come back as int64 regardless of the variant width.
	if _, ok := tup[1].(int64); !ok {
		t.Fatalf("lnz type: %T", tup[1])
	}
	if tup[3].(int64) != 3 || tup[4].(int64) != 3 {
		t.Fatalf("dimensions: %v %v", tup[3], tup[4])
	}
}

func TestComplexSolveSplitPair(t *testing.T) {
	d := New(reflu.Library())

	ap := []int32{0, 1, 2}
	ai := []int32{0, 1}
	ax := []float64{2, 1}
	az := []float64{1, -1}

	ctl, inf := vecs()
	res, err := d.Symbolic(ZI, 2, 2, ap, ai, ax, az, ctl, inf)
	if err != nil {
		t.Fatalf("symbolic: %v", err)
	}
	sym := res.(marshal.Tuple)[1].(*handle.Handle)
	res, err = d.Numeric(ZI, ap, ai, ax, az, sym, ctl, inf)
	if err != nil {
		t.Fatalf("numeric: %v", err)
	}
	num := res.(marshal.Tuple)[1].(*handle.Handle)
	defer d.FreeNumeric(ZI, num)
	defer d.FreeSymbolic(ZI, sym)

	// A complex family with real values and a missing imaginary input
	// is a shape error.
	if _, err := d.Numeric(ZI, ap, ai, ax, nil, sym, ctl, inf); !errors.Matches(err, errors.PhaseAdapt, errors.KindTypeMismatch) {
		t.Fatalf("missing Az accepted for complex family: %v", err)
	}

	// A []complex128 may stand in for the split pair.
	cvals := []complex128{complex(ax[0], az[0]), complex(ax[1], az[1])}
	res, err = d.Numeric(ZI, ap, ai, cvals, nil, sym, ctl, inf)
	if err != nil {
		t.Fatalf("numeric with complex values: %v", err)
	}
	num2 := res.(marshal.Tuple)[1].(*handle.Handle)
	defer d.FreeNumeric(ZI, num2)

	x := make([]float64, 2)
	xz := make([]float64, 2)
	if _, err := d.Solve(ZI, native.SysA, ap, ai, ax, az, x, xz, []float64{1, 1}, []float64{0, 0}, num, ctl, inf); err != nil {
		t.Fatalf("solve: %v", err)
	}
	if math.Abs(x[0]-0.4) > 1e-12 || math.Abs(xz[0]+0.2) > 1e-12 {
		t.Fatalf("x[0] = %v + %vi", x[0], xz[0])
	}
}
