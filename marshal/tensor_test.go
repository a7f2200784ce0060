package marshal

import (
	"testing"

	"github.com/pdevine/tensor"

	"github.com/sparsekit/umfbridge/errors"
)

func TestAdaptDenseZeroCopy(t *testing.T) {
	backing := []float64{1, 2, 3, 4}
	d := tensor.New(tensor.WithShape(4), tensor.WithBacking(backing))
	a, err := Adapt(d, Float64, 1, 1, Input)
	if err != nil {
		t.Fatalf("adapt: %v", err)
	}
	if a.Copied() {
		t.Fatal("contiguous matching dtype must alias")
	}
	a.Float64s()[0] = 9
	if backing[0] != 9 {
		t.Fatal("adapted buffer does not alias the tensor storage")
	}
}

func TestAdaptDenseFlattensRank2(t *testing.T) {
	d := tensor.New(tensor.WithShape(2, 3), tensor.WithBacking([]float64{1, 2, 3, 4, 5, 6}))
	a, err := Adapt(d, Float64, 1, 2, Input)
	if err != nil {
		t.Fatalf("adapt: %v", err)
	}
	if a.Len() != 6 {
		t.Fatalf("flattened length: got %d, want 6", a.Len())
	}
}

func TestAdaptDenseRankWindow(t *testing.T) {
	d := tensor.New(tensor.WithShape(2, 3), tensor.WithBacking(make([]float64, 6)))
	_, err := Adapt(d, Float64, 1, 1, Input)
	if !errors.Matches(err, errors.PhaseAdapt, errors.KindBadRank) {
		t.Fatalf("want bad-rank, got %v", err)
	}
}

func TestAdaptDenseDtypeConverts(t *testing.T) {
	d := tensor.New(tensor.WithShape(3), tensor.WithBacking([]int32{1, 2, 3}))
	a, err := Adapt(d, Float64, 1, 1, Input)
	if err != nil {
		t.Fatalf("adapt: %v", err)
	}
	if !a.Copied() {
		t.Fatal("dtype conversion must produce a copy")
	}
	if got := a.Float64s(); got[2] != 3 {
		t.Fatalf("converted values wrong: %v", got)
	}
}

// wrappedDense satisfies tensor.Tensor without being a *tensor.Dense,
// forcing the materialize path.
type wrappedDense struct {
	*tensor.Dense
}

func TestAdaptTensorInterfaceMaterializes(t *testing.T) {
	d := tensor.New(tensor.WithShape(3), tensor.WithBacking([]float64{1, 2, 3}))
	a, err := Adapt(wrappedDense{d}, Float64, 1, 1, Input)
	if err != nil {
		t.Fatalf("adapt: %v", err)
	}
	if a.Len() != 3 || a.Float64s()[2] != 3 {
		t.Fatalf("materialized values wrong: %v", a.Float64s())
	}
}

func TestHasComplexData(t *testing.T) {
	if !HasComplexData([]complex128{1}) {
		t.Fatal("[]complex128 must carry complex data")
	}
	cd := tensor.New(tensor.WithShape(2), tensor.WithBacking([]complex128{1, 2}))
	if !HasComplexData(cd) {
		t.Fatal("complex dtype tensor must carry complex data")
	}
	if HasComplexData([]float64{1}) {
		t.Fatal("[]float64 must not stand in for a complex pair")
	}
	rd := tensor.New(tensor.WithShape(2), tensor.WithBacking([]float64{1, 2}))
	if HasComplexData(rd) {
		t.Fatal("real dtype tensor must not stand in for a complex pair")
	}
}

func TestAdaptDenseInPlaceWrongDtype(t *testing.T) {
	d := tensor.New(tensor.WithShape(3), tensor.WithBacking([]int32{1, 2, 3}))
	_, err := Adapt(d, Float64, 1, 1, InPlace)
	if !errors.Matches(err, errors.PhaseAdapt, errors.KindNotWritable) {
		t.Fatalf("want not-writable, got %v", err)
	}
}
