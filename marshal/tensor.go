package marshal

import (
	"fmt"

	"github.com/pdevine/tensor"

	"github.com/sparsekit/umfbridge/errors"
)

// adaptDense presents a dense tensor as a flat native buffer. The
// native routines only see rank-1 memory, so higher-rank tensors within
// the accepted rank window adapt as their flattened contiguous storage.
func adaptDense(d *tensor.Dense, elem ElemType, minRank, maxRank int, mode Mode, path []string) (*NativeArray, error) {
	rank := d.Dims()
	if rank < minRank || rank > maxRank {
		return nil, errors.BadRank(errors.PhaseAdapt, path, rank, minRank, maxRank)
	}

	contiguous := d.DataOrder().IsContiguous() && !d.IsMaterializable()

	if dtypeMatches(d.Dtype(), elem) && contiguous {
		a, ok := aliasDense(d, elem)
		if ok && a.Len() == d.Shape().TotalSize() {
			return a, nil
		}
		// A view can report contiguity while Data() exposes a larger
		// backing array; fall through to a materialized copy.
	}

	if mode == InPlace {
		return nil, errors.NotWritable(errors.PhaseAdapt, path,
			fmt.Sprintf("%v tensor (%v)", d.Dtype(), d.Shape()), elem.String())
	}

	m, ok := d.Materialize().(*tensor.Dense)
	if !ok {
		return nil, errors.NotArray(errors.PhaseAdapt, path, fmt.Sprintf("%T", d))
	}
	a, err := adapt(m.Data(), elem, 1, 1, Input, path)
	if err != nil {
		return nil, err
	}
	// Even when materialization already produced the right element
	// type, the buffer is a temporary, not the caller's storage.
	b := *a
	b.copied = true
	return &b, nil
}

func aliasDense(d *tensor.Dense, elem ElemType) (*NativeArray, bool) {
	switch elem {
	case Int32:
		if s, ok := d.Data().([]int32); ok {
			return &NativeArray{elem: Int32, i32: s}, true
		}
	case Int64:
		if s, ok := d.Data().([]int64); ok {
			return &NativeArray{elem: Int64, i64: s}, true
		}
	case Float64:
		if s, ok := d.Data().([]float64); ok {
			return &NativeArray{elem: Float64, f64: s}, true
		}
	case Complex128:
		if s, ok := d.Data().([]complex128); ok {
			return &NativeArray{elem: Complex128, c128: s}, true
		}
	}
	return nil, false
}

func dtypeMatches(dt tensor.Dtype, elem ElemType) bool {
	switch elem {
	case Int32:
		return dt == tensor.Int32
	case Int64:
		return dt == tensor.Int64
	case Float64:
		return dt == tensor.Float64
	case Complex128:
		return dt == tensor.Complex128
	default:
		return false
	}
}
