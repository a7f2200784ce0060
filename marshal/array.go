package marshal

import (
	"fmt"
	"math"

	"github.com/pdevine/tensor"

	"github.com/sparsekit/umfbridge/errors"
)

// NativeArray is a contiguous view over memory of one element type,
// ready to hand to a native routine. The storage is either aliased from
// the caller (zero-copy) or a materialized temporary scoped to one call.
type NativeArray struct {
	i32    []int32
	i64    []int64
	f64    []float64
	c128   []complex128
	elem   ElemType
	copied bool
}

// Elem returns the element type of the view.
func (a *NativeArray) Elem() ElemType { return a.elem }

// Copied reports whether the view is a materialized temporary rather
// than an alias of the caller's storage.
func (a *NativeArray) Copied() bool { return a.copied }

// Len returns the number of elements.
func (a *NativeArray) Len() int {
	switch a.elem {
	case Int32:
		return len(a.i32)
	case Int64:
		return len(a.i64)
	case Float64:
		return len(a.f64)
	default:
		return len(a.c128)
	}
}

// Int32s returns the underlying buffer. Only valid for Elem() == Int32.
func (a *NativeArray) Int32s() []int32 { return a.i32 }

// Int64s returns the underlying buffer. Only valid for Elem() == Int64.
func (a *NativeArray) Int64s() []int64 { return a.i64 }

// Float64s returns the underlying buffer. Only valid for Elem() == Float64.
func (a *NativeArray) Float64s() []float64 { return a.f64 }

// Complex128s returns the underlying buffer. Only valid for Elem() == Complex128.
func (a *NativeArray) Complex128s() []complex128 { return a.c128 }

// Adapt validates value as an array-like of acceptable rank and
// presents it as a contiguous NativeArray of elem. Raw Go slices have
// rank 1 and are always contiguous; tensor values carry their own rank,
// dtype and layout. Input-mode values of a convertible type are copied;
// in-place values must alias mutable contiguous storage of exactly elem
// and are rejected otherwise.
func Adapt(value any, elem ElemType, minRank, maxRank int, mode Mode) (*NativeArray, error) {
	return adapt(value, elem, minRank, maxRank, mode, nil)
}

// AdaptArg is Adapt with an argument path recorded on failures.
func AdaptArg(value any, elem ElemType, minRank, maxRank int, mode Mode, path ...string) (*NativeArray, error) {
	return adapt(value, elem, minRank, maxRank, mode, path)
}

func adapt(value any, elem ElemType, minRank, maxRank int, mode Mode, path []string) (*NativeArray, error) {
	if value == nil {
		return nil, errors.NotArray(errors.PhaseAdapt, path, "<nil>")
	}
	if minRank > 1 || maxRank < 1 {
		// Native buffers are flat; only rank windows containing 1 can
		// be satisfied by slice arguments.
		if _, ok := value.(tensor.Tensor); !ok {
			return nil, errors.BadRank(errors.PhaseAdapt, path, 1, minRank, maxRank)
		}
	}

	switch v := value.(type) {
	case []int32:
		return adaptInt32(v, elem, mode, path)
	case []int64:
		return adaptInt64(v, elem, mode, path)
	case []float64:
		return adaptFloat64(v, elem, mode, path)
	case []complex128:
		if elem != Complex128 {
			if mode == InPlace {
				return nil, errors.NotWritable(errors.PhaseAdapt, path, "[]complex128", elem.String())
			}
			return nil, errors.TypeMismatch(errors.PhaseAdapt, path, "[]complex128", elem.String())
		}
		return &NativeArray{elem: Complex128, c128: v}, nil
	case []int:
		if mode == InPlace {
			return nil, errors.NotWritable(errors.PhaseAdapt, path, "[]int", elem.String())
		}
		return convertInts(v, elem, path)
	case []float32:
		if mode == InPlace {
			return nil, errors.NotWritable(errors.PhaseAdapt, path, "[]float32", elem.String())
		}
		if elem != Float64 {
			return nil, errors.TypeMismatch(errors.PhaseAdapt, path, "[]float32", elem.String())
		}
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return &NativeArray{elem: Float64, f64: out, copied: true}, nil
	case *tensor.Dense:
		return adaptDense(v, elem, minRank, maxRank, mode, path)
	case tensor.Tensor:
		d, ok := v.(*tensor.Dense)
		if !ok {
			m, ok := tensor.Materialize(v).(*tensor.Dense)
			if !ok {
				return nil, errors.NotArray(errors.PhaseAdapt, path, fmt.Sprintf("%T", value))
			}
			d = m
		}
		return adaptDense(d, elem, minRank, maxRank, mode, path)
	default:
		return nil, errors.NotArray(errors.PhaseAdapt, path, fmt.Sprintf("%T", value))
	}
}

func adaptInt32(v []int32, elem ElemType, mode Mode, path []string) (*NativeArray, error) {
	switch elem {
	case Int32:
		return &NativeArray{elem: Int32, i32: v}, nil
	case Int64:
		if mode == InPlace {
			return nil, errors.NotWritable(errors.PhaseAdapt, path, "[]int32", elem.String())
		}
		out := make([]int64, len(v))
		for i, x := range v {
			out[i] = int64(x)
		}
		return &NativeArray{elem: Int64, i64: out, copied: true}, nil
	case Float64:
		if mode == InPlace {
			return nil, errors.NotWritable(errors.PhaseAdapt, path, "[]int32", elem.String())
		}
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return &NativeArray{elem: Float64, f64: out, copied: true}, nil
	default:
		return nil, errors.TypeMismatch(errors.PhaseAdapt, path, "[]int32", elem.String())
	}
}

func adaptInt64(v []int64, elem ElemType, mode Mode, path []string) (*NativeArray, error) {
	switch elem {
	case Int64:
		return &NativeArray{elem: Int64, i64: v}, nil
	case Int32:
		if mode == InPlace {
			return nil, errors.NotWritable(errors.PhaseAdapt, path, "[]int64", elem.String())
		}
		out := make([]int32, len(v))
		for i, x := range v {
			if x < math.MinInt32 || x > math.MaxInt32 {
				return nil, errors.New(errors.PhaseAdapt, errors.KindTypeMismatch).
					Path(path...).
					GoType("[]int64").
					Elem(elem.String()).
					Detail("index %d overflows int32", x).
					Build()
			}
			out[i] = int32(x)
		}
		return &NativeArray{elem: Int32, i32: out, copied: true}, nil
	case Float64:
		if mode == InPlace {
			return nil, errors.NotWritable(errors.PhaseAdapt, path, "[]int64", elem.String())
		}
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return &NativeArray{elem: Float64, f64: out, copied: true}, nil
	default:
		return nil, errors.TypeMismatch(errors.PhaseAdapt, path, "[]int64", elem.String())
	}
}

func adaptFloat64(v []float64, elem ElemType, mode Mode, path []string) (*NativeArray, error) {
	switch elem {
	case Float64:
		return &NativeArray{elem: Float64, f64: v}, nil
	case Complex128:
		if mode == InPlace {
			return nil, errors.NotWritable(errors.PhaseAdapt, path, "[]float64", elem.String())
		}
		out := make([]complex128, len(v))
		for i, x := range v {
			out[i] = complex(x, 0)
		}
		return &NativeArray{elem: Complex128, c128: out, copied: true}, nil
	default:
		return nil, errors.TypeMismatch(errors.PhaseAdapt, path, "[]float64", elem.String())
	}
}

func convertInts(v []int, elem ElemType, path []string) (*NativeArray, error) {
	switch elem {
	case Int32:
		out := make([]int32, len(v))
		for i, x := range v {
			if x < math.MinInt32 || x > math.MaxInt32 {
				return nil, errors.New(errors.PhaseAdapt, errors.KindTypeMismatch).
					Path(path...).
					GoType("[]int").
					Elem(elem.String()).
					Detail("index %d overflows int32", x).
					Build()
			}
			out[i] = int32(x)
		}
		return &NativeArray{elem: Int32, i32: out, copied: true}, nil
	case Int64:
		out := make([]int64, len(v))
		for i, x := range v {
			out[i] = int64(x)
		}
		return &NativeArray{elem: Int64, i64: out, copied: true}, nil
	case Float64:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return &NativeArray{elem: Float64, f64: out, copied: true}, nil
	default:
		return nil, errors.TypeMismatch(errors.PhaseAdapt, path, "[]int", elem.String())
	}
}

// HasComplexData reports whether value carries complex-domain elements:
// a raw []complex128 or a tensor of complex dtype. Real-valued input
// never stands in for a complex pair.
func HasComplexData(value any) bool {
	switch v := value.(type) {
	case []complex128:
		return true
	case tensor.Tensor:
		return v.Dtype() == tensor.Complex128
	}
	return false
}

// SplitComplex copies c into separate real and imaginary buffers, the
// layout the complex native families consume.
func SplitComplex(c []complex128) (re, im []float64) {
	re = make([]float64, len(c))
	im = make([]float64, len(c))
	for i, x := range c {
		re[i] = real(x)
		im[i] = imag(x)
	}
	return re, im
}

// CombineComplex is the inverse of SplitComplex.
func CombineComplex(re, im []float64) []complex128 {
	out := make([]complex128, len(re))
	for i := range re {
		out[i] = complex(re[i], im[i])
	}
	return out
}
