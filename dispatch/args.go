package dispatch

import (
	"github.com/sparsekit/umfbridge/errors"
	"github.com/sparsekit/umfbridge/handle"
	"github.com/sparsekit/umfbridge/marshal"
	"github.com/sparsekit/umfbridge/native"
)

// scalarIndex coerces a scalar call argument (dimension, count) to the
// widest index type. For a narrow family the value must also fit the
// 32-bit index width the operation core narrows it to.
func scalarIndex(f Family, v any, name string) (int64, error) {
	n, ok := marshal.CoerceToInt64(v)
	if !ok {
		return 0, errors.New(errors.PhaseAdapt, errors.KindTypeMismatch).
			Path(name).
			GoType(typeName(v)).
			Elem("integer").
			Build()
	}
	if f.IndexElem() == marshal.Int32 {
		if _, ok := marshal.CoerceToInt32(n); !ok {
			return 0, errors.New(errors.PhaseAdapt, errors.KindTypeMismatch).
				Path(name).
				GoType(typeName(v)).
				Elem("int32").
				Detail("value %d overflows the index width of family %s", n, f).
				Build()
		}
	}
	return n, nil
}

// adaptIndex adapts a structure array at the family's index width.
// An array of the other width is a dispatch error, never silently
// narrowed or widened.
func adaptIndex(f Family, v any, name string, mode marshal.Mode) (*marshal.NativeArray, error) {
	if w, ok := indexWidth(v); ok && w != f.IndexElem() {
		return nil, errors.New(errors.PhaseDispatch, errors.KindTypeMismatch).
			Path(name).
			GoType(typeName(v)).
			Elem(f.IndexElem().String()).
			Detail("index width does not match family %s", f).
			Build()
	}
	return marshal.AdaptArg(v, f.IndexElem(), 1, 1, mode, name)
}

// adaptOptIndex is adaptIndex for optional arguments; nil passes
// through as an absent array.
func adaptOptIndex(f Family, v any, name string, mode marshal.Mode) (*marshal.NativeArray, error) {
	if v == nil {
		return nil, nil
	}
	return adaptIndex(f, v, name, mode)
}

// adaptDomain adapts a value array pair for the family's domain. Real
// families take one double array and no imaginary part. Complex
// families take split real/imaginary double arrays; as a convenience an
// input-mode []complex128 (or complex tensor) may stand in for the
// pair, in which case split copies are materialized for the call.
func adaptDomain(f Family, reV, imV any, nameRe, nameIm string, mode marshal.Mode) (re, im *marshal.NativeArray, err error) {
	if f.Real() {
		if imV != nil {
			return nil, nil, errors.New(errors.PhaseAdapt, errors.KindTypeMismatch).
				Path(nameIm).
				GoType(typeName(imV)).
				Detail("imaginary part not accepted by real family %s", f).
				Build()
		}
		re, err = marshal.AdaptArg(reV, marshal.Float64, 1, 1, mode, nameRe)
		return re, nil, err
	}

	if imV == nil {
		if mode == marshal.InPlace {
			return nil, nil, errors.NotWritable(errors.PhaseAdapt, []string{nameRe},
				typeName(reV), "split double pair")
		}
		if !marshal.HasComplexData(reV) {
			return nil, nil, errors.New(errors.PhaseAdapt, errors.KindTypeMismatch).
				Path(nameIm).
				GoType(typeName(reV)).
				Elem("float64").
				Detail("complex family %s requires split real/imaginary arrays or complex values", f).
				Build()
		}
		c, err := marshal.AdaptArg(reV, marshal.Complex128, 1, 1, marshal.Input, nameRe)
		if err != nil {
			return nil, nil, err
		}
		res, ims := marshal.SplitComplex(c.Complex128s())
		re, err = marshal.AdaptArg(res, marshal.Float64, 1, 1, marshal.Input, nameRe)
		if err != nil {
			return nil, nil, err
		}
		im, err = marshal.AdaptArg(ims, marshal.Float64, 1, 1, marshal.Input, nameIm)
		return re, im, err
	}

	re, err = marshal.AdaptArg(reV, marshal.Float64, 1, 1, mode, nameRe)
	if err != nil {
		return nil, nil, err
	}
	im, err = marshal.AdaptArg(imV, marshal.Float64, 1, 1, mode, nameIm)
	if err != nil {
		return nil, nil, err
	}
	if re.Len() != im.Len() {
		return nil, nil, errors.BadLength(errors.PhaseAdapt, []string{nameIm}, im.Len(), re.Len())
	}
	return re, im, nil
}

// adaptVectors adapts the control and info pair every stateful call
// carries.
func adaptVectors(controlV, infoV any) (control, info *marshal.NativeArray, err error) {
	control, err = marshal.AdaptControl(controlV)
	if err != nil {
		return nil, nil, err
	}
	info, err = marshal.AdaptInfo(infoV)
	if err != nil {
		return nil, nil, err
	}
	return control, info, nil
}

// handleObject unwraps an input-only handle argument to its raw token.
func handleObject(v any, kind handle.Kind) (native.Object, error) {
	c, err := handle.Consume(v, kind)
	if err != nil {
		return 0, err
	}
	return *c.Ptr(), nil
}

// indices returns the typed index buffer of an adapted array, nil for
// an absent optional argument.
func indices[I native.Index](a *marshal.NativeArray) []I {
	if a == nil {
		return nil
	}
	var s any
	switch any(I(0)).(type) {
	case int32:
		s = a.Int32s()
	case int64:
		s = a.Int64s()
	}
	out, _ := s.([]I)
	return out
}

// floats returns the double buffer of an adapted array, nil for an
// absent optional argument.
func floats(a *marshal.NativeArray) []float64 {
	if a == nil {
		return nil
	}
	return a.Float64s()
}
