package marshal

import (
	"github.com/sparsekit/umfbridge/errors"
	"github.com/sparsekit/umfbridge/native"
)

// AdaptControl presents value as the native control vector: exactly
// native.ControlLen doubles, mutable in place. A wrong length is a
// value error; a wrong kind of value is a shape error from Adapt.
func AdaptControl(value any) (*NativeArray, error) {
	return adaptFixed(value, native.ControlLen, "control")
}

// AdaptInfo presents value as the native info vector: exactly
// native.InfoLen doubles, mutable in place.
func AdaptInfo(value any) (*NativeArray, error) {
	return adaptFixed(value, native.InfoLen, "info")
}

func adaptFixed(value any, required int, name string) (*NativeArray, error) {
	a, err := adapt(value, Float64, 1, 1, InPlace, []string{name})
	if err != nil {
		return nil, err
	}
	if a.Len() != required {
		return nil, errors.BadLength(errors.PhaseAdapt, []string{name}, a.Len(), required)
	}
	return a, nil
}
