package dispatch

import (
	"fmt"

	"github.com/sparsekit/umfbridge/errors"
	"github.com/sparsekit/umfbridge/native"
)

// Dispatcher resolves logical operations against one backing Library.
type Dispatcher struct {
	lib *native.Library
}

// New creates a dispatcher over lib.
func New(lib *native.Library) *Dispatcher {
	return &Dispatcher{lib: lib}
}

// Library returns the backing library.
func (d *Dispatcher) Library() *native.Library { return d.lib }

// Available reports whether the family was compiled into the backing
// library.
func (d *Dispatcher) Available(f Family) bool {
	switch f {
	case DI:
		return d.lib.DI != nil
	case DL:
		return d.lib.DL != nil
	case ZI:
		return d.lib.ZI != nil
	case ZL:
		return d.lib.ZL != nil
	default:
		return false
	}
}

func (d *Dispatcher) narrow(f Family) (*native.Routines[int32], error) {
	var r *native.Routines[int32]
	switch f {
	case DI:
		r = d.lib.DI
	case ZI:
		r = d.lib.ZI
	}
	if r == nil {
		return nil, errors.NoVariant(f.String())
	}
	return r, nil
}

func (d *Dispatcher) wide(f Family) (*native.Routines[int64], error) {
	var r *native.Routines[int64]
	switch f {
	case DL:
		r = d.lib.DL
	case ZL:
		r = d.lib.ZL
	}
	if r == nil {
		return nil, errors.NoVariant(f.String())
	}
	return r, nil
}

// missing reports an entry point the backing build left undeclared.
func missing(f Family, op string) error {
	return errors.NoVariant(fmt.Sprintf("%s.%s", f, op))
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", v)
}
