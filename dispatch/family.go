package dispatch

import (
	"github.com/pdevine/tensor"

	"github.com/sparsekit/umfbridge/errors"
	"github.com/sparsekit/umfbridge/marshal"
)

// Family identifies one of the four structurally parallel entry-point
// families: index width (i = 32-bit, l = 64-bit) crossed with value
// domain (d = real, z = complex).
type Family int

const (
	DI Family = iota // real, 32-bit indices
	DL               // real, 64-bit indices
	ZI               // complex, 32-bit indices
	ZL               // complex, 64-bit indices
)

// String returns the native family suffix.
func (f Family) String() string {
	switch f {
	case DI:
		return "di"
	case DL:
		return "dl"
	case ZI:
		return "zi"
	case ZL:
		return "zl"
	default:
		return "??"
	}
}

// Real reports whether the family operates in the real value domain.
func (f Family) Real() bool { return f == DI || f == DL }

// Complex reports whether the family operates in the complex domain.
func (f Family) Complex() bool { return !f.Real() }

// Wide reports whether the family uses 64-bit indices.
func (f Family) Wide() bool { return f == DL || f == ZL }

// IndexElem returns the element type of the family's structure arrays.
func (f Family) IndexElem() marshal.ElemType {
	if f.Wide() {
		return marshal.Int64
	}
	return marshal.Int32
}

// Detect resolves the family from the observed index width of a
// structure array and the value domain. An array whose index width
// matches no compiled variant family is a dispatch error, never
// silently truncated or widened.
func Detect(index any, complexValues bool) (Family, error) {
	elem, ok := indexWidth(index)
	if !ok {
		return 0, errors.New(errors.PhaseDispatch, errors.KindTypeMismatch).
			Path("Ap").
			GoType(typeName(index)).
			Detail("cannot determine index width").
			Build()
	}
	switch {
	case elem == marshal.Int32 && !complexValues:
		return DI, nil
	case elem == marshal.Int64 && !complexValues:
		return DL, nil
	case elem == marshal.Int32:
		return ZI, nil
	default:
		return ZL, nil
	}
}

// indexWidth reports the index element type a value carries, without
// adapting it.
func indexWidth(value any) (marshal.ElemType, bool) {
	switch v := value.(type) {
	case []int32:
		return marshal.Int32, true
	case []int64:
		return marshal.Int64, true
	case *tensor.Dense:
		switch v.Dtype() {
		case tensor.Int32:
			return marshal.Int32, true
		case tensor.Int64:
			return marshal.Int64, true
		}
	case tensor.Tensor:
		switch v.Dtype() {
		case tensor.Int32:
			return marshal.Int32, true
		case tensor.Int64:
			return marshal.Int64, true
		}
	}
	return 0, false
}
