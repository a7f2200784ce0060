package handle

import (
	"fmt"

	"github.com/sparsekit/umfbridge/native"
)

// Kind tags which factorization object a handle refers to.
type Kind uint8

const (
	Symbolic Kind = iota + 1
	Numeric
)

// String returns the native spelling of the handle kind.
func (k Kind) String() string {
	switch k {
	case Symbolic:
		return "Symbolic"
	case Numeric:
		return "Numeric"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// State is the lifecycle state of a handle.
type State uint8

const (
	// Uninitialized handles have no native object yet.
	Uninitialized State = iota

	// Live handles own a native object and are usable as call inputs.
	Live

	// Freed handles were consumed by a free routine; the token is
	// invalid and must not be used or freed again.
	Freed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Live:
		return "Live"
	case Freed:
		return "Freed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Handle is a typed wrapper around one opaque native object. The zero
// value is an uninitialized handle of no kind; handles are created by
// the produce-mode slot marshalling and mutated only by the
// consume-and-replace marshalling.
type Handle struct {
	kind  Kind
	state State
	obj   native.Object
}

// Kind returns the factorization kind.
func (h *Handle) Kind() Kind { return h.kind }

// State returns the lifecycle state.
func (h *Handle) State() State { return h.state }

// Object returns the raw native token. Callers must treat it as
// unstructured.
func (h *Handle) Object() native.Object { return h.obj }

// Live reports whether the handle currently owns a native object.
func (h *Handle) Live() bool { return h.state == Live }

func (h *Handle) String() string {
	return fmt.Sprintf("%s(%#x, %s)", h.kind, uintptr(h.obj), h.state)
}
