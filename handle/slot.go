package handle

import (
	"fmt"

	"github.com/sparsekit/umfbridge/errors"
	"github.com/sparsekit/umfbridge/marshal"
	"github.com/sparsekit/umfbridge/native"
)

// Slot is the produce-mode marshalling: one freshly allocated,
// zero-initialized pointer-sized slot a native call fills with a new
// object.
type Slot struct {
	kind Kind
	obj  native.Object
}

// NewSlot returns a zeroed slot for a factorization of the given kind.
func NewSlot(kind Kind) *Slot {
	return &Slot{kind: kind}
}

// Ptr returns the slot address to pass to the native call.
func (s *Slot) Ptr() *native.Object { return &s.obj }

// Finish reads the slot after the native call returned, wraps its value
// as a new Live handle and appends it to the composite result.
func (s *Slot) Finish(result any) (any, *Handle) {
	h := &Handle{kind: s.kind, state: Live, obj: s.obj}
	return marshal.Append(result, h), h
}

// Consumed is the consume-and-replace marshalling: an existing handle
// unwrapped to a raw slot the native call may overwrite or null.
type Consumed struct {
	h   *Handle
	obj native.Object
}

// Consume type-checks value as a live handle of the expected kind and
// unwraps it. A value that is not a handle at all, or a handle of the
// other kind, is a shape error; a freed or uninitialized handle is a
// state error caught here instead of reaching the native library.
func Consume(value any, kind Kind) (*Consumed, error) {
	h, ok := value.(*Handle)
	if !ok {
		return nil, errors.BadHandle(nil, fmt.Sprintf("%T", value), kind.String())
	}
	if h.kind != kind {
		return nil, errors.BadHandle(nil, h.kind.String(), kind.String())
	}
	if h.state != Live {
		return nil, errors.HandleState(fmt.Sprintf("%s handle is %s, not Live", h.kind, h.state))
	}
	return &Consumed{h: h, obj: h.obj}, nil
}

// Ptr returns the slot address to pass to the native call. The native
// routine owns the slot for the call and may null it.
func (c *Consumed) Ptr() *native.Object { return &c.obj }

// Finish stores the possibly-updated slot back into the handle and
// appends the handle, now authoritative, to the composite result. A
// nulled slot marks the handle Freed.
func (c *Consumed) Finish(result any) any {
	c.h.obj = c.obj
	if c.obj == 0 {
		c.h.state = Freed
	}
	return marshal.Append(result, c.h)
}
