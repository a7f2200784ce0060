package handle

import (
	"testing"

	"github.com/sparsekit/umfbridge/errors"
	"github.com/sparsekit/umfbridge/marshal"
	"github.com/sparsekit/umfbridge/native"
)

func TestSlotProduce(t *testing.T) {
	s := NewSlot(Symbolic)
	*s.Ptr() = native.Object(0xbeef)

	result, h := s.Finish(nil)
	if result != h {
		t.Fatal("single produced handle must be the bare result")
	}
	if h.Kind() != Symbolic || !h.Live() || h.Object() != 0xbeef {
		t.Fatalf("produced handle wrong: %v", h)
	}
}

func TestSlotAppendsToComposite(t *testing.T) {
	s := NewSlot(Numeric)
	*s.Ptr() = 1
	result, h := s.Finish(native.StatusOK)
	tup, ok := result.(marshal.Tuple)
	if !ok || len(tup) != 2 {
		t.Fatalf("want a two-element composite, got %T", result)
	}
	if tup[0] != native.StatusOK || tup[1] != any(h) {
		t.Fatalf("composite order wrong: %v", tup)
	}
}

func TestConsumeLifecycle(t *testing.T) {
	s := NewSlot(Numeric)
	*s.Ptr() = 7
	_, h := s.Finish(nil)

	c, err := Consume(h, Numeric)
	if err != nil {
		t.Fatalf("consume live handle: %v", err)
	}
	// The free call nulls the slot.
	*c.Ptr() = 0
	c.Finish(nil)

	if h.State() != Freed {
		t.Fatalf("handle state after nulled slot: %v", h.State())
	}
	if _, err := Consume(h, Numeric); !errors.Matches(err, errors.PhaseHandle, errors.KindHandleState) {
		t.Fatalf("consuming freed handle: want state error, got %v", err)
	}
}

func TestConsumeWrongKind(t *testing.T) {
	s := NewSlot(Symbolic)
	*s.Ptr() = 7
	_, h := s.Finish(nil)

	if _, err := Consume(h, Numeric); !errors.Matches(err, errors.PhaseHandle, errors.KindBadHandle) {
		t.Fatalf("wrong kind: want bad-handle, got %v", err)
	}
}

func TestConsumeNonHandle(t *testing.T) {
	if _, err := Consume(42, Symbolic); !errors.Matches(err, errors.PhaseHandle, errors.KindBadHandle) {
		t.Fatalf("non-handle: want bad-handle, got %v", err)
	}
}

type recordobs struct {
	events []Event
}

func (r *recordobs) OnHandleEvent(e Event) { r.events = append(r.events, e) }

func TestTableTracksLifecycle(t *testing.T) {
	tbl := NewTable()
	obs := &recordobs{}
	tbl.Subscribe(obs)

	s := NewSlot(Symbolic)
	*s.Ptr() = 3
	_, h := s.Finish(nil)

	tbl.Track(h)
	if tbl.Len() != 1 {
		t.Fatalf("tracked count: %d", tbl.Len())
	}
	if leaked := tbl.Leaked(); len(leaked) != 1 || leaked[0] != h {
		t.Fatalf("leaked: %v", leaked)
	}

	if !tbl.Release(h) {
		t.Fatal("release of tracked handle failed")
	}
	if tbl.Release(h) {
		t.Fatal("second release must report untracked")
	}
	if tbl.Len() != 0 {
		t.Fatalf("live after release: %d", tbl.Len())
	}

	if len(obs.events) != 2 || obs.events[0].Type != EventProduced || obs.events[1].Type != EventFreed {
		t.Fatalf("events: %v", obs.events)
	}
}

func TestScopeFreesReverseOrderOnce(t *testing.T) {
	var order []native.Object
	free := func(h *Handle) error {
		order = append(order, h.Object())
		h.state = Freed
		return nil
	}

	var sc Scope
	for i := 1; i <= 3; i++ {
		s := NewSlot(Numeric)
		*s.Ptr() = native.Object(i)
		_, h := s.Finish(nil)
		sc.Defer(h, free)
	}
	if err := sc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if len(order) != 3 || order[0] != 3 || order[2] != 1 {
		t.Fatalf("free order: %v", order)
	}
	if err := sc.Close(); err != nil {
		t.Fatalf("idempotent close: %v", err)
	}
	if len(order) != 3 {
		t.Fatal("close freed twice")
	}
}
