package handle

import (
	"sync"
)

// EventType identifies a handle lifecycle event.
type EventType uint8

const (
	EventProduced EventType = iota
	EventFreed
)

// Event describes one lifecycle transition seen by a Table.
type Event struct {
	Handle *Handle
	Type   EventType
}

// Observer receives notifications about handle lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// Table tracks the live handles a driver owns so leaks are observable.
// It holds no native resources itself and never frees a handle
// implicitly; ownership stays with the caller.
type Table struct {
	mu        sync.Mutex
	live      map[*Handle]struct{}
	observers []Observer
}

// NewTable creates an empty tracking table.
func NewTable() *Table {
	return &Table{live: make(map[*Handle]struct{})}
}

// Track records a produced handle.
func (t *Table) Track(h *Handle) {
	t.mu.Lock()
	t.live[h] = struct{}{}
	obs := t.observers
	t.mu.Unlock()

	for _, o := range obs {
		o.OnHandleEvent(Event{Handle: h, Type: EventProduced})
	}
}

// Release drops a handle from tracking, typically after its free call.
// Returns false if the handle was not tracked.
func (t *Table) Release(h *Handle) bool {
	t.mu.Lock()
	_, ok := t.live[h]
	if ok {
		delete(t.live, h)
	}
	obs := t.observers
	t.mu.Unlock()

	if !ok {
		return false
	}
	for _, o := range obs {
		o.OnHandleEvent(Event{Handle: h, Type: EventFreed})
	}
	return true
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, o)
}

// Len returns the number of live tracked handles.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// Leaked returns the handles still live, for diagnostics at shutdown.
func (t *Table) Leaked() []*Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Handle, 0, len(t.live))
	for h := range t.live {
		out = append(out, h)
	}
	return out
}
