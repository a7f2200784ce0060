package handle

// Scope pairs produced handles with their free functions so every exit
// path releases them, newest first. Handles freed before the scope
// closes are skipped; Close never frees twice.
type Scope struct {
	entries []scopeEntry
}

type scopeEntry struct {
	h    *Handle
	free func(*Handle) error
}

// Defer registers a handle and the free operation that releases it.
func (s *Scope) Defer(h *Handle, free func(*Handle) error) {
	s.entries = append(s.entries, scopeEntry{h: h, free: free})
}

// Close releases every still-live handle in reverse registration order
// and returns the first free error encountered.
func (s *Scope) Close() error {
	var first error
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if !e.h.Live() {
			continue
		}
		if err := e.free(e.h); err != nil && first == nil {
			first = err
		}
	}
	s.entries = nil
	return first
}
