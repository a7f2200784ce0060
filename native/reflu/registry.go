package reflu

import (
	"sync"

	"github.com/sparsekit/umfbridge/native"
)

// Factorization objects live in a process-wide registry keyed by their
// opaque token. Tokens are never reused, so a stale token after free
// fails lookup instead of aliasing a newer object.
var (
	regMu   sync.Mutex
	regNext uintptr = 1
	reg             = map[native.Object]any{}
)

func register(v any) native.Object {
	regMu.Lock()
	defer regMu.Unlock()
	obj := native.Object(regNext)
	regNext++
	reg[obj] = v
	return obj
}

func lookup(obj native.Object) (any, bool) {
	regMu.Lock()
	defer regMu.Unlock()
	v, ok := reg[obj]
	return v, ok
}

func unregister(obj native.Object) {
	regMu.Lock()
	defer regMu.Unlock()
	delete(reg, obj)
}

// liveObjects reports the number of registered factorization objects.
// Test helper for leak checks.
func liveObjects() int {
	regMu.Lock()
	defer regMu.Unlock()
	return len(reg)
}
