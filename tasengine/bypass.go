package tasengine

import (
	"sync"

	"github.com/retrotas/tas-engine/assert"
)

// bypassSet models the thread-local "live capture bypass" re-entrancy
// guard from spec §5: set for the duration of a passthrough live capture,
// so that if the external VPAD driver's capture path calls back into
// QueryVpadMapping (directly or transitively), that call observes the
// bypass and returns immediately rather than recursing into another
// capture.
//
// Go has no native thread-local storage, and the capture runs on whatever
// goroutine called QueryVpadMapping, so this is keyed by goroutine id
// (assert.GetGoRoutineID) under its own mutex rather than Engine.mu, which
// is deliberately dropped for the duration of the capture this guard
// protects.
type bypassSet struct {
	mu  sync.Mutex
	ids map[uint64]struct{}
}

// enter marks the calling goroutine as inside a live capture. Pair with a
// deferred exit.
func (b *bypassSet) enter() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ids == nil {
		b.ids = make(map[uint64]struct{})
	}
	b.ids[assert.GetGoRoutineID()] = struct{}{}
}

func (b *bypassSet) exit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.ids, assert.GetGoRoutineID())
}

// active reports whether the calling goroutine is currently inside a live
// capture initiated by itself.
func (b *bypassSet) active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.ids[assert.GetGoRoutineID()]
	return ok
}
