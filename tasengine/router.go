package tasengine

import "github.com/retrotas/tas-engine/buttons"

// QueryVpadMapping implements the Query Router (C5): the single entry
// point the host's controller abstraction calls to resolve one VPAD
// mapping id for player at runtimeFrame. Returns false if no source
// overrides this mapping and the host should use the physical controller
// value untouched.
func (e *Engine) QueryVpadMapping(player int, runtimeFrame uint64, mapping buttons.Mapping) (float32, bool) {
	// The live-capture bypass must be checked before acquiring mu: it
	// exists precisely so a reentrant call made while mu is deliberately
	// dropped (during passthrough capture) doesn't block on mu or recurse
	// into another capture.
	if e.bypass.active() {
		return 0, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mode == Playback {
		// Playback is injected at the VPAD sample boundary (TryGetPlaybackSample),
		// not per-mapping; see spec §4.9.
		return 0, false
	}

	if e.manualEnabled {
		if e.controllerPassthrough {
			e.refreshPassthroughLocked(player, runtimeFrame)
		}
		m := e.manual[player]
		m.Buttons = e.applyTurbo(player, runtimeFrame, m.Buttons)
		return buttons.Project(m.sample(), mapping)
	}

	if e.mode == Record {
		// The record path reads live inputs directly; it doesn't suppress them.
		return 0, false
	}

	if e.mode == Disabled {
		return 0, false
	}

	// Hypothetical movie-replay-via-mapping fallback (spec §4.5 step 6).
	f, ok := e.store.GetFrameFor(player, runtimeFrame, e.loop)
	if !ok {
		return 0, false
	}
	return buttons.Project(f.Sample(), mapping)
}
