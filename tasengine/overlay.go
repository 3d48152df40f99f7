package tasengine

// GetOverlayState implements the Controller Override / Overlay component
// (C8): a lock-protected snapshot for external renderers, preferring
// playback when active, otherwise manual (with turbo applied), otherwise a
// passive "paused" marker.
func (e *Engine) GetOverlayState(frame uint64, player int) OverlayState {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := OverlayState{FrameAdvancePaused: e.paused}

	if e.mode == Playback {
		if f, ok := e.store.GetFrameFor(player, frame, e.loop); ok {
			s := f.Sample()
			state.Active = true
			state.Playback = true
			state.LX, state.LY, state.RX, state.RY = s.LX, s.LY, s.RX, s.RY
			state.ZL, state.ZR = s.ZL, s.ZR
			state.Buttons = s.Buttons
			return state
		}
	}

	if e.manualEnabled {
		m := e.manual[player]
		m.Buttons = e.applyTurbo(player, frame, m.Buttons)
		state.Active = true
		state.Manual = true
		state.LX, state.LY, state.RX, state.RY = m.LX, m.LY, m.RX, m.RY
		state.ZL, state.ZR = m.ZL, m.ZR
		state.Buttons = m.Buttons
		return state
	}

	return state
}
