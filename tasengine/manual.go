package tasengine

import "github.com/retrotas/tas-engine/buttons"

// SetManual replaces the held manual-override state for player, clamping
// sticks and triggers to their valid ranges.
func (e *Engine) SetManual(player int, state ManualState) {
	state.Clamp()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.manual[player] = state
}

// SetManualEnabled toggles whether the Manual Input Layer participates in
// query resolution at all.
func (e *Engine) SetManualEnabled(b bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.manualEnabled = b
}

// SetPassthrough toggles controllerPassthrough: when enabled, a query also
// captures the live physical controller and feeds it into ManualState.
func (e *Engine) SetPassthrough(b bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.controllerPassthrough = b
}

// SetTurbo configures the turbo mask and half-period (in frames) for
// player. interval is clamped to a minimum of 1.
func (e *Engine) SetTurbo(player int, mask buttons.Mask, interval uint32) {
	if interval < 1 {
		interval = 1
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.turboMask[player] = mask
	e.turboInterval[player] = interval
}

// applyTurbo returns buttons with every bit in the player's turbo mask
// cleared during the "off" half of the turbo period: off-phase is
// (frame/interval) & 1 == 1, so the masked bits are asserted on even
// half-periods and dropped on odd ones.
func (e *Engine) applyTurbo(player int, frame uint64, buttonsHeld buttons.Mask) buttons.Mask {
	mask := e.turboMask[player]
	if mask == 0 {
		return buttonsHeld
	}
	interval := uint64(e.turboInterval[player])
	if interval == 0 {
		interval = 1
	}
	if (frame/interval)&1 == 1 {
		return buttonsHeld &^ mask
	}
	return buttonsHeld
}

// beginVpadPollLocked invalidates a player's stale playback latch and
// stale passthrough cache when the runtime frame has changed, as part of
// C9's BeginVpadPoll. Must be called with mu held.
func (e *Engine) beginVpadPollLocked(player int, runtimeFrame uint64) {
	c := &e.cursors[player]
	if c.haveLatch && c.latchRuntime != runtimeFrame {
		c.haveLatch = false
	}
	if c.havePassthrough && c.passthroughFrame != runtimeFrame {
		c.havePassthrough = false
	}
}

// refreshPassthroughLocked returns the live sample to use for player at
// runtimeFrame, capturing from the VPAD driver if the cache is stale. The
// engine lock is dropped for the duration of the capture (spec §5's only
// designed bypass), guarded by the bypassSet re-entrancy flag.
//
// Must be called with mu held; re-acquires it before returning.
func (e *Engine) refreshPassthroughLocked(player int, runtimeFrame uint64) {
	c := &e.cursors[player]
	if c.havePassthrough && c.passthroughFrame == runtimeFrame {
		return
	}

	e.bypass.enter()
	e.mu.Unlock()
	live := e.vpad.CaptureLive(player)
	e.mu.Lock()
	e.bypass.exit()

	live.Clamp()
	c.passthroughFrame = runtimeFrame
	c.passthroughSample = live
	c.havePassthrough = true

	e.manual[player] = ManualState{
		LX: live.LX, LY: live.LY, RX: live.RX, RY: live.RY,
		ZL: live.ZL, ZR: live.ZR,
		Buttons:  live.Buttons,
		VpadHold: live.VpadHold,
	}
}
