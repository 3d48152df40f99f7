package tasengine

import "time"

// cvPollInterval bounds how long a barrier wait sleeps before re-checking
// its predicate, so that a change to externalPauseRequested is observed
// promptly even if the requester forgets to also broadcast (spec §5, §9
// design note).
const cvPollInterval = time.Millisecond

// WaitForCpuPermit blocks the calling (CPU emulation) thread while the
// engine is paused and no step has been granted. Returns once either a
// step permit is available (consuming it) or the engine is unpaused.
func (e *Engine) WaitForCpuPermit() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for e.paused && e.steps == 0 && !e.externalPauseRequested {
		e.waitTimeout()
	}
	e.wake()
}

// WaitForPermit blocks the calling (render/visual) thread while the engine
// is paused and neither a step nor a visual-refresh permit is available.
func (e *Engine) WaitForPermit() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for e.paused && e.steps == 0 && e.visualRefreshPermits == 0 && !e.externalPauseRequested {
		e.waitTimeout()
	}
	e.wake()
}

// wake applies the post-wait transition described in spec §4.6: a
// visual-refresh permit takes priority (visual-only wake, clears
// stepActive); otherwise a pending step is consumed and stepActive is set.
// Must be called with mu held.
func (e *Engine) wake() {
	if e.visualRefreshPermits > 0 {
		e.stepActive = false
		return
	}
	if e.steps > 0 {
		e.steps--
		e.stepActive = true
	}
}

// waitTimeout waits on cond, relying on the background ticker goroutine
// started by NewEngine to broadcast at least once every cvPollInterval so
// that a waiter's predicate is re-checked promptly even if whoever changed
// externalPauseRequested forgot to also broadcast. Must be called with mu
// held; releases it for the duration of the wait like any sync.Cond.Wait.
func (e *Engine) waitTimeout() {
	e.cond.Wait()
}

// runBarrierTicker broadcasts on cond once per cvPollInterval for the
// lifetime of the process. There is one of these per Engine; it is cheap
// and never exits, matching the source engine's "always-on" barrier
// thread.
func (e *Engine) runBarrierTicker() {
	ticker := time.NewTicker(cvPollInterval)
	for range ticker.C {
		e.mu.Lock()
		e.cond.Broadcast()
		e.mu.Unlock()
	}
}

// SetPaused sets the paused flag. Unpausing clears every permit and
// stepActive, and wakes every waiter.
func (e *Engine) SetPaused(b bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setPausedLocked(b)
}

func (e *Engine) setPausedLocked(b bool) {
	e.paused = b
	if !b {
		e.steps = 0
		e.visualRefreshPermits = 0
		e.stepActive = false
	}
	e.cond.Broadcast()
}

// TogglePaused flips the paused flag, applying the same unpause semantics
// as SetPaused when it becomes unpaused.
func (e *Engine) TogglePaused() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setPausedLocked(!e.paused)
}

// IsPaused reports the current pause state.
func (e *Engine) IsPaused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// RequestStep grants n CPU-advance permits. Only meaningful while paused.
// Also primes a live VPAD sample for every player (invalidating their
// passthrough caches) so the stepped frame doesn't read stale passthrough
// data — ported from original_source's ArmTimelineInputGuard.
func (e *Engine) RequestStep(n uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.paused {
		return
	}
	e.visualRefreshPermits = 0
	e.steps += n
	for p := range e.cursors {
		e.cursors[p].havePassthrough = false
	}
	e.cond.Broadcast()
}

// RequestVisualRefresh grants n visual-only wake permits, saturating at
// the uint32 maximum.
func (e *Engine) RequestVisualRefresh(n uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.visualRefreshPermits+n < e.visualRefreshPermits {
		e.visualRefreshPermits = ^uint32(0)
	} else {
		e.visualRefreshPermits += n
	}
	e.cond.Broadcast()
}

// ConsumeVisualRefreshPermit atomically decrements the visual-refresh
// permit count if positive, reporting whether it did.
func (e *Engine) ConsumeVisualRefreshPermit() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.visualRefreshPermits == 0 {
		return false
	}
	e.visualRefreshPermits--
	return true
}

// SetExternalPauseRequested sets the host-owned short-circuit flag that
// lets the barrier observe an external pause request without the
// requester needing to also broadcast (the CV wait loop re-checks it every
// cvPollInterval regardless).
func (e *Engine) SetExternalPauseRequested(b bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.externalPauseRequested = b
	e.cond.Broadcast()
}

// IsStepActive reports whether the most recent barrier wake was a
// CPU-advancing step, as opposed to a visual-only refresh or an unpause.
func (e *Engine) IsStepActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stepActive
}

// IsDeterministicSchedulerEnabled reports whether the host scheduler
// should pin itself to deterministic mode: true whenever the configured
// flag is set, or the engine has any movie activity, or it's paused.
func (e *Engine) IsDeterministicSchedulerEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deterministicScheduler || e.mode != Disabled || e.paused
}

// IsDeterministicTimeEnabled mirrors IsDeterministicSchedulerEnabled for
// the host's time source.
func (e *Engine) IsDeterministicTimeEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deterministicTime || e.mode != Disabled || e.paused
}
