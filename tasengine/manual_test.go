package tasengine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/retrotas/tas-engine/buttons"
	"github.com/retrotas/tas-engine/movie"
	"github.com/retrotas/tas-engine/tasengine"
)

// Property 7: turbo asserts the masked buttons on even half-periods and
// drops them on odd ones.
func TestTurboPhaseFormula(t *testing.T) {
	e, _ := newTestEngine()
	e.SetManualEnabled(true)
	e.SetManual(0, tasengine.ManualState{Buttons: buttons.A | buttons.B})
	e.SetTurbo(0, buttons.A, 2)

	for frame := uint64(0); frame < 8; frame++ {
		v, ok := e.QueryVpadMapping(0, frame, buttons.MapA)
		require.True(t, ok)
		offPhase := (frame/2)%2 == 1
		if offPhase {
			require.Zero(t, v, "frame %d should be turbo off-phase", frame)
		} else {
			require.NotZero(t, v, "frame %d should be turbo on-phase", frame)
		}

		// B is untouched by the turbo mask and should always read held.
		bVal, ok := e.QueryVpadMapping(0, frame, buttons.MapB)
		require.True(t, ok)
		require.NotZero(t, bVal)
	}
}

// S5: with controller passthrough enabled, the manual layer is seeded from
// the VPAD driver's live capture, and the capture is refreshed once per
// runtime frame (not once per mapping query).
func TestPassthroughCapturesOncePerFrame(t *testing.T) {
	clock := &fakeClock{}
	vpad := newFakeVpad()
	vpad.set(0, movie.FrameInput{LX: 0.75, Buttons: buttons.A})

	e := tasengine.NewEngine(clock, fakeSystem{titleID: 1}, vpad)
	e.SetManualEnabled(true)
	e.SetPassthrough(true)

	e.BeginVpadPoll(0, 0)
	v, ok := e.QueryVpadMapping(0, 0, buttons.MapA)
	require.True(t, ok)
	require.Equal(t, float32(1), v)
	require.InDelta(t, 0.75, e.GetOverlayState(0, 0).LX, 0.0001)

	// Changing the live sample mid-frame should not affect this frame's
	// already-cached passthrough value.
	vpad.set(0, movie.FrameInput{LX: -0.5})
	require.InDelta(t, 0.75, e.GetOverlayState(0, 0).LX, 0.0001)

	// A new runtime frame invalidates the cache and picks up the new value.
	e.BeginVpadPoll(0, 1)
	v, ok = e.QueryVpadMapping(0, 1, buttons.MapA)
	require.True(t, ok)
	require.Zero(t, v)
	require.InDelta(t, -0.5, e.GetOverlayState(0, 1).LX, 0.0001)
}

func TestManualDisabledFallsThroughToPhysicalController(t *testing.T) {
	e, _ := newTestEngine()
	_, ok := e.QueryVpadMapping(0, 0, buttons.MapA)
	require.False(t, ok)
}
