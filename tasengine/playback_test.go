package tasengine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/retrotas/tas-engine/movie"
	"github.com/retrotas/tas-engine/tasengine"
)

// S4: when the playback cursor falls 5 frames behind the runtime frame, the
// recorded signature no longer matches the expected one, and playback
// resynchronises to the matching frame inside the 192-frame window without
// reporting a desync.
func TestPlaybackResyncWithinWindow(t *testing.T) {
	e, clock := newTestEngine()
	e.NewMovie("", 1)
	e.SetMode(tasengine.Record, tasengine.ReadWrite)

	for frame := uint64(0); frame < 100; frame++ {
		clock.advance()
		e.BeginVpadPoll(0, frame)
		e.RecordVpadSample(0, frame, movie.FrameInput{LX: float32(frame) / 100})
		e.OnFramePresented(frame)
	}

	e.SetMode(tasengine.Playback, tasengine.ReadOnly)
	clock.n = 0

	// Frames 0-9 play back normally: the cursor tracks the runtime frame
	// exactly and every signature matches.
	for frame := uint64(0); frame < 10; frame++ {
		clock.advance()
		e.BeginVpadPoll(0, frame)
		_, ok := e.TryGetPlaybackSample(0, frame)
		require.True(t, ok)
		require.False(t, e.IsMovieDesynced())
	}

	// Frames 10-14 simulate dropped polls: time (the gpu frame counter)
	// keeps moving but the engine is never polled, so its cursor falls
	// behind the runtime frame by 5.
	for frame := uint64(10); frame < 15; frame++ {
		clock.advance()
	}

	// Polling resumes at runtime frame 15 with a stale cursor sitting at
	// 10: the recorded signature at movie frame 10 no longer matches the
	// signature expected for runtime frame 15, and findResyncTarget must
	// locate the recorded frame with the matching signature (15, exactly
	// 5 frames away, well inside the 192-frame window) and realign.
	clock.advance()
	e.BeginVpadPoll(0, 15)
	_, ok := e.TryGetPlaybackSample(0, 15)
	require.True(t, ok)
	require.False(t, e.IsMovieDesynced())

	// The cursor is now realigned: the next poll should read movie frame
	// 16, not 11.
	clock.advance()
	e.BeginVpadPoll(0, 16)
	_, ok = e.TryGetPlaybackSample(0, 16)
	require.True(t, ok)
	require.False(t, e.IsMovieDesynced())
}

// When the gap between the stale cursor and the true runtime frame exceeds
// every resync window, the engine reports a desync instead of silently
// reading the wrong sample.
func TestPlaybackDesyncBeyondResyncWindow(t *testing.T) {
	e, clock := newTestEngine()
	e.NewMovie("", 1)
	e.SetMode(tasengine.Record, tasengine.ReadWrite)

	for frame := uint64(0); frame < 5000; frame++ {
		clock.advance()
		e.BeginVpadPoll(0, frame)
		e.RecordVpadSample(0, frame, movie.FrameInput{})
		e.OnFramePresented(frame)
	}

	e.SetMode(tasengine.Playback, tasengine.ReadOnly)
	clock.n = 0

	clock.advance()
	e.BeginVpadPoll(0, 0)
	_, ok := e.TryGetPlaybackSample(0, 0)
	require.True(t, ok)

	// Jump the clock far ahead of the cursor without ever polling the
	// intervening frames: 3000 frames of drift is outside both the
	// 192-frame and 2048-frame resync windows.
	for i := 0; i < 3000; i++ {
		clock.advance()
	}

	e.BeginVpadPoll(0, 3001)
	_, ok = e.TryGetPlaybackSample(0, 3001)
	require.True(t, ok)
	require.True(t, e.IsMovieDesynced())
}

// A sample played back at the same runtime frame and gpu frame counter it
// was recorded at carries the expected signature, so playback does not
// report a desync.
func TestPlaybackMatchingSignatureDoesNotDesync(t *testing.T) {
	e, _ := newTestEngine()
	e.NewMovie("", 1)
	e.SetMode(tasengine.Record, tasengine.ReadWrite)
	e.RecordSample(0, 0, movie.FrameInput{})

	e.SetMode(tasengine.Playback, tasengine.ReadOnly)
	e.BeginVpadPoll(0, 0)
	_, ok := e.TryGetPlaybackSample(0, 0)
	require.True(t, ok)
	require.False(t, e.IsMovieDesynced())
}
