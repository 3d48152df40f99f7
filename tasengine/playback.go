package tasengine

import (
	"github.com/retrotas/tas-engine/buttons"
	"github.com/retrotas/tas-engine/movie"
)

// resyncSalt names ComputeSignature's salt. Playback computes the expected
// signature with the same movie.ComputeSignature(runtimeFrame,
// gpuFrameCounter) call that record uses, so this constant is not read.
const resyncSalt = movie.SignatureSalt

// resyncWindows are tried in order when a recorded signature doesn't match
// the expected value for the current runtime frame.
var resyncWindows = [...]uint64{192, 2048}

// TryGetPlaybackSample implements the Playback Engine (C2). Returns the
// sample the host should use for player at runtimeFrame, or false if
// playback doesn't apply (wrong mode, or no data at that frame).
func (e *Engine) TryGetPlaybackSample(player int, runtimeFrame uint64) (buttons.Sample, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tryGetPlaybackSampleLocked(player, runtimeFrame)
}

func (e *Engine) tryGetPlaybackSampleLocked(player int, runtimeFrame uint64) (buttons.Sample, bool) {
	if e.mode != Playback {
		return buttons.Sample{}, false
	}

	c := &e.cursors[player]
	var movieFrame uint64
	if c.haveLatch && c.latchRuntime == runtimeFrame {
		movieFrame = c.latchedMovie
	} else {
		movieFrame = c.playbackCursor
		c.haveLatch = true
		c.latchRuntime = runtimeFrame
		c.latchedMovie = movieFrame
		if c.playbackCursor != ^uint64(0) {
			c.playbackCursor++
		}
	}

	f, ok := e.store.GetFrameFor(player, movieFrame, e.loop)
	if !ok {
		return buttons.Sample{}, false
	}

	if e.signaturesTrusted && !e.loop && f.Signature != 0 {
		expected := movie.ComputeSignature(runtimeFrame, e.clock.GpuFrameCounter())
		if f.Signature != expected {
			if found, movieIdx, ok := e.findResyncTarget(player, movieFrame, expected); ok {
				f = found
				c.latchedMovie = movieIdx
				c.playbackCursor = movieIdx + 1
				e.desynced = false
			} else {
				e.desynced = true
			}
		} else {
			e.desynced = false
		}
	}

	return f.Sample(), true
}

// findResyncTarget searches the player's timeline for a frame with the
// expected signature within the resync windows, narrowest-first: first
// W=192, then W=2048 frames on either side of movieFrame.
func (e *Engine) findResyncTarget(player int, movieFrame uint64, expected uint32) (movie.FrameInput, uint64, bool) {
	frames := e.store.Player(player).Frames()
	for _, w := range resyncWindows {
		lo := uint64(0)
		if movieFrame > w {
			lo = movieFrame - w
		}
		hi := movieFrame + w
		for _, f := range frames {
			if f.Frame < lo || f.Frame > hi {
				continue
			}
			if f.Signature == expected {
				return f, f.Frame, true
			}
		}
	}
	return movie.FrameInput{}, 0, false
}
