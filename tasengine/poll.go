package tasengine

import "github.com/retrotas/tas-engine/movie"

// BeginVpadPoll opens one host VPAD poll for player at runtimeFrame (spec
// §4.9 step 1). Must be called once per player per runtime frame, before
// TryGetPlaybackSample or QueryVpadMapping are consulted for that frame.
func (e *Engine) BeginVpadPoll(player int, runtimeFrame uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.beginVpadPollLocked(player, runtimeFrame)
}

// RecordVpadSample is the poll-lifecycle counterpart to RecordSample (spec
// §4.9 step 3): the host calls it with whatever sample it actually used for
// player at runtimeFrame, whether that came from the physical controller,
// the script generator, or passthrough. A noop outside Record mode.
func (e *Engine) RecordVpadSample(player int, runtimeFrame uint64, sample movie.FrameInput) {
	e.RecordSample(player, runtimeFrame, sample)
}
