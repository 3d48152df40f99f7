package movie

import "github.com/retrotas/tas-engine/buttons"

// MaxPlayers is the number of controller ports the movie store tracks,
// matching the host's VPAD port count.
const MaxPlayers = 4

// FrameInput is a single per-player controller sample, keyed by its
// ordinal position (Frame) within the movie timeline. Frame is a movie
// ordinal, not a wall-clock or runtime-frame value; the mapping between the
// two is the playback engine's job, not the movie store's.
type FrameInput struct {
	Frame uint64

	LX, LY, RX, RY float32
	ZL, ZR         float32
	Buttons        buttons.Mask

	// Signature is the FNV-1a-32 hash of (frame, host_gpu_frame_counter)
	// captured when this sample was recorded. Zero when no signature was
	// captured (e.g. imported from a legacy CSV movie).
	Signature uint32

	// VpadHold carries host-specific hold-button bits opaquely; the engine
	// never interprets them.
	VpadHold uint32
}

// Clamp enforces invariant 3: sticks in [-1,1], triggers in [0,1]. Called on
// every ingress path (text parse, blob deserialize, record, playback
// ingest).
func (f *FrameInput) Clamp() {
	f.LX = buttons.ClampStick(f.LX)
	f.LY = buttons.ClampStick(f.LY)
	f.RX = buttons.ClampStick(f.RX)
	f.RY = buttons.ClampStick(f.RY)
	f.ZL = buttons.ClampTrigger(f.ZL)
	f.ZR = buttons.ClampTrigger(f.ZR)
}

// Sample projects a FrameInput onto the buttons.Sample shape used by the
// query router and overlay.
func (f FrameInput) Sample() buttons.Sample {
	return buttons.Sample{
		LX: f.LX, LY: f.LY, RX: f.RX, RY: f.RY,
		ZL: f.ZL, ZR: f.ZR,
		Buttons:     f.Buttons,
		VpadHold:    f.VpadHold,
		HasVpadHold: true,
	}
}

// neutralEpsilon is the tolerance original_source uses to decide whether a
// sample counts as "neutral" (no meaningful input) when evaluating whether
// recorded signatures can be trusted for resync.
const neutralEpsilon = 0.0001

// IsNeutral reports whether every analog axis is within neutralEpsilon of
// zero and no buttons or hold bits are set. Ported from original_source's
// IsNeutralFrameInput so that EvaluateSignaturesTrusted's "first 64
// non-neutral signed frames" window matches the source engine exactly.
func (f FrameInput) IsNeutral() bool {
	return absf(f.LX) <= neutralEpsilon &&
		absf(f.LY) <= neutralEpsilon &&
		absf(f.RX) <= neutralEpsilon &&
		absf(f.RY) <= neutralEpsilon &&
		absf(f.ZL) <= neutralEpsilon &&
		absf(f.ZR) <= neutralEpsilon &&
		f.Buttons == 0 &&
		f.VpadHold == 0
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// PlayerTimeline is an ordered, unique-keyed sequence of FrameInput for a
// single player. Frames are always sorted and unique (invariant 1).
type PlayerTimeline struct {
	frames   []FrameInput
	maxFrame uint64
}

// Len returns the number of recorded samples.
func (t *PlayerTimeline) Len() int {
	return len(t.frames)
}

// MaxFrame returns the largest stored frame key, or 0 if the timeline is
// empty.
func (t *PlayerTimeline) MaxFrame() uint64 {
	return t.maxFrame
}

// At returns a copy of the frame at index i in timeline order.
func (t *PlayerTimeline) At(i int) FrameInput {
	return t.frames[i]
}

// Frames returns a copy of the underlying slice, safe for the caller to
// range over without holding any lock.
func (t *PlayerTimeline) Frames() []FrameInput {
	out := make([]FrameInput, len(t.frames))
	copy(out, t.frames)
	return out
}

func (t *PlayerTimeline) recomputeMaxFrame() {
	if len(t.frames) == 0 {
		t.maxFrame = 0
		return
	}
	t.maxFrame = t.frames[len(t.frames)-1].Frame
}

// Clear empties the timeline.
func (t *PlayerTimeline) Clear() {
	t.frames = t.frames[:0]
	t.maxFrame = 0
}

// Replace wholesale-replaces the timeline contents, used by blob
// deserialization. The caller must supply frames already sorted and
// unique; Replace does not re-sort.
func (t *PlayerTimeline) Replace(frames []FrameInput) {
	t.frames = frames
	t.recomputeMaxFrame()
}
