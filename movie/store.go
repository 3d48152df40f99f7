package movie

import "sort"

// Store holds up to MaxPlayers independent PlayerTimelines. It implements
// component C1 (Movie Store) of the engine design: upsert, step-and-hold
// lookup, truncation and hashing.
//
// Store is a plain data structure with no internal locking; callers (the
// tasengine package) serialize access to it under their own mutex.
type Store struct {
	players [MaxPlayers]PlayerTimeline
}

// Player returns the timeline for the given player index. Index must be in
// [0, MaxPlayers).
func (s *Store) Player(player int) *PlayerTimeline {
	return &s.players[player]
}

// Upsert inserts or overwrites the sample for input.Frame in the given
// player's timeline, keeping it sorted. O(log n) search, O(n) shift on
// insert.
func (s *Store) Upsert(player int, input FrameInput) {
	input.Clamp()
	t := &s.players[player]
	i := sort.Search(len(t.frames), func(i int) bool {
		return t.frames[i].Frame >= input.Frame
	})
	if i < len(t.frames) && t.frames[i].Frame == input.Frame {
		t.frames[i] = input
	} else {
		t.frames = append(t.frames, FrameInput{})
		copy(t.frames[i+1:], t.frames[i:])
		t.frames[i] = input
	}
	t.recomputeMaxFrame()
}

// GetFrameFor returns the sample that should be in effect at queryFrame:
// the entry with the largest Frame <= queryFrame ("step-and-hold": gaps
// between recorded samples repeat the prior one). If loop is true and the
// timeline is non-empty, queryFrame is first reduced modulo MaxFrame()+1.
// Returns false if the timeline has no entry at or before queryFrame (which,
// for an empty timeline, is always).
func (s *Store) GetFrameFor(player int, frame uint64, loop bool) (FrameInput, bool) {
	t := &s.players[player]
	if len(t.frames) == 0 {
		return FrameInput{}, false
	}

	query := frame
	if loop && t.maxFrame > 0 {
		query = frame % (t.maxFrame + 1)
	}

	// largest index with Frame <= query
	i := sort.Search(len(t.frames), func(i int) bool {
		return t.frames[i].Frame > query
	})
	if i == 0 {
		return FrameInput{}, false
	}
	return t.frames[i-1], true
}

// TruncateAfter removes every sample with Frame > frame, across every
// player, and recomputes MaxFrame. Used for rerecording after a savestate
// load.
func (s *Store) TruncateAfter(frame uint64) {
	for p := range s.players {
		t := &s.players[p]
		i := sort.Search(len(t.frames), func(i int) bool {
			return t.frames[i].Frame > frame
		})
		t.frames = t.frames[:i]
		t.recomputeMaxFrame()
	}
}

// Clear empties every player's timeline.
func (s *Store) Clear() {
	for p := range s.players {
		s.players[p].Clear()
	}
}

// EvaluateSignaturesTrusted decides, once per movie load, whether recorded
// signatures are trustworthy enough to drive resync: true iff at least two
// distinct nonzero signatures exist among the first 64 non-neutral signed
// frames across all players. Purely neutral or single-signature movies fall
// back to frame-order playback.
func (s *Store) EvaluateSignaturesTrusted() bool {
	var first uint32
	haveFirst := false
	var counted int
players:
	for p := range s.players {
		for _, f := range s.players[p].frames {
			if f.Signature == 0 || f.IsNeutral() {
				continue
			}
			counted++
			if !haveFirst {
				first = f.Signature
				haveFirst = true
			} else if f.Signature != first {
				return true
			}
			if counted >= 64 {
				break players
			}
		}
	}
	return false
}
