package tasengine

import (
	"github.com/retrotas/tas-engine/logger"
	"github.com/retrotas/tas-engine/movie"
)

// syncMagic and syncVersion identify a MovieSyncData descriptor, matching
// spec §6.3.
const (
	syncMagic   uint32 = 0x4D53594E // "MSYN"
	syncVersion uint32 = 1
)

// MovieSyncData accompanies a savestate load: the host's record of what
// the movie hash and rerecord count were at the moment the state was
// saved, used to detect a movie/savestate mismatch.
type MovieSyncData struct {
	Magic         uint32
	Version       uint32
	MovieHash     uint64
	Frame         uint64
	RerecordCount uint32
	Signature     uint32
}

// NewMovieSyncData builds a MovieSyncData descriptor for the current
// engine state at frame, to be embedded alongside a host savestate.
func (e *Engine) NewMovieSyncData(frame uint64) MovieSyncData {
	e.mu.Lock()
	defer e.mu.Unlock()
	return MovieSyncData{
		Magic:         syncMagic,
		Version:       syncVersion,
		MovieHash:     e.movieHash,
		Frame:         frame,
		RerecordCount: e.rerecordCount,
		Signature:     movie.ComputeSignature(frame, e.clock.GpuFrameCounter()),
	}
}

// OnTimelineLoaded implements the Timeline Sync component (C7): the
// host calls this after restoring a savestate at restoredFrame, alongside
// the MovieSyncData that travelled with it (if any).
//
// playbackCursor and recordCursor are preserved across the reset:
// playback is poll-driven, so the cursor must not jump backwards when a
// blob written mid-playback is reloaded. Every other piece of per-poll
// state (latches, passthrough cache, record dedup guard) is reset.
func (e *Engine) OnTimelineLoaded(restoredFrame uint64, sync *MovieSyncData) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for p := range e.cursors {
		c := &e.cursors[p]
		c.haveLatch = false
		c.havePassthrough = false
		c.haveLastRecord = false
	}

	if e.mode == Record && e.policy == ReadWrite {
		e.store.TruncateAfter(restoredFrame)

		for p := range e.cursors {
			c := &e.cursors[p]
			t := e.store.Player(p)
			if t.Len() > 0 {
				c.recordCursor = t.At(t.Len()-1).Frame + 1
			} else {
				c.recordCursor = 0
			}
		}

		e.rerecordCount++
		e.movieHash = e.store.ComputeHash(e.titleID)
		e.movieDirty = true
		e.flushMovieTextLocked()
		e.movieDirty = false
	}

	if sync != nil {
		e.validateMovieSyncLocked(*sync)
	}
}

func (e *Engine) maxRecordCursor() uint64 {
	var max uint64
	for p := range e.cursors {
		if e.cursors[p].recordCursor > max {
			max = e.cursors[p].recordCursor
		}
	}
	return max
}

// ValidateMovieSync compares sync against the engine's current state and
// logs (but never fails) a mismatch: the engine prefers lenient
// continuation to a hard abort (spec §4.7, §7).
func (e *Engine) ValidateMovieSync(sync MovieSyncData) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.validateMovieSyncLocked(sync)
}

func (e *Engine) validateMovieSyncLocked(sync MovieSyncData) {
	if sync.Magic != syncMagic || sync.Version != syncVersion {
		return
	}
	if e.mode == Disabled {
		return
	}
	if e.policy == ReadOnly && sync.MovieHash != e.movieHash {
		logger.Log("tasengine", "movie hash mismatch at savestate sync, continuing anyway")
	}
}
