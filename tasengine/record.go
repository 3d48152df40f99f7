package tasengine

import (
	"os"

	"github.com/retrotas/tas-engine/curated"
	"github.com/retrotas/tas-engine/movie"
)

const flushIntervalFrames = 30

const (
	ErrNoMoviePath = "tasengine: no movie path configured, cannot flush"
)

// RecordSample implements the Record Engine (C3). live is the sample
// captured from the physical controller (or from the script generator) for
// player at runtimeFrame. A noop unless the engine is in Record mode; a
// runtime frame already recorded for this player is silently deduplicated.
func (e *Engine) RecordSample(player int, runtimeFrame uint64, live movie.FrameInput) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mode != Record {
		return
	}

	c := &e.cursors[player]
	if c.haveLastRecord && c.lastRecordRuntimeFrame == runtimeFrame {
		return
	}

	movieFrame := c.recordCursor
	c.recordCursor++
	c.haveLastRecord = true
	c.lastRecordRuntimeFrame = runtimeFrame

	live.Frame = movieFrame
	live.Signature = movie.ComputeSignature(runtimeFrame, e.clock.GpuFrameCounter())
	live.Clamp()

	e.store.Upsert(player, live)
	e.movieHash = e.store.ComputeHash(e.titleID)
	e.movieDirty = true
	if movieFrame > e.lastRecordedFrame || !e.haveFlushed {
		e.lastRecordedFrame = movieFrame
	}
}

// OnFramePresented drives the record flush policy: if the movie is dirty
// and either this is the first flush ever or at least
// flushIntervalFrames have elapsed since the last one, the whole movie
// text file is rewritten (truncate + write, for crash-atomicity) and the
// dirty flag cleared.
func (e *Engine) OnFramePresented(frame uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.maybeFlushLocked(frame)
}

func (e *Engine) maybeFlushLocked(frame uint64) {
	if !e.movieDirty {
		return
	}
	if e.haveFlushed && frame-e.lastFlushRuntimeFrame < flushIntervalFrames {
		return
	}
	if err := e.flushMovieTextLocked(); err != nil {
		return
	}
	e.movieDirty = false
	e.haveFlushed = true
	e.lastFlushRuntimeFrame = frame
}

// flushMovieTextLocked rewrites the movie text file wholesale. Must be
// called with mu held.
func (e *Engine) flushMovieTextLocked() error {
	if e.moviePath == "" {
		return curated.Errorf(ErrNoMoviePath)
	}

	f, err := os.Create(e.moviePath)
	if err != nil {
		return curated.Errorf("tasengine: flush movie: %v", err)
	}
	defer f.Close()

	opt := movie.ExportOptions{
		Metadata: movie.Metadata{
			Loop:                   e.loop,
			DeterministicScheduler: e.deterministicScheduler,
			DeterministicTime:      e.deterministicTime,
			RerecordCount:          e.rerecordCount,
			MovieHash:              e.movieHash,
			TitleID:                e.titleID,
		},
		MovieMode:         uint32(e.mode),
		MovieRecordPolicy: uint32(e.policy),
	}
	return movie.ExportText(f, e.store, opt)
}
