package tasengine

import (
	"io"
	"os"

	"github.com/retrotas/tas-engine/curated"
	"github.com/retrotas/tas-engine/movie"
)

// LoadMovieFile reads the '.ctm' movie at path, replacing whatever movie is
// currently loaded. The caller is still responsible for calling SetMode to
// actually enter Playback or Record against it; load alone leaves the
// engine's mode untouched.
func (e *Engine) LoadMovieFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return curated.Errorf(ErrLoadMovie, err)
	}
	defer f.Close()
	return e.loadMovieReader(path, f)
}

func (e *Engine) loadMovieReader(path string, r io.Reader) error {
	store, meta, err := movie.ImportText(r)
	if err != nil {
		return curated.Errorf(ErrLoadMovie, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.store = store
	e.moviePath = path
	e.loop = meta.Loop
	e.deterministicScheduler = meta.DeterministicScheduler
	e.deterministicTime = meta.DeterministicTime
	e.rerecordCount = meta.RerecordCount
	e.titleID = meta.TitleID
	e.signaturesTrusted = store.EvaluateSignaturesTrusted()
	e.movieHash = store.ComputeHash(e.titleID)
	e.movieDirty = false
	e.haveFlushed = true
	e.desynced = false

	for p := range e.cursors {
		e.cursors[p] = pollCursor{}
	}

	return nil
}

// SaveMovieFile flushes the current movie to path in '.ctm' text form and
// adopts path as the engine's movie path for future autosave flushes.
func (e *Engine) SaveMovieFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.moviePath = path
	if err := e.flushMovieTextLocked(); err != nil {
		return curated.Errorf(ErrSaveMovie, err)
	}
	e.movieDirty = false
	return nil
}

// NewMovie discards any loaded movie and starts a fresh, empty one at path,
// ready for Record mode.
func (e *Engine) NewMovie(path string, titleID uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.store = &movie.Store{}
	e.moviePath = path
	e.titleID = titleID
	e.rerecordCount = 0
	e.movieHash = 0
	e.signaturesTrusted = true
	e.movieDirty = false
	e.haveFlushed = false
	e.desynced = false

	for p := range e.cursors {
		e.cursors[p] = pollCursor{}
	}
}

// SetMode sets the engine's top-level mode and record policy.
func (e *Engine) SetMode(mode Mode, policy Policy) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = mode
	e.policy = policy
}

// SetLoop toggles whether GetFrameFor wraps past the end of a player's
// recorded timeline during playback.
func (e *Engine) SetLoop(b bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loop = b
}

// SetStrictTas sets the strict-TAS flag. Enabling it forces
// deterministicScheduler and deterministicTime on, per invariant 6; see
// enforceStrictTasPolicyLocked. The flag has no other effect on the engine.
func (e *Engine) SetStrictTas(b bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.strictTas = b
	e.enforceStrictTasPolicyLocked()
}

// enforceStrictTasPolicyLocked applies invariant 6: strictTas implies both
// determinism flags. Must be called with mu held whenever any of the three
// flags changes.
func (e *Engine) enforceStrictTasPolicyLocked() {
	if !e.strictTas {
		return
	}
	e.deterministicScheduler = true
	e.deterministicTime = true
}

// SetDeterministic toggles the scheduler/time determinism flags the host
// consults via IsDeterministicSchedulerEnabled/IsDeterministicTimeEnabled.
func (e *Engine) SetDeterministic(scheduler, clock bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deterministicScheduler = scheduler
	e.deterministicTime = clock
	e.enforceStrictTasPolicyLocked()
}
