package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/retrotas/tas-engine/curated"
	"github.com/retrotas/tas-engine/logger"
	"github.com/retrotas/tas-engine/tasengine"
)

const ErrWatch = "config: watch project file: %v"

// Watcher re-runs Load against a project file whenever it, or the movie
// file it currently names, changes on disk. A host GUI is expected to edit
// these files out-of-process; Watcher exists so a running engine picks up
// the change without a restart.
type Watcher struct {
	fsw    *fsnotify.Watcher
	path   string
	engine *tasengine.Engine
	done   chan struct{}

	mu        sync.Mutex
	moviePath string
	movieDir  string
}

// Watch starts watching path (and the movie it currently names) and
// performs an initial Load. Call Close to stop.
func Watch(path string, engine *tasengine.Engine) (*Watcher, error) {
	p, err := Load(path, engine)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, curated.Errorf(ErrWatch, err)
	}

	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, curated.Errorf(ErrWatch, err)
	}

	w := &Watcher{
		fsw:    fsw,
		path:   filepath.Clean(path),
		engine: engine,
		done:   make(chan struct{}),
	}
	w.watchMovie(p.MoviePath)
	go w.run()
	return w, nil
}

// watchMovie starts watching moviePath's directory if it names a
// non-empty path not already being watched. Acquires w.mu itself; callers
// must not hold it. Errors are logged, not returned: a movie-file watch is
// best-effort and must never fail the project-file watch it rides
// alongside.
func (w *Watcher) watchMovie(moviePath string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if moviePath == "" {
		w.moviePath = ""
		return
	}
	w.moviePath = filepath.Clean(moviePath)

	dir := filepath.Dir(w.moviePath)
	if dir == w.movieDir {
		return
	}
	w.movieDir = dir
	if err := w.fsw.Add(dir); err != nil {
		logger.Logf("config", "watch movie dir %s: %v", dir, err)
	}
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			name := filepath.Clean(ev.Name)
			w.mu.Lock()
			moviePath := w.moviePath
			w.mu.Unlock()

			switch name {
			case w.path:
				p, err := Load(w.path, w.engine)
				if err != nil {
					logger.Logf("config", "reload failed: %v", err)
					continue
				}
				w.watchMovie(p.MoviePath)
			case moviePath:
				if _, err := Load(w.path, w.engine); err != nil {
					logger.Logf("config", "movie revalidation failed: %v", err)
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Logf("config", "watch error: %v", err)
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
