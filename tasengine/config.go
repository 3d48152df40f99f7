package tasengine

import (
	"os"

	"github.com/retrotas/tas-engine/buttons"
)

func statMovie(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// TurboConfig configures one player's turbo mask and half-period, set
// alongside the rest of Config on load or hot-reload.
type TurboConfig struct {
	Player   int
	Mask     buttons.Mask
	Interval uint32
}

// Config is the set of engine properties that a host configuration layer
// may supply at startup or on a hot-reload. It deliberately mirrors only
// the fields the engine itself owns; everything else (paths, UI layout,
// key bindings) is the config package's own concern.
type Config struct {
	Mode                   Mode
	Policy                 Policy
	Loop                   bool
	StrictTas              bool
	DeterministicScheduler bool
	DeterministicTime      bool
	ControllerPassthrough  bool
	ManualEnabled          bool
	MoviePath              string
	Turbo                  []TurboConfig
}

// ReloadFromConfig applies cfg to the engine (spec §3.1's one-time init /
// hot-reload entry point). If cfg.MoviePath names an existing file it is
// loaded first, under its own lock acquisition; a missing or empty path
// leaves whatever movie is already loaded untouched. The remaining fields
// are then applied in one locked step.
func (e *Engine) ReloadFromConfig(cfg Config) error {
	if cfg.MoviePath != "" {
		if _, err := statMovie(cfg.MoviePath); err == nil {
			if err := e.LoadMovieFile(cfg.MoviePath); err != nil {
				return err
			}
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.mode = cfg.Mode
	e.policy = cfg.Policy
	e.loop = cfg.Loop
	e.strictTas = cfg.StrictTas
	e.deterministicScheduler = cfg.DeterministicScheduler
	e.deterministicTime = cfg.DeterministicTime
	e.enforceStrictTasPolicyLocked()
	e.controllerPassthrough = cfg.ControllerPassthrough
	e.manualEnabled = cfg.ManualEnabled
	if cfg.MoviePath != "" {
		e.moviePath = cfg.MoviePath
	}
	for _, t := range cfg.Turbo {
		if t.Player < 0 || t.Player >= len(e.turboMask) {
			continue
		}
		e.turboMask[t.Player] = t.Mask
		e.turboInterval[t.Player] = t.Interval
	}

	return nil
}
