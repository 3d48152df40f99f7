package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/retrotas/tas-engine/buttons"
	"github.com/retrotas/tas-engine/curated"
	"github.com/retrotas/tas-engine/tasengine"
)

const (
	ErrReadProject  = "config: read project file: %v"
	ErrParseProject = "config: parse project file: %v"
)

// Project is the on-disk YAML shape of a TAS project file: everything
// needed to reconstruct a tasengine.Config without a running host.
type Project struct {
	TitleID   uint64 `yaml:"title_id"`
	MoviePath string `yaml:"movie_path"`

	Mode   string `yaml:"mode"`   // "disabled", "playback", or "record"
	Policy string `yaml:"policy"` // "read_only" or "read_write"

	Loop                   bool `yaml:"loop"`
	StrictTas              bool `yaml:"strict_tas_mode"`
	DeterministicScheduler bool `yaml:"deterministic_scheduler"`
	DeterministicTime      bool `yaml:"deterministic_time"`
	ControllerPassthrough  bool `yaml:"controller_passthrough"`
	ManualEnabled          bool `yaml:"manual_enabled"`

	// ManualScript names a Lua file implementing tas_frame(frame, port);
	// see the script package. It is parsed but not acted on: neither Load
	// nor ToEngineConfig creates a script.Generator from it.
	ManualScript string `yaml:"manual_script"`

	Turbo []TurboEntry `yaml:"turbo"`
}

// TurboEntry configures one player's turbo mask and half-period.
type TurboEntry struct {
	Player   int    `yaml:"player"`
	Buttons  string `yaml:"buttons"`
	Interval uint32 `yaml:"interval"`
}

// LoadProject reads and parses a TAS project file at path.
func LoadProject(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, curated.Errorf(ErrReadProject, err)
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Project{}, curated.Errorf(ErrParseProject, err)
	}
	return p, nil
}

// ToEngineConfig converts a parsed Project into the tasengine.Config the
// engine itself understands.
func (p Project) ToEngineConfig() tasengine.Config {
	turbo := make([]tasengine.TurboConfig, 0, len(p.Turbo))
	for _, t := range p.Turbo {
		mask, _ := buttons.ParseList(t.Buttons)
		turbo = append(turbo, tasengine.TurboConfig{
			Player:   t.Player,
			Mask:     mask,
			Interval: t.Interval,
		})
	}
	return tasengine.Config{
		Mode:                   parseMode(p.Mode),
		Policy:                 parsePolicy(p.Policy),
		Loop:                   p.Loop,
		StrictTas:              p.StrictTas,
		DeterministicScheduler: p.DeterministicScheduler,
		DeterministicTime:      p.DeterministicTime,
		ControllerPassthrough:  p.ControllerPassthrough,
		ManualEnabled:          p.ManualEnabled,
		MoviePath:              p.MoviePath,
		Turbo:                  turbo,
	}
}

func parseMode(s string) tasengine.Mode {
	switch s {
	case "playback":
		return tasengine.Playback
	case "record":
		return tasengine.Record
	default:
		return tasengine.Disabled
	}
}

func parsePolicy(s string) tasengine.Policy {
	if s == "read_write" {
		return tasengine.ReadWrite
	}
	return tasengine.ReadOnly
}
