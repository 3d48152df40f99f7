package config

import "github.com/retrotas/tas-engine/tasengine"

// Load reads the project file at path and applies it to engine via
// Engine.ReloadFromConfig, implementing the external Config collaborator.
func Load(path string, engine *tasengine.Engine) (Project, error) {
	p, err := LoadProject(path)
	if err != nil {
		return Project{}, err
	}
	if err := engine.ReloadFromConfig(p.ToEngineConfig()); err != nil {
		return Project{}, err
	}
	return p, nil
}
