package tasengine

// Curated error patterns for the package, matched with curated.Is/Has.
const (
	ErrNoMovieLoaded = "tasengine: no movie loaded"
	ErrUnknownPlayer = "tasengine: player %d out of range"
	ErrLoadMovie     = "tasengine: load movie: %v"
	ErrSaveMovie     = "tasengine: save movie: %v"
)
