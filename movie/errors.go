package movie

// Curated error sentinels for the movie package. Tested with
// curated.Is/curated.Has rather than string matching.
const (
	ErrBadHeader       = "movie: not a .ctm file (%v)"
	ErrBadFrameLine    = "movie: malformed frame line %d (%v)"
	ErrBadMetaLine     = "movie: malformed metadata line %d (%v)"
	ErrUnknownButton   = "movie: unrecognised button token %q at line %d"
	ErrPlayerOutOfRange = "movie: player index %d out of range"
	ErrBlobTooShort    = "movie: blob too short (%v)"
	ErrBlobBadMagic    = "movie: blob has wrong magic (%#08x)"
	ErrBlobBadVersion  = "movie: unsupported blob version (%d)"
)
