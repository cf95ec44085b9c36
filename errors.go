package folio

import "errors"

// Diagnostic error kinds. None of them is fatal: the experience degrades to
// an inert scene and keeps running.
var (
	// ErrMissingTarget marks a named object absent from the loaded room.
	ErrMissingTarget = errors.New("folio: target not found")
	// ErrPlaybackBlocked marks a video resume rejected by the autoplay policy.
	ErrPlaybackBlocked = errors.New("folio: playback blocked")
	// ErrLoadFailure marks a room that could not be loaded.
	ErrLoadFailure = errors.New("folio: load failed")
	// ErrInvalidConfig marks a configuration that failed validation.
	ErrInvalidConfig = errors.New("folio: invalid config")
)
