package nld

import (
	"errors"

	"github.com/san-kum/nld/internal/stat"
)

// Domain errors for descriptor estimation. Both are recoverable: callers in
// a streaming pipeline substitute the documented fallback value and keep
// going rather than abort the batch.
var (
	// ErrInsufficientData indicates a window too short for the requested
	// embedding or box parameters.
	ErrInsufficientData = errors.New("nld: window too short for requested parameters")

	// ErrDegenerateFit indicates fewer than two usable points for a
	// linear or log-log regression.
	ErrDegenerateFit = stat.ErrDegenerateFit
)
