package estimation

import "errors"

var (
	// ErrInvalidConfig is returned by NewMStep for negative configuration values.
	ErrInvalidConfig = errors.New("estimation: invalid config")

	// ErrDegenerateDistribution is returned when the re-estimated ability
	// distribution has no spread, so no identification transform exists.
	ErrDegenerateDistribution = errors.New("estimation: degenerate latent distribution")
)
