package racecore

import (
	"errors"

	"github.com/comalice/racecore/clock"
)

var (
	// ErrInvalidConfig reports a bad cap or session configuration. It is the same
	// sentinel as clock.ErrInvalidConfig.
	ErrInvalidConfig = clock.ErrInvalidConfig

	// ErrInvalidInput reports a negative or NaN frame delta passed to Advance.
	// The session state is left untouched; callers may skip the tick.
	ErrInvalidInput = errors.New("invalid input")
)
