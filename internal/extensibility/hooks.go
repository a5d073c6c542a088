// Package extensibility holds ready-made collaborators for a race loop: cue
// hooks, tracks, inputs and renderers.
package extensibility

import (
	"github.com/rs/zerolog"

	"github.com/comalice/racecore"
)

// LoggingHooks wraps Hooks and logs every cue before delegating.
type LoggingHooks struct {
	inner  racecore.Hooks
	logger zerolog.Logger
}

// NewLoggingHooks creates a LoggingHooks wrapping inner. A nil inner only logs.
func NewLoggingHooks(inner racecore.Hooks, logger zerolog.Logger) *LoggingHooks {
	if inner == nil {
		inner = racecore.HookFuncs{}
	}
	return &LoggingHooks{inner: inner, logger: logger}
}

func (h *LoggingHooks) OnCountdownTick(remaining int) {
	h.logger.Debug().Int("remaining", remaining).Msg("countdown")
	h.inner.OnCountdownTick(remaining)
}

func (h *LoggingHooks) OnGoPromptShown() {
	h.logger.Debug().Msg("go")
	h.inner.OnGoPromptShown()
}

func (h *LoggingHooks) OnPhaseChange(from, to racecore.Phase) {
	h.logger.Debug().Stringer("from", from).Stringer("to", to).Msg("phase change")
	h.inner.OnPhaseChange(from, to)
}
