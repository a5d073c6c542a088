package extensibility

import (
	"github.com/rs/zerolog"

	"github.com/comalice/racecore"
	"github.com/comalice/racecore/realtime"
)

// LogRenderer draws frames as log lines. Overlay changes are logged at Info,
// and every Every-th frame is logged at Debug with its caption.
type LogRenderer struct {
	logger zerolog.Logger
	Every  uint64

	last racecore.Overlay
	seen bool
}

// NewLogRenderer creates a LogRenderer logging every 60th frame.
func NewLogRenderer(logger zerolog.Logger) *LogRenderer {
	return &LogRenderer{logger: logger, Every: 60}
}

// Render logs f.
func (r *LogRenderer) Render(f realtime.Frame) {
	if !r.seen || f.Overlay != r.last {
		r.seen = true
		r.last = f.Overlay
		switch f.Overlay.Kind {
		case racecore.OverlayLight:
			r.logger.Info().Int("light", f.Overlay.Light).Uint64("tick", f.Tick).Msg("start light")
		case racecore.OverlayGo:
			r.logger.Info().Uint64("tick", f.Tick).Msg("GO!")
		}
	}
	if r.Every > 0 && f.Tick%r.Every == 0 {
		r.logger.Debug().
			Uint64("tick", f.Tick).
			Stringer("phase", f.Phase).
			Float64("lap_time", f.LapTime).
			Msg(f.Caption)
	}
}
