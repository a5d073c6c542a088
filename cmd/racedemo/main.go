// Command racedemo runs headless race attempts: a paced frame loop, the start
// countdown, a timed track held at full throttle, and result storage.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/comalice/racecore"
	"github.com/comalice/racecore/internal/configwatch"
	"github.com/comalice/racecore/internal/extensibility"
	"github.com/comalice/racecore/internal/httpapi"
	"github.com/comalice/racecore/internal/lifecycle"
	"github.com/comalice/racecore/internal/production"
	"github.com/comalice/racecore/realtime"
)

type options struct {
	configPath string
	capHz      float64 // negative keeps the config value
	races      int     // 0 runs until interrupted
	trackTime  float64
	dbDir      string
	resultsDir string
	httpAddr   string
	dotPath    string
	maxTicks   uint64
}

func main() {
	var opts options
	verbose := flag.Bool("v", false, "debug logging")
	flag.StringVar(&opts.configPath, "config", "", "YAML config file, watched for changes")
	flag.Float64Var(&opts.capHz, "cap", -1, "frame rate cap in Hz, 0 for uncapped (overrides config)")
	flag.IntVar(&opts.races, "races", 1, "number of races, 0 to run until interrupted")
	flag.Float64Var(&opts.trackTime, "track-time", 5, "seconds of throttle needed to finish the track")
	flag.StringVar(&opts.dbDir, "db", "", "badger directory for results, empty for in-memory")
	flag.StringVar(&opts.resultsDir, "results-dir", "", "also export results as YAML files here")
	flag.StringVar(&opts.httpAddr, "http", "", "serve the results API on this address")
	flag.StringVar(&opts.dotPath, "dot", "", "write the phase graph as DOT after each race")
	flag.Uint64Var(&opts.maxTicks, "max-ticks", 0, "stop a race after this many ticks, 0 for no limit")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
	log.Logger = logger

	g := lifecycle.New(context.Background())
	stop := g.WithSignal(os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(g, opts, logger); err != nil {
		log.Fatal().Err(err).Msg("racedemo failed")
	}
	log.Info().Msg("racedemo stopped")
}

func loadConfig(opts options) (racecore.Config, error) {
	cfg := racecore.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = racecore.LoadConfig(opts.configPath); err != nil {
			return cfg, err
		}
	}
	return applyOverrides(cfg, opts)
}

func applyOverrides(cfg racecore.Config, opts options) (racecore.Config, error) {
	if opts.capHz >= 0 {
		cfg.CapHz = opts.capHz
	}
	return cfg, cfg.Validate()
}

func run(g *lifecycle.Group, opts options, logger zerolog.Logger) error {
	defer g.Shutdown()

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	db, err := production.OpenBadger(opts.dbDir)
	if err != nil {
		return err
	}
	// The group owns every reader of db, so it must stop before db closes.
	defer func() {
		g.Shutdown()
		if err := production.CloseBadger(db, logger); err != nil {
			logger.Error().Err(err).Msg("close results db")
		}
	}()
	stores := production.MultiStore{production.NewBadgerStore(db)}
	if opts.resultsDir != "" {
		yamlStore, err := production.NewYAMLStore(opts.resultsDir)
		if err != nil {
			return err
		}
		stores = append(stores, yamlStore)
	}

	if opts.httpAddr != "" {
		serveHTTP(g, opts.httpAddr, httpapi.NewRouter(stores, logger), logger)
	}

	reloads := make(chan racecore.Config, 1)
	if opts.configPath != "" {
		w, err := configwatch.New(opts.configPath, logger)
		if err != nil {
			return err
		}
		g.Go(func(ctx context.Context) {
			if err := w.Run(ctx, func(c racecore.Config) { offer(reloads, c) }); err != nil {
				logger.Error().Err(err).Msg("config watcher stopped")
			}
		})
	}

	events := make(chan realtime.Event, 64)
	publisher := production.NewChannelPublisher(events)
	g.Go(func(ctx context.Context) { drainEvents(ctx, events, logger) })
	defer func() {
		g.Shutdown()
		_ = publisher.Close()
	}()

	clk, err := cfg.NewClock()
	if err != nil {
		return err
	}

	track := extensibility.NewTimedTrack(opts.trackTime)
	for race := 1; opts.races == 0 || race <= opts.races; race++ {
		select {
		case next := <-reloads:
			if next, err = applyOverrides(next, opts); err != nil {
				logger.Warn().Err(err).Msg("reloaded config rejected")
				break
			}
			if next.HistorySize != cfg.HistorySize {
				if clk, err = next.NewClock(); err != nil {
					return err
				}
			} else if err := clk.SetCap(next.CapHz); err != nil {
				return err
			}
			cfg = next
			logger.Info().Str("version", cfg.Version()).Msg("applied config reload")
		default:
		}

		track.Reset()
		loop, err := realtime.NewLoop(clk, cfg,
			realtime.WithTrack(track),
			realtime.WithInput(extensibility.HoldInput(racecore.ActionAccel)),
			realtime.WithRenderer(extensibility.NewLogRenderer(logger)),
			realtime.WithHooks(extensibility.NewLoggingHooks(nil, logger)),
			realtime.WithPublisher(publisher),
			realtime.WithLogger(logger),
			realtime.WithMaxTicks(opts.maxTicks),
		)
		if err != nil {
			return err
		}

		result, err := loop.Run(g.Ctx)
		if err != nil {
			return fmt.Errorf("race %d: %w", race, err)
		}
		// Store with a fresh context so an interrupted race is still recorded.
		if err := stores.Save(context.Background(), result); err != nil {
			logger.Error().Err(err).Str("race", result.ID).Msg("save result")
		}
		logger.Info().
			Int("race", race).
			Str("id", result.ID).
			Str("outcome", string(result.Outcome)).
			Str("lap_time", fmt.Sprintf("%.3fs", result.LapTime)).
			Str("fps", fmt.Sprintf("%.2f/%.2f", result.SmoothedFPS, result.MeasuredFPS)).
			Msg("race result")

		if opts.dotPath != "" {
			if err := os.WriteFile(opts.dotPath, []byte(production.ExportDOT(loop.Session().Phase())), 0o644); err != nil {
				logger.Warn().Err(err).Msg("write phase graph")
			}
		}
		if result.Outcome == racecore.OutcomeCancelled || result.Outcome == racecore.OutcomeQuit {
			break
		}
	}
	return nil
}

// offer replaces any undelivered config with c.
func offer(ch chan racecore.Config, c racecore.Config) {
	for {
		select {
		case ch <- c:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func drainEvents(ctx context.Context, events <-chan realtime.Event, logger zerolog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			logger.Trace().
				Str("type", string(ev.Type)).
				Stringer("phase", ev.Phase).
				Uint64("seq", ev.Seq).
				Msg("published")
		}
	}
}

func serveHTTP(g *lifecycle.Group, addr string, h http.Handler, logger zerolog.Logger) {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	g.Go(func(ctx context.Context) {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("http shutdown")
		}
	})
	g.Go(func(context.Context) {
		logger.Info().Str("addr", addr).Msg("results api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server")
		}
	})
}
