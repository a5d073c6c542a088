package racecore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/racecore/clock"
	"github.com/comalice/racecore/internal/primitives"
)

// Config holds the pacing and race timing parameters.
type Config struct {
	CapHz             float64       `json:"capHz" yaml:"cap_hz"`
	HistorySize       int           `json:"historySize" yaml:"history_size"`
	CountdownFrom     int           `json:"countdownFrom" yaml:"countdown_from"`
	CountdownInterval time.Duration `json:"countdownInterval" yaml:"countdown_interval"`
	GoPrompt          time.Duration `json:"goPrompt" yaml:"go_prompt"`
	CompletionHold    time.Duration `json:"completionHold" yaml:"completion_hold"`
}

// DefaultConfig returns a 60 Hz cap, a 3-2-1 countdown at one-second cadence,
// a 0.75s GO prompt and a 3s hold after the finish.
func DefaultConfig() Config {
	return Config{
		CapHz:             60,
		HistorySize:       clock.DefaultHistorySize,
		CountdownFrom:     3,
		CountdownInterval: time.Second,
		GoPrompt:          750 * time.Millisecond,
		CompletionHold:    3 * time.Second,
	}
}

// Validate checks every field:
//   - cap_hz finite and >= 0
//   - history_size >= 1
//   - countdown_from >= 0
//   - countdown_interval > 0
//   - go_prompt and completion_hold >= 0
func (c Config) Validate() error {
	if math.IsNaN(c.CapHz) || math.IsInf(c.CapHz, 0) || c.CapHz < 0 {
		return fmt.Errorf("%w: cap_hz %v must be a finite value >= 0", ErrInvalidConfig, c.CapHz)
	}
	if c.HistorySize < 1 {
		return fmt.Errorf("%w: history_size %d must be at least 1", ErrInvalidConfig, c.HistorySize)
	}
	if c.CountdownFrom < 0 {
		return fmt.Errorf("%w: countdown_from %d must be >= 0", ErrInvalidConfig, c.CountdownFrom)
	}
	if c.CountdownInterval <= 0 {
		return fmt.Errorf("%w: countdown_interval %v must be positive", ErrInvalidConfig, c.CountdownInterval)
	}
	if c.GoPrompt < 0 {
		return fmt.Errorf("%w: go_prompt %v must be >= 0", ErrInvalidConfig, c.GoPrompt)
	}
	if c.CompletionHold < 0 {
		return fmt.Errorf("%w: completion_hold %v must be >= 0", ErrInvalidConfig, c.CompletionHold)
	}
	return nil
}

// Version returns a short fingerprint of the configuration.
func (c Config) Version() string {
	return primitives.Fingerprint(c)
}

// ParseConfig decodes YAML over DefaultConfig, so omitted fields keep their
// defaults, and validates the result. Unknown fields are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: yaml decode: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// NewClock builds a FrameClock from the config's cap and history size.
func (c Config) NewClock(opts ...clock.Option) (*clock.FrameClock, error) {
	opts = append([]clock.Option{clock.WithHistorySize(c.HistorySize)}, opts...)
	return clock.New(c.CapHz, opts...)
}
