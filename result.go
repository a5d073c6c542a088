package racecore

import (
	"fmt"
	"time"
)

// Outcome says why a race attempt stopped.
type Outcome string

const (
	OutcomeFinished  Outcome = "finished"
	OutcomeQuit      Outcome = "quit"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeTickLimit Outcome = "tick_limit"
)

// RaceResult records one finished or abandoned attempt.
type RaceResult struct {
	ID            string    `json:"id" yaml:"id" msgpack:"id"`
	StartedAt     time.Time `json:"startedAt" yaml:"started_at" msgpack:"started_at"`
	EndedAt       time.Time `json:"endedAt" yaml:"ended_at" msgpack:"ended_at"`
	Outcome       Outcome   `json:"outcome" yaml:"outcome" msgpack:"outcome"`
	LapTime       float64   `json:"lapTime" yaml:"lap_time" msgpack:"lap_time"`
	Completed     bool      `json:"completed" yaml:"completed" msgpack:"completed"`
	Ticks         uint64    `json:"ticks" yaml:"ticks" msgpack:"ticks"`
	SmoothedFPS   float64   `json:"smoothedFps" yaml:"smoothed_fps" msgpack:"smoothed_fps"`
	MeasuredFPS   float64   `json:"measuredFps" yaml:"measured_fps" msgpack:"measured_fps"`
	ConfigVersion string    `json:"configVersion" yaml:"config_version" msgpack:"config_version"`
}

// Caption formats a window caption like "Racing Game Demo: 59.94".
// Any error, typically clock.ErrNoSamples, renders the rate as "--".
func Caption(title string, rate float64, err error) string {
	if err != nil {
		return title + ": --"
	}
	return fmt.Sprintf("%s: %.2f", title, rate)
}
