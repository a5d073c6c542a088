package configwatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/comalice/racecore"
)

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "race.yaml")
	if err := os.WriteFile(path, []byte("cap_hz: 60\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan racecore.Config, 8)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func(c racecore.Config) { changes <- c }) }()

	// Invalid contents are skipped.
	if err := os.WriteFile(path, []byte("cap_hz: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("cap_hz: 144\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-changes:
		if cfg.CapHz != 144 {
			t.Errorf("CapHz = %v, want 144", cfg.CapHz)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}

	// Other files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "other.yaml"), []byte("cap_hz: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case cfg := <-changes:
		if cfg.CapHz != 144 {
			t.Errorf("unexpected reload %+v", cfg)
		}
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestWatchMissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "race.yaml"), func(racecore.Config) {}, zerolog.Nop())
	if err == nil {
		t.Error("expected error for a missing directory")
	}
}
