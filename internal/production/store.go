// Package production provides production integrations: result persistence,
// event publishing, visualization.
package production

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/comalice/racecore"
)

var (
	// ErrNotFound reports a result lookup miss. It matches os.ErrNotExist.
	ErrNotFound = fmt.Errorf("result not found: %w", os.ErrNotExist)

	ErrInvalidID = errors.New("invalid result id")
)

// Filter selects results in List. A nil Filter keeps everything.
type Filter func(racecore.RaceResult) bool

// ResultStore persists race results.
type ResultStore interface {
	Save(ctx context.Context, result racecore.RaceResult) error
	Load(ctx context.Context, id string) (racecore.RaceResult, error)
	// List returns the matching results, oldest first.
	List(ctx context.Context, filter Filter) ([]racecore.RaceResult, error)
}

// Completed keeps finished races only.
func Completed(r racecore.RaceResult) bool {
	return r.Completed
}

// WithConfig keeps results produced by the config with the given version.
func WithConfig(version string) Filter {
	return func(r racecore.RaceResult) bool { return r.ConfigVersion == version }
}

func checkID(id string) error {
	if id == "" || id == "." || id == ".." || filepath.Base(id) != id {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func sortResults(results []racecore.RaceResult) {
	slices.SortFunc(results, func(a, b racecore.RaceResult) int {
		if c := a.StartedAt.Compare(b.StartedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
