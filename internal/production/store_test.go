package production

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/comalice/racecore"
	"github.com/comalice/racecore/testutil"
)

func sampleResult(id string, offset time.Duration, completed bool) racecore.RaceResult {
	start := testutil.Epoch.Add(offset)
	return racecore.RaceResult{
		ID:            id,
		StartedAt:     start,
		EndedAt:       start.Add(9 * time.Second),
		Outcome:       racecore.OutcomeFinished,
		LapTime:       5.25,
		Completed:     completed,
		Ticks:         540,
		SmoothedFPS:   59.5,
		MeasuredFPS:   60,
		ConfigVersion: "abc123",
	}
}

func assertSameResult(t *testing.T, got, want racecore.RaceResult) {
	t.Helper()
	if !got.StartedAt.Equal(want.StartedAt) || !got.EndedAt.Equal(want.EndedAt) {
		t.Errorf("times differ: got %v..%v, want %v..%v", got.StartedAt, got.EndedAt, want.StartedAt, want.EndedAt)
	}
	got.StartedAt, got.EndedAt = want.StartedAt, want.EndedAt
	if got != want {
		t.Errorf("result mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

// exerciseStore checks the ResultStore contract shared by every implementation.
func exerciseStore(t *testing.T, store ResultStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}

	for _, id := range []string{"", "..", "a/b"} {
		if _, err := store.Load(ctx, id); !errors.Is(err, ErrInvalidID) {
			t.Errorf("Load(%q) error = %v, want ErrInvalidID", id, err)
		}
	}

	second := sampleResult("r2", time.Minute, false)
	first := sampleResult("r1", 0, true)
	for _, r := range []racecore.RaceResult{second, first} {
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("Save(%s) failed: %v", r.ID, err)
		}
	}

	got, err := store.Load(ctx, "r1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertSameResult(t, got, first)

	all, err := store.List(ctx, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 || all[0].ID != "r1" || all[1].ID != "r2" {
		t.Errorf("List order = %v, want [r1 r2]", ids(all))
	}

	done, err := store.List(ctx, Completed)
	if err != nil {
		t.Fatal(err)
	}
	if len(done) != 1 || done[0].ID != "r1" {
		t.Errorf("List(Completed) = %v, want [r1]", ids(done))
	}

	none, err := store.List(ctx, WithConfig("other"))
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("List(WithConfig(other)) = %v, want empty", ids(none))
	}

	first.LapTime = 6
	if err := store.Save(ctx, first); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Load(ctx, "r1"); got.LapTime != 6 {
		t.Errorf("overwrite not applied: LapTime = %v", got.LapTime)
	}
}

func ids(results []racecore.RaceResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func TestBadgerStore(t *testing.T) {
	db, err := OpenBadger("")
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	defer func() {
		if err := CloseBadger(db, zerolog.Nop()); err != nil {
			t.Errorf("CloseBadger failed: %v", err)
		}
	}()
	store := NewBadgerStore(db)
	exerciseStore(t, store)

	if err := store.Save(context.Background(), racecore.RaceResult{}); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Save with empty ID error = %v, want ErrInvalidID", err)
	}
}

func TestBadgerStore_OnDisk(t *testing.T) {
	dir := t.TempDir()
	db, err := OpenBadger(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := sampleResult("persisted", 0, true)
	if err := NewBadgerStore(db).Save(context.Background(), want); err != nil {
		t.Fatal(err)
	}
	if err := CloseBadger(db, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}

	db, err = OpenBadger(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	got, err := NewBadgerStore(db).Load(context.Background(), "persisted")
	if err != nil {
		t.Fatalf("Load after reopen failed: %v", err)
	}
	assertSameResult(t, got, want)
}

func TestBadgerStore_Cancelled(t *testing.T) {
	db, err := OpenBadger("")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewBadgerStore(db).Save(ctx, sampleResult("x", 0, true)); !errors.Is(err, context.Canceled) {
		t.Errorf("Save error = %v, want context.Canceled", err)
	}
}

func TestJSONStore(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore failed: %v", err)
	}
	exerciseStore(t, store)
}

func TestYAMLStore(t *testing.T) {
	store, err := NewYAMLStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewYAMLStore failed: %v", err)
	}
	exerciseStore(t, store)
}

func TestFileStore_RejectsPathIDs(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"", "..", "a/b", "../escape"} {
		if err := store.Save(context.Background(), racecore.RaceResult{ID: id}); !errors.Is(err, ErrInvalidID) {
			t.Errorf("Save(%q) error = %v, want ErrInvalidID", id, err)
		}
	}
}

func TestFileStore_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewYAMLStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dir+"/notes.txt", []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(context.Background(), sampleResult("only", 0, true)); err != nil {
		t.Fatal(err)
	}
	all, err := store.List(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("List = %v, want [only]", ids(all))
	}
}

func TestMultiStore(t *testing.T) {
	a, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewYAMLStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	m := MultiStore{a, b}
	exerciseStore(t, m)

	if _, err := b.Load(context.Background(), "r2"); err != nil {
		t.Errorf("second store missed the save: %v", err)
	}
	if _, err := (MultiStore{}).Load(context.Background(), "r1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty MultiStore Load error = %v", err)
	}
}
