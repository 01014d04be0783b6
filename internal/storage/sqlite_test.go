package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	run, err := store.BeginRun("flap", 7, 60, "easy")
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	got, _, err := store.LoadRun(run.ID)
	if err != nil {
		t.Fatalf("LoadRun() failed: %v", err)
	}
	if got.Seed != 7 || got.Difficulty != "easy" {
		t.Errorf("reopened run = %+v", got)
	}
}

func TestStoreBeginAndFinish(t *testing.T) {
	store := openTemp(t)

	run, err := store.BeginRun("flap", 42, 60, "normal")
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}
	if run.ID == "" {
		t.Fatal("BeginRun() returned an empty id")
	}
	if run.Finished() {
		t.Error("a new run should not be finished")
	}

	if err := store.FinishRun(run.ID, 300, engine.PhaseGameOver, 12); err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}

	got, entries, err := store.LoadRun(run.ID)
	if err != nil {
		t.Fatalf("LoadRun() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
	if !got.Finished() {
		t.Error("run should be finished")
	}
	if got.Ticks != 300 || got.Phase != "game_over" || got.Score != 12 {
		t.Errorf("finished run = %+v", got)
	}
	if got.GameID != "flap" || got.Seed != 42 || got.TickRate != 60 {
		t.Errorf("run header = %+v", got)
	}
	if !got.StartedAt.Equal(run.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, run.StartedAt)
	}
}

func TestStoreAppendEvents(t *testing.T) {
	store := openTemp(t)

	run, err := store.BeginRun("hockey", 1, 60, "")
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}

	first := []engine.JournalEntry{
		{Frame: 1, Event: core.Press(core.KeyLeft)},
		{Frame: 4, Event: core.Release(core.KeyLeft)},
	}
	second := []engine.JournalEntry{
		{Frame: 4, Event: core.Press(core.KeyAction)},
		{Frame: 9, Event: core.Blur()},
	}
	if err := store.AppendEvents(run.ID, first); err != nil {
		t.Fatalf("AppendEvents() failed: %v", err)
	}
	if err := store.AppendEvents(run.ID, second); err != nil {
		t.Fatalf("AppendEvents() failed: %v", err)
	}
	if err := store.AppendEvents(run.ID, nil); err != nil {
		t.Fatalf("AppendEvents(nil) failed: %v", err)
	}

	_, entries, err := store.LoadRun(run.ID)
	if err != nil {
		t.Fatalf("LoadRun() failed: %v", err)
	}

	want := append(first, second...)
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestStoreRunsOrderAndFilter(t *testing.T) {
	store := openTemp(t)

	var ids []string
	for _, game := range []string{"flap", "hockey", "flap"} {
		run, err := store.BeginRun(game, 1, 60, "")
		if err != nil {
			t.Fatalf("BeginRun() failed: %v", err)
		}
		ids = append(ids, run.ID)
	}

	all, err := store.Runs("", 10)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}
	if all[0].ID != ids[2] || all[2].ID != ids[0] {
		t.Errorf("runs not newest first: %v", []string{all[0].ID, all[1].ID, all[2].ID})
	}

	flap, err := store.Runs("flap", 10)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(flap) != 2 {
		t.Errorf("expected 2 flap runs, got %d", len(flap))
	}
	for _, r := range flap {
		if r.GameID != "flap" {
			t.Errorf("unexpected game %q", r.GameID)
		}
	}

	limited, err := store.Runs("", 1)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 run with limit, got %d", len(limited))
	}

	none, err := store.Runs("nukazuke", 10)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no runs, got %d", len(none))
	}
}

func TestStoreDeleteRun(t *testing.T) {
	store := openTemp(t)

	run, err := store.BeginRun("flap", 1, 60, "")
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}
	if err := store.AppendEvents(run.ID, []engine.JournalEntry{{Frame: 1, Event: core.Press(core.KeyAction)}}); err != nil {
		t.Fatalf("AppendEvents() failed: %v", err)
	}

	if err := store.DeleteRun(run.ID); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}
	if _, _, err := store.LoadRun(run.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadRun() after delete = %v, want ErrNotFound", err)
	}
	if err := store.DeleteRun(run.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteRun() = %v, want ErrNotFound", err)
	}
}

func TestStoreMissingRun(t *testing.T) {
	store := openTemp(t)

	if _, _, err := store.LoadRun("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadRun() = %v, want ErrNotFound", err)
	}
	if err := store.FinishRun("nope", 1, engine.PhaseWon, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("FinishRun() = %v, want ErrNotFound", err)
	}
}

func TestRecorder(t *testing.T) {
	store := openTemp(t)

	rec, err := store.NewRecorder("candyrocket", 5, 30, "")
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}

	// enough ticks to force a mid-run flush
	for frame := int64(0); frame < flushEvery; frame++ {
		rec.Record(frame, []core.InputEvent{core.Press(core.KeyRight), core.Release(core.KeyRight)})
	}
	rec.Record(flushEvery, nil)

	// the writer appends the full batch in the background
	deadline := time.Now().Add(2 * time.Second)
	for {
		_, mid, err := store.LoadRun(rec.Run().ID)
		if err != nil {
			t.Fatalf("LoadRun() failed: %v", err)
		}
		if len(mid) > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("expected entries written before Finish")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := rec.Finish(flushEvery+1, engine.PhaseWon, 600); err != nil {
		t.Fatalf("Finish() failed: %v", err)
	}
	rec.Record(500, []core.InputEvent{core.Press(core.KeyAction)})
	if err := rec.Finish(1, engine.PhaseGameOver, 0); err != nil {
		t.Fatalf("second Finish() failed: %v", err)
	}

	run, entries, err := store.LoadRun(rec.Run().ID)
	if err != nil {
		t.Fatalf("LoadRun() failed: %v", err)
	}
	if len(entries) != 2*flushEvery {
		t.Errorf("expected %d entries, got %d", 2*flushEvery, len(entries))
	}
	if run.Phase != "won" || run.Ticks != flushEvery+1 || run.Score != 600 {
		t.Errorf("finished run = %+v", run)
	}
}

func TestRecorderDoesNotBlockOnWrites(t *testing.T) {
	store := openTemp(t)

	rec, err := store.NewRecorder("turtle", 1, 60, "")
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}

	// hold the writer as if a slow transaction were in flight
	rec.writeMu.Lock()
	recorded := make(chan struct{})
	go func() {
		for frame := int64(0); frame < 4*flushEvery; frame++ {
			rec.Record(frame, []core.InputEvent{core.Press(core.KeyUp)})
		}
		close(recorded)
	}()
	select {
	case <-recorded:
	case <-time.After(2 * time.Second):
		t.Fatal("Record blocked while a write was in progress")
	}
	rec.writeMu.Unlock()

	if err := rec.Finish(4*flushEvery, engine.PhaseGameOver, 0); err != nil {
		t.Fatalf("Finish() failed: %v", err)
	}
	_, entries, err := store.LoadRun(rec.Run().ID)
	if err != nil {
		t.Fatalf("LoadRun() failed: %v", err)
	}
	if len(entries) != 4*flushEvery {
		t.Fatalf("expected %d entries, got %d", 4*flushEvery, len(entries))
	}
	for i, e := range entries {
		if e.Frame != int64(i) {
			t.Fatalf("entry %d has frame %d", i, e.Frame)
		}
	}
}
