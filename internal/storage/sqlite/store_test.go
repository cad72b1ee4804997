package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/corugnoll/Johnson-Prototype-sub000/internal/storage"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "johnson.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestRunnerRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	input := storage.RunnerRecord{
		ID:        "run-1",
		Name:      "Static",
		Level:     1,
		Archetype: "muscle",
		Muscle:    7,
		Hacking:   1,
		Social:    1,
		Stealth:   1,
		State:     "ready",
		Hired:     true,
	}
	if err := store.SaveRunner(context.Background(), input); err != nil {
		t.Fatalf("save runner: %v", err)
	}

	got, err := store.GetRunner(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("get runner: %v", err)
	}
	if got.Name != "Static" || got.Muscle != 7 || !got.Hired {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatal("timestamps must be populated")
	}
}

func TestSaveRunnerUpdatesExisting(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	record := storage.RunnerRecord{ID: "run-1", Name: "Raze", Level: 1, Archetype: "hacker", State: "ready"}
	if err := store.SaveRunner(context.Background(), record); err != nil {
		t.Fatalf("save runner: %v", err)
	}

	record.Level = 2
	record.State = "injured"
	record.Hired = false
	if err := store.SaveRunner(context.Background(), record); err != nil {
		t.Fatalf("update runner: %v", err)
	}

	got, err := store.GetRunner(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("get runner: %v", err)
	}
	if got.Level != 2 || got.State != "injured" {
		t.Fatalf("unexpected record after update: %+v", got)
	}

	all, err := store.ListRunners(context.Background())
	if err != nil {
		t.Fatalf("list runners: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected a single record, got %d", len(all))
	}
}

func TestGetRunnerNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := store.GetRunner(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlayerRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	record := storage.PlayerRecord{ID: "player", Money: 500, Risk: 2, Level: 3, ContractsCompleted: 3}
	if err := store.SavePlayer(context.Background(), record); err != nil {
		t.Fatalf("save player: %v", err)
	}

	got, err := store.GetPlayer(context.Background(), "player")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if got.Money != 500 || got.Risk != 2 || got.Level != 3 || got.ContractsCompleted != 3 {
		t.Fatalf("unexpected record: %+v", got)
	}

	if _, err := store.GetPlayer(context.Background(), "other"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolutionAppendAndList(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	for i, id := range []string{"res-1", "res-2"} {
		record := storage.ResolutionRecord{
			ID:          id,
			ContractID:  "contract-1",
			Seed:        int64(i + 1),
			Reward:      200 + i,
			RiskApplied: i,
			RollCount:   i,
		}
		if err := store.AppendResolution(context.Background(), record); err != nil {
			t.Fatalf("append resolution: %v", err)
		}
	}

	records, err := store.ListResolutions(context.Background(), "contract-1")
	if err != nil {
		t.Fatalf("list resolutions: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("resolutions = %d, want 2", len(records))
	}
	if records[0].ID != "res-1" || records[1].ID != "res-2" {
		t.Fatalf("unexpected order: %s, %s", records[0].ID, records[1].ID)
	}

	other, err := store.ListResolutions(context.Background(), "contract-2")
	if err != nil {
		t.Fatalf("list resolutions: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no records for other contract, got %d", len(other))
	}
}

func TestAppendEvent(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	event := storage.TelemetryEvent{ID: "evt-1", Kind: "node.selected", Payload: `{"node_id":"n1"}`}
	if err := store.AppendEvent(context.Background(), event); err != nil {
		t.Fatalf("append event: %v", err)
	}
	if err := store.AppendEvent(context.Background(), storage.TelemetryEvent{Kind: "bad"}); err == nil {
		t.Fatal("expected error for missing event id")
	}
}
