package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/schelling/internal/schelling"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(scenario string, ticks uint64, similarity float64, at time.Time) Run {
	return Run{
		Scenario:   scenario,
		Seed:       42,
		Locations:  400,
		Threshold:  0.5,
		DistA:      0.25,
		DistB:      0.25,
		DistEmpty:  0.5,
		Ticks:      ticks,
		Settled:    ticks < 100,
		Similarity: similarity,
		CreatedAt:  at,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.schelling/runs.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".schelling", "runs.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	saved, err := store.SaveRun(sampleRun("small", 40, 0.81, base))
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("SaveRun should assign an ID")
	}

	got, err := store.RunByID(saved.ID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got.Scenario != "small" || got.Ticks != 40 || !got.Settled || got.Similarity != 0.81 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.DistA != 0.25 || got.DistB != 0.25 || got.DistEmpty != 0.5 {
		t.Errorf("distribution mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, base)
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.RunByID("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("RunByID(missing) error = %v, want ErrRunNotFound", err)
	}
}

func TestStoreSaveRunDefaultsTime(t *testing.T) {
	store := openTestStore(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	saved, err := store.SaveRun(sampleRun("small", 10, 0.5, time.Time{}))
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if !saved.CreatedAt.Equal(fixed) {
		t.Errorf("CreatedAt = %v, want %v", saved.CreatedAt, fixed)
	}
}

func TestStoreDuplicateID(t *testing.T) {
	store := openTestStore(t)

	run := sampleRun("small", 10, 0.5, time.Now())
	run.ID = "fixed-id"
	if _, err := store.SaveRun(run); err != nil {
		t.Fatalf("first SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(run); err == nil {
		t.Error("saving the same ID twice should fail")
	}
}

func TestStoreRecentRunsOrdering(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, scenario := range []string{"small", "crowded", "small", "tolerant"} {
		if _, err := store.SaveRun(sampleRun(scenario, uint64(10*(i+1)), 0.5, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(recent))
	}
	if recent[0].Scenario != "tolerant" || recent[0].Ticks != 40 {
		t.Errorf("newest run first, got %+v", recent[0])
	}
	if recent[2].Scenario != "crowded" {
		t.Errorf("third newest should be crowded, got %q", recent[2].Scenario)
	}

	small, err := store.RunsByScenario("small", 10)
	if err != nil {
		t.Fatalf("RunsByScenario() failed: %v", err)
	}
	if len(small) != 2 || small[0].Ticks != 30 || small[1].Ticks != 10 {
		t.Errorf("RunsByScenario(small) = %+v", small)
	}

	none, err := store.RunsByScenario("classic", 10)
	if err != nil {
		t.Fatalf("RunsByScenario() failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no classic runs, got %d", len(none))
	}
}

func TestStoreScenarioStats(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	runs := []Run{
		sampleRun("small", 20, 0.8, now),
		sampleRun("small", 40, 0.6, now),
		sampleRun("small", 300, 0.4, now),
		sampleRun("crowded", 500, 0.55, now),
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	stats, err := store.ScenarioStats()
	if err != nil {
		t.Fatalf("ScenarioStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(stats))
	}

	crowded, small := stats[0], stats[1]
	if crowded.Scenario != "crowded" || crowded.Runs != 1 || crowded.Settled != 0 {
		t.Errorf("crowded stats = %+v", crowded)
	}
	if small.Runs != 3 || small.Settled != 2 || small.AvgTicks != 120 {
		t.Errorf("small stats = %+v", small)
	}
	if small.BestSimilarity != 0.8 {
		t.Errorf("BestSimilarity = %v, want 0.8", small.BestSimilarity)
	}
	if small.AvgSimilarity < 0.5999 || small.AvgSimilarity > 0.6001 {
		t.Errorf("AvgSimilarity = %v, want 0.6", small.AvgSimilarity)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	for _, scenario := range []string{"small", "small", "crowded"} {
		if _, err := store.SaveRun(sampleRun(scenario, 10, 0.5, now)); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	n, err := store.ClearRuns("small")
	if err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearRuns(small) deleted %d, want 2", n)
	}

	recent, _ := store.RecentRuns(10)
	if len(recent) != 1 || recent[0].Scenario != "crowded" {
		t.Errorf("remaining runs = %+v", recent)
	}

	n, err = store.ClearRuns("")
	if err != nil || n != 1 {
		t.Errorf("ClearRuns(all) = %d, %v", n, err)
	}
}

func TestStorePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store1, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	saved, err := store1.SaveRun(sampleRun("small", 12, 0.7, time.Now()))
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store1.Close()

	store2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store2.Close()

	if _, err := store2.RunByID(saved.ID); err != nil {
		t.Errorf("run should survive reopen: %v", err)
	}
}

func TestNewRunFromSimulation(t *testing.T) {
	p := schelling.Params{
		Locations:    100,
		Distribution: schelling.Distribution{A: 0.3, B: 0.3, Empty: 0.4},
		Threshold:    0.3,
		Seed:         5,
	}
	sim, err := schelling.Initialize(p)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	sim.RunUntilSettled(500)
	st := sim.Stats()

	run := NewRun("custom", sim.Params(), st)
	if run.Scenario != "custom" || run.Seed != 5 || run.Locations != 100 || run.Threshold != 0.3 {
		t.Errorf("unexpected run %+v", run)
	}
	if run.DistA != 0.3 || run.DistEmpty != 0.4 {
		t.Errorf("distribution not copied: %+v", run)
	}
	if run.Ticks != st.Tick || run.Settled != st.Settled || run.Similarity != st.Similarity {
		t.Errorf("stats not copied: run %+v stats %+v", run, st)
	}

	store := openTestStore(t)
	saved, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	got, err := store.RunByID(saved.ID)
	if err != nil || got.Ticks != st.Tick {
		t.Errorf("RunByID() = %+v, %v", got, err)
	}
}
