package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTest(t *testing.T) *Store {
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
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveRun(Run{LevelID: "meadow", Score: 10}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	runs, err := store.TopRuns("meadow", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 run after reopen, got %d", len(runs))
	}
}

func TestStoreTopRunsOrder(t *testing.T) {
	store := openTest(t)

	runs := []Run{
		{LevelID: "meadow", Score: 900, TimeMs: 0, Completed: false},
		{LevelID: "meadow", Score: 100, TimeMs: 50000, Completed: true},
		{LevelID: "meadow", Score: 300, TimeMs: 40000, Completed: true},
		{LevelID: "meadow", Score: 500, TimeMs: 40000, Completed: true},
		{LevelID: "factory", Score: 50, TimeMs: 10000, Completed: true},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("meadow", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 4 {
		t.Fatalf("Expected 4 meadow runs, got %d", len(top))
	}

	want := []int{500, 300, 100, 900}
	for i, r := range top {
		if r.Score != want[i] {
			t.Errorf("run %d score = %d, expected %d", i, r.Score, want[i])
		}
		if r.LevelID != "meadow" {
			t.Errorf("run %d level = %q", i, r.LevelID)
		}
	}
	if !top[0].Completed || top[3].Completed {
		t.Error("completed flag not round-tripped")
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}

	limited, err := store.TopRuns("meadow", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 runs with limit, got %d", len(limited))
	}
}

func TestStoreHighScoreAndBestTime(t *testing.T) {
	store := openTest(t)

	high, err := store.HighScore("meadow")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty level, got %d", high)
	}
	if _, ok, err := store.BestTime("meadow"); err != nil || ok {
		t.Errorf("BestTime() on empty level = ok %v, err %v", ok, err)
	}

	store.SaveRun(Run{LevelID: "meadow", Score: 300, TimeMs: 9000})
	store.SaveRun(Run{LevelID: "meadow", Score: 200, TimeMs: 70000, Completed: true})
	store.SaveRun(Run{LevelID: "meadow", Score: 100, TimeMs: 60000, Completed: true})

	high, err = store.HighScore("meadow")
	if err != nil {
		t.Fatal(err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	best, ok, err := store.BestTime("meadow")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || best != 60000 {
		t.Errorf("BestTime() = %d, %v; expected 60000, true", best, ok)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTest(t)

	store.SaveRun(Run{LevelID: "meadow", Score: 100})
	store.SaveRun(Run{LevelID: "factory", Score: 300})

	if err := store.ClearRuns("meadow"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	meadow, _ := store.TopRuns("meadow", 10)
	if len(meadow) != 0 {
		t.Errorf("Expected 0 meadow runs after clear, got %d", len(meadow))
	}
	factory, _ := store.TopRuns("factory", 10)
	if len(factory) != 1 {
		t.Error("factory runs should not be affected by clearing meadow")
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTest(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{LevelID: "meadow", Score: i})
	}

	recent, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(recent))
	}
	if recent[0].Score != 4 || recent[2].Score != 2 {
		t.Errorf("runs not newest first: %+v", recent)
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTest(t)

	empty, err := store.GetLevelStats("meadow")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.BestTimeMs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveRun(Run{LevelID: "meadow", Score: 100, TimeMs: 30000, Completed: true})
	store.SaveRun(Run{LevelID: "meadow", Score: 300, TimeMs: 5000})
	store.SaveRun(Run{LevelID: "factory", Score: 50})

	st, err := store.GetLevelStats("meadow")
	if err != nil {
		t.Fatal(err)
	}
	if st.Runs != 2 || st.Completed != 1 {
		t.Errorf("runs/completed = %d/%d, expected 2/1", st.Runs, st.Completed)
	}
	if st.HighScore != 300 || st.AvgScore != 200 {
		t.Errorf("high/avg = %d/%v, expected 300/200", st.HighScore, st.AvgScore)
	}
	if st.BestTimeMs != 30000 {
		t.Errorf("best time = %d, expected 30000", st.BestTimeMs)
	}

	all, err := store.GetAllLevelStats()
	if err != nil {
		t.Fatalf("GetAllLevelStats() failed: %v", err)
	}
	if len(all) != 2 || all["factory"].Runs != 1 {
		t.Errorf("all stats = %v", all)
	}
}

func TestRecorder(t *testing.T) {
	if err := (Recorder{}).Record(Run{LevelID: "meadow"}); err != nil {
		t.Errorf("nil store should discard runs, got %v", err)
	}

	store := openTest(t)
	rec := Recorder{Store: store, Player: "alice"}
	if err := rec.Record(Run{LevelID: "meadow", Score: 5}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if err := rec.Record(Run{LevelID: "meadow", Player: "bob"}); err != nil {
		t.Fatal(err)
	}

	runs, _ := store.RecentRuns(10)
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].Player != "bob" || runs[1].Player != "alice" {
		t.Errorf("players = %q, %q", runs[0].Player, runs[1].Player)
	}
}
