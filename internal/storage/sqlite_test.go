package storage

import (
	"os"
	"path/filepath"
	"testing"
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

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

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

func TestKVGetSet(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Get("flappyBirdHighScore"); err != nil || ok {
		t.Fatalf("Get() on empty table = ok %v, err %v", ok, err)
	}

	if err := store.Set("flappyBirdHighScore", "5"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set("flappyBirdHighScore", "7"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}

	value, ok, err := store.Get("flappyBirdHighScore")
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v", ok, err)
	}
	if value != "7" {
		t.Errorf("Get() = %q, expected the replaced value 7", value)
	}
}

func TestKVSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Set("flappyBirdHighScore", "12"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	value, ok, err := store.Get("flappyBirdHighScore")
	if err != nil || !ok || value != "12" {
		t.Errorf("after reopen Get() = %q, %v, %v", value, ok, err)
	}
}

func TestScopedKeysAreIsolated(t *testing.T) {
	store := openTestStore(t)

	alice := store.Scoped("alice")
	bob := store.Scoped("bob")

	if err := alice.Set("flappyBirdHighScore", "9"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	if _, ok, _ := bob.Get("flappyBirdHighScore"); ok {
		t.Error("bob should not see alice's key")
	}
	if v, ok, _ := alice.Get("flappyBirdHighScore"); !ok || v != "9" {
		t.Errorf("alice Get() = %q, %v", v, ok)
	}
	if _, ok, _ := store.Get("flappyBirdHighScore"); ok {
		t.Error("unscoped key should be untouched")
	}
}

func TestStoreSaveAndTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("local", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %v", scores)
	}
	if scores[0].Player != "local" {
		t.Errorf("Player = %q, expected local", scores[0].Player)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("local", (i+1)*100)
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreStatsAndClear(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || stats.HighScore != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore("local", 3)
	store.SaveScore("local", 7)
	store.Set("flappyBirdHighScore", "7")

	stats, err = store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 7 || stats.TotalScore != 10 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 5 {
		t.Errorf("AvgScore = %f, expected 5", stats.AvgScore)
	}

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	scores, _ := store.TopScores(10)
	if len(scores) != 0 {
		t.Errorf("Expected no scores after clear, got %d", len(scores))
	}
	if v, ok, _ := store.Get("flappyBirdHighScore"); !ok || v != "7" {
		t.Error("ClearScores must not touch the high score key")
	}
}
