package storage

import (
	"testing"
	"time"

	"github.com/mindforge/collective-mind/core"
)

func openTestStore(t *testing.T) *ArtifactRepository {
	t.Helper()
	store, err := Open(InMemoryConfig())
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewArtifactRepository(store)
}

func TestArtifactRepository(t *testing.T) {
	repo := openTestStore(t)

	t.Run("Work records round-trip per mind", func(t *testing.T) {
		for i, id := range []string{"w1", "w2"} {
			rec := core.WorkRecord{
				ID:        id,
				Mind:      "Alice",
				Phase:     core.PhaseAnalysis,
				Timestamp: time.Now().UTC(),
				Output:    map[string]interface{}{"cycle": float64(i)},
				Status:    core.WorkStatusOK,
			}
			if err := repo.InsertWork(rec); err != nil {
				t.Fatalf("insert failed: %v", err)
			}
		}
		if err := repo.InsertWork(core.WorkRecord{ID: "w3", Mind: "Bob", Status: core.WorkStatusOK}); err != nil {
			t.Fatalf("insert failed: %v", err)
		}

		records, err := repo.WorkRecords("Alice")
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("expected 2 records for Alice, got %d", len(records))
		}
		for _, rec := range records {
			if rec.Mind != "Alice" {
				t.Errorf("leaked record from another mind: %+v", rec)
			}
		}
	})

	t.Run("Standups round-trip", func(t *testing.T) {
		report := core.StandupReport{
			Mind:           "Alice",
			Date:           "2026-08-23",
			CompletedTasks: 4,
			Phase:          core.PhasePolish,
			Insights:       []string{"three", "four", "five"},
		}
		if err := repo.InsertStandup(report); err != nil {
			t.Fatalf("insert failed: %v", err)
		}

		reports, err := repo.Standups("Alice")
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(reports) != 1 {
			t.Fatalf("expected 1 report, got %d", len(reports))
		}
		if reports[0].CompletedTasks != 4 || reports[0].Phase != core.PhasePolish {
			t.Errorf("report mangled: %+v", reports[0])
		}
	})

	t.Run("Analyses round-trip", func(t *testing.T) {
		rec := core.AnalysisRecord{
			ID:        "a1",
			Mind:      "Alice",
			Timestamp: time.Now().UTC(),
			Findings:  []core.Finding{{File: "main.go", Type: "observation", Insight: "Reviewed by engineer"}},
		}
		if err := repo.InsertAnalysis(rec); err != nil {
			t.Fatalf("insert failed: %v", err)
		}

		records, err := repo.Analyses("Alice")
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(records) != 1 || len(records[0].Findings) != 1 {
			t.Fatalf("analysis mangled: %+v", records)
		}
	})
}
