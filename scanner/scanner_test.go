package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mindforge/collective-mind/core"
)

func TestScanner(t *testing.T) {
	ctx := context.Background()

	t.Run("Finds source files with specialization flavor", func(t *testing.T) {
		root := t.TempDir()
		mustWrite(t, filepath.Join(root, "main.go"), "package main\n// TODO: wire the bus\n")
		mustWrite(t, filepath.Join(root, "notes.txt"), "not source\n")

		s := New(root, "Alice", core.SpecEngineer, nil)
		output, err := s.PerformPhaseWork(ctx)
		if err != nil {
			t.Fatalf("scan failed: %v", err)
		}

		if output["files_scanned"] != 1 {
			t.Errorf("expected 1 scanned file, got %v", output["files_scanned"])
		}
		findings, ok := output["findings"].([]core.Finding)
		if !ok || len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %v", output["findings"])
		}
		if findings[0].Type != "open_work" {
			t.Errorf("engineer should flag TODOs, got %s", findings[0].Type)
		}
		if findings[0].Insight != "Reviewed by engineer" {
			t.Errorf("unexpected insight: %s", findings[0].Insight)
		}
	})

	t.Run("Missing root is a finding, not an error", func(t *testing.T) {
		s := New("/definitely/not/there", "Alice", core.SpecGeneralist, nil)
		output, err := s.PerformPhaseWork(ctx)
		if err != nil {
			t.Fatalf("missing root must stay soft: %v", err)
		}
		findings := output["findings"].([]core.Finding)
		if len(findings) != 1 || findings[0].Type != "error" {
			t.Errorf("expected a single error finding, got %v", findings)
		}
	})

	t.Run("Persists through the analysis repo", func(t *testing.T) {
		root := t.TempDir()
		mustWrite(t, filepath.Join(root, "app.ts"), "const x = 1\n")

		repo := &memRepo{}
		s := New(root, "Alice", core.SpecDesigner, repo)
		if _, err := s.PerformPhaseWork(ctx); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		if len(repo.records) != 1 {
			t.Fatalf("expected 1 persisted analysis, got %d", len(repo.records))
		}
		if repo.records[0].Mind != "Alice" {
			t.Errorf("analysis should name its mind, got %s", repo.records[0].Mind)
		}
	})
}

type memRepo struct {
	records []core.AnalysisRecord
}

func (r *memRepo) InsertAnalysis(rec core.AnalysisRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
