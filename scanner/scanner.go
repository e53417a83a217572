// Package scanner implements the project-analysis collaborator: it walks
// the project root and produces specialization-flavored findings. The mind
// consumes only the finding shape; the heuristics here are free to evolve.
package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mindforge/collective-mind/core"
)

var sourceSuffixes = map[string]bool{
	".go":  true,
	".py":  true,
	".js":  true,
	".ts":  true,
	".tsx": true,
}

// AnalysisRepo is the sink for completed scans. May be nil.
type AnalysisRepo interface {
	InsertAnalysis(rec core.AnalysisRecord) error
}

// Scanner analyzes the shared project tree for one mind.
type Scanner struct {
	root           string
	mindName       string
	specialization string
	repo           AnalysisRepo
}

func New(root, mindName, specialization string, repo AnalysisRepo) *Scanner {
	return &Scanner{root: root, mindName: mindName, specialization: specialization, repo: repo}
}

// PerformPhaseWork runs one project scan. A missing root is a finding, not
// an error, so the worker loop keeps its normal cadence.
func (s *Scanner) PerformPhaseWork(ctx context.Context) (map[string]interface{}, error) {
	rec := core.AnalysisRecord{
		ID:        uuid.New().String(),
		Mind:      s.mindName,
		Timestamp: time.Now().UTC(),
	}

	if _, err := os.Stat(s.root); err != nil {
		rec.Findings = append(rec.Findings, core.Finding{
			Type:    "error",
			Insight: "project root not found",
		})
		return s.finish(rec, 0)
	}

	scanned := 0
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		finding, ok := s.AnalyzeFile(path)
		if !ok {
			return nil
		}
		scanned++
		rec.Findings = append(rec.Findings, finding)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.finish(rec, scanned)
}

func (s *Scanner) finish(rec core.AnalysisRecord, scanned int) (map[string]interface{}, error) {
	if s.repo != nil {
		if err := s.repo.InsertAnalysis(rec); err != nil {
			return nil, err
		}
	}
	return map[string]interface{}{
		"analysis_id":   rec.ID,
		"files_scanned": scanned,
		"findings":      rec.Findings,
	}, nil
}

// AnalyzeFile inspects a single file and returns a finding when the file is
// a source file worth mentioning for this specialization.
func (s *Scanner) AnalyzeFile(path string) (core.Finding, bool) {
	if !sourceSuffixes[filepath.Ext(path)] {
		return core.Finding{}, false
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return core.Finding{}, false
	}

	return core.Finding{
		File:    path,
		Type:    s.findingType(string(content)),
		Insight: "Reviewed by " + s.specialization,
	}, true
}

func (s *Scanner) findingType(content string) string {
	switch s.specialization {
	case core.SpecEngineer:
		if strings.Contains(content, "TODO") || strings.Contains(content, "FIXME") {
			return "open_work"
		}
	case core.SpecDesigner:
		if strings.Contains(content, "style") || strings.Contains(content, "layout") {
			return "design_surface"
		}
	case core.SpecOptimizer:
		if strings.Contains(content, "for ") && strings.Contains(content, "range") {
			return "hot_path_candidate"
		}
	case core.SpecArchitect:
		if strings.Contains(content, "interface") || strings.Contains(content, "class ") {
			return "structural_surface"
		}
	}
	return "observation"
}
