package storage

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mindforge/collective-mind/core"
)

// ArtifactRepository is the append-only record sink for the collective's
// three collections: analysis records, work records and standup reports.
type ArtifactRepository struct {
	store *Store
}

func NewArtifactRepository(store *Store) *ArtifactRepository {
	return &ArtifactRepository{store: store}
}

// InsertWork appends a work record.
func (r *ArtifactRepository) InsertWork(rec core.WorkRecord) error {
	key := fmt.Sprintf("work:%s:%s", rec.Mind, rec.ID)
	return r.store.PutObject(key, rec)
}

// InsertAnalysis appends an analysis record.
func (r *ArtifactRepository) InsertAnalysis(rec core.AnalysisRecord) error {
	key := fmt.Sprintf("analysis:%s:%s", rec.Mind, rec.ID)
	return r.store.PutObject(key, rec)
}

// InsertStandup appends a standup report.
func (r *ArtifactRepository) InsertStandup(report core.StandupReport) error {
	key := fmt.Sprintf("standup:%s:%s", report.Mind, uuid.New().String())
	return r.store.PutObject(key, report)
}

// WorkRecords returns all persisted work records for a mind. Invalid
// entries are skipped.
func (r *ArtifactRepository) WorkRecords(mindName string) ([]core.WorkRecord, error) {
	data, err := r.store.GetByPrefix(fmt.Sprintf("work:%s:", mindName))
	if err != nil {
		return nil, err
	}

	records := make([]core.WorkRecord, 0, len(data))
	for _, v := range data {
		var rec core.WorkRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Standups returns all persisted standup reports for a mind.
func (r *ArtifactRepository) Standups(mindName string) ([]core.StandupReport, error) {
	data, err := r.store.GetByPrefix(fmt.Sprintf("standup:%s:", mindName))
	if err != nil {
		return nil, err
	}

	reports := make([]core.StandupReport, 0, len(data))
	for _, v := range data {
		var report core.StandupReport
		if err := json.Unmarshal(v, &report); err != nil {
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// Analyses returns all persisted analysis records for a mind.
func (r *ArtifactRepository) Analyses(mindName string) ([]core.AnalysisRecord, error) {
	data, err := r.store.GetByPrefix(fmt.Sprintf("analysis:%s:", mindName))
	if err != nil {
		return nil, err
	}

	records := make([]core.AnalysisRecord, 0, len(data))
	for _, v := range data {
		var rec core.AnalysisRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
