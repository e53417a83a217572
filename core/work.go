package core

import "time"

// Work record statuses. A failed dispatch carries the failure text appended
// to WorkStatusFailed, e.g. "failed: inference timeout".
const (
	WorkStatusOK     = "ok"
	WorkStatusFailed = "failed"
	WorkStatusNoop   = "no_op"
)

// WorkRecord is the immutable result of one worker cycle. Output is nil when
// the cycle produced nothing (collaborator failure or unmapped phase).
type WorkRecord struct {
	ID        string                 `json:"id"`
	Mind      string                 `json:"mind"`
	Phase     Phase                  `json:"phase"`
	Timestamp time.Time              `json:"timestamp"`
	Output    map[string]interface{} `json:"output,omitempty"`
	Status    string                 `json:"status"`
}

// StandupReport is the periodic point-in-time report a mind publishes on the
// daily_standup channel.
type StandupReport struct {
	Mind           string   `json:"mind"`
	Date           string   `json:"date"`
	CompletedTasks int      `json:"completed_tasks"`
	Phase          Phase    `json:"phase"`
	Insights       []string `json:"insights"`
}

// Finding is one observation produced by the project scanner.
type Finding struct {
	File    string `json:"file,omitempty"`
	Type    string `json:"type"`
	Insight string `json:"insight"`
}

// AnalysisRecord groups the findings of one project scan.
type AnalysisRecord struct {
	ID        string    `json:"id"`
	Mind      string    `json:"mind"`
	Timestamp time.Time `json:"timestamp"`
	Findings  []Finding `json:"findings"`
}
