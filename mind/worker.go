package mind

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/mindforge/collective-mind/communication"
	"github.com/mindforge/collective-mind/core"
)

// PacingDelay computes the worker pause from the productivity trait. For
// productivity in [0,1] the multiplier stays within [1.0, 2.0]; a more
// productive mind pauses less.
func PacingDelay(base time.Duration, productivity float64) time.Duration {
	return time.Duration(float64(base) * (2.0 - productivity))
}

// workerLoop performs one unit of mission work per cycle: dispatch, persist,
// broadcast, record, pace. Collaborator and transport failures are logged
// and never stop the loop.
func (m *Mind) workerLoop(ctx context.Context) {
	for m.running.Load() {
		rec := m.workOnMission(ctx)

		delay := PacingDelay(m.baseDelay, m.personality[core.TraitProductivity])
		if strings.HasPrefix(rec.Status, core.WorkStatusFailed) {
			// Shorter recovery pause after a failed cycle.
			delay = m.baseDelay / 2
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// workOnMission runs a single work cycle and returns its record.
func (m *Mind) workOnMission(ctx context.Context) core.WorkRecord {
	rec := m.dispatcher.Dispatch(ctx, m.name, m.Phase())

	if err := m.store.InsertWork(rec); err != nil {
		log.Printf("%s: failed to persist work record: %v", m.name, err)
	}

	if rec.Output != nil {
		update := core.NewPeerMessage(m.name, core.MsgWorkUpdate, map[string]interface{}{
			"work_id": rec.ID,
			"phase":   rec.Phase,
			"status":  rec.Status,
			"summary": summarizeOutput(rec.Output),
		})
		if err := m.bus.Publish(core.ChannelPrimary, update); err != nil {
			log.Printf("%s: failed to publish work update: %v", m.name, err)
		}

		if m.insights != nil {
			for _, insight := range m.insights.Extract(ctx, rec.Output) {
				m.AddInsight(insight)
			}
		}
	} else if strings.HasPrefix(rec.Status, core.WorkStatusFailed) {
		log.Printf("%s: work cycle failed in phase %s: %s", m.name, rec.Phase, rec.Status)
	}

	m.mu.Lock()
	m.tasks = append(m.tasks, rec)
	m.generation++
	m.mu.Unlock()

	m.rotateMood()
	m.emit(messaging.EventWorkCompleted, rec)
	return rec
}

// summarizeOutput picks a few scalar fields so peers get a digest rather
// than the full payload.
func summarizeOutput(output map[string]interface{}) map[string]interface{} {
	summary := make(map[string]interface{})
	for key, value := range output {
		switch v := value.(type) {
		case string:
			if len(v) > 200 {
				v = v[:200]
			}
			summary[key] = v
		case int, int64, float64, bool:
			summary[key] = v
		}
	}
	return summary
}
