package mind

import (
	"context"
	"log"
	"time"

	"github.com/mindforge/collective-mind/communication"
	"github.com/mindforge/collective-mind/core"
)

// standupLoop publishes a periodic status report, timed independently of the
// worker loop.
func (m *Mind) standupLoop(ctx context.Context) {
	ticker := time.NewTicker(m.standupPeriod)
	defer ticker.Stop()

	for m.running.Load() {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if !m.running.Load() {
			return
		}

		m.advanceDay()
		report := m.ComposeStandup()

		if err := m.store.InsertStandup(report); err != nil {
			log.Printf("%s: failed to persist standup: %v", m.name, err)
		}
		msg := core.NewPeerMessage(m.name, core.MsgStandup, report)
		if err := m.bus.Publish(core.ChannelDailyStandup, msg); err != nil {
			log.Printf("%s: failed to publish standup: %v", m.name, err)
		}

		m.emit(messaging.EventStandupPublished, report)
	}
}

func (m *Mind) advanceDay() {
	m.mu.Lock()
	m.daysElapsed++
	m.mu.Unlock()
}

// ComposeStandup builds a point-in-time report from current state: task
// count, phase and the last three insights.
func (m *Mind) ComposeStandup() core.StandupReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	insights := m.insightLog
	if len(insights) > 3 {
		insights = insights[len(insights)-3:]
	}
	last := make([]string, len(insights))
	copy(last, insights)

	return core.StandupReport{
		Mind:           m.name,
		Date:           time.Now().Format("2006-01-02"),
		CompletedTasks: len(m.tasks),
		Phase:          m.phase,
		Insights:       last,
	}
}
