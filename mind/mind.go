// Package mind implements the autonomous agents of the collective. A Mind
// owns its identity, mission, personality and social memory, and runs three
// concurrent activities against the shared bus: a worker loop producing
// phase work, a listener loop consuming peer broadcasts, and a standup
// scheduler publishing periodic reports.
package mind

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mindforge/collective-mind/communication"
	"github.com/mindforge/collective-mind/core"
)

// Bus is the slice of the messaging layer a mind depends on.
type Bus interface {
	Publish(channel string, msg core.PeerMessage) error
	Subscribe(channels ...string) (*messaging.Subscription, error)
}

// ArtifactStore is the append-only record sink for worker and standup
// output. Reads are an observability concern outside the mind.
type ArtifactStore interface {
	InsertWork(rec core.WorkRecord) error
	InsertStandup(report core.StandupReport) error
}

// Reviewer handles an inbound review request from a peer.
type Reviewer interface {
	Review(ctx context.Context, from string, payload interface{}) error
}

// InsightExtractor distills short insight strings from work output.
type InsightExtractor interface {
	Extract(ctx context.Context, output map[string]interface{}) []string
}

// EventSink receives observability events (websocket feed, tests). May be
// nil.
type EventSink func(event string, payload interface{})

var moods = []string{"Focused", "Curious", "Inspired", "Skeptical", "Restless", "Content"}

// Config carries the immutable identity a Mind is constructed from.
type Config struct {
	Name           string
	Specialization string
	Mission        core.Mission
	BaseDelay      time.Duration // worker pacing base, default 30s
	StandupPeriod  time.Duration // reporting interval, default 1h
	HistoryLimit   int           // conversation history cap, default 1000
}

// Mind is one autonomous participant in the collective.
type Mind struct {
	name           string
	specialization string
	mission        core.Mission
	personality    core.PersonalityProfile
	values         map[string]float64

	bus        Bus
	store      ArtifactStore
	dispatcher *Dispatcher

	baseDelay     time.Duration
	standupPeriod time.Duration

	relationships *RelationshipTracker
	history       *ConversationHistory

	// mu guards the fields below. The listener writes relationships and
	// history through their own locks; everything else funnels here.
	mu          sync.Mutex
	phase       core.Phase
	tasks       []core.WorkRecord
	insightLog  []string
	generation  int
	daysElapsed int
	mood        string

	reviewers map[string]Reviewer
	insights  InsightExtractor
	events    EventSink

	running atomic.Bool
	subMu   sync.Mutex
	sub     *messaging.Subscription
}

// New constructs a Mind from its configuration. Multiple independent minds
// may live in one process.
func New(cfg Config, bus Bus, store ArtifactStore, dispatcher *Dispatcher) *Mind {
	if cfg.Name == "" {
		cfg.Name = "COLLECTIVE_MIND"
	}
	if cfg.Specialization == "" {
		cfg.Specialization = core.SpecGeneralist
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 30 * time.Second
	}
	if cfg.StandupPeriod <= 0 {
		cfg.StandupPeriod = time.Hour
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 1000
	}
	if cfg.Mission.Goal == "" {
		cfg.Mission = core.DefaultMission()
	}

	return &Mind{
		name:           cfg.Name,
		specialization: cfg.Specialization,
		mission:        cfg.Mission,
		personality:    core.DerivePersonality(cfg.Specialization),
		values:         core.DefaultValues(),
		bus:            bus,
		store:          store,
		dispatcher:     dispatcher,
		baseDelay:      cfg.BaseDelay,
		standupPeriod:  cfg.StandupPeriod,
		relationships:  NewRelationshipTracker(),
		history:        NewConversationHistory(cfg.HistoryLimit),
		phase:          core.PhaseAnalysis,
		mood:           moods[0],
		reviewers:      make(map[string]Reviewer),
	}
}

// SetReviewer installs the review collaborator for a review channel.
func (m *Mind) SetReviewer(channel string, r Reviewer) {
	m.reviewers[channel] = r
}

// SetInsightExtractor installs the optional insight collaborator.
func (m *Mind) SetInsightExtractor(x InsightExtractor) {
	m.insights = x
}

// SetEventSink installs the optional observability sink.
func (m *Mind) SetEventSink(sink EventSink) {
	m.events = sink
}

// Run starts the three activities and blocks until all have exited. Cancel
// ctx or call Stop to shut down; the worker and standup loops finish their
// current cycle first, the listener is released by unsubscribing from the
// bus.
func (m *Mind) Run(ctx context.Context) {
	if !m.running.CompareAndSwap(false, true) {
		return
	}

	log.Printf("%s initializing (specialization: %s, mission: %s)", m.name, m.specialization, m.mission.Goal)

	// Jitter so co-started minds don't phase-lock their first publishes.
	select {
	case <-time.After(time.Duration(rand.Int63n(int64(2 * time.Second)))):
	case <-ctx.Done():
		m.running.Store(false)
		return
	}

	// Context cancellation must release the listener's blocking bus read,
	// not just the timer-driven loops.
	watch := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			m.Stop()
		case <-watch:
		}
	}()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		m.listenerLoop(ctx)
	}()
	go func() {
		defer wg.Done()
		m.workerLoop(ctx)
	}()
	go func() {
		defer wg.Done()
		m.standupLoop(ctx)
	}()

	log.Printf("%s is active", m.name)
	wg.Wait()
	close(watch)
}

// Stop requests shutdown: the running flag drops and the bus subscription is
// cancelled so the blocked listener wakes up.
func (m *Mind) Stop() {
	m.running.Store(false)
	m.subMu.Lock()
	sub := m.sub
	m.subMu.Unlock()
	if sub != nil {
		sub.Unsubscribe()
	}
}

// Name returns the mind's unique display name.
func (m *Mind) Name() string { return m.name }

// Specialization returns the mind's role tag.
func (m *Mind) Specialization() string { return m.specialization }

// Mission returns the mission configuration.
func (m *Mind) Mission() core.Mission { return m.mission }

// Personality returns a copy of the trait profile.
func (m *Mind) Personality() core.PersonalityProfile {
	profile := make(core.PersonalityProfile, len(m.personality))
	for trait, value := range m.personality {
		profile[trait] = value
	}
	return profile
}

// Phase returns the current mission phase.
func (m *Mind) Phase() core.Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// SetPhase advances the mission phase. Called by mission control; the mind
// never transitions on its own.
func (m *Mind) SetPhase(p core.Phase) bool {
	if !p.Valid() {
		return false
	}
	m.mu.Lock()
	m.phase = p
	m.mu.Unlock()
	m.emit(messaging.EventPhaseChanged, map[string]interface{}{"mind": m.name, "phase": p})
	return true
}

// Generation returns the number of completed work cycles.
func (m *Mind) Generation() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation
}

// DaysElapsed returns the number of standup periods that have fired.
func (m *Mind) DaysElapsed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.daysElapsed
}

// TasksCompleted returns the number of work records produced so far.
func (m *Mind) TasksCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Mood returns the current mood string.
func (m *Mind) Mood() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mood
}

// Relationships exposes the peer tracker for reporting.
func (m *Mind) Relationships() *RelationshipTracker { return m.relationships }

// History exposes the conversation history for reporting.
func (m *Mind) History() *ConversationHistory { return m.history }

// AddInsight appends an insight string to the mind's log.
func (m *Mind) AddInsight(insight string) {
	if insight == "" {
		return
	}
	m.mu.Lock()
	m.insightLog = append(m.insightLog, insight)
	m.mu.Unlock()
	m.emit(messaging.EventInsightRecorded, map[string]interface{}{"mind": m.name, "insight": insight})
}

// Insights returns a copy of the insight log.
func (m *Mind) Insights() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.insightLog))
	copy(out, m.insightLog)
	return out
}

func (m *Mind) emit(event string, payload interface{}) {
	if m.events != nil {
		m.events(event, payload)
	}
}

func (m *Mind) rotateMood() {
	m.mu.Lock()
	m.mood = moods[time.Now().UnixNano()%int64(len(moods))]
	m.mu.Unlock()
}
