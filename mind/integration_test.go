package mind

import (
	"context"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"

	"github.com/mindforge/collective-mind/communication"
	"github.com/mindforge/collective-mind/core"
)

func runTestServer(t *testing.T) *natsserver.Server {
	t.Helper()
	srv, err := natsserver.NewServer(&natsserver.Options{Host: "127.0.0.1", Port: -1})
	if err != nil {
		t.Fatalf("failed to create NATS server: %v", err)
	}
	go srv.Start()
	if !srv.ReadyForConnections(5 * time.Second) {
		t.Fatal("NATS server not ready")
	}
	t.Cleanup(srv.Shutdown)
	return srv
}

// TestCollectiveWorkCycle walks one work unit across two minds: A produces a
// core-systems proposal, persists it, broadcasts a work update on the
// primary channel, and B builds a relationship from the observed traffic.
func TestCollectiveWorkCycle(t *testing.T) {
	srv := runTestServer(t)
	ctx := context.Background()

	busA, err := messaging.NewMessenger(srv.ClientURL())
	if err != nil {
		t.Fatalf("failed to connect A: %v", err)
	}
	defer busA.Close()

	busB, err := messaging.NewMessenger(srv.ClientURL())
	if err != nil {
		t.Fatalf("failed to connect B: %v", err)
	}
	defer busB.Close()

	storeA := &stubStore{}
	dispatcherA := NewDispatcher()
	dispatcherA.Register(core.PhaseCoreSystems, &stubWorker{
		output: map[string]interface{}{"status": "proposed", "design": "message-driven persistence layer"},
	})

	a := New(Config{Name: "A", Specialization: core.SpecEngineer}, busA, storeA, dispatcherA)
	a.SetPhase(core.PhaseCoreSystems)

	b := New(Config{Name: "B", Specialization: core.SpecDesigner}, busB, &stubStore{}, NewDispatcher())

	subB, err := busB.Subscribe(core.MindChannels()...)
	if err != nil {
		t.Fatalf("B failed to subscribe: %v", err)
	}
	defer subB.Unsubscribe()

	rec := a.workOnMission(ctx)
	if rec.Status != core.WorkStatusOK {
		t.Fatalf("A's cycle failed: %s", rec.Status)
	}
	if len(storeA.works) != 1 {
		t.Fatalf("A should persist exactly one record, got %d", len(storeA.works))
	}
	busA.Flush()

	select {
	case in, ok := <-subB.C():
		if !ok {
			t.Fatal("B's stream closed unexpectedly")
		}
		if in.Channel != core.ChannelPrimary {
			t.Fatalf("expected work update on %s, got %s", core.ChannelPrimary, in.Channel)
		}
		if in.Message.Mind != "A" {
			t.Fatalf("work update should name A, got %s", in.Message.Mind)
		}
		b.handleInbound(ctx, in)
	case <-time.After(5 * time.Second):
		t.Fatal("B never received A's work update")
	}

	rel, ok := b.Relationships().Get("A")
	if !ok {
		t.Fatal("B should have created a relationship for A")
	}
	if rel.Interactions != 1 {
		t.Errorf("expected interaction count 1, got %d", rel.Interactions)
	}
	if rel.CollaborationScore != 0.5 {
		t.Errorf("expected untouched score 0.5, got %f", rel.CollaborationScore)
	}
	if b.History().Len() != 1 {
		t.Errorf("B should remember the message, history len %d", b.History().Len())
	}
}

// TestStandupBroadcast checks the standup path end to end: published on the
// standup channel, received by a peer, bookkeeping only.
func TestStandupBroadcast(t *testing.T) {
	srv := runTestServer(t)
	ctx := context.Background()

	busA, err := messaging.NewMessenger(srv.ClientURL())
	if err != nil {
		t.Fatalf("failed to connect A: %v", err)
	}
	defer busA.Close()

	busB, err := messaging.NewMessenger(srv.ClientURL())
	if err != nil {
		t.Fatalf("failed to connect B: %v", err)
	}
	defer busB.Close()

	storeA := &stubStore{}
	a := New(Config{Name: "A"}, busA, storeA, NewDispatcher())
	b := New(Config{Name: "B"}, busB, &stubStore{}, NewDispatcher())

	subB, err := busB.Subscribe(core.ChannelDailyStandup)
	if err != nil {
		t.Fatalf("B failed to subscribe: %v", err)
	}
	defer subB.Unsubscribe()

	report := a.ComposeStandup()
	if err := storeA.InsertStandup(report); err != nil {
		t.Fatalf("failed to persist standup: %v", err)
	}
	if err := busA.Publish(core.ChannelDailyStandup, core.NewPeerMessage("A", core.MsgStandup, report)); err != nil {
		t.Fatalf("failed to publish standup: %v", err)
	}
	busA.Flush()

	select {
	case in, ok := <-subB.C():
		if !ok {
			t.Fatal("B's stream closed unexpectedly")
		}
		b.handleInbound(ctx, in)
	case <-time.After(5 * time.Second):
		t.Fatal("B never received the standup")
	}

	if rel, ok := b.Relationships().Get("A"); !ok || rel.Interactions != 1 {
		t.Errorf("standup should touch the sender once: %+v ok=%v", rel, ok)
	}
	if b.History().Len() != 0 {
		t.Error("standups must not enter conversation history")
	}
}

// TestRunLifecycle runs a full mind against a live bus: the standup scheduler
// advances the day count and publishes each period, and cancelling the
// context alone is enough to release the listener and return from Run.
func TestRunLifecycle(t *testing.T) {
	srv := runTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus, err := messaging.NewMessenger(srv.ClientURL())
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer bus.Close()

	observer, err := messaging.NewMessenger(srv.ClientURL())
	if err != nil {
		t.Fatalf("failed to connect observer: %v", err)
	}
	defer observer.Close()

	sub, err := observer.Subscribe(core.ChannelDailyStandup)
	if err != nil {
		t.Fatalf("observer failed to subscribe: %v", err)
	}
	defer sub.Unsubscribe()

	store := &stubStore{}
	m := New(Config{
		Name:          "A",
		BaseDelay:     20 * time.Millisecond,
		StandupPeriod: 50 * time.Millisecond,
	}, bus, store, NewDispatcher())

	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	select {
	case in, ok := <-sub.C():
		if !ok {
			t.Fatal("observer stream closed unexpectedly")
		}
		if in.Message.Mind != "A" || in.Message.Type != core.MsgStandup {
			t.Fatalf("unexpected standup message: %+v", in.Message)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("standup never published")
	}

	// The day advances and the report persists before each publish.
	if m.DaysElapsed() < 1 {
		t.Errorf("expected at least one elapsed day, got %d", m.DaysElapsed())
	}
	if store.standupCount() < 1 {
		t.Errorf("expected at least one persisted standup, got %d", store.standupCount())
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
