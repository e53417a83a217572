package mind

import (
	"context"
	"log"

	"github.com/mindforge/collective-mind/communication"
	"github.com/mindforge/collective-mind/core"
)

// listenerLoop consumes peer broadcasts until the subscription ends. Its
// only blocking point is the bus read; review collaborators are invoked
// inline but are expected to bound their own work.
func (m *Mind) listenerLoop(ctx context.Context) {
	sub, err := m.bus.Subscribe(core.MindChannels()...)
	if err != nil {
		log.Printf("%s: failed to subscribe to collective channels: %v", m.name, err)
		return
	}

	m.subMu.Lock()
	m.sub = sub
	m.subMu.Unlock()

	// Stop may have run before the subscription was stored; release it now
	// so the loop below cannot block forever.
	if !m.running.Load() {
		sub.Unsubscribe()
	}

	for in := range sub.C() {
		m.handleInbound(ctx, in)
	}

	if err := sub.Err(); err != nil {
		// Terminal transport error; reconnect policy belongs to whoever
		// supervises the mind.
		log.Printf("%s: listener stream ended: %v", m.name, err)
	}
}

// handleInbound routes one peer message. Self-messages are discarded before
// any bookkeeping.
func (m *Mind) handleInbound(ctx context.Context, in messaging.Inbound) {
	msg := in.Message
	if msg.Mind == m.name || msg.Mind == "" {
		return
	}

	switch in.Channel {
	case core.ChannelDailyStandup:
		// Peer bookkeeping only, no reply.
		m.relationships.Touch(msg.Mind)

	case core.ChannelCodeReview, core.ChannelDesignReview:
		reviewer, ok := m.reviewers[in.Channel]
		if !ok {
			return
		}
		if err := reviewer.Review(ctx, msg.Mind, msg.Payload); err != nil {
			log.Printf("%s: %s handler failed for %s: %v", m.name, in.Channel, msg.Mind, err)
		}

	default:
		rel := m.relationships.Touch(msg.Mind)
		m.history.Append(in.Channel, msg)
		m.emit(messaging.EventPeerMessage, map[string]interface{}{
			"channel":      in.Channel,
			"from":         msg.Mind,
			"type":         msg.Type,
			"interactions": rel.Interactions,
		})
	}
}
