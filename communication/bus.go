package messaging

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/mindforge/collective-mind/core"
)

// ErrDisconnected is the terminal error delivered to open subscriptions when
// the underlying transport connection is lost.
var ErrDisconnected = errors.New("messaging: connection to bus lost")

// subscriberBuffer bounds the per-subscription inbox. Delivery is
// best-effort: messages beyond the buffer are dropped, not queued.
const subscriberBuffer = 256

// Inbound is one message received on a subscription, tagged with the channel
// it arrived on.
type Inbound struct {
	Channel string
	Message core.PeerMessage
}

// Subscription is a continuous stream of inbound messages across one or more
// channels. The stream ends when Unsubscribe is called or the connection is
// lost; after the channel closes, Err reports whether the end was terminal.
type Subscription struct {
	ch   chan Inbound
	subs []*nats.Subscription

	mu     sync.Mutex
	err    error
	closed bool
}

// C returns the inbound message stream. It is closed on Unsubscribe or on a
// transport failure.
func (s *Subscription) C() <-chan Inbound {
	return s.ch
}

// Err returns the terminal error, if any, after C has been closed. A nil
// error means the stream ended by explicit Unsubscribe.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Unsubscribe stops delivery and closes the stream. Safe to call more than
// once.
func (s *Subscription) Unsubscribe() {
	s.close(nil)
}

func (s *Subscription) close(err error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.err = err
	s.mu.Unlock()

	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	close(s.ch)
}

func (s *Subscription) deliver(in Inbound) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	select {
	case s.ch <- in:
	default:
		log.Printf("messaging: subscriber backlog full, dropping %s message on %s", in.Message.Type, in.Channel)
	}
}

// Messenger is the NATS-backed publish/subscribe bus between minds.
type Messenger struct {
	nc *nats.Conn

	mu   sync.Mutex
	open map[*Subscription]struct{}
}

// NewMessenger connects to the NATS server at url. A lost connection fails
// every open subscription with ErrDisconnected; reconnecting is left to the
// caller.
func NewMessenger(url string) (*Messenger, error) {
	m := &Messenger{open: make(map[*Subscription]struct{})}

	nc, err := nats.Connect(url,
		nats.Timeout(10*time.Second),
		nats.NoReconnect(),
		nats.ClosedHandler(func(*nats.Conn) {
			m.failAll(ErrDisconnected)
		}),
	)
	if err != nil {
		return nil, err
	}
	m.nc = nc
	return m, nil
}

// Publish sends msg on the named channel. Fire-and-forget: no delivery
// confirmation beyond transport buffering.
func (m *Messenger) Publish(channel string, msg core.PeerMessage) error {
	data := core.EncodeJSON(msg)
	if data == nil {
		return errors.New("messaging: failed to encode message")
	}
	return m.nc.Publish(channel, data)
}

// Subscribe opens a stream over the given channels. Messages arrive in
// per-connection arrival order; there is no ordering guarantee across
// channels or publishers. Undecodable payloads are logged and dropped.
func (m *Messenger) Subscribe(channels ...string) (*Subscription, error) {
	if len(channels) == 0 {
		return nil, errors.New("messaging: no channels given")
	}

	sub := &Subscription{ch: make(chan Inbound, subscriberBuffer)}

	for _, channel := range channels {
		ch := channel
		ns, err := m.nc.Subscribe(ch, func(natsMsg *nats.Msg) {
			var msg core.PeerMessage
			if err := core.DecodeJSON(natsMsg.Data, &msg); err != nil {
				log.Printf("messaging: dropping malformed message on %s: %v", ch, err)
				return
			}
			sub.deliver(Inbound{Channel: ch, Message: msg})
		})
		if err != nil {
			sub.close(nil)
			return nil, err
		}
		sub.subs = append(sub.subs, ns)
	}

	m.mu.Lock()
	m.open[sub] = struct{}{}
	m.mu.Unlock()

	return sub, nil
}

// Flush waits for buffered publishes to reach the server. Used by tests and
// graceful shutdown.
func (m *Messenger) Flush() error {
	return m.nc.Flush()
}

// Close closes the connection, failing any open subscriptions.
func (m *Messenger) Close() {
	m.nc.Close()
}

func (m *Messenger) failAll(err error) {
	m.mu.Lock()
	subs := make([]*Subscription, 0, len(m.open))
	for sub := range m.open {
		subs = append(subs, sub)
	}
	m.open = make(map[*Subscription]struct{})
	m.mu.Unlock()

	for _, sub := range subs {
		sub.close(err)
	}
}
