package messaging

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Events broadcast to observing UI clients.
const (
	EventWorkCompleted    = "WORK_COMPLETED"
	EventStandupPublished = "STANDUP_PUBLISHED"
	EventPeerMessage      = "PEER_MESSAGE"
	EventPhaseChanged     = "PHASE_CHANGED"
	EventInsightRecorded  = "INSIGHT_RECORDED"
)

// WSEvent is one event pushed to websocket observers.
type WSEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// WSManager fans mind events out to connected websocket clients.
type WSManager struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan WSEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.RWMutex
}

// NewWSManager creates a manager and starts its broadcast loop.
func NewWSManager() *WSManager {
	manager := &WSManager{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan WSEvent, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
	go manager.run()
	return manager
}

func (manager *WSManager) run() {
	for {
		select {
		case client := <-manager.register:
			manager.mu.Lock()
			manager.clients[client] = true
			manager.mu.Unlock()

		case client := <-manager.unregister:
			manager.mu.Lock()
			if _, ok := manager.clients[client]; ok {
				delete(manager.clients, client)
				client.Close()
			}
			manager.mu.Unlock()

		case event := <-manager.broadcast:
			manager.mu.Lock()
			for client := range manager.clients {
				if err := client.WriteJSON(event); err != nil {
					log.Printf("messaging: websocket write failed: %v", err)
					client.Close()
					delete(manager.clients, client)
				}
			}
			manager.mu.Unlock()
		}
	}
}

// Broadcast queues an event for all connected clients. Best-effort: when the
// broadcast queue is full the event is dropped.
func (manager *WSManager) Broadcast(eventType string, payload interface{}) {
	select {
	case manager.broadcast <- WSEvent{Type: eventType, Payload: payload}:
	default:
		log.Printf("messaging: websocket broadcast queue full, dropping %s", eventType)
	}
}

func (manager *WSManager) Register() chan<- *websocket.Conn {
	return manager.register
}

func (manager *WSManager) Unregister() chan<- *websocket.Conn {
	return manager.unregister
}
