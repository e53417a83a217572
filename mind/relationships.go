package mind

import "sync"

// initialScore is the collaboration score every new relationship starts
// with. The core never adjusts it; adjustment policy belongs to
// collaborators and must keep the value in [0,1].
const initialScore = 0.5

// Relationship is the per-peer interaction bookkeeping built from observed
// bus traffic.
type Relationship struct {
	Peer               string  `json:"peer"`
	Interactions       int     `json:"interactions"`
	CollaborationScore float64 `json:"collaboration_score"`
}

// RelationshipTracker maps peer names to their relationship state. Only the
// listener activity writes; worker and standup activities read snapshots.
type RelationshipTracker struct {
	mu    sync.RWMutex
	peers map[string]*Relationship
}

func NewRelationshipTracker() *RelationshipTracker {
	return &RelationshipTracker{peers: make(map[string]*Relationship)}
}

// Touch records one interaction with peer, creating the relationship lazily
// on first contact, and returns a copy of the updated state.
func (t *RelationshipTracker) Touch(peer string) Relationship {
	t.mu.Lock()
	defer t.mu.Unlock()

	rel, ok := t.peers[peer]
	if !ok {
		rel = &Relationship{Peer: peer, CollaborationScore: initialScore}
		t.peers[peer] = rel
	}
	rel.Interactions++
	return *rel
}

// Get returns the relationship for peer, if one exists.
func (t *RelationshipTracker) Get(peer string) (Relationship, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rel, ok := t.peers[peer]
	if !ok {
		return Relationship{}, false
	}
	return *rel, true
}

// Snapshot returns a copy of all relationships for reporting.
func (t *RelationshipTracker) Snapshot() map[string]Relationship {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]Relationship, len(t.peers))
	for peer, rel := range t.peers {
		out[peer] = *rel
	}
	return out
}

// Count returns the number of known peers.
func (t *RelationshipTracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.peers)
}
