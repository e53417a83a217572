package mind

import "testing"

func TestRelationshipTracker(t *testing.T) {
	t.Run("Touch creates lazily and counts", func(t *testing.T) {
		tracker := NewRelationshipTracker()

		first := tracker.Touch("Bob")
		if first.Interactions != 1 {
			t.Errorf("expected 1 interaction, got %d", first.Interactions)
		}
		if first.CollaborationScore != 0.5 {
			t.Errorf("expected initial score 0.5, got %f", first.CollaborationScore)
		}

		second := tracker.Touch("Bob")
		if second.Interactions != 2 {
			t.Errorf("expected 2 interactions, got %d", second.Interactions)
		}
		if second.CollaborationScore != 0.5 {
			t.Errorf("score should stay 0.5, got %f", second.CollaborationScore)
		}

		if tracker.Count() != 1 {
			t.Errorf("expected exactly one relationship, got %d", tracker.Count())
		}
	})

	t.Run("Get reports existence", func(t *testing.T) {
		tracker := NewRelationshipTracker()
		if _, ok := tracker.Get("nobody"); ok {
			t.Error("Get should miss for unseen peer")
		}
		tracker.Touch("Carol")
		rel, ok := tracker.Get("Carol")
		if !ok || rel.Peer != "Carol" {
			t.Errorf("expected Carol relationship, got %+v ok=%v", rel, ok)
		}
	})

	t.Run("Snapshot is a copy", func(t *testing.T) {
		tracker := NewRelationshipTracker()
		tracker.Touch("Dave")

		snap := tracker.Snapshot()
		entry := snap["Dave"]
		entry.Interactions = 99
		snap["Dave"] = entry

		if rel, _ := tracker.Get("Dave"); rel.Interactions != 1 {
			t.Errorf("snapshot mutation leaked into tracker: %d", rel.Interactions)
		}
	})
}
