package core

import "time"

// Channel names on the collective bus. Subscription is by exact match.
const (
	ChannelPrimary            = "primary"
	ChannelDailyStandup       = "daily_standup"
	ChannelCodeReview         = "code_review"
	ChannelDesignReview       = "design_review"
	ChannelArchitectureReview = "architecture_review"
)

// Message kinds carried in PeerMessage.Type.
const (
	MsgWorkUpdate   = "work_update"
	MsgStandup      = "standup"
	MsgCodeReview   = "code_review"
	MsgDesignReview = "design_review"
	MsgOther        = "other"
)

// MindChannels returns the fixed channel set every mind listens on.
func MindChannels() []string {
	return []string{
		ChannelPrimary,
		ChannelDailyStandup,
		ChannelCodeReview,
		ChannelDesignReview,
		ChannelArchitectureReview,
	}
}

// PeerMessage is the wire record exchanged between minds. It exists only in
// transit and in the receiver's conversation history.
type PeerMessage struct {
	Mind      string      `json:"mind"`
	Type      string      `json:"type"`
	Timestamp string      `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewPeerMessage builds a message stamped with the current UTC time in
// ISO-8601 form.
func NewPeerMessage(mind, msgType string, payload interface{}) PeerMessage {
	return PeerMessage{
		Mind:      mind,
		Type:      msgType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Payload:   payload,
	}
}
