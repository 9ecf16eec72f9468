package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventJoined notifies room members that a participant joined.
	EventJoined EventKind = iota
	// EventDisconnected notifies remaining members that a participant left.
	EventDisconnected
	// EventCodeChange carries a full document snapshot to apply.
	EventCodeChange
	// EventComment delivers a newly accepted inline comment.
	EventComment
	// EventChat delivers a chat message.
	EventChat
	// EventError notifies the offending client about a domain error.
	EventError
)

// Event is sent to clients to describe what happened in the session.
type Event struct {
	Kind         EventKind
	Room         string
	Participants []Participant // EventJoined: full post-join member list
	Username     string        // EventJoined, EventDisconnected
	ConnID       string        // EventJoined, EventDisconnected
	Code         string        // EventCodeChange
	Comment      Comment       // EventComment
	Chat         ChatMessage   // EventChat
	Error        *CoreError    // EventError
}
