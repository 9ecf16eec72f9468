package core

// Participant is one live connection's identity within a room.
type Participant struct {
	ConnID   string
	Username string
	Room     string
}

// Comment is an inline annotation attached to a document line. IDs are
// caller-supplied and must be unique within a room.
type Comment struct {
	ID         string
	LineNumber int
	Text       string
	Author     string
	Room       string
}

// ChatMessage is a transient room message. Never stored.
type ChatMessage struct {
	Room     string
	Username string
	Text     string
}
