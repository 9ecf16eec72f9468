package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoin registers the connection into a room.
	CommandJoin CommandKind = iota
	// CommandCodeChange relays a full document snapshot to the rest of the room.
	CommandCodeChange
	// CommandSyncCode sends a document snapshot to one specific connection.
	CommandSyncCode
	// CommandAddComment appends an inline comment and broadcasts it.
	CommandAddComment
	// CommandChatMessage fans a chat message out to the room.
	CommandChatMessage
)

// Command represents an action requested by a client.
type Command struct {
	Kind     CommandKind
	Room     string
	Username string
	Code     string
	TargetID string
	Comment  Comment
	Text     string
}
