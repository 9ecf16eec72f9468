// Package proto defines the JSON wire protocol spoken over the websocket.
package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	ProtocolVersion = 1

	InboundTypeJoin        = "join"
	InboundTypeCodeChange  = "code-change"
	InboundTypeSyncCode    = "sync-code"
	InboundTypeAddComment  = "add-comment"
	InboundTypeChatMessage = "chat-message"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventJoined       = "joined"
	EventDisconnected = "disconnected"
	EventCodeChange   = "code-change"
	EventAddComment   = "add-comment"
	EventChatMessage  = "chat-message"
)

// JoinData registers the connection into a room under a display name.
type JoinData struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

// CodeChangeData carries the sender's entire current document text.
type CodeChangeData struct {
	RoomID string `json:"roomId"`
	Code   string `json:"code"`
}

// SyncCodeData addresses a document snapshot to one connection, used to
// catch a newcomer up after a join.
type SyncCodeData struct {
	ConnectionID string `json:"connectionId"`
	Code         string `json:"code"`
}

// CommentData is an inline comment on a document line.
type CommentData struct {
	ID         string `json:"id"`
	LineNumber int    `json:"lineNumber"`
	Text       string `json:"text"`
	Author     string `json:"author"`
}

// AddCommentData submits a comment for a room.
type AddCommentData struct {
	RoomID  string      `json:"roomId"`
	Comment CommentData `json:"comment"`
}

// ChatData is a chat message from the client.
type ChatData struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username,omitempty"`
	Text     string `json:"text"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// ParticipantData identifies one room member.
type ParticipantData struct {
	ConnectionID string `json:"connectionId"`
	Username     string `json:"username"`
}

// JoinedEvent notifies every room member, newcomer included, of a join.
type JoinedEvent struct {
	Participants []ParticipantData `json:"participants"`
	Username     string            `json:"username"`
	ConnectionID string            `json:"connectionId"`
}

// DisconnectedEvent notifies remaining members of a departure.
type DisconnectedEvent struct {
	ConnectionID string `json:"connectionId"`
	Username     string `json:"username"`
}

// CodeChangeEvent delivers a full document snapshot to apply.
type CodeChangeEvent struct {
	Code string `json:"code"`
}

// AddCommentEvent delivers an accepted comment.
type AddCommentEvent struct {
	Comment CommentData `json:"comment"`
}

// ChatMessageEvent delivers a chat message.
type ChatMessageEvent struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

// Envelope mirrors Outbound with the payload left as raw bytes, for
// receivers that decode per event type.
type Envelope struct {
	Type  string          `json:"type"`
	Event string          `json:"event,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error *Error          `json:"error,omitempty"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
