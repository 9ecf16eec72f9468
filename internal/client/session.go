// Package client implements the client half of the session protocol: the
// local membership view, document reconciliation and comment dedupe that
// every participant runs against the server's relayed events.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/codepairhq/codepair-server/internal/proto"
)

// Transport is the message channel a session speaks over. The websocket
// implementation lives in transport.go; tests substitute their own.
type Transport interface {
	Send(ctx context.Context, msg proto.Inbound) error
	Receive(ctx context.Context) (proto.Envelope, error)
	Close() error
}

// Callbacks are invoked from the session's Run goroutine as events arrive.
// Any of them may be nil.
type Callbacks struct {
	OnPresence     func(participants []proto.ParticipantData)
	OnJoined       func(username, connectionID string)
	OnDisconnected func(username, connectionID string)
	OnDocument     func(code string)
	OnComment      func(comment proto.CommentData)
	OnChat         func(username, text string)
	OnError        func(code, msg string)
}

// ErrDuplicateComment is returned when a comment id was already submitted
// or received in this session.
var ErrDuplicateComment = fmt.Errorf("duplicate comment id")

// Session is one participant's view of a room. It holds the only copies of
// the document and comment state the client side keeps; the server stores
// neither.
type Session struct {
	room     string
	username string
	tr       Transport
	cb       Callbacks
	log      zerolog.Logger

	mu             sync.Mutex
	connID         string
	participants   []proto.ParticipantData
	document       string
	hasDocument    bool
	applyingRemote bool
	comments       []proto.CommentData
	commentIDs     map[string]struct{}
}

// New builds a session over an established transport. Call Join to enter
// the room, then Run to process events.
func New(tr Transport, room, username string, cb Callbacks, logger *zerolog.Logger) *Session {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &Session{
		room:       room,
		username:   username,
		tr:         tr,
		cb:         cb,
		log:        l,
		commentIDs: make(map[string]struct{}),
	}
}

// Dial connects to a server, joins the room and returns the session. A
// connection failure here is terminal; the caller restarts the join flow.
func Dial(ctx context.Context, url, room, username string, cb Callbacks, logger *zerolog.Logger) (*Session, error) {
	tr, err := DialTransport(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	s := New(tr, room, username, cb, logger)
	if err := s.Join(ctx); err != nil {
		_ = tr.Close()
		return nil, err
	}
	return s, nil
}

// Join announces the session to the server.
func (s *Session) Join(ctx context.Context) error {
	return s.send(ctx, proto.InboundTypeJoin, proto.JoinData{
		RoomID:   s.room,
		Username: s.username,
	})
}

// Run receives and applies server events until the transport fails or the
// context is cancelled.
func (s *Session) Run(ctx context.Context) error {
	for {
		env, err := s.tr.Receive(ctx)
		if err != nil {
			return err
		}
		if err := s.handle(ctx, env); err != nil {
			return err
		}
	}
}

// Close releases the underlying transport.
func (s *Session) Close() error {
	return s.tr.Close()
}

// ConnID returns the connection id the server assigned, learned from the
// session's own joined event. Empty until then.
func (s *Session) ConnID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connID
}

// Participants returns the current membership view.
func (s *Session) Participants() []proto.ParticipantData {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]proto.ParticipantData, len(s.participants))
	copy(out, s.participants)
	return out
}

// Document returns the current local document text.
func (s *Session) Document() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document
}

// Comments returns the comments accepted so far, in arrival order.
func (s *Session) Comments() []proto.CommentData {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]proto.CommentData, len(s.comments))
	copy(out, s.comments)
	return out
}

// DocumentChanged is the editor's change hook. Changes made while a remote
// snapshot is being applied are local-only; propagating them would echo the
// remote update straight back into the room.
func (s *Session) DocumentChanged(ctx context.Context, code string) error {
	s.mu.Lock()
	s.document = code
	s.hasDocument = true
	if s.applyingRemote {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	return s.send(ctx, proto.InboundTypeCodeChange, proto.CodeChangeData{
		RoomID: s.room,
		Code:   code,
	})
}

// AddComment submits a comment with a generated id and returns that id.
func (s *Session) AddComment(ctx context.Context, lineNumber int, text string) (string, error) {
	id := uuid.NewString()
	return id, s.AddCommentWithID(ctx, id, lineNumber, text)
}

// AddCommentWithID submits a comment under a caller-chosen id. Duplicate
// ids are rejected locally and never sent.
func (s *Session) AddCommentWithID(ctx context.Context, id string, lineNumber int, text string) error {
	if id == "" {
		return fmt.Errorf("comment id is required")
	}
	if lineNumber < 0 {
		return fmt.Errorf("line number must be non-negative")
	}

	comment := proto.CommentData{
		ID:         id,
		LineNumber: lineNumber,
		Text:       text,
		Author:     s.username,
	}

	s.mu.Lock()
	if _, dup := s.commentIDs[id]; dup {
		s.mu.Unlock()
		return ErrDuplicateComment
	}
	s.commentIDs[id] = struct{}{}
	s.comments = append(s.comments, comment)
	s.mu.Unlock()

	return s.send(ctx, proto.InboundTypeAddComment, proto.AddCommentData{
		RoomID:  s.room,
		Comment: comment,
	})
}

// SendChat fans a chat message out to the room.
func (s *Session) SendChat(ctx context.Context, text string) error {
	return s.send(ctx, proto.InboundTypeChatMessage, proto.ChatData{
		RoomID:   s.room,
		Username: s.username,
		Text:     text,
	})
}

func (s *Session) send(ctx context.Context, msgType string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", msgType, err)
	}
	return s.tr.Send(ctx, proto.Inbound{Type: msgType, Data: data})
}

func (s *Session) handle(ctx context.Context, env proto.Envelope) error {
	if env.Type == proto.OutboundTypeError {
		if env.Error != nil && s.cb.OnError != nil {
			s.cb.OnError(env.Error.Code, env.Error.Msg)
		}
		return nil
	}
	if env.Type != proto.OutboundTypeEvent {
		s.log.Warn().Str("type", env.Type).Msg("unknown server message type")
		return nil
	}

	switch env.Event {
	case proto.EventJoined:
		var ev proto.JoinedEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return fmt.Errorf("decode joined: %w", err)
		}
		return s.handleJoined(ctx, ev)
	case proto.EventDisconnected:
		var ev proto.DisconnectedEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return fmt.Errorf("decode disconnected: %w", err)
		}
		s.handleDisconnected(ev)
	case proto.EventCodeChange:
		var ev proto.CodeChangeEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return fmt.Errorf("decode code-change: %w", err)
		}
		s.applyRemoteDocument(ev.Code)
	case proto.EventAddComment:
		var ev proto.AddCommentEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return fmt.Errorf("decode add-comment: %w", err)
		}
		s.applyRemoteComment(ev.Comment)
	case proto.EventChatMessage:
		var ev proto.ChatMessageEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return fmt.Errorf("decode chat-message: %w", err)
		}
		if s.cb.OnChat != nil {
			s.cb.OnChat(ev.Username, ev.Text)
		}
	default:
		s.log.Warn().Str("event", env.Event).Msg("unknown server event")
	}
	return nil
}

// handleJoined refreshes the membership view. The first joined event a
// connection receives is its own, which is how the session learns its
// connection id. Existing members that observe someone else's join send
// that newcomer a document snapshot, unicast, so the rest of the room sees
// no redundant traffic.
func (s *Session) handleJoined(ctx context.Context, ev proto.JoinedEvent) error {
	s.mu.Lock()
	if s.connID == "" {
		s.connID = ev.ConnectionID
	}
	s.participants = ev.Participants
	self := s.connID
	haveDoc := s.hasDocument
	doc := s.document
	s.mu.Unlock()

	if s.cb.OnJoined != nil {
		s.cb.OnJoined(ev.Username, ev.ConnectionID)
	}
	if s.cb.OnPresence != nil {
		s.cb.OnPresence(ev.Participants)
	}

	if ev.ConnectionID != self && haveDoc {
		return s.send(ctx, proto.InboundTypeSyncCode, proto.SyncCodeData{
			ConnectionID: ev.ConnectionID,
			Code:         doc,
		})
	}
	return nil
}

func (s *Session) handleDisconnected(ev proto.DisconnectedEvent) {
	s.mu.Lock()
	kept := s.participants[:0]
	for _, p := range s.participants {
		if p.ConnectionID != ev.ConnectionID {
			kept = append(kept, p)
		}
	}
	s.participants = kept
	view := make([]proto.ParticipantData, len(kept))
	copy(view, kept)
	s.mu.Unlock()

	if s.cb.OnDisconnected != nil {
		s.cb.OnDisconnected(ev.Username, ev.ConnectionID)
	}
	if s.cb.OnPresence != nil {
		s.cb.OnPresence(view)
	}
}

// applyRemoteDocument replaces the whole local document. The apply is
// flagged so a DocumentChanged call triggered by the editor updating does
// not propagate back out.
func (s *Session) applyRemoteDocument(code string) {
	s.mu.Lock()
	s.document = code
	s.hasDocument = true
	s.applyingRemote = true
	s.mu.Unlock()

	if s.cb.OnDocument != nil {
		s.cb.OnDocument(code)
	}

	s.mu.Lock()
	s.applyingRemote = false
	s.mu.Unlock()
}

// applyRemoteComment appends a received comment, ignoring ids already seen
// so redelivery and the submitter's own echo are idempotent.
func (s *Session) applyRemoteComment(comment proto.CommentData) {
	s.mu.Lock()
	if _, dup := s.commentIDs[comment.ID]; dup {
		s.mu.Unlock()
		return
	}
	s.commentIDs[comment.ID] = struct{}{}
	s.comments = append(s.comments, comment)
	s.mu.Unlock()

	if s.cb.OnComment != nil {
		s.cb.OnComment(comment)
	}
}
