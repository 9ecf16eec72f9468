package core

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/codepairhq/codepair-server/internal/metrics"
)

// Hub coordinates all sessions. A single run loop owns the registry, so
// command handling is serialized and the maps need no locking. Commands
// arrive through per-client channels that RegisterClient pumps into one
// inbox, preserving per-connection order.
type Hub struct {
	log      zerolog.Logger
	metrics  *metrics.Set
	registry *Registry

	inbox chan inboxItem
	done  chan struct{}
}

type inboxItem struct {
	client     *Client
	cmd        *Command
	disconnect bool
	query      *membersQuery
}

type membersQuery struct {
	room  string
	reply chan []Participant
}

// NewHub creates a hub. logger and m may be nil.
func NewHub(logger *zerolog.Logger, m *metrics.Set) *Hub {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &Hub{
		log:      l,
		metrics:  m,
		registry: NewRegistry(),
		inbox:    make(chan inboxItem, 64),
		done:     make(chan struct{}),
	}
}

// RegisterClient starts pumping the client's commands into the hub. The
// pump exits when the client's command channel is closed, at which point a
// disconnect is queued; the hub therefore processes no event for a
// connection after its disconnect.
func (h *Hub) RegisterClient(c *Client) {
	go func() {
		for cmd := range c.Commands {
			select {
			case h.inbox <- inboxItem{client: c, cmd: cmd}:
			case <-h.done:
				return
			}
		}
		select {
		case h.inbox <- inboxItem{client: c, disconnect: true}:
		case <-h.done:
		}
	}()
}

// UnregisterClient signals the end of a connection. Safe to call more than
// once; the registry treats a never-joined connection's disconnect as a
// no-op.
func (h *Hub) UnregisterClient(c *Client) {
	c.closeOnce.Do(func() { close(c.Commands) })
}

// Run processes commands until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			return
		case item := <-h.inbox:
			h.dispatch(item)
		}
	}
}

// Members answers "who is in room R" from outside the run loop.
func (h *Hub) Members(ctx context.Context, roomID string) ([]Participant, error) {
	q := &membersQuery{room: roomID, reply: make(chan []Participant, 1)}
	select {
	case h.inbox <- inboxItem{query: q}:
	case <-h.done:
		return nil, ErrHubStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case ps := <-q.reply:
		return ps, nil
	case <-h.done:
		return nil, ErrHubStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (h *Hub) dispatch(item inboxItem) {
	switch {
	case item.query != nil:
		item.query.reply <- h.registry.MembersOf(item.query.room)
	case item.disconnect:
		h.handleDisconnect(item.client)
	case item.cmd != nil:
		h.handleCommand(item.client, item.cmd)
	}
}

func (h *Hub) handleCommand(c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandJoin:
		h.metrics.Command("join")
		h.handleJoin(c, cmd)
	case CommandCodeChange:
		h.metrics.Command("code_change")
		h.handleCodeChange(c, cmd)
	case CommandSyncCode:
		h.metrics.Command("sync_code")
		h.handleSyncCode(c, cmd)
	case CommandAddComment:
		h.metrics.Command("add_comment")
		h.handleAddComment(c, cmd)
	case CommandChatMessage:
		h.metrics.Command("chat_message")
		h.handleChat(c, cmd)
	}
}

func (h *Hub) sendError(c *Client, code, msg string) {
	c.trySend(&Event{Kind: EventError, Error: coreError(code, msg)})
}

// roomFor resolves the sender's room and checks the explicit room id on the
// command against it. Events scoped to a room the sender is not a member of
// are rejected rather than silently dropped.
func (h *Hub) roomFor(c *Client, roomID string) (*Room, Participant, bool) {
	room, p, ok := h.registry.RoomOf(c.ID)
	if !ok {
		h.sendError(c, ErrCodeNotInRoom, "join a room first")
		return nil, Participant{}, false
	}
	if roomID != p.Room {
		h.sendError(c, ErrCodeNotInRoom, "not a member of room "+roomID)
		return nil, Participant{}, false
	}
	return room, p, true
}
