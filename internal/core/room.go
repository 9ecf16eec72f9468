package core

// Room groups the clients sharing one session. It exists only while it has
// members; the registry drops it when the last one leaves. The room also
// carries the session's append-only comment log, which dies with it.
type Room struct {
	Name string

	members []*member // join order
	byConn  map[string]*member

	comments   []Comment
	commentIDs map[string]struct{}
}

type member struct {
	client      *Client
	participant Participant
}

// NewRoom constructs a room with no members.
func NewRoom(name string) *Room {
	return &Room{
		Name:       name,
		byConn:     make(map[string]*member),
		commentIDs: make(map[string]struct{}),
	}
}

func (r *Room) add(c *Client, p Participant) bool {
	if _, exists := r.byConn[c.ID]; exists {
		return false
	}
	m := &member{client: c, participant: p}
	r.members = append(r.members, m)
	r.byConn[c.ID] = m
	return true
}

func (r *Room) remove(connID string) (Participant, bool) {
	m, exists := r.byConn[connID]
	if !exists {
		return Participant{}, false
	}
	delete(r.byConn, connID)
	for i, other := range r.members {
		if other == m {
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}
	return m.participant, true
}

// Participants returns the member list in join order.
func (r *Room) Participants() []Participant {
	out := make([]Participant, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m.participant)
	}
	return out
}

// Member looks up a member client by connection id.
func (r *Room) Member(connID string) (*Client, bool) {
	m, exists := r.byConn[connID]
	if !exists {
		return nil, false
	}
	return m.client, true
}

// Broadcast sends an event to every member. Returns sent and dropped counts.
func (r *Room) Broadcast(ev *Event) (sent, dropped int) {
	return r.broadcastExcept("", ev)
}

// BroadcastExcept sends an event to every member other than exceptID.
func (r *Room) BroadcastExcept(exceptID string, ev *Event) (sent, dropped int) {
	return r.broadcastExcept(exceptID, ev)
}

func (r *Room) broadcastExcept(exceptID string, ev *Event) (sent, dropped int) {
	for _, m := range r.members {
		if m.client.ID == exceptID {
			continue
		}
		if m.client.trySend(ev) {
			sent++
		} else {
			dropped++
		}
	}
	return sent, dropped
}

// AddComment appends a comment to the room's log. Returns false when a
// comment with the same id was already accepted.
func (r *Room) AddComment(c Comment) bool {
	if _, dup := r.commentIDs[c.ID]; dup {
		return false
	}
	r.commentIDs[c.ID] = struct{}{}
	r.comments = append(r.comments, c)
	return true
}

// Comments returns the room's comment log in acceptance order.
func (r *Room) Comments() []Comment {
	out := make([]Comment, len(r.comments))
	copy(out, r.comments)
	return out
}

// Empty returns true if no members remain.
func (r *Room) Empty() bool {
	return len(r.members) == 0
}
