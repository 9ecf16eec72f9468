package core

// Registry maps live connections to participants and indexes rooms. It is
// owned by the hub run loop; nothing outside that goroutine touches it.
type Registry struct {
	byConn map[string]Participant
	rooms  map[string]*Room
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byConn: make(map[string]Participant),
		rooms:  make(map[string]*Room),
	}
}

// Join registers the connection into a room and returns the room and the
// full post-join participant list. A connection that is already registered
// is rejected; its existing session is left untouched.
func (reg *Registry) Join(c *Client, roomID, username string) (*Room, []Participant, *CoreError) {
	if _, exists := reg.byConn[c.ID]; exists {
		return nil, nil, coreError(ErrCodeAlreadyJoined, "connection already joined a room")
	}

	room, exists := reg.rooms[roomID]
	if !exists {
		room = NewRoom(roomID)
		reg.rooms[roomID] = room
	}

	p := Participant{ConnID: c.ID, Username: username, Room: roomID}
	room.add(c, p)
	reg.byConn[c.ID] = p

	return room, room.Participants(), nil
}

// Leave removes the connection's participant record. It is a no-op for
// connections that never joined, so duplicate disconnect signals are safe.
func (reg *Registry) Leave(connID string) (Participant, *Room, bool) {
	p, exists := reg.byConn[connID]
	if !exists {
		return Participant{}, nil, false
	}
	delete(reg.byConn, connID)

	room := reg.rooms[p.Room]
	if room != nil {
		room.remove(connID)
		if room.Empty() {
			delete(reg.rooms, p.Room)
		}
	}
	return p, room, true
}

// MembersOf returns the participant list for a room, in join order. A room
// with no members yields an empty list.
func (reg *Registry) MembersOf(roomID string) []Participant {
	room, exists := reg.rooms[roomID]
	if !exists {
		return nil
	}
	return room.Participants()
}

// RoomOf resolves the room a connection is registered in.
func (reg *Registry) RoomOf(connID string) (*Room, Participant, bool) {
	p, exists := reg.byConn[connID]
	if !exists {
		return nil, Participant{}, false
	}
	room := reg.rooms[p.Room]
	if room == nil {
		return nil, Participant{}, false
	}
	return room, p, true
}
