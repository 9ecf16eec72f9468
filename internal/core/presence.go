package core

// Presence: join and disconnect handling. Within one room the joined and
// disconnected events reach all current members in the order the registry
// mutation happened, because both run inside the hub loop.

func (h *Hub) handleJoin(c *Client, cmd *Command) {
	if cmd.Room == "" || cmd.Username == "" {
		h.sendError(c, ErrCodeBadRequest, "room and username are required")
		return
	}

	room, participants, cerr := h.registry.Join(c, cmd.Room, cmd.Username)
	if cerr != nil {
		h.sendError(c, cerr.Code, cerr.Message)
		return
	}

	// Everyone, newcomer included, gets the full updated list.
	sent, dropped := room.Broadcast(&Event{
		Kind:         EventJoined,
		Room:         cmd.Room,
		Participants: participants,
		Username:     cmd.Username,
		ConnID:       c.ID,
	})
	h.metrics.Delivered(sent, dropped)

	h.log.Info().
		Str("room", cmd.Room).
		Str("conn_id", c.ID).
		Str("username", cmd.Username).
		Int("members", len(participants)).
		Msg("participant joined")
}

func (h *Hub) handleDisconnect(c *Client) {
	p, room, ok := h.registry.Leave(c.ID)
	if ok && room != nil {
		// The departed connection is already out of the member list.
		sent, dropped := room.Broadcast(&Event{
			Kind:     EventDisconnected,
			Room:     p.Room,
			Username: p.Username,
			ConnID:   p.ConnID,
		})
		h.metrics.Delivered(sent, dropped)

		h.log.Info().
			Str("room", p.Room).
			Str("conn_id", p.ConnID).
			Str("username", p.Username).
			Msg("participant disconnected")
	}
	close(c.Events)
}
