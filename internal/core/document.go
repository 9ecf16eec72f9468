package core

// Document synchronization. The server relays full snapshots verbatim and
// keeps no copy; whichever snapshot is relayed last wins.

func (h *Hub) handleCodeChange(c *Client, cmd *Command) {
	room, _, ok := h.roomFor(c, cmd.Room)
	if !ok {
		return
	}

	// Sender excluded: it already has this text, and echoing it back would
	// feed the client's change detection.
	sent, dropped := room.BroadcastExcept(c.ID, &Event{
		Kind: EventCodeChange,
		Room: cmd.Room,
		Code: cmd.Code,
	})
	h.metrics.Delivered(sent, dropped)
}

func (h *Hub) handleSyncCode(c *Client, cmd *Command) {
	room, _, ok := h.registry.RoomOf(c.ID)
	if !ok {
		h.sendError(c, ErrCodeNotInRoom, "join a room first")
		return
	}

	target, ok := room.Member(cmd.TargetID)
	if !ok {
		h.sendError(c, ErrCodeBadRequest, "unknown target connection "+cmd.TargetID)
		return
	}
	if target.trySend(&Event{Kind: EventCodeChange, Room: room.Name, Code: cmd.Code}) {
		h.metrics.Delivered(1, 0)
	} else {
		h.metrics.Delivered(0, 1)
	}
}
