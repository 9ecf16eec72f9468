package core

// Chat relay: stateless fan-out to the whole room, sender included so every
// member observes the same local ordering. The room id is explicit on the
// command; it is never inferred from the connection's room set.

func (h *Hub) handleChat(c *Client, cmd *Command) {
	room, p, ok := h.roomFor(c, cmd.Room)
	if !ok {
		return
	}

	sent, dropped := room.Broadcast(&Event{
		Kind: EventChat,
		Room: cmd.Room,
		Chat: ChatMessage{
			Room:     cmd.Room,
			Username: p.Username,
			Text:     cmd.Text,
		},
	})
	h.metrics.Delivered(sent, dropped)
}
