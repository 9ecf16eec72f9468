package core

// Comment synchronization. Comments are kept per room, in acceptance
// order, deduplicated by id. Broadcast includes the submitter so one code
// path confirms to the author and informs everyone else.

func (h *Hub) handleAddComment(c *Client, cmd *Command) {
	room, p, ok := h.roomFor(c, cmd.Room)
	if !ok {
		return
	}

	comment := cmd.Comment
	if comment.ID == "" {
		h.sendError(c, ErrCodeBadRequest, "comment id is required")
		return
	}
	if comment.LineNumber < 0 {
		h.sendError(c, ErrCodeBadRequest, "comment line number must be non-negative")
		return
	}
	comment.Room = cmd.Room
	if comment.Author == "" {
		comment.Author = p.Username
	}

	if !room.AddComment(comment) {
		// Reported to the submitter only, never propagated.
		h.sendError(c, ErrCodeDuplicateComment, "comment "+comment.ID+" already exists")
		return
	}

	sent, dropped := room.Broadcast(&Event{
		Kind:    EventComment,
		Room:    cmd.Room,
		Comment: comment,
	})
	h.metrics.Delivered(sent, dropped)

	h.log.Debug().
		Str("room", cmd.Room).
		Str("comment_id", comment.ID).
		Int("line", comment.LineNumber).
		Msg("comment accepted")
}
