package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/codepairhq/codepair-server/internal/core"
	"github.com/codepairhq/codepair-server/internal/proto"
)

// RoomHandlers provides HTTP handlers for read-only room queries.
type RoomHandlers struct {
	hub *core.Hub
	log *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(hub *core.Hub, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		hub: hub,
		log: logger,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ParticipantsResponse lists the current members of a room.
type ParticipantsResponse struct {
	Room         string                  `json:"room"`
	Participants []proto.ParticipantData `json:"participants"`
}

// Participants returns who is currently in a room.
// GET /api/rooms/:room/participants
func (h *RoomHandlers) Participants(c *gin.Context) {
	room := c.Param("room")

	members, err := h.hub.Members(c.Request.Context(), room)
	if err != nil {
		if errors.Is(err, core.ErrHubStopped) {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "server shutting down"})
			return
		}
		h.log.Error().Err(err).Str("room", room).Msg("members query failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	participants := make([]proto.ParticipantData, 0, len(members))
	for _, p := range members {
		participants = append(participants, proto.ParticipantData{
			ConnectionID: p.ConnID,
			Username:     p.Username,
		})
	}

	c.JSON(http.StatusOK, ParticipantsResponse{Room: room, Participants: participants})
}
