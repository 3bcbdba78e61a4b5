package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/freshfold/freshfold-server/internal/core"
	"github.com/freshfold/freshfold-server/internal/proto"
	"github.com/freshfold/freshfold-server/internal/store"
)

const defaultHistoryLimit = 50

// RoomHandlers serves chat history from the durable store and live presence
// snapshots from the hub.
type RoomHandlers struct {
	hub   *core.Hub
	store store.Store
	log   *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(hub *core.Hub, st store.Store, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{hub: hub, store: st, log: logger}
}

// ParticipantResponse represents a live room member.
type ParticipantResponse struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	UserType string `json:"userType"`
}

// Messages returns the most recent durable messages of a room, oldest first.
// GET /api/rooms/:room/messages?limit=50
func (h *RoomHandlers) Messages(c *gin.Context) {
	room := c.Param("room")

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 200 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = n
	}

	messages, err := h.store.LoadRecentMessages(c.Request.Context(), room, limit)
	if err != nil {
		h.log.Error().Err(err).Str("room", room).Msg("failed to load messages")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	out := make([]proto.MessagePayload, 0, len(messages))
	for _, msg := range messages {
		out = append(out, messagePayload(msg))
	}
	c.JSON(http.StatusOK, gin.H{"roomId": room, "messages": out})
}

// Participants returns the live participant snapshot of a room.
// GET /api/rooms/:room/participants
func (h *RoomHandlers) Participants(c *gin.Context) {
	room := c.Param("room")

	ids := h.hub.Participants(room)
	out := make([]ParticipantResponse, 0, len(ids))
	for _, id := range ids {
		out = append(out, ParticipantResponse{
			UserID:   id.ID,
			UserName: id.DisplayName,
			UserType: string(id.Kind),
		})
	}
	c.JSON(http.StatusOK, gin.H{"roomId": room, "participants": out})
}
