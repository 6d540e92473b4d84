package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zintasa/backend/internal/dto"
	"zintasa/backend/internal/model"
	"zintasa/backend/internal/service"
	"zintasa/backend/pkg/response"
)

// MessageHandler serves the room message board.
type MessageHandler struct {
	messageSvc service.MessageService
}

// NewMessageHandler builds the MessageHandler.
func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// List returns the caller-scoped thread, or unread counts per room when
// ?unread=true is set (staff dashboards only).
// GET /messages?room=&unread=
func (h *MessageHandler) List(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	if unread := c.Query("unread"); unread == "true" || unread == "1" {
		if sess.Role == model.RoleGuest {
			response.FailStatus(c, http.StatusForbidden, "insufficient permissions")
			return
		}
		rooms, err := h.messageSvc.UnreadRoomCounts(c.Request.Context())
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, gin.H{"rooms": rooms})
		return
	}

	messages, err := h.messageSvc.List(c.Request.Context(), &sess.Identity, c.Query("room"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, gin.H{"messages": messages})
}

// Send posts into a room thread.
// POST /messages
func (h *MessageHandler) Send(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailStatus(c, http.StatusBadRequest, "message is required")
		return
	}

	sent, err := h.messageSvc.Send(c.Request.Context(), &sess.Identity, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Created(c, gin.H{"message": sent})
}
