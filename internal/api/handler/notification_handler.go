package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zintasa/backend/internal/dto"
	"zintasa/backend/internal/service"
	"zintasa/backend/pkg/response"
)

// NotificationHandler serves the staff dashboard feed.
type NotificationHandler struct {
	notifSvc service.NotificationService
}

// NewNotificationHandler builds the NotificationHandler.
func NewNotificationHandler(notifSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifSvc: notifSvc}
}

// List returns active notifications, newest first.
// GET /notifications
func (h *NotificationHandler) List(c *gin.Context) {
	rows, err := h.notifSvc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, gin.H{"notifications": rows})
}

// Dismiss hides one entry from every staff dashboard.
// POST /notifications/dismiss
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	var req dto.DismissNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailStatus(c, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.notifSvc.Dismiss(c.Request.Context(), req.ID); err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, nil)
}
