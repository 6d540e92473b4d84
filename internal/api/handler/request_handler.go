package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zintasa/backend/internal/dto"
	"zintasa/backend/internal/service"
	"zintasa/backend/pkg/response"
)

// RequestHandler serves the service-request ledger.
type RequestHandler struct {
	requestSvc service.RequestService
}

// NewRequestHandler builds the RequestHandler.
func NewRequestHandler(requestSvc service.RequestService) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc}
}

// List returns the caller-scoped ledger view.
// GET /service_requests?status=&room=
func (h *RequestHandler) List(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	var q dto.RequestListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.FailStatus(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	rows, err := h.requestSvc.List(c.Request.Context(), &sess.Identity, &q)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, gin.H{"requests": rows})
}

// Create files a new service request.
// POST /service_requests
func (h *RequestHandler) Create(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailStatus(c, http.StatusBadRequest, "request_type is required")
		return
	}

	created, err := h.requestSvc.Create(c.Request.Context(), &sess.Identity, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Created(c, gin.H{"request": created})
}

// Update changes status and/or assignment. Staff and admin only;
// enforced in the router.
// PUT /service_requests
func (h *RequestHandler) Update(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	var req dto.UpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailStatus(c, http.StatusBadRequest, "id is required")
		return
	}

	updated, err := h.requestSvc.Update(c.Request.Context(), &sess.Identity, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, gin.H{"request": updated})
}

// Cancel withdraws a request.
// DELETE /service_requests?id=
func (h *RequestHandler) Cancel(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	id := c.Query("id")
	if id == "" {
		response.FailStatus(c, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.requestSvc.Cancel(c.Request.Context(), &sess.Identity, id); err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, nil)
}
