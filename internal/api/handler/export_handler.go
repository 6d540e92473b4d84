package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"zintasa/backend/internal/model"
	"zintasa/backend/internal/repository"
	"zintasa/backend/internal/service"
	"zintasa/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves ledger downloads.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler builds the ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportRequests streams the service-request ledger as an xlsx download.
// GET /export/service_requests?status=&room=
func (h *ExportHandler) ExportRequests(c *gin.Context) {
	filters := repository.RequestFilters{
		Status: model.RequestStatus(c.Query("status")),
		Room:   c.Query("room"),
	}

	buf, filename, err := h.exportSvc.ExportRequests(c.Request.Context(), &filters)
	if err != nil {
		response.Fail(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
