package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"zintasa/backend/internal/model"
	"zintasa/backend/internal/repository"
	"zintasa/backend/pkg/apperr"
)

const exportRowLimit = 5000

// ExportService renders ledger data to downloadable files. Content is
// returned as a bytes.Buffer; the handler layer sets the response
// headers and streams it out.
type ExportService interface {
	// ExportRequests renders the service-request ledger to an .xlsx
	// workbook. Returns the content, a suggested filename and an error.
	ExportRequests(ctx context.Context, q *repository.RequestFilters) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService builds the ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportRequests(ctx context.Context, q *repository.RequestFilters) (*bytes.Buffer, string, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, "", apperr.Validation("unknown status filter %q", q.Status)
	}

	rows, err := s.repo.Request.ListFiltered(ctx, *q, exportRowLimit)
	if err != nil {
		s.logger.Error("load requests for export failed", zap.Error(err))
		return nil, "", apperr.Storage(err)
	}
	if len(rows) == 0 {
		return nil, "", apperr.NotFound("no service requests match the export filters")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Service Requests"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("create export sheet failed", zap.Error(err))
		return nil, "", apperr.Storage(err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 38)
	f.SetColWidth(sheetName, "B", "C", 14)
	f.SetColWidth(sheetName, "D", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 40)
	f.SetColWidth(sheetName, "G", "G", 20)
	f.SetColWidth(sheetName, "H", "J", 20)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"ID", "Room", "Type", "Priority", "Status", "Description", "Assigned To", "Created", "Completed"}
	for i, h := range headers {
		cellRef, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cellRef, h)
		f.SetCellStyle(sheetName, cellRef, cellRef, headerStyle)
	}

	for i := range rows {
		r := &rows[i]
		values := []interface{}{
			r.RequestID,
			r.RoomNumber,
			string(r.RequestType),
			string(r.Priority),
			string(r.Status),
			r.Description,
			assigneeLabel(r),
			r.CreatedAt.Format("2006-01-02 15:04"),
			completedLabel(r),
		}
		for col, v := range values {
			cellRef, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheetName, cellRef, v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write export workbook failed", zap.Error(err))
		return nil, "", apperr.Storage(err)
	}

	filename := fmt.Sprintf("service_requests_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}

func assigneeLabel(r *model.ServiceRequest) string {
	if r.Assignee != nil {
		return r.Assignee.DisplayName
	}
	if r.AssignedTo != nil {
		return *r.AssignedTo
	}
	return ""
}

func completedLabel(r *model.ServiceRequest) string {
	if r.CompletedAt == nil {
		return ""
	}
	return r.CompletedAt.Format("2006-01-02 15:04")
}
