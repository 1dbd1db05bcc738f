package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/spacesync-api/internal/models"
	appErrors "github.com/noah-isme/spacesync-api/pkg/errors"
	"github.com/noah-isme/spacesync-api/pkg/export"
	"github.com/noah-isme/spacesync-api/pkg/jobs"
	"github.com/noah-isme/spacesync-api/pkg/storage"
)

type auditTrail interface {
	ListAuditLogs(ctx context.Context, page, size int) ([]models.AuditLog, int, error)
}

// ExportDocument is a rendered export ready to stream to the client.
type ExportDocument struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the audit trail into downloadable documents. Exports
// read the repository directly so they always see the full, fresh trail.
type ExportService struct {
	audits  auditTrail
	archive *jobs.Queue
	files   *storage.Archive
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService instantiates ExportService. A nil archive queue disables
// archiving; documents are still streamed to the caller. files is the
// directory the archive worker writes into, nil when archiving is off.
func NewExportService(audits auditTrail, archive *jobs.Queue, files *storage.Archive, logger *zap.Logger, now func() time.Time) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &ExportService{
		audits:  audits,
		archive: archive,
		files:   files,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
		now:     now,
	}
}

// AuditLogs renders the complete audit trail in the requested format,
// "csv" or "pdf".
func (s *ExportService) AuditLogs(ctx context.Context, format string) (*ExportDocument, error) {
	logs, _, err := s.audits.ListAuditLogs(ctx, 1, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load audit trail")
	}

	data := export.Dataset{
		Title:   "Override Audit Trail",
		Headers: []string{"Timestamp", "Room", "Action", "User"},
		Rows:    make([][]string, 0, len(logs)),
	}
	for _, entry := range logs {
		data.Rows = append(data.Rows, []string{
			entry.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			entry.RoomName,
			entry.Action,
			entry.User,
		})
	}

	stamp := s.now().UTC().Format("20060102-150405")
	var doc *ExportDocument
	switch format {
	case "csv":
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		doc = &ExportDocument{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("audit-logs-%s.csv", stamp),
		}
	case "pdf":
		content, err := s.pdf.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		doc = &ExportDocument{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("audit-logs-%s.pdf", stamp),
		}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	if s.archive != nil {
		task := jobs.Task{ID: uuid.NewString(), Kind: "audit-export", Payload: doc}
		if err := s.archive.Submit(task); err != nil {
			s.logger.Warn("failed to queue export archive", zap.String("filename", doc.Filename), zap.Error(err))
		}
	}
	return doc, nil
}

// Archives lists the export files retained on disk by the archive worker,
// sorted by name. The list is empty when archiving is disabled.
func (s *ExportService) Archives() ([]string, error) {
	if s.files == nil {
		return []string{}, nil
	}
	names, err := s.files.List()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list archived exports")
	}
	return names, nil
}
