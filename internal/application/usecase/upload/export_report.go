// Package upload contains sales upload use cases.
package upload

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sales-dashboard/backend/internal/application/adapter"
	"github.com/sales-dashboard/backend/internal/domain/analytics"
	domainerror "github.com/sales-dashboard/backend/internal/domain/error"
)

// ExportReportInput represents the input for exporting a report.
type ExportReportInput struct {
	UserID uuid.UUID
	// UploadID selects an upload; nil selects the latest one.
	UploadID *uuid.UUID
}

// ExportReportOutput is a rendered report ready for download.
type ExportReportOutput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportReportUseCase renders a downloadable report of one upload.
type ExportReportUseCase struct {
	uploadRepo adapter.UploadRepository
	renderer   adapter.ReportRenderer
	now        func() time.Time
}

// NewExportReportUseCase creates a new ExportReportUseCase instance.
func NewExportReportUseCase(uploadRepo adapter.UploadRepository, renderer adapter.ReportRenderer) *ExportReportUseCase {
	return &ExportReportUseCase{
		uploadRepo: uploadRepo,
		renderer:   renderer,
		now:        time.Now,
	}
}

// Execute renders the report.
func (uc *ExportReportUseCase) Execute(ctx context.Context, input ExportReportInput) (*ExportReportOutput, error) {
	upload, err := selectUpload(ctx, uc.uploadRepo, input.UserID, input.UploadID)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, domainerror.NewUploadError(
			domainerror.ErrCodeUploadNotFound,
			"No data to export",
			domainerror.ErrUploadNotFound,
		)
	}

	now := uc.now().UTC()
	content, err := uc.renderer.Render(ctx, adapter.ReportInput{
		Upload:      upload,
		Summary:     analytics.Summarize(upload.Records),
		View:        buildView(upload),
		GeneratedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	return &ExportReportOutput{
		Filename:    "sales_report_" + now.Format("20060102") + uc.renderer.Extension(),
		ContentType: uc.renderer.ContentType(),
		Content:     content,
	}, nil
}
