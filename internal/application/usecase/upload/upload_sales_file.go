// Package upload contains sales upload use cases.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sales-dashboard/backend/internal/application/adapter"
	"github.com/sales-dashboard/backend/internal/domain/analytics"
	"github.com/sales-dashboard/backend/internal/domain/entity"
	domainerror "github.com/sales-dashboard/backend/internal/domain/error"
	"github.com/sales-dashboard/backend/internal/domain/ingestion"
)

// UploadSalesFileInput represents the input for uploading a sales file.
type UploadSalesFileInput struct {
	UserID   uuid.UUID
	Filename string
	Content  io.Reader
}

// UploadSalesFileOutput represents the output of an accepted upload.
type UploadSalesFileOutput struct {
	Upload  *entity.Upload
	Summary analytics.Summary
}

// UploadSalesFileUseCase validates, normalizes and stores an uploaded sales table.
type UploadSalesFileUseCase struct {
	uploadRepo adapter.UploadRepository
	reader     adapter.TableReader
	metrics    adapter.UploadMetrics
}

// NewUploadSalesFileUseCase creates a new UploadSalesFileUseCase instance.
func NewUploadSalesFileUseCase(
	uploadRepo adapter.UploadRepository,
	reader adapter.TableReader,
	metrics adapter.UploadMetrics,
) *UploadSalesFileUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UploadSalesFileUseCase{
		uploadRepo: uploadRepo,
		reader:     reader,
		metrics:    metrics,
	}
}

// Execute ingests the file. A rejected file is never persisted.
func (uc *UploadSalesFileUseCase) Execute(ctx context.Context, input UploadSalesFileInput) (*UploadSalesFileOutput, error) {
	filename := filepath.Base(strings.TrimSpace(input.Filename))
	if input.Content == nil || filename == "" || filename == "." || filename == string(filepath.Separator) {
		return nil, uc.reject(domainerror.NewUploadError(
			domainerror.ErrCodeNoFileSelected,
			"No file selected",
			domainerror.ErrNoFileSelected,
		))
	}

	if !uc.reader.Supports(filename) {
		return nil, uc.reject(domainerror.NewUploadError(
			domainerror.ErrCodeInvalidFileType,
			"Invalid file type",
			domainerror.ErrInvalidFileType,
		))
	}

	table, err := uc.reader.Read(filename, input.Content)
	if err != nil {
		slog.Error("Failed to read sales file",
			"user_id", input.UserID,
			"filename", filename,
			"error", err,
		)
		return nil, uc.reject(domainerror.NewProcessingFailure(err))
	}

	result, err := ingestion.Process(table)
	if err != nil {
		var uploadErr *domainerror.UploadError
		if !errors.As(err, &uploadErr) {
			uploadErr = domainerror.NewProcessingFailure(err)
		}
		slog.Info("Sales file rejected",
			"user_id", input.UserID,
			"filename", filename,
			"code", uploadErr.Code,
			"reason", uploadErr.Message,
		)
		return nil, uc.reject(uploadErr)
	}

	upload := entity.NewUpload(input.UserID, filename, result.Currency, result.Headers, result.Records)
	if err := uc.uploadRepo.Create(ctx, upload); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	uc.metrics.UploadAccepted(len(upload.Records))
	slog.Info("Sales file uploaded",
		"user_id", input.UserID,
		"upload_id", upload.ID,
		"filename", filename,
		"currency", upload.Currency,
		"records", len(upload.Records),
	)

	return &UploadSalesFileOutput{
		Upload:  upload,
		Summary: analytics.Summarize(upload.Records),
	}, nil
}

func (uc *UploadSalesFileUseCase) reject(err *domainerror.UploadError) error {
	uc.metrics.UploadRejected(string(err.Code))
	return err
}

type noopMetrics struct{}

func (noopMetrics) UploadAccepted(int)    {}
func (noopMetrics) UploadRejected(string) {}
