// Package upload contains sales upload use cases.
package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sales-dashboard/backend/internal/application/adapter"
	"github.com/sales-dashboard/backend/internal/domain/analytics"
	"github.com/sales-dashboard/backend/internal/domain/entity"
	domainerror "github.com/sales-dashboard/backend/internal/domain/error"
)

// UploadOverview is a listing entry for one upload.
type UploadOverview struct {
	ID           uuid.UUID
	Filename     string
	UploadedAt   time.Time
	Currency     entity.Currency
	Symbol       string
	TotalRevenue decimal.Decimal
	RecordCount  int
	IsActive     bool
}

// newUploadOverview summarizes an upload for listings.
func newUploadOverview(upload *entity.Upload, activeID uuid.UUID) UploadOverview {
	summary := analytics.Summarize(upload.Records)
	return UploadOverview{
		ID:           upload.ID,
		Filename:     upload.Filename,
		UploadedAt:   upload.UploadedAt,
		Currency:     upload.Currency,
		Symbol:       upload.Currency.Symbol(),
		TotalRevenue: summary.TotalRevenue,
		RecordCount:  summary.RecordCount,
		IsActive:     upload.ID == activeID,
	}
}

// findOwnedUpload loads an upload and checks it belongs to userID.
func findOwnedUpload(ctx context.Context, repo adapter.UploadRepository, userID, uploadID uuid.UUID) (*entity.Upload, error) {
	upload, err := repo.FindByID(ctx, uploadID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUploadNotFound) {
			return nil, domainerror.NewUploadError(
				domainerror.ErrCodeUploadNotFound,
				"upload not found",
				domainerror.ErrUploadNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find upload: %w", err)
	}

	if !upload.IsOwnedBy(userID) {
		return nil, domainerror.NewUploadError(
			domainerror.ErrCodeUploadForbidden,
			"you do not have permission to access this upload",
			domainerror.ErrUploadForbidden,
		)
	}

	return upload, nil
}

// selectUpload returns the requested upload, or the latest one when uploadID is nil.
// It returns (nil, nil) when the user has no uploads.
func selectUpload(ctx context.Context, repo adapter.UploadRepository, userID uuid.UUID, uploadID *uuid.UUID) (*entity.Upload, error) {
	if uploadID != nil {
		return findOwnedUpload(ctx, repo, userID, *uploadID)
	}

	upload, err := repo.FindLatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUploadNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest upload: %w", err)
	}
	return upload, nil
}

// buildView computes the chart series. A failure degrades to an empty view
// and never affects the stored upload.
func buildView(upload *entity.Upload) (view *analytics.View) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Failed to build sales views",
				"upload_id", upload.ID,
				"panic", r,
			)
			view = nil
		}
	}()
	return analytics.Build(upload.Records)
}
