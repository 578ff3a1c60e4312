// Package upload contains sales upload use cases.
package upload

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sales-dashboard/backend/internal/application/adapter"
	"github.com/sales-dashboard/backend/internal/domain/analytics"
	"github.com/sales-dashboard/backend/internal/domain/entity"
)

// GetDashboardInput represents the input for the dashboard.
type GetDashboardInput struct {
	UserID uuid.UUID
	// UploadID selects an upload; nil selects the latest one.
	UploadID *uuid.UUID
}

// GetDashboardOutput represents the dashboard of a user.
// Selected is nil when the user has no uploads.
type GetDashboardOutput struct {
	Uploads  []UploadOverview
	Selected *entity.Upload
	Summary  analytics.Summary
	Series   map[string][]analytics.Point
}

// GetDashboardUseCase assembles the upload history and the chart series of one upload.
type GetDashboardUseCase struct {
	uploadRepo adapter.UploadRepository
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(uploadRepo adapter.UploadRepository) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		uploadRepo: uploadRepo,
	}
}

// Execute builds the dashboard.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, input GetDashboardInput) (*GetDashboardOutput, error) {
	selected, err := selectUpload(ctx, uc.uploadRepo, input.UserID, input.UploadID)
	if err != nil {
		return nil, err
	}

	output := &GetDashboardOutput{
		Uploads: []UploadOverview{},
		Series:  map[string][]analytics.Point{},
	}
	if selected == nil {
		return output, nil
	}

	uploads, err := uc.uploadRepo.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	for _, u := range uploads {
		output.Uploads = append(output.Uploads, newUploadOverview(u, selected.ID))
	}

	output.Selected = selected
	output.Summary = analytics.Summarize(selected.Records)
	output.Series = buildView(selected).Series()

	return output, nil
}
