// Package upload contains sales upload use cases.
package upload

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sales-dashboard/backend/internal/application/adapter"
)

// ListUploadsInput represents the input for listing uploads.
type ListUploadsInput struct {
	UserID uuid.UUID
}

// ListUploadsOutput represents the upload history of a user.
type ListUploadsOutput struct {
	Uploads []UploadOverview
}

// ListUploadsUseCase lists a user's uploads, newest first.
type ListUploadsUseCase struct {
	uploadRepo adapter.UploadRepository
}

// NewListUploadsUseCase creates a new ListUploadsUseCase instance.
func NewListUploadsUseCase(uploadRepo adapter.UploadRepository) *ListUploadsUseCase {
	return &ListUploadsUseCase{
		uploadRepo: uploadRepo,
	}
}

// Execute lists the uploads. The newest upload is marked active.
func (uc *ListUploadsUseCase) Execute(ctx context.Context, input ListUploadsInput) (*ListUploadsOutput, error) {
	uploads, err := uc.uploadRepo.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	var activeID uuid.UUID
	if len(uploads) > 0 {
		activeID = uploads[0].ID
	}

	overviews := make([]UploadOverview, 0, len(uploads))
	for _, u := range uploads {
		overviews = append(overviews, newUploadOverview(u, activeID))
	}

	return &ListUploadsOutput{
		Uploads: overviews,
	}, nil
}
