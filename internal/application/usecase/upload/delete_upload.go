// Package upload contains sales upload use cases.
package upload

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sales-dashboard/backend/internal/application/adapter"
)

// DeleteUploadInput represents the input for deleting an upload.
type DeleteUploadInput struct {
	UserID   uuid.UUID
	UploadID uuid.UUID
}

// DeleteUploadUseCase deletes an upload on behalf of its owner.
type DeleteUploadUseCase struct {
	uploadRepo adapter.UploadRepository
}

// NewDeleteUploadUseCase creates a new DeleteUploadUseCase instance.
func NewDeleteUploadUseCase(uploadRepo adapter.UploadRepository) *DeleteUploadUseCase {
	return &DeleteUploadUseCase{
		uploadRepo: uploadRepo,
	}
}

// Execute deletes the upload. Only the owner may delete it.
func (uc *DeleteUploadUseCase) Execute(ctx context.Context, input DeleteUploadInput) error {
	upload, err := findOwnedUpload(ctx, uc.uploadRepo, input.UserID, input.UploadID)
	if err != nil {
		return err
	}

	if err := uc.uploadRepo.Delete(ctx, upload.ID); err != nil {
		return fmt.Errorf("failed to delete upload: %w", err)
	}

	slog.Info("Upload deleted",
		"user_id", input.UserID,
		"upload_id", upload.ID,
	)
	return nil
}
