// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/sales-dashboard/backend/internal/domain/entity"
)

// UploadRepository stores accepted sales uploads.
// Uploads are written once and never updated.
type UploadRepository interface {
	// Create persists a new upload with all of its records.
	Create(ctx context.Context, upload *entity.Upload) error

	// FindByID retrieves an upload by its ID regardless of owner.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Upload, error)

	// FindLatestByUser retrieves the most recent upload of a user.
	FindLatestByUser(ctx context.Context, userID uuid.UUID) (*entity.Upload, error)

	// ListByUser retrieves all uploads of a user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Upload, error)

	// Delete removes an upload and its records.
	Delete(ctx context.Context, id uuid.UUID) error
}
