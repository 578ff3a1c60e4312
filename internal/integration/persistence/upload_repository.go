package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sales-dashboard/backend/internal/application/adapter"
	"github.com/sales-dashboard/backend/internal/domain/entity"
	domainerror "github.com/sales-dashboard/backend/internal/domain/error"
	"github.com/sales-dashboard/backend/internal/integration/persistence/model"
)

// uploadRepository implements the adapter.UploadRepository interface.
type uploadRepository struct {
	db *gorm.DB
}

// NewUploadRepository creates a new upload repository instance.
func NewUploadRepository(db *gorm.DB) adapter.UploadRepository {
	return &uploadRepository{
		db: db,
	}
}

// Create persists a new upload with all of its records.
func (r *uploadRepository) Create(ctx context.Context, upload *entity.Upload) error {
	uploadModel := model.UploadFromEntity(upload)
	return r.db.WithContext(ctx).Create(uploadModel).Error
}

// FindByID retrieves an upload by its ID.
func (r *uploadRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Upload, error) {
	var uploadModel model.UploadModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&uploadModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrUploadNotFound
		}
		return nil, result.Error
	}
	return uploadModel.ToEntity(), nil
}

// FindLatestByUser retrieves the most recent upload of a user.
func (r *uploadRepository) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*entity.Upload, error) {
	var uploadModel model.UploadModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		First(&uploadModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrUploadNotFound
		}
		return nil, result.Error
	}
	return uploadModel.ToEntity(), nil
}

// ListByUser retrieves all uploads of a user, newest first.
func (r *uploadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Upload, error) {
	var uploadModels []model.UploadModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&uploadModels)
	if result.Error != nil {
		return nil, result.Error
	}

	uploads := make([]*entity.Upload, len(uploadModels))
	for i := range uploadModels {
		uploads[i] = uploadModels[i].ToEntity()
	}
	return uploads, nil
}

// Delete removes an upload and its records.
func (r *uploadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.UploadModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrUploadNotFound
	}
	return nil
}
