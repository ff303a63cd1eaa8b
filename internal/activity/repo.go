package activity

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
)

// Repository manages persistence for the append-only activity trail.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, record *models.ActivityRecord) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ActivityRecord, error)
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an activity repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, record *models.ActivityRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ActivityRecord, error) {
	var records []models.ActivityRecord
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteByProject exists only to serve the project cascade delete.
func (r *repository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&models.ActivityRecord{}).Error
}
