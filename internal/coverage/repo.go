package coverage

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
)

// Repository reads coverage-area definitions.
type Repository interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.CoverageArea, error)
	List(ctx context.Context) ([]models.CoverageArea, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a coverage repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.CoverageArea, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var areas []models.CoverageArea
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

func (r *repository) List(ctx context.Context) ([]models.CoverageArea, error) {
	var areas []models.CoverageArea
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}
