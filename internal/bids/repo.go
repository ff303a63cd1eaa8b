package bids

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
	"github.com/vendorlink/vendorlink-backend/pkg/enums"
)

// Repository manages the bid ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, bid *models.Bid) error
	Save(ctx context.Context, bid *models.Bid) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Bid, error)
	FindByProjectAndVendor(ctx context.Context, projectID, vendorID uuid.UUID) (*models.Bid, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Bid, error)
	UpdateStatusForVendor(ctx context.Context, tx *gorm.DB, projectID, vendorID uuid.UUID, status enums.BidStatus) error
	UpdateStatusForOthers(ctx context.Context, tx *gorm.DB, projectID, vendorID uuid.UUID, status enums.BidStatus) error
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a bid repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *repository) Create(ctx context.Context, bid *models.Bid) error {
	if bid.ID == uuid.Nil {
		bid.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(bid).Error
}

func (r *repository) Save(ctx context.Context, bid *models.Bid) error {
	return r.db.WithContext(ctx).Save(bid).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	var bid models.Bid
	if err := r.db.WithContext(ctx).First(&bid, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *repository) FindByProjectAndVendor(ctx context.Context, projectID, vendorID uuid.UUID) (*models.Bid, error) {
	var bid models.Bid
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND vendor_id = ?", projectID, vendorID).
		First(&bid).Error
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *repository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Bid, error) {
	var list []models.Bid
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) UpdateStatusForVendor(ctx context.Context, tx *gorm.DB, projectID, vendorID uuid.UUID, status enums.BidStatus) error {
	return r.conn(tx).WithContext(ctx).
		Model(&models.Bid{}).
		Where("project_id = ? AND vendor_id = ?", projectID, vendorID).
		Update("status", status).Error
}

func (r *repository) UpdateStatusForOthers(ctx context.Context, tx *gorm.DB, projectID, vendorID uuid.UUID, status enums.BidStatus) error {
	return r.conn(tx).WithContext(ctx).
		Model(&models.Bid{}).
		Where("project_id = ? AND vendor_id <> ?", projectID, vendorID).
		Update("status", status).Error
}

func (r *repository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&models.Bid{}).Error
}
