package directory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
)

// Repository manages persistence for vendor capability profiles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, profile *models.VendorProfile) (*models.VendorProfile, error)
	FindByVendorID(ctx context.Context, vendorID uuid.UUID) (*models.VendorProfile, error)
	Save(ctx context.Context, profile *models.VendorProfile) error
	SetApproval(ctx context.Context, vendorID uuid.UUID, approved bool) error
	ListApproved(ctx context.Context) ([]models.VendorProfile, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a directory repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, profile *models.VendorProfile) (*models.VendorProfile, error) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *repository) FindByVendorID(ctx context.Context, vendorID uuid.UUID) (*models.VendorProfile, error) {
	var profile models.VendorProfile
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save writes the full profile row; the serializer-backed list columns only
// round-trip correctly through model writes, not map updates.
func (r *repository) Save(ctx context.Context, profile *models.VendorProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *repository) SetApproval(ctx context.Context, vendorID uuid.UUID, approved bool) error {
	return r.db.WithContext(ctx).
		Model(&models.VendorProfile{}).
		Where("vendor_id = ?", vendorID).
		Update("is_approved", approved).Error
}

func (r *repository) ListApproved(ctx context.Context) ([]models.VendorProfile, error) {
	var profiles []models.VendorProfile
	err := r.db.WithContext(ctx).
		Where("is_approved = ?", true).
		Order("created_at ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
