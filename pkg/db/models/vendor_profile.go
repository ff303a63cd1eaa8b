package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/vendorlink/vendorlink-backend/pkg/types"
)

// VendorProfile holds a vendor's declared capabilities, coverage, and approval gate.
// Exactly one profile exists per vendor identity.
type VendorProfile struct {
	ID                 uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VendorID           uuid.UUID      `gorm:"column:vendor_id;type:uuid;not null;uniqueIndex" json:"vendor_id"`
	CompanyName        string         `gorm:"column:company_name;not null" json:"company_name"`
	ServiceCategoryIDs types.UUIDList `gorm:"column:service_category_ids;type:jsonb;serializer:json" json:"service_category_ids"`
	CoverageAreaIDs    types.UUIDList `gorm:"column:coverage_area_ids;type:jsonb;serializer:json" json:"coverage_area_ids"`
	IsApproved         bool           `gorm:"column:is_approved;not null;default:false" json:"is_approved"`
	CreatedAt          time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
