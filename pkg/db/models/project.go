package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/vendorlink/vendorlink-backend/pkg/enums"
	"github.com/vendorlink/vendorlink-backend/pkg/types"
)

// Project is a business's posted request for vendor services.
type Project struct {
	ID                  uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BusinessID          uuid.UUID             `gorm:"column:business_id;type:uuid;not null;index" json:"business_id"`
	Title               string                `gorm:"column:title;not null" json:"title"`
	Description         string                `gorm:"column:description;not null" json:"description"`
	ServiceCategoryID   uuid.UUID             `gorm:"column:service_category_id;type:uuid;not null" json:"service_category_id"`
	BudgetMinCents      *int64                `gorm:"column:budget_min_cents" json:"budget_min_cents,omitempty"`
	BudgetMaxCents      *int64                `gorm:"column:budget_max_cents" json:"budget_max_cents,omitempty"`
	City                *string               `gorm:"column:city" json:"city,omitempty"`
	State               string                `gorm:"column:state;not null" json:"state"`
	PostalCode          *string               `gorm:"column:postal_code" json:"postal_code,omitempty"`
	DesiredStartDate    *time.Time            `gorm:"column:desired_start_date" json:"desired_start_date,omitempty"`
	DesiredEndDate      *time.Time            `gorm:"column:desired_end_date" json:"desired_end_date,omitempty"`
	SpecialRequirements *string               `gorm:"column:special_requirements" json:"special_requirements,omitempty"`
	Details             *types.ProjectDetails `gorm:"column:details;type:jsonb;serializer:json" json:"details,omitempty"`
	Status              enums.ProjectStatus   `gorm:"column:status;type:text;not null;default:'draft'" json:"status"`
	SelectedVendorID    *uuid.UUID            `gorm:"column:selected_vendor_id;type:uuid" json:"selected_vendor_id,omitempty"`
	PublishedAt         *time.Time            `gorm:"column:published_at" json:"published_at,omitempty"`
	CompletedAt         *time.Time            `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CancelledAt         *time.Time            `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`
	CreatedAt           time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
