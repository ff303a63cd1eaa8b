package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/vendorlink/vendorlink-backend/pkg/enums"
)

// RoutingRecord is the durable record that a project was offered to a vendor.
// The (project_id, vendor_id) pair is unique; repeated routing passes upsert.
type RoutingRecord struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID uuid.UUID           `gorm:"column:project_id;type:uuid;not null;uniqueIndex:idx_routing_project_vendor" json:"project_id"`
	VendorID  uuid.UUID           `gorm:"column:vendor_id;type:uuid;not null;uniqueIndex:idx_routing_project_vendor;index" json:"vendor_id"`
	Status    enums.RoutingStatus `gorm:"column:status;type:text;not null;default:'routed'" json:"status"`
	RoutedAt  time.Time           `gorm:"column:routed_at;not null" json:"routed_at"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
