package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/vendorlink/vendorlink-backend/pkg/enums"
)

// Bid is a vendor's priced response to a routed project. One active bid
// exists per (project, vendor); resubmission updates in place.
type Bid struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID   uuid.UUID       `gorm:"column:project_id;type:uuid;not null;uniqueIndex:idx_bids_project_vendor" json:"project_id"`
	VendorID    uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null;uniqueIndex:idx_bids_project_vendor;index" json:"vendor_id"`
	AmountCents int64           `gorm:"column:amount_cents;not null" json:"amount_cents"`
	Timeline    string          `gorm:"column:timeline;not null" json:"timeline"`
	Notes       *string         `gorm:"column:notes" json:"notes,omitempty"`
	Status      enums.BidStatus `gorm:"column:status;type:text;not null;default:'submitted'" json:"status"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
