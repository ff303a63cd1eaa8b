package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/vendorlink/vendorlink-backend/pkg/types"
)

// CoverageArea is a named geographic region vendors declare as serviceable.
// Resolution to state codes happens in the coverage resolver.
type CoverageArea struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string           `gorm:"column:name;not null" json:"name"`
	States    types.StringList `gorm:"column:states;type:jsonb;serializer:json" json:"states"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
