package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/vendorlink/vendorlink-backend/pkg/enums"
)

// ActivityRecord is an append-only audit entry for project lifecycle and
// routing events. Rows are never mutated; deletion happens only through the
// project cascade.
type ActivityRecord struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID uuid.UUID            `gorm:"column:project_id;type:uuid;not null;index" json:"project_id"`
	ActorID   *uuid.UUID           `gorm:"column:actor_id;type:uuid" json:"actor_id,omitempty"`
	Action    enums.ActivityAction `gorm:"column:action;type:text;not null" json:"action"`
	Detail    json.RawMessage      `gorm:"column:detail;type:jsonb" json:"detail,omitempty"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
