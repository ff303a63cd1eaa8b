package projects

import (
	"time"

	"github.com/google/uuid"

	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
	"github.com/vendorlink/vendorlink-backend/pkg/enums"
	"github.com/vendorlink/vendorlink-backend/pkg/types"
)

// Actor identifies who is performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role enums.ActorRole
}

// CreateInput carries a new draft project.
type CreateInput struct {
	BusinessID          uuid.UUID
	Title               string
	Description         string
	ServiceCategoryID   uuid.UUID
	BudgetMinCents      *int64
	BudgetMaxCents      *int64
	City                *string
	State               string
	PostalCode          *string
	DesiredStartDate    *time.Time
	DesiredEndDate      *time.Time
	SpecialRequirements *string
	Details             *types.ProjectDetails
}

// ListInput carries business project listing parameters.
type ListInput struct {
	BusinessID uuid.UUID
	Limit      int
	Cursor     string
}

// ListOutput is one page of a business's projects.
type ListOutput struct {
	Projects   []models.Project
	NextCursor string
}
