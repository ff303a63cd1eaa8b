package routing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
	"github.com/vendorlink/vendorlink-backend/pkg/enums"
	"github.com/vendorlink/vendorlink-backend/pkg/pagination"
)

// Lead is a routing record joined with its project, as a vendor sees it.
type Lead struct {
	Routing models.RoutingRecord `json:"routing"`
	Project models.Project       `json:"project"`
}

// Repository manages the routing ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	BulkUpsert(ctx context.Context, records []models.RoutingRecord) error
	FindByProjectAndVendor(ctx context.Context, projectID, vendorID uuid.UUID) (*models.RoutingRecord, error)
	UpdateStatus(ctx context.Context, projectID, vendorID uuid.UUID, status enums.RoutingStatus) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.RoutingRecord, error)
	ListLeads(ctx context.Context, vendorID uuid.UUID, cursor *pagination.Cursor, limit int) ([]Lead, error)
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a routing repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// BulkUpsert writes routing records in one statement. Re-routing a project is
// idempotent: an existing (project, vendor) row keeps its id, status, and
// original routed_at.
func (r *repository) BulkUpsert(ctx context.Context, records []models.RoutingRecord) error {
	if len(records) == 0 {
		return nil
	}
	for i := range records {
		if records[i].ID == uuid.Nil {
			records[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "vendor_id"}},
			DoNothing: true,
		}).
		Create(&records).Error
}

func (r *repository) FindByProjectAndVendor(ctx context.Context, projectID, vendorID uuid.UUID) (*models.RoutingRecord, error) {
	var record models.RoutingRecord
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND vendor_id = ?", projectID, vendorID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) UpdateStatus(ctx context.Context, projectID, vendorID uuid.UUID, status enums.RoutingStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.RoutingRecord{}).
		Where("project_id = ? AND vendor_id = ?", projectID, vendorID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.RoutingRecord, error) {
	var records []models.RoutingRecord
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("routed_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListLeads returns the vendor's routed projects newest-first with cursor
// pagination over (routed_at, id).
func (r *repository) ListLeads(ctx context.Context, vendorID uuid.UUID, cursor *pagination.Cursor, limit int) ([]Lead, error) {
	var records []models.RoutingRecord
	query := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("routed_at DESC, id DESC").
		Limit(limit)
	if cursor != nil {
		query = query.Where(
			"(routed_at < ?) OR (routed_at = ? AND id < ?)",
			cursor.Ts, cursor.Ts, cursor.ID,
		)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []Lead{}, nil
	}

	projectIDs := make([]uuid.UUID, 0, len(records))
	for _, record := range records {
		projectIDs = append(projectIDs, record.ProjectID)
	}
	var projects []models.Project
	if err := r.db.WithContext(ctx).
		Where("id IN ?", projectIDs).
		Find(&projects).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Project, len(projects))
	for _, project := range projects {
		byID[project.ID] = project
	}

	leads := make([]Lead, 0, len(records))
	for _, record := range records {
		project, ok := byID[record.ProjectID]
		if !ok {
			continue
		}
		leads = append(leads, Lead{Routing: record, Project: project})
	}
	return leads, nil
}

func (r *repository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&models.RoutingRecord{}).Error
}

// NextCursor derives the pagination cursor from the last lead in a page.
func NextCursor(leads []Lead, limit int) *pagination.Cursor {
	if len(leads) < limit || len(leads) == 0 {
		return nil
	}
	last := leads[len(leads)-1]
	return &pagination.Cursor{Ts: last.Routing.RoutedAt, ID: last.Routing.ID}
}
