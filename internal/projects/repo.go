package projects

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
	"github.com/vendorlink/vendorlink-backend/pkg/enums"
	"github.com/vendorlink/vendorlink-backend/pkg/pagination"
)

// Repository manages project persistence. Status transitions and winner
// selection are conditional updates so concurrent writers cannot double-apply
// a transition.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, project *models.Project) error
	Save(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Project, error)
	TransitionStatus(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, from, to enums.ProjectStatus) (bool, error)
	AssignVendor(ctx context.Context, tx *gorm.DB, projectID, vendorID uuid.UUID) (bool, error)
	Delete(ctx context.Context, projectID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a project repository bound to the provided DB.
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

func (r *repository) Create(ctx context.Context, project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *repository) Save(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *repository) ListByBusiness(ctx context.Context, businessID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Project, error) {
	query := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC, id DESC").
		Limit(limit)
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.Ts, cursor.Ts, cursor.ID,
		)
	}
	var list []models.Project
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// TransitionStatus applies from->to only when the row still holds from,
// reporting whether this call won the transition. Lifecycle timestamps ride
// along with the transitions that define them.
func (r *repository) TransitionStatus(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, from, to enums.ProjectStatus) (bool, error) {
	now := time.Now().UTC()
	updates := map[string]any{"status": to, "updated_at": now}
	switch to {
	case enums.ProjectStatusOpen:
		updates["published_at"] = now
	case enums.ProjectStatusCompleted:
		updates["completed_at"] = now
	case enums.ProjectStatusCancelled:
		updates["cancelled_at"] = now
	}

	result := r.conn(tx).WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ? AND status = ?", projectID, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AssignVendor selects the winner only when no winner exists yet. The
// selected_vendor_id guard makes selection first-write-wins under concurrency.
// A project can be assigned straight from open; it never passed in_review when
// it collected no bids.
func (r *repository) AssignVendor(ctx context.Context, tx *gorm.DB, projectID, vendorID uuid.UUID) (bool, error) {
	result := r.conn(tx).WithContext(ctx).
		Model(&models.Project{}).
		Where(
			"id = ? AND status IN ? AND selected_vendor_id IS NULL",
			projectID, []enums.ProjectStatus{enums.ProjectStatusOpen, enums.ProjectStatusInReview},
		).
		Updates(map[string]any{
			"selected_vendor_id": vendorID,
			"status":             enums.ProjectStatusSelected,
			"updated_at":         time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) Delete(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", projectID).
		Delete(&models.Project{}).Error
}

// NextCursor derives the pagination cursor from the last project in a page.
func NextCursor(list []models.Project, limit int) *pagination.Cursor {
	if len(list) < limit || len(list) == 0 {
		return nil
	}
	last := list[len(list)-1]
	return &pagination.Cursor{Ts: last.CreatedAt, ID: last.ID}
}
