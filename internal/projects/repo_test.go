package projects

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
	"github.com/vendorlink/vendorlink-backend/pkg/enums"
)

func setupProjectsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	projects := `
CREATE TABLE IF NOT EXISTS projects (
  id TEXT PRIMARY KEY,
  business_id TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  service_category_id TEXT NOT NULL,
  budget_min_cents INTEGER,
  budget_max_cents INTEGER,
  city TEXT,
  state TEXT NOT NULL,
  postal_code TEXT,
  desired_start_date DATETIME,
  desired_end_date DATETIME,
  special_requirements TEXT,
  details TEXT,
  status TEXT NOT NULL DEFAULT 'draft',
  selected_vendor_id TEXT,
  published_at DATETIME,
  completed_at DATETIME,
  cancelled_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(projects).Error)
	return db
}

func seedProject(t *testing.T, db *gorm.DB, status enums.ProjectStatus) *models.Project {
	t.Helper()

	project := &models.Project{
		ID:                uuid.New(),
		BusinessID:        uuid.New(),
		Title:             "Office deep clean",
		Description:       "Quarterly deep clean for a 2-floor office",
		ServiceCategoryID: uuid.New(),
		State:             "TX",
		Status:            status,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func TestTransitionStatus_WinsOnce(t *testing.T) {
	db := setupProjectsTestDB(t)
	repo := NewRepository(db)
	project := seedProject(t, db, enums.ProjectStatusDraft)

	ok, err := repo.TransitionStatus(context.Background(), nil, project.ID, enums.ProjectStatusDraft, enums.ProjectStatusOpen)
	require.NoError(t, err)
	assert.True(t, ok)

	// Losing writer observes the guard.
	ok, err = repo.TransitionStatus(context.Background(), nil, project.ID, enums.ProjectStatusDraft, enums.ProjectStatusOpen)
	require.NoError(t, err)
	assert.False(t, ok)

	reloaded, err := repo.FindByID(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ProjectStatusOpen, reloaded.Status)
	assert.NotNil(t, reloaded.PublishedAt)
}

func TestTransitionStatus_SetsTerminalTimestamps(t *testing.T) {
	db := setupProjectsTestDB(t)
	repo := NewRepository(db)

	completing := seedProject(t, db, enums.ProjectStatusSelected)
	ok, err := repo.TransitionStatus(context.Background(), nil, completing.ID, enums.ProjectStatusSelected, enums.ProjectStatusCompleted)
	require.NoError(t, err)
	require.True(t, ok)
	reloaded, err := repo.FindByID(context.Background(), completing.ID)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.CompletedAt)

	cancelling := seedProject(t, db, enums.ProjectStatusOpen)
	ok, err = repo.TransitionStatus(context.Background(), nil, cancelling.ID, enums.ProjectStatusOpen, enums.ProjectStatusCancelled)
	require.NoError(t, err)
	require.True(t, ok)
	reloaded, err = repo.FindByID(context.Background(), cancelling.ID)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.CancelledAt)
}

func TestAssignVendor_FirstWriteWins(t *testing.T) {
	db := setupProjectsTestDB(t)
	repo := NewRepository(db)
	project := seedProject(t, db, enums.ProjectStatusInReview)

	winner := uuid.New()
	ok, err := repo.AssignVendor(context.Background(), nil, project.ID, winner)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second selection attempt loses against the selected_vendor_id guard.
	ok, err = repo.AssignVendor(context.Background(), nil, project.ID, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	reloaded, err := repo.FindByID(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ProjectStatusSelected, reloaded.Status)
	require.NotNil(t, reloaded.SelectedVendorID)
	assert.Equal(t, winner, *reloaded.SelectedVendorID)
}

func TestAssignVendor_FromOpen(t *testing.T) {
	db := setupProjectsTestDB(t)
	repo := NewRepository(db)
	project := seedProject(t, db, enums.ProjectStatusOpen)

	winner := uuid.New()
	ok, err := repo.AssignVendor(context.Background(), nil, project.ID, winner)
	require.NoError(t, err)
	assert.True(t, ok)

	reloaded, err := repo.FindByID(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ProjectStatusSelected, reloaded.Status)
}

func TestAssignVendor_RequiresOpenOrInReview(t *testing.T) {
	db := setupProjectsTestDB(t)
	repo := NewRepository(db)

	for _, status := range []enums.ProjectStatus{
		enums.ProjectStatusDraft,
		enums.ProjectStatusCompleted,
		enums.ProjectStatusCancelled,
	} {
		project := seedProject(t, db, status)
		ok, err := repo.AssignVendor(context.Background(), nil, project.ID, uuid.New())
		require.NoError(t, err)
		assert.False(t, ok, "status %s", status)
	}
}

func TestListByBusiness_ScopedAndOrdered(t *testing.T) {
	db := setupProjectsTestDB(t)
	repo := NewRepository(db)

	businessID := uuid.New()
	first := &models.Project{
		ID: uuid.New(), BusinessID: businessID, Title: "First", Description: "d",
		ServiceCategoryID: uuid.New(), State: "OK", Status: enums.ProjectStatusDraft,
	}
	require.NoError(t, db.Create(first).Error)
	second := &models.Project{
		ID: uuid.New(), BusinessID: businessID, Title: "Second", Description: "d",
		ServiceCategoryID: uuid.New(), State: "OK", Status: enums.ProjectStatusDraft,
	}
	require.NoError(t, db.Create(second).Error)
	seedProject(t, db, enums.ProjectStatusDraft) // other business

	list, err := repo.ListByBusiness(context.Background(), businessID, nil, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, project := range list {
		assert.Equal(t, businessID, project.BusinessID)
	}
}

func TestDelete_RemovesRow(t *testing.T) {
	db := setupProjectsTestDB(t)
	repo := NewRepository(db)
	project := seedProject(t, db, enums.ProjectStatusDraft)

	require.NoError(t, repo.Delete(context.Background(), project.ID))

	_, err := repo.FindByID(context.Background(), project.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
