package directory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
	"github.com/vendorlink/vendorlink-backend/pkg/types"
)

func setupDirectoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	profiles := `
CREATE TABLE IF NOT EXISTS vendor_profiles (
  id TEXT PRIMARY KEY,
  vendor_id TEXT NOT NULL UNIQUE,
  company_name TEXT NOT NULL,
  service_category_ids TEXT,
  coverage_area_ids TEXT,
  is_approved INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(profiles).Error)
	return db
}

func TestCreateAndFindProfile_RoundTripsLists(t *testing.T) {
	db := setupDirectoryTestDB(t)
	repo := NewRepository(db)

	vendorID := uuid.New()
	categoryID := uuid.New()
	areaID := uuid.New()

	_, err := repo.Create(context.Background(), &models.VendorProfile{
		VendorID:           vendorID,
		CompanyName:        "Sooner Facilities",
		ServiceCategoryIDs: types.UUIDList{categoryID},
		CoverageAreaIDs:    types.UUIDList{areaID},
	})
	require.NoError(t, err)

	found, err := repo.FindByVendorID(context.Background(), vendorID)
	require.NoError(t, err)
	assert.Equal(t, "Sooner Facilities", found.CompanyName)
	assert.True(t, found.ServiceCategoryIDs.Contains(categoryID))
	assert.True(t, found.CoverageAreaIDs.Contains(areaID))
	assert.False(t, found.IsApproved)
}

func TestSetApproval_GatesListApproved(t *testing.T) {
	db := setupDirectoryTestDB(t)
	repo := NewRepository(db)

	vendorID := uuid.New()
	_, err := repo.Create(context.Background(), &models.VendorProfile{
		VendorID:    vendorID,
		CompanyName: "Gated Vendor",
	})
	require.NoError(t, err)

	approved, err := repo.ListApproved(context.Background())
	require.NoError(t, err)
	before := len(approved)

	require.NoError(t, repo.SetApproval(context.Background(), vendorID, true))

	approved, err = repo.ListApproved(context.Background())
	require.NoError(t, err)
	assert.Len(t, approved, before+1)

	require.NoError(t, repo.SetApproval(context.Background(), vendorID, false))
	approved, err = repo.ListApproved(context.Background())
	require.NoError(t, err)
	assert.Len(t, approved, before)
}

func TestSave_UpdatesCapabilities(t *testing.T) {
	db := setupDirectoryTestDB(t)
	repo := NewRepository(db)

	vendorID := uuid.New()
	profile, err := repo.Create(context.Background(), &models.VendorProfile{
		VendorID:    vendorID,
		CompanyName: "Before",
	})
	require.NoError(t, err)

	newCategory := uuid.New()
	profile.CompanyName = "After"
	profile.ServiceCategoryIDs = types.UUIDList{newCategory}
	require.NoError(t, repo.Save(context.Background(), profile))

	found, err := repo.FindByVendorID(context.Background(), vendorID)
	require.NoError(t, err)
	assert.Equal(t, "After", found.CompanyName)
	assert.True(t, found.ServiceCategoryIDs.Contains(newCategory))
}
