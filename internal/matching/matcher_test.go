package matching

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/vendorlink/vendorlink-backend/internal/coverage"
	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
	"github.com/vendorlink/vendorlink-backend/pkg/types"
)

func TestMatch_ServiceAndCoverage(t *testing.T) {
	categoryID := uuid.New()
	project := &models.Project{ServiceCategoryID: categoryID, State: "TX"}
	vendor := &models.VendorProfile{ServiceCategoryIDs: types.UUIDList{categoryID}}
	states := coverage.StateSet{"TX": {}, "OK": {}}

	result := Match(project, vendor, states)

	assert.True(t, result.IsMatch)
	assert.Equal(t, 100, result.Score)
	assert.Contains(t, result.Reasons, "service and coverage match")
}

func TestMatch_ServiceMismatchShortCircuits(t *testing.T) {
	project := &models.Project{ServiceCategoryID: uuid.New(), State: "TX"}
	vendor := &models.VendorProfile{ServiceCategoryIDs: types.UUIDList{uuid.New()}}

	// Coverage is deliberately nil: a failed service check must not consult it.
	result := Match(project, vendor, nil)

	assert.False(t, result.IsMatch)
	assert.Equal(t, 0, result.Score)
	assert.Contains(t, result.Reasons, "service category not offered")
}

func TestMatch_OutsideCoverage(t *testing.T) {
	categoryID := uuid.New()
	project := &models.Project{ServiceCategoryID: categoryID, State: "NY"}
	vendor := &models.VendorProfile{ServiceCategoryIDs: types.UUIDList{categoryID}}
	states := coverage.StateSet{"TX": {}}

	result := Match(project, vendor, states)

	assert.False(t, result.IsMatch)
	assert.Equal(t, 50, result.Score)
	assert.Contains(t, result.Reasons, "project state outside coverage")
}

func TestMatch_StateComparisonIsCaseInsensitive(t *testing.T) {
	categoryID := uuid.New()
	project := &models.Project{ServiceCategoryID: categoryID, State: "tx"}
	vendor := &models.VendorProfile{ServiceCategoryIDs: types.UUIDList{categoryID}}
	states := coverage.StateSet{"TX": {}}

	assert.True(t, Match(project, vendor, states).IsMatch)
}
