package matching

import (
	"github.com/vendorlink/vendorlink-backend/internal/coverage"
	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
)

const criterionScore = 50

// Result explains a single vendor's evaluation against a project.
type Result struct {
	IsMatch bool     `json:"is_match"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// Match evaluates one vendor against one project. states is the vendor's
// resolved coverage, which the caller only needs to supply when the service
// check passes; a failed service check never consults geography.
func Match(project *models.Project, vendor *models.VendorProfile, states coverage.StateSet) Result {
	result := Result{Reasons: []string{}}

	if !MatchesService(project, vendor) {
		result.Reasons = append(result.Reasons, "service category not offered")
		return result
	}
	result.Score += criterionScore

	if !states.Contains(project.State) {
		result.Reasons = append(result.Reasons, "project state outside coverage")
		return result
	}
	result.Score += criterionScore

	result.IsMatch = true
	result.Reasons = append(result.Reasons, "service and coverage match")
	return result
}

// MatchesService is the cheap pre-check the routing pass runs before paying
// for coverage resolution.
func MatchesService(project *models.Project, vendor *models.VendorProfile) bool {
	return vendor.ServiceCategoryIDs.Contains(project.ServiceCategoryID)
}
