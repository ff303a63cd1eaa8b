package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/vendorlink/vendorlink-backend/api/responses"
	"github.com/vendorlink/vendorlink-backend/api/validators"
	"github.com/vendorlink/vendorlink-backend/internal/directory"
	"github.com/vendorlink/vendorlink-backend/pkg/logger"
)

// VendorProfile returns the authenticated vendor's capability profile.
func VendorProfile(svc directory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.GetProfile(r.Context(), actor.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

type upsertProfileRequest struct {
	CompanyName        string      `json:"company_name" validate:"required,min=1,max=200"`
	ServiceCategoryIDs []uuid.UUID `json:"service_category_ids" validate:"max=50"`
	CoverageAreaIDs    []uuid.UUID `json:"coverage_area_ids" validate:"max=100"`
}

// UpsertVendorProfile creates or replaces the vendor's declared capabilities.
func UpsertVendorProfile(svc directory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body upsertProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.UpsertProfile(r.Context(), directory.UpsertProfileInput{
			VendorID:           actor.ID,
			CompanyName:        body.CompanyName,
			ServiceCategoryIDs: body.ServiceCategoryIDs,
			CoverageAreaIDs:    body.CoverageAreaIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

type approvalRequest struct {
	Approved bool `json:"approved"`
}

// SetVendorApproval toggles a vendor's routing eligibility. Admin only.
func SetVendorApproval(svc directory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := pathUUID(r, "vendorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body approvalRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.SetApproval(r.Context(), vendorID, body.Approved)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}
