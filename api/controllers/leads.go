package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/vendorlink/vendorlink-backend/api/responses"
	"github.com/vendorlink/vendorlink-backend/api/validators"
	"github.com/vendorlink/vendorlink-backend/internal/bids"
	"github.com/vendorlink/vendorlink-backend/internal/routing"
	"github.com/vendorlink/vendorlink-backend/pkg/logger"
	"github.com/vendorlink/vendorlink-backend/pkg/pagination"
)

// ListLeads pages through the authenticated vendor's routed projects.
func ListLeads(svc routing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		output, err := svc.ListLeads(r.Context(), routing.ListLeadsInput{
			VendorID: actor.ID,
			Limit:    limit,
			Cursor:   r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, output.Leads, output.NextCursor)
	}
}

// LeadInterest marks a routed lead as interesting to the vendor.
func LeadInterest(svc routing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		projectID, err := pathUUID(r, "projectId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lead, err := svc.MarkInterested(r.Context(), projectID, actor.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lead)
	}
}

// LeadDecline removes a lead from the vendor's active queue.
func LeadDecline(svc routing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		projectID, err := pathUUID(r, "projectId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lead, err := svc.Decline(r.Context(), projectID, actor.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lead)
	}
}

type submitBidRequest struct {
	AmountCents   int64      `json:"amount_cents" validate:"required,min=1"`
	Timeline      string     `json:"timeline" validate:"required,min=1,max=200"`
	Notes         *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
	ExistingBidID *uuid.UUID `json:"existing_bid_id,omitempty"`
}

// SubmitBid records or revises the vendor's bid on a routed lead.
func SubmitBid(svc bids.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		projectID, err := pathUUID(r, "projectId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body submitBidRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bid, err := svc.Submit(r.Context(), bids.SubmitInput{
			ProjectID:     projectID,
			VendorID:      actor.ID,
			AmountCents:   body.AmountCents,
			Timeline:      body.Timeline,
			Notes:         body.Notes,
			ExistingBidID: body.ExistingBidID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, bid)
	}
}

// ProjectBids lists the bids on a business's own project.
func ProjectBids(svc bids.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		projectID, err := pathUUID(r, "projectId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListForProject(r.Context(), projectID, actor.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
