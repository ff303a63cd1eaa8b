package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vendorlink/vendorlink-backend/api/responses"
	"github.com/vendorlink/vendorlink-backend/api/validators"
	"github.com/vendorlink/vendorlink-backend/internal/projects"
	"github.com/vendorlink/vendorlink-backend/pkg/logger"
	"github.com/vendorlink/vendorlink-backend/pkg/pagination"
	"github.com/vendorlink/vendorlink-backend/pkg/types"
)

type createProjectRequest struct {
	Title               string                `json:"title" validate:"required,min=3,max=200"`
	Description         string                `json:"description" validate:"required,min=10"`
	ServiceCategoryID   uuid.UUID             `json:"service_category_id" validate:"required"`
	BudgetMinCents      *int64                `json:"budget_min_cents,omitempty"`
	BudgetMaxCents      *int64                `json:"budget_max_cents,omitempty"`
	City                *string               `json:"city,omitempty"`
	State               string                `json:"state" validate:"required,len=2"`
	PostalCode          *string               `json:"postal_code,omitempty"`
	DesiredStartDate    *time.Time            `json:"desired_start_date,omitempty"`
	DesiredEndDate      *time.Time            `json:"desired_end_date,omitempty"`
	SpecialRequirements *string               `json:"special_requirements,omitempty"`
	Details             *types.ProjectDetails `json:"details,omitempty"`
}

// CreateProject creates a draft project owned by the authenticated business.
func CreateProject(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createProjectRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		project, err := svc.Create(r.Context(), projects.CreateInput{
			BusinessID:          actor.ID,
			Title:               body.Title,
			Description:         body.Description,
			ServiceCategoryID:   body.ServiceCategoryID,
			BudgetMinCents:      body.BudgetMinCents,
			BudgetMaxCents:      body.BudgetMaxCents,
			City:                body.City,
			State:               body.State,
			PostalCode:          body.PostalCode,
			DesiredStartDate:    body.DesiredStartDate,
			DesiredEndDate:      body.DesiredEndDate,
			SpecialRequirements: body.SpecialRequirements,
			Details:             body.Details,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, project)
	}
}

// GetProject returns one project visible to the actor.
func GetProject(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
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

		project, err := svc.Get(r.Context(), projectID, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, project)
	}
}

// ListProjects pages through the business's own projects.
func ListProjects(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
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

		output, err := svc.List(r.Context(), projects.ListInput{
			BusinessID: actor.ID,
			Limit:      limit,
			Cursor:     r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, output.Projects, output.NextCursor)
	}
}

// PublishProject opens a draft to vendors and runs the routing pass.
func PublishProject(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
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

		project, outcome, err := svc.Publish(r.Context(), projectID, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"project": project,
			"routing": outcome,
		})
	}
}

type assignVendorRequest struct {
	VendorID uuid.UUID `json:"vendor_id" validate:"required"`
}

// AssignVendor selects the winning vendor for a project in review.
func AssignVendor(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body assignVendorRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		project, err := svc.AssignVendor(r.Context(), projectID, body.VendorID, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, project)
	}
}

// CompleteProject closes out a selected project.
func CompleteProject(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
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

		project, err := svc.Complete(r.Context(), projectID, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, project)
	}
}

type cancelProjectRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// CancelProject cancels any non-terminal project.
func CancelProject(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body cancelProjectRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		project, err := svc.Cancel(r.Context(), projectID, actor, body.Reason)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, project)
	}
}

// DeleteProject removes a draft or closed project and its ledgers.
func DeleteProject(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), projectID, actor); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// RerouteProject re-runs vendor matching for an open project. Admin only.
func RerouteProject(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
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

		outcome, err := svc.Reroute(r.Context(), projectID, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, outcome)
	}
}

// ProjectActivity returns the project's audit trail, oldest first.
func ProjectActivity(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
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

		trail, err := svc.Trail(r.Context(), projectID, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, trail)
	}
}
