package projects

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendorlink/vendorlink-backend/internal/activity"
	"github.com/vendorlink/vendorlink-backend/internal/bids"
	"github.com/vendorlink/vendorlink-backend/internal/matching"
	"github.com/vendorlink/vendorlink-backend/internal/notify"
	"github.com/vendorlink/vendorlink-backend/internal/routing"
	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
	"github.com/vendorlink/vendorlink-backend/pkg/enums"
	pkgerrors "github.com/vendorlink/vendorlink-backend/pkg/errors"
	"github.com/vendorlink/vendorlink-backend/pkg/logger"
	"github.com/vendorlink/vendorlink-backend/pkg/pagination"
)

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns the project lifecycle: draft -> open -> in_review -> selected
// -> completed, with cancellation from any non-terminal status.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Project, error)
	Get(ctx context.Context, projectID uuid.UUID, actor Actor) (*models.Project, error)
	List(ctx context.Context, input ListInput) (*ListOutput, error)
	Publish(ctx context.Context, projectID uuid.UUID, actor Actor) (*models.Project, *matching.RouteOutcome, error)
	AssignVendor(ctx context.Context, projectID, vendorID uuid.UUID, actor Actor) (*models.Project, error)
	Complete(ctx context.Context, projectID uuid.UUID, actor Actor) (*models.Project, error)
	Cancel(ctx context.Context, projectID uuid.UUID, actor Actor, reason *string) (*models.Project, error)
	Delete(ctx context.Context, projectID uuid.UUID, actor Actor) error
	Reroute(ctx context.Context, projectID uuid.UUID, actor Actor) (*matching.RouteOutcome, error)
	Trail(ctx context.Context, projectID uuid.UUID, actor Actor) ([]models.ActivityRecord, error)
}

type service struct {
	client       TxRunner
	repo         Repository
	routing      routing.Repository
	bids         bids.Repository
	activity     activity.Recorder
	activityRepo activity.Repository
	router       matching.Router
	notifier     notify.Notifier
	logg         *logger.Logger
}

// NewService wires the project lifecycle service.
func NewService(
	client TxRunner,
	repo Repository,
	routingRepo routing.Repository,
	bidRepo bids.Repository,
	recorder activity.Recorder,
	activityRepo activity.Repository,
	router matching.Router,
	notifier notify.Notifier,
	logg *logger.Logger,
) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("project repository required")
	}
	if routingRepo == nil {
		return nil, fmt.Errorf("routing repository required")
	}
	if bidRepo == nil {
		return nil, fmt.Errorf("bid repository required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("activity recorder required")
	}
	if activityRepo == nil {
		return nil, fmt.Errorf("activity repository required")
	}
	if router == nil {
		return nil, fmt.Errorf("router required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		client:       client,
		repo:         repo,
		routing:      routingRepo,
		bids:         bidRepo,
		activity:     recorder,
		activityRepo: activityRepo,
		router:       router,
		notifier:     notifier,
		logg:         logg,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Project, error) {
	if input.BusinessID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business id required")
	}
	if input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	if input.Description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description required")
	}
	if input.ServiceCategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service category required")
	}
	if input.State == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "state required")
	}
	if (input.BudgetMinCents == nil) != (input.BudgetMaxCents == nil) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget min and max must be provided together")
	}
	if input.BudgetMinCents != nil && *input.BudgetMinCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget must not be negative")
	}
	if input.BudgetMinCents != nil && input.BudgetMaxCents != nil && *input.BudgetMaxCents < *input.BudgetMinCents {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget max must not be below budget min")
	}
	if input.DesiredStartDate != nil && input.DesiredEndDate != nil && input.DesiredEndDate.Before(*input.DesiredStartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "desired end date must not precede start date")
	}

	project := &models.Project{
		BusinessID:          input.BusinessID,
		Title:               input.Title,
		Description:         input.Description,
		ServiceCategoryID:   input.ServiceCategoryID,
		BudgetMinCents:      input.BudgetMinCents,
		BudgetMaxCents:      input.BudgetMaxCents,
		City:                input.City,
		State:               input.State,
		PostalCode:          input.PostalCode,
		DesiredStartDate:    input.DesiredStartDate,
		DesiredEndDate:      input.DesiredEndDate,
		SpecialRequirements: input.SpecialRequirements,
		Details:             input.Details,
		Status:              enums.ProjectStatusDraft,
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create project")
	}

	s.activity.Record(ctx, activity.RecordInput{
		ProjectID: project.ID,
		ActorID:   &input.BusinessID,
		Action:    enums.ActivityProjectCreated,
	})
	s.logg.Info(s.logg.WithProjectID(ctx, project.ID.String()), "project created")
	return project, nil
}

func (s *service) Get(ctx context.Context, projectID uuid.UUID, actor Actor) (*models.Project, error) {
	project, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(project, actor); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.BusinessID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business id required")
	}
	cursor, err := pagination.ParseCursor(input.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(input.Limit)

	list, err := s.repo.ListByBusiness(ctx, input.BusinessID, cursor, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list projects")
	}

	output := &ListOutput{Projects: list}
	if next := NextCursor(list, limit); next != nil {
		output.NextCursor = pagination.EncodeCursor(*next)
	}
	return output, nil
}

// Publish moves a draft to open and runs the routing pass. A routing pass
// that matches nobody still publishes; the gap is surfaced through the
// activity log instead of failing the transition.
func (s *service) Publish(ctx context.Context, projectID uuid.UUID, actor Actor) (*models.Project, *matching.RouteOutcome, error) {
	project, err := s.load(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.authorize(project, actor); err != nil {
		return nil, nil, err
	}

	ok, err := s.repo.TransitionStatus(ctx, nil, projectID, enums.ProjectStatusDraft, enums.ProjectStatusOpen)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "publish project")
	}
	if !ok {
		return nil, nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only draft projects can be published").
			WithDetails(map[string]any{"status": project.Status})
	}

	s.activity.Record(ctx, activity.RecordInput{
		ProjectID: projectID,
		ActorID:   &actor.ID,
		Action:    enums.ActivityPublished,
	})

	project, err = s.load(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	outcome, err := s.router.Route(ctx, project)
	if err != nil {
		s.logg.Error(s.logg.WithProjectID(ctx, projectID.String()), "routing pass failed", err)
		s.activity.Record(ctx, activity.RecordInput{
			ProjectID: projectID,
			Action:    enums.ActivityRoutingFailed,
			Detail:    map[string]any{"error": err.Error()},
		})
	}

	s.notifier.ProjectEvent(ctx, notify.Event{
		Type:      notify.EventProjectPublished,
		ProjectID: projectID,
	})
	return project, outcome, nil
}

// AssignVendor selects the winning vendor. The selected_vendor_id guard in
// the repository makes the selection first-write-wins; repeating the call
// with the already-selected vendor is an idempotent success.
func (s *service) AssignVendor(ctx context.Context, projectID, vendorID uuid.UUID, actor Actor) (*models.Project, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	project, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(project, actor); err != nil {
		return nil, err
	}

	if project.SelectedVendorID != nil {
		if *project.SelectedVendorID == vendorID {
			return project, nil
		}
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "a vendor has already been selected").
			WithDetails(map[string]any{"selected_vendor_id": *project.SelectedVendorID})
	}
	if project.Status != enums.ProjectStatusOpen && project.Status != enums.ProjectStatusInReview {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "project is not accepting a selection").
			WithDetails(map[string]any{"status": project.Status})
	}

	// The winner must have engaged with the project: either a submitted bid
	// or at least a routing record. A direct selection of a routed vendor who
	// never bid is allowed.
	if _, err := s.bids.FindByProjectAndVendor(ctx, projectID, vendorID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load winning bid")
		}
		if _, err := s.routing.FindByProjectAndVendor(ctx, projectID, vendorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "vendor was not routed this project and has no bid on it")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load routing record")
		}
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		ok, err := s.repo.AssignVendor(ctx, tx, projectID, vendorID)
		if err != nil {
			return err
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "a vendor has already been selected")
		}
		if err := s.bids.UpdateStatusForVendor(ctx, tx, projectID, vendorID, enums.BidStatusAccepted); err != nil {
			return err
		}
		return s.bids.UpdateStatusForOthers(ctx, tx, projectID, vendorID, enums.BidStatusDeclined)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign vendor")
	}

	s.activity.Record(ctx, activity.RecordInput{
		ProjectID: projectID,
		ActorID:   &actor.ID,
		Action:    enums.ActivityVendorAssigned,
		Detail:    map[string]any{"vendor_id": vendorID},
	})
	s.notifier.ProjectEvent(ctx, notify.Event{
		Type:      notify.EventVendorAssigned,
		ProjectID: projectID,
		Data:      map[string]any{"vendor_id": vendorID.String()},
	})
	return s.load(ctx, projectID)
}

// Complete closes out a selected project. The owning business, an admin, or
// the selected vendor may mark the work done.
func (s *service) Complete(ctx context.Context, projectID uuid.UUID, actor Actor) (*models.Project, error) {
	project, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeCompletion(project, actor); err != nil {
		return nil, err
	}

	ok, err := s.repo.TransitionStatus(ctx, nil, projectID, enums.ProjectStatusSelected, enums.ProjectStatusCompleted)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete project")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only selected projects can be completed").
			WithDetails(map[string]any{"status": project.Status})
	}

	s.activity.Record(ctx, activity.RecordInput{
		ProjectID: projectID,
		ActorID:   &actor.ID,
		Action:    enums.ActivityCompleted,
	})
	s.notifier.ProjectEvent(ctx, notify.Event{
		Type:      notify.EventProjectCompleted,
		ProjectID: projectID,
	})
	return s.load(ctx, projectID)
}

func (s *service) Cancel(ctx context.Context, projectID uuid.UUID, actor Actor, reason *string) (*models.Project, error) {
	project, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(project, actor); err != nil {
		return nil, err
	}
	if project.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "project already closed").
			WithDetails(map[string]any{"status": project.Status})
	}

	ok, err := s.repo.TransitionStatus(ctx, nil, projectID, project.Status, enums.ProjectStatusCancelled)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel project")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "project status changed, retry")
	}

	var detail map[string]any
	if reason != nil {
		detail = map[string]any{"reason": *reason}
	}
	s.activity.Record(ctx, activity.RecordInput{
		ProjectID: projectID,
		ActorID:   &actor.ID,
		Action:    enums.ActivityCancelled,
		Detail:    detail,
	})
	s.notifier.ProjectEvent(ctx, notify.Event{
		Type:      notify.EventProjectCancelled,
		ProjectID: projectID,
	})
	return s.load(ctx, projectID)
}

// Delete removes a project and its dependent ledgers in one transaction.
// Active projects must be cancelled first.
func (s *service) Delete(ctx context.Context, projectID uuid.UUID, actor Actor) error {
	project, err := s.load(ctx, projectID)
	if err != nil {
		return err
	}
	if err := s.authorize(project, actor); err != nil {
		return err
	}
	if project.Status != enums.ProjectStatusDraft && !project.Status.IsTerminal() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "active projects cannot be deleted").
			WithDetails(map[string]any{"status": project.Status})
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.bids.WithTx(tx).DeleteByProject(ctx, projectID); err != nil {
			return err
		}
		if err := s.routing.WithTx(tx).DeleteByProject(ctx, projectID); err != nil {
			return err
		}
		if err := s.activityRepo.WithTx(tx).DeleteByProject(ctx, projectID); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Delete(ctx, projectID)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete project")
	}
	s.logg.Info(s.logg.WithProjectID(ctx, projectID.String()), "project deleted")
	return nil
}

// Reroute re-runs the routing pass on demand. Existing routing records are
// untouched; only newly matching vendors gain records.
func (s *service) Reroute(ctx context.Context, projectID uuid.UUID, actor Actor) (*matching.RouteOutcome, error) {
	project, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if actor.Role != enums.ActorRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "rerouting requires admin access")
	}
	if project.Status != enums.ProjectStatusOpen && project.Status != enums.ProjectStatusInReview {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only open projects can be rerouted").
			WithDetails(map[string]any{"status": project.Status})
	}

	outcome, err := s.router.Route(ctx, project)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, activity.RecordInput{
		ProjectID: projectID,
		ActorID:   &actor.ID,
		Action:    enums.ActivityRerouted,
		Detail:    outcome,
	})
	s.notifier.ProjectEvent(ctx, notify.Event{
		Type:      notify.EventProjectRerouted,
		ProjectID: projectID,
	})
	return outcome, nil
}

func (s *service) Trail(ctx context.Context, projectID uuid.UUID, actor Actor) ([]models.ActivityRecord, error) {
	project, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(project, actor); err != nil {
		return nil, err
	}
	return s.activity.Trail(ctx, project.ID)
}

func (s *service) load(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	if projectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}
	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load project")
	}
	return project, nil
}

func (s *service) authorize(project *models.Project, actor Actor) error {
	if actor.Role == enums.ActorRoleAdmin {
		return nil
	}
	if actor.Role == enums.ActorRoleBusiness && project.BusinessID == actor.ID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "project belongs to another business")
}

func (s *service) authorizeCompletion(project *models.Project, actor Actor) error {
	if actor.Role == enums.ActorRoleVendor {
		if project.SelectedVendorID != nil && *project.SelectedVendorID == actor.ID {
			return nil
		}
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the selected vendor may complete this project")
	}
	return s.authorize(project, actor)
}
