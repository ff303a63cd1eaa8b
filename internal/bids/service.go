package bids

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendorlink/vendorlink-backend/internal/activity"
	"github.com/vendorlink/vendorlink-backend/internal/routing"
	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
	"github.com/vendorlink/vendorlink-backend/pkg/enums"
	pkgerrors "github.com/vendorlink/vendorlink-backend/pkg/errors"
	"github.com/vendorlink/vendorlink-backend/pkg/logger"
)

// ProjectStore is the slice of project persistence the bid flow needs.
type ProjectStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	TransitionStatus(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, from, to enums.ProjectStatus) (bool, error)
}

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns bid submission and retrieval.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*models.Bid, error)
	ListForProject(ctx context.Context, projectID, businessID uuid.UUID) ([]models.Bid, error)
}

// SubmitInput carries a vendor's bid. ExistingBidID must reference the
// vendor's current bid to revise it; omitting it while a bid exists is
// rejected as a conflict.
type SubmitInput struct {
	ProjectID     uuid.UUID
	VendorID      uuid.UUID
	AmountCents   int64
	Timeline      string
	Notes         *string
	ExistingBidID *uuid.UUID
}

type service struct {
	client   TxRunner
	repo     Repository
	routing  routing.Repository
	projects ProjectStore
	recorder activity.Recorder
	logg     *logger.Logger
}

// NewService wires the bid service.
func NewService(
	client TxRunner,
	repo Repository,
	routingRepo routing.Repository,
	projects ProjectStore,
	recorder activity.Recorder,
	logg *logger.Logger,
) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("bid repository required")
	}
	if routingRepo == nil {
		return nil, fmt.Errorf("routing repository required")
	}
	if projects == nil {
		return nil, fmt.Errorf("project store required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("activity recorder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		client:   client,
		repo:     repo,
		routing:  routingRepo,
		projects: projects,
		recorder: recorder,
		logg:     logg,
	}, nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.Bid, error) {
	ctx = s.logg.WithProjectID(ctx, input.ProjectID.String())
	ctx = s.logg.WithVendorID(ctx, input.VendorID.String())

	if input.AmountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bid amount must be positive")
	}
	if input.Timeline == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bid timeline required")
	}

	project, err := s.projects.FindByID(ctx, input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load project")
	}
	if project.Status != enums.ProjectStatusOpen && project.Status != enums.ProjectStatusInReview {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "project is not accepting bids").
			WithDetails(map[string]any{"status": project.Status})
	}

	record, err := s.routing.FindByProjectAndVendor(ctx, input.ProjectID, input.VendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "lead was not routed to this vendor")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load routing record")
	}
	if !record.Status.AllowsBidding() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "lead was declined").
			WithDetails(map[string]any{"routing_status": record.Status})
	}

	existing, err := s.repo.FindByProjectAndVendor(ctx, input.ProjectID, input.VendorID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load existing bid")
	}

	action := enums.ActivityBidSubmitted
	var bid *models.Bid
	switch {
	case existing == nil:
		bid = &models.Bid{
			ProjectID:   input.ProjectID,
			VendorID:    input.VendorID,
			AmountCents: input.AmountCents,
			Timeline:    input.Timeline,
			Notes:       input.Notes,
			Status:      enums.BidStatusSubmitted,
		}
	case input.ExistingBidID != nil && *input.ExistingBidID == existing.ID:
		existing.AmountCents = input.AmountCents
		existing.Timeline = input.Timeline
		existing.Notes = input.Notes
		existing.Status = enums.BidStatusSubmitted
		bid = existing
		action = enums.ActivityBidUpdated
	default:
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "vendor already has a bid on this project").
			WithDetails(map[string]any{"existing_bid_id": existing.ID})
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if existing == nil {
			if err := repo.Create(ctx, bid); err != nil {
				return err
			}
		} else {
			if err := repo.Save(ctx, bid); err != nil {
				return err
			}
		}
		if record.Status != enums.RoutingStatusBidSubmitted {
			if err := s.routing.WithTx(tx).UpdateStatus(ctx, input.ProjectID, input.VendorID, enums.RoutingStatusBidSubmitted); err != nil {
				return err
			}
		}
		if project.Status == enums.ProjectStatusOpen {
			// First bid moves the project into review. Losing the race to a
			// concurrent bid is fine; the transition already happened.
			if _, err := s.projects.TransitionStatus(ctx, tx, project.ID, enums.ProjectStatusOpen, enums.ProjectStatusInReview); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist bid")
	}

	s.recorder.Record(ctx, activity.RecordInput{
		ProjectID: input.ProjectID,
		ActorID:   &input.VendorID,
		Action:    action,
		Detail:    map[string]any{"bid_id": bid.ID, "amount_cents": bid.AmountCents},
	})
	s.logg.Info(ctx, "bid persisted")
	return bid, nil
}

func (s *service) ListForProject(ctx context.Context, projectID, businessID uuid.UUID) ([]models.Bid, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load project")
	}
	if project.BusinessID != businessID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "project belongs to another business")
	}
	list, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bids")
	}
	return list, nil
}
