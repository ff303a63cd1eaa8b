package routing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendorlink/vendorlink-backend/internal/activity"
	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
	"github.com/vendorlink/vendorlink-backend/pkg/enums"
	pkgerrors "github.com/vendorlink/vendorlink-backend/pkg/errors"
	"github.com/vendorlink/vendorlink-backend/pkg/logger"
	"github.com/vendorlink/vendorlink-backend/pkg/pagination"
)

// Service exposes the vendor-facing lead surface: listing routed projects and
// recording interest or declines.
type Service interface {
	ListLeads(ctx context.Context, input ListLeadsInput) (*ListLeadsOutput, error)
	MarkInterested(ctx context.Context, projectID, vendorID uuid.UUID) (*Lead, error)
	Decline(ctx context.Context, projectID, vendorID uuid.UUID) (*Lead, error)
}

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// BidStore is the slice of the bid ledger the lead flow needs: withdrawing a
// vendor's bid when they decline a lead they already bid on.
type BidStore interface {
	UpdateStatusForVendor(ctx context.Context, tx *gorm.DB, projectID, vendorID uuid.UUID, status enums.BidStatus) error
}

// ListLeadsInput carries lead listing parameters.
type ListLeadsInput struct {
	VendorID uuid.UUID
	Limit    int
	Cursor   string
}

// ListLeadsOutput is one page of a vendor's leads.
type ListLeadsOutput struct {
	Leads      []Lead
	NextCursor string
}

type service struct {
	client   TxRunner
	repo     Repository
	bids     BidStore
	recorder activity.Recorder
	logg     *logger.Logger
}

// NewService wires the lead engagement service.
func NewService(client TxRunner, repo Repository, bids BidStore, recorder activity.Recorder, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("routing repository required")
	}
	if bids == nil {
		return nil, fmt.Errorf("bid store required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("activity recorder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{client: client, repo: repo, bids: bids, recorder: recorder, logg: logg}, nil
}

func (s *service) ListLeads(ctx context.Context, input ListLeadsInput) (*ListLeadsOutput, error) {
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	cursor, err := pagination.ParseCursor(input.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(input.Limit)

	leads, err := s.repo.ListLeads(ctx, input.VendorID, cursor, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list leads")
	}

	output := &ListLeadsOutput{Leads: leads}
	if next := NextCursor(leads, limit); next != nil {
		output.NextCursor = pagination.EncodeCursor(*next)
	}
	return output, nil
}

// MarkInterested flags a routed lead as interesting to the vendor. Calling it
// again is an idempotent no-op; a declined or already-bid lead cannot move
// back to interested.
func (s *service) MarkInterested(ctx context.Context, projectID, vendorID uuid.UUID) (*Lead, error) {
	record, err := s.loadRecord(ctx, projectID, vendorID)
	if err != nil {
		return nil, err
	}

	switch record.Status {
	case enums.RoutingStatusInterested:
		return s.lead(ctx, projectID, vendorID)
	case enums.RoutingStatusRouted:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "lead can no longer be marked interested").
			WithDetails(map[string]any{"routing_status": record.Status})
	}

	if err := s.repo.UpdateStatus(ctx, projectID, vendorID, enums.RoutingStatusInterested); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update routing status")
	}
	s.recorder.Record(ctx, activity.RecordInput{
		ProjectID: projectID,
		ActorID:   &vendorID,
		Action:    enums.ActivityInterested,
	})
	return s.lead(ctx, projectID, vendorID)
}

// Decline removes a lead from the vendor's active queue. Declining twice is
// an idempotent no-op. Declining a lead the vendor already bid on withdraws
// the bid in the same transaction.
func (s *service) Decline(ctx context.Context, projectID, vendorID uuid.UUID) (*Lead, error) {
	record, err := s.loadRecord(ctx, projectID, vendorID)
	if err != nil {
		return nil, err
	}

	withdrawBid := false
	switch record.Status {
	case enums.RoutingStatusDeclined:
		return s.lead(ctx, projectID, vendorID)
	case enums.RoutingStatusBidSubmitted:
		withdrawBid = true
	case enums.RoutingStatusRouted, enums.RoutingStatusInterested:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "lead cannot be declined").
			WithDetails(map[string]any{"routing_status": record.Status})
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).UpdateStatus(ctx, projectID, vendorID, enums.RoutingStatusDeclined); err != nil {
			return err
		}
		if withdrawBid {
			return s.bids.UpdateStatusForVendor(ctx, tx, projectID, vendorID, enums.BidStatusWithdrawn)
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decline lead")
	}

	input := activity.RecordInput{
		ProjectID: projectID,
		ActorID:   &vendorID,
		Action:    enums.ActivityDeclined,
	}
	if withdrawBid {
		input.Detail = map[string]any{"bid_withdrawn": true}
	}
	s.recorder.Record(ctx, input)
	return s.lead(ctx, projectID, vendorID)
}

func (s *service) loadRecord(ctx context.Context, projectID, vendorID uuid.UUID) (*models.RoutingRecord, error) {
	if projectID == uuid.Nil || vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id and vendor id required")
	}
	record, err := s.repo.FindByProjectAndVendor(ctx, projectID, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load routing record")
	}
	return record, nil
}

func (s *service) lead(ctx context.Context, projectID, vendorID uuid.UUID) (*Lead, error) {
	record, err := s.repo.FindByProjectAndVendor(ctx, projectID, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load routing record")
	}
	return &Lead{Routing: *record}, nil
}
