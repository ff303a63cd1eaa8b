package matching

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendorlink/vendorlink-backend/internal/activity"
	"github.com/vendorlink/vendorlink-backend/internal/coverage"
	"github.com/vendorlink/vendorlink-backend/internal/directory"
	"github.com/vendorlink/vendorlink-backend/internal/routing"
	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
	"github.com/vendorlink/vendorlink-backend/pkg/enums"
	pkgerrors "github.com/vendorlink/vendorlink-backend/pkg/errors"
	"github.com/vendorlink/vendorlink-backend/pkg/logger"
)

// RouteOutcome summarizes one routing pass over a project.
type RouteOutcome struct {
	Matched   int         `json:"matched"`
	VendorIDs []uuid.UUID `json:"vendor_ids"`
}

// Router runs the lead-routing pass for a project: evaluate every approved
// vendor, persist routing records for the matches, and record the pass in the
// activity log atomically with the records.
type Router interface {
	Route(ctx context.Context, project *models.Project) (*RouteOutcome, error)
}

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type router struct {
	client      TxRunner
	directory   directory.Repository
	resolver    coverage.Resolver
	routingRepo routing.Repository
	recorder    activity.Recorder
	logg        *logger.Logger
}

// NewRouter wires the routing pass.
func NewRouter(
	client TxRunner,
	directoryRepo directory.Repository,
	resolver coverage.Resolver,
	routingRepo routing.Repository,
	recorder activity.Recorder,
	logg *logger.Logger,
) (Router, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if directoryRepo == nil {
		return nil, fmt.Errorf("directory repository required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("coverage resolver required")
	}
	if routingRepo == nil {
		return nil, fmt.Errorf("routing repository required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("activity recorder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &router{
		client:      client,
		directory:   directoryRepo,
		resolver:    resolver,
		routingRepo: routingRepo,
		recorder:    recorder,
		logg:        logg,
	}, nil
}

func (r *router) Route(ctx context.Context, project *models.Project) (*RouteOutcome, error) {
	ctx = r.logg.WithProjectID(ctx, project.ID.String())

	vendors, err := r.directory.ListApproved(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list approved vendors")
	}

	routedAt := time.Now().UTC()
	matched := make([]uuid.UUID, 0, len(vendors))
	records := make([]models.RoutingRecord, 0, len(vendors))
	for i := range vendors {
		vendor := &vendors[i]
		if !MatchesService(project, vendor) {
			continue
		}
		states, err := r.resolver.Resolve(ctx, vendor.CoverageAreaIDs)
		if err != nil {
			return nil, err
		}
		if !Match(project, vendor, states).IsMatch {
			continue
		}
		matched = append(matched, vendor.VendorID)
		records = append(records, models.RoutingRecord{
			ProjectID: project.ID,
			VendorID:  vendor.VendorID,
			Status:    enums.RoutingStatusRouted,
			RoutedAt:  routedAt,
		})
	}

	outcome := &RouteOutcome{Matched: len(matched), VendorIDs: matched}

	if len(records) == 0 {
		r.logg.Warn(ctx, "routing pass matched no vendors")
		r.recorder.Record(ctx, activity.RecordInput{
			ProjectID: project.ID,
			Action:    enums.ActivityRoutingFailed,
			Detail:    map[string]any{"matched": 0, "reason": "no matching vendors"},
		})
		return outcome, nil
	}

	err = r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := r.routingRepo.WithTx(tx).BulkUpsert(ctx, records); err != nil {
			return err
		}
		return r.recorder.RecordInTx(ctx, tx, activity.RecordInput{
			ProjectID: project.ID,
			Action:    enums.ActivityRouted,
			Detail:    outcome,
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist routing records")
	}

	r.logg.Info(ctx, fmt.Sprintf("routed project to %d vendors", len(matched)))
	return outcome, nil
}
