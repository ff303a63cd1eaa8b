package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
	"github.com/vendorlink/vendorlink-backend/pkg/enums"
	pkgerrors "github.com/vendorlink/vendorlink-backend/pkg/errors"
	"github.com/vendorlink/vendorlink-backend/pkg/logger"
)

// Recorder writes audit entries for lifecycle and routing events.
//
// Record is best-effort: a failed write is logged as a warning and swallowed,
// never escalated to the caller. The primary state transition is the durable
// source of truth. RecordInTx is the exception used by the routing pass, where
// the summary entry must commit atomically with the routing records.
type Recorder interface {
	Record(ctx context.Context, input RecordInput)
	RecordInTx(ctx context.Context, tx *gorm.DB, input RecordInput) error
	Trail(ctx context.Context, projectID uuid.UUID) ([]models.ActivityRecord, error)
}

type recorder struct {
	repo Repository
	logg *logger.Logger
}

// RecordInput captures one audit entry. ActorID is nil for system-originated events.
type RecordInput struct {
	ProjectID uuid.UUID
	ActorID   *uuid.UUID
	Action    enums.ActivityAction
	Detail    any
}

// NewRecorder wires the activity recorder.
func NewRecorder(repo Repository, logg *logger.Logger) (Recorder, error) {
	if repo == nil {
		return nil, fmt.Errorf("activity repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &recorder{repo: repo, logg: logg}, nil
}

func (r *recorder) Record(ctx context.Context, input RecordInput) {
	if err := r.RecordInTx(ctx, nil, input); err != nil {
		fields := map[string]any{
			"project_id": input.ProjectID.String(),
			"action":     input.Action.String(),
		}
		r.logg.Warn(r.logg.WithFields(ctx, fields), "activity write failed")
	}
}

func (r *recorder) RecordInTx(ctx context.Context, tx *gorm.DB, input RecordInput) error {
	if input.ProjectID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}

	var detail json.RawMessage
	if input.Detail != nil {
		raw, err := json.Marshal(input.Detail)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal activity detail")
		}
		detail = raw
	}

	record := &models.ActivityRecord{
		ProjectID: input.ProjectID,
		ActorID:   input.ActorID,
		Action:    input.Action,
		Detail:    detail,
	}
	return r.repo.WithTx(tx).Create(ctx, record)
}

func (r *recorder) Trail(ctx context.Context, projectID uuid.UUID) ([]models.ActivityRecord, error) {
	if projectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}
	records, err := r.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list activity")
	}
	return records, nil
}
