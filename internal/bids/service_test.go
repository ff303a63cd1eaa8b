package bids

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vendorlink/vendorlink-backend/internal/activity"
	"github.com/vendorlink/vendorlink-backend/internal/routing"
	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
	"github.com/vendorlink/vendorlink-backend/pkg/enums"
	pkgerrors "github.com/vendorlink/vendorlink-backend/pkg/errors"
	"github.com/vendorlink/vendorlink-backend/pkg/logger"
	"github.com/vendorlink/vendorlink-backend/pkg/pagination"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubBidRepo struct {
	existing *models.Bid
	created  *models.Bid
	saved    *models.Bid
	list     []models.Bid
}

func (s *stubBidRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubBidRepo) Create(ctx context.Context, bid *models.Bid) error {
	bid.ID = uuid.New()
	s.created = bid
	return nil
}

func (s *stubBidRepo) Save(ctx context.Context, bid *models.Bid) error {
	s.saved = bid
	return nil
}

func (s *stubBidRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubBidRepo) FindByProjectAndVendor(ctx context.Context, projectID, vendorID uuid.UUID) (*models.Bid, error) {
	if s.existing == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.existing, nil
}

func (s *stubBidRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Bid, error) {
	return s.list, nil
}

func (s *stubBidRepo) UpdateStatusForVendor(ctx context.Context, tx *gorm.DB, projectID, vendorID uuid.UUID, status enums.BidStatus) error {
	return nil
}

func (s *stubBidRepo) UpdateStatusForOthers(ctx context.Context, tx *gorm.DB, projectID, vendorID uuid.UUID, status enums.BidStatus) error {
	return nil
}

func (s *stubBidRepo) DeleteByProject(ctx context.Context, projectID uuid.UUID) error { return nil }

type stubRoutingRepo struct {
	routing.Repository
	record        *models.RoutingRecord
	statusUpdates []enums.RoutingStatus
}

func (s *stubRoutingRepo) WithTx(tx *gorm.DB) routing.Repository { return s }

func (s *stubRoutingRepo) FindByProjectAndVendor(ctx context.Context, projectID, vendorID uuid.UUID) (*models.RoutingRecord, error) {
	if s.record == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.record, nil
}

func (s *stubRoutingRepo) UpdateStatus(ctx context.Context, projectID, vendorID uuid.UUID, status enums.RoutingStatus) error {
	s.statusUpdates = append(s.statusUpdates, status)
	return nil
}

func (s *stubRoutingRepo) ListLeads(ctx context.Context, vendorID uuid.UUID, cursor *pagination.Cursor, limit int) ([]routing.Lead, error) {
	return nil, nil
}

type stubProjectStore struct {
	project     *models.Project
	transitions []enums.ProjectStatus
}

func (s *stubProjectStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	if s.project == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.project, nil
}

func (s *stubProjectStore) TransitionStatus(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, from, to enums.ProjectStatus) (bool, error) {
	s.transitions = append(s.transitions, to)
	return true, nil
}

type stubRecorder struct {
	recorded []activity.RecordInput
}

func (s *stubRecorder) Record(ctx context.Context, input activity.RecordInput) {
	s.recorded = append(s.recorded, input)
}

func (s *stubRecorder) RecordInTx(ctx context.Context, tx *gorm.DB, input activity.RecordInput) error {
	s.recorded = append(s.recorded, input)
	return nil
}

func (s *stubRecorder) Trail(ctx context.Context, projectID uuid.UUID) ([]models.ActivityRecord, error) {
	return nil, nil
}

type fixture struct {
	service  Service
	repo     *stubBidRepo
	routing  *stubRoutingRepo
	projects *stubProjectStore
	recorder *stubRecorder
}

func newFixture(t *testing.T, project *models.Project, record *models.RoutingRecord, existing *models.Bid) fixture {
	t.Helper()

	repo := &stubBidRepo{existing: existing}
	routingRepo := &stubRoutingRepo{record: record}
	projects := &stubProjectStore{project: project}
	recorder := &stubRecorder{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	svc, err := NewService(stubTxRunner{}, repo, routingRepo, projects, recorder, logg)
	require.NoError(t, err)
	return fixture{service: svc, repo: repo, routing: routingRepo, projects: projects, recorder: recorder}
}

func openProject() *models.Project {
	return &models.Project{ID: uuid.New(), BusinessID: uuid.New(), Status: enums.ProjectStatusOpen}
}

func routedRecord(projectID, vendorID uuid.UUID) *models.RoutingRecord {
	return &models.RoutingRecord{ProjectID: projectID, VendorID: vendorID, Status: enums.RoutingStatusRouted}
}

func TestSubmit_FirstBidMovesProjectIntoReview(t *testing.T) {
	project := openProject()
	vendorID := uuid.New()
	f := newFixture(t, project, routedRecord(project.ID, vendorID), nil)

	bid, err := f.service.Submit(context.Background(), SubmitInput{
		ProjectID:   project.ID,
		VendorID:    vendorID,
		AmountCents: 250_00,
		Timeline:    "2 weeks",
	})

	require.NoError(t, err)
	require.NotNil(t, f.repo.created)
	assert.Equal(t, int64(250_00), bid.AmountCents)
	assert.Equal(t, enums.BidStatusSubmitted, bid.Status)
	assert.Equal(t, []enums.RoutingStatus{enums.RoutingStatusBidSubmitted}, f.routing.statusUpdates)
	assert.Equal(t, []enums.ProjectStatus{enums.ProjectStatusInReview}, f.projects.transitions)

	require.Len(t, f.recorder.recorded, 1)
	assert.Equal(t, enums.ActivityBidSubmitted, f.recorder.recorded[0].Action)
}

func TestSubmit_SecondBidDoesNotTransitionAgain(t *testing.T) {
	project := openProject()
	project.Status = enums.ProjectStatusInReview
	vendorID := uuid.New()
	f := newFixture(t, project, routedRecord(project.ID, vendorID), nil)

	_, err := f.service.Submit(context.Background(), SubmitInput{
		ProjectID:   project.ID,
		VendorID:    vendorID,
		AmountCents: 100_00,
		Timeline:    "1 week",
	})

	require.NoError(t, err)
	assert.Empty(t, f.projects.transitions)
}

func TestSubmit_DuplicateWithoutReferenceConflicts(t *testing.T) {
	project := openProject()
	project.Status = enums.ProjectStatusInReview
	vendorID := uuid.New()
	existing := &models.Bid{ID: uuid.New(), ProjectID: project.ID, VendorID: vendorID, AmountCents: 100_00}
	f := newFixture(t, project, routedRecord(project.ID, vendorID), existing)

	_, err := f.service.Submit(context.Background(), SubmitInput{
		ProjectID:   project.ID,
		VendorID:    vendorID,
		AmountCents: 150_00,
		Timeline:    "3 days",
	})

	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, existing.ID, details["existing_bid_id"])
}

func TestSubmit_ReviseExistingBid(t *testing.T) {
	project := openProject()
	project.Status = enums.ProjectStatusInReview
	vendorID := uuid.New()
	existing := &models.Bid{ID: uuid.New(), ProjectID: project.ID, VendorID: vendorID, AmountCents: 100_00, Timeline: "2 weeks"}
	f := newFixture(t, project, routedRecord(project.ID, vendorID), existing)

	bid, err := f.service.Submit(context.Background(), SubmitInput{
		ProjectID:     project.ID,
		VendorID:      vendorID,
		AmountCents:   90_00,
		Timeline:      "10 days",
		ExistingBidID: &existing.ID,
	})

	require.NoError(t, err)
	require.NotNil(t, f.repo.saved)
	assert.Equal(t, existing.ID, bid.ID)
	assert.Equal(t, int64(90_00), bid.AmountCents)
	assert.Equal(t, "10 days", bid.Timeline)

	require.Len(t, f.recorder.recorded, 1)
	assert.Equal(t, enums.ActivityBidUpdated, f.recorder.recorded[0].Action)
}

func TestSubmit_UnroutedVendorForbidden(t *testing.T) {
	project := openProject()
	f := newFixture(t, project, nil, nil)

	_, err := f.service.Submit(context.Background(), SubmitInput{
		ProjectID:   project.ID,
		VendorID:    uuid.New(),
		AmountCents: 100_00,
		Timeline:    "1 week",
	})

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestSubmit_DeclinedLeadRejected(t *testing.T) {
	project := openProject()
	vendorID := uuid.New()
	record := routedRecord(project.ID, vendorID)
	record.Status = enums.RoutingStatusDeclined
	f := newFixture(t, project, record, nil)

	_, err := f.service.Submit(context.Background(), SubmitInput{
		ProjectID:   project.ID,
		VendorID:    vendorID,
		AmountCents: 100_00,
		Timeline:    "1 week",
	})

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestSubmit_ClosedProjectRejected(t *testing.T) {
	project := openProject()
	project.Status = enums.ProjectStatusSelected
	vendorID := uuid.New()
	f := newFixture(t, project, routedRecord(project.ID, vendorID), nil)

	_, err := f.service.Submit(context.Background(), SubmitInput{
		ProjectID:   project.ID,
		VendorID:    vendorID,
		AmountCents: 100_00,
		Timeline:    "1 week",
	})

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestSubmit_ValidationGuards(t *testing.T) {
	project := openProject()
	vendorID := uuid.New()
	f := newFixture(t, project, routedRecord(project.ID, vendorID), nil)

	_, err := f.service.Submit(context.Background(), SubmitInput{
		ProjectID: project.ID,
		VendorID:  vendorID,
		Timeline:  "1 week",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = f.service.Submit(context.Background(), SubmitInput{
		ProjectID:   project.ID,
		VendorID:    vendorID,
		AmountCents: 100_00,
	})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestListForProject_OwnershipEnforced(t *testing.T) {
	project := openProject()
	f := newFixture(t, project, nil, nil)

	_, err := f.service.ListForProject(context.Background(), project.ID, uuid.New())

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}
