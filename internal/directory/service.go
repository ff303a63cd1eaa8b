package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
	pkgerrors "github.com/vendorlink/vendorlink-backend/pkg/errors"
	"github.com/vendorlink/vendorlink-backend/pkg/types"
)

// Service exposes vendor directory operations: profile self-service for
// vendors and the approval gate for admins.
type Service interface {
	GetProfile(ctx context.Context, vendorID uuid.UUID) (*models.VendorProfile, error)
	UpsertProfile(ctx context.Context, input UpsertProfileInput) (*models.VendorProfile, error)
	SetApproval(ctx context.Context, vendorID uuid.UUID, approved bool) (*models.VendorProfile, error)
	ListApproved(ctx context.Context) ([]models.VendorProfile, error)
}

type service struct {
	repo Repository
}

// UpsertProfileInput carries a vendor's declared capabilities and coverage.
type UpsertProfileInput struct {
	VendorID           uuid.UUID
	CompanyName        string
	ServiceCategoryIDs []uuid.UUID
	CoverageAreaIDs    []uuid.UUID
}

// NewService wires the vendor directory service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("directory repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProfile(ctx context.Context, vendorID uuid.UUID) (*models.VendorProfile, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	profile, err := s.repo.FindByVendorID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor profile")
	}
	return profile, nil
}

func (s *service) UpsertProfile(ctx context.Context, input UpsertProfileInput) (*models.VendorProfile, error) {
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	if input.CompanyName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company name required")
	}

	existing, err := s.repo.FindByVendorID(ctx, input.VendorID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor profile")
	}

	if existing == nil {
		profile := &models.VendorProfile{
			VendorID:           input.VendorID,
			CompanyName:        input.CompanyName,
			ServiceCategoryIDs: types.UUIDList(input.ServiceCategoryIDs),
			CoverageAreaIDs:    types.UUIDList(input.CoverageAreaIDs),
		}
		created, err := s.repo.Create(ctx, profile)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor profile")
		}
		return created, nil
	}

	existing.CompanyName = input.CompanyName
	existing.ServiceCategoryIDs = types.UUIDList(input.ServiceCategoryIDs)
	existing.CoverageAreaIDs = types.UUIDList(input.CoverageAreaIDs)
	if err := s.repo.Save(ctx, existing); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor profile")
	}
	return existing, nil
}

func (s *service) SetApproval(ctx context.Context, vendorID uuid.UUID, approved bool) (*models.VendorProfile, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	if _, err := s.GetProfile(ctx, vendorID); err != nil {
		return nil, err
	}
	if err := s.repo.SetApproval(ctx, vendorID, approved); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update approval")
	}
	return s.GetProfile(ctx, vendorID)
}

func (s *service) ListApproved(ctx context.Context) ([]models.VendorProfile, error) {
	profiles, err := s.repo.ListApproved(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list approved vendors")
	}
	return profiles, nil
}
