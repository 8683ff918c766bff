package fulfillment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

type branchRepository interface {
	ListActive(ctx context.Context, tenantID uuid.UUID) ([]models.Branch, error)
	FindActive(ctx context.Context, tenantID, branchID uuid.UUID) (*models.Branch, error)
}

// Service exposes branch lookups.
type Service interface {
	ListBranches(ctx context.Context, tenantID uuid.UUID) (*BranchListing, error)
	GetBranch(ctx context.Context, tenantID, branchID uuid.UUID) (*BranchDTO, error)
}

type service struct {
	repo branchRepository
}

// NewService builds the branch service.
func NewService(repo branchRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("branch repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListBranches(ctx context.Context, tenantID uuid.UUID) (*BranchListing, error) {
	rows, err := s.repo.ListActive(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list branches")
	}
	listing := &BranchListing{Featured: []BranchDTO{}, Other: []BranchDTO{}}
	for _, row := range rows {
		dto := BranchFromModel(row)
		if dto.Featured {
			listing.Featured = append(listing.Featured, dto)
		} else {
			listing.Other = append(listing.Other, dto)
		}
	}
	return listing, nil
}

func (s *service) GetBranch(ctx context.Context, tenantID, branchID uuid.UUID) (*BranchDTO, error) {
	row, err := s.repo.FindActive(ctx, tenantID, branchID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "branch not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load branch")
	}
	dto := BranchFromModel(*row)
	return &dto, nil
}
