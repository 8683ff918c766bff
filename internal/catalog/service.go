package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

type catalogRepository interface {
	FindProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error)
	ListFeatured(ctx context.Context, tenantID uuid.UUID, limit int) ([]models.Product, error)
	ListProducts(ctx context.Context, tenantID uuid.UUID, categoryID *uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Product, error)
	ListCategories(ctx context.Context, tenantID uuid.UUID, limit int) ([]models.Category, error)
	FindCategoryBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*models.Category, error)
}

// Service is the read-only catalog consumed by section renderers, product
// routes and the cart.
type Service interface {
	GetProduct(ctx context.Context, scope Scope, productID uuid.UUID) (*ProductDTO, error)
	FeaturedProducts(ctx context.Context, scope Scope, limit int) ([]ProductDTO, error)
	ListProducts(ctx context.Context, scope Scope, query ProductQuery) (*pagination.Page[ProductDTO], error)
	ListCategories(ctx context.Context, scope Scope, limit int) ([]CategoryDTO, error)
}

type service struct {
	repo catalogRepository
}

// NewService builds the catalog service.
func NewService(repo catalogRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProduct(ctx context.Context, scope Scope, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindProduct(ctx, scope.TenantID, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	dto := productFromModel(*product, scope.Currency)
	return &dto, nil
}

func (s *service) FeaturedProducts(ctx context.Context, scope Scope, limit int) ([]ProductDTO, error) {
	rows, err := s.repo.ListFeatured(ctx, scope.TenantID, pagination.NormalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list featured products")
	}
	return mapProducts(rows, scope.Currency), nil
}

func (s *service) ListProducts(ctx context.Context, scope Scope, query ProductQuery) (*pagination.Page[ProductDTO], error) {
	cursor, err := pagination.ParseCursor(query.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	var categoryID *uuid.UUID
	if slug := strings.TrimSpace(query.CategorySlug); slug != "" {
		category, err := s.repo.FindCategoryBySlug(ctx, scope.TenantID, slug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
		}
		categoryID = &category.ID
	}

	rows, err := s.repo.ListProducts(ctx, scope.TenantID, categoryID, pagination.LimitWithBuffer(query.Limit), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	page := pagination.Trim(rows, query.Limit, func(p models.Product) pagination.Cursor {
		return pagination.Cursor{CreatedAt: p.CreatedAt, ID: p.ID}
	})
	return &pagination.Page[ProductDTO]{
		Items:      mapProducts(page.Items, scope.Currency),
		NextCursor: page.NextCursor,
	}, nil
}

func (s *service) ListCategories(ctx context.Context, scope Scope, limit int) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx, scope.TenantID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, categoryFromModel(row))
	}
	return out, nil
}

func mapProducts(rows []models.Product, currency string) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, productFromModel(row, currency))
	}
	return out
}
