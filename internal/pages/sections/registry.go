package sections

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/tenants"
	"github.com/angelmondragon/storefront-backend/internal/themes"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

// Context is the request-scoped data every renderer may read.
type Context struct {
	Scope catalog.Scope
	Store tenants.StoreDTO
	Theme *themes.Effective
}

// RenderFunc turns a section's props into its view model.
type RenderFunc func(ctx context.Context, rc Context, props Props) (any, error)

// CatalogReader is the slice of the catalog the product-backed sections use.
type CatalogReader interface {
	FeaturedProducts(ctx context.Context, scope catalog.Scope, limit int) ([]catalog.ProductDTO, error)
	ListProducts(ctx context.Context, scope catalog.Scope, query catalog.ProductQuery) (*pagination.Page[catalog.ProductDTO], error)
	ListCategories(ctx context.Context, scope catalog.Scope, limit int) ([]catalog.CategoryDTO, error)
}

// Registry maps section types to renderers.
type Registry struct {
	renderers map[enums.SectionType]RenderFunc
}

// NewRegistry registers the built-in renderer for every section type.
func NewRegistry(reader CatalogReader) (*Registry, error) {
	if reader == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	r := &Registry{renderers: make(map[enums.SectionType]RenderFunc)}
	products := productSections{catalog: reader}

	r.Register(enums.SectionHero, renderHero)
	r.Register(enums.SectionFeaturedProducts, products.featured)
	r.Register(enums.SectionCategories, products.categories)
	r.Register(enums.SectionNewsletter, renderNewsletter)
	r.Register(enums.SectionProductGrid, products.grid)
	r.Register(enums.SectionCategoryFilters, products.filters)
	r.Register(enums.SectionContent, renderContent)
	r.Register(enums.SectionTeam, renderTeam)
	r.Register(enums.SectionValues, renderValues)
	r.Register(enums.SectionContactInfo, renderContactInfo)
	r.Register(enums.SectionContactForm, renderContactForm)
	r.Register(enums.SectionFAQ, renderFAQ)
	return r, nil
}

// Register installs or replaces the renderer for a type.
func (r *Registry) Register(sectionType enums.SectionType, fn RenderFunc) {
	r.renderers[sectionType] = fn
}

// Lookup returns the renderer for a stored type string.
func (r *Registry) Lookup(raw string) (RenderFunc, bool) {
	fn, ok := r.renderers[enums.SectionType(strings.TrimSpace(raw))]
	return fn, ok
}
