package sections

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/tenants"
	"github.com/angelmondragon/storefront-backend/internal/themes"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

type stubCatalog struct {
	featured      []catalog.ProductDTO
	products      []catalog.ProductDTO
	categories    []catalog.CategoryDTO
	knownCategory string
	lastQuery     catalog.ProductQuery
	lastLimit     int
	err           error
}

func (s *stubCatalog) FeaturedProducts(_ context.Context, _ catalog.Scope, limit int) ([]catalog.ProductDTO, error) {
	s.lastLimit = limit
	return s.featured, s.err
}

func (s *stubCatalog) ListProducts(_ context.Context, _ catalog.Scope, q catalog.ProductQuery) (*pagination.Page[catalog.ProductDTO], error) {
	s.lastQuery = q
	if s.err != nil {
		return nil, s.err
	}
	if q.CategorySlug != "" && q.CategorySlug != s.knownCategory {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return &pagination.Page[catalog.ProductDTO]{Items: s.products}, nil
}

func (s *stubCatalog) ListCategories(_ context.Context, _ catalog.Scope, _ int) ([]catalog.CategoryDTO, error) {
	return s.categories, s.err
}

func testContext() Context {
	return Context{
		Scope: catalog.Scope{TenantID: uuid.New(), Currency: "BHD"},
		Store: tenants.StoreDTO{Name: "Demo Bakery", Currency: "BHD"},
		Theme: &themes.Effective{Key: "classic", Settings: themes.Settings{
			StoreName: "Demo Bakery",
			Slogan:    "Fresh bread daily",
			Contact:   themes.Contact{Phone: "+973 1700 0000"},
		}},
	}
}

func TestRegistryCoversEverySectionType(t *testing.T) {
	reg, err := NewRegistry(&stubCatalog{})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	for _, st := range enums.SectionTypes() {
		fn, ok := reg.Lookup(st.String())
		if !ok {
			t.Fatalf("missing renderer for %s", st)
		}
		if _, err := fn(context.Background(), testContext(), Props{}); err != nil {
			t.Fatalf("%s with empty props: %v", st, err)
		}
	}
	if _, ok := reg.Lookup("unknown_widget"); ok {
		t.Fatalf("unknown type should not resolve")
	}
}

func TestNewRegistryRequiresCatalog(t *testing.T) {
	if _, err := NewRegistry(nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestHeroDefaultsFromTheme(t *testing.T) {
	out, _ := renderHero(context.Background(), testContext(), Props{"alignment": "diagonal", "badge": "new"})
	hero := out.(Hero)
	if hero.Title != "Demo Bakery" || hero.Subtitle != "Fresh bread daily" {
		t.Fatalf("unexpected hero defaults: %#v", hero)
	}
	if hero.Alignment != "center" {
		t.Fatalf("invalid alignment should fall back, got %q", hero.Alignment)
	}
	if hero.Extra["badge"] != "new" {
		t.Fatalf("unknown keys should pass through, got %#v", hero.Extra)
	}
}

func TestPropsToleratesWrongTypes(t *testing.T) {
	p := Props{"limit": "nope", "title": 42, "show": "true", "count": "7", "items": "not-a-list"}
	if p.Int("limit", 5) != 5 || p.String("title", "x") != "x" {
		t.Fatalf("wrong types should fall back to defaults")
	}
	if !p.Bool("show", false) || p.Int("count", 0) != 7 {
		t.Fatalf("string encoded values should parse")
	}
	if p.Objects("items") != nil || len(p.Object("missing")) != 0 {
		t.Fatalf("non-collections should read as empty")
	}
}

func TestFAQSkipsIncompleteItems(t *testing.T) {
	props := Props{"items": []any{
		map[string]any{"question": "Do you deliver?", "answer": "Yes"},
		map[string]any{"question": "Missing answer"},
		"garbage",
	}}
	out, _ := renderFAQ(context.Background(), testContext(), props)
	faq := out.(FAQ)
	if len(faq.Items) != 1 || faq.Items[0].Answer != "Yes" {
		t.Fatalf("unexpected faq items: %#v", faq.Items)
	}
}

func TestContactInfoFallsBackToThemeContact(t *testing.T) {
	out, _ := renderContactInfo(context.Background(), testContext(), Props{"email": "hi@example.com"})
	info := out.(ContactInfo)
	if info.Phone != "+973 1700 0000" || info.Email != "hi@example.com" {
		t.Fatalf("unexpected contact info: %#v", info)
	}
}

func TestFeaturedProductsClampsLimit(t *testing.T) {
	stub := &stubCatalog{featured: []catalog.ProductDTO{{Name: "Sourdough"}}}
	s := productSections{catalog: stub}

	out, err := s.featured(context.Background(), testContext(), Props{"limit": float64(500)})
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if stub.lastLimit != 24 {
		t.Fatalf("expected clamped limit 24, got %d", stub.lastLimit)
	}
	if list := out.(ProductList); len(list.Products) != 1 || !list.ShowPrices {
		t.Fatalf("unexpected list: %#v", list)
	}
}

func TestProductGridFallsBackWhenCategoryMissing(t *testing.T) {
	stub := &stubCatalog{products: []catalog.ProductDTO{{Name: "Baguette"}}, knownCategory: "breads"}
	s := productSections{catalog: stub}

	out, err := s.grid(context.Background(), testContext(), Props{"category": "pies", "columns": float64(9)})
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	grid := out.(ProductList)
	if grid.Category != "" || len(grid.Products) != 1 || grid.Columns != 6 {
		t.Fatalf("unexpected grid: %#v", grid)
	}
}

func TestProductSectionsSurfaceCatalogFailures(t *testing.T) {
	stub := &stubCatalog{err: errors.New("db down")}
	s := productSections{catalog: stub}

	if _, err := s.categories(context.Background(), testContext(), Props{}); err == nil {
		t.Fatalf("expected catalog error")
	}
}
