package pages

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/pages/sections"
	"github.com/angelmondragon/storefront-backend/internal/tenants"
	"github.com/angelmondragon/storefront-backend/internal/themes"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// HomeSlug is the slug that falls back to the tenant's is_home page.
const HomeSlug = "home"

// Skip reasons reported for sections that did not render.
const (
	ReasonUnknownType    = "unknown_type"
	ReasonMalformedProps = "malformed_props"
	ReasonRenderFailed   = "render_failed"
)

type pageRepository interface {
	FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*models.StorefrontPage, error)
	FindHome(ctx context.Context, tenantID uuid.UUID) (*models.StorefrontPage, error)
	ListSections(ctx context.Context, pageID uuid.UUID) ([]models.StorefrontSection, error)
}

// Target is the tenant and theme a page renders for.
type Target struct {
	Resolution *tenants.Resolution
	Theme      *themes.Effective
}

// RenderedSection is a section's view model in page order.
type RenderedSection struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
	Sort int    `json:"sort"`
	Data any    `json:"data"`
}

// SkippedSection records a section left out of the page and why.
type SkippedSection struct {
	ID     int64  `json:"id"`
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// RenderedPage is the composed page.
type RenderedPage struct {
	ID       uuid.UUID         `json:"id"`
	Slug     string            `json:"slug"`
	Title    string            `json:"title"`
	Template string            `json:"template"`
	SEO      types.SEO         `json:"seo"`
	IsHome   bool              `json:"is_home"`
	Sections []RenderedSection `json:"sections"`
	Skipped  []SkippedSection  `json:"skipped,omitempty"`
}

// LoadedPage is a page and its ordered section rows, not yet rendered.
type LoadedPage struct {
	Page     models.StorefrontPage
	Sections []models.StorefrontSection
}

// Composer renders tenant pages from their ordered sections. Load only reads
// storage so it can run alongside the theme load; Compose needs the theme.
type Composer interface {
	Load(ctx context.Context, tenantID uuid.UUID, slug string) (*LoadedPage, error)
	Compose(ctx context.Context, target Target, loaded *LoadedPage) *RenderedPage
	Render(ctx context.Context, target Target, slug string) (*RenderedPage, error)
}

// ComposerParams wires the composer.
type ComposerParams struct {
	Repository pageRepository
	Registry   *sections.Registry
	Logger     *logger.Logger
	Metrics    *metrics.StorefrontMetrics
}

type composer struct {
	repo     pageRepository
	registry *sections.Registry
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
}

// NewComposer validates dependencies and builds the composer.
func NewComposer(params ComposerParams) (Composer, error) {
	if params.Repository == nil {
		return nil, fmt.Errorf("page repository required")
	}
	if params.Registry == nil {
		return nil, fmt.Errorf("section registry required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &composer{
		repo:     params.Repository,
		registry: params.Registry,
		logg:     params.Logger,
		metrics:  params.Metrics,
	}, nil
}

func (c *composer) Render(ctx context.Context, target Target, slug string) (*RenderedPage, error) {
	if target.Resolution == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "render target missing tenant")
	}
	loaded, err := c.Load(ctx, target.Resolution.Tenant.ID, slug)
	if err != nil {
		return nil, err
	}
	return c.Compose(ctx, target, loaded), nil
}

func (c *composer) Load(ctx context.Context, tenantID uuid.UUID, slug string) (*LoadedPage, error) {
	slug = normalizeSlug(slug)

	page, err := c.repo.FindBySlug(ctx, tenantID, slug)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load page")
	}
	if page == nil && slug == HomeSlug {
		page, err = c.repo.FindHome(ctx, tenantID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load home page")
		}
	}
	if page == nil {
		return nil, pkgerrors.New(pkgerrors.CodePageNotFound, "page not found").
			WithDetails(map[string]any{"slug": slug})
	}

	rows, err := c.repo.ListSections(ctx, page.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sections")
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Sort != rows[j].Sort {
			return rows[i].Sort < rows[j].Sort
		}
		return rows[i].ID < rows[j].ID
	})
	return &LoadedPage{Page: *page, Sections: rows}, nil
}

func (c *composer) Compose(ctx context.Context, target Target, loaded *LoadedPage) *RenderedPage {
	page := loaded.Page
	rc := sections.Context{Theme: target.Theme}
	if target.Resolution != nil {
		rc.Scope = catalog.Scope{TenantID: target.Resolution.Tenant.ID, Currency: target.Resolution.Store.Currency}
		rc.Store = target.Resolution.Store
	}
	ctx = c.logg.WithFields(ctx, map[string]any{"page_id": page.ID.String(), "slug": page.Slug})

	out := &RenderedPage{
		ID:       page.ID,
		Slug:     page.Slug,
		Title:    page.Title,
		Template: page.Template,
		SEO:      page.SEO,
		IsHome:   page.IsHome,
		Sections: make([]RenderedSection, 0, len(loaded.Sections)),
	}
	for _, row := range loaded.Sections {
		data, reason, err := c.renderSection(ctx, rc, row)
		if reason != "" {
			c.skip(ctx, row, reason, err)
			out.Skipped = append(out.Skipped, SkippedSection{ID: row.ID, Type: row.Type, Reason: reason})
			continue
		}
		out.Sections = append(out.Sections, RenderedSection{ID: row.ID, Type: row.Type, Sort: row.Sort, Data: data})
	}
	return out
}

func (c *composer) renderSection(ctx context.Context, rc sections.Context, row models.StorefrontSection) (data any, reason string, err error) {
	fn, ok := c.registry.Lookup(row.Type)
	if !ok {
		return nil, ReasonUnknownType, nil
	}
	props, err := decodeProps(row.Props)
	if err != nil {
		return nil, ReasonMalformedProps, err
	}
	defer func() {
		if rec := recover(); rec != nil {
			data, reason, err = nil, ReasonRenderFailed, fmt.Errorf("renderer panic: %v", rec)
		}
	}()
	data, err = fn(ctx, rc, props)
	if err != nil {
		return nil, ReasonRenderFailed, err
	}
	return data, "", nil
}

func (c *composer) skip(ctx context.Context, row models.StorefrontSection, reason string, err error) {
	c.metrics.SectionSkipped(row.Type, reason)
	ctx = c.logg.WithFields(ctx, map[string]any{
		"section_id":   row.ID,
		"section_type": row.Type,
		"reason":       reason,
	})
	if err != nil {
		c.logg.Error(ctx, "section.render_skipped", err)
		return
	}
	c.logg.Warn(ctx, "section.render_skipped")
}

func decodeProps(raw types.RawJSON) (sections.Props, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return sections.Props{}, nil
	}
	var props map[string]any
	if err := json.Unmarshal([]byte(trimmed), &props); err != nil {
		return nil, fmt.Errorf("decode props: %w", err)
	}
	return sections.Props(props), nil
}

func normalizeSlug(slug string) string {
	slug = strings.ToLower(strings.Trim(strings.TrimSpace(slug), "/"))
	if slug == "" {
		return HomeSlug
	}
	return slug
}
