package pages

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/pages/sections"
	"github.com/angelmondragon/storefront-backend/internal/tenants"
	"github.com/angelmondragon/storefront-backend/internal/themes"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/migrate"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

type composerFixture struct {
	db       *gorm.DB
	composer Composer
	target   Target
	registry *prometheus.Registry
}

func setupComposer(t *testing.T) composerFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:pages_"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrate.ApplySQLiteSchema(db))

	tenant := models.Tenant{ID: uuid.New(), Handle: "demo", DisplayName: "Demo", Status: "active"}
	require.NoError(t, db.Create(&tenant).Error)

	catalogSvc, err := catalog.NewService(catalog.NewRepository(db))
	require.NoError(t, err)
	registry, err := sections.NewRegistry(catalogSvc)
	require.NoError(t, err)

	defaults, _ := themes.Defaults(themes.DefaultKey)
	promReg := prometheus.NewRegistry()
	c, err := NewComposer(ComposerParams{
		Repository: NewRepository(db),
		Registry:   registry,
		Logger:     logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Metrics:    metrics.NewStorefrontMetrics(promReg),
	})
	require.NoError(t, err)

	return composerFixture{
		db:       db,
		composer: c,
		registry: promReg,
		target: Target{
			Resolution: &tenants.Resolution{
				Tenant: tenants.TenantDTO{ID: tenant.ID, Handle: "demo"},
				Store:  tenants.StoreDTO{Name: "Demo Bakery", Currency: "BHD"},
			},
			Theme: &themes.Effective{Key: themes.DefaultKey, Settings: defaults},
		},
	}
}

func (f composerFixture) seedPage(t *testing.T, slug string, isHome bool) models.StorefrontPage {
	t.Helper()
	page := models.StorefrontPage{
		ID:       uuid.New(),
		TenantID: f.target.Resolution.Tenant.ID,
		Slug:     slug,
		Title:    slug,
		Template: "default",
		IsHome:   isHome,
	}
	require.NoError(t, f.db.Create(&page).Error)
	return page
}

func (f composerFixture) seedSection(t *testing.T, pageID uuid.UUID, sectionType string, sort int, props string) {
	t.Helper()
	require.NoError(t, f.db.Create(&models.StorefrontSection{
		PageID: pageID,
		Type:   sectionType,
		Sort:   sort,
		Props:  types.RawJSON(props),
	}).Error)
}

func TestRenderOrdersSectionsBySort(t *testing.T) {
	f := setupComposer(t)
	page := f.seedPage(t, "about", false)
	f.seedSection(t, page.ID, "hero", 2, `{"title":"Welcome"}`)
	f.seedSection(t, page.ID, "content", 1, `{"body":"Our story"}`)
	f.seedSection(t, page.ID, "faq", 1, `{}`)

	out, err := f.composer.Render(context.Background(), f.target, "about")
	require.NoError(t, err)
	require.Len(t, out.Sections, 3)
	require.Equal(t, "content", out.Sections[0].Type)
	require.Equal(t, "faq", out.Sections[1].Type)
	require.Equal(t, "hero", out.Sections[2].Type)
	require.Equal(t, "Welcome", out.Sections[2].Data.(sections.Hero).Title)
	require.Empty(t, out.Skipped)
}

func TestRenderSkipsUnknownAndMalformedSections(t *testing.T) {
	f := setupComposer(t)
	page := f.seedPage(t, "landing", false)
	f.seedSection(t, page.ID, "unknown_widget", 1, `{}`)
	f.seedSection(t, page.ID, "hero", 2, `{"title":"Hi"}`)
	f.seedSection(t, page.ID, "newsletter", 3, `[1,2`)

	out, err := f.composer.Render(context.Background(), f.target, "landing")
	require.NoError(t, err)
	require.Len(t, out.Sections, 1)
	require.Equal(t, "hero", out.Sections[0].Type)
	require.Len(t, out.Skipped, 2)
	require.Equal(t, ReasonUnknownType, out.Skipped[0].Reason)
	require.Equal(t, ReasonMalformedProps, out.Skipped[1].Reason)

	families, err := f.registry.Gather()
	require.NoError(t, err)
	found := false
	for _, mf := range families {
		if mf.GetName() == "storefront_section_render_skipped_total" {
			found = true
			require.Len(t, mf.GetMetric(), 2)
		}
	}
	require.True(t, found, "skip counter should be registered and incremented")
}

func TestRenderHomeFallsBackToHomeFlag(t *testing.T) {
	f := setupComposer(t)
	page := f.seedPage(t, "welcome", true)
	f.seedSection(t, page.ID, "hero", 0, ``)

	out, err := f.composer.Render(context.Background(), f.target, "")
	require.NoError(t, err)
	require.Equal(t, "welcome", out.Slug)
	require.True(t, out.IsHome)
	require.Equal(t, "Demo Bakery", out.Sections[0].Data.(sections.Hero).Title)
}

func TestRenderMissingPage(t *testing.T) {
	f := setupComposer(t)

	_, err := f.composer.Render(context.Background(), f.target, "nope")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodePageNotFound))

	_, err = f.composer.Render(context.Background(), f.target, "home")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodePageNotFound))
}

func TestRenderRecoversFromRendererPanic(t *testing.T) {
	f := setupComposer(t)
	c := f.composer.(*composer)
	c.registry.Register("content", func(context.Context, sections.Context, sections.Props) (any, error) {
		panic("boom")
	})
	page := f.seedPage(t, "panic", false)
	f.seedSection(t, page.ID, "content", 1, `{}`)
	f.seedSection(t, page.ID, "faq", 2, `{}`)

	out, err := f.composer.Render(context.Background(), f.target, "panic")
	require.NoError(t, err)
	require.Len(t, out.Sections, 1)
	require.Equal(t, ReasonRenderFailed, out.Skipped[0].Reason)
}

func TestNewComposerValidatesDependencies(t *testing.T) {
	_, err := NewComposer(ComposerParams{})
	require.Error(t, err)
}
