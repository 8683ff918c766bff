package themes

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/tenants"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

func TestLoadWithoutSettingsReturnsDefaults(t *testing.T) {
	repo := newStubThemeRepo()
	l := newTestLoader(t, repo)

	eff, err := l.Load(context.Background(), resolution("Demo Bakery", nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !eff.UsingDefaults || eff.Key != "classic" {
		t.Fatalf("expected classic defaults, got %#v", eff)
	}
	if eff.Settings.Contact != (Contact{}) || eff.Settings.Social != (Social{}) {
		t.Fatalf("contact and social should be empty, got %#v %#v", eff.Settings.Contact, eff.Settings.Social)
	}
	if eff.Settings.StoreName != "Demo Bakery" {
		t.Fatalf("expected store name fallback, got %q", eff.Settings.StoreName)
	}
}

func TestLoadOverlaysSettings(t *testing.T) {
	repo := newStubThemeRepo()
	modern := repo.addTheme("modern", true)
	tenantID := uuid.New()
	repo.setting = &models.TenantThemeSetting{
		TenantID: tenantID,
		ThemeID:  modern.ID,
		IsActive: true,
		Settings: types.JSONMap{
			"colors":     map[string]any{"primary": "#FF0000", "accent": 42},
			"store_name": "Demo & Co",
			"contact":    map[string]any{"phone": "+973 1700 0000"},
			"hero_video": "https://cdn.example.com/v.mp4",
		},
	}
	l := newTestLoader(t, repo)

	eff, err := l.Load(context.Background(), resolution("Demo Bakery", nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if eff.Key != "modern" || eff.UsingDefaults {
		t.Fatalf("expected modern theme, got %#v", eff)
	}
	if eff.Settings.Colors.Primary != "#FF0000" {
		t.Fatalf("expected overridden primary color")
	}
	if eff.Settings.Colors.Accent != "#10B981" {
		t.Fatalf("wrongly typed value should keep default, got %q", eff.Settings.Colors.Accent)
	}
	if eff.Settings.StoreName != "Demo & Co" || eff.Settings.Contact.Phone != "+973 1700 0000" {
		t.Fatalf("unexpected settings %#v", eff.Settings)
	}
	if eff.Settings.Extra["hero_video"] != "https://cdn.example.com/v.mp4" {
		t.Fatalf("unknown keys must pass through, got %#v", eff.Settings.Extra)
	}
}

func TestLoadInstalledThemeWithoutCompiledDefaultsKeepsIdentity(t *testing.T) {
	repo := newStubThemeRepo()
	luxe := repo.addTheme("luxe", true)
	repo.setting = &models.TenantThemeSetting{TenantID: uuid.New(), ThemeID: luxe.ID, IsActive: true}
	l := newTestLoader(t, repo)

	eff, err := l.Load(context.Background(), resolution("Demo Bakery", nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if eff.Key != "luxe" || eff.Name != "luxe" || eff.Version != "1.0.0" {
		t.Fatalf("expected luxe identity, got %#v", eff)
	}
	classic, _ := Defaults("classic")
	if eff.Settings.Colors != classic.Colors {
		t.Fatalf("expected borrowed classic palette, got %#v", eff.Settings.Colors)
	}
}

func TestLoadSloganPrefersDescription(t *testing.T) {
	cases := []struct {
		name        string
		description *string
		slogan      string
		want        string
	}{
		{"description wins", strPtr("Baked at dawn"), "Legacy slogan", "Baked at dawn"},
		{"blank description falls back", strPtr("   "), "Legacy slogan", "Legacy slogan"},
		{"nil description falls back", nil, "Legacy slogan", "Legacy slogan"},
		{"neither", nil, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubThemeRepo()
			classic := repo.addTheme("classic", true)
			repo.setting = &models.TenantThemeSetting{ThemeID: classic.ID, IsActive: true, Settings: types.JSONMap{"slogan": tc.slogan}}
			eff, err := newTestLoader(t, repo).Load(context.Background(), resolution("Shop", tc.description))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if eff.Settings.Slogan != tc.want {
				t.Fatalf("slogan = %q, want %q", eff.Settings.Slogan, tc.want)
			}
		})
	}
}

func TestLoadDisabledThemeFallsBack(t *testing.T) {
	repo := newStubThemeRepo()
	retired := repo.addTheme("modern", false)
	repo.setting = &models.TenantThemeSetting{ThemeID: retired.ID, IsActive: true, Settings: types.JSONMap{}}

	eff, err := newTestLoader(t, repo).Load(context.Background(), resolution("Shop", nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if eff.Key != DefaultKey || eff.Name != "Classic" {
		t.Fatalf("expected fallback to default theme, got %#v", eff)
	}
}

func TestLoadWrapsRepositoryErrors(t *testing.T) {
	repo := newStubThemeRepo()
	repo.err = errors.New("db down")
	_, err := newTestLoader(t, repo).Load(context.Background(), resolution("Shop", nil))
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func newTestLoader(t *testing.T, repo themeRepository) Loader {
	t.Helper()
	l, err := NewLoader(repo, "", logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}
	return l
}

func resolution(storeName string, description *string) *tenants.Resolution {
	return &tenants.Resolution{
		Tenant: tenants.TenantDTO{ID: uuid.New(), Handle: "demo"},
		Store:  tenants.StoreDTO{Name: storeName, Description: description, Currency: "BHD"},
	}
}

func strPtr(s string) *string { return &s }

type stubThemeRepo struct {
	themes  map[uuid.UUID]*models.Theme
	setting *models.TenantThemeSetting
	err     error
}

func newStubThemeRepo() *stubThemeRepo {
	return &stubThemeRepo{themes: map[uuid.UUID]*models.Theme{}}
}

func (s *stubThemeRepo) addTheme(key string, enabled bool) *models.Theme {
	theme := &models.Theme{ID: uuid.New(), Key: key, Name: key, Version: "1.0.0", IsEnabled: enabled}
	s.themes[theme.ID] = theme
	return theme
}

func (s *stubThemeRepo) FindActiveSetting(ctx context.Context, tenantID uuid.UUID) (*models.TenantThemeSetting, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.setting, nil
}

func (s *stubThemeRepo) FindThemeByID(ctx context.Context, id uuid.UUID) (*models.Theme, error) {
	return s.themes[id], nil
}

func (s *stubThemeRepo) FindThemeByKey(ctx context.Context, key string) (*models.Theme, error) {
	for _, theme := range s.themes {
		if theme.Key == key {
			return theme, nil
		}
	}
	return nil, nil
}
