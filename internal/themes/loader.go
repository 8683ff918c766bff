package themes

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/tenants"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type themeRepository interface {
	FindActiveSetting(ctx context.Context, tenantID uuid.UUID) (*models.TenantThemeSetting, error)
	FindThemeByID(ctx context.Context, id uuid.UUID) (*models.Theme, error)
	FindThemeByKey(ctx context.Context, key string) (*models.Theme, error)
}

// Effective is the theme a storefront renders with.
type Effective struct {
	Key           string   `json:"key"`
	Name          string   `json:"name"`
	Version       string   `json:"version"`
	Settings      Settings `json:"settings"`
	UsingDefaults bool     `json:"using_defaults"`
}

// Loader resolves a tenant's effective theme.
type Loader interface {
	Load(ctx context.Context, res *tenants.Resolution) (*Effective, error)
}

type loader struct {
	repo       themeRepository
	defaultKey string
	logg       *logger.Logger
}

// NewLoader builds a theme loader. An empty or unknown defaultKey falls back to DefaultKey.
func NewLoader(repo themeRepository, defaultKey string, logg *logger.Logger) (Loader, error) {
	if repo == nil {
		return nil, fmt.Errorf("theme repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if _, ok := Defaults(defaultKey); !ok {
		defaultKey = DefaultKey
	}
	return &loader{repo: repo, defaultKey: defaultKey, logg: logg}, nil
}

func (l *loader) Load(ctx context.Context, res *tenants.Resolution) (*Effective, error) {
	if res == nil {
		return nil, pkgerrors.New(pkgerrors.CodeTenantNotFound, "store not found")
	}

	setting, err := l.repo.FindActiveSetting(ctx, res.Tenant.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load theme settings")
	}

	var theme *models.Theme
	if setting != nil {
		theme, err = l.repo.FindThemeByID(ctx, setting.ThemeID)
	} else {
		theme, err = l.repo.FindThemeByKey(ctx, l.defaultKey)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load theme")
	}

	eff := l.base(ctx, theme)
	if setting != nil {
		eff.Settings = Overlay(eff.Settings, setting.Settings)
	} else {
		eff.UsingDefaults = true
	}
	applyStore(&eff.Settings, res.Store)
	return eff, nil
}

// base starts from the theme's compiled defaults. An enabled theme without
// compiled defaults keeps its identity and borrows the default key's settings;
// a missing or disabled theme falls back to the default key entirely.
func (l *loader) base(ctx context.Context, theme *models.Theme) *Effective {
	fallback, _ := Defaults(l.defaultKey)
	if theme != nil && theme.IsEnabled {
		eff := &Effective{Key: theme.Key, Name: theme.Name, Version: theme.Version}
		if defaults, ok := Defaults(theme.Key); ok {
			eff.Settings = defaults
			return eff
		}
		ctx = l.logg.WithFields(ctx, map[string]any{"theme_key": theme.Key, "defaults_key": l.defaultKey})
		l.logg.Info(ctx, "theme.defaults_borrowed")
		eff.Settings = fallback
		return eff
	}
	if theme != nil {
		ctx = l.logg.WithFields(ctx, map[string]any{"theme_key": theme.Key, "theme_enabled": theme.IsEnabled})
		l.logg.Warn(ctx, "theme.fallback_to_default")
	}
	return &Effective{Key: l.defaultKey, Name: displayName(l.defaultKey), Version: "builtin", Settings: fallback}
}

// applyStore fills store-derived fields. A non-blank store description is the
// slogan; settings.slogan is only used when the description is blank.
func applyStore(s *Settings, store tenants.StoreDTO) {
	if store.Description != nil && strings.TrimSpace(*store.Description) != "" {
		s.Slogan = strings.TrimSpace(*store.Description)
	}
	if s.StoreName == "" {
		s.StoreName = store.Name
	}
	if s.LogoURL == "" && store.LogoURL != nil {
		s.LogoURL = *store.LogoURL
	}
}

func displayName(key string) string {
	if key == "" {
		return ""
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
