package storefront

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/storefront-backend/internal/pages"
	"github.com/angelmondragon/storefront-backend/internal/tenants"
	"github.com/angelmondragon/storefront-backend/internal/themes"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// Chrome is the tenant-level frame shared by every storefront response.
type Chrome struct {
	Tenant        tenants.TenantDTO `json:"tenant"`
	Store         tenants.StoreDTO  `json:"store"`
	PrimaryDomain string            `json:"primary_domain,omitempty"`
	Theme         *themes.Effective `json:"theme"`
}

// PageView is a composed page inside its chrome.
type PageView struct {
	Chrome
	Page *pages.RenderedPage `json:"page"`
}

// Service composes storefront responses for a resolved tenant.
type Service interface {
	Chrome(ctx context.Context, res *tenants.Resolution) (*Chrome, error)
	Page(ctx context.Context, res *tenants.Resolution, slug string) (*PageView, error)
}

type service struct {
	themes   themes.Loader
	composer pages.Composer
}

// NewService builds the storefront façade.
func NewService(loader themes.Loader, composer pages.Composer) (Service, error) {
	if loader == nil {
		return nil, fmt.Errorf("theme loader required")
	}
	if composer == nil {
		return nil, fmt.Errorf("page composer required")
	}
	return &service{themes: loader, composer: composer}, nil
}

func (s *service) Chrome(ctx context.Context, res *tenants.Resolution) (*Chrome, error) {
	if res == nil {
		return nil, pkgerrors.New(pkgerrors.CodeTenantNotFound, "store not found")
	}
	theme, err := s.themes.Load(ctx, res)
	if err != nil {
		return nil, err
	}
	return newChrome(res, theme), nil
}

// Page loads the theme and the page rows concurrently, then renders the
// sections with the theme. A missing page yields PAGE_NOT_FOUND whose details
// still carry the chrome.
func (s *service) Page(ctx context.Context, res *tenants.Resolution, slug string) (*PageView, error) {
	if res == nil {
		return nil, pkgerrors.New(pkgerrors.CodeTenantNotFound, "store not found")
	}

	var (
		theme   *themes.Effective
		loaded  *pages.LoadedPage
		pageErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		theme, err = s.themes.Load(gctx, res)
		return err
	})
	g.Go(func() error {
		loaded, pageErr = s.composer.Load(gctx, res.Tenant.ID, slug)
		if pkgerrors.IsCode(pageErr, pkgerrors.CodePageNotFound) {
			return nil
		}
		return pageErr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &PageView{Chrome: *newChrome(res, theme)}
	if pageErr != nil {
		details := map[string]any{"chrome": view.Chrome}
		if typed := pkgerrors.As(pageErr); typed != nil {
			if d, ok := typed.Details().(map[string]any); ok {
				for k, v := range d {
					details[k] = v
				}
			}
		}
		return view, pkgerrors.New(pkgerrors.CodePageNotFound, "page not found").WithDetails(details)
	}
	view.Page = s.composer.Compose(ctx, pages.Target{Resolution: res, Theme: theme}, loaded)
	return view, nil
}

func newChrome(res *tenants.Resolution, theme *themes.Effective) *Chrome {
	return &Chrome{
		Tenant:        res.Tenant,
		Store:         res.Store,
		PrimaryDomain: res.PrimaryDomain,
		Theme:         theme,
	}
}
