package tenants

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/visibility"
)

type tenantRepository interface {
	FindByDomain(ctx context.Context, domain string) (*models.Tenant, error)
	FindByHandle(ctx context.Context, handle string) (*models.Tenant, error)
	FindStore(ctx context.Context, tenantID uuid.UUID) (*models.Store, error)
	PrimaryDomain(ctx context.Context, tenantID uuid.UUID) (string, error)
}

type resolutionCache interface {
	Load(ctx context.Context, lookup Lookup) (*Resolution, error)
	Save(ctx context.Context, lookup Lookup, res *Resolution) error
}

// Resolver maps an inbound host or path handle to a tenant and its store.
type Resolver interface {
	Resolve(ctx context.Context, lookup Lookup) (*Resolution, error)
}

// ResolverParams wires the resolver. Cache and Metrics are optional.
type ResolverParams struct {
	Repository tenantRepository
	Cache      resolutionCache
	BaseDomain string
	Logger     *logger.Logger
	Metrics    *metrics.StorefrontMetrics
}

type resolver struct {
	repo       tenantRepository
	cache      resolutionCache
	baseDomain string
	logg       *logger.Logger
	metrics    *metrics.StorefrontMetrics
}

// NewResolver builds a tenant resolver.
func NewResolver(params ResolverParams) (Resolver, error) {
	if params.Repository == nil {
		return nil, fmt.Errorf("tenant repository required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &resolver{
		repo:       params.Repository,
		cache:      params.Cache,
		baseDomain: params.BaseDomain,
		logg:       params.Logger,
		metrics:    params.Metrics,
	}, nil
}

func (r *resolver) Resolve(ctx context.Context, lookup Lookup) (*Resolution, error) {
	host := NormalizeHost(lookup.Host)
	if host == "" && lookup.PathHandle == "" {
		return nil, pkgerrors.New(pkgerrors.CodeTenantNotFound, "store not found")
	}

	if cached := r.fromCache(ctx, lookup); cached != nil {
		return cached, nil
	}

	tenant, matched, err := r.match(ctx, host, lookup.PathHandle)
	if err != nil {
		return nil, err
	}
	if err := visibility.EnsureTenantServable(tenant); err != nil {
		return nil, err
	}

	store, err := r.repo.FindStore(ctx, tenant.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	primary, err := r.repo.PrimaryDomain(ctx, tenant.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load primary domain")
	}

	res := &Resolution{
		Tenant:        FromModel(tenant),
		Store:         StoreFromModel(store, tenant),
		PrimaryDomain: primary,
		MatchedBy:     matched,
	}
	r.toCache(ctx, lookup, res)
	return res, nil
}

// match applies exact domain first, then the handle fallbacks.
func (r *resolver) match(ctx context.Context, host, pathHandle string) (*models.Tenant, MatchKind, error) {
	if host != "" {
		tenant, err := r.repo.FindByDomain(ctx, host)
		switch {
		case err == nil:
			return tenant, MatchDomain, nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup tenant domain")
		}
	}

	handle, kind := "", MatchKind("")
	if h, ok := NormalizeHandle(pathHandle); ok {
		handle, kind = h, MatchPath
	} else if h, ok := HandleFromHost(host, r.baseDomain); ok {
		handle, kind = h, MatchSubdomain
	}
	if handle == "" {
		return nil, "", pkgerrors.New(pkgerrors.CodeTenantNotFound, "store not found")
	}

	tenant, err := r.repo.FindByHandle(ctx, handle)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", pkgerrors.New(pkgerrors.CodeTenantNotFound, "store not found").WithDetails(map[string]any{"handle": handle})
	}
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup tenant handle")
	}
	return tenant, kind, nil
}

func (r *resolver) fromCache(ctx context.Context, lookup Lookup) *Resolution {
	if r.cache == nil {
		return nil
	}
	res, err := r.cache.Load(ctx, lookup)
	if err != nil {
		r.logg.Warn(r.logg.WithField(ctx, "error", err.Error()), "tenant.cache.read_failed")
		return nil
	}
	r.metrics.TenantCache(res != nil)
	return res
}

func (r *resolver) toCache(ctx context.Context, lookup Lookup, res *Resolution) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Save(ctx, lookup, res); err != nil {
		r.logg.Warn(r.logg.WithField(ctx, "error", err.Error()), "tenant.cache.write_failed")
	}
}
