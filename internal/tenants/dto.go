package tenants

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/money"
)

// MatchKind records which rule resolved the tenant.
type MatchKind string

const (
	MatchDomain    MatchKind = "domain"
	MatchSubdomain MatchKind = "subdomain"
	MatchPath      MatchKind = "path"
)

// Lookup is the inbound request data used for resolution.
type Lookup struct {
	Host       string
	PathHandle string
}

// TenantDTO is the tenant view carried through a request.
type TenantDTO struct {
	ID          uuid.UUID          `json:"id"`
	Handle      string             `json:"handle"`
	DisplayName string             `json:"display_name"`
	Status      enums.TenantStatus `json:"status"`
}

// StoreDTO is the merchant profile shown on the storefront.
type StoreDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Currency    string    `json:"currency"`
	Phone       *string   `json:"phone,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Address     *string   `json:"address,omitempty"`
	LogoURL     *string   `json:"logo_url,omitempty"`
}

// Resolution is the outcome of resolving a request to a tenant.
type Resolution struct {
	Tenant        TenantDTO `json:"tenant"`
	Store         StoreDTO  `json:"store"`
	PrimaryDomain string    `json:"primary_domain,omitempty"`
	MatchedBy     MatchKind `json:"matched_by"`
}

// FromModel maps a tenant row.
func FromModel(t *models.Tenant) TenantDTO {
	return TenantDTO{
		ID:          t.ID,
		Handle:      t.Handle,
		DisplayName: t.DisplayName,
		Status:      t.Status,
	}
}

// StoreFromModel maps a store row, falling back to tenant data when the row is missing.
func StoreFromModel(s *models.Store, tenant *models.Tenant) StoreDTO {
	if s == nil {
		return StoreDTO{Name: tenant.DisplayName, Currency: money.DefaultCurrency}
	}
	currency := s.Currency
	if currency == "" {
		currency = money.DefaultCurrency
	}
	return StoreDTO{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Currency:    currency,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		LogoURL:     s.LogoURL,
	}
}
