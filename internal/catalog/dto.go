package catalog

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/money"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// Scope pins catalog reads to one tenant and its display currency.
type Scope struct {
	TenantID uuid.UUID
	Currency string
}

// ProductDTO is the storefront view of a product.
type ProductDTO struct {
	ID             uuid.UUID            `json:"id"`
	CategoryID     *uuid.UUID           `json:"category_id,omitempty"`
	Name           string               `json:"name"`
	Description    string               `json:"description,omitempty"`
	Price          money.Amount         `json:"price_minor"`
	PriceFormatted string               `json:"price"`
	Currency       string               `json:"currency"`
	Images         []string             `json:"images"`
	Available      bool                 `json:"available"`
	Featured       bool                 `json:"featured"`
	Options        types.ProductOptions `json:"options,omitempty"`
}

// CategoryDTO is the storefront view of a category.
type CategoryDTO struct {
	ID       uuid.UUID `json:"id"`
	Slug     string    `json:"slug"`
	Name     string    `json:"name"`
	ImageURL string    `json:"image_url,omitempty"`
}

// ProductQuery filters a product listing.
type ProductQuery struct {
	CategorySlug string
	Limit        int
	Cursor       string
}

func productFromModel(p models.Product, currency string) ProductDTO {
	dto := ProductDTO{
		ID:             p.ID,
		CategoryID:     p.CategoryID,
		Name:           p.Name,
		Price:          money.Amount(p.PriceMinor),
		PriceFormatted: money.Format(money.Amount(p.PriceMinor), currency),
		Currency:       currency,
		Images:         []string(p.Images),
		Available:      p.Available,
		Featured:       p.Featured,
		Options:        p.Options,
	}
	if dto.Images == nil {
		dto.Images = []string{}
	}
	if p.Description != nil {
		dto.Description = *p.Description
	}
	return dto
}

func categoryFromModel(c models.Category) CategoryDTO {
	dto := CategoryDTO{ID: c.ID, Slug: c.Slug, Name: c.Name}
	if c.ImageURL != nil {
		dto.ImageURL = *c.ImageURL
	}
	return dto
}
