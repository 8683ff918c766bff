package sections

import (
	"context"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

type productSections struct {
	catalog CatalogReader
}

// ProductList is the view model of featured_products and product_grid.
type ProductList struct {
	Title      string               `json:"title"`
	Category   string               `json:"category,omitempty"`
	Columns    int                  `json:"columns,omitempty"`
	ShowPrices bool                 `json:"show_prices"`
	Products   []catalog.ProductDTO `json:"products"`
	NextCursor string               `json:"next_cursor,omitempty"`
	Extra      map[string]any       `json:"extra,omitempty"`
}

func (s productSections) featured(ctx context.Context, rc Context, p Props) (any, error) {
	products, err := s.catalog.FeaturedProducts(ctx, rc.Scope, clamp(p.Int("limit", 8), 1, 24))
	if err != nil {
		return nil, err
	}
	return ProductList{
		Title:      p.String("title", "Featured products"),
		ShowPrices: p.Bool("show_prices", true),
		Products:   products,
		Extra:      p.Extra("title", "limit", "show_prices"),
	}, nil
}

// grid falls back to the full catalog when the configured category is gone.
func (s productSections) grid(ctx context.Context, rc Context, p Props) (any, error) {
	query := catalog.ProductQuery{
		CategorySlug: p.String("category", ""),
		Limit:        clamp(p.Int("limit", 12), 1, 48),
	}
	page, err := s.catalog.ListProducts(ctx, rc.Scope, query)
	if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) && query.CategorySlug != "" {
		query.CategorySlug = ""
		page, err = s.catalog.ListProducts(ctx, rc.Scope, query)
	}
	if err != nil {
		return nil, err
	}
	return ProductList{
		Title:      p.String("title", "All products"),
		Category:   query.CategorySlug,
		Columns:    clamp(p.Int("columns", 3), 1, 6),
		ShowPrices: p.Bool("show_prices", true),
		Products:   page.Items,
		NextCursor: page.NextCursor,
		Extra:      p.Extra("title", "category", "limit", "columns", "show_prices"),
	}, nil
}

// CategoryList is the view model of the categories section.
type CategoryList struct {
	Title      string                `json:"title"`
	Layout     string                `json:"layout"`
	Categories []catalog.CategoryDTO `json:"categories"`
	Extra      map[string]any        `json:"extra,omitempty"`
}

func (s productSections) categories(ctx context.Context, rc Context, p Props) (any, error) {
	categories, err := s.catalog.ListCategories(ctx, rc.Scope, clamp(p.Int("limit", 12), 1, 48))
	if err != nil {
		return nil, err
	}
	return CategoryList{
		Title:      p.String("title", "Shop by category"),
		Layout:     oneOf(p.String("layout", ""), "grid", "carousel"),
		Categories: categories,
		Extra:      p.Extra("title", "limit", "layout"),
	}, nil
}

// CategoryFilters is the filter bar above a product listing.
type CategoryFilters struct {
	Title      string                `json:"title"`
	ShowAll    bool                  `json:"show_all"`
	AllLabel   string                `json:"all_label,omitempty"`
	Categories []catalog.CategoryDTO `json:"categories"`
	Extra      map[string]any        `json:"extra,omitempty"`
}

func (s productSections) filters(ctx context.Context, rc Context, p Props) (any, error) {
	categories, err := s.catalog.ListCategories(ctx, rc.Scope, 0)
	if err != nil {
		return nil, err
	}
	view := CategoryFilters{
		Title:      p.String("title", "Categories"),
		ShowAll:    p.Bool("show_all", true),
		Categories: categories,
		Extra:      p.Extra("title", "show_all", "all_label"),
	}
	if view.ShowAll {
		view.AllLabel = p.String("all_label", "All")
	}
	return view, nil
}
