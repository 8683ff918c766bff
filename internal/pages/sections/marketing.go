package sections

import (
	"context"

	"github.com/angelmondragon/storefront-backend/internal/themes"
)

// Hero is the banner at the top of a page.
type Hero struct {
	Title     string         `json:"title"`
	Subtitle  string         `json:"subtitle,omitempty"`
	ImageURL  string         `json:"image_url,omitempty"`
	CTALabel  string         `json:"cta_label"`
	CTAHref   string         `json:"cta_href"`
	Alignment string         `json:"alignment"`
	Extra     map[string]any `json:"extra,omitempty"`
}

func renderHero(_ context.Context, rc Context, p Props) (any, error) {
	return Hero{
		Title:     p.String("title", storeName(rc)),
		Subtitle:  p.String("subtitle", slogan(rc)),
		ImageURL:  p.String("image_url", ""),
		CTALabel:  p.String("cta_label", "Shop now"),
		CTAHref:   p.String("cta_href", "/products"),
		Alignment: oneOf(p.String("alignment", ""), "center", "left", "right"),
		Extra:     p.Extra("title", "subtitle", "image_url", "cta_label", "cta_href", "alignment"),
	}, nil
}

// Newsletter is an email capture block.
type Newsletter struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Placeholder string         `json:"placeholder"`
	ButtonLabel string         `json:"button_label"`
	Extra       map[string]any `json:"extra,omitempty"`
}

func renderNewsletter(_ context.Context, _ Context, p Props) (any, error) {
	return Newsletter{
		Title:       p.String("title", "Stay in the loop"),
		Description: p.String("description", ""),
		Placeholder: p.String("placeholder", "Email address"),
		ButtonLabel: p.String("button_label", "Subscribe"),
		Extra:       p.Extra("title", "description", "placeholder", "button_label"),
	}, nil
}

// Content is a free text block with an optional image.
type Content struct {
	Title         string         `json:"title,omitempty"`
	Body          string         `json:"body"`
	ImageURL      string         `json:"image_url,omitempty"`
	ImagePosition string         `json:"image_position"`
	Extra         map[string]any `json:"extra,omitempty"`
}

func renderContent(_ context.Context, _ Context, p Props) (any, error) {
	return Content{
		Title:         p.String("title", ""),
		Body:          p.String("body", ""),
		ImageURL:      p.String("image_url", ""),
		ImagePosition: oneOf(p.String("image_position", ""), "right", "left"),
		Extra:         p.Extra("title", "body", "image_url", "image_position"),
	}, nil
}

// TeamMember is one person on the team section.
type TeamMember struct {
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// Team lists the people behind the store.
type Team struct {
	Title   string         `json:"title"`
	Members []TeamMember   `json:"members"`
	Extra   map[string]any `json:"extra,omitempty"`
}

func renderTeam(_ context.Context, _ Context, p Props) (any, error) {
	members := make([]TeamMember, 0)
	for _, m := range p.Objects("members") {
		name := m.String("name", "")
		if name == "" {
			continue
		}
		members = append(members, TeamMember{
			Name:     name,
			Role:     m.String("role", ""),
			ImageURL: m.String("image_url", ""),
			Bio:      m.String("bio", ""),
		})
	}
	return Team{
		Title:   p.String("title", "Our team"),
		Members: members,
		Extra:   p.Extra("title", "members"),
	}, nil
}

// ValueItem is one entry of the values section.
type ValueItem struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// Values lists what the store stands for.
type Values struct {
	Title string         `json:"title"`
	Items []ValueItem    `json:"items"`
	Extra map[string]any `json:"extra,omitempty"`
}

func renderValues(_ context.Context, _ Context, p Props) (any, error) {
	items := make([]ValueItem, 0)
	for _, item := range p.Objects("items") {
		title := item.String("title", "")
		if title == "" {
			continue
		}
		items = append(items, ValueItem{
			Title:       title,
			Description: item.String("description", ""),
			Icon:        item.String("icon", ""),
		})
	}
	return Values{
		Title: p.String("title", "Our values"),
		Items: items,
		Extra: p.Extra("title", "items"),
	}, nil
}

func storeName(rc Context) string {
	if rc.Theme != nil && rc.Theme.Settings.StoreName != "" {
		return rc.Theme.Settings.StoreName
	}
	return rc.Store.Name
}

func slogan(rc Context) string {
	if rc.Theme == nil {
		return ""
	}
	return rc.Theme.Settings.Slogan
}

func contactDefaults(rc Context) themes.Contact {
	var c themes.Contact
	if rc.Theme != nil {
		c = rc.Theme.Settings.Contact
	}
	return c
}

// oneOf returns value when it is among allowed, else the first allowed entry.
func oneOf(value string, allowed ...string) string {
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	return allowed[0]
}
