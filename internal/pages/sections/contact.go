package sections

import "context"

// ContactInfo shows how to reach the store.
type ContactInfo struct {
	Title    string         `json:"title"`
	Phone    string         `json:"phone,omitempty"`
	Email    string         `json:"email,omitempty"`
	Address  string         `json:"address,omitempty"`
	WhatsApp string         `json:"whatsapp,omitempty"`
	ShowMap  bool           `json:"show_map"`
	Extra    map[string]any `json:"extra,omitempty"`
}

func renderContactInfo(_ context.Context, rc Context, p Props) (any, error) {
	contact := contactDefaults(rc)
	return ContactInfo{
		Title:    p.String("title", "Contact us"),
		Phone:    p.String("phone", contact.Phone),
		Email:    p.String("email", contact.Email),
		Address:  p.String("address", contact.Address),
		WhatsApp: p.String("whatsapp", contact.WhatsApp),
		ShowMap:  p.Bool("show_map", false),
		Extra:    p.Extra("title", "phone", "email", "address", "whatsapp", "show_map"),
	}, nil
}

var defaultContactFields = []string{"name", "email", "message"}

// ContactForm describes the message form.
type ContactForm struct {
	Title       string         `json:"title"`
	Fields      []string       `json:"fields"`
	SubmitLabel string         `json:"submit_label"`
	Extra       map[string]any `json:"extra,omitempty"`
}

func renderContactForm(_ context.Context, _ Context, p Props) (any, error) {
	fields := p.Strings("fields")
	if len(fields) == 0 {
		fields = append([]string(nil), defaultContactFields...)
	}
	return ContactForm{
		Title:       p.String("title", "Send us a message"),
		Fields:      fields,
		SubmitLabel: p.String("submit_label", "Send"),
		Extra:       p.Extra("title", "fields", "submit_label"),
	}, nil
}

// FAQItem is one question and answer.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQ is a list of questions and answers.
type FAQ struct {
	Title string         `json:"title"`
	Items []FAQItem      `json:"items"`
	Extra map[string]any `json:"extra,omitempty"`
}

func renderFAQ(_ context.Context, _ Context, p Props) (any, error) {
	items := make([]FAQItem, 0)
	for _, item := range p.Objects("items") {
		q, a := item.String("question", ""), item.String("answer", "")
		if q == "" || a == "" {
			continue
		}
		items = append(items, FAQItem{Question: q, Answer: a})
	}
	return FAQ{
		Title: p.String("title", "Frequently asked questions"),
		Items: items,
		Extra: p.Extra("title", "items"),
	}, nil
}
