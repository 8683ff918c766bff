package themes

import "strings"

// Colors is the theme palette.
type Colors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// Fonts names the heading and body typefaces.
type Fonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Contact is the store's public contact block.
type Contact struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	WhatsApp string `json:"whatsapp"`
}

// Social holds profile links.
type Social struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	TikTok    string `json:"tiktok"`
	Snapchat  string `json:"snapchat"`
}

// Settings is the typed view of a tenant's theme settings. Keys this type
// does not model are kept in Extra and passed through untouched.
type Settings struct {
	Colors    Colors         `json:"colors"`
	Fonts     Fonts          `json:"fonts"`
	StoreName string         `json:"store_name"`
	Slogan    string         `json:"slogan"`
	LogoURL   string         `json:"logo_url"`
	Contact   Contact        `json:"contact"`
	Social    Social         `json:"social"`
	Extra     map[string]any `json:"extra,omitempty"`
}

var knownKeys = map[string]struct{}{
	"colors": {}, "fonts": {}, "store_name": {}, "slogan": {}, "logo_url": {}, "contact": {}, "social": {},
}

// Overlay applies the stored settings map on top of base. Only present,
// correctly typed, non-blank values override.
func Overlay(base Settings, raw map[string]any) Settings {
	out := base
	out.Extra = copyMap(base.Extra)

	if colors, ok := raw["colors"].(map[string]any); ok {
		setString(&out.Colors.Primary, colors, "primary")
		setString(&out.Colors.Secondary, colors, "secondary")
		setString(&out.Colors.Accent, colors, "accent")
		setString(&out.Colors.Background, colors, "background")
		setString(&out.Colors.Text, colors, "text")
	}
	if fonts, ok := raw["fonts"].(map[string]any); ok {
		setString(&out.Fonts.Heading, fonts, "heading")
		setString(&out.Fonts.Body, fonts, "body")
	}
	setString(&out.StoreName, raw, "store_name")
	setString(&out.Slogan, raw, "slogan")
	setString(&out.LogoURL, raw, "logo_url")
	if contact, ok := raw["contact"].(map[string]any); ok {
		setString(&out.Contact.Phone, contact, "phone")
		setString(&out.Contact.Email, contact, "email")
		setString(&out.Contact.Address, contact, "address")
		setString(&out.Contact.WhatsApp, contact, "whatsapp")
	}
	if social, ok := raw["social"].(map[string]any); ok {
		setString(&out.Social.Instagram, social, "instagram")
		setString(&out.Social.Facebook, social, "facebook")
		setString(&out.Social.Twitter, social, "twitter")
		setString(&out.Social.TikTok, social, "tiktok")
		setString(&out.Social.Snapchat, social, "snapchat")
	}

	for key, value := range raw {
		if _, known := knownKeys[key]; known {
			continue
		}
		if out.Extra == nil {
			out.Extra = map[string]any{}
		}
		out.Extra[key] = value
	}
	return out
}

func setString(dst *string, m map[string]any, key string) {
	v, ok := m[key].(string)
	if !ok {
		return
	}
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func copyMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
