package types

import (
	"database/sql/driver"
	"encoding/json"
)

// ProductOption describes a customization a shopper can pick for a product.
type ProductOption struct {
	Name     string   `json:"name"`
	Values   []string `json:"values"`
	Required bool     `json:"required,omitempty"`
	Multiple bool     `json:"multiple,omitempty"`
}

// ProductOptions is persisted as a JSONB array.
type ProductOptions []ProductOption

// Value marshals the options into JSON for Postgres.
func (o ProductOptions) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	buf, err := json.Marshal([]ProductOption(o))
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes JSONB into the options.
func (o *ProductOptions) Scan(value interface{}) error {
	raw, err := scanBytes("product options", value)
	if err != nil || raw == nil {
		*o = nil
		return err
	}
	var result ProductOptions
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*o = result
	return nil
}

// SEO carries page metadata for search engines and link previews.
type SEO struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Value marshals the metadata into JSON for Postgres.
func (s SEO) Value() (driver.Value, error) {
	buf, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes JSONB into the metadata.
func (s *SEO) Scan(value interface{}) error {
	raw, err := scanBytes("seo", value)
	if err != nil || raw == nil {
		*s = SEO{}
		return err
	}
	return json.Unmarshal(raw, s)
}
