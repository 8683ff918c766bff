package enums

import "fmt"

// SectionType discriminates storefront section renderers.
type SectionType string

const (
	SectionHero             SectionType = "hero"
	SectionFeaturedProducts SectionType = "featured_products"
	SectionCategories       SectionType = "categories"
	SectionNewsletter       SectionType = "newsletter"
	SectionProductGrid      SectionType = "product_grid"
	SectionCategoryFilters  SectionType = "category_filters"
	SectionContent          SectionType = "content"
	SectionTeam             SectionType = "team"
	SectionValues           SectionType = "values"
	SectionContactInfo      SectionType = "contact_info"
	SectionContactForm      SectionType = "contact_form"
	SectionFAQ              SectionType = "faq"
)

var validSectionTypes = []SectionType{
	SectionHero,
	SectionFeaturedProducts,
	SectionCategories,
	SectionNewsletter,
	SectionProductGrid,
	SectionCategoryFilters,
	SectionContent,
	SectionTeam,
	SectionValues,
	SectionContactInfo,
	SectionContactForm,
	SectionFAQ,
}

// SectionTypes returns every known section type in registry order.
func SectionTypes() []SectionType {
	out := make([]SectionType, len(validSectionTypes))
	copy(out, validSectionTypes)
	return out
}

// String implements fmt.Stringer.
func (s SectionType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SectionType.
func (s SectionType) IsValid() bool {
	for _, candidate := range validSectionTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSectionType converts raw input into a SectionType.
func ParseSectionType(value string) (SectionType, error) {
	for _, candidate := range validSectionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid section type %q", value)
}
