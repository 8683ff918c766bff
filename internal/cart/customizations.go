package cart

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// Canonicalize trims, de-duplicates and sorts selections and drops empty
// options, so equal choices compare equal regardless of input order.
func Canonicalize(in types.Customizations) types.Customizations {
	out := make(types.Customizations, len(in))
	for name, values := range in {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		seen := make(map[string]struct{}, len(values))
		clean := make([]string, 0, len(values))
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			clean = append(clean, v)
		}
		if len(clean) == 0 {
			continue
		}
		sort.Strings(clean)
		out[name] = clean
	}
	return out
}

// Key renders canonical customizations as a stable comparison key. Map keys
// are emitted sorted and values escaped, so separators inside names or values
// cannot collide.
func Key(c types.Customizations) string {
	if len(c) == 0 {
		return "{}"
	}
	// map[string][]string always marshals.
	raw, _ := json.Marshal(map[string][]string(c))
	return string(raw)
}

// ValidateCustomizations checks canonical selections against a product's options.
func ValidateCustomizations(options types.ProductOptions, c types.Customizations) error {
	byName := make(map[string]types.ProductOption, len(options))
	for _, opt := range options {
		byName[opt.Name] = opt
	}

	problems := map[string]string{}
	for name, values := range c {
		opt, ok := byName[name]
		if !ok {
			problems[name] = "unknown option"
			continue
		}
		if !opt.Multiple && len(values) > 1 {
			problems[name] = "only one value allowed"
			continue
		}
		for _, v := range values {
			if !contains(opt.Values, v) {
				problems[name] = fmt.Sprintf("invalid value %q", v)
				break
			}
		}
	}
	for _, opt := range options {
		if opt.Required && len(c[opt.Name]) == 0 {
			problems[opt.Name] = "required"
		}
	}
	if len(problems) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid customizations").WithDetails(problems)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
