package sections

import (
	"math"
	"strconv"
	"strings"
)

// Props is a lenient reader over a section's props object. Every accessor
// returns the supplied default when a key is missing or has the wrong shape.
type Props map[string]any

// String returns a trimmed, non-blank string value.
func (p Props) String(key, def string) string {
	v, ok := p[key].(string)
	if !ok {
		return def
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

// Int accepts JSON numbers and numeric strings.
func (p Props) Int(key string, def int) int {
	switch v := p[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return def
		}
		return n
	default:
		return def
	}
}

// Bool accepts JSON booleans and "true"/"false" strings.
func (p Props) Bool(key string, def bool) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return def
		}
		return b
	default:
		return def
	}
}

// Strings collects the non-blank string entries of an array value.
func (p Props) Strings(key string) []string {
	raw, ok := p[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

// Object returns a nested object, or an empty Props.
func (p Props) Object(key string) Props {
	if m, ok := p[key].(map[string]any); ok {
		return Props(m)
	}
	return Props{}
}

// Objects returns the object entries of an array value, skipping anything else.
func (p Props) Objects(key string) []Props {
	raw, ok := p[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Props, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Props(m))
		}
	}
	return out
}

// Extra returns the keys a renderer does not read.
func (p Props) Extra(known ...string) map[string]any {
	skip := make(map[string]struct{}, len(known))
	for _, k := range known {
		skip[k] = struct{}{}
	}
	var out map[string]any
	for k, v := range p {
		if _, ok := skip[k]; ok {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[k] = v
	}
	return out
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
