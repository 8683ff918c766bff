package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap is a free-form string-keyed object persisted as JSONB.
type JSONMap map[string]any

// Value marshals the map into JSON for Postgres.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	buf, err := json.Marshal(map[string]any(m))
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes JSONB into the map.
func (m *JSONMap) Scan(value interface{}) error {
	raw, err := scanBytes("json map", value)
	if err != nil || raw == nil {
		*m = nil
		return err
	}
	result := make(JSONMap)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*m = result
	return nil
}

// Customizations maps an option name to the selected value(s).
type Customizations map[string][]string

// Value marshals the selections into JSON for Postgres.
func (c Customizations) Value() (driver.Value, error) {
	if c == nil {
		return "{}", nil
	}
	buf, err := json.Marshal(map[string][]string(c))
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes JSONB into the selections.
func (c *Customizations) Scan(value interface{}) error {
	raw, err := scanBytes("customizations", value)
	if err != nil || raw == nil {
		*c = nil
		return err
	}
	result := make(Customizations)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*c = result
	return nil
}

func scanBytes(name string, value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("%s: unsupported scan type %T", name, value)
	}
}

// RawJSON is an undecoded JSON document. Decoding is left to the consumer so a
// malformed value fails only where it is read.
type RawJSON []byte

// Value writes the raw document, defaulting to an empty object.
func (r RawJSON) Value() (driver.Value, error) {
	if len(r) == 0 {
		return "{}", nil
	}
	return string(r), nil
}

// Scan copies the raw document.
func (r *RawJSON) Scan(value interface{}) error {
	raw, err := scanBytes("raw json", value)
	if err != nil || raw == nil {
		*r = nil
		return err
	}
	*r = append((*r)[:0], raw...)
	return nil
}

// MarshalJSON emits the document as-is, or null when empty.
func (r RawJSON) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}
