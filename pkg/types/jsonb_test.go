package types

import "testing"

func TestJSONMapRoundTripThroughDriver(t *testing.T) {
	in := JSONMap{"headline": "Fresh bread", "limit": float64(4)}
	value, err := in.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	var out JSONMap
	if err := out.Scan([]byte(value.(string))); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if out["headline"] != "Fresh bread" || out["limit"] != float64(4) {
		t.Fatalf("unexpected map %#v", out)
	}
}

func TestScanNilAndUnsupported(t *testing.T) {
	var m JSONMap
	if err := m.Scan(nil); err != nil || m != nil {
		t.Fatalf("nil scan should leave nil map, got %#v %v", m, err)
	}
	var c Customizations
	if err := c.Scan(42); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
	var seo SEO
	if err := seo.Scan(`{"title":"Menu"}`); err != nil || seo.Title != "Menu" {
		t.Fatalf("unexpected seo %#v %v", seo, err)
	}
}
