package enums

import "testing"

func TestOrderStatusTerminal(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled} {
		if !status.IsTerminal() {
			t.Fatalf("%s should be terminal", status)
		}
	}
	for _, status := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady} {
		if status.IsTerminal() {
			t.Fatalf("%s should not be terminal", status)
		}
	}
}

func TestOrderStatusRankIsForward(t *testing.T) {
	chain := []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered}
	for i := 1; i < len(chain); i++ {
		if chain[i].Rank() <= chain[i-1].Rank() {
			t.Fatalf("%s should rank after %s", chain[i], chain[i-1])
		}
	}
	if OrderStatusCancelled.Rank() != -1 {
		t.Fatalf("cancelled sits outside the chain")
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	if _, err := ParseSectionType("unknown_widget"); err == nil {
		t.Fatalf("expected error for unknown section type")
	}
	if _, err := ParseFulfillmentType("drone"); err == nil {
		t.Fatalf("expected error for unknown fulfillment type")
	}
	if got, err := ParseCheckoutState("cart_review"); err != nil || got != CheckoutStateCartReview {
		t.Fatalf("unexpected parse result %q %v", got, err)
	}
	if len(SectionTypes()) != 12 {
		t.Fatalf("expected 12 section types")
	}
}
