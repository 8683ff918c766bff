package enums

import "fmt"

// CheckoutState is the position of a checkout session in the purchase flow.
type CheckoutState string

const (
	CheckoutStateBrowsing     CheckoutState = "browsing"
	CheckoutStateCartReview   CheckoutState = "cart_review"
	CheckoutStateAuthRequired CheckoutState = "auth_required"
	CheckoutStateCheckoutForm CheckoutState = "checkout_form"
	CheckoutStateSubmitting   CheckoutState = "submitting"
	CheckoutStatePlaced       CheckoutState = "placed"
)

var validCheckoutStates = []CheckoutState{
	CheckoutStateBrowsing,
	CheckoutStateCartReview,
	CheckoutStateAuthRequired,
	CheckoutStateCheckoutForm,
	CheckoutStateSubmitting,
	CheckoutStatePlaced,
}

// String implements fmt.Stringer.
func (s CheckoutState) String() string {
	return string(s)
}

// IsValid reports whether the value is a known CheckoutState.
func (s CheckoutState) IsValid() bool {
	for _, candidate := range validCheckoutStates {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseCheckoutState converts raw input into a CheckoutState.
func ParseCheckoutState(value string) (CheckoutState, error) {
	for _, candidate := range validCheckoutStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout state %q", value)
}
