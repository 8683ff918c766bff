package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value in integer minor units of its currency.
type Amount int64

// Zero is the empty amount.
const Zero Amount = 0

// DefaultCurrency is used when a store has not configured one.
const DefaultCurrency = "BHD"

var exponents = map[string]int32{
	"BHD": 3,
	"KWD": 3,
	"OMR": 3,
	"SAR": 2,
	"AED": 2,
	"USD": 2,
}

var symbols = map[string]string{
	"BHD": "BD",
	"KWD": "KD",
	"OMR": "OMR",
}

// Exponent returns the number of minor-unit digits for currency, 2 when unknown.
func Exponent(currency string) int32 {
	if exp, ok := exponents[strings.ToUpper(currency)]; ok {
		return exp
	}
	return 2
}

// Times multiplies the amount by an integer quantity.
func (a Amount) Times(qty int) Amount {
	return a * Amount(qty)
}

// Decimal converts the amount to a decimal in major units.
func (a Amount) Decimal(currency string) decimal.Decimal {
	return decimal.NewFromInt(int64(a)).Shift(-Exponent(currency))
}

// Format renders the amount with the currency's fixed precision, e.g. "1.000 BD".
func Format(a Amount, currency string) string {
	code := strings.ToUpper(currency)
	if code == "" {
		code = DefaultCurrency
	}
	label, ok := symbols[code]
	if !ok {
		label = code
	}
	return fmt.Sprintf("%s %s", a.Decimal(code).StringFixed(Exponent(code)), label)
}

// Parse reads a major-unit decimal string ("1.5", "2.000") into minor units.
// Values with more precision than the currency allows are rejected.
func Parse(value, currency string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", value, err)
	}
	minor := d.Shift(Exponent(currency))
	if !minor.Equal(minor.Truncate(0)) {
		return 0, fmt.Errorf("amount %q exceeds %s precision", value, currency)
	}
	return Amount(minor.IntPart()), nil
}

// Max returns the larger of a and b.
func Max(a, b Amount) Amount {
	if a > b {
		return a
	}
	return b
}
