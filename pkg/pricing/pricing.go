// Package pricing derives the order total from price and percentage discount.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrNegativePrice is returned for prices below zero.
	ErrNegativePrice = errors.New("pricing: price must not be negative")
	// ErrDiscountRange is returned for discounts outside 0-100.
	ErrDiscountRange = errors.New("pricing: discount must be between 0 and 100")
	// ErrInvalidAmount is returned when an input cannot be parsed as a number.
	ErrInvalidAmount = errors.New("pricing: invalid amount")
)

// Total returns price - price*discount/100.
func Total(price, discount float64) float64 {
	return price - price*discount/100
}

// ValidatePrice checks the price domain.
func ValidatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return ErrInvalidAmount
	}
	if price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// ValidateDiscount checks the discount domain (percent, inclusive bounds).
func ValidateDiscount(discount float64) error {
	if math.IsNaN(discount) || math.IsInf(discount, 0) {
		return ErrInvalidAmount
	}
	if discount < 0 || discount > 100 {
		return ErrDiscountRange
	}
	return nil
}

// ValidateItem checks the price and discount a backend item carries.
func ValidateItem(price, discount float64) error {
	if err := ValidatePrice(price); err != nil {
		return err
	}
	return ValidateDiscount(discount)
}

// ParseAmount parses user input. Blank input is zero; a single comma is read
// as the decimal separator unless exactly three digits follow it, which is
// rejected as a possible thousands separator.
func ParseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		if _, frac, _ := strings.Cut(s, ","); len(frac) == 3 && allDigits(frac) {
			return 0, fmt.Errorf("%w: %q has an ambiguous comma; use a dot for decimals and no thousands separator", ErrInvalidAmount, raw)
		}
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return v, nil
}

// Format renders an amount without trailing zeros.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
