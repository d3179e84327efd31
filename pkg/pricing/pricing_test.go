package pricing

import (
	"errors"
	"testing"
)

func TestTotal(t *testing.T) {
	cases := []struct {
		price, discount, want float64
	}{
		{1000, 10, 900},
		{0, 50, 0},
		{5000, 20, 4000},
		{250, 0, 250},
		{250, 100, 0},
	}
	for _, tc := range cases {
		if got := Total(tc.price, tc.discount); got != tc.want {
			t.Errorf("Total(%v, %v) = %v, want %v", tc.price, tc.discount, got, tc.want)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := ValidatePrice(-1); !errors.Is(err, ErrNegativePrice) {
		t.Fatalf("expected ErrNegativePrice, got %v", err)
	}
	if err := ValidatePrice(0); err != nil {
		t.Fatalf("expected zero price to be valid, got %v", err)
	}
	for _, d := range []float64{0, 50, 100} {
		if err := ValidateDiscount(d); err != nil {
			t.Fatalf("expected discount %v to be valid, got %v", d, err)
		}
	}
	for _, d := range []float64{-0.5, 100.1} {
		if err := ValidateDiscount(d); !errors.Is(err, ErrDiscountRange) {
			t.Fatalf("expected ErrDiscountRange for %v, got %v", d, err)
		}
	}
}

func TestValidateItem(t *testing.T) {
	if err := ValidateItem(5000, 20); err != nil {
		t.Fatalf("expected valid item pricing, got %v", err)
	}
	if err := ValidateItem(-200, 10); !errors.Is(err, ErrNegativePrice) {
		t.Fatalf("expected ErrNegativePrice, got %v", err)
	}
	if err := ValidateItem(100, 150); !errors.Is(err, ErrDiscountRange) {
		t.Fatalf("expected ErrDiscountRange, got %v", err)
	}
}

func TestParseAmount(t *testing.T) {
	cases := map[string]float64{
		"":       0,
		" 1000 ": 1000,
		"12.5":   12.5,
		"12,5":   12.5,
		"12,50":  12.5,
		"1,0000": 1,
		"-3":     -3,
	}
	for in, want := range cases {
		got, err := ParseAmount(in)
		if err != nil {
			t.Fatalf("ParseAmount(%q) unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseAmount(%q) = %v, want %v", in, got, want)
		}
	}
	for _, in := range []string{"abc", "1,000.5", "NaN", "1,000", "25,500"} {
		if _, err := ParseAmount(in); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("ParseAmount(%q) expected ErrInvalidAmount, got %v", in, err)
		}
	}
}
