package payment

import (
	"errors"
	"math"
	"testing"
)

func TestAmountInCents(t *testing.T) {
	tests := []struct {
		price float64
		want  int64
	}{
		{19.99, 1999},
		{10, 1000},
		{0.5, 50},
		{0.016, 2},
	}
	for _, tt := range tests {
		got, err := AmountInCents(tt.price)
		if err != nil {
			t.Errorf("AmountInCents(%v): %v", tt.price, err)
			continue
		}
		if got != tt.want {
			t.Errorf("AmountInCents(%v) = %d, want %d", tt.price, got, tt.want)
		}
	}
}

func TestAmountInCents_Invalid(t *testing.T) {
	for _, price := range []float64{0, -5, 0.001, math.NaN(), math.Inf(1)} {
		if _, err := AmountInCents(price); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("AmountInCents(%v): expected ErrInvalidAmount, got %v", price, err)
		}
	}
}
