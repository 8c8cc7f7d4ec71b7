package payment

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var ErrInvalidAmount = errors.New("amount must be a positive number")

// Stripe creates card payment intents in a single currency.
type Stripe struct {
	api      *client.API
	currency string
}

func NewStripe(secretKey, currency string) *Stripe {
	return &Stripe{
		api:      client.New(secretKey, nil),
		currency: currency,
	}
}

// CreatePaymentIntent returns the client secret the browser needs to
// confirm the payment.
func (s *Stripe) CreatePaymentIntent(ctx context.Context, amount int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(s.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}

// AmountInCents converts a price in major units to the smallest currency
// unit, rounding to the nearest cent.
func AmountInCents(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, ErrInvalidAmount
	}
	cents := math.Round(price * 100)
	if cents < 1 || cents >= math.MaxInt64 {
		return 0, ErrInvalidAmount
	}
	return int64(cents), nil
}
