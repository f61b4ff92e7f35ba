package booking

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripeGateway implements PaymentGateway against the Stripe API. The
// API key is set process-wide on stripe.Key at startup.
type StripeGateway struct{}

// CreateIntent registers a payment intent for the amount in minor units.
func (StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", "", err
	}
	return pi.ID, pi.ClientSecret, nil
}

// IntentSucceeded reports whether Stripe has confirmed the payment.
func (StripeGateway) IntentSucceeded(ctx context.Context, id string) (bool, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(id, params)
	if err != nil {
		return false, err
	}
	return pi.Status == stripe.PaymentIntentStatusSucceeded, nil
}
