package billing

import (
	"context"
	"fmt"
	"log"

	"github.com/stripe/stripe-go/v82"
)

type StripePaymentGateway struct {
	client   *stripe.Client
	currency string
}

func NewStripePaymentGateway(client *stripe.Client, currency string) *StripePaymentGateway {
	return &StripePaymentGateway{client: client, currency: currency}
}

func (g *StripePaymentGateway) Charge(ctx context.Context, amount int64, token string) error {
	params := &stripe.PaymentIntentCreateParams{
		Amount:        stripe.Int64(amount),
		Currency:      stripe.String(g.currency),
		PaymentMethod: stripe.String(token),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentCreateAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	pi, err := g.client.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		log.Printf("Error creating PaymentIntent: %s\n", err.Error())
		return fmt.Errorf("%w: %s", ErrPaymentFailed, err.Error())
	}
	// A PaymentIntent that is not terminal-succeeded counts as a failed
	// charge; there is no partial state to reconcile.
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		log.Printf("PaymentIntent %s did not succeed: %s\n", pi.ID, pi.Status)
		return fmt.Errorf("%w: payment intent status %s", ErrPaymentFailed, pi.Status)
	}
	return nil
}
