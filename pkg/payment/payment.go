// Package payment abstracts the card payment gateway.
//
// The only implementation talks to Stripe's PaymentIntents API; handlers and
// services depend on the Gateway interface so tests can swap in a stub.
package payment

import "context"

// Intent is a created payment intent ready for client-side confirmation.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64  // minor units (cents)
	Currency     string // ISO 4217, lowercase
}

// Gateway creates payment intents with an external processor.
type Gateway interface {
	// CreateIntent registers a pending charge of amount minor units and
	// returns the client secret the frontend needs to confirm it.
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
}
