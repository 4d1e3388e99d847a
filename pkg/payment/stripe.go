package payment

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/shashiranjanraj/plantnet/pkg/http"
	"github.com/shashiranjanraj/plantnet/pkg/metrics"
)

const stripeIntentsURL = "https://api.stripe.com/v1/payment_intents"

// Stripe is a Gateway backed by Stripe's REST API.
type Stripe struct {
	secretKey string
	baseURL   string
}

// NewStripe creates a Stripe gateway with the given secret key.
func NewStripe(secretKey string) *Stripe {
	return &Stripe{secretKey: secretKey, baseURL: stripeIntentsURL}
}

// WithBaseURL overrides the API endpoint. Intended for tests.
func (s *Stripe) WithBaseURL(u string) *Stripe {
	s.baseURL = u
	return s
}

type stripeIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Error        *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateIntent posts a form-encoded PaymentIntent creation to Stripe.
func (s *Stripe) CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	if s.secretKey == "" {
		return nil, fmt.Errorf("payment: PAYMENT_SECRET_KEY not configured")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("payment: amount must be positive, got %d", amount)
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")

	resp, err := http.Post(s.baseURL).
		Bearer(s.secretKey).
		Form(form).
		Timeout(15 * time.Second).
		WithContext(ctx).
		Send()
	if err != nil {
		metrics.PaymentIntentCreated("error")
		return nil, fmt.Errorf("payment: stripe request: %w", err)
	}

	var out stripeIntentResponse
	if err := resp.JSON(&out); err != nil {
		metrics.PaymentIntentCreated("error")
		return nil, err
	}

	if !resp.OK() {
		metrics.PaymentIntentCreated("error")
		if out.Error != nil {
			return nil, fmt.Errorf("payment: stripe %s: %s", out.Error.Type, out.Error.Message)
		}
		return nil, fmt.Errorf("payment: stripe returned HTTP %d", resp.StatusCode)
	}

	metrics.PaymentIntentCreated("ok")
	return &Intent{
		ID:           out.ID,
		ClientSecret: out.ClientSecret,
		Amount:       out.Amount,
		Currency:     out.Currency,
	}, nil
}
