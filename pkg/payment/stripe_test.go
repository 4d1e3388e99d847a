package payment

import (
	"context"
	"net/http/httptest"
	"testing"

	gohttp "net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripeCreateIntent(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"amount":   r.PostForm.Get("amount"),
			"currency": r.PostForm.Get("currency"),
			"apm":      r.PostForm.Get("automatic_payment_methods[enabled]"),
		}
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_1","client_secret":"pi_1_secret_x","amount":1500,"currency":"usd"}`))
	}))
	defer srv.Close()

	gw := NewStripe("sk_test_123").WithBaseURL(srv.URL)
	intent, err := gw.CreateIntent(context.Background(), 1500, "usd")

	require.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, "pi_1_secret_x", intent.ClientSecret)
	assert.Equal(t, int64(1500), intent.Amount)
	assert.Equal(t, "1500", gotForm["amount"])
	assert.Equal(t, "usd", gotForm["currency"])
	assert.Equal(t, "true", gotForm["apm"])
}

func TestStripeCreateIntentAPIError(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(gohttp.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"type":"card_error","message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	gw := NewStripe("sk_test_123").WithBaseURL(srv.URL)
	_, err := gw.CreateIntent(context.Background(), 1500, "usd")

	require.Error(t, err)
	assert.ErrorContains(t, err, "card_error")
	assert.ErrorContains(t, err, "declined")
}

func TestStripeCreateIntentValidation(t *testing.T) {
	gw := NewStripe("")
	_, err := gw.CreateIntent(context.Background(), 100, "usd")
	assert.ErrorContains(t, err, "not configured")

	gw = NewStripe("sk_test_123")
	_, err = gw.CreateIntent(context.Background(), 0, "usd")
	assert.ErrorContains(t, err, "positive")
}
