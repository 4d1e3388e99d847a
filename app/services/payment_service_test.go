package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/pkg/payment"
)

type stubGateway struct {
	gotAmount   int64
	gotCurrency string
	intent      *payment.Intent
	err         error
}

func (g *stubGateway) CreateIntent(_ context.Context, amount int64, currency string) (*payment.Intent, error) {
	g.gotAmount = amount
	g.gotCurrency = currency
	return g.intent, g.err
}

func TestCreateIntentPricesFromStoredPlant(t *testing.T) {
	plants := &stubPlantFinder{plants: map[string]models.Plant{
		"p1": {Name: "Monstera", Price: 25.5},
	}}
	gw := &stubGateway{intent: &payment.Intent{ClientSecret: "cs_test"}}
	svc := NewPaymentService(plants, gw)

	intent, err := svc.CreateIntent(context.Background(), "p1", 3)
	require.NoError(t, err)

	// 3 × 25.50 USD = 7650 cents.
	assert.Equal(t, int64(7650), gw.gotAmount)
	assert.Equal(t, "usd", gw.gotCurrency)
	assert.Equal(t, "cs_test", intent.ClientSecret)
}

func TestCreateIntentUnknownPlant(t *testing.T) {
	svc := NewPaymentService(&stubPlantFinder{plants: map[string]models.Plant{}}, &stubGateway{})

	_, err := svc.CreateIntent(context.Background(), "missing", 1)
	assert.ErrorIs(t, err, repositories.ErrPlantNotFound)
}
