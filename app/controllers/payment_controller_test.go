package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/plantnet/app/controllers"
	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/payment"
)

type fakeGateway struct {
	gotAmount int64
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount int64, currency string) (*payment.Intent, error) {
	g.gotAmount = amount
	return &payment.Intent{ClientSecret: "cs_test", Amount: amount, Currency: currency}, nil
}

func TestCreateIntentReturnsClientSecret(t *testing.T) {
	plants := &fakePlantFinder{plants: map[string]models.Plant{
		"p1": {Name: "Monstera", Price: 25},
	}}
	gw := &fakeGateway{}
	ctl := controllers.NewPaymentController(services.NewPaymentService(plants, gw))

	body := `{"plantId":"p1","quantity":2}`
	r := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(body))
	rec := httptest.NewRecorder()

	ctl.CreateIntent(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cs_test")
	assert.Equal(t, int64(5000), gw.gotAmount)
}

func TestCreateIntentUnknownPlantNotFound(t *testing.T) {
	ctl := controllers.NewPaymentController(
		services.NewPaymentService(&fakePlantFinder{plants: map[string]models.Plant{}}, &fakeGateway{}),
	)

	body := `{"plantId":"missing","quantity":1}`
	r := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(body))
	rec := httptest.NewRecorder()

	ctl.CreateIntent(rec, r)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Plant Not Found")
}

func TestCreateIntentValidation(t *testing.T) {
	ctl := controllers.NewPaymentController(
		services.NewPaymentService(&fakePlantFinder{}, &fakeGateway{}),
	)

	body := `{"plantId":"p1","quantity":-1}`
	r := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(body))
	rec := httptest.NewRecorder()

	ctl.CreateIntent(rec, r)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
