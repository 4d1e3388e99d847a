package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/bind"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/response"
)

// PaymentController creates gateway payment intents for checkout.
type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

type createIntentRequest struct {
	PlantID  string `json:"plantId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// CreateIntent prices the checkout against the plant's stored price and
// returns the gateway client secret.
func (c *PaymentController) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var body createIntentRequest
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	intent, err := c.payments.CreateIntent(r.Context(), body.PlantID, body.Quantity)
	if errors.Is(err, repositories.ErrPlantNotFound) || errors.Is(err, repositories.ErrBadPlantID) {
		response.NotFound(w, "Plant Not Found")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("payments: create intent", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not create payment intent")
		return
	}

	response.Success(w, map[string]string{"clientSecret": intent.ClientSecret})
}
