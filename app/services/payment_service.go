package services

import (
	"context"

	"github.com/shashiranjanraj/plantnet/pkg/payment"
)

// PaymentService prices a checkout and creates the gateway intent.
type PaymentService struct {
	plants  plantFinder
	gateway payment.Gateway
}

func NewPaymentService(plants plantFinder, gateway payment.Gateway) *PaymentService {
	return &PaymentService{plants: plants, gateway: gateway}
}

// CreateIntent prices quantity units of the plant at its current stored
// price and registers a pending charge in cents. The client secret goes
// back to the frontend for confirmation.
func (s *PaymentService) CreateIntent(ctx context.Context, plantID string, quantity int) (*payment.Intent, error) {
	plant, err := s.plants.FindByID(ctx, plantID)
	if err != nil {
		return nil, err
	}

	amount := int64(float64(quantity) * plant.Price * 100)
	return s.gateway.CreateIntent(ctx, amount, "usd")
}
