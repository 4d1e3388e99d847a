// Package services holds the business rules between controllers and
// repositories. Services depend on narrow store interfaces so tests can
// stub them without a running MongoDB.
package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/pkg/event"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
)

// OrderCreated is fired after an order is persisted. The payload is the
// stored models.Order.
const OrderCreated = "order.created"

// ErrOrderDelivered blocks cancellation of a delivered order.
var ErrOrderDelivered = errors.New("cannot cancel once the product is delivered")

type orderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (models.Order, error)
	SetStatus(ctx context.Context, id, status string) (int64, error)
	Delete(ctx context.Context, id string) error
	ByCustomer(ctx context.Context, email string) ([]models.Order, error)
	BySeller(ctx context.Context, email string) ([]models.Order, error)
}

type plantFinder interface {
	FindByID(ctx context.Context, id string) (models.Plant, error)
}

// OrderService drives the order lifecycle.
type OrderService struct {
	orders orderStore
	plants plantFinder
}

func NewOrderService(orders orderStore, plants plantFinder) *OrderService {
	return &OrderService{orders: orders, plants: plants}
}

// Place persists a new order and fires the order.created event. The price
// is taken from the request as-is; checkout already priced the intent.
// Notification failures never fail the order.
func (s *OrderService) Place(ctx context.Context, order *models.Order) error {
	// plantId must point at a live listing at creation time. The link is
	// loose afterwards.
	if _, err := s.plants.FindByID(ctx, order.PlantID); err != nil {
		return err
	}

	if order.Status == "" {
		order.Status = models.OrderPending
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return err
	}

	event.Fire(OrderCreated, *order)
	return nil
}

// UpdateStatus stores the caller-supplied status string verbatim.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) error {
	matched, err := s.orders.SetStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if matched == 0 {
		return repositories.ErrOrderNotFound
	}
	return nil
}

// Cancel removes an order unless it has already been delivered.
// A delivered order stays untouched and the caller gets ErrOrderDelivered.
func (s *OrderService) Cancel(ctx context.Context, id string) error {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status == models.OrderDelivered {
		return ErrOrderDelivered
	}

	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("order cancelled", "order_id", id)
	return nil
}

// ForCustomer lists the customer's orders enriched with plant details.
func (s *OrderService) ForCustomer(ctx context.Context, email string) ([]models.Order, error) {
	return s.orders.ByCustomer(ctx, email)
}

// ForSeller lists the seller's incoming orders enriched with plant names.
func (s *OrderService) ForSeller(ctx context.Context, email string) ([]models.Order, error) {
	return s.orders.BySeller(ctx, email)
}
