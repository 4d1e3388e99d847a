package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/pkg/event"
)

type stubOrderStore struct {
	inserted  []models.Order
	byID      map[string]models.Order
	statuses  map[string]string
	deleted   []string
	insertErr error
}

func newStubOrderStore() *stubOrderStore {
	return &stubOrderStore{
		byID:     map[string]models.Order{},
		statuses: map[string]string{},
	}
}

func (s *stubOrderStore) Insert(_ context.Context, order *models.Order) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, *order)
	return nil
}

func (s *stubOrderStore) FindByID(_ context.Context, id string) (models.Order, error) {
	o, ok := s.byID[id]
	if !ok {
		return models.Order{}, repositories.ErrOrderNotFound
	}
	return o, nil
}

func (s *stubOrderStore) SetStatus(_ context.Context, id, status string) (int64, error) {
	if _, ok := s.byID[id]; !ok {
		return 0, nil
	}
	s.statuses[id] = status
	return 1, nil
}

func (s *stubOrderStore) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubOrderStore) ByCustomer(_ context.Context, _ string) ([]models.Order, error) {
	return nil, nil
}

func (s *stubOrderStore) BySeller(_ context.Context, _ string) ([]models.Order, error) {
	return nil, nil
}

type stubPlantFinder struct {
	plants map[string]models.Plant
}

func (s *stubPlantFinder) FindByID(_ context.Context, id string) (models.Plant, error) {
	p, ok := s.plants[id]
	if !ok {
		return models.Plant{}, repositories.ErrPlantNotFound
	}
	return p, nil
}

func TestPlaceInsertsAndFiresEvent(t *testing.T) {
	event.Reset()
	t.Cleanup(event.Reset)

	var fired []models.Order
	event.Listen(OrderCreated, func(payload interface{}) {
		fired = append(fired, payload.(models.Order))
	})

	store := newStubOrderStore()
	plants := &stubPlantFinder{plants: map[string]models.Plant{
		"p1": {Name: "Monstera", Price: 25, Quantity: 10},
	}}
	svc := NewOrderService(store, plants)

	order := models.Order{
		Customer: models.Customer{Email: "buyer@example.com", Name: "Buyer"},
		Seller:   "seller@example.com",
		PlantID:  "p1",
		Quantity: 2,
		Price:    50,
	}
	require.NoError(t, svc.Place(context.Background(), &order))

	require.Len(t, store.inserted, 1)
	assert.Equal(t, models.OrderPending, store.inserted[0].Status)

	require.Len(t, fired, 1)
	assert.Equal(t, "buyer@example.com", fired[0].Customer.Email)
}

func TestPlaceRejectsUnknownPlant(t *testing.T) {
	event.Reset()
	t.Cleanup(event.Reset)

	store := newStubOrderStore()
	svc := NewOrderService(store, &stubPlantFinder{plants: map[string]models.Plant{}})

	err := svc.Place(context.Background(), &models.Order{PlantID: "missing"})

	assert.ErrorIs(t, err, repositories.ErrPlantNotFound)
	assert.Empty(t, store.inserted)
}

func TestPlaceKeepsExplicitStatus(t *testing.T) {
	event.Reset()
	t.Cleanup(event.Reset)

	store := newStubOrderStore()
	plants := &stubPlantFinder{plants: map[string]models.Plant{"p1": {}}}
	svc := NewOrderService(store, plants)

	order := models.Order{PlantID: "p1", Status: "In Progress"}
	require.NoError(t, svc.Place(context.Background(), &order))

	assert.Equal(t, "In Progress", store.inserted[0].Status)
}

func TestCancelPendingOrder(t *testing.T) {
	store := newStubOrderStore()
	store.byID["o1"] = models.Order{Status: models.OrderPending}
	svc := NewOrderService(store, &stubPlantFinder{})

	require.NoError(t, svc.Cancel(context.Background(), "o1"))
	assert.Equal(t, []string{"o1"}, store.deleted)
}

func TestCancelDeliveredOrderRefused(t *testing.T) {
	store := newStubOrderStore()
	store.byID["o1"] = models.Order{Status: models.OrderDelivered}
	svc := NewOrderService(store, &stubPlantFinder{})

	err := svc.Cancel(context.Background(), "o1")

	assert.ErrorIs(t, err, ErrOrderDelivered)
	assert.Empty(t, store.deleted) // the order record stays
}

func TestCancelUnknownOrder(t *testing.T) {
	svc := NewOrderService(newStubOrderStore(), &stubPlantFinder{})

	err := svc.Cancel(context.Background(), "nope")
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
}

func TestUpdateStatusStoresVerbatim(t *testing.T) {
	store := newStubOrderStore()
	store.byID["o1"] = models.Order{Status: models.OrderPending}
	svc := NewOrderService(store, &stubPlantFinder{})

	require.NoError(t, svc.UpdateStatus(context.Background(), "o1", "Out for delivery"))
	assert.Equal(t, "Out for delivery", store.statuses["o1"])
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc := NewOrderService(newStubOrderStore(), &stubPlantFinder{})

	err := svc.UpdateStatus(context.Background(), "missing", "Delivered")
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
}
