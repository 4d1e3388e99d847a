package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/plantnet/app/controllers"
	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/event"
)

type fakeOrderStore struct {
	byID     map[string]models.Order
	deleted  []string
	inserted int
}

func (s *fakeOrderStore) Insert(_ context.Context, order *models.Order) error {
	s.inserted++
	return nil
}

func (s *fakeOrderStore) FindByID(_ context.Context, id string) (models.Order, error) {
	o, ok := s.byID[id]
	if !ok {
		return models.Order{}, repositories.ErrOrderNotFound
	}
	return o, nil
}

func (s *fakeOrderStore) SetStatus(_ context.Context, id, status string) (int64, error) {
	if _, ok := s.byID[id]; !ok {
		return 0, nil
	}
	return 1, nil
}

func (s *fakeOrderStore) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeOrderStore) ByCustomer(_ context.Context, _ string) ([]models.Order, error) {
	return nil, nil
}

func (s *fakeOrderStore) BySeller(_ context.Context, _ string) ([]models.Order, error) {
	return nil, nil
}

type fakePlantFinder struct {
	plants map[string]models.Plant
}

func (s *fakePlantFinder) FindByID(_ context.Context, id string) (models.Plant, error) {
	p, ok := s.plants[id]
	if !ok {
		return models.Plant{}, repositories.ErrPlantNotFound
	}
	return p, nil
}

func newOrderController(store *fakeOrderStore, plants *fakePlantFinder) *controllers.OrderController {
	return controllers.NewOrderController(services.NewOrderService(store, plants))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateOrderUnknownPlant(t *testing.T) {
	event.Reset()
	t.Cleanup(event.Reset)

	ctl := newOrderController(&fakeOrderStore{}, &fakePlantFinder{plants: map[string]models.Plant{}})

	body := `{"customer":{"email":"buyer@example.com","name":"Buyer"},"seller":"seller@example.com","plantId":"missing","quantity":1,"price":25}`
	r := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
	rec := httptest.NewRecorder()

	ctl.Create(rec, r)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Plant Not Found")
}

func TestCreateOrderValidation(t *testing.T) {
	ctl := newOrderController(&fakeOrderStore{}, &fakePlantFinder{})

	body := `{"customer":{"email":"buyer@example.com"},"seller":"seller@example.com","plantId":"p1","quantity":0,"price":25}`
	r := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
	rec := httptest.NewRecorder()

	ctl.Create(rec, r)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "quantity")
}

func TestCreateOrderRejectsBlankCustomerEmail(t *testing.T) {
	store := &fakeOrderStore{}
	ctl := newOrderController(store, &fakePlantFinder{plants: map[string]models.Plant{"p1": {Name: "Monstera"}}})

	body := `{"customer":{"email":""},"seller":"seller@example.com","plantId":"p1","quantity":1,"price":25}`
	r := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
	rec := httptest.NewRecorder()

	ctl.Create(rec, r)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "customer.email")
	assert.Zero(t, store.inserted)
}

func TestUpdateStatusUnknownOrderNotFound(t *testing.T) {
	ctl := newOrderController(&fakeOrderStore{byID: map[string]models.Order{}}, &fakePlantFinder{})

	r := withURLParam(
		httptest.NewRequest(http.MethodPatch, "/orders/missing", strings.NewReader(`{"status":"Delivered"}`)),
		"id", "missing",
	)
	rec := httptest.NewRecorder()

	ctl.UpdateStatus(rec, r)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order Not Found")
}

func TestUpdateStatusStoresLabel(t *testing.T) {
	ctl := newOrderController(&fakeOrderStore{byID: map[string]models.Order{
		"o1": {Status: models.OrderPending},
	}}, &fakePlantFinder{})

	r := withURLParam(
		httptest.NewRequest(http.MethodPatch, "/orders/o1", strings.NewReader(`{"status":"Out for delivery"}`)),
		"id", "o1",
	)
	rec := httptest.NewRecorder()

	ctl.UpdateStatus(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "success")
}

func TestCreateOrderSuccess(t *testing.T) {
	event.Reset()
	t.Cleanup(event.Reset)

	plants := &fakePlantFinder{plants: map[string]models.Plant{"p1": {Name: "Monstera"}}}
	ctl := newOrderController(&fakeOrderStore{}, plants)

	body := `{"customer":{"email":"buyer@example.com","name":"Buyer"},"seller":"seller@example.com","plantId":"p1","quantity":2,"price":50,"address":"12 Garden Rd"}`
	r := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
	rec := httptest.NewRecorder()

	ctl.Create(rec, r)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "insertedId")
}

func TestCancelDeliveredOrderConflict(t *testing.T) {
	store := &fakeOrderStore{byID: map[string]models.Order{
		"o1": {Status: models.OrderDelivered},
	}}
	ctl := newOrderController(store, &fakePlantFinder{})

	r := withURLParam(httptest.NewRequest(http.MethodDelete, "/orders/o1", nil), "id", "o1")
	rec := httptest.NewRecorder()

	ctl.Cancel(rec, r)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cannot cancel once the product is delivered")
	assert.Empty(t, store.deleted)
}

func TestCancelPendingOrderDeletes(t *testing.T) {
	store := &fakeOrderStore{byID: map[string]models.Order{
		"o1": {Status: models.OrderPending},
	}}
	ctl := newOrderController(store, &fakePlantFinder{})

	r := withURLParam(httptest.NewRequest(http.MethodDelete, "/orders/o1", nil), "id", "o1")
	rec := httptest.NewRecorder()

	ctl.Cancel(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "deletedCount")
	assert.Equal(t, []string{"o1"}, store.deleted)
}

func TestCancelUnknownOrderNotFound(t *testing.T) {
	ctl := newOrderController(&fakeOrderStore{byID: map[string]models.Order{}}, &fakePlantFinder{})

	r := withURLParam(httptest.NewRequest(http.MethodDelete, "/orders/nope", nil), "id", "nope")
	rec := httptest.NewRecorder()

	ctl.Cancel(rec, r)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
