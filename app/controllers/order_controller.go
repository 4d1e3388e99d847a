package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/bind"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/response"
)

// OrderController drives checkout and order management.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

type createOrderRequest struct {
	Customer struct {
		Email string `json:"email" validate:"required,email"`
		Name  string `json:"name"`
		Image string `json:"image"`
	} `json:"customer"`
	Seller        string  `json:"seller" validate:"required,email"`
	PlantID       string  `json:"plantId" validate:"required"`
	Quantity      int     `json:"quantity" validate:"required,gt=0"`
	Price         float64 `json:"price" validate:"required,gte=0"`
	Status        string  `json:"status"`
	Address       string  `json:"address"`
	TransactionID string  `json:"transactionId"`
}

// Create inserts the order and kicks off the confirmation emails. The
// emails are queued; their failure never reaches this response.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var body createOrderRequest
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order := models.Order{
		Customer: models.Customer{
			Email: body.Customer.Email,
			Name:  body.Customer.Name,
			Image: body.Customer.Image,
		},
		Seller:        body.Seller,
		PlantID:       body.PlantID,
		Quantity:      body.Quantity,
		Price:         body.Price,
		Status:        body.Status,
		Address:       body.Address,
		TransactionID: body.TransactionID,
	}

	err = c.orders.Place(r.Context(), &order)
	if errors.Is(err, repositories.ErrPlantNotFound) || errors.Is(err, repositories.ErrBadPlantID) {
		response.NotFound(w, "Plant Not Found")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("orders: create", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not save order")
		return
	}

	response.Created(w, map[string]string{"insertedId": order.ID.Hex()})
}

// ForCustomer lists a customer's orders enriched with plant details.
func (c *OrderController) ForCustomer(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	orders, err := c.orders.ForCustomer(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("orders: customer list", "email", email, "error", err)
		response.Error(w, http.StatusInternalServerError, "could not list orders")
		return
	}

	response.Success(w, orders)
}

// ForSeller lists a seller's incoming orders.
func (c *OrderController) ForSeller(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	orders, err := c.orders.ForSeller(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("orders: seller list", "email", email, "error", err)
		response.Error(w, http.StatusInternalServerError, "could not list orders")
		return
	}

	response.Success(w, orders)
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus stores the seller's status label verbatim.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body updateOrderStatusRequest
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.orders.UpdateStatus(r.Context(), id, body.Status); err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) || errors.Is(err, repositories.ErrBadOrderID) {
			response.NotFound(w, "Order Not Found")
			return
		}
		logger.WithCtx(r.Context()).Error("orders: update status", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "could not update order")
		return
	}

	response.Success(w, map[string]bool{"success": true})
}

// Cancel deletes the order unless it was already delivered.
func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := c.orders.Cancel(r.Context(), id)
	switch {
	case errors.Is(err, services.ErrOrderDelivered):
		response.Conflict(w, "Cannot cancel once the product is delivered")
	case errors.Is(err, repositories.ErrOrderNotFound), errors.Is(err, repositories.ErrBadOrderID):
		response.NotFound(w, "Order Not Found")
	case err != nil:
		logger.WithCtx(r.Context()).Error("orders: cancel", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "could not cancel order")
	default:
		response.Success(w, map[string]int64{"deletedCount": 1})
	}
}
