package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/pkg/bind"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/middleware"
	"github.com/shashiranjanraj/plantnet/pkg/response"
	"github.com/shashiranjanraj/plantnet/pkg/storage"
)

// maxImageBytes caps plant image uploads at 8 MB.
const maxImageBytes = 8 << 20

// PlantController manages the plant catalogue and seller inventory.
type PlantController struct {
	plants *repositories.PlantRepository
}

func NewPlantController(plants *repositories.PlantRepository) *PlantController {
	return &PlantController{plants: plants}
}

type createPlantRequest struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	Quantity    int     `json:"quantity" validate:"required,gte=0"`
	Image       string  `json:"image"`
	Seller      struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Image string `json:"image"`
	} `json:"seller"`
}

// Create stores a new listing. The seller email always comes from the
// session, never the body.
func (c *PlantController) Create(w http.ResponseWriter, r *http.Request) {
	var body createPlantRequest
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	email, _ := middleware.EmailFromCtx(r.Context())

	plant := models.Plant{
		Name:        body.Name,
		Category:    body.Category,
		Description: body.Description,
		Price:       body.Price,
		Quantity:    body.Quantity,
		Image:       body.Image,
		Seller: models.Seller{
			Email: email,
			Name:  body.Seller.Name,
			Image: body.Seller.Image,
		},
	}

	if err := c.plants.Create(r.Context(), &plant); err != nil {
		logger.WithCtx(r.Context()).Error("plants: create", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not save plant")
		return
	}

	response.Created(w, plant)
}

// All lists the whole catalogue.
func (c *PlantController) All(w http.ResponseWriter, r *http.Request) {
	plants, err := c.plants.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("plants: list", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not list plants")
		return
	}
	response.Success(w, plants)
}

// Show fetches one listing by id.
func (c *PlantController) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	plant, err := c.plants.FindByID(r.Context(), id)
	if errors.Is(err, repositories.ErrPlantNotFound) || errors.Is(err, repositories.ErrBadPlantID) {
		response.NotFound(w, "Plant Not Found")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("plants: show", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "could not fetch plant")
		return
	}

	response.Success(w, plant)
}

// BySeller lists the calling seller's inventory.
func (c *PlantController) BySeller(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromCtx(r.Context())

	plants, err := c.plants.BySeller(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("plants: seller inventory", "email", email, "error", err)
		response.Error(w, http.StatusInternalServerError, "could not list plants")
		return
	}

	response.Success(w, plants)
}

// Delete removes one of the seller's listings.
func (c *PlantController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := c.plants.Delete(r.Context(), id)
	if errors.Is(err, repositories.ErrPlantNotFound) || errors.Is(err, repositories.ErrBadPlantID) {
		response.NotFound(w, "Plant Not Found")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("plants: delete", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "could not delete plant")
		return
	}

	response.Success(w, map[string]int64{"deletedCount": 1})
}

type adjustQuantityRequest struct {
	QuantityToUpdate int    `json:"quantityToUpdate" validate:"required,gt=0"`
	Status           string `json:"status"`
}

// quantityDelta maps the request to a signed stock delta. Anything but
// "increase" decreases.
func quantityDelta(quantity int, status string) int {
	if status == "increase" {
		return quantity
	}
	return -quantity
}

// AdjustQuantity applies a stock delta. status "increase" adds the quantity;
// anything else, including an absent status, subtracts it. Stock may go
// negative; that matches the checkout flow this API serves.
func (c *PlantController) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body adjustQuantityRequest
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	modified, err := c.plants.AdjustQuantity(r.Context(), id, quantityDelta(body.QuantityToUpdate, body.Status))
	if errors.Is(err, repositories.ErrBadPlantID) {
		response.NotFound(w, "Plant Not Found")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("plants: adjust quantity", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "could not adjust quantity")
		return
	}

	response.Success(w, map[string]int64{"modifiedCount": modified})
}

// UploadImage stores a plant photo on the configured storage disk and
// returns its public URL. Multipart field name: "image".
func (c *PlantController) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	if header.Size > maxImageBytes {
		response.Error(w, http.StatusBadRequest, "image too large")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not read image")
		return
	}

	email, _ := middleware.EmailFromCtx(r.Context())
	key := fmt.Sprintf("plants/%s/%d%s", email, time.Now().UnixNano(), filepath.Ext(header.Filename))

	if err := storage.Put(key, data); err != nil {
		logger.WithCtx(r.Context()).Error("plants: upload image", "key", key, "error", err)
		response.Error(w, http.StatusInternalServerError, "could not store image")
		return
	}

	response.Created(w, map[string]string{"url": storage.URL(key)})
}
