package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/pkg/bind"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/response"
)

// UserController manages accounts, role requests, and role decisions.
type UserController struct {
	users *repositories.UserRepository
}

func NewUserController(users *repositories.UserRepository) *UserController {
	return &UserController{users: users}
}

type ensureUserRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Ensure upserts the account on first login. An existing account comes back
// unchanged; the posted profile fields never overwrite it.
func (c *UserController) Ensure(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var body ensureUserRequest
	if _, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := c.users.Ensure(r.Context(), email, models.User{
		Name:  body.Name,
		Image: body.Image,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("users: ensure", "email", email, "error", err)
		response.Error(w, http.StatusInternalServerError, "could not save user")
		return
	}

	response.Success(w, user)
}

// RequestRoleChange marks the caller's account as awaiting seller
// verification. Repeating a pending request is a 400, same as upstream.
func (c *UserController) RequestRoleChange(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	err := c.users.RequestRoleChange(r.Context(), email)
	if errors.Is(err, repositories.ErrAlreadyRequested) {
		response.Error(w, http.StatusBadRequest, "You have already requested, wait for some time.")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("users: request role change", "email", email, "error", err)
		response.Error(w, http.StatusInternalServerError, "could not update user")
		return
	}

	response.Success(w, map[string]bool{"success": true})
}

// All lists every account except the calling admin's own.
func (c *UserController) All(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	users, err := c.users.AllExcept(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("users: list", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not list users")
		return
	}

	response.Success(w, users)
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,in=customer,seller,admin"`
}

// SetRole applies an admin's role decision for the account.
func (c *UserController) SetRole(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var body setRoleRequest
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	modified, err := c.users.SetRole(r.Context(), email, body.Role)
	if err != nil {
		logger.WithCtx(r.Context()).Error("users: set role", "email", email, "error", err)
		response.Error(w, http.StatusInternalServerError, "could not update role")
		return
	}

	response.Success(w, map[string]int64{"modifiedCount": modified})
}

// Role returns the stored role for an email. Missing accounts read as an
// empty role rather than an error, matching the upstream contract.
func (c *UserController) Role(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	role, err := c.users.RoleOf(r.Context(), email)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		logger.WithCtx(r.Context()).Error("users: role lookup", "email", email, "error", err)
		response.Error(w, http.StatusInternalServerError, "could not fetch role")
		return
	}

	response.Success(w, map[string]string{"role": role})
}
