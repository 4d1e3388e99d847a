// Package controllers holds the HTTP handlers. Controllers decode the
// request, call a service or repository, and write a response envelope;
// business rules live one layer down.
package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/plantnet/pkg/auth"
	"github.com/shashiranjanraj/plantnet/pkg/bind"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/response"
	"github.com/shashiranjanraj/plantnet/pkg/session"
)

// AuthController issues and clears the session cookie.
type AuthController struct{}

func NewAuthController() *AuthController {
	return &AuthController{}
}

type issueTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// IssueToken signs a session token for the posted email and sets it as an
// HTTP-only cookie. Identity arrives pre-authenticated from the frontend's
// auth provider; there is no password check here.
func (c *AuthController) IssueToken(w http.ResponseWriter, r *http.Request) {
	var body issueTokenRequest
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, err := auth.Issue(body.Email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("auth: issue token", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	session.Write(w, token, session.DefaultOptions())
	response.Success(w, map[string]bool{"success": true})
}

// Logout expires the session cookie. The token itself stays valid until
// its natural expiry; the server keeps no revocation state.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w, session.DefaultOptions())
	response.Success(w, map[string]bool{"success": true})
}
