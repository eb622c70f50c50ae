package controllers

import (
	"net/http"

	"campusd/internal/providers"
	"campusd/internal/services"
)

type AuthController struct {
	logger providers.Logger
	auth   services.AuthServiceInterface
}

func NewAuthController(logger providers.Logger, auth services.AuthServiceInterface) *AuthController {
	return &AuthController{logger: logger, auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := ac.auth.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	payload := user.Sanitized()
	payload["token"] = token
	writeJSON(w, http.StatusOK, map[string]any{"user": payload, "message": "Login successful"})
}

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := ac.auth.Register(req.Email, req.Password, req.Name, req.Role, req.Department)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": user.Sanitized(), "message": "Registration successful"})
}

func (ac *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	identity, _ := providers.IdentityFrom(r)
	user, err := ac.auth.CurrentUser(identity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user.Sanitized()})
}

// Logout is a stateless acknowledgement; tokens expire on their own.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
