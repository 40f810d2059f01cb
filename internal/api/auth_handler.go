package api

import (
	"net/http"

	"tradejournal/internal/domain/user"
	"tradejournal/internal/metrics"
	"tradejournal/internal/services/auth"
)

// AuthHandler serves registration and login
type AuthHandler struct {
	authSvc *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *auth.Service) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// HandleRegister creates a new account and returns a token
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.authSvc.Register(r.Context(), auth.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("register", "error").Inc()
		respondError(w, err)
		return
	}

	metrics.AuthAttempts.WithLabelValues("register", "success").Inc()
	respondData(w, http.StatusCreated, "registered", authResponse{
		Token: result.Token,
		User:  result.User,
	})
}

// HandleLogin authenticates an account and returns a token
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.authSvc.Login(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("login", "error").Inc()
		respondError(w, err)
		return
	}

	metrics.AuthAttempts.WithLabelValues("login", "success").Inc()
	respondData(w, http.StatusOK, "logged in", authResponse{
		Token: result.Token,
		User:  result.User,
	})
}
