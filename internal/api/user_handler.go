package api

import (
	"net/http"

	"tradejournal/internal/domain/user"
)

// UserHandler serves the authenticated user's profile
type UserHandler struct {
	userSvc *user.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(userSvc *user.Service) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// HandleGetMe returns the current user's profile
func (h *UserHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	usr, _ := UserFromContext(r.Context())
	respondData(w, http.StatusOK, "", usr)
}

type updateProfileRequest struct {
	FirstName      *string      `json:"firstName"`
	LastName       *string      `json:"lastName"`
	Mobile         *string      `json:"mobile"`
	DateOfBirth    *string      `json:"dateOfBirth"`
	AddressLine1   *string      `json:"addressLine1"`
	AddressLine2   *string      `json:"addressLine2"`
	City           *string      `json:"city"`
	PostalCode     *string      `json:"postalCode"`
	Country        *string      `json:"country"`
	Gender         *user.Gender `json:"gender"`
	InitialCapital *float64     `json:"initialCapital"`
}

// HandleUpdateMe applies a partial profile update
func (h *UserHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	usr, _ := UserFromContext(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.userSvc.UpdateProfile(r.Context(), usr.ID, user.ProfileUpdate{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Mobile:         req.Mobile,
		DateOfBirth:    req.DateOfBirth,
		AddressLine1:   req.AddressLine1,
		AddressLine2:   req.AddressLine2,
		City:           req.City,
		PostalCode:     req.PostalCode,
		Country:        req.Country,
		Gender:         req.Gender,
		InitialCapital: req.InitialCapital,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, "profile updated", updated)
}
