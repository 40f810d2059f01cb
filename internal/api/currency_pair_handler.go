package api

import (
	"net/http"
	"strconv"

	"tradejournal/internal/domain/currencypair"
	"tradejournal/pkg/errors"
)

// CurrencyPairHandler serves the user's currency pair catalog
type CurrencyPairHandler struct {
	pairSvc *currencypair.Service
}

// NewCurrencyPairHandler creates a new currency pair handler
func NewCurrencyPairHandler(pairSvc *currencypair.Service) *CurrencyPairHandler {
	return &CurrencyPairHandler{pairSvc: pairSvc}
}

type createPairRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// HandleCreate records a new currency pair for the user
func (h *CurrencyPairHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	usr, _ := UserFromContext(r.Context())

	var req createPairRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	pair := &currencypair.CurrencyPair{
		UserID: usr.ID,
		From:   req.From,
		To:     req.To,
	}
	if err := h.pairSvc.Create(r.Context(), pair); err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusCreated, "currency pair created", pair)
}

// HandleList returns all of the user's currency pairs
func (h *CurrencyPairHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	usr, _ := UserFromContext(r.Context())

	pairs, err := h.pairSvc.GetByUser(r.Context(), usr.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "", pairs)
}

// HandleGet returns one currency pair owned by the user
func (h *CurrencyPairHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	pair, err := h.ownedPair(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "", pair)
}

// HandleDelete removes one currency pair owned by the user
func (h *CurrencyPairHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	pair, err := h.ownedPair(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.pairSvc.Delete(r.Context(), pair.ID); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "currency pair deleted", nil)
}

func (h *CurrencyPairHandler) ownedPair(r *http.Request) (*currencypair.CurrencyPair, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	pair, err := h.pairSvc.GetByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	usr, _ := UserFromContext(r.Context())
	if pair.UserID != usr.ID {
		return nil, errors.ErrForbidden
	}
	return pair, nil
}

// pathID parses the {id} path segment
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Wrap(errors.ErrInvalidInput, "invalid id")
	}
	return id, nil
}
