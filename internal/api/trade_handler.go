package api

import (
	"net/http"
	"time"

	"tradejournal/internal/domain/trade"
	"tradejournal/internal/metrics"
	statssvc "tradejournal/internal/services/stats"
	"tradejournal/pkg/errors"
)

// TradeHandler serves the trade journal CRUD and the statistics
// endpoints derived from it
type TradeHandler struct {
	tradeSvc *trade.Service
	statsSvc *statssvc.Service
}

// NewTradeHandler creates a new trade handler
func NewTradeHandler(tradeSvc *trade.Service, statsSvc *statssvc.Service) *TradeHandler {
	return &TradeHandler{tradeSvc: tradeSvc, statsSvc: statsSvc}
}

type tradeRequest struct {
	StrategyID     *int64       `json:"strategyId"`
	CurrencyPairID int64        `json:"currencyPairId"`
	OpenDate       time.Time    `json:"openDate"`
	CloseDate      time.Time    `json:"closeDate"`
	Status         trade.Status `json:"status"`
	Type           trade.Side   `json:"type"`

	EntryPrice   float64 `json:"entryPrice"`
	ExitPrice    float64 `json:"exitPrice"`
	PositionSize float64 `json:"positionSize"`

	StopLossPrice   float64 `json:"stopLossPrice"`
	TakeProfitPrice float64 `json:"takeProfitPrice"`
	TransactionCost float64 `json:"transactionCost"`

	MarketTrend string   `json:"marketTrend"`
	Reason      string   `json:"reason"`
	Comment     string   `json:"comment"`
	Categories  []string `json:"categories"`
}

func (req *tradeRequest) toEntity(userID int64) *trade.Trade {
	return &trade.Trade{
		UserID:          userID,
		StrategyID:      req.StrategyID,
		CurrencyPairID:  req.CurrencyPairID,
		OpenDate:        req.OpenDate,
		CloseDate:       req.CloseDate,
		Status:          req.Status,
		Type:            req.Type,
		EntryPrice:      req.EntryPrice,
		ExitPrice:       req.ExitPrice,
		PositionSize:    req.PositionSize,
		StopLossPrice:   req.StopLossPrice,
		TakeProfitPrice: req.TakeProfitPrice,
		TransactionCost: req.TransactionCost,
		MarketTrend:     req.MarketTrend,
		Reason:          req.Reason,
		Comment:         req.Comment,
		Categories:      req.Categories,
	}
}

// HandleCreate records a new trade; profit is derived server-side
func (h *TradeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	usr, _ := UserFromContext(r.Context())

	var req tradeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	t := req.toEntity(usr.ID)
	if err := h.tradeSvc.Create(r.Context(), t); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, "trade recorded", t)
}

// HandleList returns the user's full trade history, oldest first
func (h *TradeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	usr, _ := UserFromContext(r.Context())

	trades, err := h.tradeSvc.GetByUser(r.Context(), usr.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "", trades)
}

// HandleGet returns one trade owned by the user
func (h *TradeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	t, err := h.ownedTrade(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "", t)
}

// HandleUpdate replaces a trade's fields and re-derives its profit
func (h *TradeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	usr, _ := UserFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req tradeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	t := req.toEntity(usr.ID)
	t.ID = id
	if err := h.tradeSvc.Update(r.Context(), usr.ID, t); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "trade updated", t)
}

// HandleDelete removes one trade owned by the user
func (h *TradeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	usr, _ := UserFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.tradeSvc.Delete(r.Context(), usr.ID, id); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "trade deleted", nil)
}

// HandleStats returns the full user statistics report
func (h *TradeHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	usr, _ := UserFromContext(r.Context())

	start := time.Now()
	report, err := h.statsSvc.UserStats(r.Context(), usr.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	metrics.StatsReports.WithLabelValues("user").Inc()
	metrics.StatsReportDuration.WithLabelValues("user").Observe(time.Since(start).Seconds())

	respondData(w, http.StatusOK, "", report)
}

// HandleEquityCurve returns the bucketed running balance for the
// requested period
func (h *TradeHandler) HandleEquityCurve(w http.ResponseWriter, r *http.Request) {
	usr, _ := UserFromContext(r.Context())

	period := statssvc.Period(r.PathValue("period"))
	curve, err := h.statsSvc.EquityCurve(r.Context(), usr.ID, period)
	if err != nil {
		respondError(w, err)
		return
	}
	metrics.StatsReports.WithLabelValues("equity_curve").Inc()

	respondData(w, http.StatusOK, "", curve)
}

func (h *TradeHandler) ownedTrade(r *http.Request) (*trade.Trade, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	t, err := h.tradeSvc.GetByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	usr, _ := UserFromContext(r.Context())
	if t.UserID != usr.ID {
		return nil, errors.ErrTradeNotOwned
	}
	return t, nil
}
