package api

import (
	"net/http"
	"time"

	"tradejournal/internal/domain/strategy"
	"tradejournal/internal/domain/trade"
	"tradejournal/internal/metrics"
	statssvc "tradejournal/internal/services/stats"
	"tradejournal/internal/stats"
	"tradejournal/pkg/errors"
)

// StrategyHandler serves the user's strategy catalog and per-strategy
// statistics
type StrategyHandler struct {
	strategySvc *strategy.Service
	tradeSvc    *trade.Service
	statsSvc    *statssvc.Service
}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler(strategySvc *strategy.Service, tradeSvc *trade.Service, statsSvc *statssvc.Service) *StrategyHandler {
	return &StrategyHandler{
		strategySvc: strategySvc,
		tradeSvc:    tradeSvc,
		statsSvc:    statsSvc,
	}
}

type strategyRequest struct {
	Name            string             `json:"name"`
	Type            strategy.Type      `json:"type"`
	Comment         string             `json:"comment"`
	Description     string             `json:"description"`
	MarketType      []string           `json:"marketType"`
	MarketCondition []string           `json:"marketCondition"`
	RiskLevel       strategy.RiskLevel `json:"riskLevel"`
	TimeFrame       string             `json:"timeFrame"`
	StarRate        int                `json:"starRate"`
}

func (req *strategyRequest) apply(st *strategy.Strategy) {
	st.Name = req.Name
	st.Type = req.Type
	st.Comment = req.Comment
	st.Description = req.Description
	st.MarketType = req.MarketType
	st.MarketCondition = req.MarketCondition
	st.RiskLevel = req.RiskLevel
	st.TimeFrame = req.TimeFrame
	st.StarRate = req.StarRate
}

// HandleCreate records a new strategy
func (h *StrategyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	usr, _ := UserFromContext(r.Context())

	var req strategyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	st := &strategy.Strategy{UserID: usr.ID}
	req.apply(st)

	if err := h.strategySvc.Create(r.Context(), st); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, "strategy created", st)
}

// HandleList returns the user's strategies with win rate and trade
// counts recomputed from the current trade history
func (h *StrategyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	usr, _ := UserFromContext(r.Context())

	strategies, err := h.strategySvc.GetByUser(r.Context(), usr.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	for _, st := range strategies {
		if err := h.refreshDerived(r, st); err != nil {
			respondError(w, err)
			return
		}
	}
	respondData(w, http.StatusOK, "", strategies)
}

// HandleGet returns one strategy owned by the user
func (h *StrategyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	st, err := h.ownedStrategy(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.refreshDerived(r, st); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "", st)
}

// HandleUpdate replaces the mutable strategy fields
func (h *StrategyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	usr, _ := UserFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req strategyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	st := &strategy.Strategy{ID: id}
	req.apply(st)

	if err := h.strategySvc.Update(r.Context(), usr.ID, st); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "strategy updated", st)
}

// HandleDelete removes a strategy; its trades survive unlinked
func (h *StrategyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	usr, _ := UserFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.strategySvc.Delete(r.Context(), usr.ID, id); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "strategy deleted", nil)
}

// HandleTrades returns the trades recorded against one strategy
func (h *StrategyHandler) HandleTrades(w http.ResponseWriter, r *http.Request) {
	st, err := h.ownedStrategy(r)
	if err != nil {
		respondError(w, err)
		return
	}

	trades, err := h.tradeSvc.GetByStrategy(r.Context(), st.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "", trades)
}

// HandleStats returns the per-strategy statistics report
func (h *StrategyHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	usr, _ := UserFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	start := time.Now()
	report, err := h.statsSvc.StrategyStats(r.Context(), usr.ID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	metrics.StatsReports.WithLabelValues("strategy").Inc()
	metrics.StatsReportDuration.WithLabelValues("strategy").Observe(time.Since(start).Seconds())

	respondData(w, http.StatusOK, "", report)
}

func (h *StrategyHandler) ownedStrategy(r *http.Request) (*strategy.Strategy, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	st, err := h.strategySvc.GetByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	usr, _ := UserFromContext(r.Context())
	if st.UserID != usr.ID {
		return nil, errors.ErrStrategyNotOwned
	}
	return st, nil
}

// refreshDerived recomputes the read-time win rate and trade count
func (h *StrategyHandler) refreshDerived(r *http.Request, st *strategy.Strategy) error {
	trades, err := h.tradeSvc.GetByStrategy(r.Context(), st.ID)
	if err != nil {
		return err
	}
	st.TotalTrades = len(trades)
	st.WinRate = stats.ComputeWinLossPercentage(trades)
	return nil
}
