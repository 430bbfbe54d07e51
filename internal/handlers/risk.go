package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/waliags/tradermindset/internal/date"
	"github.com/waliags/tradermindset/internal/models"
	"github.com/waliags/tradermindset/internal/store"
	"github.com/waliags/tradermindset/internal/validator"
)

type RiskStore interface {
	RiskMetrics(ctx context.Context, day date.Day) (models.RiskMetrics, error)
	UpsertRiskMetrics(ctx context.Context, m models.RiskMetrics) (models.RiskMetrics, error)
}

type RiskHandler struct {
	store RiskStore
	log   *zap.SugaredLogger
}

func NewRiskHandler(store RiskStore, log *zap.SugaredLogger) *RiskHandler {
	return &RiskHandler{store: store, log: log}
}

// Get returns the risk snapshot for a day, or null when none was recorded.
func (h *RiskHandler) Get(w http.ResponseWriter, r *http.Request) {
	day, err := date.Parse(mux.Vars(r)["date"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid date")
		return
	}

	metrics, err := h.store.RiskMetrics(r.Context(), day)
	if errors.Is(err, store.ErrNotFound) {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		respondStoreError(w, h.log, err, "Risk metrics not found", "Failed to fetch risk metrics")
		return
	}
	respondJSON(w, http.StatusOK, metrics)
}

type riskRequest struct {
	Date            date.Day `json:"date"`
	AccountBalance  string   `json:"accountBalance"`
	MaxDrawdown     string   `json:"maxDrawdown"`
	DailyRisk       string   `json:"dailyRisk"`
	PositionSize    string   `json:"positionSize"`
	RiskRewardRatio string   `json:"riskRewardRatio"`
}

func (h *RiskHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req riskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid risk metrics data")
		return
	}

	v := validator.New()
	v.Check(!req.Date.IsZero(), "date", "field is required")
	v.ValidateNumeric(req.AccountBalance, "accountBalance")
	v.ValidateNumeric(req.MaxDrawdown, "maxDrawdown")
	v.ValidateNumeric(req.DailyRisk, "dailyRisk")
	v.ValidateNumeric(req.PositionSize, "positionSize")
	v.ValidateNumeric(req.RiskRewardRatio, "riskRewardRatio")
	if !v.Valid() {
		respondMessage(w, http.StatusBadRequest, "Invalid risk metrics data")
		return
	}

	metrics, err := h.store.UpsertRiskMetrics(r.Context(), models.RiskMetrics{
		Date:            req.Date,
		AccountBalance:  req.AccountBalance,
		MaxDrawdown:     req.MaxDrawdown,
		DailyRisk:       req.DailyRisk,
		PositionSize:    req.PositionSize,
		RiskRewardRatio: req.RiskRewardRatio,
	})
	if err != nil {
		respondStoreError(w, h.log, err, "Risk metrics not found", "Failed to save risk metrics")
		return
	}
	respondJSON(w, http.StatusOK, metrics)
}
