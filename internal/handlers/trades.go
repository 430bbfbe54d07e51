package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/waliags/tradermindset/internal/date"
	"github.com/waliags/tradermindset/internal/models"
	"github.com/waliags/tradermindset/internal/validator"
)

type TradeStore interface {
	Trades(ctx context.Context) ([]models.TradeReview, error)
	CreateTrade(ctx context.Context, t models.TradeReview) (models.TradeReview, error)
	UpdateTrade(ctx context.Context, id int64, upd models.TradeUpdate) (models.TradeReview, error)
	DeleteTrade(ctx context.Context, id int64) error
}

type TradeHandler struct {
	store TradeStore
	log   *zap.SugaredLogger
}

func NewTradeHandler(store TradeStore, log *zap.SugaredLogger) *TradeHandler {
	return &TradeHandler{store: store, log: log}
}

// List returns all trade reviews, optionally filtered to an inclusive
// startDate/endDate range.
func (h *TradeHandler) List(w http.ResponseWriter, r *http.Request) {
	trades, err := h.store.Trades(r.Context())
	if err != nil {
		respondStoreError(w, h.log, err, "Trade not found", "Failed to fetch trades")
		return
	}

	startRaw := r.URL.Query().Get("startDate")
	endRaw := r.URL.Query().Get("endDate")
	if startRaw != "" || endRaw != "" {
		start, end, err := parseRange(startRaw, endRaw)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid date range")
			return
		}
		filtered := make([]models.TradeReview, 0, len(trades))
		for _, t := range trades {
			if t.Date.In(start, end) {
				filtered = append(filtered, t)
			}
		}
		trades = filtered
	}

	if trades == nil {
		trades = []models.TradeReview{}
	}
	respondJSON(w, http.StatusOK, trades)
}

type tradeRequest struct {
	Date           date.Day `json:"date"`
	Symbol         string   `json:"symbol"`
	Side           string   `json:"side"`
	EntryPrice     string   `json:"entryPrice"`
	ExitPrice      string   `json:"exitPrice"`
	Quantity       string   `json:"quantity"`
	PnL            string   `json:"pnl"`
	Tags           []string `json:"tags"`
	EmotionalState string   `json:"emotionalState"`
	Setup          string   `json:"setup"`
	Mistakes       []string `json:"mistakes"`
	Lessons        string   `json:"lessons"`
	Rating         int      `json:"rating"`
}

func (req *tradeRequest) validate() *validator.Validator {
	v := validator.New()
	v.Check(!req.Date.IsZero(), "date", "field is required")
	v.Required(req.Symbol, "symbol")
	if req.Symbol != "" {
		v.ValidateSymbol(req.Symbol)
	}
	v.ValidateSide(req.Side)
	v.Required(req.EntryPrice, "entryPrice")
	v.ValidateNumeric(req.EntryPrice, "entryPrice")
	v.ValidateNumeric(req.ExitPrice, "exitPrice")
	v.Required(req.Quantity, "quantity")
	v.ValidateNumeric(req.Quantity, "quantity")
	v.ValidateNumeric(req.PnL, "pnl")
	v.ValidateRating(req.Rating)
	return v
}

func (h *TradeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid trade data")
		return
	}
	if !req.validate().Valid() {
		respondMessage(w, http.StatusBadRequest, "Invalid trade data")
		return
	}

	trade, err := h.store.CreateTrade(r.Context(), models.TradeReview{
		Date:           req.Date,
		Symbol:         req.Symbol,
		Side:           req.Side,
		EntryPrice:     req.EntryPrice,
		ExitPrice:      req.ExitPrice,
		Quantity:       req.Quantity,
		PnL:            req.PnL,
		Tags:           req.Tags,
		EmotionalState: req.EmotionalState,
		Setup:          req.Setup,
		Mistakes:       req.Mistakes,
		Lessons:        req.Lessons,
		Rating:         req.Rating,
	})
	if err != nil {
		respondStoreError(w, h.log, err, "Trade not found", "Failed to create trade")
		return
	}
	respondJSON(w, http.StatusCreated, trade)
}

func (h *TradeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid trade id")
		return
	}

	var upd models.TradeUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid trade data")
		return
	}

	v := validator.New()
	if upd.Side != nil {
		v.ValidateSide(*upd.Side)
	}
	if upd.Symbol != nil {
		v.ValidateSymbol(*upd.Symbol)
	}
	if upd.PnL != nil {
		v.ValidateNumeric(*upd.PnL, "pnl")
	}
	if upd.Rating != nil {
		v.ValidateRating(*upd.Rating)
	}
	if !v.Valid() {
		respondMessage(w, http.StatusBadRequest, "Invalid trade data")
		return
	}

	trade, err := h.store.UpdateTrade(r.Context(), id, upd)
	if err != nil {
		respondStoreError(w, h.log, err, "Trade not found", "Failed to update trade")
		return
	}
	respondJSON(w, http.StatusOK, trade)
}

// Delete removes a trade review permanently.
func (h *TradeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid trade id")
		return
	}

	if err := h.store.DeleteTrade(r.Context(), id); err != nil {
		respondStoreError(w, h.log, err, "Trade not found", "Failed to delete trade")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
