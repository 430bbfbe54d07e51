package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/waliags/tradermindset/internal/date"
	"github.com/waliags/tradermindset/internal/models"
)

type StatsService interface {
	HabitsWithStats(ctx context.Context, day date.Day) ([]models.HabitWithStats, error)
	WeeklyProgress(ctx context.Context, start, end date.Day) ([]models.DailyProgress, error)
	MonthlyStats(ctx context.Context, year, month int) (models.MonthlyStats, error)
	TradingStats(ctx context.Context, start, end date.Day) (models.TradingStats, error)
}

type AnalyticsHandler struct {
	stats StatsService
	log   *zap.SugaredLogger
}

func NewAnalyticsHandler(stats StatsService, log *zap.SugaredLogger) *AnalyticsHandler {
	return &AnalyticsHandler{stats: stats, log: log}
}

func (h *AnalyticsHandler) HabitsWithStats(w http.ResponseWriter, r *http.Request) {
	day, err := date.Parse(mux.Vars(r)["date"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid date")
		return
	}

	habits, err := h.stats.HabitsWithStats(r.Context(), day)
	if err != nil {
		respondStoreError(w, h.log, err, "Habit not found", "Failed to fetch habits with stats")
		return
	}
	respondJSON(w, http.StatusOK, habits)
}

func (h *AnalyticsHandler) WeeklyProgress(w http.ResponseWriter, r *http.Request) {
	startRaw := r.URL.Query().Get("startDate")
	endRaw := r.URL.Query().Get("endDate")
	if startRaw == "" || endRaw == "" {
		respondMessage(w, http.StatusBadRequest, "Start date and end date are required")
		return
	}

	start, end, err := parseRange(startRaw, endRaw)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid date range")
		return
	}

	progress, err := h.stats.WeeklyProgress(r.Context(), start, end)
	if err != nil {
		respondStoreError(w, h.log, err, "Habit not found", "Failed to fetch weekly progress")
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

func (h *AnalyticsHandler) MonthlyStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, yearErr := strconv.Atoi(vars["year"])
	month, monthErr := strconv.Atoi(vars["month"])
	if yearErr != nil || monthErr != nil || month < 1 || month > 12 {
		respondMessage(w, http.StatusBadRequest, "Invalid year or month")
		return
	}

	monthly, err := h.stats.MonthlyStats(r.Context(), year, month)
	if err != nil {
		respondStoreError(w, h.log, err, "Habit not found", "Failed to fetch monthly stats")
		return
	}
	respondJSON(w, http.StatusOK, monthly)
}

func (h *AnalyticsHandler) TradingStats(w http.ResponseWriter, r *http.Request) {
	startRaw := r.URL.Query().Get("startDate")
	endRaw := r.URL.Query().Get("endDate")
	if startRaw == "" || endRaw == "" {
		respondMessage(w, http.StatusBadRequest, "Start date and end date are required")
		return
	}

	start, end, err := parseRange(startRaw, endRaw)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid date range")
		return
	}

	tradingStats, err := h.stats.TradingStats(r.Context(), start, end)
	if err != nil {
		respondStoreError(w, h.log, err, "Trade not found", "Failed to fetch trading stats")
		return
	}
	respondJSON(w, http.StatusOK, tradingStats)
}

// parseRange parses an inclusive startDate/endDate pair. An empty bound is
// left open at the calendar's edge so a single-sided filter still works.
func parseRange(startRaw, endRaw string) (date.Day, date.Day, error) {
	start := date.New(1, 1, 1)
	end := date.New(9999, 12, 31)

	if startRaw != "" {
		var err error
		if start, err = date.Parse(startRaw); err != nil {
			return date.Day{}, date.Day{}, fmt.Errorf("start: %w", err)
		}
	}
	if endRaw != "" {
		var err error
		if end, err = date.Parse(endRaw); err != nil {
			return date.Day{}, date.Day{}, fmt.Errorf("end: %w", err)
		}
	}
	return start, end, nil
}
