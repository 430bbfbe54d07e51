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

type CheckInStore interface {
	CheckIn(ctx context.Context, day date.Day) (models.EmotionalCheckIn, error)
	UpsertCheckIn(ctx context.Context, c models.EmotionalCheckIn) (models.EmotionalCheckIn, error)
}

type CheckInHandler struct {
	store CheckInStore
	log   *zap.SugaredLogger
}

func NewCheckInHandler(store CheckInStore, log *zap.SugaredLogger) *CheckInHandler {
	return &CheckInHandler{store: store, log: log}
}

// Get returns the check-in for a day, or null when none exists yet; the
// dashboard treats a missing check-in as "not checked in", not as an error.
func (h *CheckInHandler) Get(w http.ResponseWriter, r *http.Request) {
	day, err := date.Parse(mux.Vars(r)["date"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid date")
		return
	}

	checkIn, err := h.store.CheckIn(r.Context(), day)
	if errors.Is(err, store.ErrNotFound) {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		respondStoreError(w, h.log, err, "Check-in not found", "Failed to fetch emotional check-in")
		return
	}
	respondJSON(w, http.StatusOK, checkIn)
}

type checkInRequest struct {
	Date date.Day `json:"date"`
	Mood string   `json:"mood"`
}

func (h *CheckInHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid check-in data")
		return
	}

	v := validator.New()
	v.Check(!req.Date.IsZero(), "date", "field is required")
	v.ValidateMood(req.Mood)
	if !v.Valid() {
		respondMessage(w, http.StatusBadRequest, "Invalid check-in data")
		return
	}

	checkIn, err := h.store.UpsertCheckIn(r.Context(), models.EmotionalCheckIn{
		Date: req.Date,
		Mood: req.Mood,
	})
	if err != nil {
		respondStoreError(w, h.log, err, "Check-in not found", "Failed to save emotional check-in")
		return
	}
	respondJSON(w, http.StatusOK, checkIn)
}
