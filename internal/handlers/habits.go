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

type HabitStore interface {
	ActiveHabits(ctx context.Context) ([]models.Habit, error)
	CreateHabit(ctx context.Context, h models.Habit) (models.Habit, error)
	UpdateHabit(ctx context.Context, id int64, upd models.HabitUpdate) (models.Habit, error)
	DeleteHabit(ctx context.Context, id int64) error
	UpsertHabitCompletion(ctx context.Context, c models.HabitCompletion) (models.HabitCompletion, error)
}

type HabitHandler struct {
	store HabitStore
	log   *zap.SugaredLogger
}

func NewHabitHandler(store HabitStore, log *zap.SugaredLogger) *HabitHandler {
	return &HabitHandler{store: store, log: log}
}

type createHabitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	habits, err := h.store.ActiveHabits(r.Context())
	if err != nil {
		respondStoreError(w, h.log, err, "Habit not found", "Failed to fetch habits")
		return
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	respondJSON(w, http.StatusOK, habits)
}

func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createHabitRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid habit data")
		return
	}

	v := validator.New()
	v.Required(req.Name, "name")
	if !v.Valid() {
		respondMessage(w, http.StatusBadRequest, "Invalid habit data")
		return
	}
	if req.Category == "" {
		req.Category = "custom"
	}

	habit, err := h.store.CreateHabit(r.Context(), models.Habit{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		respondStoreError(w, h.log, err, "Habit not found", "Failed to create habit")
		return
	}
	respondJSON(w, http.StatusCreated, habit)
}

func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid habit id")
		return
	}

	var upd models.HabitUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid habit data")
		return
	}
	if upd.Name != nil && *upd.Name == "" {
		respondMessage(w, http.StatusBadRequest, "Invalid habit data")
		return
	}

	habit, err := h.store.UpdateHabit(r.Context(), id, upd)
	if err != nil {
		respondStoreError(w, h.log, err, "Habit not found", "Failed to update habit")
		return
	}
	respondJSON(w, http.StatusOK, habit)
}

func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid habit id")
		return
	}

	if err := h.store.DeleteHabit(r.Context(), id); err != nil {
		respondStoreError(w, h.log, err, "Habit not found", "Failed to delete habit")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type completionRequest struct {
	HabitID   int64    `json:"habitId"`
	Date      date.Day `json:"date"`
	Completed bool     `json:"completed"`
}

// UpsertCompletion stores the completion flag for (habitId, date),
// overwriting any prior record for the same key.
func (h *HabitHandler) UpsertCompletion(w http.ResponseWriter, r *http.Request) {
	var req completionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid completion data")
		return
	}
	if req.HabitID <= 0 || req.Date.IsZero() {
		respondMessage(w, http.StatusBadRequest, "Invalid completion data")
		return
	}

	completion, err := h.store.UpsertHabitCompletion(r.Context(), models.HabitCompletion{
		HabitID:   req.HabitID,
		Date:      req.Date,
		Completed: req.Completed,
	})
	if err != nil {
		respondStoreError(w, h.log, err, "Habit not found", "Failed to save completion")
		return
	}
	respondJSON(w, http.StatusOK, completion)
}
