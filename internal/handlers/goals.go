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

type GoalStore interface {
	ActiveGoals(ctx context.Context) ([]models.Goal, error)
	CreateGoal(ctx context.Context, g models.Goal) (models.Goal, error)
	UpdateGoal(ctx context.Context, id int64, upd models.GoalUpdate) (models.Goal, error)
	DeleteGoal(ctx context.Context, id int64) error
}

type GoalHandler struct {
	store GoalStore
	log   *zap.SugaredLogger
}

func NewGoalHandler(store GoalStore, log *zap.SugaredLogger) *GoalHandler {
	return &GoalHandler{store: store, log: log}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.store.ActiveGoals(r.Context())
	if err != nil {
		respondStoreError(w, h.log, err, "Goal not found", "Failed to fetch goals")
		return
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	respondJSON(w, http.StatusOK, goals)
}

type goalRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	TargetValue  float64   `json:"targetValue"`
	CurrentValue float64   `json:"currentValue"`
	Unit         string    `json:"unit"`
	Deadline     *date.Day `json:"deadline"`
	Category     string    `json:"category"`
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid goal data")
		return
	}

	v := validator.New()
	v.Required(req.Title, "title")
	v.Required(req.Unit, "unit")
	v.Check(req.TargetValue > 0, "targetValue", "must be positive")
	if !v.Valid() {
		respondMessage(w, http.StatusBadRequest, "Invalid goal data")
		return
	}
	if req.Category == "" {
		req.Category = "custom"
	}

	goal, err := h.store.CreateGoal(r.Context(), models.Goal{
		Title:        req.Title,
		Description:  req.Description,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Unit:         req.Unit,
		Deadline:     req.Deadline,
		Category:     req.Category,
	})
	if err != nil {
		respondStoreError(w, h.log, err, "Goal not found", "Failed to create goal")
		return
	}
	respondJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid goal id")
		return
	}

	var upd models.GoalUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid goal data")
		return
	}
	if upd.Title != nil && *upd.Title == "" {
		respondMessage(w, http.StatusBadRequest, "Invalid goal data")
		return
	}

	goal, err := h.store.UpdateGoal(r.Context(), id, upd)
	if err != nil {
		respondStoreError(w, h.log, err, "Goal not found", "Failed to update goal")
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// Delete retires a goal; like habits, goals are soft-deleted so their
// history survives.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid goal id")
		return
	}

	if err := h.store.DeleteGoal(r.Context(), id); err != nil {
		respondStoreError(w, h.log, err, "Goal not found", "Failed to delete goal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
