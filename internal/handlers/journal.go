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

type JournalStore interface {
	JournalEntry(ctx context.Context, day date.Day) (models.JournalEntry, error)
	UpsertJournalEntry(ctx context.Context, e models.JournalEntry) (models.JournalEntry, error)
}

type JournalHandler struct {
	store JournalStore
	log   *zap.SugaredLogger
}

func NewJournalHandler(store JournalStore, log *zap.SugaredLogger) *JournalHandler {
	return &JournalHandler{store: store, log: log}
}

// Get returns the journal entry for a day, or null when none exists yet.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	day, err := date.Parse(mux.Vars(r)["date"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid date")
		return
	}

	entry, err := h.store.JournalEntry(r.Context(), day)
	if errors.Is(err, store.ErrNotFound) {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		respondStoreError(w, h.log, err, "Journal entry not found", "Failed to fetch journal entry")
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

type journalRequest struct {
	Date    date.Day `json:"date"`
	Content string   `json:"content"`
}

func (h *JournalHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req journalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid journal entry data")
		return
	}

	v := validator.New()
	v.Check(!req.Date.IsZero(), "date", "field is required")
	v.Required(req.Content, "content")
	if !v.Valid() {
		respondMessage(w, http.StatusBadRequest, "Invalid journal entry data")
		return
	}

	entry, err := h.store.UpsertJournalEntry(r.Context(), models.JournalEntry{
		Date:    req.Date,
		Content: req.Content,
	})
	if err != nil {
		respondStoreError(w, h.log, err, "Journal entry not found", "Failed to save journal entry")
		return
	}
	respondJSON(w, http.StatusOK, entry)
}
