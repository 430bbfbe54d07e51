// Package store holds the record collections behind the API. The Store
// interface isolates the calculators from the backend so a persistent
// implementation can be swapped in without touching them.
package store

import (
	"context"
	"errors"

	"github.com/waliags/tradermindset/internal/date"
	"github.com/waliags/tradermindset/internal/models"
)

// ErrNotFound is returned for operations on an id or date key that has no
// record.
var ErrNotFound = errors.New("record not found")

// Store is the full CRUD surface of the tracker. Habits and goals are
// soft-deleted; trade reviews are hard-deleted; the date-keyed singletons
// (completions, check-ins, journal entries, risk metrics) are upserted by
// their natural key.
type Store interface {
	Ping(ctx context.Context) error

	ActiveHabits(ctx context.Context) ([]models.Habit, error)
	Habit(ctx context.Context, id int64) (models.Habit, error)
	CreateHabit(ctx context.Context, h models.Habit) (models.Habit, error)
	UpdateHabit(ctx context.Context, id int64, upd models.HabitUpdate) (models.Habit, error)
	DeleteHabit(ctx context.Context, id int64) error

	HabitCompletions(ctx context.Context, habitID int64) ([]models.HabitCompletion, error)
	HabitCompletion(ctx context.Context, habitID int64, day date.Day) (models.HabitCompletion, error)
	UpsertHabitCompletion(ctx context.Context, c models.HabitCompletion) (models.HabitCompletion, error)

	CheckIn(ctx context.Context, day date.Day) (models.EmotionalCheckIn, error)
	UpsertCheckIn(ctx context.Context, c models.EmotionalCheckIn) (models.EmotionalCheckIn, error)

	JournalEntry(ctx context.Context, day date.Day) (models.JournalEntry, error)
	UpsertJournalEntry(ctx context.Context, e models.JournalEntry) (models.JournalEntry, error)

	Trades(ctx context.Context) ([]models.TradeReview, error)
	Trade(ctx context.Context, id int64) (models.TradeReview, error)
	CreateTrade(ctx context.Context, t models.TradeReview) (models.TradeReview, error)
	UpdateTrade(ctx context.Context, id int64, upd models.TradeUpdate) (models.TradeReview, error)
	DeleteTrade(ctx context.Context, id int64) error

	ActiveGoals(ctx context.Context) ([]models.Goal, error)
	CreateGoal(ctx context.Context, g models.Goal) (models.Goal, error)
	UpdateGoal(ctx context.Context, id int64, upd models.GoalUpdate) (models.Goal, error)
	DeleteGoal(ctx context.Context, id int64) error

	RiskMetrics(ctx context.Context, day date.Day) (models.RiskMetrics, error)
	UpsertRiskMetrics(ctx context.Context, m models.RiskMetrics) (models.RiskMetrics, error)
}

func applyHabitUpdate(h *models.Habit, upd models.HabitUpdate) {
	if upd.Name != nil {
		h.Name = *upd.Name
	}
	if upd.Description != nil {
		h.Description = *upd.Description
	}
	if upd.Category != nil {
		h.Category = *upd.Category
	}
}

func applyGoalUpdate(g *models.Goal, upd models.GoalUpdate) {
	if upd.Title != nil {
		g.Title = *upd.Title
	}
	if upd.Description != nil {
		g.Description = *upd.Description
	}
	if upd.TargetValue != nil {
		g.TargetValue = *upd.TargetValue
	}
	if upd.CurrentValue != nil {
		g.CurrentValue = *upd.CurrentValue
	}
	if upd.Unit != nil {
		g.Unit = *upd.Unit
	}
	if upd.Deadline != nil {
		g.Deadline = upd.Deadline
	}
	if upd.Category != nil {
		g.Category = *upd.Category
	}
}

func applyTradeUpdate(t *models.TradeReview, upd models.TradeUpdate) {
	if upd.Date != nil {
		t.Date = *upd.Date
	}
	if upd.Symbol != nil {
		t.Symbol = *upd.Symbol
	}
	if upd.Side != nil {
		t.Side = *upd.Side
	}
	if upd.EntryPrice != nil {
		t.EntryPrice = *upd.EntryPrice
	}
	if upd.ExitPrice != nil {
		t.ExitPrice = *upd.ExitPrice
	}
	if upd.Quantity != nil {
		t.Quantity = *upd.Quantity
	}
	if upd.PnL != nil {
		t.PnL = *upd.PnL
	}
	if upd.Tags != nil {
		t.Tags = upd.Tags
	}
	if upd.EmotionalState != nil {
		t.EmotionalState = *upd.EmotionalState
	}
	if upd.Setup != nil {
		t.Setup = *upd.Setup
	}
	if upd.Mistakes != nil {
		t.Mistakes = upd.Mistakes
	}
	if upd.Lessons != nil {
		t.Lessons = *upd.Lessons
	}
	if upd.Rating != nil {
		t.Rating = *upd.Rating
	}
}
