package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waliags/tradermindset/internal/date"
	"github.com/waliags/tradermindset/internal/models"
)

func TestMemSeedsDefaultHabits(t *testing.T) {
	st := NewMem()

	habits, err := st.ActiveHabits(context.Background())
	require.NoError(t, err)
	require.Len(t, habits, 4)
	assert.Equal(t, "Avoid Overtrading", habits[0].Name)
	for i, h := range habits {
		assert.Equal(t, int64(i+1), h.ID)
		assert.True(t, h.IsActive)
	}
}

func TestMemHabits(t *testing.T) {
	st := NewMem()
	ctx := context.Background()

	t.Run("Create assigns monotonic ids", func(t *testing.T) {
		a, err := st.CreateHabit(ctx, models.Habit{Name: "One", Category: "custom"})
		require.NoError(t, err)
		b, err := st.CreateHabit(ctx, models.Habit{Name: "Two", Category: "custom"})
		require.NoError(t, err)
		assert.Greater(t, b.ID, a.ID)
		assert.True(t, a.IsActive)
	})

	t.Run("Update merges only provided fields", func(t *testing.T) {
		h, err := st.CreateHabit(ctx, models.Habit{Name: "Old", Description: "keep me", Category: "custom"})
		require.NoError(t, err)

		name := "New"
		updated, err := st.UpdateHabit(ctx, h.ID, models.HabitUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "New", updated.Name)
		assert.Equal(t, "keep me", updated.Description)
		assert.Equal(t, "custom", updated.Category)
	})

	t.Run("Update unknown id reports not found", func(t *testing.T) {
		_, err := st.UpdateHabit(ctx, 9999, models.HabitUpdate{})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete is soft", func(t *testing.T) {
		h, err := st.CreateHabit(ctx, models.Habit{Name: "Doomed", Category: "custom"})
		require.NoError(t, err)
		require.NoError(t, st.DeleteHabit(ctx, h.ID))

		// Gone from the active listing but still fetchable by id.
		habits, err := st.ActiveHabits(ctx)
		require.NoError(t, err)
		for _, active := range habits {
			assert.NotEqual(t, h.ID, active.ID)
		}

		kept, err := st.Habit(ctx, h.ID)
		require.NoError(t, err)
		assert.False(t, kept.IsActive)

		assert.ErrorIs(t, st.DeleteHabit(ctx, 9999), ErrNotFound)
	})
}

func TestMemCompletionUpsert(t *testing.T) {
	st := NewMem()
	ctx := context.Background()
	day := date.MustParse("2024-06-15")

	first, err := st.UpsertHabitCompletion(ctx, models.HabitCompletion{HabitID: 1, Date: day, Completed: true})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	t.Run("Same key overwrites in place and keeps the id", func(t *testing.T) {
		second, err := st.UpsertHabitCompletion(ctx, models.HabitCompletion{HabitID: 1, Date: day, Completed: false})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.False(t, second.Completed)

		all, err := st.HabitCompletions(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("Identical upsert is idempotent", func(t *testing.T) {
		a, err := st.UpsertHabitCompletion(ctx, models.HabitCompletion{HabitID: 1, Date: day, Completed: true})
		require.NoError(t, err)
		b, err := st.UpsertHabitCompletion(ctx, models.HabitCompletion{HabitID: 1, Date: day, Completed: true})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("Different day is a distinct record", func(t *testing.T) {
		other, err := st.UpsertHabitCompletion(ctx, models.HabitCompletion{HabitID: 1, Date: day.Add(1), Completed: true})
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, other.ID)

		all, err := st.HabitCompletions(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("Lookup by key", func(t *testing.T) {
		got, err := st.HabitCompletion(ctx, 1, day)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)

		_, err = st.HabitCompletion(ctx, 42, day)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemDateKeyedSingletons(t *testing.T) {
	st := NewMem()
	ctx := context.Background()
	day := date.MustParse("2024-06-15")

	t.Run("Check-in upsert replaces mood", func(t *testing.T) {
		_, err := st.CheckIn(ctx, day)
		assert.ErrorIs(t, err, ErrNotFound)

		created, err := st.UpsertCheckIn(ctx, models.EmotionalCheckIn{Date: day, Mood: "good"})
		require.NoError(t, err)

		updated, err := st.UpsertCheckIn(ctx, models.EmotionalCheckIn{Date: day, Mood: "stressed"})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "stressed", updated.Mood)
	})

	t.Run("Journal upsert replaces content", func(t *testing.T) {
		created, err := st.UpsertJournalEntry(ctx, models.JournalEntry{Date: day, Content: "draft"})
		require.NoError(t, err)

		updated, err := st.UpsertJournalEntry(ctx, models.JournalEntry{Date: day, Content: "final"})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "final", updated.Content)
	})

	t.Run("Risk metrics upsert keeps the id", func(t *testing.T) {
		created, err := st.UpsertRiskMetrics(ctx, models.RiskMetrics{Date: day, AccountBalance: "10000"})
		require.NoError(t, err)

		updated, err := st.UpsertRiskMetrics(ctx, models.RiskMetrics{Date: day, AccountBalance: "9500", MaxDrawdown: "5"})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "9500", updated.AccountBalance)
		assert.Equal(t, "5", updated.MaxDrawdown)
	})
}

func TestMemTrades(t *testing.T) {
	st := NewMem()
	ctx := context.Background()

	mk := func(day string) models.TradeReview {
		return models.TradeReview{
			Date:       date.MustParse(day),
			Symbol:     "NQ",
			Side:       models.SideShort,
			EntryPrice: "18000",
			Quantity:   "2",
		}
	}

	t.Run("Multiple trades per day are allowed", func(t *testing.T) {
		a, err := st.CreateTrade(ctx, mk("2024-06-15"))
		require.NoError(t, err)
		b, err := st.CreateTrade(ctx, mk("2024-06-15"))
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)

		trades, err := st.Trades(ctx)
		require.NoError(t, err)
		assert.Len(t, trades, 2)
	})

	t.Run("Delete is hard", func(t *testing.T) {
		tr, err := st.CreateTrade(ctx, mk("2024-06-16"))
		require.NoError(t, err)
		require.NoError(t, st.DeleteTrade(ctx, tr.ID))

		_, err = st.Trade(ctx, tr.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, st.DeleteTrade(ctx, tr.ID), ErrNotFound)
	})

	t.Run("Ids are never reused after delete", func(t *testing.T) {
		tr, err := st.CreateTrade(ctx, mk("2024-06-17"))
		require.NoError(t, err)
		require.NoError(t, st.DeleteTrade(ctx, tr.ID))

		next, err := st.CreateTrade(ctx, mk("2024-06-17"))
		require.NoError(t, err)
		assert.Greater(t, next.ID, tr.ID)
	})

	t.Run("Partial update leaves other fields alone", func(t *testing.T) {
		tr, err := st.CreateTrade(ctx, mk("2024-06-18"))
		require.NoError(t, err)

		pnl := "-120.50"
		updated, err := st.UpdateTrade(ctx, tr.ID, models.TradeUpdate{PnL: &pnl})
		require.NoError(t, err)
		assert.Equal(t, "-120.50", updated.PnL)
		assert.Equal(t, "NQ", updated.Symbol)
		assert.Equal(t, "18000", updated.EntryPrice)
	})
}

func TestMemGoals(t *testing.T) {
	st := NewMem()
	ctx := context.Background()

	g, err := st.CreateGoal(ctx, models.Goal{Title: "Green month", TargetValue: 20, Unit: "days", Category: "discipline"})
	require.NoError(t, err)
	assert.True(t, g.IsActive)

	t.Run("Update merges progress", func(t *testing.T) {
		current := 7.0
		updated, err := st.UpdateGoal(ctx, g.ID, models.GoalUpdate{CurrentValue: &current})
		require.NoError(t, err)
		assert.Equal(t, 7.0, updated.CurrentValue)
		assert.Equal(t, 20.0, updated.TargetValue)
	})

	t.Run("Delete is soft", func(t *testing.T) {
		require.NoError(t, st.DeleteGoal(ctx, g.ID))

		goals, err := st.ActiveGoals(ctx)
		require.NoError(t, err)
		assert.Empty(t, goals)

		assert.ErrorIs(t, st.DeleteGoal(ctx, 9999), ErrNotFound)
	})
}
