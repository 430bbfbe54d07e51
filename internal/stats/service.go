package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/waliags/tradermindset/internal/date"
	"github.com/waliags/tradermindset/internal/models"
	"github.com/waliags/tradermindset/internal/store"
)

// Service answers the analytics queries by reading the store and running
// the calculators over the snapshot it gets back.
type Service struct {
	store store.Store
}

// NewService returns an analytics service over the given store.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// HabitsWithStats returns every active habit joined with its derived
// statistics for the reference day.
func (s *Service) HabitsWithStats(ctx context.Context, day date.Day) ([]models.HabitWithStats, error) {
	habits, err := s.store.ActiveHabits(ctx)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}

	out := make([]models.HabitWithStats, 0, len(habits))
	for _, h := range habits {
		completions, err := s.store.HabitCompletions(ctx, h.ID)
		if err != nil {
			return nil, fmt.Errorf("completions for habit %d: %w", h.ID, err)
		}
		out = append(out, HabitStats(h, completions, day))
	}
	return out, nil
}

// WeeklyProgress returns the day-by-day completion rate over the inclusive
// range.
func (s *Service) WeeklyProgress(ctx context.Context, start, end date.Day) ([]models.DailyProgress, error) {
	habits, idx, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	progress := dailyRates(habits, idx, start, end)
	if progress == nil {
		progress = []models.DailyProgress{}
	}
	return progress, nil
}

// MonthlyStats aggregates habit discipline over the given calendar month.
func (s *Service) MonthlyStats(ctx context.Context, year, month int) (models.MonthlyStats, error) {
	habits, idx, err := s.snapshot(ctx)
	if err != nil {
		return models.MonthlyStats{}, err
	}

	start := date.New(year, time.Month(month), 1)
	return monthlyStats(habits, idx, start, start.MonthEnd()), nil
}

// TradingStats aggregates trade performance over the inclusive range.
func (s *Service) TradingStats(ctx context.Context, start, end date.Day) (models.TradingStats, error) {
	trades, err := s.store.Trades(ctx)
	if err != nil {
		return models.TradingStats{}, fmt.Errorf("list trades: %w", err)
	}
	return TradingStats(trades, start, end), nil
}

// snapshot reads the active habits and their completion histories in one
// pass so every aggregate in a request works from the same view.
func (s *Service) snapshot(ctx context.Context) ([]models.Habit, completionIndex, error) {
	habits, err := s.store.ActiveHabits(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list habits: %w", err)
	}

	idx := make(completionIndex)
	for _, h := range habits {
		completions, err := s.store.HabitCompletions(ctx, h.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("completions for habit %d: %w", h.ID, err)
		}
		for _, c := range completions {
			idx[habitDay{h.ID, c.Date}] = c.Completed
		}
	}
	return habits, idx, nil
}
