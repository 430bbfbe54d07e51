// Package stats derives streaks, completion rates, perfect-day counts and
// trading performance metrics from the raw records. Every calculator is a
// pure read; nothing in this package mutates the store.
package stats

import (
	"math"

	"github.com/waliags/tradermindset/internal/date"
	"github.com/waliags/tradermindset/internal/models"
)

// maxStreakLookback caps the backward streak walk.
const maxStreakLookback = 365

// HabitStats derives the per-habit statistics for the reference day from
// the habit's full completion history. A habit with no history yields a
// zero streak and a zero completion rate.
func HabitStats(h models.Habit, completions []models.HabitCompletion, day date.Day) models.HabitWithStats {
	done := make(map[date.Day]bool, len(completions))
	for _, c := range completions {
		done[c.Date] = c.Completed
	}

	streak := 0
	for d := day; streak < maxStreakLookback; d = d.Add(-1) {
		if !done[d] {
			break
		}
		streak++
	}

	monthStart, monthEnd := day.MonthStart(), day.MonthEnd()
	monthly := 0
	for _, c := range completions {
		if c.Completed && c.Date.In(monthStart, monthEnd) {
			monthly++
		}
	}

	daysInMonth := day.DaysInMonth()
	return models.HabitWithStats{
		Habit:              h,
		CurrentStreak:      streak,
		CompletionRate:     roundPct(float64(monthly) / float64(daysInMonth) * 100),
		CompletedToday:     done[day],
		MonthlyCompletions: monthly,
		TotalDaysThisMonth: daysInMonth,
	}
}

// roundPct rounds a percentage to the nearest integer.
func roundPct(x float64) int { return int(math.Round(x)) }

// round2 rounds to two decimal places.
func round2(x float64) float64 { return math.Round(x*100) / 100 }
