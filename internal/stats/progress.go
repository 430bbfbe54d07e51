package stats

import (
	"github.com/waliags/tradermindset/internal/date"
	"github.com/waliags/tradermindset/internal/models"
)

type habitDay struct {
	habitID int64
	day     date.Day
}

// completionIndex is the lookup the range aggregators walk: true means the
// habit was marked completed on that day.
type completionIndex map[habitDay]bool

// dailyRates produces one record per calendar day in [start, end]
// inclusive. The rate is the share of active habits completed that day,
// rounded to the nearest integer; with zero active habits every day rates 0.
func dailyRates(habits []models.Habit, idx completionIndex, start, end date.Day) []models.DailyProgress {
	var out []models.DailyProgress
	for d := start; !d.After(end); d = d.Add(1) {
		completed := 0
		for _, h := range habits {
			if idx[habitDay{h.ID, d}] {
				completed++
			}
		}

		rate := 0
		if len(habits) > 0 {
			rate = roundPct(float64(completed) / float64(len(habits)) * 100)
		}
		out = append(out, models.DailyProgress{Date: d, CompletionRate: rate})
	}
	return out
}

// monthlyStats aggregates a month of completions. A day counts as perfect
// only when every active habit was completed and at least one habit exists;
// bestStreak is the longest run of exactly-100% days and resets on any day
// below that, gaps included. A month with zero active habits is all zeros.
func monthlyStats(habits []models.Habit, idx completionIndex, start, end date.Day) models.MonthlyStats {
	totalCompletions := 0
	totalPossible := 0
	perfectDays := 0

	for d := start; !d.After(end); d = d.Add(1) {
		dayCompletions := 0
		for _, h := range habits {
			if idx[habitDay{h.ID, d}] {
				dayCompletions++
				totalCompletions++
			}
			totalPossible++
		}
		if len(habits) > 0 && dayCompletions == len(habits) {
			perfectDays++
		}
	}

	bestStreak := 0
	run := 0
	for _, day := range dailyRates(habits, idx, start, end) {
		if day.CompletionRate == 100 {
			run++
			if run > bestStreak {
				bestStreak = run
			}
		} else {
			run = 0
		}
	}

	rate := 0
	if totalPossible > 0 {
		rate = roundPct(float64(totalCompletions) / float64(totalPossible) * 100)
	}

	return models.MonthlyStats{
		BestStreak:     bestStreak,
		TotalHabits:    len(habits),
		CompletionRate: rate,
		PerfectDays:    perfectDays,
	}
}
