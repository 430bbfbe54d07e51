package models

import (
	"github.com/waliags/tradermindset/internal/date"
)

// Habit is a recurring discretionary behavior tracked per calendar day.
// Deletes are soft: IsActive flips to false and historical completions
// referencing the habit stay valid.
type Habit struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	IsActive    bool   `json:"isActive"`
}

// HabitCompletion records whether a habit was completed on a given day.
// At most one record exists per (HabitID, Date); resubmitting the same key
// overwrites the stored value in place.
type HabitCompletion struct {
	ID        int64    `json:"id"`
	HabitID   int64    `json:"habitId"`
	Date      date.Day `json:"date"`
	Completed bool     `json:"completed"`
}

// EmotionalCheckIn is the mood check-in for a day. One per date, upserted.
// Mood is one of: excellent, good, neutral, stressed, angry.
type EmotionalCheckIn struct {
	ID   int64    `json:"id"`
	Date date.Day `json:"date"`
	Mood string   `json:"mood"`
}

// JournalEntry is the free-form journal text for a day. One per date,
// upserted.
type JournalEntry struct {
	ID      int64    `json:"id"`
	Date    date.Day `json:"date"`
	Content string   `json:"content"`
}

// TradeReview is a logged trade with its post-mortem. Multiple reviews per
// day are allowed; reviews are identified by their synthetic id and are the
// only entity that is hard-deleted.
//
// Monetary fields travel as strings on the wire. PnL participates in the
// trading statistics only when it parses as a number.
type TradeReview struct {
	ID             int64    `json:"id"`
	Date           date.Day `json:"date"`
	Symbol         string   `json:"symbol"`
	Side           string   `json:"side"`
	EntryPrice     string   `json:"entryPrice"`
	ExitPrice      string   `json:"exitPrice,omitempty"`
	Quantity       string   `json:"quantity"`
	PnL            string   `json:"pnl,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	EmotionalState string   `json:"emotionalState,omitempty"`
	Setup          string   `json:"setup,omitempty"`
	Mistakes       []string `json:"mistakes,omitempty"`
	Lessons        string   `json:"lessons,omitempty"`
	Rating         int      `json:"rating,omitempty"`
}

// Trade sides.
const (
	SideLong  = "long"
	SideShort = "short"
)

// Goal tracks progress toward a target value. Soft-deleted like Habit.
type Goal struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	TargetValue  float64   `json:"targetValue"`
	CurrentValue float64   `json:"currentValue"`
	Unit         string    `json:"unit"`
	Deadline     *date.Day `json:"deadline,omitempty"`
	Category     string    `json:"category"`
	IsActive     bool      `json:"isActive"`
}

// RiskMetrics holds the daily risk snapshot. One per date, upserted. All
// measures are optional and travel as strings like the trade monetary
// fields.
type RiskMetrics struct {
	ID              int64    `json:"id"`
	Date            date.Day `json:"date"`
	AccountBalance  string   `json:"accountBalance,omitempty"`
	MaxDrawdown     string   `json:"maxDrawdown,omitempty"`
	DailyRisk       string   `json:"dailyRisk,omitempty"`
	PositionSize    string   `json:"positionSize,omitempty"`
	RiskRewardRatio string   `json:"riskRewardRatio,omitempty"`
}

// HabitWithStats is a habit joined with its derived statistics for a
// reference day.
type HabitWithStats struct {
	Habit
	CurrentStreak      int  `json:"currentStreak"`
	CompletionRate     int  `json:"completionRate"`
	CompletedToday     bool `json:"completedToday"`
	MonthlyCompletions int  `json:"monthlyCompletions"`
	TotalDaysThisMonth int  `json:"totalDaysThisMonth"`
}

// DailyProgress is one day of the weekly progress series.
type DailyProgress struct {
	Date           date.Day `json:"date"`
	CompletionRate int      `json:"completionRate"`
}

// MonthlyStats aggregates habit discipline over a calendar month.
type MonthlyStats struct {
	BestStreak     int `json:"bestStreak"`
	TotalHabits    int `json:"totalHabits"`
	CompletionRate int `json:"completionRate"`
	PerfectDays    int `json:"perfectDays"`
}

// TradingStats aggregates trade performance over an inclusive date range.
type TradingStats struct {
	TotalTrades     int            `json:"totalTrades"`
	WinRate         int            `json:"winRate"`
	TotalPnL        float64        `json:"totalPnL"`
	AvgWin          float64        `json:"avgWin"`
	AvgLoss         float64        `json:"avgLoss"`
	ProfitFactor    float64        `json:"profitFactor"`
	EmotionalStates map[string]int `json:"emotionalStates"`
}

// HabitUpdate carries a partial habit update; nil fields keep the stored
// value.
type HabitUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

// GoalUpdate carries a partial goal update; nil fields keep the stored
// value.
type GoalUpdate struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	TargetValue  *float64  `json:"targetValue"`
	CurrentValue *float64  `json:"currentValue"`
	Unit         *string   `json:"unit"`
	Deadline     *date.Day `json:"deadline"`
	Category     *string   `json:"category"`
}

// TradeUpdate carries a partial trade review update; nil fields keep the
// stored value.
type TradeUpdate struct {
	Date           *date.Day `json:"date"`
	Symbol         *string   `json:"symbol"`
	Side           *string   `json:"side"`
	EntryPrice     *string   `json:"entryPrice"`
	ExitPrice      *string   `json:"exitPrice"`
	Quantity       *string   `json:"quantity"`
	PnL            *string   `json:"pnl"`
	Tags           []string  `json:"tags"`
	EmotionalState *string   `json:"emotionalState"`
	Setup          *string   `json:"setup"`
	Mistakes       []string  `json:"mistakes"`
	Lessons        *string   `json:"lessons"`
	Rating         *int      `json:"rating"`
}
