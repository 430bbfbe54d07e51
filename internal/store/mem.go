package store

import (
	"context"
	"sort"
	"sync"

	"github.com/waliags/tradermindset/internal/date"
	"github.com/waliags/tradermindset/internal/models"
)

type completionKey struct {
	habitID int64
	day     date.Day
}

// Mem is the volatile in-memory Store. A single RWMutex serializes writers
// so every read sees a consistent snapshot; state is lost on restart.
type Mem struct {
	mu sync.RWMutex

	habits      map[int64]models.Habit
	completions map[completionKey]models.HabitCompletion
	checkIns    map[date.Day]models.EmotionalCheckIn
	journal     map[date.Day]models.JournalEntry
	trades      map[int64]models.TradeReview
	goals       map[int64]models.Goal
	risk        map[date.Day]models.RiskMetrics

	habitSeq      int64
	completionSeq int64
	checkInSeq    int64
	journalSeq    int64
	tradeSeq      int64
	goalSeq       int64
	riskSeq       int64
}

// NewMem returns an empty in-memory store seeded with the default
// discipline habits.
func NewMem() *Mem {
	m := &Mem{
		habits:      make(map[int64]models.Habit),
		completions: make(map[completionKey]models.HabitCompletion),
		checkIns:    make(map[date.Day]models.EmotionalCheckIn),
		journal:     make(map[date.Day]models.JournalEntry),
		trades:      make(map[int64]models.TradeReview),
		goals:       make(map[int64]models.Goal),
		risk:        make(map[date.Day]models.RiskMetrics),
	}
	m.seedDefaultHabits()
	return m
}

func (m *Mem) seedDefaultHabits() {
	defaults := []models.Habit{
		{
			Name:        "Avoid Overtrading",
			Description: "Maximum 3 trades per day, focus on quality over quantity",
			Category:    "Risk Management",
		},
		{
			Name:        "Honor Stop Losses",
			Description: "Exit positions when stop loss is hit, no exceptions",
			Category:    "Risk Management",
		},
		{
			Name:        "Wait for Setup",
			Description: "Only trade when all criteria are met, be patient",
			Category:    "Emotional Control",
		},
		{
			Name:        "Review Trades Daily",
			Description: "Spend 10 minutes analyzing today's trades",
			Category:    "Analysis & Research",
		},
	}
	for _, h := range defaults {
		m.habitSeq++
		h.ID = m.habitSeq
		h.IsActive = true
		m.habits[h.ID] = h
	}
}

// Ping always succeeds for the in-memory backend.
func (m *Mem) Ping(ctx context.Context) error { return nil }

func (m *Mem) ActiveHabits(ctx context.Context) ([]models.Habit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var habits []models.Habit
	for _, h := range m.habits {
		if h.IsActive {
			habits = append(habits, h)
		}
	}
	sort.Slice(habits, func(i, j int) bool { return habits[i].ID < habits[j].ID })
	return habits, nil
}

func (m *Mem) Habit(ctx context.Context, id int64) (models.Habit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.habits[id]
	if !ok {
		return models.Habit{}, ErrNotFound
	}
	return h, nil
}

func (m *Mem) CreateHabit(ctx context.Context, h models.Habit) (models.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.habitSeq++
	h.ID = m.habitSeq
	h.IsActive = true
	m.habits[h.ID] = h
	return h, nil
}

func (m *Mem) UpdateHabit(ctx context.Context, id int64, upd models.HabitUpdate) (models.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.habits[id]
	if !ok {
		return models.Habit{}, ErrNotFound
	}
	applyHabitUpdate(&h, upd)
	m.habits[id] = h
	return h, nil
}

func (m *Mem) DeleteHabit(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.habits[id]
	if !ok {
		return ErrNotFound
	}
	h.IsActive = false
	m.habits[id] = h
	return nil
}

func (m *Mem) HabitCompletions(ctx context.Context, habitID int64) ([]models.HabitCompletion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.HabitCompletion
	for _, c := range m.completions {
		if c.HabitID == habitID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *Mem) HabitCompletion(ctx context.Context, habitID int64, day date.Day) (models.HabitCompletion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.completions[completionKey{habitID, day}]
	if !ok {
		return models.HabitCompletion{}, ErrNotFound
	}
	return c, nil
}

func (m *Mem) UpsertHabitCompletion(ctx context.Context, c models.HabitCompletion) (models.HabitCompletion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := completionKey{c.HabitID, c.Date}
	if existing, ok := m.completions[key]; ok {
		existing.Completed = c.Completed
		m.completions[key] = existing
		return existing, nil
	}

	m.completionSeq++
	c.ID = m.completionSeq
	m.completions[key] = c
	return c, nil
}

func (m *Mem) CheckIn(ctx context.Context, day date.Day) (models.EmotionalCheckIn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.checkIns[day]
	if !ok {
		return models.EmotionalCheckIn{}, ErrNotFound
	}
	return c, nil
}

func (m *Mem) UpsertCheckIn(ctx context.Context, c models.EmotionalCheckIn) (models.EmotionalCheckIn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.checkIns[c.Date]; ok {
		existing.Mood = c.Mood
		m.checkIns[c.Date] = existing
		return existing, nil
	}

	m.checkInSeq++
	c.ID = m.checkInSeq
	m.checkIns[c.Date] = c
	return c, nil
}

func (m *Mem) JournalEntry(ctx context.Context, day date.Day) (models.JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.journal[day]
	if !ok {
		return models.JournalEntry{}, ErrNotFound
	}
	return e, nil
}

func (m *Mem) UpsertJournalEntry(ctx context.Context, e models.JournalEntry) (models.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.journal[e.Date]; ok {
		existing.Content = e.Content
		m.journal[e.Date] = existing
		return existing, nil
	}

	m.journalSeq++
	e.ID = m.journalSeq
	m.journal[e.Date] = e
	return e, nil
}

func (m *Mem) Trades(ctx context.Context) ([]models.TradeReview, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var trades []models.TradeReview
	for _, t := range m.trades {
		trades = append(trades, t)
	}
	sort.Slice(trades, func(i, j int) bool { return trades[i].ID < trades[j].ID })
	return trades, nil
}

func (m *Mem) Trade(ctx context.Context, id int64) (models.TradeReview, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.trades[id]
	if !ok {
		return models.TradeReview{}, ErrNotFound
	}
	return t, nil
}

func (m *Mem) CreateTrade(ctx context.Context, t models.TradeReview) (models.TradeReview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tradeSeq++
	t.ID = m.tradeSeq
	m.trades[t.ID] = t
	return t, nil
}

func (m *Mem) UpdateTrade(ctx context.Context, id int64, upd models.TradeUpdate) (models.TradeReview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.trades[id]
	if !ok {
		return models.TradeReview{}, ErrNotFound
	}
	applyTradeUpdate(&t, upd)
	m.trades[id] = t
	return t, nil
}

// DeleteTrade removes the trade review for good; trade reviews are the one
// entity without soft deletion.
func (m *Mem) DeleteTrade(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.trades[id]; !ok {
		return ErrNotFound
	}
	delete(m.trades, id)
	return nil
}

func (m *Mem) ActiveGoals(ctx context.Context) ([]models.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var goals []models.Goal
	for _, g := range m.goals {
		if g.IsActive {
			goals = append(goals, g)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].ID < goals[j].ID })
	return goals, nil
}

func (m *Mem) CreateGoal(ctx context.Context, g models.Goal) (models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.goalSeq++
	g.ID = m.goalSeq
	g.IsActive = true
	m.goals[g.ID] = g
	return g, nil
}

func (m *Mem) UpdateGoal(ctx context.Context, id int64, upd models.GoalUpdate) (models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.goals[id]
	if !ok {
		return models.Goal{}, ErrNotFound
	}
	applyGoalUpdate(&g, upd)
	m.goals[id] = g
	return g, nil
}

func (m *Mem) DeleteGoal(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.goals[id]
	if !ok {
		return ErrNotFound
	}
	g.IsActive = false
	m.goals[id] = g
	return nil
}

func (m *Mem) RiskMetrics(ctx context.Context, day date.Day) (models.RiskMetrics, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.risk[day]
	if !ok {
		return models.RiskMetrics{}, ErrNotFound
	}
	return r, nil
}

func (m *Mem) UpsertRiskMetrics(ctx context.Context, r models.RiskMetrics) (models.RiskMetrics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.risk[r.Date]; ok {
		r.ID = existing.ID
		m.risk[r.Date] = r
		return r, nil
	}

	m.riskSeq++
	r.ID = m.riskSeq
	m.risk[r.Date] = r
	return r, nil
}
