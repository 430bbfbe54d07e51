package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-redis/redis/v8"

	"github.com/waliags/tradermindset/internal/date"
	"github.com/waliags/tradermindset/internal/models"
)

// Redis keys, one hash per entity kind plus an id-sequence counter each.
const (
	keyHabits      = "tradermindset:habits"
	keyCompletions = "tradermindset:completions"
	keyCheckIns    = "tradermindset:checkins"
	keyJournal     = "tradermindset:journal"
	keyTrades      = "tradermindset:trades"
	keyGoals       = "tradermindset:goals"
	keyRisk        = "tradermindset:risk"
)

// Redis is a Store backed by a Redis instance, for deployments that want
// records to outlive the process. Records are JSON values in per-kind
// hashes; ids come from INCR counters so they stay monotonic. Requests are
// handled one at a time, so read-modify-write upserts need no transaction.
type Redis struct {
	client *redis.Client
}

// NewRedis returns a Redis-backed store and seeds the default discipline
// habits when the habit hash is empty.
func NewRedis(ctx context.Context, client *redis.Client) (*Redis, error) {
	r := &Redis{client: client}

	n, err := client.HLen(ctx, keyHabits).Result()
	if err != nil {
		return nil, fmt.Errorf("probe habits: %w", err)
	}
	if n == 0 {
		if err := r.seedDefaultHabits(ctx); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Redis) seedDefaultHabits(ctx context.Context) error {
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
		if _, err := r.CreateHabit(ctx, h); err != nil {
			return fmt.Errorf("seed habit %q: %w", h.Name, err)
		}
	}
	return nil
}

// Ping reports whether the Redis backend is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) nextID(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, key+":seq").Result()
}

func (r *Redis) hashGet(ctx context.Context, key, field string, target interface{}) error {
	data, err := r.client.HGet(ctx, key, field).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

func (r *Redis) hashSet(ctx context.Context, key, field string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.HSet(ctx, key, field, data).Err()
}

func completionField(habitID int64, day date.Day) string {
	return fmt.Sprintf("%d|%s", habitID, day)
}

func (r *Redis) ActiveHabits(ctx context.Context) ([]models.Habit, error) {
	values, err := r.client.HGetAll(ctx, keyHabits).Result()
	if err != nil {
		return nil, err
	}

	var habits []models.Habit
	for _, raw := range values {
		var h models.Habit
		if err := json.Unmarshal([]byte(raw), &h); err != nil {
			return nil, fmt.Errorf("decode habit: %w", err)
		}
		if h.IsActive {
			habits = append(habits, h)
		}
	}
	sort.Slice(habits, func(i, j int) bool { return habits[i].ID < habits[j].ID })
	return habits, nil
}

func (r *Redis) Habit(ctx context.Context, id int64) (models.Habit, error) {
	var h models.Habit
	if err := r.hashGet(ctx, keyHabits, fmt.Sprint(id), &h); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func (r *Redis) CreateHabit(ctx context.Context, h models.Habit) (models.Habit, error) {
	id, err := r.nextID(ctx, keyHabits)
	if err != nil {
		return models.Habit{}, err
	}
	h.ID = id
	h.IsActive = true
	if err := r.hashSet(ctx, keyHabits, fmt.Sprint(id), h); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func (r *Redis) UpdateHabit(ctx context.Context, id int64, upd models.HabitUpdate) (models.Habit, error) {
	h, err := r.Habit(ctx, id)
	if err != nil {
		return models.Habit{}, err
	}
	applyHabitUpdate(&h, upd)
	if err := r.hashSet(ctx, keyHabits, fmt.Sprint(id), h); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func (r *Redis) DeleteHabit(ctx context.Context, id int64) error {
	h, err := r.Habit(ctx, id)
	if err != nil {
		return err
	}
	h.IsActive = false
	return r.hashSet(ctx, keyHabits, fmt.Sprint(id), h)
}

func (r *Redis) HabitCompletions(ctx context.Context, habitID int64) ([]models.HabitCompletion, error) {
	values, err := r.client.HGetAll(ctx, keyCompletions).Result()
	if err != nil {
		return nil, err
	}

	var out []models.HabitCompletion
	for _, raw := range values {
		var c models.HabitCompletion
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("decode completion: %w", err)
		}
		if c.HabitID == habitID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *Redis) HabitCompletion(ctx context.Context, habitID int64, day date.Day) (models.HabitCompletion, error) {
	var c models.HabitCompletion
	if err := r.hashGet(ctx, keyCompletions, completionField(habitID, day), &c); err != nil {
		return models.HabitCompletion{}, err
	}
	return c, nil
}

func (r *Redis) UpsertHabitCompletion(ctx context.Context, c models.HabitCompletion) (models.HabitCompletion, error) {
	field := completionField(c.HabitID, c.Date)

	existing, err := r.HabitCompletion(ctx, c.HabitID, c.Date)
	switch err {
	case nil:
		existing.Completed = c.Completed
		c = existing
	case ErrNotFound:
		id, err := r.nextID(ctx, keyCompletions)
		if err != nil {
			return models.HabitCompletion{}, err
		}
		c.ID = id
	default:
		return models.HabitCompletion{}, err
	}

	if err := r.hashSet(ctx, keyCompletions, field, c); err != nil {
		return models.HabitCompletion{}, err
	}
	return c, nil
}

func (r *Redis) CheckIn(ctx context.Context, day date.Day) (models.EmotionalCheckIn, error) {
	var c models.EmotionalCheckIn
	if err := r.hashGet(ctx, keyCheckIns, day.String(), &c); err != nil {
		return models.EmotionalCheckIn{}, err
	}
	return c, nil
}

func (r *Redis) UpsertCheckIn(ctx context.Context, c models.EmotionalCheckIn) (models.EmotionalCheckIn, error) {
	existing, err := r.CheckIn(ctx, c.Date)
	switch err {
	case nil:
		existing.Mood = c.Mood
		c = existing
	case ErrNotFound:
		id, err := r.nextID(ctx, keyCheckIns)
		if err != nil {
			return models.EmotionalCheckIn{}, err
		}
		c.ID = id
	default:
		return models.EmotionalCheckIn{}, err
	}

	if err := r.hashSet(ctx, keyCheckIns, c.Date.String(), c); err != nil {
		return models.EmotionalCheckIn{}, err
	}
	return c, nil
}

func (r *Redis) JournalEntry(ctx context.Context, day date.Day) (models.JournalEntry, error) {
	var e models.JournalEntry
	if err := r.hashGet(ctx, keyJournal, day.String(), &e); err != nil {
		return models.JournalEntry{}, err
	}
	return e, nil
}

func (r *Redis) UpsertJournalEntry(ctx context.Context, e models.JournalEntry) (models.JournalEntry, error) {
	existing, err := r.JournalEntry(ctx, e.Date)
	switch err {
	case nil:
		existing.Content = e.Content
		e = existing
	case ErrNotFound:
		id, err := r.nextID(ctx, keyJournal)
		if err != nil {
			return models.JournalEntry{}, err
		}
		e.ID = id
	default:
		return models.JournalEntry{}, err
	}

	if err := r.hashSet(ctx, keyJournal, e.Date.String(), e); err != nil {
		return models.JournalEntry{}, err
	}
	return e, nil
}

func (r *Redis) Trades(ctx context.Context) ([]models.TradeReview, error) {
	values, err := r.client.HGetAll(ctx, keyTrades).Result()
	if err != nil {
		return nil, err
	}

	var trades []models.TradeReview
	for _, raw := range values {
		var t models.TradeReview
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			return nil, fmt.Errorf("decode trade: %w", err)
		}
		trades = append(trades, t)
	}
	sort.Slice(trades, func(i, j int) bool { return trades[i].ID < trades[j].ID })
	return trades, nil
}

func (r *Redis) Trade(ctx context.Context, id int64) (models.TradeReview, error) {
	var t models.TradeReview
	if err := r.hashGet(ctx, keyTrades, fmt.Sprint(id), &t); err != nil {
		return models.TradeReview{}, err
	}
	return t, nil
}

func (r *Redis) CreateTrade(ctx context.Context, t models.TradeReview) (models.TradeReview, error) {
	id, err := r.nextID(ctx, keyTrades)
	if err != nil {
		return models.TradeReview{}, err
	}
	t.ID = id
	if err := r.hashSet(ctx, keyTrades, fmt.Sprint(id), t); err != nil {
		return models.TradeReview{}, err
	}
	return t, nil
}

func (r *Redis) UpdateTrade(ctx context.Context, id int64, upd models.TradeUpdate) (models.TradeReview, error) {
	t, err := r.Trade(ctx, id)
	if err != nil {
		return models.TradeReview{}, err
	}
	applyTradeUpdate(&t, upd)
	if err := r.hashSet(ctx, keyTrades, fmt.Sprint(id), t); err != nil {
		return models.TradeReview{}, err
	}
	return t, nil
}

func (r *Redis) DeleteTrade(ctx context.Context, id int64) error {
	n, err := r.client.HDel(ctx, keyTrades, fmt.Sprint(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Redis) ActiveGoals(ctx context.Context) ([]models.Goal, error) {
	values, err := r.client.HGetAll(ctx, keyGoals).Result()
	if err != nil {
		return nil, err
	}

	var goals []models.Goal
	for _, raw := range values {
		var g models.Goal
		if err := json.Unmarshal([]byte(raw), &g); err != nil {
			return nil, fmt.Errorf("decode goal: %w", err)
		}
		if g.IsActive {
			goals = append(goals, g)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].ID < goals[j].ID })
	return goals, nil
}

func (r *Redis) goal(ctx context.Context, id int64) (models.Goal, error) {
	var g models.Goal
	if err := r.hashGet(ctx, keyGoals, fmt.Sprint(id), &g); err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

func (r *Redis) CreateGoal(ctx context.Context, g models.Goal) (models.Goal, error) {
	id, err := r.nextID(ctx, keyGoals)
	if err != nil {
		return models.Goal{}, err
	}
	g.ID = id
	g.IsActive = true
	if err := r.hashSet(ctx, keyGoals, fmt.Sprint(id), g); err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

func (r *Redis) UpdateGoal(ctx context.Context, id int64, upd models.GoalUpdate) (models.Goal, error) {
	g, err := r.goal(ctx, id)
	if err != nil {
		return models.Goal{}, err
	}
	applyGoalUpdate(&g, upd)
	if err := r.hashSet(ctx, keyGoals, fmt.Sprint(id), g); err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

func (r *Redis) DeleteGoal(ctx context.Context, id int64) error {
	g, err := r.goal(ctx, id)
	if err != nil {
		return err
	}
	g.IsActive = false
	return r.hashSet(ctx, keyGoals, fmt.Sprint(id), g)
}

func (r *Redis) RiskMetrics(ctx context.Context, day date.Day) (models.RiskMetrics, error) {
	var m models.RiskMetrics
	if err := r.hashGet(ctx, keyRisk, day.String(), &m); err != nil {
		return models.RiskMetrics{}, err
	}
	return m, nil
}

func (r *Redis) UpsertRiskMetrics(ctx context.Context, m models.RiskMetrics) (models.RiskMetrics, error) {
	existing, err := r.RiskMetrics(ctx, m.Date)
	switch err {
	case nil:
		m.ID = existing.ID
	case ErrNotFound:
		id, err := r.nextID(ctx, keyRisk)
		if err != nil {
			return models.RiskMetrics{}, err
		}
		m.ID = id
	default:
		return models.RiskMetrics{}, err
	}

	if err := r.hashSet(ctx, keyRisk, m.Date.String(), m); err != nil {
		return models.RiskMetrics{}, err
	}
	return m, nil
}
