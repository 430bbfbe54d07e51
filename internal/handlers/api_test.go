package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waliags/tradermindset/internal/handlers"
	"github.com/waliags/tradermindset/internal/middleware"
	"github.com/waliags/tradermindset/internal/monitoring"
	"github.com/waliags/tradermindset/internal/stats"
	"github.com/waliags/tradermindset/internal/store"
)

// Prometheus collectors register globally, so the test binary shares one
// Metrics instance across every server it spins up.
var (
	metricsOnce sync.Once
	testMetrics *monitoring.Metrics
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	metricsOnce.Do(func() {
		testMetrics = monitoring.NewMetrics("tradermindset_test")
	})

	st := store.NewMem()
	log := zap.NewNop().Sugar()
	limiter := middleware.NewRateLimiter(1000, 1000)
	srv := httptest.NewServer(handlers.Router(st, stats.NewService(st), log, testMetrics, limiter))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeBody(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, v))
}

func message(t *testing.T, data []byte) string {
	t.Helper()
	var m map[string]string
	decodeBody(t, data, &m)
	return m["message"]
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestContentTypeEnforced(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/habits", strings.NewReader(`{"name":"X"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "text/plain")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestHabitsAPI(t *testing.T) {
	srv := newTestServer(t)

	t.Run("List returns the seeded defaults", func(t *testing.T) {
		resp, data := doJSON(t, srv, http.MethodGet, "/api/habits", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var habits []map[string]interface{}
		decodeBody(t, data, &habits)
		require.Len(t, habits, 4)
		assert.Equal(t, "Avoid Overtrading", habits[0]["name"])
	})

	t.Run("Create defaults the category", func(t *testing.T) {
		resp, data := doJSON(t, srv, http.MethodPost, "/api/habits", map[string]string{"name": "Journal Every Trade"})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var habit map[string]interface{}
		decodeBody(t, data, &habit)
		assert.Equal(t, "Journal Every Trade", habit["name"])
		assert.Equal(t, "custom", habit["category"])
		assert.Equal(t, true, habit["isActive"])
	})

	t.Run("Create without a name is rejected", func(t *testing.T) {
		resp, data := doJSON(t, srv, http.MethodPost, "/api/habits", map[string]string{"description": "nameless"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid habit data", message(t, data))
	})

	t.Run("Malformed body is rejected", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/habits", strings.NewReader("{not json"))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Update unknown id answers 404", func(t *testing.T) {
		resp, data := doJSON(t, srv, http.MethodPut, "/api/habits/9999", map[string]string{"name": "Renamed"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Habit not found", message(t, data))
	})

	t.Run("Delete removes the habit from the listing", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodDelete, "/api/habits/1", nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		_, data := doJSON(t, srv, http.MethodGet, "/api/habits", nil)
		var habits []map[string]interface{}
		decodeBody(t, data, &habits)
		for _, h := range habits {
			assert.NotEqual(t, float64(1), h["id"])
		}
	})

	t.Run("Delete unknown id answers 404", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodDelete, "/api/habits/9999", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCompletionAPI(t *testing.T) {
	srv := newTestServer(t)

	body := map[string]interface{}{"habitId": 1, "date": "2024-06-15", "completed": true}

	resp, data := doJSON(t, srv, http.MethodPost, "/api/habit-completions", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var first map[string]interface{}
	decodeBody(t, data, &first)

	t.Run("Repeating the upsert keeps the id", func(t *testing.T) {
		resp, data := doJSON(t, srv, http.MethodPost, "/api/habit-completions", body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var second map[string]interface{}
		decodeBody(t, data, &second)
		assert.Equal(t, first["id"], second["id"])
	})

	t.Run("Missing habit id is rejected", func(t *testing.T) {
		resp, data := doJSON(t, srv, http.MethodPost, "/api/habit-completions", map[string]interface{}{"date": "2024-06-15"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid completion data", message(t, data))
	})
}

func TestCheckInAPI(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Missing day answers null", func(t *testing.T) {
		resp, data := doJSON(t, srv, http.MethodGet, "/api/emotional-checkin/2024-06-15", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "null", strings.TrimSpace(string(data)))
	})

	t.Run("Upsert then fetch round-trips the mood", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodPost, "/api/emotional-checkin", map[string]string{"date": "2024-06-15", "mood": "good"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, data := doJSON(t, srv, http.MethodGet, "/api/emotional-checkin/2024-06-15", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var checkIn map[string]interface{}
		decodeBody(t, data, &checkIn)
		assert.Equal(t, "good", checkIn["mood"])
	})

	t.Run("Unknown mood is rejected", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodPost, "/api/emotional-checkin", map[string]string{"date": "2024-06-15", "mood": "euphoric"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Malformed date in the path is rejected", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodGet, "/api/emotional-checkin/june-15", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestJournalAPI(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Missing entry answers null", func(t *testing.T) {
		resp, data := doJSON(t, srv, http.MethodGet, "/api/journal/2024-06-15", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "null", strings.TrimSpace(string(data)))
	})

	t.Run("Second upsert replaces the content", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodPost, "/api/journal", map[string]string{"date": "2024-06-15", "content": "draft"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = doJSON(t, srv, http.MethodPost, "/api/journal", map[string]string{"date": "2024-06-15", "content": "chased a breakout, cut it fast"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		_, data := doJSON(t, srv, http.MethodGet, "/api/journal/2024-06-15", nil)
		var entry map[string]interface{}
		decodeBody(t, data, &entry)
		assert.Equal(t, "chased a breakout, cut it fast", entry["content"])
	})

	t.Run("Empty content is rejected", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodPost, "/api/journal", map[string]string{"date": "2024-06-15"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestTradesAPI(t *testing.T) {
	srv := newTestServer(t)

	validTrade := func(day string) map[string]interface{} {
		return map[string]interface{}{
			"date":       day,
			"symbol":     "ES",
			"side":       "long",
			"entryPrice": "5000.25",
			"quantity":   "1",
			"pnl":        "150",
		}
	}

	t.Run("Create answers 201", func(t *testing.T) {
		resp, data := doJSON(t, srv, http.MethodPost, "/api/trades", validTrade("2024-06-10"))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var trade map[string]interface{}
		decodeBody(t, data, &trade)
		assert.Equal(t, "ES", trade["symbol"])
	})

	t.Run("Unknown side is rejected", func(t *testing.T) {
		bad := validTrade("2024-06-10")
		bad["side"] = "sideways"
		resp, data := doJSON(t, srv, http.MethodPost, "/api/trades", bad)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid trade data", message(t, data))
	})

	t.Run("Non-numeric entry price is rejected", func(t *testing.T) {
		bad := validTrade("2024-06-10")
		bad["entryPrice"] = "about five thousand"
		resp, _ := doJSON(t, srv, http.MethodPost, "/api/trades", bad)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("List filters by date range", func(t *testing.T) {
		doJSON(t, srv, http.MethodPost, "/api/trades", validTrade("2024-06-20"))

		_, data := doJSON(t, srv, http.MethodGet, "/api/trades?startDate=2024-06-15&endDate=2024-06-30", nil)
		var trades []map[string]interface{}
		decodeBody(t, data, &trades)
		require.Len(t, trades, 1)
		assert.Equal(t, "2024-06-20", trades[0]["date"])
	})

	t.Run("Delete is permanent", func(t *testing.T) {
		_, data := doJSON(t, srv, http.MethodPost, "/api/trades", validTrade("2024-06-25"))
		var trade map[string]interface{}
		decodeBody(t, data, &trade)
		id := int64(trade["id"].(float64))

		resp, _ := doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/trades/%d", id), nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, data = doJSON(t, srv, http.MethodPut, fmt.Sprintf("/api/trades/%d", id), map[string]string{"pnl": "0"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Trade not found", message(t, data))
	})
}

func TestGoalsAPI(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Create answers 201", func(t *testing.T) {
		resp, data := doJSON(t, srv, http.MethodPost, "/api/goals", map[string]interface{}{
			"title":       "20 green days",
			"targetValue": 20,
			"unit":        "days",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var goal map[string]interface{}
		decodeBody(t, data, &goal)
		assert.Equal(t, "custom", goal["category"])
	})

	t.Run("Non-positive target is rejected", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodPost, "/api/goals", map[string]interface{}{
			"title":       "No target",
			"targetValue": 0,
			"unit":        "days",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Delete retires the goal", func(t *testing.T) {
		_, data := doJSON(t, srv, http.MethodPost, "/api/goals", map[string]interface{}{
			"title":       "Short-lived",
			"targetValue": 5,
			"unit":        "trades",
		})
		var goal map[string]interface{}
		decodeBody(t, data, &goal)
		id := int64(goal["id"].(float64))

		resp, _ := doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/goals/%d", id), nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		_, data = doJSON(t, srv, http.MethodGet, "/api/goals", nil)
		var goals []map[string]interface{}
		decodeBody(t, data, &goals)
		for _, g := range goals {
			assert.NotEqual(t, float64(id), g["id"])
		}
	})
}

func TestRiskMetricsAPI(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Missing day answers null", func(t *testing.T) {
		resp, data := doJSON(t, srv, http.MethodGet, "/api/risk-metrics/2024-06-15", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "null", strings.TrimSpace(string(data)))
	})

	t.Run("Upsert then fetch", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodPost, "/api/risk-metrics", map[string]string{
			"date":           "2024-06-15",
			"accountBalance": "25000",
			"maxDrawdown":    "3.5",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		_, data := doJSON(t, srv, http.MethodGet, "/api/risk-metrics/2024-06-15", nil)
		var metrics map[string]interface{}
		decodeBody(t, data, &metrics)
		assert.Equal(t, "25000", metrics["accountBalance"])
	})

	t.Run("Non-numeric balance is rejected", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodPost, "/api/risk-metrics", map[string]string{
			"date":           "2024-06-15",
			"accountBalance": "lots",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAnalyticsAPI(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Weekly progress requires both bounds", func(t *testing.T) {
		resp, data := doJSON(t, srv, http.MethodGet, "/api/weekly-progress?startDate=2024-06-01", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Start date and end date are required", message(t, data))
	})

	t.Run("Trading stats requires both bounds", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodGet, "/api/trading-stats", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Monthly stats rejects month 13", func(t *testing.T) {
		resp, data := doJSON(t, srv, http.MethodGet, "/api/monthly-stats/2024/13", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid year or month", message(t, data))
	})

	t.Run("Habits with stats reflects a completion", func(t *testing.T) {
		doJSON(t, srv, http.MethodPost, "/api/habit-completions", map[string]interface{}{
			"habitId": 2, "date": "2024-06-15", "completed": true,
		})

		_, data := doJSON(t, srv, http.MethodGet, "/api/habits-with-stats/2024-06-15", nil)
		var habits []map[string]interface{}
		decodeBody(t, data, &habits)
		require.Len(t, habits, 4)

		for _, h := range habits {
			if h["id"] == float64(2) {
				assert.Equal(t, true, h["completedToday"])
				assert.Equal(t, float64(1), h["currentStreak"])
			} else {
				assert.Equal(t, false, h["completedToday"])
			}
		}
	})

	t.Run("Trading stats aggregates over the range", func(t *testing.T) {
		mk := func(day, pnl string) map[string]interface{} {
			return map[string]interface{}{
				"date": day, "symbol": "ES", "side": "long",
				"entryPrice": "5000", "quantity": "1", "pnl": pnl,
			}
		}
		doJSON(t, srv, http.MethodPost, "/api/trades", mk("2024-06-10", "100"))
		doJSON(t, srv, http.MethodPost, "/api/trades", mk("2024-06-11", "-50"))

		_, data := doJSON(t, srv, http.MethodGet, "/api/trading-stats?startDate=2024-06-01&endDate=2024-06-30", nil)
		var ts map[string]interface{}
		decodeBody(t, data, &ts)
		assert.Equal(t, float64(2), ts["totalTrades"])
		assert.Equal(t, float64(50), ts["winRate"])
		assert.Equal(t, float64(50), ts["totalPnL"])
		assert.Equal(t, float64(2), ts["profitFactor"])
	})

	t.Run("Weekly progress over an empty day", func(t *testing.T) {
		_, data := doJSON(t, srv, http.MethodGet, "/api/weekly-progress?startDate=2024-07-01&endDate=2024-07-01", nil)
		var days []map[string]interface{}
		decodeBody(t, data, &days)
		require.Len(t, days, 1)
		assert.Equal(t, "2024-07-01", days[0]["date"])
		assert.Equal(t, float64(0), days[0]["completionRate"])
	})
}
