package stats

import (
	"strconv"
	"strings"

	"github.com/waliags/tradermindset/internal/date"
	"github.com/waliags/tradermindset/internal/models"
)

// profitFactorCap stands in for an undefined profit factor when a range has
// winning trades but no losing ones.
const profitFactorCap = 999

// TradingStats aggregates the trades whose date lies in [start, end]
// inclusive. Trades whose P&L does not parse as a number still count toward
// totalTrades and the emotional-state distribution but are left out of the
// P&L-based metrics.
func TradingStats(trades []models.TradeReview, start, end date.Day) models.TradingStats {
	stats := models.TradingStats{
		EmotionalStates: make(map[string]int),
	}

	var (
		wins, losses    int
		winSum, lossSum float64
		totalPnL        float64
		parseable       int
	)

	for _, t := range trades {
		if !t.Date.In(start, end) {
			continue
		}
		stats.TotalTrades++
		if t.EmotionalState != "" {
			stats.EmotionalStates[t.EmotionalState]++
		}

		pnl, err := strconv.ParseFloat(strings.TrimSpace(t.PnL), 64)
		if err != nil {
			continue
		}
		parseable++
		totalPnL += pnl
		switch {
		case pnl > 0:
			wins++
			winSum += pnl
		case pnl < 0:
			losses++
			lossSum += -pnl
		}
	}

	if parseable > 0 {
		stats.WinRate = roundPct(float64(wins) / float64(parseable) * 100)
		stats.TotalPnL = round2(totalPnL)
	}
	if wins > 0 {
		stats.AvgWin = round2(winSum / float64(wins))
	}
	if losses > 0 {
		stats.AvgLoss = round2(lossSum / float64(losses))
	}

	switch {
	case lossSum > 0:
		stats.ProfitFactor = round2(winSum / lossSum)
	case winSum > 0:
		stats.ProfitFactor = profitFactorCap
	}

	return stats
}
