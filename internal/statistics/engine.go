// Package statistics aggregates closed trades into a performance
// snapshot: win rates, expectancy, profit factor, streaks, drawdown,
// and time-based extremes.
package statistics

import (
	"math"
	"sort"

	"trade-journal/internal/models"
	"trade-journal/internal/money"
)

// StreakType classifies the current run of trade outcomes.
type StreakType string

const (
	StreakWin  StreakType = "WIN"
	StreakLoss StreakType = "LOSS"
	StreakNone StreakType = "NONE"
)

// Sharpe baseline return, in the same units as per-trade return
// percentage.
const sharpeRiskFreeRate = 0.02

// Days per month used for trading frequency.
const daysPerMonth = 30

// PerformanceStatistics is an immutable snapshot computed from a trade
// collection. All monetary fields are exact to 2 decimals.
type PerformanceStatistics struct {
	TotalTrades     int
	WinningTrades   int
	LosingTrades    int
	BreakevenTrades int

	WinRate  float64
	LossRate float64

	TotalPnL      float64
	AverageProfit float64
	AverageLoss   float64
	AverageTrade  float64
	Expectancy    float64
	ProfitFactor  float64

	MaxWin  float64
	MaxLoss float64

	MaxConsecutiveWins   int
	MaxConsecutiveLosses int
	CurrentStreak        int
	CurrentStreakType    StreakType

	MaxDrawdown    float64
	RecoveryFactor float64

	AverageRisk        float64
	RiskAdjustedReturn float64
	SharpeRatio        float64

	AverageHoldTimeHours float64
	TradingFrequency     float64

	BestMonth  string
	WorstMonth string
}

// Compute aggregates a trade collection into a statistics snapshot.
// Only CLOSED trades with a realized P/L participate; everything else
// is silently excluded. An empty filtered set yields the zero snapshot.
func Compute(trades []models.Trade) PerformanceStatistics {
	closed := filterClosed(trades)
	if len(closed) == 0 {
		return PerformanceStatistics{
			CurrentStreakType: StreakNone,
			BestMonth:         "N/A",
			WorstMonth:        "N/A",
		}
	}

	stats := PerformanceStatistics{TotalTrades: len(closed)}
	total := float64(len(closed))

	var winning, losing, all, risks []float64
	for _, t := range closed {
		pnl := *t.RealizedPnL
		all = append(all, pnl)
		risks = append(risks, t.RiskAmount)
		switch {
		case pnl > 0:
			winning = append(winning, pnl)
		case pnl < 0:
			losing = append(losing, pnl)
		default:
			stats.BreakevenTrades++
		}
	}
	stats.WinningTrades = len(winning)
	stats.LosingTrades = len(losing)

	stats.WinRate = float64(stats.WinningTrades) / total * 100
	stats.LossRate = float64(stats.LosingTrades) / total * 100

	stats.TotalPnL = money.RoundCurrency(money.Sum(all...))
	stats.AverageProfit = money.Mean(winning)
	stats.AverageLoss = math.Abs(money.Mean(losing))
	stats.AverageTrade = money.Div(stats.TotalPnL, total)
	stats.Expectancy = money.Sub(
		money.Mul(stats.WinRate/100, stats.AverageProfit),
		money.Mul(stats.LossRate/100, stats.AverageLoss),
	)

	grossProfit := money.Sum(winning...)
	grossLoss := math.Abs(money.Sum(losing...))
	switch {
	case grossLoss == 0 && grossProfit > 0:
		stats.ProfitFactor = math.Inf(1)
	case grossLoss == 0:
		stats.ProfitFactor = 0
	default:
		stats.ProfitFactor = money.Div(grossProfit, grossLoss)
	}

	for _, pnl := range winning {
		if pnl > stats.MaxWin {
			stats.MaxWin = pnl
		}
	}
	for _, pnl := range losing {
		if pnl < stats.MaxLoss {
			stats.MaxLoss = pnl
		}
	}

	chronological := sortByEntryDate(closed, true)
	stats.MaxConsecutiveWins, stats.MaxConsecutiveLosses = longestStreaks(chronological)
	stats.CurrentStreak, stats.CurrentStreakType = currentStreak(sortByEntryDate(closed, false))
	stats.MaxDrawdown = maxDrawdown(chronological)
	if stats.MaxDrawdown != 0 {
		stats.RecoveryFactor = money.Div(stats.TotalPnL, stats.MaxDrawdown)
	}

	stats.AverageRisk = money.Mean(risks)
	if stats.AverageRisk != 0 {
		stats.RiskAdjustedReturn = money.Div(stats.TotalPnL, stats.AverageRisk)
	}
	stats.SharpeRatio = sharpeRatio(closed)

	stats.AverageHoldTimeHours = averageHoldTime(closed)
	stats.TradingFrequency = tradingFrequency(chronological)
	stats.BestMonth, stats.WorstMonth = monthExtremes(closed)

	return stats
}

func filterClosed(trades []models.Trade) []models.Trade {
	var closed []models.Trade
	for _, t := range trades {
		if t.Status == models.TradeClosed && t.RealizedPnL != nil {
			closed = append(closed, t)
		}
	}
	return closed
}

func sortByEntryDate(trades []models.Trade, ascending bool) []models.Trade {
	sorted := make([]models.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return sorted[i].EntryDate.Before(sorted[j].EntryDate)
		}
		return sorted[i].EntryDate.After(sorted[j].EntryDate)
	})
	return sorted
}

// longestStreaks walks trades chronologically once, tracking the
// longest run of wins and of losses independently. Breakeven trades
// break both runs.
func longestStreaks(chronological []models.Trade) (maxWins, maxLosses int) {
	var wins, losses int
	for _, t := range chronological {
		pnl := *t.RealizedPnL
		switch {
		case pnl > 0:
			wins++
			losses = 0
		case pnl < 0:
			losses++
			wins = 0
		default:
			wins, losses = 0, 0
		}
		if wins > maxWins {
			maxWins = wins
		}
		if losses > maxLosses {
			maxLosses = losses
		}
	}
	return maxWins, maxLosses
}

// currentStreak counts backward from the most recent trade while the
// outcome stays constant. A breakeven latest trade means no streak.
func currentStreak(descending []models.Trade) (int, StreakType) {
	if len(descending) == 0 {
		return 0, StreakNone
	}
	latest := *descending[0].RealizedPnL
	if latest == 0 {
		return 0, StreakNone
	}
	streakType := StreakWin
	if latest < 0 {
		streakType = StreakLoss
	}
	count := 0
	for _, t := range descending {
		pnl := *t.RealizedPnL
		if (streakType == StreakWin && pnl > 0) || (streakType == StreakLoss && pnl < 0) {
			count++
			continue
		}
		break
	}
	return count, streakType
}

// maxDrawdown tracks the running P/L peak and the largest decline from
// it. The result is always >= 0.
func maxDrawdown(chronological []models.Trade) float64 {
	var running, peak, maxDD float64
	for _, t := range chronological {
		running = money.Add(running, *t.RealizedPnL)
		if running > peak {
			peak = running
		}
		if dd := money.Sub(peak, running); dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// sharpeRatio is the simplified per-trade Sharpe: sample mean and
// sample standard deviation (n-1 divisor) of return percentages.
func sharpeRatio(closed []models.Trade) float64 {
	if len(closed) < 2 {
		return 0
	}
	returns := make([]float64, len(closed))
	for i, t := range closed {
		returns[i] = t.ReturnPercent()
	}
	mean := money.Mean(returns)
	var sumSq float64
	for _, r := range returns {
		d := r - mean
		sumSq += d * d
	}
	stddev := math.Sqrt(sumSq / float64(len(returns)-1))
	if stddev == 0 {
		return 0
	}
	return (mean - sharpeRiskFreeRate) / stddev
}

func averageHoldTime(closed []models.Trade) float64 {
	var hours []float64
	for _, t := range closed {
		if d, ok := t.HoldDuration(); ok {
			hours = append(hours, d.Hours())
		}
	}
	return money.Mean(hours)
}

// tradingFrequency is trades per month over the span between the first
// and last entry dates, or 0 when the span is zero.
func tradingFrequency(chronological []models.Trade) float64 {
	if len(chronological) < 2 {
		return 0
	}
	first := chronological[0].EntryDate
	last := chronological[len(chronological)-1].EntryDate
	months := last.Sub(first).Hours() / (24 * daysPerMonth)
	if months == 0 {
		return 0
	}
	return float64(len(chronological)) / months
}

// monthExtremes buckets trades by entry month and reports the best and
// worst "YYYY-MM" bucket keys.
func monthExtremes(closed []models.Trade) (best, worst string) {
	buckets := make(map[string]float64)
	for _, t := range closed {
		key := t.EntryDate.Format("2006-01")
		buckets[key] = money.Add(buckets[key], *t.RealizedPnL)
	}
	if len(buckets) == 0 {
		return "N/A", "N/A"
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best, worst = keys[0], keys[0]
	for _, k := range keys[1:] {
		if buckets[k] > buckets[best] {
			best = k
		}
		if buckets[k] < buckets[worst] {
			worst = k
		}
	}
	return best, worst
}
