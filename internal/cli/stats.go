package cli

import (
	"math"
	"time"

	"github.com/spf13/cobra"

	"trade-journal/internal/statistics"
	"trade-journal/internal/store"
)

func newStatsCmd(app *App) *cobra.Command {
	var (
		symbol string
		since  string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show performance statistics across closed trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			filter := store.TradeFilter{Symbol: symbol}
			if since != "" {
				start, err := time.Parse("2006-01-02", since)
				if err != nil {
					return err
				}
				filter.StartDate = start
			}

			trades, err := app.Store.GetTrades(cmd.Context(), filter)
			if err != nil {
				return err
			}

			stats := statistics.Compute(trades)
			significance := statistics.AssessSignificance(stats.TotalTrades)

			if output.IsJSON() {
				// encoding/json rejects Inf, which the profit factor
				// reaches when there are wins and no losses.
				if math.IsInf(stats.ProfitFactor, 1) {
					stats.ProfitFactor = math.MaxFloat64
				}
				return output.JSON(map[string]interface{}{
					"statistics":   stats,
					"significance": significance,
				})
			}

			output.Bold("Performance (%d closed trades)", stats.TotalTrades)
			if stats.TotalTrades == 0 {
				output.Info("Close some trades first.")
				return nil
			}

			table := NewTable(output, "METRIC", "VALUE")
			table.AddRow("Total P/L", output.FormatPnL(stats.TotalPnL))
			table.AddRow("Win rate", FormatPercent(stats.WinRate))
			table.AddRow("Wins / losses / breakeven",
				FormatRatio(float64(stats.WinningTrades))+" / "+
					FormatRatio(float64(stats.LosingTrades))+" / "+
					FormatRatio(float64(stats.BreakevenTrades)))
			table.AddRow("Average profit", FormatCurrency(stats.AverageProfit))
			table.AddRow("Average loss", FormatCurrency(stats.AverageLoss))
			table.AddRow("Expectancy", FormatCurrency(stats.Expectancy))
			table.AddRow("Profit factor", FormatRatio(stats.ProfitFactor))
			table.AddRow("Max win", FormatCurrency(stats.MaxWin))
			table.AddRow("Max loss", FormatCurrency(stats.MaxLoss))
			table.AddRow("Max drawdown", FormatCurrency(stats.MaxDrawdown))
			table.AddRow("Recovery factor", FormatRatio(stats.RecoveryFactor))
			table.AddRow("Sharpe ratio", FormatRatio(stats.SharpeRatio))
			table.AddRow("Risk-adjusted return", FormatRatio(stats.RiskAdjustedReturn))
			table.AddRow("Longest win streak", FormatRatio(float64(stats.MaxConsecutiveWins)))
			table.AddRow("Longest loss streak", FormatRatio(float64(stats.MaxConsecutiveLosses)))
			if stats.CurrentStreakType != statistics.StreakNone {
				table.AddRow("Current streak",
					FormatRatio(float64(stats.CurrentStreak))+" "+string(stats.CurrentStreakType))
			}
			table.AddRow("Avg hold time", FormatRatio(stats.AverageHoldTimeHours)+"h")
			table.AddRow("Trades per month", FormatRatio(stats.TradingFrequency))
			table.AddRow("Best month", stats.BestMonth)
			table.AddRow("Worst month", stats.WorstMonth)
			table.Render()

			output.Println()
			if significance.IsSignificant {
				output.Success("Sample is statistically meaningful (confidence %s, margin ±%s)",
					FormatPercent(significance.ConfidenceLevel), FormatPercent(significance.MarginOfError*100))
			} else {
				output.Warning("Sample too small for reliable conclusions (confidence %s)",
					FormatPercent(significance.ConfidenceLevel))
			}
			output.Dim("  %s", significance.Recommendation)
			return nil
		},
	}

	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "Restrict to one symbol")
	cmd.Flags().StringVar(&since, "since", "", "Only trades entered on or after this date (YYYY-MM-DD)")

	return cmd
}
