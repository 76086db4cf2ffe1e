package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"trade-journal/internal/alignment"
	"trade-journal/internal/errors"
	"trade-journal/internal/grading"
	"trade-journal/internal/models"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	var (
		timeframe  string
		indicator  string
		signal     string
		divergence string
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "analyze <trade-id>",
		Short: "Record a method analysis for one timeframe of a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			trade, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				return err
			}

			analysis := &models.MethodAnalysis{
				TradeID:    trade.ID,
				Timeframe:  models.Timeframe(strings.ToUpper(timeframe)),
				Indicator:  models.Indicator(strings.ToUpper(indicator)),
				Signal:     models.Signal(strings.ToUpper(signal)),
				Divergence: models.Divergence(strings.ToUpper(divergence)),
				Notes:      notes,
			}
			if !analysis.Timeframe.IsValid() {
				return errors.NewValidationError("timeframe", timeframe, "must be DAILY, WEEKLY or MONTHLY")
			}
			if analysis.Indicator == "" {
				return errors.NewValidationError("indicator", indicator, "is required")
			}
			if analysis.Signal == "" {
				return errors.NewValidationError("signal", signal, "is required")
			}

			if err := app.Store.SaveMethodAnalysis(ctx, analysis); err != nil {
				return err
			}

			var grade *grading.TradeGrade
			if trade.Status == models.TradeClosed {
				grade, err = gradeTrade(ctx, app, trade, grading.ReasonAnalysisUpdate)
				if err != nil {
					return err
				}
			}

			if output.IsJSON() {
				result := map[string]interface{}{"analysis": analysis}
				if grade != nil {
					result["grade"] = grade
				}
				return output.JSON(result)
			}

			output.Success("Analysis recorded for %s on %s", trade.Symbol, analysis.Timeframe)
			if grade != nil {
				output.Printf("  Grade updated: %s (%s)\n", grade.Overall, FormatScore(grade.Score))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&timeframe, "timeframe", "t", "", "DAILY, WEEKLY or MONTHLY (required)")
	cmd.Flags().StringVarP(&indicator, "indicator", "i", "", "Indicator, e.g. MACD or RSI (required)")
	cmd.Flags().StringVar(&signal, "signal", "", "Signal, e.g. BUY_SIGNAL (required)")
	cmd.Flags().StringVar(&divergence, "divergence", "NONE", "BULLISH, BEARISH or NONE")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Analysis notes")
	cmd.MarkFlagRequired("timeframe")
	cmd.MarkFlagRequired("indicator")
	cmd.MarkFlagRequired("signal")

	return cmd
}

func newAlignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "align <trade-id>",
		Short: "Score multi-timeframe alignment for a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			trade, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				return err
			}

			analyses, err := app.Store.GetMethodAnalyses(ctx, trade.ID)
			if err != nil {
				return err
			}

			result, err := alignment.Analyze(trade.Direction, analyses)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(result)
			}

			output.Bold("Alignment for %s %s", trade.Direction, trade.Symbol)
			output.Printf("  Overall score: %s (%s)\n",
				FormatRatio(result.OverallScore), result.Level)

			if len(result.TimeframeBreakdown) > 0 {
				table := NewTable(output, "TIMEFRAME", "INDICATOR", "SIGNAL", "SCORE", "VERDICT")
				for _, tf := range result.TimeframeBreakdown {
					table.AddRow(
						string(tf.Timeframe),
						string(tf.Indicator),
						string(tf.Signal),
						FormatRatio(tf.Score),
						string(tf.Category),
					)
				}
				table.Render()
			}

			for _, c := range result.Confirmations {
				output.Success("  + %s", c)
			}
			for _, w := range result.Warnings {
				output.Warning("  ! %s", w)
			}
			return nil
		},
	}
}
