package cli

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"trade-journal/internal/alignment"
	"trade-journal/internal/grading"
	"trade-journal/internal/logging"
	"trade-journal/internal/models"
	"trade-journal/internal/store"
)

// computeGrade assembles the grading input for a trade and computes
// the grade without persisting anything. Alignment is skipped when the
// trade has no recorded analyses.
func computeGrade(ctx context.Context, app *App, trade *models.Trade) (*grading.TradeGrade, error) {
	analyses, err := app.Store.GetMethodAnalyses(ctx, trade.ID)
	if err != nil {
		return nil, err
	}

	var alignResult *alignment.Analysis
	if len(analyses) > 0 {
		alignResult, err = alignment.Analyze(trade.Direction, analyses)
		if err != nil {
			return nil, err
		}
	}

	tags, err := app.Store.GetMindsetTags(ctx, trade.ID)
	if err != nil {
		return nil, err
	}

	grade := grading.Grade(grading.Input{
		Trade:          *trade,
		Alignment:      alignResult,
		AnalyzedFrames: len(analyses),
		MindsetTags:    tags,
		TotalEquity:    app.Account.Equity(),
	})
	return &grade, nil
}

// gradeTrade computes a grade, appends it to the grade history and
// logs it.
func gradeTrade(ctx context.Context, app *App, trade *models.Trade, reason grading.RecomputeReason) (*grading.TradeGrade, error) {
	grade, err := computeGrade(ctx, app, trade)
	if err != nil {
		return nil, err
	}

	entry := &grading.HistoryEntry{
		ID:         uuid.NewString(),
		TradeID:    trade.ID,
		Score:      grade.Score,
		Overall:    grade.Overall,
		Reason:     reason,
		ComputedAt: time.Now(),
	}
	if err := app.Store.SaveGradeHistory(ctx, entry); err != nil {
		return nil, err
	}

	logging.LogGrade(app.Logger, trade.ID, string(grade.Overall), grade.Score, string(reason))

	return grade, nil
}

func newGradeCmd(app *App) *cobra.Command {
	var (
		recalc  bool
		history bool
	)

	cmd := &cobra.Command{
		Use:   "grade <trade-id>",
		Short: "Grade a trade across risk, method, mindset and execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			trade, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				return err
			}

			if history {
				entries, err := app.Store.GetGradeHistory(ctx, store.GradeFilter{TradeID: trade.ID})
				if err != nil {
					return err
				}
				if output.IsJSON() {
					return output.JSON(entries)
				}
				if len(entries) == 0 {
					output.Info("No grades recorded for this trade yet.")
					return nil
				}
				table := NewTable(output, "WHEN", "GRADE", "SCORE", "REASON")
				for _, e := range entries {
					table.AddRow(
						FormatDate(e.ComputedAt, app.Config.UI.DateFormat),
						string(e.Overall),
						FormatScore(e.Score),
						string(e.Reason),
					)
				}
				table.Render()
				return nil
			}

			var grade *grading.TradeGrade
			if recalc {
				grade, err = gradeTrade(ctx, app, trade, grading.ReasonManualRecalc)
			} else {
				grade, err = computeGrade(ctx, app, trade)
			}
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(grade)
			}

			printGrade(output, trade, grade)
			return nil
		},
	}

	cmd.Flags().BoolVar(&recalc, "recalc", false, "Force a fresh grade computation")
	cmd.Flags().BoolVar(&history, "history", false, "Show the grade history instead")

	return cmd
}

func printGrade(output *Output, trade *models.Trade, grade *grading.TradeGrade) {
	output.Bold("Grade for %s %s: %s (%s)",
		trade.Direction, trade.Symbol, grade.Overall, FormatScore(grade.Score))

	table := NewTable(output, "COMPONENT", "SCORE", "WEIGHT")
	table.AddRow("Risk management", FormatScore(grade.RiskManagement.Score), FormatPercent(grade.RiskManagement.Weight*100))
	table.AddRow("Method alignment", FormatScore(grade.MethodAlignment.Score), FormatPercent(grade.MethodAlignment.Weight*100))
	table.AddRow("Mindset quality", FormatScore(grade.MindsetQuality.Score), FormatPercent(grade.MindsetQuality.Weight*100))
	table.AddRow("Execution", FormatScore(grade.Execution.Score), FormatPercent(grade.Execution.Weight*100))
	table.Render()

	if len(grade.Explanation) > 0 {
		output.Println()
		for _, line := range grade.Explanation {
			output.Printf("  %s\n", line)
		}
	}
	if len(grade.Recommendations) > 0 {
		output.Println()
		output.Bold("Recommendations:")
		for _, rec := range grade.Recommendations {
			output.Printf("  - %s\n", rec)
		}
	}
}
