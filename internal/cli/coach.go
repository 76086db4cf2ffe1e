package cli

import (
	"github.com/spf13/cobra"

	"trade-journal/internal/grading"
	"trade-journal/internal/models"
	"trade-journal/internal/store"
)

func newCoachCmd(app *App) *cobra.Command {
	var window int

	cmd := &cobra.Command{
		Use:   "coach",
		Short: "Coaching advice from your recent closed trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			if window <= 0 {
				window = app.Config.Journal.CoachWindow
			}

			trades, err := app.Store.GetTrades(ctx, store.TradeFilter{
				Status: models.TradeClosed,
				Limit:  window,
			})
			if err != nil {
				return err
			}

			grades := make([]grading.TradeGrade, 0, len(trades))
			for i := range trades {
				grade, err := computeGrade(ctx, app, &trades[i])
				if err != nil {
					return err
				}
				grades = append(grades, *grade)
			}

			recommendations := grading.Coach(grades)

			if output.IsJSON() {
				return output.JSON(recommendations)
			}

			if len(trades) == 0 {
				output.Info("No closed trades to coach from yet.")
				return nil
			}
			if len(recommendations) == 0 {
				output.Success("All grade components averaged above 70 over your last %d trades. Keep doing what you are doing.", len(trades))
				return nil
			}

			output.Bold("Coaching from your last %d trades", len(trades))
			for _, rec := range recommendations {
				output.Println()
				switch rec.Priority {
				case grading.PriorityHigh:
					output.Error("[%s] %s", rec.Priority, rec.Message)
				case grading.PriorityMedium:
					output.Warning("[%s] %s", rec.Priority, rec.Message)
				default:
					output.Info("[%s] %s", rec.Priority, rec.Message)
				}
				for _, item := range rec.ActionItems {
					output.Printf("  - %s\n", item)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&window, "window", "w", 0, "Number of recent trades to coach from")

	return cmd
}
