package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"trade-journal/internal/errors"
	"trade-journal/internal/grading"
	"trade-journal/internal/models"
)

func newMindsetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mindset",
		Short: "Tag the emotional state behind a trade",
	}

	cmd.AddCommand(
		newMindsetTagCmd(app),
		newMindsetListCmd(app),
	)

	return cmd
}

func newMindsetTagCmd(app *App) *cobra.Command {
	var (
		tag       string
		intensity string
	)

	cmd := &cobra.Command{
		Use:   "tag <trade-id>",
		Short: "Attach a mindset tag to a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			trade, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				return err
			}

			mindsetTag := &models.MindsetTag{
				TradeID:   trade.ID,
				Tag:       models.MindsetTagName(strings.ToUpper(tag)),
				Intensity: models.Intensity(strings.ToUpper(intensity)),
			}
			if !mindsetTag.Tag.IsValid() {
				return errors.NewValidationError("tag", tag, "is not a recognized mindset tag")
			}
			if !mindsetTag.Intensity.IsValid() {
				return errors.NewValidationError("intensity", intensity, "must be LOW, MEDIUM or HIGH")
			}

			if err := app.Store.SaveMindsetTag(ctx, mindsetTag); err != nil {
				return err
			}

			var grade *grading.TradeGrade
			if trade.Status == models.TradeClosed {
				grade, err = gradeTrade(ctx, app, trade, grading.ReasonMindsetUpdate)
				if err != nil {
					return err
				}
			}

			if output.IsJSON() {
				result := map[string]interface{}{"tag": mindsetTag}
				if grade != nil {
					result["grade"] = grade
				}
				return output.JSON(result)
			}

			output.Success("Tagged %s as %s (%s, %s intensity)",
				trade.Symbol, mindsetTag.Tag, mindsetTag.Tag.Category(), mindsetTag.Intensity)
			if grade != nil {
				output.Printf("  Grade updated: %s (%s)\n", grade.Overall, FormatScore(grade.Score))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Mindset tag, e.g. DISCIPLINED or FOMO (required)")
	cmd.Flags().StringVarP(&intensity, "intensity", "i", "MEDIUM", "LOW, MEDIUM or HIGH")
	cmd.MarkFlagRequired("tag")

	return cmd
}

func newMindsetListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <trade-id>",
		Short: "List the mindset tags on a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			tags, err := app.Store.GetMindsetTags(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(tags)
			}

			if len(tags) == 0 {
				output.Info("No mindset tags recorded for this trade.")
				return nil
			}

			table := NewTable(output, "TAG", "CATEGORY", "INTENSITY")
			for _, t := range tags {
				table.AddRow(string(t.Tag), string(t.Tag.Category()), string(t.Intensity))
			}
			table.Render()
			return nil
		},
	}
}
