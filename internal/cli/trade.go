package cli

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"trade-journal/internal/errors"
	"trade-journal/internal/grading"
	"trade-journal/internal/logging"
	"trade-journal/internal/models"
	"trade-journal/internal/risk"
	"trade-journal/internal/store"
)

func newTradeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Record and manage trades",
	}

	cmd.AddCommand(
		newTradeAddCmd(app),
		newTradeCloseCmd(app),
		newTradeStopCmd(app),
		newTradeListCmd(app),
		newTradeShowCmd(app),
	)

	return cmd
}

func newTradeAddCmd(app *App) *cobra.Command {
	var (
		symbol    string
		direction string
		entry     float64
		stop      float64
		size      float64
		notes     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new trade",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			dir := models.Direction(direction)
			if !dir.IsValid() {
				return errors.NewValidationError("direction", direction, "must be LONG or SHORT")
			}

			riskAmount, err := risk.TradeRisk(entry, stop, size)
			if err != nil {
				return err
			}

			equity := app.Account.Equity()
			if risk.ExceedsIndividualLimit(riskAmount, equity) {
				riskErr := errors.NewRiskError("individual", riskAmount, equity*risk.IndividualRiskLimit,
					"trade risk exceeds 2% of account equity")
				output.Warning("Risk warning: %s", riskErr.Error())
			}

			ctx := cmd.Context()
			active, err := app.Store.GetTrades(ctx, store.TradeFilter{Status: models.TradeActive})
			if err != nil {
				return err
			}
			portfolioRisk := risk.PortfolioRisk(active) + riskAmount
			if risk.ExceedsPortfolioLimit(portfolioRisk, equity) {
				riskErr := errors.NewRiskError("portfolio", portfolioRisk, equity*risk.PortfolioRiskLimit,
					"open portfolio risk exceeds 6% of account equity")
				output.Warning("Risk warning: %s", riskErr.Error())
			}

			trade := &models.Trade{
				ID:           uuid.NewString(),
				Symbol:       symbol,
				Direction:    dir,
				EntryPrice:   entry,
				StopLoss:     stop,
				PositionSize: size,
				RiskAmount:   riskAmount,
				Status:       models.TradeActive,
				EntryDate:    time.Now(),
				Notes:        notes,
			}

			if err := app.Store.SaveTrade(ctx, trade); err != nil {
				return err
			}

			logging.LogTrade(app.Logger, "trade_opened", trade.ID, trade.Symbol,
				string(trade.Direction), trade.RiskAmount)

			if output.IsJSON() {
				return output.JSON(trade)
			}

			output.Success("Trade recorded: %s", trade.ID)
			output.Printf("  %s %s @ %s, stop %s, size %g\n",
				trade.Direction, trade.Symbol,
				FormatCurrency(trade.EntryPrice), FormatCurrency(trade.StopLoss),
				trade.PositionSize)
			if equity > 0 {
				output.Printf("  Risk at stake: %s (%s of equity)\n",
					FormatCurrency(riskAmount), FormatPercent(riskAmount/equity*100))
			} else {
				output.Printf("  Risk at stake: %s\n", FormatCurrency(riskAmount))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "Trading symbol (required)")
	cmd.Flags().StringVarP(&direction, "direction", "d", "", "LONG or SHORT (required)")
	cmd.Flags().Float64VarP(&entry, "entry", "e", 0, "Entry price (required)")
	cmd.Flags().Float64Var(&stop, "stop", 0, "Stop-loss price (required)")
	cmd.Flags().Float64Var(&size, "size", 0, "Position size (required)")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Trade notes")
	cmd.MarkFlagRequired("symbol")
	cmd.MarkFlagRequired("direction")
	cmd.MarkFlagRequired("entry")
	cmd.MarkFlagRequired("stop")
	cmd.MarkFlagRequired("size")

	return cmd
}

func newTradeCloseCmd(app *App) *cobra.Command {
	var exitPrice float64

	cmd := &cobra.Command{
		Use:   "close <trade-id>",
		Short: "Close a trade at an exit price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			trade, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				return err
			}
			if trade.Status == models.TradeClosed {
				return errors.Wrapf(errors.ErrTradeClosed, "trade %s", trade.ID)
			}
			pnl, err := risk.RealizedPnL(trade.EntryPrice, exitPrice, trade.PositionSize, trade.Direction)
			if err != nil {
				return err
			}
			now := time.Now()
			trade.ExitPrice = &exitPrice
			trade.RealizedPnL = &pnl
			trade.ExitDate = &now
			trade.Status = models.TradeClosed

			if err := app.Store.UpdateTrade(ctx, trade); err != nil {
				return err
			}

			app.Account.ApplyPnL(pnl)
			if err := app.saveEquity(ctx); err != nil {
				return err
			}

			logging.LogTrade(app.Logger, "trade_closed", trade.ID, trade.Symbol,
				string(trade.Direction), trade.RiskAmount)

			grade, err := gradeTrade(ctx, app, trade, grading.ReasonTradeClose)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"trade": trade,
					"grade": grade,
				})
			}

			output.Success("Trade closed: %s", trade.ID)
			output.Printf("  Realized P/L: %s\n", output.FormatPnL(pnl))
			output.Printf("  Account equity: %s\n", FormatCurrency(app.Account.Equity()))
			output.Printf("  Grade: %s (%s)\n", grade.Overall, FormatScore(grade.Score))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&exitPrice, "exit", "e", 0, "Exit price (required)")
	cmd.MarkFlagRequired("exit")

	return cmd
}

func newTradeStopCmd(app *App) *cobra.Command {
	var newStop float64

	cmd := &cobra.Command{
		Use:   "stop <trade-id>",
		Short: "Tighten the stop-loss of an active trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			trade, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				return err
			}
			if trade.Status == models.TradeClosed {
				return errors.Wrapf(errors.ErrTradeClosed, "trade %s", trade.ID)
			}

			if err := risk.ValidateStopLossAdjustment(trade.Direction, trade.StopLoss, newStop); err != nil {
				return err
			}

			riskAmount, err := risk.TradeRisk(trade.EntryPrice, newStop, trade.PositionSize)
			if err != nil {
				return err
			}

			trade.StopLoss = newStop
			trade.RiskAmount = riskAmount

			if err := app.Store.UpdateTrade(ctx, trade); err != nil {
				return err
			}

			logging.LogTrade(app.Logger, "stop_adjusted", trade.ID, trade.Symbol,
				string(trade.Direction), trade.RiskAmount)

			if output.IsJSON() {
				return output.JSON(trade)
			}

			output.Success("Stop-loss moved to %s", FormatCurrency(newStop))
			output.Printf("  Risk at stake is now %s\n", FormatCurrency(riskAmount))
			return nil
		},
	}

	cmd.Flags().Float64Var(&newStop, "to", 0, "New stop-loss price (required)")
	cmd.MarkFlagRequired("to")

	return cmd
}

func newTradeListCmd(app *App) *cobra.Command {
	var (
		symbol string
		status string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			filter := store.TradeFilter{
				Symbol: symbol,
				Status: models.TradeStatus(status),
				Limit:  limit,
			}

			trades, err := app.Store.GetTrades(cmd.Context(), filter)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}

			if len(trades) == 0 {
				output.Info("No trades recorded yet.")
				return nil
			}

			table := NewTable(output, "ID", "SYMBOL", "DIR", "ENTRY", "STOP", "SIZE", "P/L", "STATUS", "OPENED")
			for i := range trades {
				t := &trades[i]
				pnlStr := "-"
				if pnl, ok := t.PnL(); ok {
					pnlStr = output.FormatPnL(pnl)
				}
				table.AddRow(
					TruncateString(t.ID, 8),
					t.Symbol,
					string(t.Direction),
					FormatCurrency(t.EntryPrice),
					FormatCurrency(t.StopLoss),
					FormatRatio(t.PositionSize),
					pnlStr,
					string(t.Status),
					FormatDate(t.EntryDate, app.Config.UI.DateFormat),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "Filter by symbol")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (ACTIVE or CLOSED)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum rows")

	return cmd
}

func newTradeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show a trade in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			trade, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}

			output.Bold("%s %s (%s)", trade.Direction, trade.Symbol, trade.Status)
			output.Printf("  ID:         %s\n", trade.ID)
			output.Printf("  Entry:      %s on %s\n",
				FormatCurrency(trade.EntryPrice), FormatDate(trade.EntryDate, app.Config.UI.DateFormat))
			output.Printf("  Stop-loss:  %s\n", FormatCurrency(trade.StopLoss))
			output.Printf("  Size:       %g\n", trade.PositionSize)
			output.Printf("  Risk:       %s\n", FormatCurrency(trade.RiskAmount))
			if trade.ExitPrice != nil {
				output.Printf("  Exit:       %s", FormatCurrency(*trade.ExitPrice))
				if trade.ExitDate != nil {
					output.Printf(" on %s", FormatDate(*trade.ExitDate, app.Config.UI.DateFormat))
				}
				output.Printf("\n")
			}
			if pnl, ok := trade.PnL(); ok {
				output.Printf("  P/L:        %s (%s)\n",
					output.FormatPnL(pnl), FormatPercent(trade.ReturnPercent()))
			}
			if d, ok := trade.HoldDuration(); ok {
				output.Printf("  Held:       %s\n", FormatDuration(d))
			}
			if trade.Notes != "" {
				output.Printf("  Notes:      %s\n", trade.Notes)
			}
			return nil
		},
	}
}
