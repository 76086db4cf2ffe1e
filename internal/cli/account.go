package cli

import (
	"github.com/spf13/cobra"

	"trade-journal/internal/models"
	"trade-journal/internal/risk"
	"trade-journal/internal/store"
)

func newAccountCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show and adjust account equity",
	}

	cmd.AddCommand(
		newAccountShowCmd(app),
		newAccountDepositCmd(app),
		newAccountWithdrawCmd(app),
	)

	return cmd
}

func newAccountShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show equity and open risk exposure",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			active, err := app.Store.GetTrades(ctx, store.TradeFilter{Status: models.TradeActive})
			if err != nil {
				return err
			}

			equity := app.Account.Equity()
			openRisk := risk.PortfolioRisk(active)
			riskPercent := 0.0
			if equity > 0 {
				riskPercent = openRisk / equity * 100
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"equity":       equity,
					"open_trades":  len(active),
					"open_risk":    openRisk,
					"risk_percent": riskPercent,
				})
			}

			output.Bold("Account")
			output.Printf("  Equity:     %s\n", FormatCurrency(equity))
			output.Printf("  Open trades: %d\n", len(active))
			if equity > 0 {
				output.Printf("  Open risk:  %s (%s of equity, limit %s)\n",
					FormatCurrency(openRisk),
					FormatPercent(openRisk/equity*100),
					FormatPercent(risk.PortfolioRiskLimit*100))
			}
			return nil
		},
	}
}

func newAccountDepositCmd(app *App) *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit funds into the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			equity, err := app.Account.Deposit(amount)
			if err != nil {
				return err
			}
			if err := app.saveEquity(cmd.Context()); err != nil {
				return err
			}

			app.Logger.Info().Float64("amount", amount).Float64("equity", equity).Msg("deposit")

			if output.IsJSON() {
				return output.JSON(map[string]float64{"equity": equity})
			}
			output.Success("Deposited %s. Equity is now %s.", FormatCurrency(amount), FormatCurrency(equity))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Amount to deposit (required)")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func newAccountWithdrawCmd(app *App) *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw funds from the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			equity, err := app.Account.Withdraw(amount)
			if err != nil {
				return err
			}
			if err := app.saveEquity(cmd.Context()); err != nil {
				return err
			}

			app.Logger.Info().Float64("amount", amount).Float64("equity", equity).Msg("withdrawal")

			if output.IsJSON() {
				return output.JSON(map[string]float64{"equity": equity})
			}
			output.Success("Withdrew %s. Equity is now %s.", FormatCurrency(amount), FormatCurrency(equity))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Amount to withdraw (required)")
	cmd.MarkFlagRequired("amount")

	return cmd
}
