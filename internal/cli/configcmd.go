package cli

import (
	"github.com/spf13/cobra"

	"trade-journal/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write a default config file if none exists",
			RunE: func(cmd *cobra.Command, args []string) error {
				output := NewOutput(cmd)
				path, err := config.WriteDefault()
				if err != nil {
					return err
				}
				output.Success("Config file at %s", path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				output := NewOutput(cmd)
				if output.IsJSON() {
					return output.JSON(app.Config)
				}
				output.Bold("Configuration")
				output.Printf("  Starting equity: %s\n", FormatCurrency(app.Config.Account.StartingEquity))
				output.Printf("  Database:        %s\n", app.Config.Journal.DatabasePath)
				output.Printf("  Coach window:    %d trades\n", app.Config.Journal.CoachWindow)
				output.Printf("  Log level:       %s\n", app.Config.Logging.Level)
				output.Printf("  Date format:     %s\n", app.Config.UI.DateFormat)
				return nil
			},
		},
	)

	return cmd
}
