package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trade-journal/internal/account"
	"trade-journal/internal/config"
	"trade-journal/internal/logging"
	"trade-journal/internal/store"
)

// App holds the application dependencies shared by all commands.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Store   store.DataStore
	Account *account.Account
}

// NewApp creates the application with all dependencies wired. Account
// equity is restored from the store when present, otherwise seeded from
// configuration.
func NewApp(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	dataStore, err := store.NewSQLiteStore(cfg.Journal.DatabasePath)
	if err != nil {
		return nil, err
	}

	equity := cfg.Account.StartingEquity
	if stored, ok, err := dataStore.GetEquity(context.Background()); err == nil && ok {
		equity = stored
	}

	return &App{
		Config:  cfg,
		Logger:  logger,
		Store:   dataStore,
		Account: account.New(equity),
	}, nil
}

// Close releases application resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// saveEquity persists the account equity so it survives restarts.
func (a *App) saveEquity(ctx context.Context) error {
	return a.Store.SetEquity(ctx, a.Account.Equity())
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "journal",
		Short: "Personal trading journal with scoring and coaching",
		Long: `Trade journal records trades with enforced risk discipline, scores
multi-timeframe method alignment, grades every trade across risk,
method, mindset and execution, and coaches from your recent history.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				logging.SetDebugLevel()
			}
			if !app.Config.UI.ColorEnabled {
				DisableColor()
			}
		},
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newTradeCmd(app),
		newAnalyzeCmd(app),
		newAlignCmd(app),
		newMindsetCmd(app),
		newGradeCmd(app),
		newStatsCmd(app),
		newCoachCmd(app),
		newAccountCmd(app),
		newConfigCmd(app),
		newVersionCmd(),
	)

	return rootCmd
}

var version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("journal version " + version)
		},
	}
}
