// Package cli implements the budget command line: one-shot subcommands that
// load the ledger, apply one operation and save it, plus an interactive shell.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/warp/budget-ledger/budget"
	"github.com/warp/budget-ledger/config"
	"github.com/warp/budget-ledger/logging"
	"github.com/warp/budget-ledger/store"
)

// App carries the I/O streams and the state shared by every subcommand.
type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Now overrides the clock used for "today". Nil means time.Now.
	Now func() time.Time

	configPath string
	viper      *viper.Viper
	cfg        *config.Config
	log        zerolog.Logger
	store      budget.Store
	closeStore func() error
}

// NewApp returns an App bound to the process's standard streams.
func NewApp() *App {
	return &App{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCommand(NewApp()).Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand builds the command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	app.viper = config.New()

	root := &cobra.Command{
		Use:           "budget",
		Short:         "Personal budget tracker",
		Long:          `Track spending against per-category budgets and review weekly or monthly totals.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.teardown()
		},
	}
	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.SetErr(app.Err)

	flags := root.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "config file (default ./budget.yaml)")
	flags.String("file", config.DefaultFile, "ledger file for the json backend")
	flags.String("backend", config.BackendJSON, "storage backend: json, sqlite or memory")
	flags.String("sqlite", config.DefaultSQLitePath, "database path for the sqlite backend")
	flags.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")

	_ = app.viper.BindPFlag("storage.file", flags.Lookup("file"))
	_ = app.viper.BindPFlag("storage.backend", flags.Lookup("backend"))
	_ = app.viper.BindPFlag("storage.sqlite_path", flags.Lookup("sqlite"))
	_ = app.viper.BindPFlag("log.level", flags.Lookup("log-level"))

	root.AddCommand(
		newCategoryCommand(app),
		newTransactionCommand(app),
		newReportCommand(app),
		newSpendingCommand(app, budget.Weekly),
		newSpendingCommand(app, budget.Monthly),
		newShellCommand(app),
	)
	return root
}

func (app *App) setup() error {
	cfg, err := config.Load(app.viper, app.configPath)
	if err != nil {
		return err
	}
	app.cfg = cfg
	app.log = logging.WithComponent(logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Out:    app.Err,
	}), "cli")

	st, closeStore, err := store.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	app.store = st
	app.closeStore = closeStore
	return nil
}

func (app *App) teardown() error {
	if app.closeStore == nil {
		return nil
	}
	err := app.closeStore()
	app.closeStore = nil
	return err
}

// loadLedger returns the stored ledger, or an empty one if nothing was saved yet.
func (app *App) loadLedger(ctx context.Context) (*budget.Ledger, error) {
	ledger := budget.NewLedger()
	ledger.Now = app.Now

	err := ledger.Load(ctx, app.store)
	switch {
	case err == nil:
		app.log.Debug().Str("store", store.Describe(app.cfg.Storage)).Int("categories", ledger.Len()).Msg("ledger loaded")
	case errors.Is(err, budget.ErrNotFound):
		app.log.Debug().Str("store", store.Describe(app.cfg.Storage)).Msg("no saved ledger, starting empty")
	default:
		return nil, err
	}
	return ledger, nil
}

func (app *App) saveLedger(ctx context.Context, ledger *budget.Ledger) error {
	if err := ledger.Save(ctx, app.store); err != nil {
		return err
	}
	app.log.Debug().Str("store", store.Describe(app.cfg.Storage)).Msg("ledger saved")
	return nil
}

// mutate loads the ledger, applies fn and saves the result.
func (app *App) mutate(ctx context.Context, fn func(*budget.Ledger) error) error {
	ledger, err := app.loadLedger(ctx)
	if err != nil {
		return err
	}
	if err := fn(ledger); err != nil {
		return err
	}
	return app.saveLedger(ctx, ledger)
}
