// Package cli implements avenctl, the operator command line.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"avenstudio/internal/app"
	"avenstudio/internal/config"
	"avenstudio/internal/database"
)

// App holds what every command needs. Open is replaceable so tests can hand
// commands an existing database.
type App struct {
	Config *config.Config
	Log    *slog.Logger
	Out    io.Writer
	Open   func(ctx context.Context) (*gorm.DB, func(), error)
}

// NewApp builds an App that opens the configured database.
func NewApp(cfg *config.Config, log *slog.Logger) *App {
	a := &App{Config: cfg, Log: log, Out: os.Stdout}
	a.Open = func(ctx context.Context) (*gorm.DB, func(), error) {
		db, err := app.Open(ctx, a.Config, a.Log)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = database.Close(db) }, nil
	}
	return a
}

// NewRootCmd creates the top-level "avenctl" command.
func NewRootCmd(a *App) *cobra.Command {
	var dsn string

	root := &cobra.Command{
		Use:           "avenctl",
		Short:         "Operate the AvenStudio self-build backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if dsn != "" {
				a.Config.DatabaseURL = dsn
			}
			cmd.SetOut(a.Out)
		},
	}
	root.PersistentFlags().StringVar(&dsn, "dsn", "", "Database DSN or sqlite path (overrides DATABASE_URL and DB_PATH)")

	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newSeedCmd(a),
		newDispatchCmd(a),
		newReferenceCmd(a),
	)
	return root
}

func newServeCmd(a *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.Config.Host, a.Config.Port = splitAddr(addr, a.Config.Host, a.Config.Port)
			}
			return app.Run(cmd.Context(), a.Config, a.Log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address host:port")
	return cmd
}

func newMigrateCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and seed defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, closeDB, err := a.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()
			cmd.Println("schema up to date")
			return nil
		},
	}
}
