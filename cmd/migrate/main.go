package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"time"

	"github.com/spf13/cobra"

	"github.com/lukeshafer/indigestion-cards-sub002/cardsite"
	"github.com/lukeshafer/indigestion-cards-sub002/cardsite/logger"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database"
)

var configPath string

var rootCMD = &cobra.Command{
	Use:          "migrate",
	Short:        "create the card site tables, constraints and indexes",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, db *database.DB) error {
			start := time.Now()
			if err := db.InitializeSchema(ctx); err != nil {
				return err
			}
			slog.Info("Schema is up to date",
				slog.String("type", "db"),
				slog.Duration("took", time.Since(start)))
			return nil
		})
	},
}

var tablesCMD = &cobra.Command{
	Use:   "tables",
	Short: "print the row count of every table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, db *database.DB) error {
			for _, model := range database.Tables {
				count, err := db.BunDB().NewSelect().Model(model).Count(ctx)
				if err != nil {
					return fmt.Errorf("failed to count rows: %w", err)
				}
				table := db.BunDB().Table(reflect.TypeOf(model))
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %d\n", table.Name, count)
			}
			return nil
		})
	},
}

func withDB(ctx context.Context, fn func(ctx context.Context, db *database.DB) error) error {
	cfg, err := cardsite.LoadConfig(configPath)
	if err != nil {
		return err
	}
	slog.SetDefault(logger.New("Indigestion-Migrate", cfg.Log.Format, cfg.Log.Level, cfg.Log.AddSource))

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Failed to connect to database", slog.String("type", "db"), slog.Any("error", err))
		return err
	}
	defer db.Close()

	return fn(ctx, db)
}

func main() {
	rootCMD.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
	rootCMD.AddCommand(tablesCMD)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := rootCMD.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
