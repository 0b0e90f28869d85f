package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mauv0809/statsmock/internal/config"
	"github.com/mauv0809/statsmock/internal/database"
	"github.com/mauv0809/statsmock/internal/export"
	"github.com/mauv0809/statsmock/internal/stats"
)

var (
	mockConfigPath string
	today          string
	sqlitePath     string
	tursoURL       string
	tursoToken     string
	msgpackPath    string
)

var rootCmd = &cobra.Command{
	Use:   "statsmock-export",
	Short: "Synthesize the mock dataset and export it",
	Long: `Synthesizes the dataset exactly like the server does and writes it to a
SQLite file, a remote libsql database, and/or a msgpack snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if sqlitePath == "" && tursoURL == "" && msgpackPath == "" {
			return fmt.Errorf("nothing to do: pass --sqlite, --turso-url or --msgpack")
		}
		return run(cmd.Context())
	},
}

// registerFlags defaults the flags from the process configuration.
func registerFlags(cfg config.Config) {
	rootCmd.Flags().StringVar(&mockConfigPath, "config", cfg.MockConfigPath, "Path to the mock configuration file")
	rootCmd.Flags().StringVar(&today, "today", cfg.Today, "Reference date (YYYY-MM-DD); defaults to the current date")
	rootCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Write the dataset to this SQLite file")
	rootCmd.Flags().StringVar(&tursoURL, "turso-url", os.Getenv("TURSO_PRIMARY_URL"), "Write the dataset to this libsql database")
	rootCmd.Flags().StringVar(&tursoToken, "turso-token", os.Getenv("TURSO_AUTH_TOKEN"), "Auth token for --turso-url")
	rootCmd.Flags().StringVar(&msgpackPath, "msgpack", "", "Write a msgpack snapshot to this file")
}

func run(ctx context.Context) error {
	startTime := time.Now()

	mockCfg, err := config.LoadMock(mockConfigPath)
	if err != nil {
		return err
	}
	ref, err := referenceDate(today, time.Now())
	if err != nil {
		return err
	}
	snapshot, err := stats.Synthesize(mockCfg, stats.WithToday(ref))
	if err != nil {
		return fmt.Errorf("failed to synthesize dataset: %w", err)
	}

	if sqlitePath != "" {
		if err := writeDB(ctx, snapshot, sqlitePath, "", ""); err != nil {
			return err
		}
	}
	if tursoURL != "" {
		if err := writeDB(ctx, snapshot, "", tursoURL, tursoToken); err != nil {
			return err
		}
	}
	if msgpackPath != "" {
		f, err := os.Create(msgpackPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", msgpackPath, err)
		}
		meta := export.Meta{
			Seed:        mockCfg.Seed,
			Today:       stats.DateOf(ref).String(),
			CurrentUser: snapshot.CurrentUser(),
		}
		if err := export.WriteMsgpack(f, meta, snapshot); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", msgpackPath, err)
		}
	}

	log.Info("Export finished", "duration", time.Since(startTime))
	return nil
}

// referenceDate resolves --today the same way the server resolves TODAY.
func referenceDate(flag string, now time.Time) (time.Time, error) {
	cfg := config.Config{Today: flag}
	if err := cfg.ValidateToday(); err != nil {
		return time.Time{}, fmt.Errorf("invalid --today: %w", err)
	}
	return cfg.TodayOr(now), nil
}

func writeDB(ctx context.Context, snapshot *stats.Snapshot, path, url, token string) error {
	db, teardown, err := database.InitDB(path, url, token)
	if err != nil {
		return err
	}
	defer teardown()
	return export.WriteSQL(ctx, db, snapshot)
}

func main() {
	cfg := config.Load()
	cfg.ApplyLogging()
	registerFlags(cfg)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal("Export failed", "error", err)
	}
}
