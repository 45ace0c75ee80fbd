package main

import (
	"fmt"
	"os"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/server"
	"github.com/de-tools/maturity-atlas/pkg/services/analytics"
	"github.com/de-tools/maturity-atlas/pkg/services/config"
	"github.com/de-tools/maturity-atlas/pkg/store/compliance"
	"github.com/de-tools/maturity-atlas/pkg/store/database"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Maturity Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the YAML configuration file (overrides MATURITY_ATLAS_CONFIG)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	env, err := config.ParseEnv()
	if err != nil {
		return err
	}
	if cfgPath == "" {
		cfgPath = env.ConfigPath
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := env.Apply(cfg); err != nil {
		return fmt.Errorf("invalid environment configuration: %w", err)
	}

	level, err := cfg.Log.ZerologLevel()
	if err != nil {
		return err
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	driver := domain.StorageDriver(cfg.Storage.Driver)
	db, err := database.Open(database.Settings{
		Driver: driver,
		Path:   cfg.Storage.Path,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("failed to close database")
		}
	}()

	store, err := compliance.NewStore(db, compliance.WithDriver(driver))
	if err != nil {
		return fmt.Errorf("failed to create compliance store: %w", err)
	}

	svc := analytics.NewService(store, analytics.Settings{
		TopGaps:     cfg.Analytics.TopGaps,
		Concurrency: cfg.Analytics.Concurrency,
	}, time.Now)

	logger.Info().
		Str("driver", cfg.Storage.Driver).
		Str("path", cfg.Storage.Path).
		Msg("compliance database opened")

	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		DefaultPeriod:   domain.Period(cfg.Analytics.DefaultPeriod),
		Dependencies: server.Dependencies{
			Analytics: svc,
			Logger:    logger,
		},
	})

	return api.Start()
}
