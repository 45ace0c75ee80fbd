package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/runtime/terminal"
	"github.com/de-tools/maturity-atlas/pkg/services/analytics"
	"github.com/de-tools/maturity-atlas/pkg/services/registry"
	"github.com/de-tools/maturity-atlas/pkg/store/compliance"
	"github.com/de-tools/maturity-atlas/pkg/store/database"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	registryPath, err := registry.DefaultPath()
	if err != nil {
		registryPath = registry.DefaultFileName
	}

	cli := terminal.NewCLI(terminal.Options{
		Factory:      openService,
		RegistryPath: registryPath,
		Output:       os.Stdout,
	})

	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openService(_ context.Context, profile domain.StorageProfile) (analytics.Service, func() error, error) {
	db, err := database.Open(database.SettingsFromProfile(profile))
	if err != nil {
		return nil, nil, err
	}
	store, err := compliance.NewStore(db, compliance.WithDriver(profile.Driver))
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return analytics.NewService(store, analytics.DefaultSettings(), time.Now), db.Close, nil
}
