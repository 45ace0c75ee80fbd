package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/maturity-atlas/pkg/services/analytics"
	"github.com/de-tools/maturity-atlas/pkg/services/registry"
	"github.com/spf13/cobra"
)

// ServiceFactory opens the database behind profile and returns a service over it
// together with a function releasing the connection.
type ServiceFactory func(ctx context.Context, profile domain.StorageProfile) (analytics.Service, func() error, error)

// RegistryLoader loads the profiles file at path.
type RegistryLoader func(path string) (registry.ProfileRegistry, error)

// Session carries the persistent flags shared by every subcommand.
type Session struct {
	Profile      string
	RegistryPath string
	DBPath       string
	Driver       string
	Output       string

	Factory  ServiceFactory
	Registry RegistryLoader
	Reporter *export.Reporter
}

// Bind registers the persistent flags on the root command.
func (s *Session) Bind(cmd *cobra.Command, defaultRegistryPath string) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&s.Profile, "profile", "default", "Storage profile from the profiles file")
	flags.StringVar(&s.RegistryPath, "registry", defaultRegistryPath, "Path to the profiles file")
	flags.StringVar(&s.DBPath, "db", "", "Database path, bypasses the profiles file")
	flags.StringVar(&s.Driver, "driver", string(domain.StorageDriverDuckDB), "Database driver used with --db (duckdb or sqlite)")
	flags.StringVarP(&s.Output, "output", "o", string(export.FormatText), "Output format (text or json)")
}

// ResolveProfile returns the storage profile selected by the flags.
func (s *Session) ResolveProfile() (domain.StorageProfile, error) {
	if s.DBPath != "" {
		driver := domain.StorageDriver(s.Driver)
		if !driver.Valid() {
			return domain.StorageProfile{}, domain.InvalidField("driver", s.Driver)
		}
		return domain.StorageProfile{Name: "flags", Driver: driver, Path: s.DBPath}, nil
	}

	reg, err := s.Registry(s.RegistryPath)
	if err != nil {
		return domain.StorageProfile{}, err
	}
	return reg.GetProfile(s.Profile)
}

// Run opens the selected storage, applies the output format and calls fn with the service.
func (s *Session) Run(cmd *cobra.Command, fn func(ctx context.Context, svc analytics.Service) error) error {
	format, err := export.ParseFormat(s.Output)
	if err != nil {
		return err
	}
	s.Reporter.SetFormat(format)

	profile, err := s.ResolveProfile()
	if err != nil {
		return fmt.Errorf("failed to resolve storage profile: %w", err)
	}

	ctx := cmd.Context()
	svc, closeFn, err := s.Factory(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to open storage %s: %w", profile, err)
	}
	defer func() {
		_ = closeFn()
	}()

	return fn(ctx, svc)
}
