package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/maturity-atlas/pkg/adapters"
	"github.com/de-tools/maturity-atlas/pkg/models/api"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/services/analytics"
	"github.com/spf13/cobra"
)

func NewGapCmd(s *Session) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "gap <project>",
		Short: "Show the maturity gap report of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemKind, err := domain.ParseItemKind(kind)
			if err != nil {
				return err
			}
			return s.Run(cmd, func(ctx context.Context, svc analytics.Service) error {
				report, err := svc.GapReport(ctx, args[0], itemKind)
				if err != nil {
					return fmt.Errorf("failed to build gap report: %w", err)
				}
				return s.Reporter.GapReport(adapters.MapGapReportDomainToApi(report))
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(domain.ItemKindRequirement), "Items to analyze (requirement or control)")
	return cmd
}

func NewSoACmd(s *Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "soa <project>",
		Short: "Show the statement of applicability of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.Run(cmd, func(ctx context.Context, svc analytics.Service) error {
				statement, err := svc.SoAStatement(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to build statement of applicability: %w", err)
				}
				return s.Reporter.SoAStatement(adapters.MapSoAStatementDomainToApi(statement))
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "generate <project>",
		Short: "Create default entries for controls missing from the statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.Run(cmd, func(ctx context.Context, svc analytics.Service) error {
				created, err := svc.GenerateSoA(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to generate statement of applicability: %w", err)
				}
				return s.Reporter.SoAGenerated(api.SoAGenerateResult{ProjectID: args[0], Created: created})
			})
		},
	})
	return cmd
}

func NewReadinessCmd(s *Session) *cobra.Command {
	return &cobra.Command{
		Use:   "readiness [project]",
		Short: "Score certification readiness of one or all projects",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.Run(cmd, func(ctx context.Context, svc analytics.Service) error {
				if len(args) == 1 {
					report, err := svc.Readiness(ctx, args[0])
					if err != nil {
						return fmt.Errorf("failed to score readiness: %w", err)
					}
					return s.Reporter.Readiness(adapters.MapReadinessReportsDomainToApi([]domain.ReadinessReport{report}))
				}

				reports, err := svc.ReadinessAll(ctx)
				if err != nil {
					return fmt.Errorf("failed to score readiness: %w", err)
				}
				return s.Reporter.Readiness(adapters.MapReadinessReportsDomainToApi(reports))
			})
		},
	}
}

func NewTrendsCmd(s *Session) *cobra.Command {
	var (
		period  string
		project string
	)
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Show monthly counts of risks, nonconformities, action plans and incidents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := domain.ParsePeriod(period)
			if err != nil {
				return err
			}
			return s.Run(cmd, func(ctx context.Context, svc analytics.Service) error {
				rows, err := svc.Trends(ctx, p, project)
				if err != nil {
					return fmt.Errorf("failed to build trends: %w", err)
				}
				return s.Reporter.Trends(adapters.MapTrendRowsDomainToApi(rows))
			})
		},
	}

	cmd.Flags().StringVar(&period, "period", string(domain.Period6Months), "Window to report (3m, 6m or 12m)")
	cmd.Flags().StringVar(&project, "project", "", "Restrict to one project")
	return cmd
}

func NewHeatmapCmd(s *Session) *cobra.Command {
	return &cobra.Command{
		Use:   "heatmap",
		Short: "Show average control maturity by domain and project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.Run(cmd, func(ctx context.Context, svc analytics.Service) error {
				cells, err := svc.Heatmap(ctx)
				if err != nil {
					return fmt.Errorf("failed to build heatmap: %w", err)
				}
				return s.Reporter.Heatmap(adapters.MapHeatmapDomainToApi(cells))
			})
		},
	}
}
