package commands

import (
	"fmt"

	"github.com/de-tools/maturity-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

func NewProfilesCmd(s *Session) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List storage profiles of the profiles file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(s.Output)
			if err != nil {
				return err
			}
			s.Reporter.SetFormat(format)

			reg, err := s.Registry(s.RegistryPath)
			if err != nil {
				return fmt.Errorf("failed to load profiles: %w", err)
			}
			profiles, err := reg.GetProfiles()
			if err != nil {
				return fmt.Errorf("failed to load profiles: %w", err)
			}
			if len(profiles) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No profiles found in %s\n", s.RegistryPath)
				return nil
			}
			return s.Reporter.Profiles(profiles)
		},
	}
}
