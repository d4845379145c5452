package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/probekit/sumpdump/internal/config"
	"github.com/probekit/sumpdump/internal/sump"
)

func newProfileCmd() *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Write or validate a TOML capture profile",
	}

	var force bool
	writeCmd := &cobra.Command{
		Use:   "write <path>",
		Short: "Write a capture profile template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteTemplate(args[0], force); err != nil {
				return err
			}
			log.Info().Str("path", args[0]).Msg("wrote capture profile template")
			return nil
		},
	}
	writeCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing profile")

	validateCmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate an existing capture profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := sump.DefaultConfig()
			if _, err := config.Load(args[0], &cfg); err != nil {
				return err
			}
			log.Info().Str("path", args[0]).Msg("profile is valid")
			return nil
		},
	}

	profileCmd.AddCommand(writeCmd, validateCmd)
	return profileCmd
}
