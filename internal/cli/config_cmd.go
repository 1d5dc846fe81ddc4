package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/config"
)

func newConfigCmd(s *rootState) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tracker.yaml",
	}

	var force bool
	var path string
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipWiring: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := path
			if target == "" {
				target = s.configPath
			}
			if target == "" {
				target = config.DefaultFileName
			}
			if err := config.WriteDefault(target, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	initCmd.Flags().StringVar(&path, "path", "", "output path (defaults to --config or ./tracker.yaml)")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := s.app.Config
			return s.print(cmd, cfg, func() string {
				return fmt.Sprintf("db:        %s\nserver:    %s%s\nllm:       %s %s (enabled=%t)\ntelemetry: %t\n",
					cfg.DBPath, cfg.Server.Addr, cfg.Server.BasePath,
					cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.Enabled, cfg.Telemetry.Enabled)
			})
		},
	}

	cfgCmd.AddCommand(initCmd, showCmd)
	return cfgCmd
}
