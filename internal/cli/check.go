package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovert/maintassist/internal/config"
	"github.com/grovert/maintassist/internal/llm"
	"github.com/grovert/maintassist/internal/zabbix"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify Zabbix and AI provider connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()

			zbx := zabbix.NewClient(cfg.Zabbix.URL, cfg.Zabbix.Token, nil)
			if err := zbx.TestConnection(ctx); err != nil {
				return fmt.Errorf("zabbix: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "zabbix: ok (%s)\n", cfg.Zabbix.URL)

			client, err := llm.NewClient(cfg.LLM, llm.NoopObserver{})
			if err != nil {
				return err
			}
			if !client.Available(ctx) {
				return fmt.Errorf("%s: provider unreachable", cfg.LLM.Provider)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s)\n", cfg.LLM.Provider, cfg.LLM.Model())
			return nil
		},
	}
}
