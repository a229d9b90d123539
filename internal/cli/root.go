package cli

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "maintassist",
		Version:       version,
		Short:         "AI assistant for Zabbix maintenance windows",
		Long:          "maintassist turns natural-language requests into Zabbix maintenance windows,\nincluding recurring (routine) schedules.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newCheckCmd())
	return root
}

// Execute runs the CLI and returns the command error, if any.
func Execute() error {
	return newRootCmd().Execute()
}
