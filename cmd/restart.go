package cmd

import (
	"github.com/spf13/cobra"

	"iotexsetup/internal/restart"
)

func init() {
	rootCmd.AddCommand(restartCmd)
}

var restartCmd = &cobra.Command{
	Use:          "restart",
	Short:        "Restart the OpenClaw service",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return restart.New().Restart()
	},
}
