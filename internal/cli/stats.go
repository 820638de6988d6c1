package cli

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics for the active backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Stats(cmd.Context())
	},
}
