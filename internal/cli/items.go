package cli

import (
	"github.com/spf13/cobra"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List tracked items with their historical lows",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Items(cmd.Context())
	},
}
