package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rockbottom/internal/app"
)

var (
	listLimit int
	listItem  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Display recent purchases and their deal status",
	RunE: func(cmd *cobra.Command, args []string) error {
		if listLimit <= 0 {
			return fmt.Errorf("--limit must be greater than zero")
		}

		opts := app.ListOptions{
			Limit: listLimit,
			Item:  listItem,
		}

		return getApp().List(cmd.Context(), opts)
	},
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Number of purchases to display")
	listCmd.Flags().StringVar(&listItem, "item", "", "Only show purchases of this item")
}
