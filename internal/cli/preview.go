package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"rockbottom/internal/app"
)

var (
	previewPrice    string
	previewQuantity string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Compute a unit price without recording anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		if previewPrice == "" || previewQuantity == "" {
			return errors.New("--price and --quantity are required")
		}

		opts := app.PreviewOptions{
			Price:    previewPrice,
			Quantity: previewQuantity,
		}

		return getApp().Preview(opts)
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewPrice, "price", "", "Total price paid")
	previewCmd.Flags().StringVar(&previewQuantity, "quantity", "", "Quantity purchased")
}
