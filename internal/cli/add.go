package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"rockbottom/internal/app"
)

var (
	addName     string
	addPrice    string
	addQuantity string
	addUnit     string
	addStore    string
	addTarget   string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a purchase",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addName == "" {
			return errors.New("--name is required")
		}
		if addPrice == "" || addQuantity == "" {
			return errors.New("--price and --quantity are required")
		}

		opts := app.AddOptions{
			Name:     addName,
			Price:    addPrice,
			Quantity: addQuantity,
			Unit:     addUnit,
			Store:    addStore,
			Target:   addTarget,
		}

		return getApp().Add(cmd.Context(), opts)
	},
}

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "Item name")
	addCmd.Flags().StringVar(&addPrice, "price", "", "Total price paid")
	addCmd.Flags().StringVar(&addQuantity, "quantity", "", "Quantity purchased")
	addCmd.Flags().StringVar(&addUnit, "unit", "ea", "Quantity unit (oz, lb, ea, g, ml)")
	addCmd.Flags().StringVar(&addStore, "store", "", "Store name (defaults to Unknown)")
	addCmd.Flags().StringVar(&addTarget, "target", "", "Target unit price (blank for none)")
}
