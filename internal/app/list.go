package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"rockbottom/internal/pricing"
)

// List prints recent purchases with their deal classification.
func (a *App) List(ctx context.Context, opts ListOptions) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	purchases, err := store.List(ctx)
	if err != nil {
		return err
	}

	if opts.Item != "" {
		filtered := purchases[:0]
		for _, p := range purchases {
			if p.Name == opts.Item {
				filtered = append(filtered, p)
			}
		}
		purchases = filtered
	}

	if len(purchases) == 0 {
		fmt.Fprintln(os.Stdout, "no purchases found")
		return nil
	}

	// Lows are computed over the full history of each item, not the
	// truncated display window.
	lows := make(map[string]decimal.Decimal)
	for _, name := range pricing.ItemNames(purchases) {
		lows[name] = pricing.HistoricalLow(purchases, name)
	}

	if opts.Limit > 0 && len(purchases) > opts.Limit {
		purchases = purchases[:opts.Limit]
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Time (UTC)\tItem\tStore\tPrice\tQty\tUnit\tUnit price\tTarget\tDeal")

	for _, p := range purchases {
		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Timestamp.UTC().Format(time.RFC3339),
			p.Name,
			p.Store,
			p.Price.StringFixed(2),
			p.Quantity.String(),
			p.Unit,
			p.UnitPrice.StringFixed(5),
			p.RockBottomPrice.StringFixed(5),
			pricing.ClassifyDeal(p, lows[p.Name]).Label(),
		)
	}

	writer.Flush()
	return nil
}

// Items prints the item catalog: each distinct name with its historical low
// and suggested target.
func (a *App) Items(ctx context.Context) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	purchases, err := store.List(ctx)
	if err != nil {
		return err
	}

	names := pricing.ItemNames(purchases)
	if len(names) == 0 {
		fmt.Fprintln(os.Stdout, "no items recorded")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Item\tUnit\tHistorical low\tSuggested target")

	for _, name := range names {
		low := pricing.HistoricalLow(purchases, name)
		defaults, ok := pricing.ItemDefaults(purchases, name, low)
		if !ok {
			continue
		}
		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%s\n",
			name,
			defaults.Unit,
			low.StringFixed(5),
			defaults.SuggestedTarget.StringFixed(4),
		)
	}

	writer.Flush()
	return nil
}
