package app

import (
	"context"
	"fmt"
	"os"

	"rockbottom/internal/service"
)

// Add records a single purchase and prints the resulting classification.
func (a *App) Add(ctx context.Context, opts AddOptions) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	recorder := a.newRecorder(store)

	outcome, err := recorder.Record(ctx, service.SubmissionInput{
		Name:     opts.Name,
		Price:    opts.Price,
		Quantity: opts.Quantity,
		Unit:     opts.Unit,
		Store:    opts.Store,
		Target:   opts.Target,
	})
	if err != nil {
		return err
	}

	p := outcome.Purchase
	fmt.Fprintf(os.Stdout, "Recorded %s @ %s (%s %s at %s)\n",
		p.Name, p.Store, p.Quantity.String(), p.Unit, p.Price.String())
	fmt.Fprintf(os.Stdout, "Unit price: %s /%s\n", p.UnitPrice.StringFixed(5), p.Unit)
	if outcome.HistoricalLow.Sign() > 0 {
		fmt.Fprintf(os.Stdout, "Previous low: %s /%s\n", outcome.HistoricalLow.StringFixed(5), p.Unit)
	}
	fmt.Fprintf(os.Stdout, "Target (rock bottom): %s /%s\n", p.RockBottomPrice.StringFixed(5), p.Unit)
	fmt.Fprintf(os.Stdout, "Deal: %s\n", outcome.Status.Label())
	return nil
}

// Preview prints the unit price for a price/quantity pair without
// persisting anything.
func (a *App) Preview(opts PreviewOptions) error {
	unitPrice, err := service.Preview(opts.Price, opts.Quantity)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s\n", unitPrice.StringFixed(5))
	return nil
}
