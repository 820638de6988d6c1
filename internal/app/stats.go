package app

import (
	"context"
	"fmt"
	"os"

	"rockbottom/internal/pricing"
)

// counter is implemented by both backends; it is optional on the adapter
// contract itself.
type counter interface {
	Count(ctx context.Context) (int64, error)
}

// Stats prints collection-level figures for the active backend.
func (a *App) Stats(ctx context.Context) error {
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

	total := int64(len(purchases))
	if c, ok := store.(counter); ok {
		if counted, err := c.Count(ctx); err == nil {
			total = counted
		}
	}

	fmt.Fprintf(os.Stdout, "backend: %s\n", a.backendName())
	fmt.Fprintf(os.Stdout, "purchases: %d\n", total)
	fmt.Fprintf(os.Stdout, "items: %d\n", len(pricing.ItemNames(purchases)))
	return nil
}
