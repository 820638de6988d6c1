package storage

import (
	"context"
	"errors"
	"sync"

	"rockbottom/internal/pricing"
)

var (
	// ErrNotConfigured indicates the store backend was not initialised.
	ErrNotConfigured = errors.New("storage: store not configured")
)

// PurchaseStore is the full contract between the pricing core and a backing
// medium. List returns a closed snapshot ordered newest first; Append is
// all-or-nothing. Nothing above this interface may depend on which backend
// is in use.
type PurchaseStore interface {
	List(ctx context.Context) ([]pricing.Purchase, error)
	Append(ctx context.Context, p pricing.Purchase) error
	Subscribe(fn func(pricing.Purchase)) (unsubscribe func())
	Close()
}

// broadcaster fans out append notifications to subscribers. Both backends
// embed it; delivery is synchronous and best-effort, correctness never
// depends on it.
type broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(pricing.Purchase)
}

func (b *broadcaster) Subscribe(fn func(pricing.Purchase)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[int]func(pricing.Purchase))
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

func (b *broadcaster) notify(p pricing.Purchase) {
	b.mu.Lock()
	fns := make([]func(pricing.Purchase), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(p)
	}
}
