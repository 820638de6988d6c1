package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"rockbottom/internal/pricing"
)

// LocalStore keeps the whole purchase collection in a single JSON file: read
// fully at open, rewritten fully after every successful append. Suitable for
// a single device, always available, no network.
type LocalStore struct {
	broadcaster
	path string

	mu        sync.Mutex
	purchases []pricing.Purchase
}

// OpenLocalStore loads the blob at path. A missing file is an empty
// collection, not an error.
func OpenLocalStore(path string) (*LocalStore, error) {
	if path == "" {
		return nil, ErrNotConfigured
	}

	s := &LocalStore{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read local store: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(data, &s.purchases); err != nil {
		return nil, fmt.Errorf("decode local store: %w", err)
	}
	pricing.SortByTimestampDesc(s.purchases)
	return s, nil
}

// List returns a snapshot copy ordered newest first.
func (s *LocalStore) List(ctx context.Context) ([]pricing.Purchase, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]pricing.Purchase, len(s.purchases))
	copy(out, s.purchases)
	return out, nil
}

// Append adds the purchase and rewrites the blob. The in-memory collection
// only keeps the record once the file write succeeded.
func (s *LocalStore) Append(ctx context.Context, p pricing.Purchase) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	next := make([]pricing.Purchase, 0, len(s.purchases)+1)
	next = append(next, p)
	next = append(next, s.purchases...)
	pricing.SortByTimestampDesc(next)

	if err := s.writeBlob(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.purchases = next
	s.mu.Unlock()

	s.notify(p)
	return nil
}

// Count reports the number of stored purchases.
func (s *LocalStore) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.purchases)), nil
}

// Close is a no-op; every append already leaves the file durable.
func (s *LocalStore) Close() {}

// Path returns the backing file location.
func (s *LocalStore) Path() string {
	return s.path
}

// writeBlob serialises the full collection to a temp file and renames it
// over the slot, so a failed write never truncates existing history.
func (s *LocalStore) writeBlob(purchases []pricing.Purchase) error {
	data, err := json.MarshalIndent(purchases, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local store dir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".purchases-*.json")
	if err != nil {
		return fmt.Errorf("create temp blob: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp blob: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace local store: %w", err)
	}
	return nil
}

var _ PurchaseStore = (*LocalStore)(nil)
