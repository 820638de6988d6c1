package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"rockbottom/internal/config"
	"rockbottom/internal/pricing"
)

const (
	insertPurchaseSQL = `INSERT INTO purchases (
        id,
        user_id,
        name,
        price,
        quantity,
        unit,
        store,
        unit_price,
        rock_bottom_price,
        ts
    ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8,$9,$10
    );`

	listPurchasesSQL = `SELECT
        id,
        name,
        price,
        quantity,
        unit,
        store,
        unit_price,
        rock_bottom_price,
        ts
    FROM purchases
    WHERE user_id = $1
    ORDER BY ts DESC;`

	countPurchasesSQL = `SELECT COUNT(*) FROM purchases WHERE user_id = $1;`
)

// NewPool configures a PostgreSQL connection pool from runtime settings.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database dsn: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	return pool, nil
}

// PostgresStore persists purchases in a per-user-scoped remote table.
type PostgresStore struct {
	broadcaster
	pool   *pgxpool.Pool
	userID string
}

// NewPostgresStore wires a pgx pool into a PostgresStore scoped to one user.
func NewPostgresStore(pool *pgxpool.Pool, userID string) *PostgresStore {
	return &PostgresStore{pool: pool, userID: userID}
}

// Close releases the underlying pool resources.
func (s *PostgresStore) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

func (s *PostgresStore) getPool() (*pgxpool.Pool, error) {
	if s == nil || s.pool == nil {
		return nil, ErrNotConfigured
	}
	return s.pool, nil
}

// Append durably adds a purchase record.
func (s *PostgresStore) Append(ctx context.Context, p pricing.Purchase) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}

	_, execErr := pool.Exec(ctx, insertPurchaseSQL,
		p.ID,
		s.userID,
		p.Name,
		p.Price.String(),
		p.Quantity.String(),
		string(p.Unit),
		p.Store,
		p.UnitPrice.String(),
		p.RockBottomPrice.String(),
		p.Timestamp,
	)
	if execErr != nil {
		return fmt.Errorf("append purchase: %w", execErr)
	}

	s.notify(p)
	return nil
}

// List returns the user's purchases ordered newest first.
func (s *PostgresStore) List(ctx context.Context) ([]pricing.Purchase, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listPurchasesSQL, s.userID)
	if queryErr != nil {
		return nil, fmt.Errorf("list purchases: %w", queryErr)
	}
	defer rows.Close()

	purchases := make([]pricing.Purchase, 0)
	for rows.Next() {
		p, scanErr := scanPurchase(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		purchases = append(purchases, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return purchases, nil
}

// Count counts the user's stored purchases.
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	pool, err := s.getPool()
	if err != nil {
		return 0, err
	}
	var count int64
	if scanErr := pool.QueryRow(ctx, countPurchasesSQL, s.userID).Scan(&count); scanErr != nil {
		return 0, fmt.Errorf("count purchases: %w", scanErr)
	}
	return count, nil
}

func scanPurchase(rows pgx.Rows) (pricing.Purchase, error) {
	var (
		id          string
		name        string
		priceStr    string
		quantityStr string
		unit        string
		store       string
		unitStr     string
		rockStr     string
		ts          time.Time
	)

	if err := rows.Scan(
		&id,
		&name,
		&priceStr,
		&quantityStr,
		&unit,
		&store,
		&unitStr,
		&rockStr,
		&ts,
	); err != nil {
		return pricing.Purchase{}, err
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return pricing.Purchase{}, fmt.Errorf("parse price: %w", err)
	}
	quantity, err := decimal.NewFromString(quantityStr)
	if err != nil {
		return pricing.Purchase{}, fmt.Errorf("parse quantity: %w", err)
	}
	unitPrice, err := decimal.NewFromString(unitStr)
	if err != nil {
		return pricing.Purchase{}, fmt.Errorf("parse unit price: %w", err)
	}
	rockBottom, err := decimal.NewFromString(rockStr)
	if err != nil {
		return pricing.Purchase{}, fmt.Errorf("parse rock bottom price: %w", err)
	}

	return pricing.Purchase{
		ID:              id,
		Name:            name,
		Price:           price,
		Quantity:        quantity,
		Unit:            pricing.Unit(unit),
		Store:           store,
		UnitPrice:       unitPrice,
		RockBottomPrice: rockBottom,
		Timestamp:       ts,
	}, nil
}

var _ PurchaseStore = (*PostgresStore)(nil)
