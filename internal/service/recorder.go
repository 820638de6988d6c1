package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"rockbottom/internal/alerting"
	"rockbottom/internal/pricing"
	"rockbottom/internal/session"
	"rockbottom/internal/storage"
)

// Recorder runs the submission workflow: parse and validate raw input at the
// boundary, derive the unit price and target snapshot, append, classify. The
// pricing engine itself never sees malformed text.
type Recorder struct {
	store    storage.PurchaseStore
	auth     session.Authenticator
	notifier alerting.Notifier
	logger   zerolog.Logger
}

// New constructs the recorder.
func New(store storage.PurchaseStore, auth session.Authenticator, notifier alerting.Notifier, logger zerolog.Logger) *Recorder {
	return &Recorder{
		store:    store,
		auth:     auth,
		notifier: notifier,
		logger:   logger.With().Str("component", "recorder").Logger(),
	}
}

// SubmissionInput is the raw form data as the presentation layer hands it
// over: untrusted strings for every numeric field.
type SubmissionInput struct {
	Name     string
	Price    string
	Quantity string
	Unit     string
	Store    string
	Target   string
}

// Outcome reports a successfully recorded purchase.
type Outcome struct {
	Purchase      pricing.Purchase
	Status        pricing.DealStatus
	HistoricalLow decimal.Decimal
}

// Record validates the submission, persists a new purchase, and returns its
// classification. Validation failures block the append entirely; append
// failures leave the submission untouched so the caller can retry.
func (r *Recorder) Record(ctx context.Context, in SubmissionInput) (Outcome, error) {
	sess, err := r.auth.Session(ctx)
	if err != nil {
		return Outcome{}, err
	}
	if !sess.Authenticated {
		return Outcome{}, session.ErrNotAuthenticated
	}

	price, err := parseAmount("price", in.Price)
	if err != nil {
		return Outcome{}, err
	}
	quantity, err := parseAmount("quantity", in.Quantity)
	if err != nil {
		return Outcome{}, err
	}
	target, err := parseOptionalAmount("target", in.Target)
	if err != nil {
		return Outcome{}, err
	}
	unit, err := pricing.ParseUnit(in.Unit)
	if err != nil {
		return Outcome{}, err
	}

	name := strings.TrimSpace(in.Name)

	existing, err := r.store.List(ctx)
	if err != nil {
		return Outcome{}, err
	}

	low := pricing.HistoricalLow(existing, name)
	unitPrice := pricing.UnitPrice(price, quantity)
	rockBottom := pricing.DeriveRockBottom(target, low, unitPrice)

	purchase, err := pricing.NewPurchase(pricing.Params{
		Name:       name,
		Price:      price,
		Quantity:   quantity,
		Unit:       unit,
		Store:      in.Store,
		RockBottom: rockBottom,
	})
	if err != nil {
		return Outcome{}, err
	}

	if err := r.store.Append(ctx, purchase); err != nil {
		return Outcome{}, err
	}

	status := pricing.ClassifyDeal(purchase, low)
	r.logger.Info().
		Str("item", purchase.Name).
		Str("unit_price", purchase.UnitPrice.String()).
		Str("status", string(status)).
		Msg("purchase recorded")

	if status == pricing.NewRockBottom && r.notifier != nil {
		note := alerting.Notification{
			Item:        purchase.Name,
			Store:       purchase.Store,
			Unit:        string(purchase.Unit),
			UnitPrice:   purchase.UnitPrice,
			PreviousLow: low,
			RockBottom:  purchase.RockBottomPrice,
			Timestamp:   purchase.Timestamp,
		}
		if err := r.notifier.Notify(ctx, note); err != nil {
			// The purchase is already durable; a failed alert must not
			// surface as a failed append.
			r.logger.Error().Err(err).Str("item", purchase.Name).Msg("failed to dispatch rock-bottom alert")
		}
	}

	return Outcome{Purchase: purchase, Status: status, HistoricalLow: low}, nil
}

// Defaults returns form defaults for a previously-seen item, or ok=false
// when the item has no history.
func (r *Recorder) Defaults(ctx context.Context, itemName string) (pricing.FormDefaults, bool, error) {
	purchases, err := r.store.List(ctx)
	if err != nil {
		return pricing.FormDefaults{}, false, err
	}
	low := pricing.HistoricalLow(purchases, itemName)
	defaults, ok := pricing.ItemDefaults(purchases, itemName, low)
	return defaults, ok, nil
}

// Preview computes the live unit-price preview from raw form strings.
func Preview(priceStr, quantityStr string) (decimal.Decimal, error) {
	price, err := parseAmount("price", priceStr)
	if err != nil {
		return decimal.Zero, err
	}
	quantity, err := parseAmount("quantity", quantityStr)
	if err != nil {
		return decimal.Zero, err
	}
	return pricing.UnitPrice(price, quantity), nil
}

// parseAmount is the strict parse-then-validate step at the presentation
// boundary: non-numeric or non-positive input is rejected before any value
// reaches the engine or a persistence call.
func parseAmount(field, raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, &pricing.ValidationError{Field: field, Reason: "must be a number"}
	}
	if value.Sign() <= 0 {
		return decimal.Zero, &pricing.ValidationError{Field: field, Reason: "must be greater than zero"}
	}
	return value, nil
}

// parseOptionalAmount accepts a blank field as zero ("no target") but still
// rejects malformed or negative input.
func parseOptionalAmount(field, raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, &pricing.ValidationError{Field: field, Reason: "must be a number"}
	}
	if value.Sign() < 0 {
		return decimal.Zero, &pricing.ValidationError{Field: field, Reason: "must not be negative"}
	}
	return value, nil
}
