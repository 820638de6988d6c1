package pricing

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Unit tags the quantity of a purchase. It is a display and grouping label
// only; no cross-unit conversion is ever performed.
type Unit string

const (
	UnitOunce  Unit = "oz"
	UnitPound  Unit = "lb"
	UnitEach   Unit = "ea"
	UnitGram   Unit = "g"
	UnitMillil Unit = "ml"
)

// DefaultStore is recorded when the user leaves the store field blank.
const DefaultStore = "Unknown"

// ParseUnit validates a raw unit label against the fixed enumeration.
func ParseUnit(s string) (Unit, error) {
	switch Unit(strings.TrimSpace(s)) {
	case UnitOunce:
		return UnitOunce, nil
	case UnitPound:
		return UnitPound, nil
	case UnitEach:
		return UnitEach, nil
	case UnitGram:
		return UnitGram, nil
	case UnitMillil:
		return UnitMillil, nil
	}
	return "", &ValidationError{Field: "unit", Reason: "must be one of oz, lb, ea, g, ml"}
}

// Purchase is an immutable record of a single buy. Updates are only ever new
// records, never in-place edits.
type Purchase struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            Unit            `json:"unit"`
	Store           string          `json:"store"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	RockBottomPrice decimal.Decimal `json:"rockBottomPrice"`
	Timestamp       time.Time       `json:"timestamp"`
}

// Params carry the validated inputs for a new Purchase. RockBottom is the
// already-derived target snapshot (see DeriveRockBottom); UnitPrice is always
// recomputed here and never taken from the caller.
type Params struct {
	Name       string
	Price      decimal.Decimal
	Quantity   decimal.Decimal
	Unit       Unit
	Store      string
	RockBottom decimal.Decimal
}

// NewPurchase builds a purchase record, enforcing the creation invariants:
// non-empty trimmed name, strictly positive price and quantity. Violations
// return a ValidationError and no record is produced.
func NewPurchase(p Params) (Purchase, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return Purchase{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if p.Price.Sign() <= 0 {
		return Purchase{}, &ValidationError{Field: "price", Reason: "must be greater than zero"}
	}
	if p.Quantity.Sign() <= 0 {
		return Purchase{}, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if _, err := ParseUnit(string(p.Unit)); err != nil {
		return Purchase{}, err
	}

	store := strings.TrimSpace(p.Store)
	if store == "" {
		store = DefaultStore
	}

	return Purchase{
		ID:              uuid.NewString(),
		Name:            name,
		Price:           p.Price,
		Quantity:        p.Quantity,
		Unit:            p.Unit,
		Store:           store,
		UnitPrice:       UnitPrice(p.Price, p.Quantity),
		RockBottomPrice: p.RockBottom,
		Timestamp:       time.Now().UTC(),
	}, nil
}

// SortByTimestampDesc orders purchases newest first, in place. The sort is
// stable so equal timestamps keep their relative order.
func SortByTimestampDesc(purchases []Purchase) {
	sort.SliceStable(purchases, func(i, j int) bool {
		return purchases[i].Timestamp.After(purchases[j].Timestamp)
	})
}
