package pricing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// The engine is a set of pure functions over an in-memory purchase
// collection. Every call receives its full input and retains nothing.

const (
	unitPricePlaces = 5
	displayPlaces   = 4
)

// closeDealFactor is the tolerance band above the target that still counts
// as a close deal (10%).
var closeDealFactor = decimal.NewFromFloat(1.1)

// UnitPrice returns price divided by quantity, rounded to 5 fractional
// digits (half away from zero). Non-positive inputs yield zero rather than
// an error; this tool prefers a silent sentinel over failing the caller.
func UnitPrice(price, quantity decimal.Decimal) decimal.Decimal {
	if price.Sign() <= 0 || quantity.Sign() <= 0 {
		return decimal.Zero
	}
	return price.Div(quantity).Round(unitPricePlaces)
}

// HistoricalLow returns the minimum unit price ever recorded for itemName,
// or zero when the name is empty or nothing matches. Name matching is exact
// and case-sensitive; input ordering does not affect the result.
func HistoricalLow(purchases []Purchase, itemName string) decimal.Decimal {
	if itemName == "" {
		return decimal.Zero
	}
	low := decimal.Zero
	found := false
	for _, p := range purchases {
		if p.Name != itemName {
			continue
		}
		if !found || p.UnitPrice.LessThan(low) {
			low = p.UnitPrice
			found = true
		}
	}
	return low
}

// ClassifyDeal grades a purchase against its target snapshot and the item's
// historical low. Rules are evaluated in priority order; the first match
// wins, so a record that is both a new low and under target reports as the
// new low.
func ClassifyDeal(p Purchase, historicalLow decimal.Decimal) DealStatus {
	if p.RockBottomPrice.IsZero() {
		return NoTarget
	}
	if historicalLow.Sign() > 0 && p.UnitPrice.LessThanOrEqual(historicalLow) {
		return NewRockBottom
	}
	// First-ever entry: no history yet, and the price paid became its own
	// target.
	if historicalLow.IsZero() && p.UnitPrice.Equal(p.RockBottomPrice) {
		return NewRockBottom
	}
	if p.UnitPrice.LessThanOrEqual(p.RockBottomPrice) {
		return GoodDeal
	}
	if p.UnitPrice.LessThanOrEqual(p.RockBottomPrice.Mul(closeDealFactor)) {
		return CloseDeal
	}
	return BadDeal
}

// DeriveRockBottom decides the target snapshot to persist on a new record.
// With prior history the target is clamped to the lowest of the stated
// target, the historical low, and the price just paid. With no history a
// blank target makes the first purchase its own initial target.
func DeriveRockBottom(statedTarget, historicalLow, unitPrice decimal.Decimal) decimal.Decimal {
	if historicalLow.Sign() > 0 {
		return decimal.Min(statedTarget, historicalLow, unitPrice)
	}
	if statedTarget.IsZero() {
		return unitPrice
	}
	return statedTarget
}

// FormDefaults suggest form values when the user picks a previously-seen
// item.
type FormDefaults struct {
	Unit            Unit
	SuggestedTarget decimal.Decimal
}

// ItemDefaults returns defaults taken from the most recent purchase of
// itemName: its unit, and a suggested target of the historical low when
// positive, otherwise that record's own target snapshot. The price is
// rounded to 4 fractional digits for display. ok is false when nothing
// matches, in which case callers leave their form untouched.
func ItemDefaults(purchases []Purchase, itemName string, historicalLow decimal.Decimal) (FormDefaults, bool) {
	latest, ok := latestByName(purchases, itemName)
	if !ok {
		return FormDefaults{}, false
	}

	target := historicalLow
	if target.Sign() <= 0 {
		target = latest.RockBottomPrice
	}

	return FormDefaults{
		Unit:            latest.Unit,
		SuggestedTarget: target.Round(displayPlaces),
	}, true
}

// ItemNames returns the distinct purchase names sorted ascending.
func ItemNames(purchases []Purchase) []string {
	seen := make(map[string]struct{}, len(purchases))
	names := make([]string, 0, len(purchases))
	for _, p := range purchases {
		if _, ok := seen[p.Name]; ok {
			continue
		}
		seen[p.Name] = struct{}{}
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

func latestByName(purchases []Purchase, itemName string) (Purchase, bool) {
	if itemName == "" {
		return Purchase{}, false
	}
	var latest Purchase
	found := false
	for _, p := range purchases {
		if p.Name != itemName {
			continue
		}
		if !found || p.Timestamp.After(latest.Timestamp) {
			latest = p
			found = true
		}
	}
	return latest, found
}
