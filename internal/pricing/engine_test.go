package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestUnitPriceRounding(t *testing.T) {
	got := UnitPrice(dec(t, "4.99"), dec(t, "16"))
	if !got.Equal(dec(t, "0.31188")) {
		t.Fatalf("unit price = %s, want 0.31188", got)
	}

	got = UnitPrice(dec(t, "3.99"), dec(t, "16"))
	if !got.Equal(dec(t, "0.24938")) {
		t.Fatalf("unit price = %s, want 0.24938", got)
	}

	got = UnitPrice(dec(t, "6.00"), dec(t, "16"))
	if !got.Equal(dec(t, "0.375")) {
		t.Fatalf("unit price = %s, want 0.375", got)
	}
}

func TestUnitPricePositive(t *testing.T) {
	got := UnitPrice(dec(t, "0.01"), dec(t, "1000"))
	if got.Sign() <= 0 {
		t.Fatalf("unit price should be strictly positive, got %s", got)
	}
}

func TestUnitPriceNonPositiveInputs(t *testing.T) {
	cases := []struct {
		price, quantity string
	}{
		{"0", "16"},
		{"-1", "16"},
		{"4.99", "0"},
		{"4.99", "-2"},
	}
	for _, tc := range cases {
		if got := UnitPrice(dec(t, tc.price), dec(t, tc.quantity)); !got.IsZero() {
			t.Fatalf("UnitPrice(%s, %s) = %s, want 0", tc.price, tc.quantity, got)
		}
	}
}

func TestUnitPriceIdempotent(t *testing.T) {
	price, quantity := dec(t, "7.77"), dec(t, "3")
	first := UnitPrice(price, quantity)
	second := UnitPrice(price, quantity)
	if !first.Equal(second) {
		t.Fatalf("UnitPrice not idempotent: %s vs %s", first, second)
	}
}

func fixture(t *testing.T, name string, unitPrice, rockBottom string, ts time.Time) Purchase {
	t.Helper()
	return Purchase{
		ID:              name + ts.String(),
		Name:            name,
		Price:           dec(t, unitPrice),
		Quantity:        decimal.NewFromInt(1),
		Unit:            UnitOunce,
		Store:           DefaultStore,
		UnitPrice:       dec(t, unitPrice),
		RockBottomPrice: dec(t, rockBottom),
		Timestamp:       ts,
	}
}

func TestHistoricalLow(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	purchases := []Purchase{
		fixture(t, "Oats", "0.375", "0.25", base.Add(2*time.Hour)),
		fixture(t, "Oats", "0.24938", "0.25", base.Add(time.Hour)),
		fixture(t, "Oats", "0.31188", "0.31188", base),
		fixture(t, "Milk", "0.05", "0.05", base),
	}

	low := HistoricalLow(purchases, "Oats")
	if !low.Equal(dec(t, "0.24938")) {
		t.Fatalf("historical low = %s, want 0.24938", low)
	}

	for _, p := range purchases {
		if p.Name == "Oats" && p.UnitPrice.LessThan(low) {
			t.Fatalf("low %s exceeds matching unit price %s", low, p.UnitPrice)
		}
	}
}

func TestHistoricalLowOrderIndependent(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := fixture(t, "Oats", "0.31188", "0.31188", base)
	b := fixture(t, "Oats", "0.24938", "0.25", base.Add(time.Hour))

	forward := HistoricalLow([]Purchase{a, b}, "Oats")
	reverse := HistoricalLow([]Purchase{b, a}, "Oats")
	if !forward.Equal(reverse) {
		t.Fatalf("low depends on input order: %s vs %s", forward, reverse)
	}
}

func TestHistoricalLowNoMatch(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	purchases := []Purchase{fixture(t, "Oats", "0.31188", "0.31188", base)}

	if got := HistoricalLow(purchases, ""); !got.IsZero() {
		t.Fatalf("empty name should give 0, got %s", got)
	}
	if got := HistoricalLow(purchases, "Rice"); !got.IsZero() {
		t.Fatalf("unknown name should give 0, got %s", got)
	}
	if got := HistoricalLow(purchases, "oats"); !got.IsZero() {
		t.Fatalf("name match must be case-sensitive, got %s", got)
	}
	if got := HistoricalLow(nil, "Oats"); !got.IsZero() {
		t.Fatalf("empty collection should give 0, got %s", got)
	}
}

func TestClassifyDealNoTarget(t *testing.T) {
	p := fixture(t, "Oats", "0.31188", "0", time.Now())
	if got := ClassifyDeal(p, dec(t, "0.25")); got != NoTarget {
		t.Fatalf("status = %s, want NoTarget", got)
	}
}

func TestClassifyDealPriority(t *testing.T) {
	// unitPrice == historicalLow == rockBottomPrice is a new rock bottom,
	// never merely a good deal.
	p := fixture(t, "Oats", "0.25", "0.25", time.Now())
	if got := ClassifyDeal(p, dec(t, "0.25")); got != NewRockBottom {
		t.Fatalf("status = %s, want NewRockBottom", got)
	}
}

func TestClassifyDealFirstEntry(t *testing.T) {
	// No history yet and the price paid equals the persisted target.
	p := fixture(t, "Oats", "0.31188", "0.31188", time.Now())
	if got := ClassifyDeal(p, decimal.Zero); got != NewRockBottom {
		t.Fatalf("status = %s, want NewRockBottom", got)
	}
}

func TestClassifyDealGood(t *testing.T) {
	p := fixture(t, "Oats", "0.24", "0.25", time.Now())
	if got := ClassifyDeal(p, dec(t, "0.2")); got != GoodDeal {
		t.Fatalf("status = %s, want GoodDeal", got)
	}
}

func TestClassifyDealClose(t *testing.T) {
	// 8% above target stays within the 10% band.
	p := fixture(t, "Oats", "0.27", "0.25", time.Now())
	if got := ClassifyDeal(p, dec(t, "0.25")); got != CloseDeal {
		t.Fatalf("status = %s, want CloseDeal", got)
	}

	// Exactly 10% above target is still close.
	p = fixture(t, "Oats", "0.275", "0.25", time.Now())
	if got := ClassifyDeal(p, dec(t, "0.25")); got != CloseDeal {
		t.Fatalf("status = %s, want CloseDeal at the band edge", got)
	}
}

func TestClassifyDealBad(t *testing.T) {
	p := fixture(t, "Oats", "0.375", "0.25", time.Now())
	if got := ClassifyDeal(p, dec(t, "0.24938")); got != BadDeal {
		t.Fatalf("status = %s, want BadDeal", got)
	}
}

func TestClassifyDealIdempotent(t *testing.T) {
	p := fixture(t, "Oats", "0.27", "0.25", time.Now())
	low := dec(t, "0.25")
	if first, second := ClassifyDeal(p, low), ClassifyDeal(p, low); first != second {
		t.Fatalf("ClassifyDeal not idempotent: %s vs %s", first, second)
	}
}

func TestDeriveRockBottomFirstPurchase(t *testing.T) {
	// Scenario A: no history, blank target; the first purchase becomes its
	// own initial target.
	up := UnitPrice(dec(t, "4.99"), dec(t, "16"))
	got := DeriveRockBottom(decimal.Zero, decimal.Zero, up)
	if !got.Equal(dec(t, "0.31188")) {
		t.Fatalf("rock bottom = %s, want 0.31188", got)
	}
}

func TestDeriveRockBottomClampsToLow(t *testing.T) {
	// Scenario B: the persisted target can never exceed the best price ever
	// seen or the price just paid.
	up := UnitPrice(dec(t, "3.99"), dec(t, "16"))
	got := DeriveRockBottom(dec(t, "0.31188"), dec(t, "0.31188"), up)
	if !got.Equal(dec(t, "0.24938")) {
		t.Fatalf("rock bottom = %s, want 0.24938", got)
	}
}

func TestDeriveRockBottomKeepsStatedTarget(t *testing.T) {
	got := DeriveRockBottom(dec(t, "0.2"), decimal.Zero, dec(t, "0.31188"))
	if !got.Equal(dec(t, "0.2")) {
		t.Fatalf("rock bottom = %s, want stated target 0.2", got)
	}
}

func TestItemDefaults(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := fixture(t, "Oats", "0.31188", "0.31188", base)
	older.Unit = UnitPound
	newer := fixture(t, "Oats", "0.24938", "0.25", base.Add(time.Hour))
	newer.Unit = UnitOunce

	defaults, ok := ItemDefaults([]Purchase{newer, older}, "Oats", dec(t, "0.24938"))
	if !ok {
		t.Fatal("expected defaults for known item")
	}
	if defaults.Unit != UnitOunce {
		t.Fatalf("unit = %s, want the latest record's unit oz", defaults.Unit)
	}
	if !defaults.SuggestedTarget.Equal(dec(t, "0.2494")) {
		t.Fatalf("suggested target = %s, want 0.2494", defaults.SuggestedTarget)
	}
}

func TestItemDefaultsFallsBackToRecordTarget(t *testing.T) {
	p := fixture(t, "Oats", "0.31188", "0.25", time.Now())
	defaults, ok := ItemDefaults([]Purchase{p}, "Oats", decimal.Zero)
	if !ok {
		t.Fatal("expected defaults for known item")
	}
	if !defaults.SuggestedTarget.Equal(dec(t, "0.25")) {
		t.Fatalf("suggested target = %s, want record's own 0.25", defaults.SuggestedTarget)
	}
}

func TestItemDefaultsUnknownItem(t *testing.T) {
	if _, ok := ItemDefaults(nil, "Rice", decimal.Zero); ok {
		t.Fatal("unknown item must not produce defaults")
	}
}

func TestItemNamesSorted(t *testing.T) {
	base := time.Now()
	purchases := []Purchase{
		fixture(t, "Oats", "1", "1", base),
		fixture(t, "Milk", "1", "1", base),
		fixture(t, "Oats", "2", "1", base),
		fixture(t, "Apples", "1", "1", base),
	}
	names := ItemNames(purchases)
	want := []string{"Apples", "Milk", "Oats"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}
