package app

import (
	"context"
	"encoding/csv"
	"errors"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	chart "github.com/wcharczuk/go-chart/v2"

	"rockbottom/internal/pricing"
)

// Export renders one item's unit-price history as CSV and/or PNG.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	if opts.Item == "" {
		return errors.New("--item is required")
	}
	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}

	opts.MaxPoints = a.Config.ResolveMaxPoints(opts.MaxPoints)

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

	low := pricing.HistoricalLow(purchases, opts.Item)

	history := make([]pricing.Purchase, 0, len(purchases))
	for _, p := range purchases {
		if p.Name == opts.Item {
			history = append(history, p)
		}
	}
	if len(history) == 0 {
		a.Logger.Info().Str("item", opts.Item).Msg("no purchases found for item")
		return nil
	}

	// store.List is newest first; charts and CSV read oldest first.
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}

	downsampled := downsampleHistory(history, opts.MaxPoints)
	a.Logger.Info().Int("total", len(history)).Int("exported", len(downsampled)).Msg("exporting purchases")

	if opts.CSVPath != "" {
		if err := writeHistoryCSV(opts.CSVPath, downsampled, low); err != nil {
			return err
		}
	}

	if opts.PNGPath != "" {
		if err := writeHistoryPNG(opts.PNGPath, opts.Item, downsampled); err != nil {
			return err
		}
	}

	return nil
}

func downsampleHistory(history []pricing.Purchase, max int) []pricing.Purchase {
	if max <= 0 || len(history) <= max {
		return history
	}
	// A single point has no step; keep the most recent entry.
	if max == 1 {
		return history[len(history)-1:]
	}

	result := make([]pricing.Purchase, 0, max)
	step := float64(len(history)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		idx := int(math.Round(step * float64(i)))
		if idx >= len(history) {
			idx = len(history) - 1
		}
		result = append(result, history[idx])
	}
	return result
}

func writeHistoryCSV(path string, history []pricing.Purchase, low decimal.Decimal) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"timestamp", "store", "price", "quantity", "unit", "unit_price", "rock_bottom_price", "deal"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, p := range history {
		record := []string{
			p.Timestamp.UTC().Format(time.RFC3339),
			p.Store,
			p.Price.String(),
			p.Quantity.String(),
			string(p.Unit),
			p.UnitPrice.String(),
			p.RockBottomPrice.String(),
			string(pricing.ClassifyDeal(p, low)),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

func writeHistoryPNG(path, item string, history []pricing.Purchase) error {
	if len(history) < 2 {
		return errors.New("need at least two purchases to render a chart")
	}
	if err := ensureDir(path); err != nil {
		return err
	}

	x := make([]time.Time, len(history))
	unitPrices := make([]float64, len(history))
	targets := make([]float64, len(history))

	for i, p := range history {
		x[i] = p.Timestamp
		unitPrices[i] = p.UnitPrice.InexactFloat64()
		targets[i] = p.RockBottomPrice.InexactFloat64()
	}

	priceFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.4f")
	}
	graph := chart.Chart{
		Title:  item,
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Unit price",
			ValueFormatter: priceFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Unit price",
				XValues: x,
				YValues: unitPrices,
			},
			chart.TimeSeries{
				Name:    "Rock bottom",
				XValues: x,
				YValues: targets,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
