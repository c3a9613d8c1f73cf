package exporter

import (
	"fmt"
	"sort"
	"strconv"

	"fmdcli/internal/config"
	"fmdcli/pkg/contracts/domain"
)

// TickSource is a forward-only sequence of ticks, typically a
// feed.TickReader.
type TickSource interface {
	Next() bool
	Tick() *domain.Tick
	Err() error
}

// tickHeaders is the column layout of exported tick files.
var tickHeaders = []string{
	"time", "symbol", "ticker", "kind", "value",
	"bid_price", "bid_size", "ask_price", "ask_size",
	"quantity", "exchange",
}

// tickTimeLayout preserves millisecond feed precision in exports.
const tickTimeLayout = "2006-01-02 15:04:05.000"

// TickExporter streams canonical ticks out to CSV reports.
type TickExporter struct {
	csvWriter *CSVWriter
}

// NewTickExporter creates a new tick exporter.
func NewTickExporter(paths *config.Paths) *TickExporter {
	return &TickExporter{csvWriter: NewCSVWriter(paths)}
}

// ExportStream drains src into the named report file, one row per tick, and
// returns per-symbol tick counts. The source is consumed exactly once; a
// stream-level source error aborts the export.
func (e *TickExporter) ExportStream(src TickSource, name string) (map[string]int, error) {
	out, err := e.csvWriter.CreateStreamWriter(name, tickHeaders)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	counts := make(map[string]int)
	for src.Next() {
		tick := src.Tick()
		if err := out.WriteRecord(tickRecord(tick)); err != nil {
			return nil, fmt.Errorf("failed to write tick: %w", err)
		}
		counts[tick.Instrument.Symbol]++
	}
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("feed stream failed: %w", err)
	}

	if err := out.Close(); err != nil {
		return nil, err
	}
	return counts, nil
}

// WriteSummary writes a per-symbol tick-count report sorted by symbol.
func (e *TickExporter) WriteSummary(counts map[string]int, name string) error {
	symbols := make([]string, 0, len(counts))
	for symbol := range counts {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	records := make([][]string, 0, len(symbols))
	for _, symbol := range symbols {
		records = append(records, []string{symbol, strconv.Itoa(counts[symbol])})
	}

	return e.csvWriter.WriteSimpleCSV(name, []string{"symbol", "ticks"}, records)
}

func tickRecord(t *domain.Tick) []string {
	rec := make([]string, 0, len(tickHeaders))
	rec = append(rec,
		t.Time.Format(tickTimeLayout),
		t.Instrument.Symbol,
		t.Instrument.Ticker,
		string(t.Kind),
		strconv.FormatFloat(t.Value, 'f', -1, 64),
	)

	switch t.Kind {
	case domain.TickKindQuote:
		rec = append(rec,
			formatPrice(t.BidPrice), formatSize(t.BidSize),
			formatPrice(t.AskPrice), formatSize(t.AskSize),
			"", "")
	case domain.TickKindTrade:
		rec = append(rec, "", "", "", "", strconv.FormatInt(t.Quantity, 10), "")
	case domain.TickKindOpenInterest:
		rec = append(rec, "", "", "", "", "", t.Exchange)
	default:
		rec = append(rec, "", "", "", "", "", "")
	}

	return rec
}

// formatPrice renders unset quote sides as empty cells rather than zeros.
func formatPrice(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatSize(v int64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatInt(v, 10)
}
