package feed

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"fmdcli/pkg/contracts/domain"
)

// Resolver maps a raw feed ticker to its canonical instrument. A nil result
// means the ticker could not be resolved and the row is skipped.
type Resolver interface {
	Resolve(ticker string) *domain.Instrument
}

// Options configure a TickReader.
type Options struct {
	// Multipliers maps canonical root symbols to their contract price
	// multiplier. Instruments without an entry are skipped.
	Multipliers map[string]float64

	// Symbols optionally restricts output to the listed canonical roots.
	// Membership is case-insensitive; nil or empty means no restriction.
	Symbols []string

	// Logger receives row-level diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// TickReader translates one feed file into a forward-only sequence of
// canonical ticks. Column positions are resolved once from the header row at
// construction; each Next call then pulls raw lines until one survives
// classification and decoding, so malformed or out-of-scope rows never
// surface to the caller.
//
// A TickReader owns its source stream and is not safe for concurrent use.
// Restarting requires a fresh instance over a fresh stream.
type TickReader struct {
	src         io.ReadCloser
	csv         *csv.Reader
	cols        ColumnMap
	resolver    Resolver
	multipliers map[string]float64
	filter      map[string]struct{}
	logger      *slog.Logger

	cur    *domain.Tick
	err    error
	done   bool
	closed bool
}

// NewTickReader resolves the header row of src and returns a reader primed to
// iterate its events. A completely empty stream is not an error: the reader
// is exhausted immediately. Failures reading src itself are fatal and are
// returned here or from Err.
func NewTickReader(src io.ReadCloser, resolver Resolver, opts Options) (*TickReader, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var filter map[string]struct{}
	if len(opts.Symbols) > 0 {
		filter = make(map[string]struct{}, len(opts.Symbols))
		for _, s := range opts.Symbols {
			filter[strings.ToUpper(s)] = struct{}{}
		}
	}

	r := &TickReader{
		src:         src,
		csv:         cr,
		resolver:    resolver,
		multipliers: opts.Multipliers,
		filter:      filter,
		logger:      logger,
	}

	header, err := cr.Read()
	switch {
	case err == nil:
		r.cols = ResolveColumns(header)
	case errors.Is(err, io.EOF):
		// Missing header leaves every index unresolved. The minimum column
		// guard is disabled and each row rejects on the empty ticker field,
		// so the stream drains without producing ticks.
		r.cols = ResolveColumns(nil)
	default:
		src.Close()
		return nil, err
	}

	return r, nil
}

// Columns reports the column positions resolved from the header row.
func (r *TickReader) Columns() ColumnMap {
	return r.cols
}

// Next advances to the next valid tick. It returns false when the stream is
// exhausted or a stream-level read error occurred; check Err afterwards.
func (r *TickReader) Next() bool {
	if r.done {
		return false
	}

	for {
		rec, err := r.csv.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.cur = nil
				r.done = true
				return false
			}
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				r.logger.Warn("skipping unreadable feed line",
					slog.Int("line", parseErr.Line),
					slog.String("error", parseErr.Error()))
				continue
			}
			r.cur = nil
			r.err = err
			r.done = true
			return false
		}

		tick, ok := r.parseRecord(rec)
		if !ok {
			continue
		}
		r.cur = tick
		return true
	}
}

// Tick returns the tick produced by the last successful Next call. The value
// is owned by the caller; the reader keeps no reference to it.
func (r *TickReader) Tick() *domain.Tick {
	return r.cur
}

// Err returns the first stream-level error encountered, if any. Row-level
// parse failures are never reported here.
func (r *TickReader) Err() error {
	return r.err
}

// Close releases the underlying stream. It is safe to call more than once
// and safe to call before the stream is exhausted.
func (r *TickReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.done = true
	r.cur = nil
	return r.src.Close()
}

// parseRecord runs one raw row through classification, decoding, and
// assembly. ok is false whenever the row should produce no tick. A single
// bad line must never end the stream, so any panic out of the decode path is
// logged with the offending row and converted into a rejection.
func (r *TickReader) parseRecord(rec []string) (tick *domain.Tick, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("unexpected failure decoding feed line",
				slog.Any("panic", p),
				slog.String("line", strings.Join(rec, ",")))
			tick, ok = nil, false
		}
	}()

	if len(rec)-1 < r.cols.Required {
		return nil, false
	}

	ticker := field(rec, r.cols.Ticker)
	// Options and spread symbols embed a space or hyphen; this feed only
	// surfaces outright futures.
	if strings.ContainsAny(ticker, " -") {
		return nil, false
	}
	ticker = strings.Trim(ticker, `"'`)
	if ticker == "" {
		return nil, false
	}

	inst := r.resolver.Resolve(ticker)
	if inst == nil {
		return nil, false
	}

	multiplier, haveMultiplier := r.multipliers[inst.Symbol]
	if !haveMultiplier {
		return nil, false
	}

	if r.filter != nil {
		if _, allowed := r.filter[strings.ToUpper(inst.Symbol)]; !allowed {
			return nil, false
		}
	}

	ts, err := parseFeedTime(field(rec, r.cols.Timestamp))
	if err != nil {
		r.logger.Debug("skipping feed line with bad timestamp",
			slog.String("error", err.Error()),
			slog.String("line", strings.Join(rec, ",")))
		return nil, false
	}

	code, err := strconv.Atoi(field(rec, r.cols.Type))
	if err != nil {
		r.logger.Debug("skipping feed line with bad type field",
			slog.String("error", err.Error()),
			slog.String("line", strings.Join(rec, ",")))
		return nil, false
	}

	kind, known := classifyType(code)
	if !known {
		return nil, false
	}

	var isAsk bool
	if kind == domain.TickKindQuote {
		switch field(rec, r.cols.Side) {
		case "B":
			isAsk = false
		case "S":
			isAsk = true
		default:
			return nil, false
		}
	}

	quantity, err := strconv.ParseInt(field(rec, r.cols.Quantity), 10, 64)
	if err != nil {
		r.logger.Debug("skipping feed line with bad quantity",
			slog.String("error", err.Error()),
			slog.String("line", strings.Join(rec, ",")))
		return nil, false
	}

	var price float64
	if kind != domain.TickKindOpenInterest {
		raw, err := strconv.ParseFloat(field(rec, r.cols.Price), 64)
		if err != nil {
			r.logger.Debug("skipping feed line with bad price",
				slog.String("error", err.Error()),
				slog.String("line", strings.Join(rec, ",")))
			return nil, false
		}
		price = scaledPrice(raw, inst.Symbol, multiplier)
	}

	return assembleTick(*inst, ts, kind, isAsk, price, quantity), true
}
