package securities

import (
	"strings"
	"time"

	"fmdcli/pkg/contracts/domain"
)

// monthCodes maps the standard futures delivery-month letters.
var monthCodes = map[byte]time.Month{
	'F': time.January,
	'G': time.February,
	'H': time.March,
	'J': time.April,
	'K': time.May,
	'M': time.June,
	'N': time.July,
	'Q': time.August,
	'U': time.September,
	'V': time.October,
	'X': time.November,
	'Z': time.December,
}

// defaultMarkets maps the canonical roots this pipeline knows about to their
// listing market.
var defaultMarkets = map[string]string{
	"ES":  "CME",
	"NQ":  "CME",
	"RTY": "CME",
	"6E":  "CME",
	"6J":  "CME",
	"6B":  "CME",
	"YM":  "CBOT",
	"ZB":  "CBOT",
	"ZN":  "CBOT",
	"ZF":  "CBOT",
	"ZC":  "CBOT",
	"ZS":  "CBOT",
	"ZW":  "CBOT",
	"CL":  "NYMEX",
	"NG":  "NYMEX",
	"HO":  "NYMEX",
	"RB":  "NYMEX",
	"GC":  "COMEX",
	"SI":  "COMEX",
	"HG":  "COMEX",
	"VX":  "CFE",
}

// Resolver parses raw feed tickers into canonical instruments. Roots outside
// its market table are treated as unknown instruments.
type Resolver struct {
	markets map[string]string
}

// NewResolver returns a resolver over the default market table.
func NewResolver() *Resolver {
	return &Resolver{markets: defaultMarkets}
}

// NewResolverWithMarkets returns a resolver over a caller-supplied
// root-to-market table.
func NewResolverWithMarkets(markets map[string]string) *Resolver {
	return &Resolver{markets: markets}
}

// Resolve parses a raw ticker such as "ESU3" or "VXF24" into its canonical
// instrument: root symbol, delivery month code, and one- or two-digit year.
// It returns nil when the ticker does not parse or the root is unknown.
func (r *Resolver) Resolve(ticker string) *domain.Instrument {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if len(ticker) < 3 {
		return nil
	}

	// Year digits sit at the tail: one digit (decade-relative) or two
	// (century-relative).
	yearDigits := 0
	for yearDigits < 2 && yearDigits < len(ticker) {
		c := ticker[len(ticker)-1-yearDigits]
		if c < '0' || c > '9' {
			break
		}
		yearDigits++
	}
	if yearDigits == 0 || len(ticker) < yearDigits+2 {
		return nil
	}

	monthCode := ticker[len(ticker)-yearDigits-1]
	month, ok := monthCodes[monthCode]
	if !ok {
		return nil
	}

	root := ticker[:len(ticker)-yearDigits-1]
	market, ok := r.markets[root]
	if !ok {
		return nil
	}

	year := 0
	for i := len(ticker) - yearDigits; i < len(ticker); i++ {
		year = year*10 + int(ticker[i]-'0')
	}
	if yearDigits == 1 {
		year += 2020
	} else {
		year += 2000
	}

	return &domain.Instrument{
		Symbol:      root,
		Market:      market,
		Ticker:      ticker,
		ExpiryMonth: month,
		ExpiryYear:  year,
	}
}
