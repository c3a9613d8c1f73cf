package domain

import (
	"time"
)

// TickKind identifies which kind of market event a Tick carries.
type TickKind string

const (
	TickKindTrade        TickKind = "trade"
	TickKindQuote        TickKind = "quote"
	TickKindOpenInterest TickKind = "open_interest"
)

// Instrument is the canonical identity of a futures contract as resolved
// from a raw feed ticker.
type Instrument struct {
	Symbol      string     `json:"symbol"`       // canonical root, e.g. "ES"
	Market      string     `json:"market"`       // listing market, e.g. "CME"
	Ticker      string     `json:"ticker"`       // raw feed ticker, e.g. "ESU3"
	ExpiryMonth time.Month `json:"expiry_month"`
	ExpiryYear  int        `json:"expiry_year"`
}

// String returns the raw feed ticker.
func (i Instrument) String() string {
	return i.Ticker
}

// Tick represents a single normalized market event (trade, one-sided quote
// update, or open-interest snapshot) for one instrument at one instant.
//
// Value is the scaled, multiplier-adjusted price for trades and quotes, or
// the raw quantity for open interest. Exactly one quote side is populated
// per tick; a single feed line never carries both sides.
type Tick struct {
	Instrument Instrument `json:"instrument"`
	Time       time.Time  `json:"time"`
	Kind       TickKind   `json:"kind"`
	Value      float64    `json:"value"`
	BidPrice   float64    `json:"bid_price,omitempty"`
	BidSize    int64      `json:"bid_size,omitempty"`
	AskPrice   float64    `json:"ask_price,omitempty"`
	AskSize    int64      `json:"ask_size,omitempty"`
	Quantity   int64      `json:"quantity,omitempty"`
	Exchange   string     `json:"exchange,omitempty"`
}
