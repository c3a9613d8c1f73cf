package feed

import (
	"fmt"
	"strconv"
	"time"

	"fmdcli/pkg/contracts/domain"
)

// The feed packs the message kind into the low four bits of the Type column.
// The remaining recognized values carry administrative messages the pipeline
// never surfaces as ticks.
const (
	typeMask         = 0b1111
	typeQuote        = 0b0001
	typeTrade        = 0b0010
	typeOpenInterest = 0b1011
)

// volatilityRoot is the one instrument class the feed transmits already
// scaled. Every other futures price arrives as an unscaled integer with ten
// implied decimal places.
const volatilityRoot = "VX"

const priceScale = 1e10

// feedTimeLayout covers the seconds-resolution prefix of the feed timestamp;
// the trailing three digits are milliseconds.
const feedTimeLayout = "20060102150405"

// parseFeedTime parses the fixed-width yyyyMMddHHmmssfff timestamp the feed
// uses. The value is feed-local wall time; no timezone conversion is applied.
func parseFeedTime(s string) (time.Time, error) {
	if len(s) != len(feedTimeLayout)+3 {
		return time.Time{}, fmt.Errorf("timestamp %q: want %d characters, got %d", s, len(feedTimeLayout)+3, len(s))
	}

	t, err := time.Parse(feedTimeLayout, s[:len(feedTimeLayout)])
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: %w", s, err)
	}

	ms, err := strconv.Atoi(s[len(feedTimeLayout):])
	if err != nil || ms < 0 {
		return time.Time{}, fmt.Errorf("timestamp %q: invalid millisecond field", s)
	}

	return t.Add(time.Duration(ms) * time.Millisecond), nil
}

// classifyType maps the masked Type field to a tick kind. ok is false for
// every masked value outside the three recognized codes.
func classifyType(code int) (kind domain.TickKind, ok bool) {
	switch code & typeMask {
	case typeTrade:
		return domain.TickKindTrade, true
	case typeQuote:
		return domain.TickKindQuote, true
	case typeOpenInterest:
		return domain.TickKindOpenInterest, true
	default:
		return "", false
	}
}

// scaledPrice converts a raw feed price field to the economically meaningful
// price for the instrument. The volatility-index future is transmitted
// already descaled; everything else carries ten implied decimal places.
func scaledPrice(raw float64, symbol string, multiplier float64) float64 {
	scale := float64(priceScale)
	if symbol == volatilityRoot {
		scale = 1
	}
	return raw / scale * multiplier
}

// assembleTick builds the canonical event for one accepted feed row.
func assembleTick(inst domain.Instrument, ts time.Time, kind domain.TickKind, isAsk bool, price float64, quantity int64) *domain.Tick {
	tick := &domain.Tick{
		Instrument: inst,
		Time:       ts,
		Kind:       kind,
	}

	switch kind {
	case domain.TickKindTrade:
		tick.Value = price
		tick.Quantity = quantity
	case domain.TickKindQuote:
		tick.Value = price
		if isAsk {
			tick.AskPrice = price
			tick.AskSize = quantity
		} else {
			tick.BidPrice = price
			tick.BidSize = quantity
		}
	case domain.TickKindOpenInterest:
		tick.Value = float64(quantity)
		tick.Exchange = inst.Market
	}

	return tick
}
