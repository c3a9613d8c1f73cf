// Package securities resolves raw feed tickers to canonical instruments and
// loads the per-contract reference data (price multipliers, listing markets)
// the feed translation depends on.
package securities
