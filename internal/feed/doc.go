// Package feed translates the vendor's delimited futures market-data files
// into canonical domain.Tick values.
//
// The feed is column-order-variable: each file declares its own column
// positions in a header row, which is resolved exactly once when a TickReader
// is constructed. Every subsequent line runs through classification
// (field-count, ticker, and instrument filters), message decoding (timestamp,
// type bitmask, quote side), and tick assembly (price descaling and contract
// multiplier). Lines failing any stage are skipped without interrupting the
// stream.
//
// Typical use:
//
//	r, err := feed.NewTickReader(src, resolver, feed.Options{Multipliers: mults})
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//	for r.Next() {
//	    handle(r.Tick())
//	}
//	if err := r.Err(); err != nil {
//	    return err
//	}
package feed
