package feed

// Column names the feed declares in its header row. Matching is
// case-sensitive; the vendor has never shipped a variant spelling.
const (
	colTimestamp  = "Timestamp"
	colTicker     = "Ticker"
	colType       = "Type"
	colSide       = "Side"
	colSecurityID = "SecurityID"
	colQuantity   = "Quantity"
	colPrice      = "Price"
)

// ColumnMap records where each known column appears in a feed file. Column
// order varies per file and is discovered once from the header row; an index
// of -1 means the column was not declared.
type ColumnMap struct {
	Timestamp  int
	Ticker     int
	Type       int
	Side       int
	SecurityID int
	Quantity   int
	Price      int

	// Required is the highest resolved index. Rows with fewer fields than
	// Required+1 cannot cover every known column and are rejected before
	// decoding. It stays -1 when no header was seen, which disables the
	// length check.
	Required int
}

// ResolveColumns locates the known column names in a header row. Unrecognized
// columns are ignored; the feed is free to intersperse additional ones.
func ResolveColumns(header []string) ColumnMap {
	m := ColumnMap{
		Timestamp:  -1,
		Ticker:     -1,
		Type:       -1,
		Side:       -1,
		SecurityID: -1,
		Quantity:   -1,
		Price:      -1,
		Required:   -1,
	}

	for i, name := range header {
		switch name {
		case colTimestamp:
			m.Timestamp = i
		case colTicker:
			m.Ticker = i
		case colType:
			m.Type = i
		case colSide:
			m.Side = i
		case colSecurityID:
			m.SecurityID = i
		case colQuantity:
			m.Quantity = i
		case colPrice:
			m.Price = i
		}
	}

	for _, idx := range []int{m.Timestamp, m.Ticker, m.Type, m.Side, m.SecurityID, m.Quantity, m.Price} {
		if idx > m.Required {
			m.Required = idx
		}
	}

	return m
}

// field returns the value at idx, or "" when the column was not resolved or
// the row is too short to contain it.
func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}
