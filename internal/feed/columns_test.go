package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveColumns(t *testing.T) {
	header := []string{"Timestamp", "Ticker", "Type", "Side", "SecurityID", "Quantity", "Price"}

	cols := ResolveColumns(header)

	assert.Equal(t, 0, cols.Timestamp)
	assert.Equal(t, 1, cols.Ticker)
	assert.Equal(t, 2, cols.Type)
	assert.Equal(t, 3, cols.Side)
	assert.Equal(t, 4, cols.SecurityID)
	assert.Equal(t, 5, cols.Quantity)
	assert.Equal(t, 6, cols.Price)
	assert.Equal(t, 6, cols.Required)
}

func TestResolveColumnsReordered(t *testing.T) {
	// Column order varies per file and unknown columns may be interspersed.
	header := []string{"Exchange", "Price", "Timestamp", "Flags", "Ticker", "Quantity", "Type", "Side", "SecurityID"}

	cols := ResolveColumns(header)

	assert.Equal(t, 2, cols.Timestamp)
	assert.Equal(t, 4, cols.Ticker)
	assert.Equal(t, 6, cols.Type)
	assert.Equal(t, 7, cols.Side)
	assert.Equal(t, 8, cols.SecurityID)
	assert.Equal(t, 5, cols.Quantity)
	assert.Equal(t, 1, cols.Price)
	assert.Equal(t, 8, cols.Required)
}

func TestResolveColumnsMissingColumn(t *testing.T) {
	header := []string{"Timestamp", "Ticker", "Type", "Quantity", "Price"}

	cols := ResolveColumns(header)

	assert.Equal(t, -1, cols.Side)
	assert.Equal(t, -1, cols.SecurityID)
	assert.Equal(t, 4, cols.Required)
}

func TestResolveColumnsCaseSensitive(t *testing.T) {
	cols := ResolveColumns([]string{"timestamp", "TICKER", "type"})

	assert.Equal(t, -1, cols.Timestamp)
	assert.Equal(t, -1, cols.Ticker)
	assert.Equal(t, -1, cols.Type)
	assert.Equal(t, -1, cols.Required)
}

func TestResolveColumnsEmptyHeader(t *testing.T) {
	cols := ResolveColumns(nil)

	assert.Equal(t, -1, cols.Timestamp)
	assert.Equal(t, -1, cols.Ticker)
	assert.Equal(t, -1, cols.Required)
}

func TestField(t *testing.T) {
	rec := []string{"a", "b", "c"}

	assert.Equal(t, "b", field(rec, 1))
	assert.Equal(t, "", field(rec, -1))
	assert.Equal(t, "", field(rec, 3))
}
