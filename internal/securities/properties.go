package securities

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "fmdcli/internal/errors"
)

// Property holds per-contract reference data keyed by canonical root symbol.
type Property struct {
	Symbol      string
	Market      string
	Multiplier  float64
	Description string
}

// PropertyTable is the loaded reference data for every known contract.
type PropertyTable map[string]Property

// Multipliers projects the table down to the symbol-to-multiplier map the
// feed reader consumes. Entries without a positive multiplier are dropped.
func (t PropertyTable) Multipliers() map[string]float64 {
	m := make(map[string]float64, len(t))
	for symbol, p := range t {
		if p.Multiplier > 0 {
			m[symbol] = p.Multiplier
		}
	}
	return m
}

// Markets projects the table down to a symbol-to-market map usable as a
// resolver market table.
func (t PropertyTable) Markets() map[string]string {
	m := make(map[string]string, len(t))
	for symbol, p := range t {
		if p.Market != "" {
			m[symbol] = p.Market
		}
	}
	return m
}

// LoadProperties reads a contract reference-data file, dispatching on the
// file extension: .xlsx workbooks and plain CSV are supported.
func LoadProperties(path string) (PropertyTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return LoadPropertiesWorkbook(path)
	case ".csv":
		return LoadPropertiesCSV(path)
	default:
		return nil, apperrors.NewConfigError(fmt.Sprintf("unsupported properties file %q", path), nil)
	}
}

// LoadPropertiesWorkbook reads contract reference data from an Excel
// workbook. The sheet and header row are discovered rather than assumed: the
// first row on any sheet containing both a "Symbol" and a "Multiplier"
// column is taken as the header, and column positions are mapped from it.
func LoadPropertiesWorkbook(path string) (PropertyTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to open properties workbook %q", path), err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		headerRow, cols := findPropertyHeader(rows)
		if headerRow < 0 {
			continue
		}

		slog.Debug("found properties header",
			slog.String("sheet", sheet),
			slog.Int("row", headerRow))

		table := make(PropertyTable)
		for _, row := range rows[headerRow+1:] {
			p, ok := propertyFromRow(row, cols)
			if !ok {
				continue
			}
			table[p.Symbol] = p
		}
		return table, nil
	}

	return nil, apperrors.NewParsingError(fmt.Sprintf("no symbol/multiplier header found in %q", path), nil)
}

// LoadPropertiesCSV reads contract reference data from a CSV file with the
// same header-discovery rules as the workbook loader.
func LoadPropertiesCSV(path string) (PropertyTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to open properties file %q", path), err)
	}
	defer file.Close()

	cr := csv.NewReader(file)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read properties file %q", path), err)
	}

	headerRow, cols := findPropertyHeader(rows)
	if headerRow < 0 {
		return nil, apperrors.NewParsingError(fmt.Sprintf("no symbol/multiplier header found in %q", path), nil)
	}

	table := make(PropertyTable)
	for _, row := range rows[headerRow+1:] {
		p, ok := propertyFromRow(row, cols)
		if !ok {
			continue
		}
		table[p.Symbol] = p
	}
	return table, nil
}

// propertyColumns records where each reference-data column appears; -1 means
// the column is absent.
type propertyColumns struct {
	symbol      int
	market      int
	multiplier  int
	description int
}

func findPropertyHeader(rows [][]string) (int, propertyColumns) {
	for i, row := range rows {
		cols := propertyColumns{symbol: -1, market: -1, multiplier: -1, description: -1}
		for j, cell := range row {
			switch strings.ToLower(strings.TrimSpace(cell)) {
			case "symbol":
				cols.symbol = j
			case "market", "exchange":
				cols.market = j
			case "multiplier", "price multiplier":
				cols.multiplier = j
			case "description":
				cols.description = j
			}
		}
		if cols.symbol >= 0 && cols.multiplier >= 0 {
			return i, cols
		}
	}
	return -1, propertyColumns{}
}

func propertyFromRow(row []string, cols propertyColumns) (Property, bool) {
	cell := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	symbol := strings.ToUpper(cell(cols.symbol))
	if symbol == "" {
		return Property{}, false
	}

	multiplier, err := strconv.ParseFloat(strings.ReplaceAll(cell(cols.multiplier), ",", ""), 64)
	if err != nil {
		return Property{}, false
	}

	return Property{
		Symbol:      symbol,
		Market:      strings.ToUpper(cell(cols.market)),
		Multiplier:  multiplier,
		Description: cell(cols.description),
	}, true
}
