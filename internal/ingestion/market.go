package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/marginlab/ccpmargin/internal/curve"
	"github.com/marginlab/ccpmargin/internal/domain/models"
)

// ratesHeaders enforces strict column ordering for the rates CSV. If the
// header doesn't match exactly (order + count), ingestion must fail.
var ratesHeaders = []string{"date", curve.Col2Y, curve.Col5Y, curve.Col10Y}

var pairPattern = regexp.MustCompile(`^[A-Z]{6}$`)

// ReadRates parses the rates CSV (date, rate_2y, rate_5y, rate_10y; rates
// as decimals, not percentages). Empty cells are forward-filled from the
// previous row; a leading empty cell is fatal because there is nothing to
// fill from.
func ReadRates(r io.Reader) (*models.MarketTable, error) {
	return readMarketCSV(r, func(header []string) error {
		if len(header) != len(ratesHeaders) {
			return fmt.Errorf("invalid header length: expected %d, got %d", len(ratesHeaders), len(header))
		}
		for i, h := range header {
			if strings.TrimSpace(h) != ratesHeaders[i] {
				return fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, ratesHeaders[i], h)
			}
		}
		return nil
	}, func(name string) string { return name })
}

// ReadFX parses the FX CSV: a date column followed by one column per
// currency pair (6-letter codes, normalized to upper case).
func ReadFX(r io.Reader) (*models.MarketTable, error) {
	return readMarketCSV(r, func(header []string) error {
		if len(header) < 2 {
			return fmt.Errorf("fx csv needs a date column and at least one pair column")
		}
		if strings.TrimSpace(header[0]) != "date" {
			return fmt.Errorf("first fx column must be %q, got %q", "date", header[0])
		}
		for _, h := range header[1:] {
			pair := strings.ToUpper(strings.TrimSpace(h))
			if !pairPattern.MatchString(pair) {
				return fmt.Errorf("invalid currency pair column %q", h)
			}
		}
		return nil
	}, func(name string) string { return strings.ToUpper(name) })
}

// readMarketCSV is the shared dated-table reader: header validation hook,
// dateparse for the date column, float cells with forward-fill, and the
// strictly-increasing date invariant checked at the end.
func readMarketCSV(r io.Reader, checkHeader func([]string) error, colName func(string) string) (*models.MarketTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	names := make([]string, len(header)-1)
	for i, h := range header[1:] {
		names[i] = colName(strings.TrimSpace(h))
	}

	table := &models.MarketTable{Columns: make(map[string][]float64, len(names))}
	for _, n := range names {
		table.Columns[n] = nil
	}

	line := 1
	for {
		rec, err := cr.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read line after %d: %w", line, err)
		}
		line++

		if len(rec) != len(header) {
			return nil, fmt.Errorf("invalid column count on line %d: expected %d got %d", line, len(header), len(rec))
		}

		d, err := dateparse.ParseAny(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid date on line %d: %v", line, err)
		}
		table.Dates = append(table.Dates, d.UTC().Truncate(24*time.Hour))

		for i, n := range names {
			cell := strings.TrimSpace(rec[i+1])
			if cell == "" {
				// forward-fill from the previous observation
				prev := table.Columns[n]
				if len(prev) == 0 {
					return nil, fmt.Errorf("column %s empty on line %d with no prior value to fill from", n, line)
				}
				table.Columns[n] = append(prev, prev[len(prev)-1])
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value %q for column %s on line %d", cell, n, line)
			}
			table.Columns[n] = append(table.Columns[n], v)
		}
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}
