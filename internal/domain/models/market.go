package models

import (
	"fmt"
	"time"
)

// MarketTable is a dated set of named numeric series sharing one date axis:
// the rates table (columns rate_2y, rate_5y, rate_10y) and the FX table
// (one column per currency pair) are both instances of it.
//
// The date axis is established once at load time and treated as read-only
// for the remainder of a run.
type MarketTable struct {
	Dates   []time.Time
	Columns map[string][]float64
}

// Column returns the series stored under name, or false when absent.
func (m *MarketTable) Column(name string) ([]float64, bool) {
	s, ok := m.Columns[name]
	return s, ok
}

// Len returns the number of dates on the axis.
func (m *MarketTable) Len() int { return len(m.Dates) }

// Validate enforces the table invariants: at least one row, strictly
// increasing deduplicated dates, and every column as long as the axis.
func (m *MarketTable) Validate() error {
	if len(m.Dates) == 0 {
		return fmt.Errorf("market table has no rows")
	}
	for i := 1; i < len(m.Dates); i++ {
		if !m.Dates[i].After(m.Dates[i-1]) {
			return fmt.Errorf("market table dates not strictly increasing at row %d (%s -> %s)",
				i, m.Dates[i-1].Format("2006-01-02"), m.Dates[i].Format("2006-01-02"))
		}
	}
	for name, col := range m.Columns {
		if len(col) != len(m.Dates) {
			return fmt.Errorf("market column %s has %d values for %d dates", name, len(col), len(m.Dates))
		}
	}
	return nil
}

// IndexOf returns the row index of d on the date axis, or -1.
func (m *MarketTable) IndexOf(d time.Time) int {
	for i, x := range m.Dates {
		if x.Equal(d) {
			return i
		}
	}
	return -1
}
