package models

import (
	"fmt"
	"time"
)

// PnLTable holds signed daily P&L series, one named column per trade or per
// netting set, all aligned on a shared date axis. Column order is explicit
// so downstream aggregation is deterministic regardless of map iteration.
type PnLTable struct {
	Dates   []time.Time
	names   []string
	columns map[string][]float64
}

// NewPnLTable creates an empty table over the given date axis.
func NewPnLTable(dates []time.Time) *PnLTable {
	return &PnLTable{
		Dates:   dates,
		columns: make(map[string][]float64),
	}
}

// AddColumn appends a named series. The series must match the axis length;
// re-adding an existing name is a programming error and rejected.
func (p *PnLTable) AddColumn(name string, series []float64) error {
	if len(series) != len(p.Dates) {
		return fmt.Errorf("pnl column %s has %d values for %d dates", name, len(series), len(p.Dates))
	}
	if _, ok := p.columns[name]; ok {
		return fmt.Errorf("pnl column %s already present", name)
	}
	p.names = append(p.names, name)
	p.columns[name] = series
	return nil
}

// Names returns the column names in insertion order.
func (p *PnLTable) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Column returns the series stored under name, or false when absent.
func (p *PnLTable) Column(name string) ([]float64, bool) {
	s, ok := p.columns[name]
	return s, ok
}

// Scale returns a new table with every observation multiplied by k.
// The receiver is left untouched; stages never mutate their inputs.
func (p *PnLTable) Scale(k float64) *PnLTable {
	out := NewPnLTable(p.Dates)
	for _, name := range p.names {
		src := p.columns[name]
		dst := make([]float64, len(src))
		for i, v := range src {
			dst[i] = v * k
		}
		out.names = append(out.names, name)
		out.columns[name] = dst
	}
	return out
}

// SumColumns sums the named columns date by date. Names absent from the
// table contribute zero; the skipped names are returned so the caller can
// log them. An all-zero series is returned even when every name is missing.
func (p *PnLTable) SumColumns(names []string) (sum []float64, skipped []string) {
	sum = make([]float64, len(p.Dates))
	for _, name := range names {
		col, ok := p.columns[name]
		if !ok {
			skipped = append(skipped, name)
			continue
		}
		for i, v := range col {
			sum[i] += v
		}
	}
	return sum, skipped
}
