// Package netting groups trades into netting sets and aggregates trade-level
// P&L along those groupings.
//
// Two topologies exist: bilateral (one set per counterparty, partitioning
// the book) and CCP (a single pooled set holding every trade). Set names are
// namespaced so the two constructions can never collide.
package netting

import (
	"sort"

	"github.com/marginlab/ccpmargin/internal/domain/models"
	"github.com/marginlab/ccpmargin/internal/logger"
)

const (
	bilateralPrefix = "BILAT::"
	// CCPSetName is the name of the single pooled netting set.
	CCPSetName = "CCP::ALL"
)

// BilateralSetName derives the deterministic set name for a counterparty.
func BilateralSetName(cpty string) string { return bilateralPrefix + cpty }

// BilateralSets partitions the book by counterparty. Sets come back sorted
// by name and members keep their input order, so the partition is stable
// across runs on the same trade table.
func BilateralSets(trades []models.Trade) []models.NettingSet {
	byCpty := make(map[string][]string)
	for _, tr := range trades {
		byCpty[tr.Counterparty] = append(byCpty[tr.Counterparty], tr.TradeID)
	}

	sets := make([]models.NettingSet, 0, len(byCpty))
	for cpty, ids := range byCpty {
		sets = append(sets, models.NettingSet{Name: BilateralSetName(cpty), TradeIDs: ids})
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].Name < sets[j].Name })
	return sets
}

// CCPSet pools every trade into the single CCP-wide set, regardless of
// counterparty.
func CCPSet(trades []models.Trade) models.NettingSet {
	ids := make([]string, len(trades))
	for i, tr := range trades {
		ids[i] = tr.TradeID
	}
	return models.NettingSet{Name: CCPSetName, TradeIDs: ids}
}

// Aggregate sums the member trade columns of each set for every date,
// producing one column per set in the given set order. Trade IDs absent
// from the P&L table contribute zero; they are logged, never fatal.
func Aggregate(pnl *models.PnLTable, sets []models.NettingSet) (*models.PnLTable, error) {
	out := models.NewPnLTable(pnl.Dates)
	for _, set := range sets {
		sum, skipped := pnl.SumColumns(set.TradeIDs)
		if len(skipped) > 0 {
			logger.L().Warn().
				Str("set", set.Name).
				Strs("trade_ids", skipped).
				Msg("trades absent from pnl table, excluded from aggregation")
		}
		if err := out.AddColumn(set.Name, sum); err != nil {
			return nil, err
		}
	}
	return out, nil
}
