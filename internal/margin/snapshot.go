package margin

import (
	"math"
	"sort"

	"github.com/marginlab/ccpmargin/internal/domain/models"
	"github.com/marginlab/ccpmargin/internal/logger"
	"github.com/marginlab/ccpmargin/internal/netting"
)

// BuildSnapshot derives the full margin picture from the aggregated set P&L
// under both topologies. Bilateral IM is the plain sum of per-set IMs: the
// relationships are contractually isolated, so no diversification is given
// between counterparties. CCP IM is the IM of the single pooled series,
// where offsetting trades cancel before the quantile is taken.
//
// The trade book is only consulted for the concentration add-on, which
// needs absolute notionals per counterparty.
func BuildSnapshot(bilPnL, ccpPnL *models.PnLTable, trades []models.Trade, sc models.Scenario) models.MarginSnapshot {
	// Per-set bilateral IM in sorted set order; any degraded member flags
	// the bilateral total.
	var imBilateral float64
	bilDegraded := false
	for _, name := range bilPnL.Names() {
		series, _ := bilPnL.Column(name)
		res := HSVaR(series, DefaultConfidence, DefaultHorizonDays)
		if res.Degraded {
			bilDegraded = true
			logger.L().Warn().Str("set", name).Msg("too few observations, IM degraded to zero")
		}
		imBilateral += res.Value
	}

	ccpSeries, _ := ccpPnL.Column(netting.CCPSetName)
	ccpRes := HSVaR(ccpSeries, DefaultConfidence, DefaultHorizonDays)
	imCCP := ccpRes.Value
	if ccpRes.Degraded {
		logger.L().Warn().Str("set", netting.CCPSetName).Msg("too few observations, IM degraded to zero")
	}

	if sc.AddonActive() {
		imBilateral *= bilateralAddonFactor(trades, sc)
		if totalAbsNotional(trades) > sc.ConcThreshold {
			imCCP *= 1 + sc.ConcAddonPct
		}
	}

	// VM paths: per-set outflows summed across bilateral sets, pooled
	// outflows for the CCP.
	vmBilateral := make([]float64, len(bilPnL.Dates))
	for _, name := range bilPnL.Names() {
		series, _ := bilPnL.Column(name)
		for i, v := range VMOutflows(series) {
			vmBilateral[i] += v
		}
	}
	vmCCP := VMOutflows(ccpSeries)

	vmBilateralTotal := Sum(vmBilateral)
	vmCCPTotal := Sum(vmCCP)

	return models.MarginSnapshot{
		IMBilateral:              imBilateral,
		IMCCP:                    imCCP,
		NettingEfficiency:        NettingEfficiency(imBilateral, imCCP),
		VMBilateralTotal:         vmBilateralTotal,
		VMCCPTotal:               vmCCPTotal,
		CollateralDelta:          CollateralDelta(imCCP, vmCCPTotal, imBilateral, vmBilateralTotal),
		Worst5LiquidityBilateral: WorstWindow(vmBilateral, LiquidityWindow),
		Worst5LiquidityCCP:       WorstWindow(vmCCP, LiquidityWindow),
		IMBilateralDegraded:      bilDegraded,
		IMCCPDegraded:            ccpRes.Degraded,
		Scenario:                 sc,
	}
}

// bilateralAddonFactor compounds (1+addon) once per counterparty whose
// absolute notional breaches the threshold. Compounding is multiplicative
// and uncapped across breaching counterparties.
func bilateralAddonFactor(trades []models.Trade, sc models.Scenario) float64 {
	byCpty := make(map[string]float64)
	for _, tr := range trades {
		byCpty[tr.Counterparty] += math.Abs(tr.Notional)
	}

	cptys := make([]string, 0, len(byCpty))
	for c := range byCpty {
		cptys = append(cptys, c)
	}
	sort.Strings(cptys)

	factor := 1.0
	for _, c := range cptys {
		if byCpty[c] > sc.ConcThreshold {
			factor *= 1 + sc.ConcAddonPct
			logger.L().Info().
				Str("cpty", c).
				Float64("abs_notional", byCpty[c]).
				Float64("threshold", sc.ConcThreshold).
				Msg("concentration add-on applied")
		}
	}
	return factor
}

func totalAbsNotional(trades []models.Trade) float64 {
	var total float64
	for _, tr := range trades {
		total += math.Abs(tr.Notional)
	}
	return total
}
