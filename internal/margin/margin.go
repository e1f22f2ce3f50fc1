// Package margin converts netting-set P&L series into liquidity and capital
// metrics: variation-margin outflows, a historical-simulation VaR proxy for
// initial margin, concentration add-ons, worst-window liquidity draws and
// the bilateral-vs-CCP collateral delta.
package margin

import (
	"math"
	"sort"
)

const (
	// DefaultConfidence is the HS-VaR quantile level.
	DefaultConfidence = 0.99
	// DefaultHorizonDays is the liquidation horizon; the 1-day quantile is
	// scaled by sqrt(horizon) under an i.i.d. daily P&L assumption. A known
	// simplification, not a statistical guarantee.
	DefaultHorizonDays = 10
	// LiquidityWindow is the trailing window for the worst-draw metric.
	LiquidityWindow = 5

	// minObservations is the point below which the estimator degrades to a
	// zero estimate instead of failing the run.
	minObservations = 10
	// smallSampleCutoff switches the quantile estimator: nearest-rank below,
	// linear interpolation at or above. The discontinuity at the boundary is
	// a known estimator artifact, preserved deliberately.
	smallSampleCutoff = 50
)

// VMOutflows maps a P&L series to daily cash-margin calls: max(-pnl, 0).
// A call only occurs on a loss day; gains never produce negative outflow.
func VMOutflows(pnl []float64) []float64 {
	out := make([]float64, len(pnl))
	for i, p := range pnl {
		if math.IsNaN(p) {
			continue
		}
		if p < 0 {
			out[i] = -p
		}
	}
	return out
}

// VaRResult is an IM estimate plus the degenerate-statistics flag. A zero
// value with Degraded set means "too few observations", not "no risk".
type VaRResult struct {
	Value    float64
	Degraded bool
}

// HSVaR estimates initial margin as a historical-simulation VaR: the
// confidence-level quantile of observed losses (-pnl, NaN dropped), scaled
// from one day to the liquidation horizon by sqrt(horizon).
//
// Fewer than 10 usable observations degrade to a zero estimate with the
// flag set; the caller surfaces that rather than treating it as zero risk.
func HSVaR(pnl []float64, confidence float64, horizonDays int) VaRResult {
	losses := make([]float64, 0, len(pnl))
	for _, p := range pnl {
		if math.IsNaN(p) {
			continue
		}
		losses = append(losses, -p)
	}
	if len(losses) < minObservations {
		return VaRResult{Value: 0, Degraded: true}
	}

	var q float64
	if len(losses) < smallSampleCutoff {
		q = quantileNearestRank(losses, confidence)
	} else {
		q = quantileLinear(losses, confidence)
	}
	return VaRResult{Value: q * math.Sqrt(float64(horizonDays))}
}

// quantileNearestRank picks the smallest sorted value whose rank covers p.
// No interpolation; used for small samples.
func quantileNearestRank(xs []float64, p float64) float64 {
	s := sortedCopy(xs)
	idx := int(math.Ceil(p*float64(len(s)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s) {
		idx = len(s) - 1
	}
	return s[idx]
}

// quantileLinear interpolates linearly between the order statistics that
// bracket h = (n-1)p.
func quantileLinear(xs []float64, p float64) float64 {
	s := sortedCopy(xs)
	if len(s) == 1 {
		return s[0]
	}
	h := p * float64(len(s)-1)
	lo := int(math.Floor(h))
	if lo >= len(s)-1 {
		return s[len(s)-1]
	}
	frac := h - float64(lo)
	return s[lo] + frac*(s[lo+1]-s[lo])
}

func sortedCopy(xs []float64) []float64 {
	s := make([]float64, len(xs))
	copy(s, xs)
	sort.Float64s(s)
	return s
}

// WorstWindow returns the maximum trailing sum of outflows over the given
// window. Series shorter than the window have no complete window and yield
// NaN; incomplete leading windows are never candidates for the maximum.
func WorstWindow(outflows []float64, window int) float64 {
	if window <= 0 || len(outflows) < window {
		return math.NaN()
	}
	var sum float64
	for i := 0; i < window; i++ {
		sum += outflows[i]
	}
	worst := sum
	for i := window; i < len(outflows); i++ {
		sum += outflows[i] - outflows[i-window]
		if sum > worst {
			worst = sum
		}
	}
	return worst
}

// NettingEfficiency is 1 - ccp/bilateral, the fraction of bilateral IM that
// central clearing removes. Undefined (NaN) when bilateral IM is zero.
func NettingEfficiency(imBilateral, imCCP float64) float64 {
	if imBilateral == 0 {
		return math.NaN()
	}
	return 1 - imCCP/imBilateral
}

// CollateralDelta is the net collateral added (positive) or saved (negative)
// by moving the book from bilateral settlement to a CCP.
func CollateralDelta(imCCP, vmCCPTotal, imBilateral, vmBilateralTotal float64) float64 {
	return (imCCP + vmCCPTotal) - (imBilateral + vmBilateralTotal)
}

// Sum is a plain total of a series, NaN observations excluded.
func Sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		total += x
	}
	return total
}
