// Package pricing turns trade static data and market time series into daily
// P&L series, one per trade, aligned on the rates table's date axis.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marginlab/ccpmargin/internal/curve"
	"github.com/marginlab/ccpmargin/internal/domain/models"
	"github.com/marginlab/ccpmargin/internal/logger"
)

// Sentinel error kinds. Both are fatal for the run: bad static data or a
// missing market series would silently corrupt every downstream number.
var (
	ErrUnsupportedInstrument = errors.New("unsupported instrument")
	ErrMissingMarketData     = errors.New("missing market data")
)

// DV01 is the simplified duration-linear dollar sensitivity to a one-basis-
// point rate move: notional x (0.8 x tenor) x 1bp x 0.9. It is a proxy, not
// a real swap valuation.
func DV01(notional float64, tenorYears int) float64 {
	duration := 0.8 * float64(tenorYears)
	return notional * duration * 1e-4 * 0.9
}

// TradePnL prices one trade into a daily P&L series on the rates table's
// date axis. The first observation is always zero: there is no prior day to
// difference against.
func TradePnL(trade models.Trade, rates, fx *models.MarketTable) ([]float64, error) {
	if err := trade.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedInstrument, err)
	}

	switch trade.Product {
	case models.ProductIRS:
		return irsPnL(trade, rates)
	case models.ProductFXFwd:
		return fxForwardPnL(trade, rates.Dates, fx)
	default:
		// Unreachable after Validate, kept for exhaustiveness.
		return nil, fmt.Errorf("%w: trade %s product %q", ErrUnsupportedInstrument, trade.TradeID, trade.Product)
	}
}

// irsPnL computes sign x DV01 x (-delta_rate) over the bucketed curve point.
// Paying fixed gains when rates rise, so sign is +1 for pay-fixed trades.
func irsPnL(trade models.Trade, rates *models.MarketTable) ([]float64, error) {
	series, err := curve.Select(rates, trade.IRS.TenorYears)
	if err != nil {
		return nil, fmt.Errorf("%w: trade %s: %v", ErrMissingMarketData, trade.TradeID, err)
	}

	sign := -1.0
	if trade.IRS.PayFixed {
		sign = 1.0
	}
	dv01 := DV01(trade.Notional, trade.IRS.TenorYears)

	pnl := make([]float64, len(series))
	for i := 1; i < len(series); i++ {
		dr := series[i] - series[i-1]
		pnl[i] = sign * dv01 * (-dr)
	}
	return pnl, nil
}

// fxForwardPnL computes sign x notional x delta_spot on the shared axis.
// The pair series is joined to the axis by date; a date without a spot
// observation contributes zero rather than breaking alignment. A pair that
// is absent from the FX table altogether is fatal.
func fxForwardPnL(trade models.Trade, axis []time.Time, fx *models.MarketTable) ([]float64, error) {
	series, ok := fx.Column(trade.FX.Pair)
	if !ok {
		return nil, fmt.Errorf("%w: trade %s: FX pair %s not found in fx data", ErrMissingMarketData, trade.TradeID, trade.FX.Pair)
	}

	spotByDate := make(map[time.Time]float64, len(fx.Dates))
	for i, d := range fx.Dates {
		spotByDate[d] = series[i]
	}

	sign := -1.0
	if trade.FX.Side == models.SideBuy {
		sign = 1.0
	}

	pnl := make([]float64, len(axis))
	for i := 1; i < len(axis); i++ {
		prev, okPrev := spotByDate[axis[i-1]]
		cur, okCur := spotByDate[axis[i]]
		if !okPrev || !okCur {
			continue
		}
		pnl[i] = sign * trade.Notional * (cur - prev)
	}
	return pnl, nil
}

// BuildPnLTable prices the whole book: one column per trade, in input trade
// order, on the rates table's date axis. Trades price independently of each
// other, so the work fans out onto an errgroup bounded by CPU count; the
// first pricing error cancels the siblings and fails the run.
func BuildPnLTable(ctx context.Context, trades []models.Trade, rates, fx *models.MarketTable) (*models.PnLTable, error) {
	if err := rates.Validate(); err != nil {
		return nil, fmt.Errorf("rates table: %w", err)
	}
	if err := fx.Validate(); err != nil {
		return nil, fmt.Errorf("fx table: %w", err)
	}

	start := time.Now()
	results := make([][]float64, len(trades))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, tr := range trades {
		idx, trade := i, tr
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			series, err := TradePnL(trade, rates, fx)
			if err != nil {
				return err
			}
			results[idx] = series
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := models.NewPnLTable(rates.Dates)
	for i, tr := range trades {
		if err := table.AddColumn(tr.TradeID, results[i]); err != nil {
			return nil, fmt.Errorf("assemble pnl table: %w", err)
		}
	}

	logger.L().Info().
		Int("trades", len(trades)).
		Int("dates", rates.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("pricing done")

	return table, nil
}
