package models

import "fmt"

// Product identifies the instrument kind of a trade.
type Product string

const (
	ProductIRS   Product = "IRS"
	ProductFXFwd Product = "FXFWD"
)

// Side is the direction of an FX forward.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// IRSLeg carries the fields that only exist on interest-rate swaps.
type IRSLeg struct {
	TenorYears int     // whole years, drives curve bucket selection
	FixedRate  float64 // optional, informational only
	PayFixed   bool    // true: gains when rates rise
}

// FXLeg carries the fields that only exist on FX forwards.
type FXLeg struct {
	Pair string // 6-letter code, e.g. "EURUSD"
	Side Side
}

// Trade is one derivative position. The product determines which leg is
// populated; loading resolves this once so pricing can switch exhaustively
// on Product instead of probing optional fields.
//
// Trades are loaded once per run and never mutated afterwards.
type Trade struct {
	TradeID      string
	Counterparty string
	Product      Product
	Notional     float64
	Currency     string

	IRS *IRSLeg
	FX  *FXLeg
}

// Validate checks the product-dependent field invariant: an IRS must carry
// an IRS leg with a positive tenor, an FX forward must carry an FX leg with
// a 6-letter pair and a known side. Any other product is rejected.
func (t Trade) Validate() error {
	if t.TradeID == "" {
		return fmt.Errorf("trade has empty trade_id")
	}
	if t.Counterparty == "" {
		return fmt.Errorf("trade %s: empty cpty", t.TradeID)
	}

	switch t.Product {
	case ProductIRS:
		if t.IRS == nil {
			return fmt.Errorf("trade %s: IRS trade missing tenor_yrs/pay_fixed", t.TradeID)
		}
		if t.IRS.TenorYears <= 0 {
			return fmt.Errorf("trade %s: IRS tenor_yrs must be positive, got %d", t.TradeID, t.IRS.TenorYears)
		}
	case ProductFXFwd:
		if t.FX == nil {
			return fmt.Errorf("trade %s: FX trade missing ccypair/side", t.TradeID)
		}
		if len(t.FX.Pair) != 6 {
			return fmt.Errorf("trade %s: ccypair must be a 6-letter code, got %q", t.TradeID, t.FX.Pair)
		}
		if t.FX.Side != SideBuy && t.FX.Side != SideSell {
			return fmt.Errorf("trade %s: side must be BUY or SELL, got %q", t.TradeID, t.FX.Side)
		}
	default:
		return fmt.Errorf("trade %s: unsupported product %q", t.TradeID, t.Product)
	}

	return nil
}
