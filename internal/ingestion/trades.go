package ingestion

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/marginlab/ccpmargin/internal/domain/models"
)

// RawTrade mirrors one row of the trades CSV before cleaning. Every field
// is a string so the file parses even when optional columns are blank;
// cleaning converts and validates per product.
type RawTrade struct {
	TradeID   string `csv:"trade_id"`
	Cpty      string `csv:"cpty"`
	Product   string `csv:"product"`
	Notional  string `csv:"notional"`
	Ccy       string `csv:"ccy"`
	TenorYrs  string `csv:"tenor_yrs"`
	FixedRate string `csv:"fixed_rate"`
	PayFixed  string `csv:"pay_fixed"`
	CcyPair   string `csv:"ccypair"`
	Side      string `csv:"side"`
}

// ReadTrades parses and cleans the trades CSV. Any malformed row is fatal:
// a silently dropped trade would corrupt every downstream margin number.
func ReadTrades(r io.Reader) ([]models.Trade, error) {
	raw := make([]*RawTrade, 0)
	if err := gocsv.Unmarshal(r, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal trades csv: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("trades csv has no rows")
	}

	trades := make([]models.Trade, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, rt := range raw {
		tr, err := cleanRawTrade(rt)
		if err != nil {
			return nil, fmt.Errorf("trades row %d: %w", i+2, err)
		}
		if _, dup := seen[tr.TradeID]; dup {
			return nil, fmt.Errorf("trades row %d: duplicate trade_id %s", i+2, tr.TradeID)
		}
		seen[tr.TradeID] = struct{}{}
		trades = append(trades, tr)
	}
	return trades, nil
}

// cleanRawTrade converts one raw row into a typed trade, resolving the
// product-specific leg once so pricing never probes optional fields.
func cleanRawTrade(rt *RawTrade) (models.Trade, error) {
	tr := models.Trade{
		TradeID:      strings.TrimSpace(rt.TradeID),
		Counterparty: strings.TrimSpace(rt.Cpty),
		Currency:     strings.ToUpper(strings.TrimSpace(rt.Ccy)),
	}

	notional, err := parseFloatCell(rt.Notional)
	if err != nil {
		return tr, fmt.Errorf("invalid notional %q", rt.Notional)
	}
	tr.Notional = notional

	switch strings.ToUpper(strings.TrimSpace(rt.Product)) {
	case "IRS", "INTEREST_RATE_SWAP":
		tr.Product = models.ProductIRS
		leg := &models.IRSLeg{}
		tenor, err := strconv.Atoi(strings.TrimSpace(rt.TenorYrs))
		if err != nil {
			return tr, fmt.Errorf("invalid tenor_yrs %q", rt.TenorYrs)
		}
		leg.TenorYears = tenor
		if s := strings.TrimSpace(rt.FixedRate); s != "" {
			rate, err := parseFloatCell(s)
			if err != nil {
				return tr, fmt.Errorf("invalid fixed_rate %q", rt.FixedRate)
			}
			leg.FixedRate = rate
		}
		payFixed, err := parseBoolCell(rt.PayFixed)
		if err != nil {
			return tr, fmt.Errorf("invalid pay_fixed %q", rt.PayFixed)
		}
		leg.PayFixed = payFixed
		tr.IRS = leg

	case "FXFWD", "FX_FORWARD":
		tr.Product = models.ProductFXFwd
		tr.FX = &models.FXLeg{
			Pair: strings.ToUpper(strings.TrimSpace(rt.CcyPair)),
			Side: models.Side(strings.ToUpper(strings.TrimSpace(rt.Side))),
		}

	default:
		return tr, fmt.Errorf("unsupported product %q", rt.Product)
	}

	if err := tr.Validate(); err != nil {
		return tr, err
	}
	return tr, nil
}

func parseFloatCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty numeric cell")
	}
	return strconv.ParseFloat(s, 64)
}

func parseBoolCell(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "1", "yes", "y":
		return true, nil
	case "false", "f", "0", "no", "n":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean")
	}
}
