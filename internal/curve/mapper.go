// Package curve maps swap tenors onto the points of the par-rate curve.
package curve

import (
	"fmt"

	"github.com/marginlab/ccpmargin/internal/domain/models"
)

// Curve column names as they appear in the rates table.
const (
	Col2Y  = "rate_2y"
	Col5Y  = "rate_5y"
	Col10Y = "rate_10y"
)

// BucketColumn maps a tenor in whole years to its curve column. Three
// buckets only, no interpolation: tenors up to 2y ride the 2y point, up to
// 5y the 5y point, everything longer the 10y point.
func BucketColumn(tenorYears int) string {
	switch {
	case tenorYears <= 2:
		return Col2Y
	case tenorYears <= 5:
		return Col5Y
	default:
		return Col10Y
	}
}

// Select returns the rate series backing the given tenor. A rates table
// without the bucketed column is a missing-market-data condition and the
// caller must not substitute a default.
func Select(rates *models.MarketTable, tenorYears int) ([]float64, error) {
	col := BucketColumn(tenorYears)
	series, ok := rates.Column(col)
	if !ok {
		return nil, fmt.Errorf("curve point %s not present in rates table", col)
	}
	return series, nil
}
