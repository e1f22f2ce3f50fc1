package models

import "time"

// MarginSnapshot is the immutable result of one simulation run: IM and VM
// under both netting topologies, the derived efficiency metrics, and the
// scenario parameters that produced them.
//
// NettingEfficiency and the worst-window draws use NaN as an explicit
// undefined sentinel (bilateral IM of zero, fewer than five observations);
// the DTO layer maps NaN to JSON null and storage maps it to SQL NULL.
type MarginSnapshot struct {
	RunID     string
	CreatedAt time.Time

	IMBilateral       float64
	IMCCP             float64
	NettingEfficiency float64

	VMBilateralTotal float64
	VMCCPTotal       float64
	CollateralDelta  float64

	Worst5LiquidityBilateral float64
	Worst5LiquidityCCP       float64

	// Degraded flags distinguish a zero IM that came from a book with too
	// few loss observations from a genuine zero-risk result.
	IMBilateralDegraded bool
	IMCCPDegraded       bool

	Scenario Scenario
}
