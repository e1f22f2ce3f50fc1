package dto

import (
	"math"
	"time"

	"github.com/marginlab/ccpmargin/internal/domain/models"
)

// SimulationRequest is the payload for POST /api/v1/simulations.
//
// The three CSV files are uploaded inline as base64-encoded strings so the
// endpoint stays a single JSON document. Scenario fields are optional;
// omitted ones fall back to the server defaults.
type SimulationRequest struct {
	TradesCSV string `json:"trades_csv" binding:"required"` // base64 trades file
	RatesCSV  string `json:"rates_csv" binding:"required"`  // base64 rates history
	FXCSV     string `json:"fx_csv" binding:"required"`     // base64 FX spot history

	StressMult             *float64 `json:"stress_mult,omitempty" example:"1.5"`
	ConcentrationThreshold *float64 `json:"concentration_threshold,omitempty" example:"10000000"`
	ConcentrationAddonPct  *float64 `json:"concentration_addon_pct,omitempty" example:"0.1"`
}

// Scenario merges the request overrides onto the given defaults.
func (r SimulationRequest) Scenario(def models.Scenario) models.Scenario {
	sc := def
	if r.StressMult != nil {
		sc.StressMult = *r.StressMult
	}
	if r.ConcentrationThreshold != nil {
		sc.ConcThreshold = *r.ConcentrationThreshold
	}
	if r.ConcentrationAddonPct != nil {
		sc.ConcAddonPct = *r.ConcentrationAddonPct
	}
	return sc
}

// SnapshotResponse is the JSON view of one simulation run.
//
// Metrics that can be undefined (netting efficiency on a flat book,
// liquidity windows with too little history) are pointers so they render as
// JSON null instead of breaking the encoder with NaN.
type SnapshotResponse struct {
	RunID     string    `json:"run_id" example:"2f2c4be1-6d46-4f0e-9f0a-1f4c9a2b7c11"`
	CreatedAt time.Time `json:"created_at" example:"2025-08-20T10:00:00Z"`

	IMBilateral       float64  `json:"im_bilateral" example:"125000.50"`
	IMCCP             float64  `json:"im_ccp" example:"80000.25"`
	NettingEfficiency *float64 `json:"netting_efficiency" example:"0.36"`

	VMBilateralTotal float64 `json:"vm_bilateral_total" example:"45000.00"`
	VMCCPTotal       float64 `json:"vm_ccp_total" example:"30000.00"`
	CollateralDelta  float64 `json:"collateral_delta" example:"-60000.25"`

	Worst5LiquidityBilateral *float64 `json:"worst5_liquidity_bilateral" example:"15000.00"`
	Worst5LiquidityCCP       *float64 `json:"worst5_liquidity_ccp" example:"9000.00"`

	IMBilateralDegraded bool `json:"im_bilateral_degraded" example:"false"`
	IMCCPDegraded       bool `json:"im_ccp_degraded" example:"false"`

	StressMult             float64 `json:"stress_mult" example:"1.0"`
	ConcentrationThreshold float64 `json:"concentration_threshold" example:"0"`
	ConcentrationAddonPct  float64 `json:"concentration_addon_pct" example:"0"`
}

func nullableFloat(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// NewSnapshotResponse converts a domain snapshot into its API view.
func NewSnapshotResponse(snap *models.MarginSnapshot) SnapshotResponse {
	return SnapshotResponse{
		RunID:                    snap.RunID,
		CreatedAt:                snap.CreatedAt,
		IMBilateral:              snap.IMBilateral,
		IMCCP:                    snap.IMCCP,
		NettingEfficiency:        nullableFloat(snap.NettingEfficiency),
		VMBilateralTotal:         snap.VMBilateralTotal,
		VMCCPTotal:               snap.VMCCPTotal,
		CollateralDelta:          snap.CollateralDelta,
		Worst5LiquidityBilateral: nullableFloat(snap.Worst5LiquidityBilateral),
		Worst5LiquidityCCP:       nullableFloat(snap.Worst5LiquidityCCP),
		IMBilateralDegraded:      snap.IMBilateralDegraded,
		IMCCPDegraded:            snap.IMCCPDegraded,
		StressMult:               snap.Scenario.StressMult,
		ConcentrationThreshold:   snap.Scenario.ConcThreshold,
		ConcentrationAddonPct:    snap.Scenario.ConcAddonPct,
	}
}
