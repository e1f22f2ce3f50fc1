// Package service owns the simulation orchestrator: one call wires pricing,
// stress scaling, netting, aggregation and margin metrics into a single
// immutable snapshot.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marginlab/ccpmargin/internal/domain/models"
	"github.com/marginlab/ccpmargin/internal/ingestion"
	"github.com/marginlab/ccpmargin/internal/logger"
	"github.com/marginlab/ccpmargin/internal/margin"
	"github.com/marginlab/ccpmargin/internal/netting"
	"github.com/marginlab/ccpmargin/internal/pricing"
	"github.com/marginlab/ccpmargin/internal/storage"
)

// SimulationService runs the bilateral-vs-CCP margin comparison for one
// input bundle and scenario.
type SimulationService interface {
	Run(ctx context.Context, in *ingestion.Inputs, sc models.Scenario) (*models.MarginSnapshot, error)
}

type simulationService struct {
	repo storage.SnapshotRepository // nil disables persistence
}

// NewSimulationService constructs the orchestrator. A nil repository is
// allowed for one-shot CLI runs that only write results to disk.
func NewSimulationService(repo storage.SnapshotRepository) SimulationService {
	return &simulationService{repo: repo}
}

// Run executes the pipeline as a strict sequence of pure transformations:
// per-trade P&L, optional stress scaling, netting-set aggregation under
// both topologies, then the margin metrics. Every stage consumes the
// previous stage's output and produces a new table; nothing is mutated in
// place.
func (s *simulationService) Run(ctx context.Context, in *ingestion.Inputs, sc models.Scenario) (*models.MarginSnapshot, error) {
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}

	start := time.Now()
	runID := uuid.NewString()

	pnl, err := pricing.BuildPnLTable(ctx, in.Trades, in.Rates, in.FX)
	if err != nil {
		return nil, fmt.Errorf("pricing: %w", err)
	}

	if sc.StressMult != 1.0 {
		pnl = pnl.Scale(sc.StressMult)
	}

	bilSets := netting.BilateralSets(in.Trades)
	ccpSet := netting.CCPSet(in.Trades)

	bilPnL, err := netting.Aggregate(pnl, bilSets)
	if err != nil {
		return nil, fmt.Errorf("bilateral aggregation: %w", err)
	}
	ccpPnL, err := netting.Aggregate(pnl, []models.NettingSet{ccpSet})
	if err != nil {
		return nil, fmt.Errorf("ccp aggregation: %w", err)
	}

	snap := margin.BuildSnapshot(bilPnL, ccpPnL, in.Trades, sc)
	snap.RunID = runID
	snap.CreatedAt = time.Now().UTC()

	if s.repo != nil {
		if err := s.repo.InsertSnapshot(&snap); err != nil {
			return nil, fmt.Errorf("persist snapshot: %w", err)
		}
	}

	logger.L().Info().
		Str("run_id", runID).
		Int("trades", len(in.Trades)).
		Int("bilateral_sets", len(bilSets)).
		Float64("im_bilateral", snap.IMBilateral).
		Float64("im_ccp", snap.IMCCP).
		Dur("elapsed", time.Since(start)).
		Msg("simulation done")

	return &snap, nil
}
