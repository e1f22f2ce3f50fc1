package storage

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/marginlab/ccpmargin/internal/domain/models"
)

// SnapshotRepository defines the contract for persisting and querying
// margin snapshots.
type SnapshotRepository interface {
	InsertSnapshot(snap *models.MarginSnapshot) error
	GetSnapshotByRunID(runID string) (*models.MarginSnapshot, error)
	ListSnapshots(limit int) ([]models.MarginSnapshot, error)
}

type snapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

// NaN metric values (undefined netting efficiency, incomplete liquidity
// windows) round-trip as SQL NULL.
func toNullFloat(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func fromNullFloat(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

const snapshotColumns = `run_id, created_at, im_bilateral, im_ccp, netting_efficiency,
		vm_bilateral_total, vm_ccp_total, collateral_delta,
		worst5_liquidity_bilateral, worst5_liquidity_ccp,
		im_bilateral_degraded, im_ccp_degraded,
		stress_mult, conc_threshold, conc_addon_pct`

// InsertSnapshot stores one finished run.
func (r *snapshotRepository) InsertSnapshot(snap *models.MarginSnapshot) error {
	_, err := r.db.Exec(`
		INSERT INTO margin_snapshots (`+snapshotColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		snap.RunID,
		snap.CreatedAt,
		snap.IMBilateral,
		snap.IMCCP,
		toNullFloat(snap.NettingEfficiency),
		snap.VMBilateralTotal,
		snap.VMCCPTotal,
		snap.CollateralDelta,
		toNullFloat(snap.Worst5LiquidityBilateral),
		toNullFloat(snap.Worst5LiquidityCCP),
		snap.IMBilateralDegraded,
		snap.IMCCPDegraded,
		snap.Scenario.StressMult,
		snap.Scenario.ConcThreshold,
		snap.Scenario.ConcAddonPct,
	)
	return err
}

func scanSnapshot(row interface{ Scan(...interface{}) error }) (*models.MarginSnapshot, error) {
	var snap models.MarginSnapshot
	var nettingEff, worstBil, worstCCP sql.NullFloat64

	err := row.Scan(
		&snap.RunID,
		&snap.CreatedAt,
		&snap.IMBilateral,
		&snap.IMCCP,
		&nettingEff,
		&snap.VMBilateralTotal,
		&snap.VMCCPTotal,
		&snap.CollateralDelta,
		&worstBil,
		&worstCCP,
		&snap.IMBilateralDegraded,
		&snap.IMCCPDegraded,
		&snap.Scenario.StressMult,
		&snap.Scenario.ConcThreshold,
		&snap.Scenario.ConcAddonPct,
	)
	if err != nil {
		return nil, err
	}

	snap.NettingEfficiency = fromNullFloat(nettingEff)
	snap.Worst5LiquidityBilateral = fromNullFloat(worstBil)
	snap.Worst5LiquidityCCP = fromNullFloat(worstCCP)
	return &snap, nil
}

// GetSnapshotByRunID fetches one snapshot, or (nil, nil) when absent.
func (r *snapshotRepository) GetSnapshotByRunID(runID string) (*models.MarginSnapshot, error) {
	row := r.db.QueryRow(`
		SELECT `+snapshotColumns+`
		FROM margin_snapshots
		WHERE run_id = $1
	`, runID)

	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// ListSnapshots returns the most recent snapshots, newest first.
func (r *snapshotRepository) ListSnapshots(limit int) ([]models.MarginSnapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(`
		SELECT `+snapshotColumns+`
		FROM margin_snapshots
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.MarginSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, *snap)
	}
	return out, rows.Err()
}
